package shared

// Inventory permissions declared for RBAC.
const (
	PermInventoryItemsView = "inventory:items:view"
	PermInventoryItemsEdit = "inventory:items:edit"

	PermInventoryAdjustmentsView = "inventory:adjustments:view"
	PermInventoryAdjustmentsEdit = "inventory:adjustments:edit"

	PermInventoryTransfersView = "inventory:transfers:view"
)

// InventoryScopes lists all permissions related to the inventory module.
func InventoryScopes() []string {
	return []string{
		PermInventoryItemsView,
		PermInventoryItemsEdit,
		PermInventoryAdjustmentsView,
		PermInventoryAdjustmentsEdit,
		PermInventoryTransfersView,
	}
}

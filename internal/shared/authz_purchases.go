package shared

// Purchasing permissions declared for RBAC.
const (
	PermPurchasesSuppliersView = "purchases:suppliers:view"
	PermPurchasesSuppliersEdit = "purchases:suppliers:edit"

	PermPurchasesOrdersView    = "purchases:orders:view"
	PermPurchasesOrdersEdit    = "purchases:orders:edit"
	PermPurchasesOrdersApprove = "purchases:orders:approve"

	PermPurchasesBillsView = "purchases:bills:view"
	PermPurchasesBillsEdit = "purchases:bills:edit"
)

// PurchasesScopes lists all permissions related to the purchasing module.
func PurchasesScopes() []string {
	return []string{
		PermPurchasesSuppliersView,
		PermPurchasesSuppliersEdit,
		PermPurchasesOrdersView,
		PermPurchasesOrdersEdit,
		PermPurchasesOrdersApprove,
		PermPurchasesBillsView,
		PermPurchasesBillsEdit,
	}
}

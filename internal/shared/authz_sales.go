package shared

// Sales permissions declared for RBAC.
const (
	PermSalesCustomersView = "sales:customers:view"
	PermSalesCustomersEdit = "sales:customers:edit"

	PermSalesInvoicesView = "sales:invoices:view"
	PermSalesInvoicesEdit = "sales:invoices:edit"

	PermSalesQuotationsView = "sales:quotations:view"
	PermSalesQuotationsEdit = "sales:quotations:edit"

	PermSalesReceiptsView = "sales:receipts:view"
)

// SalesScopes lists all permissions related to the sales module.
func SalesScopes() []string {
	return []string{
		PermSalesCustomersView,
		PermSalesCustomersEdit,
		PermSalesInvoicesView,
		PermSalesInvoicesEdit,
		PermSalesQuotationsView,
		PermSalesQuotationsEdit,
		PermSalesReceiptsView,
	}
}

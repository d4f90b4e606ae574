package navigation

import "github.com/meridian-erp/meridian-erp/internal/shared"

// Entry is one item of the hand-authored application menu. The menu doubles
// as the declarative source for two derived artifacts: the route permission
// table consumed by Authorize and the navigation payload served to clients.
type Entry struct {
	Title       string
	URL         string
	Requirement Requirement
}

// DefaultMenu returns the application menu in display order.
func DefaultMenu() []Entry {
	return []Entry{
		{Title: "Dashboard", URL: "/dashboard"},
		{Title: "Entities", URL: "/entities", Requirement: AnyOf(
			shared.PermEntitiesCompaniesView,
			shared.PermEntitiesBranchesView,
		)},
		{Title: "Groups", URL: "/groups", Requirement: Single(shared.PermGroupsGroupsView)},
		{Title: "Accounts", URL: "/accounts", Requirement: AnyOf(
			shared.PermAccountsChartView,
			shared.PermAccountsJournalsView,
			shared.PermAccountsOpeningView,
			shared.PermAccountsReportsView,
			shared.PermAccountsPeriodsView,
		)},
		{Title: "Banking", URL: "/banking", Requirement: AnyOf(
			shared.PermBankingAccountsView,
			shared.PermBankingTransactionsView,
			shared.PermBankingReconciliationView,
		)},
		{Title: "HR", URL: "/hr", Requirement: AnyOf(
			shared.PermHREmployeesView,
			shared.PermHRAttendanceView,
		)},
		{Title: "Payroll", URL: "/payroll", Requirement: AnyOf(
			shared.PermPayrollRunsView,
			shared.PermPayrollSlipsView,
		)},
		{Title: "Inventory", URL: "/inventory", Requirement: AnyOf(
			shared.PermInventoryItemsView,
			shared.PermInventoryAdjustmentsView,
			shared.PermInventoryTransfersView,
		)},
		{Title: "Purchases", URL: "/purchases", Requirement: AnyOf(
			shared.PermPurchasesSuppliersView,
			shared.PermPurchasesOrdersView,
			shared.PermPurchasesBillsView,
		)},
		{Title: "Sales", URL: "/sales", Requirement: AnyOf(
			shared.PermSalesCustomersView,
			shared.PermSalesInvoicesView,
			shared.PermSalesQuotationsView,
			shared.PermSalesReceiptsView,
		)},
		{Title: "Settings", URL: "/settings", Requirement: AnyOf(
			shared.PermSettingsUsersView,
			shared.PermSettingsRolesView,
		)},
	}
}

// MenuItem is the client-facing navigation payload.
type MenuItem struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// VisibleMenu filters the menu for the given session. Admin roles see every
// entry; regular users see entries whose requirement they satisfy.
func VisibleMenu(menu []Entry, sess *Session) []MenuItem {
	items := make([]MenuItem, 0, len(menu))
	var held map[string]struct{}
	for _, entry := range menu {
		if !entry.Requirement.IsZero() && (sess == nil || !shared.IsAdminRole(sess.Role)) {
			if sess == nil {
				continue
			}
			if held == nil {
				held = permissionSet(sess.Permissions)
			}
			if _, ok := entry.Requirement.FirstHeld(held); !ok {
				continue
			}
		}
		items = append(items, MenuItem{Title: entry.Title, URL: entry.URL})
	}
	return items
}

func permissionSet(perms []string) map[string]struct{} {
	set := make(map[string]struct{}, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

package shared

// Accounting permissions declared for RBAC.
const (
	PermAccountsChartView = "accounts:chart:view"
	PermAccountsChartEdit = "accounts:chart:edit"

	PermAccountsJournalsView = "accounts:journals:view"
	PermAccountsJournalsPost = "accounts:journals:post"
	PermAccountsJournalsVoid = "accounts:journals:void"

	PermAccountsOpeningView = "accounts:opening:view"
	PermAccountsOpeningPost = "accounts:opening:post"

	PermAccountsReportsView = "accounts:reports:view"

	PermAccountsPeriodsView  = "accounts:periods:view"
	PermAccountsPeriodsClose = "accounts:periods:close"
)

// AccountsScopes lists all permissions related to the accounting module.
func AccountsScopes() []string {
	return []string{
		PermAccountsChartView,
		PermAccountsChartEdit,
		PermAccountsJournalsView,
		PermAccountsJournalsPost,
		PermAccountsJournalsVoid,
		PermAccountsOpeningView,
		PermAccountsOpeningPost,
		PermAccountsReportsView,
		PermAccountsPeriodsView,
		PermAccountsPeriodsClose,
	}
}

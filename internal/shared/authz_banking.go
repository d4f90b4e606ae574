package shared

// Banking permissions declared for RBAC.
const (
	PermBankingAccountsView = "banking:accounts:view"
	PermBankingAccountsEdit = "banking:accounts:edit"

	PermBankingTransactionsView = "banking:transactions:view"
	PermBankingTransactionsEdit = "banking:transactions:edit"

	PermBankingReconciliationView = "banking:reconciliation:view"
)

// BankingScopes lists all permissions related to the banking module.
func BankingScopes() []string {
	return []string{
		PermBankingAccountsView,
		PermBankingAccountsEdit,
		PermBankingTransactionsView,
		PermBankingTransactionsEdit,
		PermBankingReconciliationView,
	}
}

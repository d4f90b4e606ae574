package shared

// AllScopes aggregates every permission the application knows about. The
// catalog is synced into the permissions table at startup so role editors
// always see the full set.
func AllScopes() []string {
	var all []string
	all = append(all, CoreScopes()...)
	all = append(all, EntitiesScopes()...)
	all = append(all, GroupsScopes()...)
	all = append(all, AccountsScopes()...)
	all = append(all, BankingScopes()...)
	all = append(all, HRScopes()...)
	all = append(all, PayrollScopes()...)
	all = append(all, InventoryScopes()...)
	all = append(all, PurchasesScopes()...)
	all = append(all, SalesScopes()...)
	return all
}

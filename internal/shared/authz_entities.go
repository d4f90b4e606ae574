package shared

// Entity and group management permissions declared for RBAC.
const (
	PermEntitiesCompaniesView = "entities:companies:view"
	PermEntitiesCompaniesEdit = "entities:companies:edit"

	PermEntitiesBranchesView = "entities:branches:view"

	PermGroupsGroupsView = "groups:groups:view"
	PermGroupsGroupsEdit = "groups:groups:edit"
)

// EntitiesScopes lists all permissions related to the entities module.
func EntitiesScopes() []string {
	return []string{
		PermEntitiesCompaniesView,
		PermEntitiesCompaniesEdit,
		PermEntitiesBranchesView,
	}
}

// GroupsScopes lists all permissions related to the groups module.
func GroupsScopes() []string {
	return []string{
		PermGroupsGroupsView,
		PermGroupsGroupsEdit,
	}
}

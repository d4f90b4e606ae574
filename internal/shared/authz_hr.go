package shared

// HR and payroll permissions declared for RBAC.
const (
	PermHREmployeesView = "hr:employees:view"
	PermHREmployeesEdit = "hr:employees:edit"

	PermHRAttendanceView = "hr:attendance:view"

	PermPayrollRunsView    = "payroll:runs:view"
	PermPayrollRunsProcess = "payroll:runs:process"

	PermPayrollSlipsView = "payroll:slips:view"
)

// HRScopes lists all permissions related to the HR module.
func HRScopes() []string {
	return []string{
		PermHREmployeesView,
		PermHREmployeesEdit,
		PermHRAttendanceView,
	}
}

// PayrollScopes lists all permissions related to the payroll module.
func PayrollScopes() []string {
	return []string{
		PermPayrollRunsView,
		PermPayrollRunsProcess,
		PermPayrollSlipsView,
	}
}

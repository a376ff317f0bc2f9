package access

import "sort"

const (
	PermCompaniesRead   = "platform.companies.read"
	PermCompaniesWrite  = "platform.companies.write"
	PermPlansRead       = "platform.plans.read"
	PermPlansWrite      = "platform.plans.write"
	PermBillingRead     = "platform.billing.read"
	PermMetricsRead     = "platform.metrics.read"
	PermAuditRead       = "platform.audit.read"
	PermAnnouncePublish = "platform.announcements.publish"
)

const (
	PermEmployeesRead    = "company.employees.read"
	PermEmployeesWrite   = "company.employees.write"
	PermAttendanceRead   = "company.attendance.read"
	PermAttendanceManage = "company.attendance.manage"
	PermLeaveRead        = "company.leave.read"
	PermLeaveApprove     = "company.leave.approve"
	PermShiftsManage     = "company.shifts.manage"
	PermPayrollRead      = "company.payroll.read"
	PermPayrollRun       = "company.payroll.run"
	PermSettingsWrite    = "company.settings.write"
	PermInvitesSend      = "company.invites.send"
)

// PlatformPermissions and CompanyPermissions are fixed at build time. A role
// absent from a key's list is denied; there is no wildcard role.
var PlatformPermissions = map[string][]string{
	PermCompaniesRead:   {RoleAdmin, RoleStaff},
	PermCompaniesWrite:  {RoleAdmin},
	PermPlansRead:       {RoleAdmin, RoleStaff},
	PermPlansWrite:      {RoleAdmin},
	PermBillingRead:     {RoleAdmin, RoleStaff},
	PermMetricsRead:     {RoleAdmin},
	PermAuditRead:       {RoleAdmin},
	PermAnnouncePublish: {RoleAdmin, RoleStaff},
}

var CompanyPermissions = map[string][]string{
	PermEmployeesRead:    {RoleCompanyAdmin, RoleManager, RoleEmployee},
	PermEmployeesWrite:   {RoleCompanyAdmin, RoleManager},
	PermAttendanceRead:   {RoleCompanyAdmin, RoleManager, RoleEmployee},
	PermAttendanceManage: {RoleCompanyAdmin, RoleManager},
	PermLeaveRead:        {RoleCompanyAdmin, RoleManager, RoleEmployee},
	PermLeaveApprove:     {RoleCompanyAdmin, RoleManager},
	PermShiftsManage:     {RoleCompanyAdmin, RoleManager},
	PermPayrollRead:      {RoleCompanyAdmin},
	PermPayrollRun:       {RoleCompanyAdmin},
	PermSettingsWrite:    {RoleCompanyAdmin},
	PermInvitesSend:      {RoleCompanyAdmin, RoleManager},
}

// HasPlatformPermission reports whether a platform-scope role may exercise
// the permission. Unknown roles and unknown keys are denied.
func HasPlatformPermission(role, permission string) bool {
	return containsRole(PlatformPermissions[permission], role)
}

// HasCompanyPermission is the company-scope counterpart of
// HasPlatformPermission.
func HasCompanyPermission(role, permission string) bool {
	return containsRole(CompanyPermissions[permission], role)
}

// PermittedKeys returns the permission keys of the table that allow the
// role, in sorted order. Used by the UI bootstrap payload.
func PermittedKeys(table map[string][]string, role string) []string {
	out := make([]string, 0, len(table))
	for permission, roles := range table {
		if containsRole(roles, role) {
			out = append(out, permission)
		}
	}
	sort.Strings(out)
	return out
}

func containsRole(roles []string, role string) bool {
	for _, candidate := range roles {
		if candidate == role {
			return true
		}
	}
	return false
}

package access

// Platform roles belong to Tamabee operators, company roles to tenant
// company accounts. The two scopes are disjoint and a role string is only
// ever meaningful within its own scope.
const (
	RoleAdmin = "ADMIN"
	RoleStaff = "STAFF"
)

const (
	RoleCompanyAdmin = "COMPANY_ADMIN"
	RoleManager      = "MANAGER"
	RoleEmployee     = "EMPLOYEE"
)

var PlatformRoles = []string{
	RoleAdmin,
	RoleStaff,
}

var CompanyRoles = []string{
	RoleCompanyAdmin,
	RoleManager,
	RoleEmployee,
}

func IsAdmin(role string) bool {
	return role == RoleAdmin
}

func IsStaff(role string) bool {
	return role == RoleStaff
}

func IsCompanyAdmin(role string) bool {
	return role == RoleCompanyAdmin
}

func IsManager(role string) bool {
	return role == RoleManager
}

func IsEmployee(role string) bool {
	return role == RoleEmployee
}

func IsPlatformRole(role string) bool {
	for _, candidate := range PlatformRoles {
		if candidate == role {
			return true
		}
	}
	return false
}

func IsCompanyRole(role string) bool {
	for _, candidate := range CompanyRoles {
		if candidate == role {
			return true
		}
	}
	return false
}

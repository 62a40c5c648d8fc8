package authz

// Role names recognized by the access rules. Roles are stored as plain
// strings, but every authorization decision goes through this closed set.
const (
	RoleAdmin    = "Admin"
	RoleEmployee = "Employee"
	RoleAgency   = "Agency"
)

// Principal is the authenticated actor making a request, reconstructed per
// request from the JWT claims. It is never persisted.
type Principal struct {
	UserID      uint
	TenantID    *uint
	Roles       []string
	Permissions []string
}

// HasRole reports whether the principal carries the named role
func (p Principal) HasRole(name string) bool {
	for _, role := range p.Roles {
		if role == name {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the principal has the Admin role
func (p Principal) IsAdmin() bool { return p.HasRole(RoleAdmin) }

// IsEmployee reports whether the principal has the Employee role
func (p Principal) IsEmployee() bool { return p.HasRole(RoleEmployee) }

// IsAgency reports whether the principal has the Agency role
func (p Principal) IsAgency() bool { return p.HasRole(RoleAgency) }

// HasPermission reports whether the principal carries the named permission
func (p Principal) HasPermission(name string) bool {
	for _, permission := range p.Permissions {
		if permission == name {
			return true
		}
	}
	return false
}

package authz

import "gorm.io/gorm"

// tenantFilter returns the WHERE fragment enforcing the tenant boundary.
// applies=false means the principal carries no tenant id (seed/legacy
// context) and the query must be left untouched.
func tenantFilter(tenantID *uint) (query string, args []interface{}, applies bool) {
	if tenantID == nil {
		return "", nil, false
	}
	return "tenant_id = ?", []interface{}{*tenantID}, true
}

// TenantScope is a gorm scope restricting a query to the principal's tenant.
// With no tenant id on the principal it is a no-op.
func TenantScope(tenantID *uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		query, args, applies := tenantFilter(tenantID)
		if !applies {
			return db
		}
		return db.Where(query, args...)
	}
}

// ActiveScope is a gorm scope excluding soft-deleted rows
func ActiveScope(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

// VisibilityScope excludes soft-deleted rows unless the principal is an
// admin explicitly asking for them.
func VisibilityScope(p Principal, includeInactive bool) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if IncludeInactive(p, includeInactive) {
			return db
		}
		return ActiveScope(db)
	}
}

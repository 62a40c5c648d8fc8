package model

import "time"

// Role is a named, tenant-scoped set of permission references.
// Name uniqueness is enforced per tenant.
type Role struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	TenantID    *uint        `json:"tenant_id,omitempty" gorm:"index;uniqueIndex:idx_roles_tenant_name"`
	Name        string       `json:"name" gorm:"type:varchar(100);not null;uniqueIndex:idx_roles_tenant_name"`
	Description string       `json:"description" gorm:"type:text"`
	Permissions []Permission `json:"permissions,omitempty" gorm:"many2many:role_permissions"`
	IsActive    bool         `json:"is_active" gorm:"default:true;index"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

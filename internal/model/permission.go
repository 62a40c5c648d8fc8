package model

import "time"

// Permission is a named, tenant-scoped capability flag.
type Permission struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	TenantID    *uint     `json:"tenant_id,omitempty" gorm:"index;uniqueIndex:idx_permissions_tenant_name"`
	Name        string    `json:"name" gorm:"type:varchar(100);not null;uniqueIndex:idx_permissions_tenant_name"`
	Description string    `json:"description" gorm:"type:text"`
	IsActive    bool      `json:"is_active" gorm:"default:true;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

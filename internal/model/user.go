package model

import "time"

// User represents the user model stored in the database
type User struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Email       string     `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	Password    string     `json:"-" gorm:"type:varchar(255);not null"`
	FullName    string     `json:"full_name" gorm:"type:varchar(255);not null"`
	TenantID    *uint      `json:"tenant_id,omitempty" gorm:"index"`
	Roles       []Role     `json:"roles,omitempty" gorm:"many2many:user_roles"`
	IsActive    bool       `json:"is_active" gorm:"default:true;index"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// RoleNames returns the names of the user's roles
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, role := range u.Roles {
		names = append(names, role.Name)
	}
	return names
}

// RoleIDs returns the ids of the user's roles
func (u *User) RoleIDs() []uint {
	ids := make([]uint, 0, len(u.Roles))
	for _, role := range u.Roles {
		ids = append(ids, role.ID)
	}
	return ids
}

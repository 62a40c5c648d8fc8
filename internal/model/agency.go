package model

import "time"

// Agency is an external recruitment agency. Its users submit candidates to
// vacancies the agency is assigned to.
type Agency struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TenantID  *uint     `json:"tenant_id,omitempty" gorm:"index"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null;index"`
	Users     []User    `json:"users,omitempty" gorm:"many2many:agency_users"`
	IsActive  bool      `json:"is_active" gorm:"default:true;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

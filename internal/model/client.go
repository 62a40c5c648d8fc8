package model

import "time"

// Client is a customer company the tenant recruits for. Every client has
// exactly one assigned employee; that assignment drives employee visibility
// of the client and everything hanging off it.
type Client struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	TenantID           *uint     `json:"tenant_id,omitempty" gorm:"index"`
	Name               string    `json:"name" gorm:"type:varchar(255);not null;index"`
	Description        string    `json:"description" gorm:"type:text"`
	ContactEmail       string    `json:"contact_email" gorm:"type:varchar(255)"`
	ContactPhone       string    `json:"contact_phone" gorm:"type:varchar(50)"`
	Address            string    `json:"address" gorm:"type:text"`
	AssignedEmployeeID uint      `json:"assigned_employee_id" gorm:"index;not null"`
	AssignedEmployee   *User     `json:"assigned_employee,omitempty" gorm:"foreignKey:AssignedEmployeeID"`
	IsActive           bool      `json:"is_active" gorm:"default:true;index"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

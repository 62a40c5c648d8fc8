package model

import "time"

// Audit actions
const (
	AuditActionCreate = "CREATE"
	AuditActionUpdate = "UPDATE"
	AuditActionDelete = "DELETE"
	AuditActionLogin  = "LOGIN"
)

// Audit resources
const (
	AuditResourceUser       = "USER"
	AuditResourceRole       = "ROLE"
	AuditResourcePermission = "PERMISSION"
	AuditResourceTenant     = "TENANT"
	AuditResourceClient     = "CLIENT"
	AuditResourceTemplate   = "JOB_TEMPLATE"
	AuditResourceVacancy    = "JOB_VACANCY"
	AuditResourceCandidate  = "CANDIDATE"
)

// AuditLog records one mutating operation: who did what to which resource,
// with before/after snapshots and the outcome.
type AuditLog struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	TenantID     *uint     `json:"tenant_id,omitempty" gorm:"index"`
	UserID       *uint     `json:"user_id,omitempty" gorm:"index"`
	Action       string    `json:"action" gorm:"type:varchar(20);not null;index"`
	Resource     string    `json:"resource" gorm:"type:varchar(30);not null;index"`
	ResourceID   string    `json:"resource_id" gorm:"type:varchar(50);index"`
	OldValues    JSONMap   `json:"old_values" gorm:"type:jsonb"`
	NewValues    JSONMap   `json:"new_values" gorm:"type:jsonb"`
	IPAddress    string    `json:"ip_address" gorm:"type:varchar(45)"`
	UserAgent    string    `json:"user_agent" gorm:"type:varchar(255)"`
	Status       string    `json:"status" gorm:"type:varchar(10);default:'SUCCESS'"`
	ErrorMessage string    `json:"error_message,omitempty" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at" gorm:"index"`
}

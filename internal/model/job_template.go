package model

import (
	"time"

	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/schema"
)

// JobTemplate defines the candidate-data shape for vacancies created from it.
// Templates are immutable after creation; vacancies copy the schema by value,
// so the snapshot a vacancy holds never changes retroactively.
type JobTemplate struct {
	ID                  uint             `json:"id" gorm:"primaryKey"`
	TenantID            *uint            `json:"tenant_id,omitempty" gorm:"index"`
	Name                string           `json:"name" gorm:"type:varchar(255);not null;index"`
	Description         string           `json:"description" gorm:"type:text"`
	ClientID            uint             `json:"client_id" gorm:"index;not null"`
	Client              *Client          `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	CandidateDataSchema schema.FieldList `json:"candidate_data_schema" gorm:"type:jsonb"`
	IsActive            bool             `json:"is_active" gorm:"default:true;index"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

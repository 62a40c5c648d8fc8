package model

import (
	"time"

	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/schema"
)

// JobVacancy is an open position under a client. CandidateDataSchema is a
// by-value snapshot of the template schema taken at creation time (optionally
// overridden by the creator); candidate records must conform to it.
type JobVacancy struct {
	ID                  uint             `json:"id" gorm:"primaryKey"`
	TenantID            *uint            `json:"tenant_id,omitempty" gorm:"index"`
	Name                string           `json:"name" gorm:"type:varchar(255);not null;index"`
	Description         string           `json:"description" gorm:"type:text"`
	ClientID            uint             `json:"client_id" gorm:"index;not null"`
	Client              *Client          `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	JobTemplateID       uint             `json:"job_template_id" gorm:"index;not null"`
	JobTemplate         *JobTemplate     `json:"job_template,omitempty" gorm:"foreignKey:JobTemplateID"`
	CandidateDataSchema schema.FieldList `json:"candidate_data_schema" gorm:"type:jsonb"`
	AssignedAgencies    []Agency         `json:"assigned_agencies,omitempty" gorm:"many2many:job_vacancy_agencies"`
	CreatedByID         uint             `json:"created_by_id" gorm:"index;not null"`
	CreatedBy           *User            `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
	IsActive            bool             `json:"is_active" gorm:"default:true;index"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

// AssignedAgencyIDs returns the ids of the agencies assigned to the vacancy
func (v *JobVacancy) AssignedAgencyIDs() []uint {
	ids := make([]uint, 0, len(v.AssignedAgencies))
	for _, agency := range v.AssignedAgencies {
		ids = append(ids, agency.ID)
	}
	return ids
}

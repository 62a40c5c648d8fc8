package model

import "time"

// Candidate is a person submitted to a vacancy by an agency user. Data holds
// the candidate data record keyed by the vacancy's schema field keys.
type Candidate struct {
	ID           uint        `json:"id" gorm:"primaryKey"`
	TenantID     *uint       `json:"tenant_id,omitempty" gorm:"index"`
	JobVacancyID uint        `json:"job_vacancy_id" gorm:"index;not null"`
	JobVacancy   *JobVacancy `json:"job_vacancy,omitempty" gorm:"foreignKey:JobVacancyID"`
	CreatedByID  uint        `json:"created_by_id" gorm:"index;not null"`
	CreatedBy    *User       `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
	Data         JSONMap     `json:"data" gorm:"type:jsonb;not null"`
	IsActive     bool        `json:"is_active" gorm:"default:true;index"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

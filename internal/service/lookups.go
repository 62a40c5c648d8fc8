package service

import (
	"context"
	"errors"

	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/model"
	"gorm.io/gorm"
)

// Lookups is the gorm-backed implementation of the authz lookup ports.
// Missing rows resolve to nil rather than an error so the resolver can treat
// "does not exist" and "not assigned" uniformly as a denial.
type Lookups struct {
	db *gorm.DB
}

// NewLookups creates gorm-backed authorization lookups
func NewLookups(db *gorm.DB) *Lookups {
	return &Lookups{db: db}
}

// ClientByID returns the active client with the given id, or nil
func (l *Lookups) ClientByID(ctx context.Context, id uint) (*model.Client, error) {
	var client model.Client
	err := l.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&client).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// VacancyByID returns the active vacancy with the given id, or nil
func (l *Lookups) VacancyByID(ctx context.Context, id uint) (*model.JobVacancy, error) {
	var vacancy model.JobVacancy
	err := l.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&vacancy).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &vacancy, nil
}

// AgencyIDsForVacancy returns the ids of agencies assigned to a vacancy
func (l *Lookups) AgencyIDsForVacancy(ctx context.Context, vacancyID uint) ([]uint, error) {
	var ids []uint
	err := l.db.WithContext(ctx).
		Table("job_vacancy_agencies").
		Where("job_vacancy_id = ?", vacancyID).
		Pluck("agency_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// AgencyIDsForUser returns the ids of active agencies the user belongs to
func (l *Lookups) AgencyIDsForUser(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := l.db.WithContext(ctx).
		Table("agency_users").
		Joins("JOIN agencies ON agencies.id = agency_users.agency_id AND agencies.is_active = ?", true).
		Where("agency_users.user_id = ?", userID).
		Pluck("agency_users.agency_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

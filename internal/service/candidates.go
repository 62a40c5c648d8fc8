package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/apperr"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/audit"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/authz"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/model"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/schema"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/prometheus"
	"gorm.io/gorm"
)

// CandidateService manages the candidate lifecycle. Candidate writes are the
// one place where the template schema validator runs: data must conform to
// the owning vacancy's schema snapshot.
type CandidateService struct {
	db       *gorm.DB
	resolver *authz.Resolver
	audit    *audit.Recorder
}

// NewCandidateService creates a candidate service
func NewCandidateService(db *gorm.DB, resolver *authz.Resolver, recorder *audit.Recorder) *CandidateService {
	return &CandidateService{db: db, resolver: resolver, audit: recorder}
}

// CreateCandidateInput carries the fields for candidate creation
type CreateCandidateInput struct {
	JobVacancyID uint          `json:"job_vacancy_id"`
	Data         model.JSONMap `json:"data"`
}

// UpdateCandidateInput carries the fields for a partial candidate update
type UpdateCandidateInput struct {
	Data model.JSONMap `json:"data"`
}

func (s *CandidateService) validateData(data model.JSONMap, fields schema.FieldList) error {
	if err := schema.Validate(data, fields); err != nil {
		var verr *schema.ValidationError
		if errors.As(err, &verr) {
			prometheus.RecordValidationFailure(verr.Key)
			return apperr.Validation(verr.Message)
		}
		return err
	}
	return nil
}

// Create submits a candidate to a vacancy. Agency users only, and only when
// one of their agencies is assigned to the vacancy; the access check runs
// before data validation.
func (s *CandidateService) Create(ctx context.Context, p authz.Principal, input CreateCandidateInput) (*model.Candidate, error) {
	if !p.IsAgency() {
		prometheus.RecordForbidden("candidate", "create")
		return nil, apperr.Forbidden("Only agency users can create candidates")
	}

	var vacancy model.JobVacancy
	err := s.db.WithContext(ctx).
		Scopes(authz.TenantScope(p.TenantID), authz.ActiveScope).
		First(&vacancy, input.JobVacancyID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Job vacancy not found")
	}
	if err != nil {
		return nil, err
	}

	ok, err := s.resolver.CanCreateCandidate(ctx, p, &vacancy)
	if err != nil {
		return nil, err
	}
	if !ok {
		prometheus.RecordForbidden("candidate", "create")
		return nil, apperr.Forbidden("You can only add candidates to jobs assigned to your agency")
	}

	if err := s.validateData(input.Data, vacancy.CandidateDataSchema); err != nil {
		return nil, err
	}

	candidate := model.Candidate{
		TenantID:     p.TenantID,
		JobVacancyID: vacancy.ID,
		CreatedByID:  p.UserID,
		Data:         input.Data,
		IsActive:     true,
	}
	if err := s.db.WithContext(ctx).Create(&candidate).Error; err != nil {
		return nil, err
	}

	prometheus.RecordEntityOperation("candidate", "create")
	s.audit.Record(ctx, audit.Entry{
		TenantID:   p.TenantID,
		UserID:     &p.UserID,
		Action:     model.AuditActionCreate,
		Resource:   model.AuditResourceCandidate,
		ResourceID: fmt.Sprint(candidate.ID),
		NewValues:  model.JSONMap{"job_vacancy_id": candidate.JobVacancyID},
	})
	return &candidate, nil
}

// List returns a page of active candidates visible to the principal,
// optionally filtered to one vacancy. Agency users see only their own
// submissions; employees see candidates of vacancies under their assigned
// clients; admins see everything in the tenant.
func (s *CandidateService) List(ctx context.Context, p authz.Principal, jobVacancyID *uint, page, limit int) (*Page[model.Candidate], error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	page, limit = normalizePage(page, limit)

	query := s.db.WithContext(ctx).
		Model(&model.Candidate{}).
		Scopes(authz.TenantScope(p.TenantID), authz.ActiveScope)
	if jobVacancyID != nil {
		query = query.Where("job_vacancy_id = ?", *jobVacancyID)
	}

	switch {
	case p.IsAgency():
		query = query.Where("created_by_id = ?", p.UserID)
	case p.IsAdmin():
		// Admins see everything in the tenant.
	case p.IsEmployee():
		var clientIDs []uint
		err := s.db.WithContext(ctx).
			Model(&model.Client{}).
			Where("assigned_employee_id = ? AND is_active = ?", p.UserID, true).
			Pluck("id", &clientIDs).Error
		if err != nil {
			return nil, err
		}
		if len(clientIDs) == 0 {
			return newPage([]model.Candidate{}, 0, page, limit), nil
		}
		var vacancyIDs []uint
		err = s.db.WithContext(ctx).
			Model(&model.JobVacancy{}).
			Where("client_id IN ?", clientIDs).
			Pluck("id", &vacancyIDs).Error
		if err != nil {
			return nil, err
		}
		if len(vacancyIDs) == 0 {
			return newPage([]model.Candidate{}, 0, page, limit), nil
		}
		query = query.Where("job_vacancy_id IN ?", vacancyIDs)
	default:
		return newPage([]model.Candidate{}, 0, page, limit), nil
	}

	var total int64
	var candidates []model.Candidate
	countErr := make(chan error, 1)
	go func() {
		countErr <- query.Session(&gorm.Session{}).Count(&total).Error
	}()

	err := query.Session(&gorm.Session{}).
		Preload("JobVacancy").
		Preload("CreatedBy").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&candidates).Error
	if cerr := <-countErr; cerr != nil {
		return nil, cerr
	}
	if err != nil {
		return nil, err
	}

	return newPage(candidates, total, page, limit), nil
}

// Get returns one candidate by id
func (s *CandidateService) Get(ctx context.Context, p authz.Principal, id uint, includeInactive bool) (*model.Candidate, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var candidate model.Candidate
	err := s.db.WithContext(ctx).
		Scopes(authz.TenantScope(p.TenantID), authz.VisibilityScope(p, includeInactive)).
		Preload("JobVacancy").
		Preload("CreatedBy").
		First(&candidate, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Candidate not found")
	}
	if err != nil {
		return nil, err
	}

	ok, err := s.resolver.CanReadCandidate(ctx, p, &candidate)
	if err != nil {
		return nil, err
	}
	if !ok {
		prometheus.RecordForbidden("candidate", "read")
		return nil, apperr.Forbidden("You do not have access to this candidate")
	}
	return &candidate, nil
}

// Update replaces a candidate's data record after validating it against the
// owning vacancy's schema snapshot. Only the creating agency user may.
func (s *CandidateService) Update(ctx context.Context, p authz.Principal, id uint, input UpdateCandidateInput) (*model.Candidate, error) {
	var candidate model.Candidate
	err := s.db.WithContext(ctx).
		Scopes(authz.TenantScope(p.TenantID), authz.ActiveScope).
		First(&candidate, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Candidate not found")
	}
	if err != nil {
		return nil, err
	}

	if !p.IsAgency() {
		prometheus.RecordForbidden("candidate", "update")
		return nil, apperr.Forbidden("Only agency users can update candidates")
	}
	if !s.resolver.CanMutateCandidate(p, &candidate) {
		prometheus.RecordForbidden("candidate", "update")
		return nil, apperr.Forbidden("You can only update candidates you created")
	}

	if input.Data != nil {
		var vacancy model.JobVacancy
		err := s.db.WithContext(ctx).First(&vacancy, candidate.JobVacancyID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Job vacancy not found")
		}
		if err != nil {
			return nil, err
		}
		if err := s.validateData(input.Data, vacancy.CandidateDataSchema); err != nil {
			return nil, err
		}
		old := candidate.Data
		candidate.Data = input.Data

		if err := s.db.WithContext(ctx).Save(&candidate).Error; err != nil {
			return nil, err
		}

		prometheus.RecordEntityOperation("candidate", "update")
		s.audit.Record(ctx, audit.Entry{
			TenantID:   p.TenantID,
			UserID:     &p.UserID,
			Action:     model.AuditActionUpdate,
			Resource:   model.AuditResourceCandidate,
			ResourceID: fmt.Sprint(candidate.ID),
			OldValues:  old,
			NewValues:  candidate.Data,
		})
	}
	return &candidate, nil
}

// Delete soft-deletes a candidate. Only the creating agency user may.
// Idempotent.
func (s *CandidateService) Delete(ctx context.Context, p authz.Principal, id uint) error {
	var candidate model.Candidate
	err := s.db.WithContext(ctx).
		Scopes(authz.TenantScope(p.TenantID)).
		First(&candidate, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("Candidate not found")
	}
	if err != nil {
		return err
	}

	if !p.IsAgency() {
		prometheus.RecordForbidden("candidate", "delete")
		return apperr.Forbidden("Only agency users can delete candidates")
	}
	if !s.resolver.CanMutateCandidate(p, &candidate) {
		prometheus.RecordForbidden("candidate", "delete")
		return apperr.Forbidden("You can only delete candidates you created")
	}

	if err := s.db.WithContext(ctx).Model(&candidate).Update("is_active", false).Error; err != nil {
		return err
	}

	prometheus.RecordEntityOperation("candidate", "delete")
	s.audit.Record(ctx, audit.Entry{
		TenantID:   p.TenantID,
		UserID:     &p.UserID,
		Action:     model.AuditActionDelete,
		Resource:   model.AuditResourceCandidate,
		ResourceID: fmt.Sprint(candidate.ID),
		OldValues:  model.JSONMap{"is_active": true},
		NewValues:  model.JSONMap{"is_active": false},
	})
	return nil
}

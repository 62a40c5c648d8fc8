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

// JobVacancyService manages the job vacancy lifecycle
type JobVacancyService struct {
	db       *gorm.DB
	resolver *authz.Resolver
	audit    *audit.Recorder
}

// NewJobVacancyService creates a job vacancy service
func NewJobVacancyService(db *gorm.DB, resolver *authz.Resolver, recorder *audit.Recorder) *JobVacancyService {
	return &JobVacancyService{db: db, resolver: resolver, audit: recorder}
}

// CreateJobVacancyInput carries the fields for vacancy creation.
// CandidateDataSchema, when non-nil, overrides the template's schema;
// otherwise the template schema is copied onto the vacancy.
type CreateJobVacancyInput struct {
	Name                string           `json:"name"`
	Description         string           `json:"description"`
	ClientID            uint             `json:"client_id"`
	JobTemplateID       uint             `json:"job_template_id"`
	CandidateDataSchema schema.FieldList `json:"candidate_data_schema"`
	AssignedAgencyIDs   []uint           `json:"assigned_agency_ids"`
}

// UpdateJobVacancyInput carries the fields for a partial vacancy update
type UpdateJobVacancyInput struct {
	Name                *string          `json:"name"`
	Description         *string          `json:"description"`
	ClientID            *uint            `json:"client_id"`
	JobTemplateID       *uint            `json:"job_template_id"`
	CandidateDataSchema schema.FieldList `json:"candidate_data_schema"`
	AssignedAgencyIDs   []uint           `json:"assigned_agency_ids"`
}

// Create creates a vacancy under a client, snapshotting the template schema.
// Admins, or employees assigned to the client, may create.
func (s *JobVacancyService) Create(ctx context.Context, p authz.Principal, input CreateJobVacancyInput) (*model.JobVacancy, error) {
	if !p.IsAdmin() && !p.IsEmployee() {
		prometheus.RecordForbidden("job_vacancy", "create")
		return nil, apperr.Forbidden("Only admins and employees can create job vacancies")
	}

	ok, err := s.resolver.CanCreateVacancy(ctx, p, input.ClientID)
	if err != nil {
		return nil, err
	}
	if !ok {
		prometheus.RecordForbidden("job_vacancy", "create")
		return nil, apperr.Forbidden("You can only create job vacancies for your assigned clients")
	}

	if input.Name == "" {
		return nil, apperr.Validation("name is required")
	}

	var template model.JobTemplate
	err = s.db.WithContext(ctx).
		Scopes(authz.TenantScope(p.TenantID), authz.ActiveScope).
		First(&template, input.JobTemplateID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Job template not found")
	}
	if err != nil {
		return nil, err
	}

	// Snapshot semantics: the schema is copied by value. Later template
	// edits never reach this vacancy.
	dataSchema := input.CandidateDataSchema
	if dataSchema == nil {
		dataSchema = snapshotSchema(template.CandidateDataSchema)
	} else if err := validateFieldDefinitions(dataSchema); err != nil {
		return nil, err
	}

	vacancy := model.JobVacancy{
		TenantID:            p.TenantID,
		Name:                input.Name,
		Description:         input.Description,
		ClientID:            input.ClientID,
		JobTemplateID:       input.JobTemplateID,
		CandidateDataSchema: dataSchema,
		CreatedByID:         p.UserID,
		IsActive:            true,
	}
	if err := s.db.WithContext(ctx).Create(&vacancy).Error; err != nil {
		return nil, err
	}
	if len(input.AssignedAgencyIDs) > 0 {
		if err := s.replaceAgencies(ctx, &vacancy, input.AssignedAgencyIDs); err != nil {
			return nil, err
		}
	}

	prometheus.RecordEntityOperation("job_vacancy", "create")
	s.audit.Record(ctx, audit.Entry{
		TenantID:   p.TenantID,
		UserID:     &p.UserID,
		Action:     model.AuditActionCreate,
		Resource:   model.AuditResourceVacancy,
		ResourceID: fmt.Sprint(vacancy.ID),
		NewValues:  model.JSONMap{"name": vacancy.Name, "client_id": vacancy.ClientID},
	})
	return &vacancy, nil
}

// List returns a page of active vacancies visible to the principal,
// optionally filtered by client. The row count and the page fetch are
// independent reads and run concurrently.
func (s *JobVacancyService) List(ctx context.Context, p authz.Principal, clientID *uint, page, limit int) (*Page[model.JobVacancy], error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	page, limit = normalizePage(page, limit)

	query := s.db.WithContext(ctx).
		Model(&model.JobVacancy{}).
		Scopes(authz.TenantScope(p.TenantID), authz.ActiveScope)
	if clientID != nil {
		query = query.Where("client_id = ?", *clientID)
	}

	if !p.IsAdmin() {
		var clientIDs []uint
		err := s.db.WithContext(ctx).
			Model(&model.Client{}).
			Where("assigned_employee_id = ? AND is_active = ?", p.UserID, true).
			Pluck("id", &clientIDs).Error
		if err != nil {
			return nil, err
		}
		if len(clientIDs) == 0 {
			return newPage([]model.JobVacancy{}, 0, page, limit), nil
		}
		query = query.Where("client_id IN ?", clientIDs)
	}

	var total int64
	var vacancies []model.JobVacancy
	countErr := make(chan error, 1)
	go func() {
		countErr <- query.Session(&gorm.Session{}).Count(&total).Error
	}()

	err := query.Session(&gorm.Session{}).
		Preload("Client").
		Preload("JobTemplate").
		Preload("AssignedAgencies").
		Preload("CreatedBy").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&vacancies).Error
	if cerr := <-countErr; cerr != nil {
		return nil, cerr
	}
	if err != nil {
		return nil, err
	}

	return newPage(vacancies, total, page, limit), nil
}

// Get returns one vacancy by id
func (s *JobVacancyService) Get(ctx context.Context, p authz.Principal, id uint, includeInactive bool) (*model.JobVacancy, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var vacancy model.JobVacancy
	err := s.db.WithContext(ctx).
		Scopes(authz.TenantScope(p.TenantID), authz.VisibilityScope(p, includeInactive)).
		Preload("Client").
		Preload("JobTemplate").
		Preload("AssignedAgencies").
		Preload("CreatedBy").
		First(&vacancy, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Job vacancy not found")
	}
	if err != nil {
		return nil, err
	}

	ok, err := s.resolver.CanReadVacancy(ctx, p, &vacancy)
	if err != nil {
		return nil, err
	}
	if !ok {
		prometheus.RecordForbidden("job_vacancy", "read")
		return nil, apperr.Forbidden("You do not have access to this job vacancy")
	}
	return &vacancy, nil
}

// Update applies a partial update. Admins always; employees only to their
// own vacancies, and a client change requires assignment to the new client.
// Changing the template re-snapshots its schema unless the caller supplies
// an explicit schema override.
func (s *JobVacancyService) Update(ctx context.Context, p authz.Principal, id uint, input UpdateJobVacancyInput) (*model.JobVacancy, error) {
	var vacancy model.JobVacancy
	err := s.db.WithContext(ctx).
		Scopes(authz.TenantScope(p.TenantID), authz.ActiveScope).
		First(&vacancy, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Job vacancy not found")
	}
	if err != nil {
		return nil, err
	}

	if !p.IsAdmin() && !p.IsEmployee() {
		prometheus.RecordForbidden("job_vacancy", "update")
		return nil, apperr.Forbidden("Only admins and employees can update job vacancies")
	}

	ok, err := s.resolver.CanUpdateVacancy(ctx, p, &vacancy, input.ClientID)
	if err != nil {
		return nil, err
	}
	if !ok {
		prometheus.RecordForbidden("job_vacancy", "update")
		if vacancy.CreatedByID != p.UserID {
			return nil, apperr.Forbidden("You can only update job vacancies you created")
		}
		return nil, apperr.Forbidden("You can only assign job vacancies to your assigned clients")
	}

	if input.Name != nil {
		vacancy.Name = *input.Name
	}
	if input.Description != nil {
		vacancy.Description = *input.Description
	}
	if input.ClientID != nil {
		vacancy.ClientID = *input.ClientID
	}
	if input.JobTemplateID != nil {
		var template model.JobTemplate
		err := s.db.WithContext(ctx).
			Scopes(authz.TenantScope(p.TenantID), authz.ActiveScope).
			First(&template, *input.JobTemplateID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Job template not found")
		}
		if err != nil {
			return nil, err
		}
		vacancy.JobTemplateID = template.ID
		if input.CandidateDataSchema == nil {
			vacancy.CandidateDataSchema = snapshotSchema(template.CandidateDataSchema)
		}
	}
	if input.CandidateDataSchema != nil {
		if err := validateFieldDefinitions(input.CandidateDataSchema); err != nil {
			return nil, err
		}
		vacancy.CandidateDataSchema = input.CandidateDataSchema
	}

	if err := s.db.WithContext(ctx).Save(&vacancy).Error; err != nil {
		return nil, err
	}
	if input.AssignedAgencyIDs != nil {
		if err := s.replaceAgencies(ctx, &vacancy, input.AssignedAgencyIDs); err != nil {
			return nil, err
		}
	}

	prometheus.RecordEntityOperation("job_vacancy", "update")
	s.audit.Record(ctx, audit.Entry{
		TenantID:   p.TenantID,
		UserID:     &p.UserID,
		Action:     model.AuditActionUpdate,
		Resource:   model.AuditResourceVacancy,
		ResourceID: fmt.Sprint(vacancy.ID),
		NewValues:  model.JSONMap{"name": vacancy.Name, "client_id": vacancy.ClientID},
	})
	return &vacancy, nil
}

// Delete soft-deletes a vacancy. Admins always; employees only their own.
// Idempotent.
func (s *JobVacancyService) Delete(ctx context.Context, p authz.Principal, id uint) error {
	var vacancy model.JobVacancy
	err := s.db.WithContext(ctx).
		Scopes(authz.TenantScope(p.TenantID)).
		First(&vacancy, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("Job vacancy not found")
	}
	if err != nil {
		return err
	}

	if !p.IsAdmin() && !p.IsEmployee() {
		prometheus.RecordForbidden("job_vacancy", "delete")
		return apperr.Forbidden("Only admins and employees can delete job vacancies")
	}
	if !s.resolver.CanDeleteVacancy(p, &vacancy) {
		prometheus.RecordForbidden("job_vacancy", "delete")
		return apperr.Forbidden("You can only delete job vacancies you created")
	}

	if err := s.db.WithContext(ctx).Model(&vacancy).Update("is_active", false).Error; err != nil {
		return err
	}

	prometheus.RecordEntityOperation("job_vacancy", "delete")
	s.audit.Record(ctx, audit.Entry{
		TenantID:   p.TenantID,
		UserID:     &p.UserID,
		Action:     model.AuditActionDelete,
		Resource:   model.AuditResourceVacancy,
		ResourceID: fmt.Sprint(vacancy.ID),
		OldValues:  model.JSONMap{"is_active": true},
		NewValues:  model.JSONMap{"is_active": false},
	})
	return nil
}

// snapshotSchema copies a template schema by value. The copy backs its own
// array, so nothing done to the template's field list afterwards can reach a
// vacancy holding the snapshot.
func snapshotSchema(fields schema.FieldList) schema.FieldList {
	return append(schema.FieldList{}, fields...)
}

func (s *JobVacancyService) replaceAgencies(ctx context.Context, vacancy *model.JobVacancy, agencyIDs []uint) error {
	var agencies []model.Agency
	if len(agencyIDs) > 0 {
		if err := s.db.WithContext(ctx).Where("id IN ?", agencyIDs).Find(&agencies).Error; err != nil {
			return err
		}
	}
	return s.db.WithContext(ctx).Model(vacancy).Association("AssignedAgencies").Replace(agencies)
}

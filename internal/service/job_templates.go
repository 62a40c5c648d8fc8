package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/apperr"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/audit"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/authz"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/model"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/schema"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/prometheus"
	"gorm.io/gorm"
)

// JobTemplateService manages the job template lifecycle. Templates have no
// update operation: once created they are immutable, which is what makes the
// vacancy schema snapshot meaningful.
type JobTemplateService struct {
	db       *gorm.DB
	resolver *authz.Resolver
	audit    *audit.Recorder
}

// NewJobTemplateService creates a job template service
func NewJobTemplateService(db *gorm.DB, resolver *authz.Resolver, recorder *audit.Recorder) *JobTemplateService {
	return &JobTemplateService{db: db, resolver: resolver, audit: recorder}
}

// CreateJobTemplateInput carries the fields for template creation
type CreateJobTemplateInput struct {
	Name                string           `json:"name"`
	Description         string           `json:"description"`
	ClientID            uint             `json:"client_id"`
	CandidateDataSchema schema.FieldList `json:"candidate_data_schema"`
}

func validateFieldDefinitions(fields schema.FieldList) error {
	seen := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		if field.Key == "" {
			return apperr.Validation("schema field key must not be empty")
		}
		if _, dup := seen[field.Key]; dup {
			return apperr.Validation(fmt.Sprintf("duplicate schema field key '%s'", field.Key))
		}
		seen[field.Key] = struct{}{}
		switch field.Type {
		case schema.FieldTypeText, schema.FieldTypeTextarea, schema.FieldTypeEmail,
			schema.FieldTypeNumber, schema.FieldTypeDate:
		case schema.FieldTypeSelect:
			if len(field.Options) == 0 {
				return apperr.Validation(fmt.Sprintf("select field '%s' must define options", field.Key))
			}
		default:
			return apperr.Validation(fmt.Sprintf("unknown field type '%s' for field '%s'", field.Type, field.Key))
		}
	}
	return nil
}

// Create creates a job template. Admin only.
func (s *JobTemplateService) Create(ctx context.Context, p authz.Principal, input CreateJobTemplateInput) (*model.JobTemplate, error) {
	if !s.resolver.CanCreateTemplate(p) {
		prometheus.RecordForbidden("job_template", "create")
		return nil, apperr.Forbidden("Only admins can create job templates")
	}
	if input.Name == "" {
		return nil, apperr.Validation("name is required")
	}
	if input.ClientID == 0 {
		return nil, apperr.Validation("client_id is required")
	}
	if err := validateFieldDefinitions(input.CandidateDataSchema); err != nil {
		return nil, err
	}

	template := model.JobTemplate{
		TenantID:            p.TenantID,
		Name:                input.Name,
		Description:         input.Description,
		ClientID:            input.ClientID,
		CandidateDataSchema: input.CandidateDataSchema,
		IsActive:            true,
	}
	if err := s.db.WithContext(ctx).Create(&template).Error; err != nil {
		return nil, err
	}

	prometheus.RecordEntityOperation("job_template", "create")
	s.audit.Record(ctx, audit.Entry{
		TenantID:   p.TenantID,
		UserID:     &p.UserID,
		Action:     model.AuditActionCreate,
		Resource:   model.AuditResourceTemplate,
		ResourceID: fmt.Sprint(template.ID),
		NewValues:  model.JSONMap{"name": template.Name, "client_id": template.ClientID},
	})
	return &template, nil
}

// List returns active templates visible to the principal, optionally
// filtered by client. Non-admins see only templates of their assigned
// clients.
func (s *JobTemplateService) List(ctx context.Context, p authz.Principal, clientID *uint) ([]model.JobTemplate, error) {
	query := s.db.WithContext(ctx).
		Scopes(authz.TenantScope(p.TenantID), authz.ActiveScope).
		Preload("Client")
	if clientID != nil {
		query = query.Where("client_id = ?", *clientID)
	}

	if !p.IsAdmin() {
		clientIDs, err := s.clientIDsForEmployee(ctx, p.UserID)
		if err != nil {
			return nil, err
		}
		if len(clientIDs) == 0 {
			return []model.JobTemplate{}, nil
		}
		query = query.Where("client_id IN ?", clientIDs)
	}

	var templates []model.JobTemplate
	if err := query.Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

// Get returns one template by id
func (s *JobTemplateService) Get(ctx context.Context, p authz.Principal, id uint, includeInactive bool) (*model.JobTemplate, error) {
	var template model.JobTemplate
	err := s.db.WithContext(ctx).
		Scopes(authz.TenantScope(p.TenantID), authz.VisibilityScope(p, includeInactive)).
		Preload("Client").
		First(&template, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Job template not found")
	}
	if err != nil {
		return nil, err
	}

	ok, err := s.resolver.CanReadTemplate(ctx, p, &template)
	if err != nil {
		return nil, err
	}
	if !ok {
		prometheus.RecordForbidden("job_template", "read")
		return nil, apperr.Forbidden("You do not have access to this job template")
	}
	return &template, nil
}

// Delete soft-deletes a template. Admin only, idempotent.
func (s *JobTemplateService) Delete(ctx context.Context, p authz.Principal, id uint) error {
	var template model.JobTemplate
	err := s.db.WithContext(ctx).
		Scopes(authz.TenantScope(p.TenantID)).
		First(&template, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("Job template not found")
	}
	if err != nil {
		return err
	}

	if !s.resolver.CanDeleteTemplate(p) {
		prometheus.RecordForbidden("job_template", "delete")
		return apperr.Forbidden("Only admins can delete job templates")
	}

	if err := s.db.WithContext(ctx).Model(&template).Update("is_active", false).Error; err != nil {
		return err
	}

	prometheus.RecordEntityOperation("job_template", "delete")
	s.audit.Record(ctx, audit.Entry{
		TenantID:   p.TenantID,
		UserID:     &p.UserID,
		Action:     model.AuditActionDelete,
		Resource:   model.AuditResourceTemplate,
		ResourceID: fmt.Sprint(template.ID),
		OldValues:  model.JSONMap{"is_active": true},
		NewValues:  model.JSONMap{"is_active": false},
	})
	return nil
}

func (s *JobTemplateService) clientIDsForEmployee(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).
		Model(&model.Client{}).
		Where("assigned_employee_id = ? AND is_active = ?", userID, true).
		Pluck("id", &ids).Error
	return ids, err
}

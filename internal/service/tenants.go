package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/apperr"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/audit"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/authz"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/model"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/prometheus"
	"gorm.io/gorm"
)

// TenantService manages tenants. Tenants are provisioned by admins and act
// as the isolation boundary for everything else.
type TenantService struct {
	db    *gorm.DB
	audit *audit.Recorder
}

// NewTenantService creates a tenant service
func NewTenantService(db *gorm.DB, recorder *audit.Recorder) *TenantService {
	return &TenantService{db: db, audit: recorder}
}

// CreateTenantInput carries the fields for tenant creation
type CreateTenantInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Domain      string `json:"domain"`
}

// Create provisions a tenant. Admin only; names are globally unique.
func (s *TenantService) Create(ctx context.Context, p authz.Principal, input CreateTenantInput) (*model.Tenant, error) {
	if !p.IsAdmin() {
		prometheus.RecordForbidden("tenant", "create")
		return nil, apperr.Forbidden("Only admins can create tenants")
	}
	if input.Name == "" {
		return nil, apperr.Validation("name is required")
	}

	var existing model.Tenant
	err := s.db.WithContext(ctx).Where("name = ?", input.Name).First(&existing).Error
	if err == nil {
		return nil, apperr.Conflict(fmt.Sprintf("Tenant '%s' already exists", input.Name))
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tenant := model.Tenant{
		Name:        input.Name,
		Description: input.Description,
		Domain:      input.Domain,
		IsActive:    true,
	}
	if err := s.db.WithContext(ctx).Create(&tenant).Error; err != nil {
		return nil, err
	}

	prometheus.RecordEntityOperation("tenant", "create")
	s.audit.Record(ctx, audit.Entry{
		TenantID:   &tenant.ID,
		UserID:     &p.UserID,
		Action:     model.AuditActionCreate,
		Resource:   model.AuditResourceTenant,
		ResourceID: fmt.Sprint(tenant.ID),
		NewValues:  model.JSONMap{"name": tenant.Name, "domain": tenant.Domain},
	})
	return &tenant, nil
}

// List returns active tenants. Admin only.
func (s *TenantService) List(ctx context.Context, p authz.Principal) ([]model.Tenant, error) {
	if !p.IsAdmin() {
		prometheus.RecordForbidden("tenant", "read")
		return nil, apperr.Forbidden("Only admins can list tenants")
	}
	var tenants []model.Tenant
	if err := s.db.WithContext(ctx).Scopes(authz.ActiveScope).Find(&tenants).Error; err != nil {
		return nil, err
	}
	return tenants, nil
}

// Get returns one tenant by id. Admin only.
func (s *TenantService) Get(ctx context.Context, p authz.Principal, id uint) (*model.Tenant, error) {
	if !p.IsAdmin() {
		prometheus.RecordForbidden("tenant", "read")
		return nil, apperr.Forbidden("Only admins can view tenants")
	}
	var tenant model.Tenant
	err := s.db.WithContext(ctx).Scopes(authz.ActiveScope).First(&tenant, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Tenant not found")
	}
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

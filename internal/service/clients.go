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
	"github.com/MNabeel-Git/RecruitmentManagementSystem/prometheus"
	"gorm.io/gorm"
)

// ClientService manages the client lifecycle
type ClientService struct {
	db       *gorm.DB
	resolver *authz.Resolver
	audit    *audit.Recorder
}

// NewClientService creates a client service
func NewClientService(db *gorm.DB, resolver *authz.Resolver, recorder *audit.Recorder) *ClientService {
	return &ClientService{db: db, resolver: resolver, audit: recorder}
}

// CreateClientInput carries the fields for client creation
type CreateClientInput struct {
	Name               string `json:"name"`
	Description        string `json:"description"`
	ContactEmail       string `json:"contact_email"`
	ContactPhone       string `json:"contact_phone"`
	Address            string `json:"address"`
	AssignedEmployeeID uint   `json:"assigned_employee_id"`
}

// UpdateClientInput carries the fields for a partial client update
type UpdateClientInput struct {
	Name               *string `json:"name"`
	Description        *string `json:"description"`
	ContactEmail       *string `json:"contact_email"`
	ContactPhone       *string `json:"contact_phone"`
	Address            *string `json:"address"`
	AssignedEmployeeID *uint   `json:"assigned_employee_id"`
}

// Create creates a client. Admin only.
func (s *ClientService) Create(ctx context.Context, p authz.Principal, input CreateClientInput) (*model.Client, error) {
	if !s.resolver.CanCreateClient(p) {
		prometheus.RecordForbidden("client", "create")
		return nil, apperr.Forbidden("Only admins can create clients")
	}
	if input.Name == "" {
		return nil, apperr.Validation("name is required")
	}
	if input.AssignedEmployeeID == 0 {
		return nil, apperr.Validation("assigned_employee_id is required")
	}

	client := model.Client{
		TenantID:           p.TenantID,
		Name:               input.Name,
		Description:        input.Description,
		ContactEmail:       input.ContactEmail,
		ContactPhone:       input.ContactPhone,
		Address:            input.Address,
		AssignedEmployeeID: input.AssignedEmployeeID,
		IsActive:           true,
	}
	if err := s.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	prometheus.RecordEntityOperation("client", "create")
	s.audit.Record(ctx, audit.Entry{
		TenantID:   p.TenantID,
		UserID:     &p.UserID,
		Action:     model.AuditActionCreate,
		Resource:   model.AuditResourceClient,
		ResourceID: fmt.Sprint(client.ID),
		NewValues:  model.JSONMap{"name": client.Name, "assigned_employee_id": client.AssignedEmployeeID},
	})
	return &client, nil
}

// List returns active clients visible to the principal: all for admins,
// assigned-only for everyone else.
func (s *ClientService) List(ctx context.Context, p authz.Principal) ([]model.Client, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	query := s.db.WithContext(ctx).
		Scopes(authz.TenantScope(p.TenantID), authz.ActiveScope).
		Preload("AssignedEmployee")
	if !p.IsAdmin() {
		query = query.Where("assigned_employee_id = ?", p.UserID)
	}

	var clients []model.Client
	if err := query.Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// Get returns one client by id. The tenant scope is applied before the
// existence check, so a cross-tenant id reads as not found.
func (s *ClientService) Get(ctx context.Context, p authz.Principal, id uint, includeInactive bool) (*model.Client, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var client model.Client
	err := s.db.WithContext(ctx).
		Scopes(authz.TenantScope(p.TenantID), authz.VisibilityScope(p, includeInactive)).
		Preload("AssignedEmployee").
		First(&client, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Client not found")
	}
	if err != nil {
		return nil, err
	}

	if !s.resolver.CanReadClient(p, &client) {
		prometheus.RecordForbidden("client", "read")
		return nil, apperr.Forbidden("You do not have access to this client")
	}
	return &client, nil
}

// Update applies a partial update to a client. Admin only.
func (s *ClientService) Update(ctx context.Context, p authz.Principal, id uint, input UpdateClientInput) (*model.Client, error) {
	var client model.Client
	err := s.db.WithContext(ctx).
		Scopes(authz.TenantScope(p.TenantID), authz.ActiveScope).
		First(&client, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Client not found")
	}
	if err != nil {
		return nil, err
	}

	if !s.resolver.CanUpdateClient(p) {
		prometheus.RecordForbidden("client", "update")
		return nil, apperr.Forbidden("Only admins can update clients")
	}

	old := model.JSONMap{"name": client.Name, "assigned_employee_id": client.AssignedEmployeeID}

	if input.Name != nil {
		client.Name = *input.Name
	}
	if input.Description != nil {
		client.Description = *input.Description
	}
	if input.ContactEmail != nil {
		client.ContactEmail = *input.ContactEmail
	}
	if input.ContactPhone != nil {
		client.ContactPhone = *input.ContactPhone
	}
	if input.Address != nil {
		client.Address = *input.Address
	}
	if input.AssignedEmployeeID != nil {
		client.AssignedEmployeeID = *input.AssignedEmployeeID
	}

	if err := s.db.WithContext(ctx).Save(&client).Error; err != nil {
		return nil, err
	}

	prometheus.RecordEntityOperation("client", "update")
	s.audit.Record(ctx, audit.Entry{
		TenantID:   p.TenantID,
		UserID:     &p.UserID,
		Action:     model.AuditActionUpdate,
		Resource:   model.AuditResourceClient,
		ResourceID: fmt.Sprint(client.ID),
		OldValues:  old,
		NewValues:  model.JSONMap{"name": client.Name, "assigned_employee_id": client.AssignedEmployeeID},
	})
	return &client, nil
}

// Delete soft-deletes a client. Admin only. Deleting an already-deleted
// client is a no-op, not an error.
func (s *ClientService) Delete(ctx context.Context, p authz.Principal, id uint) error {
	var client model.Client
	err := s.db.WithContext(ctx).
		Scopes(authz.TenantScope(p.TenantID)).
		First(&client, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("Client not found")
	}
	if err != nil {
		return err
	}

	if !s.resolver.CanDeleteClient(p) {
		prometheus.RecordForbidden("client", "delete")
		return apperr.Forbidden("Only admins can delete clients")
	}

	if err := s.db.WithContext(ctx).Model(&client).Update("is_active", false).Error; err != nil {
		return err
	}

	prometheus.RecordEntityOperation("client", "delete")
	s.audit.Record(ctx, audit.Entry{
		TenantID:   p.TenantID,
		UserID:     &p.UserID,
		Action:     model.AuditActionDelete,
		Resource:   model.AuditResourceClient,
		ResourceID: fmt.Sprint(client.ID),
		OldValues:  model.JSONMap{"is_active": true},
		NewValues:  model.JSONMap{"is_active": false},
	})
	return nil
}

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
	"github.com/MNabeel-Git/RecruitmentManagementSystem/pkg/cache"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/pkg/logger"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RoleService manages roles and permissions. Everything here is admin-only;
// it also provides the permission-flattening used at login.
type RoleService struct {
	db       *gorm.DB
	resolver *authz.Resolver
	audit    *audit.Recorder
	perms    *cache.PermissionCache
}

// NewRoleService creates a role service. perms may be nil (cache disabled).
func NewRoleService(db *gorm.DB, resolver *authz.Resolver, recorder *audit.Recorder, perms *cache.PermissionCache) *RoleService {
	return &RoleService{db: db, resolver: resolver, audit: recorder, perms: perms}
}

// CreateRoleInput carries the fields for role creation
type CreateRoleInput struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	PermissionIDs []uint `json:"permission_ids"`
}

// UpdateRoleInput carries the fields for a partial role update.
// PermissionIDs, when non-nil, replaces the role's permission set.
type UpdateRoleInput struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	PermissionIDs []uint  `json:"permission_ids"`
}

// CreatePermissionInput carries the fields for permission creation
type CreatePermissionInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdatePermissionInput carries the fields for a partial permission update
type UpdatePermissionInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// CreateRole creates a role. Admin only; names are unique per tenant.
func (s *RoleService) CreateRole(ctx context.Context, p authz.Principal, input CreateRoleInput) (*model.Role, error) {
	if !s.resolver.CanManageRoles(p) {
		prometheus.RecordForbidden("role", "create")
		return nil, apperr.Forbidden("Only admins can manage roles")
	}
	if input.Name == "" {
		return nil, apperr.Validation("name is required")
	}

	var existing model.Role
	err := s.db.WithContext(ctx).
		Scopes(authz.TenantScope(p.TenantID)).
		Where("name = ?", input.Name).
		First(&existing).Error
	if err == nil {
		return nil, apperr.Conflict(fmt.Sprintf("Role '%s' already exists", input.Name))
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var permissions []model.Permission
	if len(input.PermissionIDs) > 0 {
		err := s.db.WithContext(ctx).
			Scopes(authz.TenantScope(p.TenantID), authz.ActiveScope).
			Where("id IN ?", input.PermissionIDs).
			Find(&permissions).Error
		if err != nil {
			return nil, err
		}
	}

	role := model.Role{
		TenantID:    p.TenantID,
		Name:        input.Name,
		Description: input.Description,
		Permissions: permissions,
		IsActive:    true,
	}
	if err := s.db.WithContext(ctx).Create(&role).Error; err != nil {
		return nil, err
	}

	prometheus.RecordEntityOperation("role", "create")
	s.audit.Record(ctx, audit.Entry{
		TenantID:   p.TenantID,
		UserID:     &p.UserID,
		Action:     model.AuditActionCreate,
		Resource:   model.AuditResourceRole,
		ResourceID: fmt.Sprint(role.ID),
		NewValues:  model.JSONMap{"name": role.Name},
	})
	return &role, nil
}

// ListRoles returns active roles in the tenant. Admin only.
func (s *RoleService) ListRoles(ctx context.Context, p authz.Principal) ([]model.Role, error) {
	if !s.resolver.CanManageRoles(p) {
		prometheus.RecordForbidden("role", "read")
		return nil, apperr.Forbidden("Only admins can manage roles")
	}
	var roles []model.Role
	err := s.db.WithContext(ctx).
		Scopes(authz.TenantScope(p.TenantID), authz.ActiveScope).
		Preload("Permissions").
		Find(&roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}

// GetRole returns one role by id. Admin only.
func (s *RoleService) GetRole(ctx context.Context, p authz.Principal, id uint) (*model.Role, error) {
	if !s.resolver.CanManageRoles(p) {
		prometheus.RecordForbidden("role", "read")
		return nil, apperr.Forbidden("Only admins can manage roles")
	}
	var role model.Role
	err := s.db.WithContext(ctx).
		Scopes(authz.TenantScope(p.TenantID), authz.ActiveScope).
		Preload("Permissions").
		First(&role, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Role not found")
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// UpdateRole applies a partial update to a role. Admin only; a rename keeps
// the per-tenant uniqueness guarantee. Grant changes drop the cached
// permission sets of every user holding the role, so they never outlive the
// cache TTL.
func (s *RoleService) UpdateRole(ctx context.Context, p authz.Principal, id uint, input UpdateRoleInput) (*model.Role, error) {
	if !s.resolver.CanManageRoles(p) {
		prometheus.RecordForbidden("role", "update")
		return nil, apperr.Forbidden("Only admins can manage roles")
	}

	var role model.Role
	err := s.db.WithContext(ctx).
		Scopes(authz.TenantScope(p.TenantID), authz.ActiveScope).
		Preload("Permissions").
		First(&role, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Role not found")
	}
	if err != nil {
		return nil, err
	}

	old := model.JSONMap{"name": role.Name, "description": role.Description}

	if input.Name != nil && *input.Name != role.Name {
		var existing model.Role
		err := s.db.WithContext(ctx).
			Scopes(authz.TenantScope(p.TenantID)).
			Where("name = ? AND id <> ?", *input.Name, role.ID).
			First(&existing).Error
		if err == nil {
			return nil, apperr.Conflict(fmt.Sprintf("Role '%s' already exists", *input.Name))
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		role.Name = *input.Name
	}
	if input.Description != nil {
		role.Description = *input.Description
	}

	if err := s.db.WithContext(ctx).Save(&role).Error; err != nil {
		return nil, err
	}
	if input.PermissionIDs != nil {
		var permissions []model.Permission
		if len(input.PermissionIDs) > 0 {
			err := s.db.WithContext(ctx).
				Scopes(authz.TenantScope(p.TenantID), authz.ActiveScope).
				Where("id IN ?", input.PermissionIDs).
				Find(&permissions).Error
			if err != nil {
				return nil, err
			}
		}
		if err := s.db.WithContext(ctx).Model(&role).Association("Permissions").Replace(permissions); err != nil {
			return nil, err
		}
		role.Permissions = permissions
	}

	s.invalidateRoleUsers(ctx, []uint{role.ID})

	prometheus.RecordEntityOperation("role", "update")
	s.audit.Record(ctx, audit.Entry{
		TenantID:   p.TenantID,
		UserID:     &p.UserID,
		Action:     model.AuditActionUpdate,
		Resource:   model.AuditResourceRole,
		ResourceID: fmt.Sprint(role.ID),
		OldValues:  old,
		NewValues:  model.JSONMap{"name": role.Name, "description": role.Description},
	})
	return &role, nil
}

// DeleteRole soft-deletes a role. Admin only, idempotent.
func (s *RoleService) DeleteRole(ctx context.Context, p authz.Principal, id uint) error {
	if !s.resolver.CanManageRoles(p) {
		prometheus.RecordForbidden("role", "delete")
		return apperr.Forbidden("Only admins can manage roles")
	}
	var role model.Role
	err := s.db.WithContext(ctx).
		Scopes(authz.TenantScope(p.TenantID)).
		First(&role, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("Role not found")
	}
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Model(&role).Update("is_active", false).Error; err != nil {
		return err
	}

	s.invalidateRoleUsers(ctx, []uint{role.ID})

	prometheus.RecordEntityOperation("role", "delete")
	s.audit.Record(ctx, audit.Entry{
		TenantID:   p.TenantID,
		UserID:     &p.UserID,
		Action:     model.AuditActionDelete,
		Resource:   model.AuditResourceRole,
		ResourceID: fmt.Sprint(role.ID),
		OldValues:  model.JSONMap{"is_active": true},
		NewValues:  model.JSONMap{"is_active": false},
	})
	return nil
}

// CreatePermission creates a permission. Admin only; names are unique per
// tenant.
func (s *RoleService) CreatePermission(ctx context.Context, p authz.Principal, input CreatePermissionInput) (*model.Permission, error) {
	if !s.resolver.CanManageRoles(p) {
		prometheus.RecordForbidden("permission", "create")
		return nil, apperr.Forbidden("Only admins can manage permissions")
	}
	if input.Name == "" {
		return nil, apperr.Validation("name is required")
	}

	var existing model.Permission
	err := s.db.WithContext(ctx).
		Scopes(authz.TenantScope(p.TenantID)).
		Where("name = ?", input.Name).
		First(&existing).Error
	if err == nil {
		return nil, apperr.Conflict(fmt.Sprintf("Permission '%s' already exists", input.Name))
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	permission := model.Permission{
		TenantID:    p.TenantID,
		Name:        input.Name,
		Description: input.Description,
		IsActive:    true,
	}
	if err := s.db.WithContext(ctx).Create(&permission).Error; err != nil {
		return nil, err
	}

	prometheus.RecordEntityOperation("permission", "create")
	s.audit.Record(ctx, audit.Entry{
		TenantID:   p.TenantID,
		UserID:     &p.UserID,
		Action:     model.AuditActionCreate,
		Resource:   model.AuditResourcePermission,
		ResourceID: fmt.Sprint(permission.ID),
		NewValues:  model.JSONMap{"name": permission.Name},
	})
	return &permission, nil
}

// ListPermissions returns active permissions in the tenant. Admin only.
func (s *RoleService) ListPermissions(ctx context.Context, p authz.Principal) ([]model.Permission, error) {
	if !s.resolver.CanManageRoles(p) {
		prometheus.RecordForbidden("permission", "read")
		return nil, apperr.Forbidden("Only admins can manage permissions")
	}
	var permissions []model.Permission
	err := s.db.WithContext(ctx).
		Scopes(authz.TenantScope(p.TenantID), authz.ActiveScope).
		Find(&permissions).Error
	if err != nil {
		return nil, err
	}
	return permissions, nil
}

// GetPermission returns one permission by id. Admin only.
func (s *RoleService) GetPermission(ctx context.Context, p authz.Principal, id uint) (*model.Permission, error) {
	if !s.resolver.CanManageRoles(p) {
		prometheus.RecordForbidden("permission", "read")
		return nil, apperr.Forbidden("Only admins can manage permissions")
	}
	var permission model.Permission
	err := s.db.WithContext(ctx).
		Scopes(authz.TenantScope(p.TenantID), authz.ActiveScope).
		First(&permission, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Permission not found")
	}
	if err != nil {
		return nil, err
	}
	return &permission, nil
}

// UpdatePermission applies a partial update to a permission. Admin only; a
// rename keeps per-tenant uniqueness and drops the cached permission sets of
// every user granted it through a role.
func (s *RoleService) UpdatePermission(ctx context.Context, p authz.Principal, id uint, input UpdatePermissionInput) (*model.Permission, error) {
	if !s.resolver.CanManageRoles(p) {
		prometheus.RecordForbidden("permission", "update")
		return nil, apperr.Forbidden("Only admins can manage permissions")
	}

	var permission model.Permission
	err := s.db.WithContext(ctx).
		Scopes(authz.TenantScope(p.TenantID), authz.ActiveScope).
		First(&permission, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Permission not found")
	}
	if err != nil {
		return nil, err
	}

	old := model.JSONMap{"name": permission.Name, "description": permission.Description}

	if input.Name != nil && *input.Name != permission.Name {
		var existing model.Permission
		err := s.db.WithContext(ctx).
			Scopes(authz.TenantScope(p.TenantID)).
			Where("name = ? AND id <> ?", *input.Name, permission.ID).
			First(&existing).Error
		if err == nil {
			return nil, apperr.Conflict(fmt.Sprintf("Permission '%s' already exists", *input.Name))
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		permission.Name = *input.Name
	}
	if input.Description != nil {
		permission.Description = *input.Description
	}

	if err := s.db.WithContext(ctx).Save(&permission).Error; err != nil {
		return nil, err
	}

	s.invalidatePermissionUsers(ctx, permission.ID)

	prometheus.RecordEntityOperation("permission", "update")
	s.audit.Record(ctx, audit.Entry{
		TenantID:   p.TenantID,
		UserID:     &p.UserID,
		Action:     model.AuditActionUpdate,
		Resource:   model.AuditResourcePermission,
		ResourceID: fmt.Sprint(permission.ID),
		OldValues:  old,
		NewValues:  model.JSONMap{"name": permission.Name, "description": permission.Description},
	})
	return &permission, nil
}

// DeletePermission soft-deletes a permission. Admin only, idempotent.
func (s *RoleService) DeletePermission(ctx context.Context, p authz.Principal, id uint) error {
	if !s.resolver.CanManageRoles(p) {
		prometheus.RecordForbidden("permission", "delete")
		return apperr.Forbidden("Only admins can manage permissions")
	}
	var permission model.Permission
	err := s.db.WithContext(ctx).
		Scopes(authz.TenantScope(p.TenantID)).
		First(&permission, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("Permission not found")
	}
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Model(&permission).Update("is_active", false).Error; err != nil {
		return err
	}

	s.invalidatePermissionUsers(ctx, permission.ID)

	prometheus.RecordEntityOperation("permission", "delete")
	s.audit.Record(ctx, audit.Entry{
		TenantID:   p.TenantID,
		UserID:     &p.UserID,
		Action:     model.AuditActionDelete,
		Resource:   model.AuditResourcePermission,
		ResourceID: fmt.Sprint(permission.ID),
		OldValues:  model.JSONMap{"is_active": true},
		NewValues:  model.JSONMap{"is_active": false},
	})
	return nil
}

// UserPermissions flattens a user's roles into a deduplicated set of active
// permission names. Results go through the redis cache when configured.
func (s *RoleService) UserPermissions(ctx context.Context, userID uint, roleIDs []uint) ([]string, error) {
	if cached, ok := s.perms.Get(ctx, userID); ok {
		return cached, nil
	}
	defer prometheus.TrackDBOperation("query")(time.Now())

	if len(roleIDs) == 0 {
		return []string{}, nil
	}

	var roles []model.Role
	err := s.db.WithContext(ctx).
		Where("id IN ? AND is_active = ?", roleIDs, true).
		Preload("Permissions").
		Find(&roles).Error
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	permissions := make([]string, 0)
	for _, role := range roles {
		for _, permission := range role.Permissions {
			if !permission.IsActive {
				continue
			}
			if _, dup := seen[permission.Name]; dup {
				continue
			}
			seen[permission.Name] = struct{}{}
			permissions = append(permissions, permission.Name)
		}
	}

	s.perms.Set(ctx, userID, permissions)
	return permissions, nil
}

// invalidateRoleUsers drops the cached permission sets of every user holding
// one of the given roles
func (s *RoleService) invalidateRoleUsers(ctx context.Context, roleIDs []uint) {
	if s.perms == nil || len(roleIDs) == 0 {
		return
	}
	var userIDs []uint
	err := s.db.WithContext(ctx).
		Table("user_roles").
		Where("role_id IN ?", roleIDs).
		Distinct().
		Pluck("user_id", &userIDs).Error
	if err != nil {
		logger.FromContext(ctx).Warn("Failed to resolve users for cache invalidation", zap.Error(err))
		return
	}
	for _, userID := range userIDs {
		s.perms.Invalidate(ctx, userID)
	}
}

// invalidatePermissionUsers drops the cached permission sets of every user
// granted the permission through any role
func (s *RoleService) invalidatePermissionUsers(ctx context.Context, permissionID uint) {
	if s.perms == nil {
		return
	}
	var roleIDs []uint
	err := s.db.WithContext(ctx).
		Table("role_permissions").
		Where("permission_id = ?", permissionID).
		Pluck("role_id", &roleIDs).Error
	if err != nil {
		logger.FromContext(ctx).Warn("Failed to resolve roles for cache invalidation", zap.Error(err))
		return
	}
	s.invalidateRoleUsers(ctx, roleIDs)
}

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
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService manages user accounts and credential checks
type UserService struct {
	db       *gorm.DB
	resolver *authz.Resolver
	audit    *audit.Recorder
}

// NewUserService creates a user service
func NewUserService(db *gorm.DB, resolver *authz.Resolver, recorder *audit.Recorder) *UserService {
	return &UserService{db: db, resolver: resolver, audit: recorder}
}

// CreateUserInput carries the fields for user creation
type CreateUserInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	RoleIDs  []uint `json:"role_ids"`
}

// Create creates a user with hashed credentials. Admin only.
func (s *UserService) Create(ctx context.Context, p authz.Principal, input CreateUserInput) (*model.User, error) {
	if !p.IsAdmin() {
		prometheus.RecordForbidden("user", "create")
		return nil, apperr.Forbidden("Only admins can create users")
	}
	if input.Email == "" || input.Password == "" || input.FullName == "" {
		return nil, apperr.Validation("email, password and full_name are required")
	}

	var existing model.User
	err := s.db.WithContext(ctx).Where("email = ?", input.Email).First(&existing).Error
	if err == nil {
		return nil, apperr.Conflict("email already registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var roles []model.Role
	if len(input.RoleIDs) > 0 {
		err := s.db.WithContext(ctx).
			Scopes(authz.TenantScope(p.TenantID), authz.ActiveScope).
			Where("id IN ?", input.RoleIDs).
			Find(&roles).Error
		if err != nil {
			return nil, err
		}
	}

	user := model.User{
		Email:    input.Email,
		Password: string(hashed),
		FullName: input.FullName,
		TenantID: p.TenantID,
		Roles:    roles,
		IsActive: true,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}

	prometheus.RecordEntityOperation("user", "create")
	s.audit.Record(ctx, audit.Entry{
		TenantID:   p.TenantID,
		UserID:     &p.UserID,
		Action:     model.AuditActionCreate,
		Resource:   model.AuditResourceUser,
		ResourceID: fmt.Sprint(user.ID),
		NewValues:  model.JSONMap{"email": user.Email, "full_name": user.FullName},
	})
	return &user, nil
}

// List returns active users in the tenant. Admin only.
func (s *UserService) List(ctx context.Context, p authz.Principal) ([]model.User, error) {
	if !p.IsAdmin() {
		prometheus.RecordForbidden("user", "read")
		return nil, apperr.Forbidden("Only admins can list users")
	}
	var users []model.User
	err := s.db.WithContext(ctx).
		Scopes(authz.TenantScope(p.TenantID), authz.ActiveScope).
		Preload("Roles").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Get returns one user by id. Admins, or the user themselves.
func (s *UserService) Get(ctx context.Context, p authz.Principal, id uint) (*model.User, error) {
	if !p.IsAdmin() && p.UserID != id {
		prometheus.RecordForbidden("user", "read")
		return nil, apperr.Forbidden("You do not have access to this user")
	}
	var user model.User
	err := s.db.WithContext(ctx).
		Scopes(authz.TenantScope(p.TenantID), authz.ActiveScope).
		Preload("Roles").
		First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate verifies credentials and returns the user with roles
// preloaded, or nil when the credentials don't match an active user.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	err := s.db.WithContext(ctx).
		Where("email = ? AND is_active = ?", email, true).
		Preload("Roles").
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, nil
	}
	return &user, nil
}

// TouchLastLogin records a successful login time
func (s *UserService) TouchLastLogin(ctx context.Context, userID uint) error {
	now := time.Now()
	return s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_login_at", &now).Error
}

package handler

import (
	"fmt"
	"net/http"

	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/audit"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/middleware"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/model"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/service"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/pkg/jwtutil"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/pkg/logger"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthHandler serves login and profile endpoints
type AuthHandler struct {
	users *service.UserService
	roles *service.RoleService
	audit *audit.Recorder
}

// NewAuthHandler creates an auth handler
func NewAuthHandler(users *service.UserService, roles *service.RoleService, recorder *audit.Recorder) *AuthHandler {
	return &AuthHandler{users: users, roles: roles, audit: recorder}
}

// Login authenticates a user and issues a JWT scoped to their tenant
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Email == "" || req.Password == "" {
		prometheus.RecordAuthError("incomplete_credentials")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
	}

	ctx := c.Request().Context()
	user, err := h.users.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		log.Error("Login lookup failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	if user == nil {
		log.Warn("Invalid credentials", zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_credentials")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	permissions, err := h.roles.UserPermissions(ctx, user.ID, user.RoleIDs())
	if err != nil {
		log.Error("Failed to resolve permissions", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}

	token, err := jwtutil.GenerateToken(user.Email, user.ID, user.TenantID, user.RoleNames(), permissions)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}
	prometheus.IncreaseActiveTokens()

	if err := h.users.TouchLastLogin(ctx, user.ID); err != nil {
		log.Warn("Failed to record last login", zap.Error(err))
	}

	h.audit.Record(ctx, audit.Entry{
		TenantID:   user.TenantID,
		UserID:     &user.ID,
		Action:     model.AuditActionLogin,
		Resource:   model.AuditResourceUser,
		ResourceID: fmt.Sprint(user.ID),
		IPAddress:  c.RealIP(),
		UserAgent:  c.Request().UserAgent(),
	})

	log.Info("User logged in",
		zap.String("email", user.Email),
		zap.Strings("roles", user.RoleNames()))

	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"user": map[string]interface{}{
			"id":        user.ID,
			"email":     user.Email,
			"full_name": user.FullName,
			"tenant_id": user.TenantID,
			"roles":     user.RoleNames(),
		},
		"permissions": permissions,
	})
}

// Profile returns the authenticated user's own record
func (h *AuthHandler) Profile(c echo.Context) error {
	p, ok := middleware.PrincipalFromEcho(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not authenticated"})
	}

	user, err := h.users.Get(c.Request().Context(), p, p.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

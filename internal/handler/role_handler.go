package handler

import (
	"net/http"

	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/middleware"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/service"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RoleHandler serves role and permission management endpoints
type RoleHandler struct {
	roles *service.RoleService
}

// NewRoleHandler creates a role handler
func NewRoleHandler(roles *service.RoleService) *RoleHandler {
	return &RoleHandler{roles: roles}
}

// CreateRole handles POST /api/roles
func (h *RoleHandler) CreateRole(c echo.Context) error {
	p, _ := middleware.PrincipalFromEcho(c)

	var input service.CreateRoleInput
	if err := c.Bind(&input); err != nil {
		logger.FromEcho(c).Error("Failed to parse role request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	role, err := h.roles.CreateRole(c.Request().Context(), p, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, role)
}

// ListRoles handles GET /api/roles
func (h *RoleHandler) ListRoles(c echo.Context) error {
	p, _ := middleware.PrincipalFromEcho(c)

	roles, err := h.roles.ListRoles(c.Request().Context(), p)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": roles})
}

// GetRole handles GET /api/roles/:id
func (h *RoleHandler) GetRole(c echo.Context) error {
	p, _ := middleware.PrincipalFromEcho(c)
	id, err := parseID(c)
	if err != nil {
		return err
	}

	role, err := h.roles.GetRole(c.Request().Context(), p, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, role)
}

// UpdateRole handles PATCH /api/roles/:id
func (h *RoleHandler) UpdateRole(c echo.Context) error {
	p, _ := middleware.PrincipalFromEcho(c)
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var input service.UpdateRoleInput
	if err := c.Bind(&input); err != nil {
		logger.FromEcho(c).Error("Failed to parse role update", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	role, err := h.roles.UpdateRole(c.Request().Context(), p, id, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, role)
}

// DeleteRole handles DELETE /api/roles/:id
func (h *RoleHandler) DeleteRole(c echo.Context) error {
	p, _ := middleware.PrincipalFromEcho(c)
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.roles.DeleteRole(c.Request().Context(), p, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Role deleted successfully"})
}

// CreatePermission handles POST /api/permissions
func (h *RoleHandler) CreatePermission(c echo.Context) error {
	p, _ := middleware.PrincipalFromEcho(c)

	var input service.CreatePermissionInput
	if err := c.Bind(&input); err != nil {
		logger.FromEcho(c).Error("Failed to parse permission request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	permission, err := h.roles.CreatePermission(c.Request().Context(), p, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, permission)
}

// ListPermissions handles GET /api/permissions
func (h *RoleHandler) ListPermissions(c echo.Context) error {
	p, _ := middleware.PrincipalFromEcho(c)

	permissions, err := h.roles.ListPermissions(c.Request().Context(), p)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": permissions})
}

// GetPermission handles GET /api/permissions/:id
func (h *RoleHandler) GetPermission(c echo.Context) error {
	p, _ := middleware.PrincipalFromEcho(c)
	id, err := parseID(c)
	if err != nil {
		return err
	}

	permission, err := h.roles.GetPermission(c.Request().Context(), p, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, permission)
}

// UpdatePermission handles PATCH /api/permissions/:id
func (h *RoleHandler) UpdatePermission(c echo.Context) error {
	p, _ := middleware.PrincipalFromEcho(c)
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var input service.UpdatePermissionInput
	if err := c.Bind(&input); err != nil {
		logger.FromEcho(c).Error("Failed to parse permission update", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	permission, err := h.roles.UpdatePermission(c.Request().Context(), p, id, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, permission)
}

// DeletePermission handles DELETE /api/permissions/:id
func (h *RoleHandler) DeletePermission(c echo.Context) error {
	p, _ := middleware.PrincipalFromEcho(c)
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.roles.DeletePermission(c.Request().Context(), p, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Permission deleted successfully"})
}

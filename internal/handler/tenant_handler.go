package handler

import (
	"net/http"

	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/middleware"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/service"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// TenantHandler serves tenant provisioning endpoints
type TenantHandler struct {
	tenants *service.TenantService
}

// NewTenantHandler creates a tenant handler
func NewTenantHandler(tenants *service.TenantService) *TenantHandler {
	return &TenantHandler{tenants: tenants}
}

// Create handles POST /api/tenants
func (h *TenantHandler) Create(c echo.Context) error {
	p, _ := middleware.PrincipalFromEcho(c)

	var input service.CreateTenantInput
	if err := c.Bind(&input); err != nil {
		logger.FromEcho(c).Error("Failed to parse tenant request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	tenant, err := h.tenants.Create(c.Request().Context(), p, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, tenant)
}

// List handles GET /api/tenants
func (h *TenantHandler) List(c echo.Context) error {
	p, _ := middleware.PrincipalFromEcho(c)

	tenants, err := h.tenants.List(c.Request().Context(), p)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": tenants})
}

// Get handles GET /api/tenants/:id
func (h *TenantHandler) Get(c echo.Context) error {
	p, _ := middleware.PrincipalFromEcho(c)
	id, err := parseID(c)
	if err != nil {
		return err
	}

	tenant, err := h.tenants.Get(c.Request().Context(), p, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, tenant)
}

package handler

import (
	"net/http"

	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/middleware"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/service"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// JobTemplateHandler serves job template endpoints. Templates are immutable,
// so there is no update route.
type JobTemplateHandler struct {
	templates *service.JobTemplateService
}

// NewJobTemplateHandler creates a job template handler
func NewJobTemplateHandler(templates *service.JobTemplateService) *JobTemplateHandler {
	return &JobTemplateHandler{templates: templates}
}

// Create handles POST /api/job-templates
func (h *JobTemplateHandler) Create(c echo.Context) error {
	p, _ := middleware.PrincipalFromEcho(c)

	var input service.CreateJobTemplateInput
	if err := c.Bind(&input); err != nil {
		logger.FromEcho(c).Error("Failed to parse job template request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	template, err := h.templates.Create(c.Request().Context(), p, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, template)
}

// List handles GET /api/job-templates
func (h *JobTemplateHandler) List(c echo.Context) error {
	p, _ := middleware.PrincipalFromEcho(c)

	templates, err := h.templates.List(c.Request().Context(), p, uintQuery(c, "client_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": templates})
}

// Get handles GET /api/job-templates/:id
func (h *JobTemplateHandler) Get(c echo.Context) error {
	p, _ := middleware.PrincipalFromEcho(c)
	id, err := parseID(c)
	if err != nil {
		return err
	}

	template, err := h.templates.Get(c.Request().Context(), p, id, boolQuery(c, "include_inactive"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, template)
}

// Delete handles DELETE /api/job-templates/:id
func (h *JobTemplateHandler) Delete(c echo.Context) error {
	p, _ := middleware.PrincipalFromEcho(c)
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.templates.Delete(c.Request().Context(), p, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Job template deleted successfully"})
}

package handler

import (
	"net/http"

	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/middleware"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/service"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// JobVacancyHandler serves job vacancy endpoints
type JobVacancyHandler struct {
	vacancies *service.JobVacancyService
}

// NewJobVacancyHandler creates a job vacancy handler
func NewJobVacancyHandler(vacancies *service.JobVacancyService) *JobVacancyHandler {
	return &JobVacancyHandler{vacancies: vacancies}
}

// Create handles POST /api/job-vacancies
func (h *JobVacancyHandler) Create(c echo.Context) error {
	p, _ := middleware.PrincipalFromEcho(c)

	var input service.CreateJobVacancyInput
	if err := c.Bind(&input); err != nil {
		logger.FromEcho(c).Error("Failed to parse job vacancy request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	vacancy, err := h.vacancies.Create(c.Request().Context(), p, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, vacancy)
}

// List handles GET /api/job-vacancies with pagination
func (h *JobVacancyHandler) List(c echo.Context) error {
	p, _ := middleware.PrincipalFromEcho(c)

	page, err := h.vacancies.List(c.Request().Context(), p,
		uintQuery(c, "client_id"),
		intQuery(c, "page"),
		intQuery(c, "limit"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// Get handles GET /api/job-vacancies/:id
func (h *JobVacancyHandler) Get(c echo.Context) error {
	p, _ := middleware.PrincipalFromEcho(c)
	id, err := parseID(c)
	if err != nil {
		return err
	}

	vacancy, err := h.vacancies.Get(c.Request().Context(), p, id, boolQuery(c, "include_inactive"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, vacancy)
}

// Update handles PATCH /api/job-vacancies/:id
func (h *JobVacancyHandler) Update(c echo.Context) error {
	p, _ := middleware.PrincipalFromEcho(c)
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var input service.UpdateJobVacancyInput
	if err := c.Bind(&input); err != nil {
		logger.FromEcho(c).Error("Failed to parse job vacancy update", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	vacancy, err := h.vacancies.Update(c.Request().Context(), p, id, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, vacancy)
}

// Delete handles DELETE /api/job-vacancies/:id
func (h *JobVacancyHandler) Delete(c echo.Context) error {
	p, _ := middleware.PrincipalFromEcho(c)
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.vacancies.Delete(c.Request().Context(), p, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Job vacancy deleted successfully"})
}

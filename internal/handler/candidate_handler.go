package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/middleware"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/service"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CandidateHandler serves candidate endpoints, including the XLSX export
type CandidateHandler struct {
	candidates *service.CandidateService
}

// NewCandidateHandler creates a candidate handler
func NewCandidateHandler(candidates *service.CandidateService) *CandidateHandler {
	return &CandidateHandler{candidates: candidates}
}

// Create handles POST /api/candidates
func (h *CandidateHandler) Create(c echo.Context) error {
	p, _ := middleware.PrincipalFromEcho(c)

	var input service.CreateCandidateInput
	if err := c.Bind(&input); err != nil {
		logger.FromEcho(c).Error("Failed to parse candidate request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	candidate, err := h.candidates.Create(c.Request().Context(), p, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, candidate)
}

// List handles GET /api/candidates with pagination
func (h *CandidateHandler) List(c echo.Context) error {
	p, _ := middleware.PrincipalFromEcho(c)

	page, err := h.candidates.List(c.Request().Context(), p,
		uintQuery(c, "job_vacancy_id"),
		intQuery(c, "page"),
		intQuery(c, "limit"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// Export handles GET /api/candidates/export?job_vacancy_id=N and streams an
// XLSX workbook of the vacancy's candidates
func (h *CandidateHandler) Export(c echo.Context) error {
	p, _ := middleware.PrincipalFromEcho(c)

	jobVacancyID := uintQuery(c, "job_vacancy_id")
	if jobVacancyID == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "job_vacancy_id is required"})
	}

	buf, err := h.candidates.ExportForVacancy(c.Request().Context(), p, *jobVacancyID)
	if err != nil {
		return respondError(c, err)
	}

	filename := fmt.Sprintf("candidates_%d_%s.xlsx", *jobVacancyID, time.Now().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}

// Get handles GET /api/candidates/:id
func (h *CandidateHandler) Get(c echo.Context) error {
	p, _ := middleware.PrincipalFromEcho(c)
	id, err := parseID(c)
	if err != nil {
		return err
	}

	candidate, err := h.candidates.Get(c.Request().Context(), p, id, boolQuery(c, "include_inactive"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, candidate)
}

// Update handles PATCH /api/candidates/:id
func (h *CandidateHandler) Update(c echo.Context) error {
	p, _ := middleware.PrincipalFromEcho(c)
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var input service.UpdateCandidateInput
	if err := c.Bind(&input); err != nil {
		logger.FromEcho(c).Error("Failed to parse candidate update", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	candidate, err := h.candidates.Update(c.Request().Context(), p, id, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, candidate)
}

// Delete handles DELETE /api/candidates/:id
func (h *CandidateHandler) Delete(c echo.Context) error {
	p, _ := middleware.PrincipalFromEcho(c)
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.candidates.Delete(c.Request().Context(), p, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Candidate deleted successfully"})
}

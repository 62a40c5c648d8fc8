package handler

import (
	"net/http"

	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/audit"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/middleware"
	"github.com/labstack/echo/v4"
)

// AuditHandler serves the audit log query endpoint
type AuditHandler struct {
	audit *audit.Recorder
}

// NewAuditHandler creates an audit handler
func NewAuditHandler(recorder *audit.Recorder) *AuditHandler {
	return &AuditHandler{audit: recorder}
}

// List handles GET /api/audit-logs. Admin only; results are pinned to the
// caller's tenant regardless of the requested filter.
func (h *AuditHandler) List(c echo.Context) error {
	p, _ := middleware.PrincipalFromEcho(c)
	if !p.IsAdmin() {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "Only admins can view audit logs"})
	}

	filter := audit.Filter{
		TenantID:   p.TenantID,
		UserID:     uintQuery(c, "user_id"),
		Resource:   c.QueryParam("resource"),
		ResourceID: c.QueryParam("resource_id"),
		Page:       intQuery(c, "page"),
		Limit:      intQuery(c, "limit"),
	}

	page, err := h.audit.List(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

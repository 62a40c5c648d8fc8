package handler

import (
	"net/http"
	"strconv"

	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/apperr"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// respondError maps a service error onto its HTTP status. Anything outside
// the application error taxonomy is a 500 and gets logged with its cause;
// classified errors carry messages that are safe to return to the caller.
func respondError(c echo.Context, err error) error {
	kind, ok := apperr.KindOf(err)
	if !ok {
		logger.FromEcho(c).Error("Unhandled service error", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}

	status := http.StatusInternalServerError
	switch kind {
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindForbidden:
		status = http.StatusForbidden
	case apperr.KindValidation:
		status = http.StatusBadRequest
	case apperr.KindConflict:
		status = http.StatusConflict
	}
	return c.JSON(status, echo.Map{"error": err.Error()})
}

// parseID reads the :id path parameter
func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

// uintQuery reads an optional unsigned query parameter
func uintQuery(c echo.Context, name string) *uint {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil
	}
	v := uint(value)
	return &v
}

// intQuery reads an optional integer query parameter, 0 when absent
func intQuery(c echo.Context, name string) int {
	value, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return value
}

// boolQuery reads an optional boolean query parameter
func boolQuery(c echo.Context, name string) bool {
	value, err := strconv.ParseBool(c.QueryParam(name))
	if err != nil {
		return false
	}
	return value
}

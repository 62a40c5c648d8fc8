package handler

import (
	"net/http"

	"github.com/MNabeel-Git/RecruitmentManagementSystem/pkg/database"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/prometheus"
	"github.com/labstack/echo/v4"
)

// HealthCheck reports service liveness and database reachability
func HealthCheck(c echo.Context) error {
	dbStatus := "up"
	if db := database.GetDB(); db != nil {
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(c.Request().Context()) != nil {
			dbStatus = "down"
		}
	} else {
		dbStatus = "down"
	}

	status := http.StatusOK
	healthy := "healthy"
	if dbStatus == "down" {
		status = http.StatusServiceUnavailable
		healthy = "degraded"
	}

	return c.JSON(status, echo.Map{
		"status":   healthy,
		"service":  "recruitment-service",
		"database": dbStatus,
	})
}

// MetricsHandler exposes the prometheus registry
func MetricsHandler(c echo.Context) error {
	handler := prometheus.GetPrometheusHandler()
	handler.ServeHTTP(c.Response(), c.Request())
	return nil
}

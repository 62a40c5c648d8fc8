package middleware

import (
	"net/http"
	"strings"

	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/authz"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/pkg/jwtutil"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/pkg/logger"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/prometheus"
	"github.com/labstack/echo/v4"
)

// AuthMiddleware validates the JWT token from the Authorization header and
// stores the claims and the derived principal on the context.
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromEcho(c)

		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Error("Missing Authorization header")
			prometheus.RecordAuthError("missing_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Error("Invalid Authorization header format")
			prometheus.RecordAuthError("invalid_auth_format")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
		}

		claims, err := jwtutil.ValidateToken(parts[1])
		if err != nil {
			log.Error("Invalid or expired token")
			prometheus.RecordAuthError("invalid_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
		}

		c.Set("user", claims)
		c.Set("principal", authz.Principal{
			UserID:      claims.UserID,
			TenantID:    claims.TenantID,
			Roles:       claims.Roles,
			Permissions: claims.Permissions,
		})

		return next(c)
	}
}

// PrincipalFromEcho returns the principal stored by AuthMiddleware
func PrincipalFromEcho(c echo.Context) (authz.Principal, bool) {
	p, ok := c.Get("principal").(authz.Principal)
	return p, ok
}

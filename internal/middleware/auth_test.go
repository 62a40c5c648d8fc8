package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/authz"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/pkg/jwtutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authRequest(t *testing.T, token string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthMiddlewareBuildsPrincipal(t *testing.T) {
	jwtutil.Initialize(&jwtutil.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})

	tenantID := uint(3)
	token, err := jwtutil.GenerateToken("admin@rms.com", 42, &tenantID,
		[]string{authz.RoleAdmin}, []string{"MANAGE_ROLES", "MANAGE_USERS"})
	require.NoError(t, err)

	c, _ := authRequest(t, token)
	handler := AuthMiddleware(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))

	p, ok := PrincipalFromEcho(c)
	require.True(t, ok)
	assert.Equal(t, uint(42), p.UserID)
	require.NotNil(t, p.TenantID)
	assert.Equal(t, uint(3), *p.TenantID)
	assert.True(t, p.IsAdmin())
	assert.True(t, p.HasPermission("MANAGE_ROLES"))
	assert.False(t, p.HasPermission("CREATE_CANDIDATE"))
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	jwtutil.Initialize(&jwtutil.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})

	c, rec := authRequest(t, "")
	handler := AuthMiddleware(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	_, ok := PrincipalFromEcho(c)
	assert.False(t, ok)
}

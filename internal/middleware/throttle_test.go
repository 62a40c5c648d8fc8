package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MNabeel-Git/RecruitmentManagementSystem/pkg/jwtutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func throttledRequest(t *testing.T, throttler *Throttler, claims *jwtutil.UserClaims) int {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if claims != nil {
		c.Set("user", claims)
	}

	handler := throttler.Middleware(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec.Code
}

func TestThrottlerAllowsWithinBurst(t *testing.T) {
	throttler := NewThrottler(1, 3)
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, throttledRequest(t, throttler, nil))
	}
}

func TestThrottlerRejectsOverBurst(t *testing.T) {
	throttler := NewThrottler(0.001, 1)
	assert.Equal(t, http.StatusOK, throttledRequest(t, throttler, nil))
	assert.Equal(t, http.StatusTooManyRequests, throttledRequest(t, throttler, nil))
}

func TestThrottlerTracksUsersIndependently(t *testing.T) {
	throttler := NewThrottler(0.001, 1)
	alice := &jwtutil.UserClaims{UserID: 1}
	bob := &jwtutil.UserClaims{UserID: 2}

	assert.Equal(t, http.StatusOK, throttledRequest(t, throttler, alice))
	assert.Equal(t, http.StatusTooManyRequests, throttledRequest(t, throttler, alice))
	// A different user has their own bucket.
	assert.Equal(t, http.StatusOK, throttledRequest(t, throttler, bob))
}

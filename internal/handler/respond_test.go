package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/apperr"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T, target string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRespondErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", apperr.NotFound("Client not found"), http.StatusNotFound},
		{"forbidden", apperr.Forbidden("no access"), http.StatusForbidden},
		{"validation", apperr.Validation("name is required"), http.StatusBadRequest},
		{"conflict", apperr.Conflict("already exists"), http.StatusConflict},
		{"unclassified", errors.New("connection refused"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext(t, "/")
			require.NoError(t, respondError(c, tt.err))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestRespondErrorHidesInternalDetails(t *testing.T) {
	c, rec := newTestContext(t, "/")
	require.NoError(t, respondError(c, errors.New("pq: relation does not exist")))
	assert.NotContains(t, rec.Body.String(), "relation")
	assert.Contains(t, rec.Body.String(), "internal server error")
}

func TestQueryHelpers(t *testing.T) {
	c, _ := newTestContext(t, "/?client_id=7&page=2&include_inactive=true&bad=abc")

	clientID := uintQuery(c, "client_id")
	require.NotNil(t, clientID)
	assert.Equal(t, uint(7), *clientID)
	assert.Nil(t, uintQuery(c, "missing"))
	assert.Nil(t, uintQuery(c, "bad"))

	assert.Equal(t, 2, intQuery(c, "page"))
	assert.Equal(t, 0, intQuery(c, "limit"))

	assert.True(t, boolQuery(c, "include_inactive"))
	assert.False(t, boolQuery(c, "missing"))
}

func TestParseID(t *testing.T) {
	c, _ := newTestContext(t, "/")
	c.SetParamNames("id")
	c.SetParamValues("42")
	id, err := parseID(c)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	c.SetParamValues("not-a-number")
	_, err = parseID(c)
	assert.Error(t, err)
}

package audit

import (
	"testing"

	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestSanitizeStripsSensitiveKeys(t *testing.T) {
	values := model.JSONMap{
		"email":       "admin@rms.com",
		"password":    "hunter2",
		"accessToken": "abc",
	}
	sanitized := Sanitize(values)
	assert.Equal(t, model.JSONMap{"email": "admin@rms.com"}, sanitized)
	// The input is left untouched.
	assert.Contains(t, values, "password")
}

func TestSanitizeNil(t *testing.T) {
	assert.Nil(t, Sanitize(nil))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, totalPages(0, 50))
	assert.Equal(t, 1, totalPages(1, 50))
	assert.Equal(t, 1, totalPages(50, 50))
	assert.Equal(t, 2, totalPages(51, 50))
}

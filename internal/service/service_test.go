package service

import (
	"context"
	"os"
	"testing"

	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/apperr"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/authz"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/schema"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/pkg/config"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	prometheus.InitMetrics(&config.Config{
		Metrics: config.MetricsConfig{Prefix: "service_test"},
	})
	os.Exit(m.Run())
}

func TestNormalizePage(t *testing.T) {
	page, limit := normalizePage(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, defaultPageLimit, limit)

	page, limit = normalizePage(3, 25)
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, limit)
}

func TestNewPageTotals(t *testing.T) {
	p := newPage([]int{1, 2, 3}, 23, 1, 10)
	assert.Equal(t, int64(23), p.Total)
	assert.Equal(t, 3, p.TotalPages)

	p = newPage([]int{}, 20, 2, 10)
	assert.Equal(t, 2, p.TotalPages)

	p = newPage([]int{}, 0, 1, 10)
	assert.Equal(t, 0, p.TotalPages)
}

func TestValidateFieldDefinitions(t *testing.T) {
	valid := schema.FieldList{
		{Key: "fullName", Type: schema.FieldTypeText, Required: true},
		{Key: "level", Type: schema.FieldTypeSelect, Options: []string{"Jr", "Sr"}},
	}
	assert.NoError(t, validateFieldDefinitions(valid))

	tests := []struct {
		name   string
		fields schema.FieldList
	}{
		{"empty key", schema.FieldList{{Key: "", Type: schema.FieldTypeText}}},
		{"duplicate key", schema.FieldList{
			{Key: "age", Type: schema.FieldTypeNumber},
			{Key: "age", Type: schema.FieldTypeText},
		}},
		{"select without options", schema.FieldList{{Key: "level", Type: schema.FieldTypeSelect}}},
		{"unknown type", schema.FieldList{{Key: "x", Type: schema.FieldType("checkbox")}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFieldDefinitions(tt.fields)
			require.Error(t, err)
			assert.True(t, apperr.IsValidation(err))
		})
	}
}

func TestSnapshotSchemaIsolatedFromTemplate(t *testing.T) {
	template := schema.FieldList{
		{Key: "fullName", Type: schema.FieldTypeText, Required: true, Label: "Full Name"},
		{Key: "experience", Type: schema.FieldTypeNumber, Required: true, Label: "Years"},
	}

	snapshot := snapshotSchema(template)
	require.Equal(t, template, snapshot)

	// Rewriting the template's fields must not reach the snapshot.
	template[0].Key = "renamed"
	template[1].Required = false
	assert.Equal(t, "fullName", snapshot[0].Key)
	assert.True(t, snapshot[1].Required)

	// The snapshot backs its own array, so growing it can't alias either.
	snapshot = append(snapshot, schema.Field{Key: "extra", Type: schema.FieldTypeText})
	assert.Len(t, template, 2)
}

func TestSnapshotSchemaEmpty(t *testing.T) {
	assert.Empty(t, snapshotSchema(nil))
	assert.NotNil(t, snapshotSchema(nil))
}

// Role and permission management refuses non-admins before touching storage,
// so these paths are exercisable without a database.
func TestRoleManagementRequiresAdmin(t *testing.T) {
	svc := NewRoleService(nil, authz.NewResolver(nil, nil, nil), nil, nil)
	employee := authz.Principal{UserID: 2, Roles: []string{authz.RoleEmployee}}
	ctx := context.Background()

	_, err := svc.UpdateRole(ctx, employee, 1, UpdateRoleInput{})
	assert.True(t, apperr.IsForbidden(err))

	_, err = svc.UpdatePermission(ctx, employee, 1, UpdatePermissionInput{})
	assert.True(t, apperr.IsForbidden(err))

	_, err = svc.GetPermission(ctx, employee, 1)
	assert.True(t, apperr.IsForbidden(err))
}

//go:build integration

package service

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/apperr"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/audit"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/authz"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/model"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Lifecycle tests that need a real database. Run with:
//
//	TEST_DATABASE_DSN="host=localhost user=postgres ..." go test -tags integration ./internal/service/
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Tenant{},
		&model.Permission{},
		&model.Role{},
		&model.User{},
		&model.Agency{},
		&model.Client{},
		&model.JobTemplate{},
		&model.JobVacancy{},
		&model.Candidate{},
		&model.AuditLog{},
	))
	return db
}

type testWorld struct {
	db       *gorm.DB
	tenantID uint
	admin    authz.Principal
	clients  *ClientService
	tmpls    *JobTemplateService
	vacs     *JobVacancyService
}

func newTestWorld(t *testing.T) *testWorld {
	t.Helper()
	db := openTestDB(t)
	suffix := fmt.Sprint(time.Now().UnixNano())

	tenant := model.Tenant{Name: "Tenant " + suffix, Domain: "t" + suffix + ".local", IsActive: true}
	require.NoError(t, db.Create(&tenant).Error)

	adminUser := model.User{
		Email:    "admin+" + suffix + "@rms.test",
		Password: "x",
		FullName: "Admin",
		TenantID: &tenant.ID,
		IsActive: true,
	}
	require.NoError(t, db.Create(&adminUser).Error)

	lookups := NewLookups(db)
	resolver := authz.NewResolver(lookups, lookups, lookups)
	recorder := audit.NewRecorder(db)

	return &testWorld{
		db:       db,
		tenantID: tenant.ID,
		admin: authz.Principal{
			UserID:   adminUser.ID,
			TenantID: &tenant.ID,
			Roles:    []string{authz.RoleAdmin},
		},
		clients: NewClientService(db, resolver, recorder),
		tmpls:   NewJobTemplateService(db, resolver, recorder),
		vacs:    NewJobVacancyService(db, resolver, recorder),
	}
}

func TestClientSoftDeleteIsIdempotent(t *testing.T) {
	w := newTestWorld(t)
	ctx := context.Background()

	client, err := w.clients.Create(ctx, w.admin, CreateClientInput{
		Name:               "Acme",
		AssignedEmployeeID: w.admin.UserID,
	})
	require.NoError(t, err)

	require.NoError(t, w.clients.Delete(ctx, w.admin, client.ID))
	// Deleting again is a no-op, not an error.
	require.NoError(t, w.clients.Delete(ctx, w.admin, client.ID))

	var row model.Client
	require.NoError(t, w.db.First(&row, client.ID).Error)
	assert.False(t, row.IsActive)
}

func TestClientDefaultReadsExcludeInactive(t *testing.T) {
	w := newTestWorld(t)
	ctx := context.Background()

	client, err := w.clients.Create(ctx, w.admin, CreateClientInput{
		Name:               "Acme",
		AssignedEmployeeID: w.admin.UserID,
	})
	require.NoError(t, err)
	require.NoError(t, w.clients.Delete(ctx, w.admin, client.ID))

	// The default by-id read no longer sees the row.
	_, err = w.clients.Get(ctx, w.admin, client.ID, false)
	assert.True(t, apperr.IsNotFound(err))

	// Admins may opt in to inactive rows.
	got, err := w.clients.Get(ctx, w.admin, client.ID, true)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	listed, err := w.clients.List(ctx, w.admin)
	require.NoError(t, err)
	for _, c := range listed {
		assert.NotEqual(t, client.ID, c.ID)
	}
}

func TestVacancySchemaSnapshotSurvivesTemplateChange(t *testing.T) {
	w := newTestWorld(t)
	ctx := context.Background()

	client, err := w.clients.Create(ctx, w.admin, CreateClientInput{
		Name:               "Acme",
		AssignedEmployeeID: w.admin.UserID,
	})
	require.NoError(t, err)

	template, err := w.tmpls.Create(ctx, w.admin, CreateJobTemplateInput{
		Name:     "Developer",
		ClientID: client.ID,
		CandidateDataSchema: schema.FieldList{
			{Key: "fullName", Type: schema.FieldTypeText, Required: true},
			{Key: "experience", Type: schema.FieldTypeNumber, Required: true},
		},
	})
	require.NoError(t, err)

	vacancy, err := w.vacs.Create(ctx, w.admin, CreateJobVacancyInput{
		Name:          "Senior Developer",
		ClientID:      client.ID,
		JobTemplateID: template.ID,
	})
	require.NoError(t, err)
	require.Len(t, vacancy.CandidateDataSchema, 2)

	// Rewrite the template row's schema out from under the vacancy.
	rewritten := schema.FieldList{{Key: "somethingElse", Type: schema.FieldTypeText}}
	require.NoError(t, w.db.Model(&model.JobTemplate{}).
		Where("id = ?", template.ID).
		Update("candidate_data_schema", rewritten).Error)

	got, err := w.vacs.Get(ctx, w.admin, vacancy.ID, false)
	require.NoError(t, err)
	require.Len(t, got.CandidateDataSchema, 2)
	assert.Equal(t, "fullName", got.CandidateDataSchema[0].Key)
	assert.Equal(t, "experience", got.CandidateDataSchema[1].Key)

	// Soft-deleting the vacancy twice is also a no-op the second time.
	require.NoError(t, w.vacs.Delete(ctx, w.admin, vacancy.ID))
	require.NoError(t, w.vacs.Delete(ctx, w.admin, vacancy.ID))
}

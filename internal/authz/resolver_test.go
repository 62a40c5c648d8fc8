package authz

import (
	"context"
	"testing"

	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fake lookups backed by in-memory maps.

type fakeClientLookup struct {
	clients map[uint]*model.Client
}

func (f *fakeClientLookup) ClientByID(_ context.Context, id uint) (*model.Client, error) {
	return f.clients[id], nil
}

type fakeVacancyLookup struct {
	vacancies map[uint]*model.JobVacancy
	agencies  map[uint][]uint // vacancy id -> assigned agency ids
}

func (f *fakeVacancyLookup) VacancyByID(_ context.Context, id uint) (*model.JobVacancy, error) {
	return f.vacancies[id], nil
}

func (f *fakeVacancyLookup) AgencyIDsForVacancy(_ context.Context, vacancyID uint) ([]uint, error) {
	return f.agencies[vacancyID], nil
}

type fakeAgencyLookup struct {
	membership map[uint][]uint // user id -> agency ids
}

func (f *fakeAgencyLookup) AgencyIDsForUser(_ context.Context, userID uint) ([]uint, error) {
	return f.membership[userID], nil
}

const (
	adminID    = uint(1)
	employeeID = uint(2)
	agencyUser = uint(3)
	otherUser  = uint(9)
)

// newTestResolver wires a small world: employee 2 is assigned to client 10
// only, vacancy 100 belongs to client 10, vacancy 200 to client 20, and
// agency user 3 belongs to agency 50 which is assigned to vacancy 100 only.
func newTestResolver() *Resolver {
	clients := &fakeClientLookup{clients: map[uint]*model.Client{
		10: {ID: 10, AssignedEmployeeID: employeeID},
		20: {ID: 20, AssignedEmployeeID: otherUser},
	}}
	vacancies := &fakeVacancyLookup{
		vacancies: map[uint]*model.JobVacancy{
			100: {ID: 100, ClientID: 10, CreatedByID: employeeID},
			200: {ID: 200, ClientID: 20, CreatedByID: otherUser},
		},
		agencies: map[uint][]uint{
			100: {50},
			200: {},
		},
	}
	agencies := &fakeAgencyLookup{membership: map[uint][]uint{
		agencyUser: {50},
	}}
	return NewResolver(clients, vacancies, agencies)
}

func admin() Principal    { return Principal{UserID: adminID, Roles: []string{RoleAdmin}} }
func employee() Principal { return Principal{UserID: employeeID, Roles: []string{RoleEmployee}} }
func agency() Principal   { return Principal{UserID: agencyUser, Roles: []string{RoleAgency}} }

func TestClientRules(t *testing.T) {
	r := newTestResolver()
	own := &model.Client{ID: 10, AssignedEmployeeID: employeeID}
	foreign := &model.Client{ID: 20, AssignedEmployeeID: otherUser}

	assert.True(t, r.CanCreateClient(admin()))
	assert.False(t, r.CanCreateClient(employee()))
	assert.False(t, r.CanCreateClient(agency()))

	assert.True(t, r.CanReadClient(admin(), foreign))
	assert.True(t, r.CanReadClient(employee(), own))
	assert.False(t, r.CanReadClient(employee(), foreign))
	assert.False(t, r.CanReadClient(agency(), own))

	assert.True(t, r.CanUpdateClient(admin()))
	assert.False(t, r.CanUpdateClient(employee()))
	assert.True(t, r.CanDeleteClient(admin()))
	assert.False(t, r.CanDeleteClient(employee()))
}

func TestTemplateRules(t *testing.T) {
	r := newTestResolver()
	ctx := context.Background()
	ownTemplate := &model.JobTemplate{ID: 1, ClientID: 10}
	foreignTemplate := &model.JobTemplate{ID: 2, ClientID: 20}

	assert.True(t, r.CanCreateTemplate(admin()))
	assert.False(t, r.CanCreateTemplate(employee()))

	ok, err := r.CanReadTemplate(ctx, admin(), foreignTemplate)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.CanReadTemplate(ctx, employee(), ownTemplate)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.CanReadTemplate(ctx, employee(), foreignTemplate)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.True(t, r.CanDeleteTemplate(admin()))
	assert.False(t, r.CanDeleteTemplate(employee()))
}

func TestVacancyCreateRules(t *testing.T) {
	r := newTestResolver()
	ctx := context.Background()

	ok, err := r.CanCreateVacancy(ctx, admin(), 20)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.CanCreateVacancy(ctx, employee(), 10)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.CanCreateVacancy(ctx, employee(), 20)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = r.CanCreateVacancy(ctx, agency(), 10)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVacancyReadCrossClientForbidden(t *testing.T) {
	// Employee assigned to client 10 only must not see a vacancy under
	// client 20.
	r := newTestResolver()
	ctx := context.Background()
	foreign := &model.JobVacancy{ID: 200, ClientID: 20}

	ok, err := r.CanReadVacancy(ctx, employee(), foreign)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = r.CanReadVacancy(ctx, admin(), foreign)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVacancyUpdateRules(t *testing.T) {
	r := newTestResolver()
	ctx := context.Background()
	own := &model.JobVacancy{ID: 100, ClientID: 10, CreatedByID: employeeID}
	foreign := &model.JobVacancy{ID: 200, ClientID: 20, CreatedByID: otherUser}

	ok, err := r.CanUpdateVacancy(ctx, employee(), own, nil)
	require.NoError(t, err)
	assert.True(t, ok)

	// Not the creator.
	ok, err = r.CanUpdateVacancy(ctx, employee(), foreign, nil)
	require.NoError(t, err)
	assert.False(t, ok)

	// Moving to a client the employee is not assigned to.
	newClient := uint(20)
	ok, err = r.CanUpdateVacancy(ctx, employee(), own, &newClient)
	require.NoError(t, err)
	assert.False(t, ok)

	sameClient := uint(10)
	ok, err = r.CanUpdateVacancy(ctx, employee(), own, &sameClient)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.CanUpdateVacancy(ctx, admin(), foreign, &newClient)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.True(t, r.CanDeleteVacancy(employee(), own))
	assert.False(t, r.CanDeleteVacancy(employee(), foreign))
	assert.True(t, r.CanDeleteVacancy(admin(), foreign))
}

func TestCandidateCreateRequiresAssignedAgency(t *testing.T) {
	r := newTestResolver()
	ctx := context.Background()
	assigned := &model.JobVacancy{ID: 100, ClientID: 10}
	unassigned := &model.JobVacancy{ID: 200, ClientID: 20}

	ok, err := r.CanCreateCandidate(ctx, agency(), assigned)
	require.NoError(t, err)
	assert.True(t, ok)

	// Agency not in the vacancy's assignedAgencies: denied before any
	// validation would run.
	ok, err = r.CanCreateCandidate(ctx, agency(), unassigned)
	require.NoError(t, err)
	assert.False(t, ok)

	// Admins and employees never create candidates.
	ok, err = r.CanCreateCandidate(ctx, admin(), assigned)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = r.CanCreateCandidate(ctx, employee(), assigned)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCandidateReadRules(t *testing.T) {
	r := newTestResolver()
	ctx := context.Background()
	ownSubmission := &model.Candidate{ID: 1, JobVacancyID: 100, CreatedByID: agencyUser}
	otherSubmission := &model.Candidate{ID: 2, JobVacancyID: 200, CreatedByID: otherUser}

	ok, err := r.CanReadCandidate(ctx, agency(), ownSubmission)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.CanReadCandidate(ctx, agency(), otherSubmission)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = r.CanReadCandidate(ctx, admin(), otherSubmission)
	require.NoError(t, err)
	assert.True(t, ok)

	// Employee sees candidates whose vacancy's client is assigned to them.
	ok, err = r.CanReadCandidate(ctx, employee(), ownSubmission)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.CanReadCandidate(ctx, employee(), otherSubmission)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCandidateMutationRules(t *testing.T) {
	r := newTestResolver()
	ownSubmission := &model.Candidate{ID: 1, JobVacancyID: 100, CreatedByID: agencyUser}
	otherSubmission := &model.Candidate{ID: 2, JobVacancyID: 100, CreatedByID: otherUser}

	assert.True(t, r.CanMutateCandidate(agency(), ownSubmission))
	assert.False(t, r.CanMutateCandidate(agency(), otherSubmission))
	assert.False(t, r.CanMutateCandidate(admin(), ownSubmission))
	assert.False(t, r.CanMutateCandidate(employee(), ownSubmission))
}

func TestRoleManagementRules(t *testing.T) {
	r := newTestResolver()
	assert.True(t, r.CanManageRoles(admin()))
	assert.False(t, r.CanManageRoles(employee()))
	assert.False(t, r.CanManageRoles(agency()))
}

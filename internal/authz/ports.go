package authz

import (
	"context"

	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/model"
)

// Read-only lookup ports the resolver uses for cross-entity reach-through
// (candidate -> vacancy -> client -> assigned employee). Services provide
// gorm-backed implementations; tests provide fakes.

// ClientLookup resolves clients by id.
type ClientLookup interface {
	// ClientByID returns the active client with the given id, or nil when
	// no such client exists.
	ClientByID(ctx context.Context, id uint) (*model.Client, error)
}

// VacancyLookup resolves vacancies and their agency assignments by id.
type VacancyLookup interface {
	// VacancyByID returns the active vacancy with the given id, or nil when
	// no such vacancy exists.
	VacancyByID(ctx context.Context, id uint) (*model.JobVacancy, error)
	// AgencyIDsForVacancy returns the ids of agencies assigned to a vacancy.
	AgencyIDsForVacancy(ctx context.Context, vacancyID uint) ([]uint, error)
}

// AgencyLookup resolves agency membership for users.
type AgencyLookup interface {
	// AgencyIDsForUser returns the ids of active agencies the user belongs to.
	AgencyIDsForUser(ctx context.Context, userID uint) ([]uint, error)
}

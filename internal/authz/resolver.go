package authz

import (
	"context"

	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/model"
)

// Resolver centralizes the per-entity access rules. It owns no storage; all
// cross-entity reach-through goes through the lookup ports.
//
// The rule table:
//
//	Client       create/update/delete: Admin. read: Admin all, Employee own.
//	JobTemplate  create/delete: Admin. read: Admin all, Employee via client.
//	JobVacancy   create: Admin, or Employee assigned to the client.
//	             read: Admin all, Employee via client.
//	             update/delete: Admin, or Employee who created it (a client
//	             change additionally requires assignment to the new client).
//	Candidate    create/update/delete: the Agency user who created it
//	             (create also requires the agency on the vacancy).
//	             read: Agency own, Admin all, Employee via vacancy's client.
//	Role/Perm    Admin only, everything.
type Resolver struct {
	clients   ClientLookup
	vacancies VacancyLookup
	agencies  AgencyLookup
}

// NewResolver creates a resolver backed by the given lookup ports
func NewResolver(clients ClientLookup, vacancies VacancyLookup, agencies AgencyLookup) *Resolver {
	return &Resolver{clients: clients, vacancies: vacancies, agencies: agencies}
}

// clientAssignedTo reports whether the client exists and is assigned to the user
func (r *Resolver) clientAssignedTo(ctx context.Context, clientID, userID uint) (bool, error) {
	client, err := r.clients.ClientByID(ctx, clientID)
	if err != nil {
		return false, err
	}
	return client != nil && client.AssignedEmployeeID == userID, nil
}

// agencyAssignedTo reports whether the user belongs to any agency assigned
// to the vacancy.
func (r *Resolver) agencyAssignedTo(ctx context.Context, vacancyID, userID uint) (bool, error) {
	assigned, err := r.vacancies.AgencyIDsForVacancy(ctx, vacancyID)
	if err != nil {
		return false, err
	}
	if len(assigned) == 0 {
		return false, nil
	}
	memberOf, err := r.agencies.AgencyIDsForUser(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, agencyID := range assigned {
		for _, member := range memberOf {
			if agencyID == member {
				return true, nil
			}
		}
	}
	return false, nil
}

// --- Client ---

// CanCreateClient reports whether the principal may create clients
func (r *Resolver) CanCreateClient(p Principal) bool { return p.IsAdmin() }

// CanReadClient reports whether the principal may read the given client
func (r *Resolver) CanReadClient(p Principal, client *model.Client) bool {
	if p.IsAdmin() {
		return true
	}
	return client.AssignedEmployeeID == p.UserID
}

// CanUpdateClient reports whether the principal may update clients
func (r *Resolver) CanUpdateClient(p Principal) bool { return p.IsAdmin() }

// CanDeleteClient reports whether the principal may delete clients
func (r *Resolver) CanDeleteClient(p Principal) bool { return p.IsAdmin() }

// --- JobTemplate ---

// CanCreateTemplate reports whether the principal may create job templates
func (r *Resolver) CanCreateTemplate(p Principal) bool { return p.IsAdmin() }

// CanReadTemplate reports whether the principal may read the given template
func (r *Resolver) CanReadTemplate(ctx context.Context, p Principal, template *model.JobTemplate) (bool, error) {
	if p.IsAdmin() {
		return true, nil
	}
	return r.clientAssignedTo(ctx, template.ClientID, p.UserID)
}

// CanDeleteTemplate reports whether the principal may delete job templates
func (r *Resolver) CanDeleteTemplate(p Principal) bool { return p.IsAdmin() }

// --- JobVacancy ---

// CanCreateVacancy reports whether the principal may create a vacancy under
// the given client.
func (r *Resolver) CanCreateVacancy(ctx context.Context, p Principal, clientID uint) (bool, error) {
	if p.IsAdmin() {
		return true, nil
	}
	if !p.IsEmployee() {
		return false, nil
	}
	return r.clientAssignedTo(ctx, clientID, p.UserID)
}

// CanReadVacancy reports whether the principal may read the given vacancy
func (r *Resolver) CanReadVacancy(ctx context.Context, p Principal, vacancy *model.JobVacancy) (bool, error) {
	if p.IsAdmin() {
		return true, nil
	}
	return r.clientAssignedTo(ctx, vacancy.ClientID, p.UserID)
}

// CanUpdateVacancy reports whether the principal may update the given
// vacancy. newClientID, when non-nil, is the client the vacancy is being
// moved to; an employee must be assigned to that client as well.
func (r *Resolver) CanUpdateVacancy(ctx context.Context, p Principal, vacancy *model.JobVacancy, newClientID *uint) (bool, error) {
	if p.IsAdmin() {
		return true, nil
	}
	if !p.IsEmployee() {
		return false, nil
	}
	if vacancy.CreatedByID != p.UserID {
		return false, nil
	}
	if newClientID != nil {
		return r.clientAssignedTo(ctx, *newClientID, p.UserID)
	}
	return true, nil
}

// CanDeleteVacancy reports whether the principal may delete the given vacancy
func (r *Resolver) CanDeleteVacancy(p Principal, vacancy *model.JobVacancy) bool {
	if p.IsAdmin() {
		return true
	}
	return p.IsEmployee() && vacancy.CreatedByID == p.UserID
}

// --- Candidate ---

// CanCreateCandidate reports whether the principal may submit a candidate to
// the given vacancy. Only agency users may, and only when one of their
// agencies is assigned to the vacancy.
func (r *Resolver) CanCreateCandidate(ctx context.Context, p Principal, vacancy *model.JobVacancy) (bool, error) {
	if !p.IsAgency() {
		return false, nil
	}
	return r.agencyAssignedTo(ctx, vacancy.ID, p.UserID)
}

// CanReadCandidate reports whether the principal may read the given candidate
func (r *Resolver) CanReadCandidate(ctx context.Context, p Principal, candidate *model.Candidate) (bool, error) {
	if p.IsAgency() {
		return candidate.CreatedByID == p.UserID, nil
	}
	if p.IsAdmin() {
		return true, nil
	}
	if !p.IsEmployee() {
		return false, nil
	}
	vacancy, err := r.vacancies.VacancyByID(ctx, candidate.JobVacancyID)
	if err != nil {
		return false, err
	}
	if vacancy == nil {
		return false, nil
	}
	return r.clientAssignedTo(ctx, vacancy.ClientID, p.UserID)
}

// CanMutateCandidate reports whether the principal may update or delete the
// given candidate. Only the agency user who created it may.
func (r *Resolver) CanMutateCandidate(p Principal, candidate *model.Candidate) bool {
	return p.IsAgency() && candidate.CreatedByID == p.UserID
}

// --- Role / Permission ---

// CanManageRoles reports whether the principal may manage roles and permissions
func (r *Resolver) CanManageRoles(p Principal) bool { return p.IsAdmin() }

// --- Visibility ---

// IncludeInactive reports whether a direct-by-id fetch may include
// soft-deleted rows. Only admins may request them, and only explicitly;
// default queries always exclude inactive rows.
func IncludeInactive(p Principal, requested bool) bool {
	return requested && p.IsAdmin()
}

// Package seed bootstraps a fresh database with a default tenant, the
// built-in roles and permissions, and a small set of sample data. Every step
// is create-if-absent, so running it against an already-seeded database is
// harmless.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/model"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/schema"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SamplePassword is the password shared by the seeded sample users
const SamplePassword = "password123"

// Run seeds the database
func Run(ctx context.Context, db *gorm.DB) error {
	log := logger.GetLogger()
	log.Info("Starting database seeding...")

	tenant, err := seedTenant(ctx, db)
	if err != nil {
		return fmt.Errorf("seed tenant: %w", err)
	}
	permissions, err := seedPermissions(ctx, db, tenant.ID)
	if err != nil {
		return fmt.Errorf("seed permissions: %w", err)
	}
	roles, err := seedRoles(ctx, db, tenant.ID, permissions)
	if err != nil {
		return fmt.Errorf("seed roles: %w", err)
	}
	users, err := seedUsers(ctx, db, tenant.ID, roles)
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	agency, err := seedAgency(ctx, db, tenant.ID, users["Agency"])
	if err != nil {
		return fmt.Errorf("seed agency: %w", err)
	}
	clients, err := seedClients(ctx, db, tenant.ID, users["Employee"])
	if err != nil {
		return fmt.Errorf("seed clients: %w", err)
	}
	templates, err := seedJobTemplates(ctx, db, tenant.ID, clients)
	if err != nil {
		return fmt.Errorf("seed job templates: %w", err)
	}
	vacancies, err := seedJobVacancies(ctx, db, tenant.ID, templates, users["Employee"], agency)
	if err != nil {
		return fmt.Errorf("seed job vacancies: %w", err)
	}
	if err := seedCandidates(ctx, db, tenant.ID, vacancies, users["Agency"]); err != nil {
		return fmt.Errorf("seed candidates: %w", err)
	}

	log.Info("Database seeding completed successfully")
	log.Info("Sample credentials",
		zap.String("admin", "admin@rms.com / "+SamplePassword),
		zap.String("employee", "employee@rms.com / "+SamplePassword),
		zap.String("agency", "agency@rms.com / "+SamplePassword))
	return nil
}

func seedTenant(ctx context.Context, db *gorm.DB) (*model.Tenant, error) {
	var tenant model.Tenant
	err := db.WithContext(ctx).Where("name = ?", "Default Tenant").First(&tenant).Error
	if err == nil {
		return &tenant, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tenant = model.Tenant{
		Name:        "Default Tenant",
		Description: "Default tenant for RMS",
		Domain:      "rms.local",
		IsActive:    true,
	}
	if err := db.WithContext(ctx).Create(&tenant).Error; err != nil {
		return nil, err
	}
	logger.GetLogger().Info("Created default tenant")
	return &tenant, nil
}

func seedPermissions(ctx context.Context, db *gorm.DB, tenantID uint) ([]model.Permission, error) {
	data := []struct {
		name, description string
	}{
		{"CREATE_JOB", "Permission to create job vacancies"},
		{"UPDATE_JOB", "Permission to update job vacancies"},
		{"DELETE_JOB", "Permission to delete job vacancies"},
		{"VIEW_CANDIDATES", "Permission to view candidates"},
		{"CREATE_CANDIDATE", "Permission to create candidates"},
		{"UPDATE_CANDIDATE", "Permission to update candidates"},
		{"DELETE_CANDIDATE", "Permission to delete candidates"},
		{"MANAGE_CLIENTS", "Permission to manage clients"},
		{"MANAGE_TEMPLATES", "Permission to manage job templates"},
		{"MANAGE_USERS", "Permission to manage users"},
		{"MANAGE_ROLES", "Permission to manage roles and permissions"},
	}

	permissions := make([]model.Permission, 0, len(data))
	for _, d := range data {
		var permission model.Permission
		err := db.WithContext(ctx).
			Where("name = ? AND tenant_id = ?", d.name, tenantID).
			First(&permission).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			permission = model.Permission{
				TenantID:    &tenantID,
				Name:        d.name,
				Description: d.description,
				IsActive:    true,
			}
			if err := db.WithContext(ctx).Create(&permission).Error; err != nil {
				return nil, err
			}
			logger.GetLogger().Info("Created permission", zap.String("name", d.name))
		} else if err != nil {
			return nil, err
		}
		permissions = append(permissions, permission)
	}
	return permissions, nil
}

func pick(permissions []model.Permission, names ...string) []model.Permission {
	wanted := make(map[string]struct{}, len(names))
	for _, name := range names {
		wanted[name] = struct{}{}
	}
	picked := make([]model.Permission, 0, len(names))
	for _, permission := range permissions {
		if _, ok := wanted[permission.Name]; ok {
			picked = append(picked, permission)
		}
	}
	return picked
}

func seedRoles(ctx context.Context, db *gorm.DB, tenantID uint, permissions []model.Permission) (map[string]model.Role, error) {
	data := []struct {
		name, description string
		permissions       []model.Permission
	}{
		{"Admin", "Administrator with full system access", permissions},
		{"Employee", "Employee managing clients and job vacancies",
			pick(permissions, "CREATE_JOB", "UPDATE_JOB", "VIEW_CANDIDATES", "MANAGE_CLIENTS")},
		{"Agency", "Agency user managing candidates",
			pick(permissions, "VIEW_CANDIDATES", "CREATE_CANDIDATE", "UPDATE_CANDIDATE", "DELETE_CANDIDATE")},
	}

	roles := make(map[string]model.Role, len(data))
	for _, d := range data {
		var role model.Role
		err := db.WithContext(ctx).
			Where("name = ? AND tenant_id = ?", d.name, tenantID).
			First(&role).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			role = model.Role{
				TenantID:    &tenantID,
				Name:        d.name,
				Description: d.description,
				Permissions: d.permissions,
				IsActive:    true,
			}
			if err := db.WithContext(ctx).Create(&role).Error; err != nil {
				return nil, err
			}
			logger.GetLogger().Info("Created role", zap.String("name", d.name))
		} else if err != nil {
			return nil, err
		}
		roles[d.name] = role
	}
	return roles, nil
}

func seedUsers(ctx context.Context, db *gorm.DB, tenantID uint, roles map[string]model.Role) (map[string]model.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(SamplePassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	data := []struct {
		email, fullName, roleName string
	}{
		{"admin@rms.com", "Admin User", "Admin"},
		{"employee@rms.com", "Employee User", "Employee"},
		{"agency@rms.com", "Agency User", "Agency"},
	}

	users := make(map[string]model.User, len(data))
	for _, d := range data {
		var user model.User
		err := db.WithContext(ctx).Where("email = ?", d.email).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			user = model.User{
				Email:    d.email,
				Password: string(hashed),
				FullName: d.fullName,
				TenantID: &tenantID,
				Roles:    []model.Role{roles[d.roleName]},
				IsActive: true,
			}
			if err := db.WithContext(ctx).Create(&user).Error; err != nil {
				return nil, err
			}
			logger.GetLogger().Info("Created user", zap.String("email", d.email))
		} else if err != nil {
			return nil, err
		}
		users[d.roleName] = user
	}
	return users, nil
}

func seedAgency(ctx context.Context, db *gorm.DB, tenantID uint, agencyUser model.User) (*model.Agency, error) {
	var agency model.Agency
	err := db.WithContext(ctx).
		Where("name = ? AND tenant_id = ?", "Talent Bridge Agency", tenantID).
		First(&agency).Error
	if err == nil {
		return &agency, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	agency = model.Agency{
		TenantID: &tenantID,
		Name:     "Talent Bridge Agency",
		Users:    []model.User{agencyUser},
		IsActive: true,
	}
	if err := db.WithContext(ctx).Create(&agency).Error; err != nil {
		return nil, err
	}
	logger.GetLogger().Info("Created agency", zap.String("name", agency.Name))
	return &agency, nil
}

func seedClients(ctx context.Context, db *gorm.DB, tenantID uint, employee model.User) ([]model.Client, error) {
	data := []model.Client{
		{
			Name:         "TechCorp Solutions",
			Description:  "Leading technology solutions provider",
			ContactEmail: "contact@techcorp.com",
			ContactPhone: "+1-555-0101",
			Address:      "123 Tech Street, San Francisco, CA 94105",
		},
		{
			Name:         "Global Finance Inc",
			Description:  "International financial services company",
			ContactEmail: "info@globalfinance.com",
			ContactPhone: "+1-555-0202",
			Address:      "456 Finance Avenue, New York, NY 10001",
		},
		{
			Name:         "Healthcare Partners",
			Description:  "Healthcare management organization",
			ContactEmail: "hello@healthcarepartners.com",
			ContactPhone: "+1-555-0303",
			Address:      "789 Health Boulevard, Boston, MA 02115",
		},
	}

	clients := make([]model.Client, 0, len(data))
	for _, d := range data {
		var client model.Client
		err := db.WithContext(ctx).
			Where("name = ? AND tenant_id = ?", d.Name, tenantID).
			First(&client).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			client = d
			client.TenantID = &tenantID
			client.AssignedEmployeeID = employee.ID
			client.IsActive = true
			if err := db.WithContext(ctx).Create(&client).Error; err != nil {
				return nil, err
			}
			logger.GetLogger().Info("Created client", zap.String("name", client.Name))
		} else if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}
	return clients, nil
}

func seedJobTemplates(ctx context.Context, db *gorm.DB, tenantID uint, clients []model.Client) ([]model.JobTemplate, error) {
	if len(clients) < 3 {
		return nil, nil
	}

	data := []model.JobTemplate{
		{
			Name:        "Software Developer",
			Description: "Full-stack software developer position",
			ClientID:    clients[0].ID,
			CandidateDataSchema: schema.FieldList{
				{Key: "fullName", Type: schema.FieldTypeText, Required: true, Label: "Full Name"},
				{Key: "email", Type: schema.FieldTypeEmail, Required: true, Label: "Email Address"},
				{Key: "phone", Type: schema.FieldTypeText, Required: false, Label: "Phone Number"},
				{Key: "experience", Type: schema.FieldTypeNumber, Required: true, Label: "Years of Experience"},
				{Key: "skills", Type: schema.FieldTypeTextarea, Required: true, Label: "Technical Skills"},
				{Key: "education", Type: schema.FieldTypeText, Required: false, Label: "Education Level"},
			},
		},
		{
			Name:        "Financial Analyst",
			Description: "Financial analysis and reporting role",
			ClientID:    clients[1].ID,
			CandidateDataSchema: schema.FieldList{
				{Key: "fullName", Type: schema.FieldTypeText, Required: true, Label: "Full Name"},
				{Key: "email", Type: schema.FieldTypeEmail, Required: true, Label: "Email Address"},
				{Key: "experience", Type: schema.FieldTypeNumber, Required: true, Label: "Years of Experience"},
				{Key: "certifications", Type: schema.FieldTypeText, Required: false, Label: "Professional Certifications"},
				{Key: "currentSalary", Type: schema.FieldTypeNumber, Required: false, Label: "Current Salary"},
			},
		},
		{
			Name:        "Healthcare Administrator",
			Description: "Healthcare facility administration role",
			ClientID:    clients[2].ID,
			CandidateDataSchema: schema.FieldList{
				{Key: "fullName", Type: schema.FieldTypeText, Required: true, Label: "Full Name"},
				{Key: "email", Type: schema.FieldTypeEmail, Required: true, Label: "Email Address"},
				{Key: "licenseNumber", Type: schema.FieldTypeText, Required: true, Label: "Professional License Number"},
				{Key: "experience", Type: schema.FieldTypeNumber, Required: true, Label: "Years of Experience"},
			},
		},
	}

	templates := make([]model.JobTemplate, 0, len(data))
	for _, d := range data {
		var template model.JobTemplate
		err := db.WithContext(ctx).
			Where("name = ? AND client_id = ? AND tenant_id = ?", d.Name, d.ClientID, tenantID).
			First(&template).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			template = d
			template.TenantID = &tenantID
			template.IsActive = true
			if err := db.WithContext(ctx).Create(&template).Error; err != nil {
				return nil, err
			}
			logger.GetLogger().Info("Created job template", zap.String("name", template.Name))
		} else if err != nil {
			return nil, err
		}
		templates = append(templates, template)
	}
	return templates, nil
}

func seedJobVacancies(ctx context.Context, db *gorm.DB, tenantID uint, templates []model.JobTemplate, employee model.User, agency *model.Agency) ([]model.JobVacancy, error) {
	if len(templates) < 2 {
		return nil, nil
	}

	data := []struct {
		name, description string
		template          model.JobTemplate
	}{
		{"Senior Software Developer", "Looking for experienced full-stack developer", templates[0]},
		{"Junior Financial Analyst", "Entry-level financial analyst position", templates[1]},
	}

	vacancies := make([]model.JobVacancy, 0, len(data))
	for _, d := range data {
		var vacancy model.JobVacancy
		err := db.WithContext(ctx).
			Where("name = ? AND client_id = ? AND tenant_id = ?", d.name, d.template.ClientID, tenantID).
			First(&vacancy).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			vacancy = model.JobVacancy{
				TenantID:            &tenantID,
				Name:                d.name,
				Description:         d.description,
				ClientID:            d.template.ClientID,
				JobTemplateID:       d.template.ID,
				CandidateDataSchema: append(schema.FieldList{}, d.template.CandidateDataSchema...),
				CreatedByID:         employee.ID,
				IsActive:            true,
			}
			if agency != nil {
				vacancy.AssignedAgencies = []model.Agency{*agency}
			}
			if err := db.WithContext(ctx).Create(&vacancy).Error; err != nil {
				return nil, err
			}
			logger.GetLogger().Info("Created job vacancy", zap.String("name", vacancy.Name))
		} else if err != nil {
			return nil, err
		}
		vacancies = append(vacancies, vacancy)
	}
	return vacancies, nil
}

func seedCandidates(ctx context.Context, db *gorm.DB, tenantID uint, vacancies []model.JobVacancy, agencyUser model.User) error {
	if len(vacancies) < 2 {
		return nil
	}

	data := []struct {
		vacancyID uint
		record    model.JSONMap
	}{
		{vacancies[0].ID, model.JSONMap{
			"fullName":   "John Doe",
			"email":      "john.doe@example.com",
			"phone":      "+1-555-1001",
			"experience": 5,
			"skills":     "JavaScript, TypeScript, Node.js, React, PostgreSQL",
			"education":  "Bachelor of Science in Computer Science",
		}},
		{vacancies[0].ID, model.JSONMap{
			"fullName":   "Jane Smith",
			"email":      "jane.smith@example.com",
			"phone":      "+1-555-1002",
			"experience": 3,
			"skills":     "Python, Django, PostgreSQL, Docker",
			"education":  "Master of Science in Software Engineering",
		}},
		{vacancies[1].ID, model.JSONMap{
			"fullName":       "Robert Johnson",
			"email":          "robert.johnson@example.com",
			"experience":     2,
			"certifications": "CFA Level 1",
			"currentSalary":  60000,
		}},
	}

	for _, d := range data {
		var count int64
		err := db.WithContext(ctx).
			Model(&model.Candidate{}).
			Where("job_vacancy_id = ? AND tenant_id = ? AND data->>'email' = ?",
				d.vacancyID, tenantID, d.record["email"]).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		candidate := model.Candidate{
			TenantID:     &tenantID,
			JobVacancyID: d.vacancyID,
			CreatedByID:  agencyUser.ID,
			Data:         d.record,
			IsActive:     true,
		}
		if err := db.WithContext(ctx).Create(&candidate).Error; err != nil {
			return err
		}
		logger.GetLogger().Info("Created candidate", zap.String("name", fmt.Sprint(d.record["fullName"])))
	}
	return nil
}

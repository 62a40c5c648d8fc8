package main

import (
	"context"

	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/audit"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/authz"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/handler"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/middleware"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/model"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/seed"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/internal/service"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/pkg/cache"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/pkg/config"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/pkg/database"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/pkg/jwtutil"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/pkg/logger"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/prometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load("recruitment-service")
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	if err := logger.InitLogger(&logger.LogConfig{
		Level:       cfg.Log.Level,
		Environment: cfg.Server.Env,
		ServiceName: cfg.ServiceName,
	}); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	log.Info("Starting recruitment service...", cfg.LogConfig()...)

	// Initialize database
	db, err := database.InitDB(&cfg.DB)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	if err := database.MigrateModels(
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
	); err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}
	log.Info("Database migrations applied")

	// Initialize JWT utility
	jwtutil.Initialize(&jwtutil.JWTConfig{
		SigningKey:      cfg.JWT.SigningKey,
		ExpirationHours: cfg.JWT.ExpirationHours,
	})
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(cfg)
	log.Info("Prometheus metrics initialized")

	// Optional redis-backed permission cache
	perms := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL)
	if perms != nil {
		log.Info("Permission cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	// Wire services
	lookups := service.NewLookups(db)
	resolver := authz.NewResolver(lookups, lookups, lookups)
	recorder := audit.NewRecorder(db)

	clients := service.NewClientService(db, resolver, recorder)
	templates := service.NewJobTemplateService(db, resolver, recorder)
	vacancies := service.NewJobVacancyService(db, resolver, recorder)
	candidates := service.NewCandidateService(db, resolver, recorder)
	roles := service.NewRoleService(db, resolver, recorder, perms)
	users := service.NewUserService(db, resolver, recorder)
	tenants := service.NewTenantService(db, recorder)

	authHandler := handler.NewAuthHandler(users, roles, recorder)
	clientHandler := handler.NewClientHandler(clients)
	templateHandler := handler.NewJobTemplateHandler(templates)
	vacancyHandler := handler.NewJobVacancyHandler(vacancies)
	candidateHandler := handler.NewCandidateHandler(candidates)
	roleHandler := handler.NewRoleHandler(roles)
	userHandler := handler.NewUserHandler(users)
	tenantHandler := handler.NewTenantHandler(tenants)
	auditHandler := handler.NewAuditHandler(recorder)

	// Seed sample data when requested
	if cfg.SeedOnStart {
		if err := seed.Run(context.Background(), db); err != nil {
			log.Fatal("Failed to seed database", zap.Error(err))
		}
	}

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware())
	e.Use(middleware.MetricsMiddleware)

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	auth := e.Group("/auth")
	auth.POST("/login", authHandler.Login)

	// API routes - all require authentication and are throttled
	throttler := middleware.NewThrottler(cfg.Throttle.RequestsPerSecond, cfg.Throttle.Burst)
	api := e.Group("/api")
	api.Use(middleware.AuthMiddleware)
	api.Use(throttler.Middleware)

	api.GET("/auth/me", authHandler.Profile)

	clientRoutes := api.Group("/clients")
	clientRoutes.POST("", clientHandler.Create)
	clientRoutes.GET("", clientHandler.List)
	clientRoutes.GET("/:id", clientHandler.Get)
	clientRoutes.PATCH("/:id", clientHandler.Update)
	clientRoutes.DELETE("/:id", clientHandler.Delete)

	templateRoutes := api.Group("/job-templates")
	templateRoutes.POST("", templateHandler.Create)
	templateRoutes.GET("", templateHandler.List)
	templateRoutes.GET("/:id", templateHandler.Get)
	templateRoutes.DELETE("/:id", templateHandler.Delete)

	vacancyRoutes := api.Group("/job-vacancies")
	vacancyRoutes.POST("", vacancyHandler.Create)
	vacancyRoutes.GET("", vacancyHandler.List)
	vacancyRoutes.GET("/:id", vacancyHandler.Get)
	vacancyRoutes.PATCH("/:id", vacancyHandler.Update)
	vacancyRoutes.DELETE("/:id", vacancyHandler.Delete)

	candidateRoutes := api.Group("/candidates")
	candidateRoutes.POST("", candidateHandler.Create)
	candidateRoutes.GET("", candidateHandler.List)
	candidateRoutes.GET("/export", candidateHandler.Export)
	candidateRoutes.GET("/:id", candidateHandler.Get)
	candidateRoutes.PATCH("/:id", candidateHandler.Update)
	candidateRoutes.DELETE("/:id", candidateHandler.Delete)

	roleRoutes := api.Group("/roles")
	roleRoutes.POST("", roleHandler.CreateRole)
	roleRoutes.GET("", roleHandler.ListRoles)
	roleRoutes.GET("/:id", roleHandler.GetRole)
	roleRoutes.PATCH("/:id", roleHandler.UpdateRole)
	roleRoutes.DELETE("/:id", roleHandler.DeleteRole)

	permissionRoutes := api.Group("/permissions")
	permissionRoutes.POST("", roleHandler.CreatePermission)
	permissionRoutes.GET("", roleHandler.ListPermissions)
	permissionRoutes.GET("/:id", roleHandler.GetPermission)
	permissionRoutes.PATCH("/:id", roleHandler.UpdatePermission)
	permissionRoutes.DELETE("/:id", roleHandler.DeletePermission)

	userRoutes := api.Group("/users")
	userRoutes.POST("", userHandler.Create)
	userRoutes.GET("", userHandler.List)
	userRoutes.GET("/:id", userHandler.Get)

	tenantRoutes := api.Group("/tenants")
	tenantRoutes.POST("", tenantHandler.Create)
	tenantRoutes.GET("", tenantHandler.List)
	tenantRoutes.GET("/:id", tenantHandler.Get)

	api.GET("/audit-logs", auditHandler.List)

	// Start server
	log.Info("Starting server", zap.String("port", cfg.Server.Port))
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}

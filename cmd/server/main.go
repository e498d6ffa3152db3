package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"grounds-backend/internal/audit"
	"grounds-backend/internal/auth"
	"grounds-backend/internal/cache"
	"grounds-backend/internal/config"
	"grounds-backend/internal/database"
	"grounds-backend/internal/db"
	"grounds-backend/internal/handlers"
	"grounds-backend/internal/health"
	h "grounds-backend/internal/http"
	"grounds-backend/internal/jobs"
	"grounds-backend/internal/middleware"
	"grounds-backend/internal/monitoring"
	"grounds-backend/internal/repositories"
	"grounds-backend/internal/services"
	"grounds-backend/internal/storage"
	"grounds-backend/internal/timeutil"
	"grounds-backend/migrations"
)

func main() {
	// Parse command-line flags
	mode := flag.String("mode", "employee", "Server mode: employee or portal")
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()

	// Override port if specified
	if *port != 0 {
		cfg.Server.Port = *port
	} else if *mode == "portal" {
		cfg.Server.Port = 8081
	}
	// Employee mode uses the configured port (8080)

	pool := db.Connect(cfg)
	defer pool.Close()

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (login will use bcrypt only)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	// Run database migrations from the embedded files so the binary is
	// self-contained
	log.Println("Running database migrations...")
	migrator := database.NewMigrator(pool, migrations.FS, ".")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize health checker
	healthChecker := health.NewHealthChecker(pool)

	// Start monitoring dashboard server in background
	go monitoring.NewMonitoringServer(pool, 9090).Start()

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(pool)
	projectRepo := repositories.NewProjectRepository(pool)
	workLogRepo := repositories.NewWorkLogRepository(pool)
	personnelRepo := repositories.NewPersonnelRepository(pool)
	teamRepo := repositories.NewTeamRepository(pool)
	clientRepo := repositories.NewClientAccountRepository(pool)
	auditRepo := repositories.NewAuditRepository(pool)
	savedFilterRepo := repositories.NewSavedFilterRepository(pool)

	// Every tracked mutation flows through this recorder
	recorder := audit.NewRecorder(auditRepo)

	// Initialize middleware (needed for both modes)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)
	clientAuthMiddleware := middleware.NewClientAuthMiddleware(jwtManager, clientRepo)
	corsMiddleware := middleware.NewCORS(cfg)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	// Initialize services shared by both modes
	clientService := services.NewClientService(clientRepo, jwtManager, recorder)
	scheduleService := services.NewScheduleService(projectRepo)

	var handler http.Handler

	if *mode == "portal" {
		log.Println("Starting in CLIENT PORTAL mode")

		portalService := services.NewPortalService(clientRepo, projectRepo, workLogRepo, scheduleService)
		portalHandler := handlers.NewPortalHandler(clientService, portalService)

		router := h.NewPortalRouter(portalHandler, healthHandler, clientAuthMiddleware)
		handler = corsMiddleware(router)

	} else {
		log.Println("Starting in EMPLOYEE mode")

		// Initialize services (employee mode)
		userService := services.NewUserService(userRepo, jwtManager)
		projectService := services.NewProjectService(projectRepo, recorder)
		workLogService := services.NewWorkLogService(workLogRepo, projectRepo, recorder)
		personnelService := services.NewPersonnelService(personnelRepo, teamRepo, recorder)
		auditService := services.NewAuditService(recorder, projectRepo, workLogRepo)
		reportService := services.NewReportService(projectRepo, workLogRepo, cfg.CompanyInfo())

		// Report archiving to S3 is optional and disabled unless configured
		archiver := storage.NewReportArchiver(cfg)
		if archiver.Enabled() {
			log.Println("[Archive] Report archiving enabled")
		}

		// Initialize handlers (employee mode)
		authHandler := handlers.NewAuthHandler(userService)
		userHandler := handlers.NewUserHandler(userService)
		projectHandler := handlers.NewProjectHandler(projectService)
		workLogHandler := handlers.NewWorkLogHandler(workLogService)
		personnelHandler := handlers.NewPersonnelHandler(personnelService)
		clientHandler := handlers.NewClientHandler(clientService)
		scheduleHandler := handlers.NewScheduleHandler(scheduleService)
		auditHandler := handlers.NewAuditHandler(auditService)
		filterHandler := handlers.NewFilterHandler(savedFilterRepo)
		reportHandler := handlers.NewReportHandler(reportService, archiver)

		router := h.NewRouter(
			authHandler,
			userHandler,
			projectHandler,
			workLogHandler,
			personnelHandler,
			clientHandler,
			scheduleHandler,
			auditHandler,
			filterHandler,
			reportHandler,
			healthHandler,
			authMiddleware,
		)
		handler = corsMiddleware(router)

		// Nightly schedule pre-warm so the first planning view of the day
		// hits a warm cache
		scheduler := jobs.NewScheduler(scheduleService)
		if err := scheduler.Start(); err != nil {
			log.Printf("[Jobs] Scheduler failed to start: %v", err)
		} else {
			defer scheduler.Stop()
		}

		// Pre-warm the current and next month's schedule on startup
		now := timeutil.Now()
		for _, m := range []time.Time{now, now.AddDate(0, 1, 0)} {
			month, year := int(m.Month()), m.Year()
			cache.RegisterPreWarm(cache.ScheduleMonthKey(year, month), func(ctx context.Context) ([]byte, error) {
				return scheduleService.PreWarmMonth(ctx, month, year)
			})
		}
		go cache.PreWarmCache()
		log.Println("[Redis] Pre-warming cache in background...")
	}

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s (mode: %s)", addr, *mode)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

package http

import (
	"net/http"

	"grounds-backend/internal/handlers"
	"grounds-backend/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the employee API served on the main port
func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	projectHandler *handlers.ProjectHandler,
	workLogHandler *handlers.WorkLogHandler,
	personnelHandler *handlers.PersonnelHandler,
	clientHandler *handlers.ClientHandler,
	scheduleHandler *handlers.ScheduleHandler,
	auditHandler *handlers.AuditHandler,
	filterHandler *handlers.FilterHandler,
	reportHandler *handlers.ReportHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	r.Use(middleware.PanicRecovery)
	r.Use(middleware.RequestLogging)
	r.Use(middleware.MetricsMiddleware)

	// Public API routes - Authentication
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected API routes - Users (admin only)
	usersAPI := r.PathPrefix("/api/users").Subrouter()
	usersAPI.Use(authMiddleware.Authenticate)
	usersAPI.HandleFunc("", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.ListUsers)).ServeHTTP).Methods("GET")
	usersAPI.HandleFunc("", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.CreateUser)).ServeHTTP).Methods("POST")
	usersAPI.HandleFunc("/{id}", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.GetUser)).ServeHTTP).Methods("GET")
	usersAPI.HandleFunc("/{id}", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.UpdateUser)).ServeHTTP).Methods("PUT")
	usersAPI.HandleFunc("/{id}", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.DeleteUser)).ServeHTTP).Methods("DELETE")

	// Protected API routes - Projects
	projectsAPI := r.PathPrefix("/api/projects").Subrouter()
	projectsAPI.Use(authMiddleware.Authenticate)
	projectsAPI.HandleFunc("", projectHandler.ListProjects).Methods("GET")
	projectsAPI.HandleFunc("", authMiddleware.RequireManager(http.HandlerFunc(projectHandler.CreateProject)).ServeHTTP).Methods("POST")
	projectsAPI.HandleFunc("/filter", projectHandler.FilterProjects).Methods("POST")
	projectsAPI.HandleFunc("/{id}", projectHandler.GetProject).Methods("GET")
	projectsAPI.HandleFunc("/{id}", authMiddleware.RequireManager(http.HandlerFunc(projectHandler.UpdateProject)).ServeHTTP).Methods("PUT")
	projectsAPI.HandleFunc("/{id}", authMiddleware.RequireAdmin(http.HandlerFunc(projectHandler.DeleteProject)).ServeHTTP).Methods("DELETE")
	projectsAPI.HandleFunc("/{id}/archive", authMiddleware.RequireManager(http.HandlerFunc(projectHandler.ArchiveProject)).ServeHTTP).Methods("POST")
	projectsAPI.HandleFunc("/{id}/restore", authMiddleware.RequireManager(http.HandlerFunc(projectHandler.RestoreProject)).ServeHTTP).Methods("POST")
	projectsAPI.HandleFunc("/{id}/worklogs", workLogHandler.ListByProject).Methods("GET")
	projectsAPI.HandleFunc("/{id}/schedule", scheduleHandler.GetProjectSchedule).Methods("GET")

	// Protected API routes - Work logs
	workLogsAPI := r.PathPrefix("/api/worklogs").Subrouter()
	workLogsAPI.Use(authMiddleware.Authenticate)
	workLogsAPI.HandleFunc("", workLogHandler.ListWorkLogs).Methods("GET")
	workLogsAPI.HandleFunc("", workLogHandler.CreateWorkLog).Methods("POST")
	workLogsAPI.HandleFunc("/filter", workLogHandler.FilterWorkLogs).Methods("POST")
	workLogsAPI.HandleFunc("/{id}", workLogHandler.GetWorkLog).Methods("GET")
	workLogsAPI.HandleFunc("/{id}", workLogHandler.UpdateWorkLog).Methods("PUT")
	workLogsAPI.HandleFunc("/{id}", authMiddleware.RequireAdmin(http.HandlerFunc(workLogHandler.DeleteWorkLog)).ServeHTTP).Methods("DELETE")
	workLogsAPI.HandleFunc("/{id}/archive", workLogHandler.ArchiveWorkLog).Methods("POST")
	workLogsAPI.HandleFunc("/{id}/restore", workLogHandler.RestoreWorkLog).Methods("POST")

	// Protected API routes - Personnel and teams
	personnelAPI := r.PathPrefix("/api/personnel").Subrouter()
	personnelAPI.Use(authMiddleware.Authenticate)
	personnelAPI.HandleFunc("", personnelHandler.ListPersonnel).Methods("GET")
	personnelAPI.HandleFunc("", authMiddleware.RequireManager(http.HandlerFunc(personnelHandler.CreatePersonnel)).ServeHTTP).Methods("POST")
	personnelAPI.HandleFunc("/{id}", personnelHandler.GetPersonnel).Methods("GET")
	personnelAPI.HandleFunc("/{id}", authMiddleware.RequireManager(http.HandlerFunc(personnelHandler.UpdatePersonnel)).ServeHTTP).Methods("PUT")
	personnelAPI.HandleFunc("/{id}", authMiddleware.RequireAdmin(http.HandlerFunc(personnelHandler.DeletePersonnel)).ServeHTTP).Methods("DELETE")
	personnelAPI.HandleFunc("/{id}/archive", authMiddleware.RequireManager(http.HandlerFunc(personnelHandler.ArchivePersonnel)).ServeHTTP).Methods("POST")
	personnelAPI.HandleFunc("/{id}/restore", authMiddleware.RequireManager(http.HandlerFunc(personnelHandler.RestorePersonnel)).ServeHTTP).Methods("POST")

	teamsAPI := r.PathPrefix("/api/teams").Subrouter()
	teamsAPI.Use(authMiddleware.Authenticate)
	teamsAPI.HandleFunc("", personnelHandler.ListTeams).Methods("GET")
	teamsAPI.HandleFunc("", authMiddleware.RequireManager(http.HandlerFunc(personnelHandler.CreateTeam)).ServeHTTP).Methods("POST")
	teamsAPI.HandleFunc("/{id}", personnelHandler.GetTeam).Methods("GET")
	teamsAPI.HandleFunc("/{id}", authMiddleware.RequireManager(http.HandlerFunc(personnelHandler.UpdateTeam)).ServeHTTP).Methods("PUT")
	teamsAPI.HandleFunc("/{id}", authMiddleware.RequireAdmin(http.HandlerFunc(personnelHandler.DeleteTeam)).ServeHTTP).Methods("DELETE")
	teamsAPI.HandleFunc("/{id}/members", personnelHandler.TeamMembers).Methods("GET")

	// Protected API routes - Portal clients (managers manage accounts)
	clientsAPI := r.PathPrefix("/api/clients").Subrouter()
	clientsAPI.Use(authMiddleware.Authenticate)
	clientsAPI.HandleFunc("", authMiddleware.RequireManager(http.HandlerFunc(clientHandler.ListClients)).ServeHTTP).Methods("GET")
	clientsAPI.HandleFunc("", authMiddleware.RequireManager(http.HandlerFunc(clientHandler.CreateClient)).ServeHTTP).Methods("POST")
	clientsAPI.HandleFunc("/{id}", authMiddleware.RequireManager(http.HandlerFunc(clientHandler.GetClient)).ServeHTTP).Methods("GET")
	clientsAPI.HandleFunc("/{id}", authMiddleware.RequireManager(http.HandlerFunc(clientHandler.UpdateClient)).ServeHTTP).Methods("PUT")
	clientsAPI.HandleFunc("/{id}", authMiddleware.RequireAdmin(http.HandlerFunc(clientHandler.DeleteClient)).ServeHTTP).Methods("DELETE")
	clientsAPI.HandleFunc("/{id}/rotate-code", authMiddleware.RequireManager(http.HandlerFunc(clientHandler.RotateAccessCode)).ServeHTTP).Methods("POST")

	// Protected API routes - Schedule
	scheduleAPI := r.PathPrefix("/api/schedule").Subrouter()
	scheduleAPI.Use(authMiddleware.Authenticate)
	scheduleAPI.HandleFunc("", scheduleHandler.GetMonthSchedule).Methods("GET")
	scheduleAPI.HandleFunc("/year", scheduleHandler.GetYearSchedule).Methods("GET")

	// Protected API routes - Audit trail (managers view, admins restore)
	auditAPI := r.PathPrefix("/api/audit").Subrouter()
	auditAPI.Use(authMiddleware.Authenticate)
	auditAPI.HandleFunc("", authMiddleware.RequireManager(http.HandlerFunc(auditHandler.GlobalHistory)).ServeHTTP).Methods("GET")
	auditAPI.HandleFunc("/restore", authMiddleware.RequireAdmin(http.HandlerFunc(auditHandler.Restore)).ServeHTTP).Methods("POST")
	auditAPI.HandleFunc("/{type}/{id}", authMiddleware.RequireManager(http.HandlerFunc(auditHandler.EntityHistory)).ServeHTTP).Methods("GET")

	// Protected API routes - Filter presets
	filtersAPI := r.PathPrefix("/api/filters").Subrouter()
	filtersAPI.Use(authMiddleware.Authenticate)
	filtersAPI.HandleFunc("/presets", filterHandler.ListPresets).Methods("GET")
	filtersAPI.HandleFunc("/presets", filterHandler.SavePreset).Methods("POST")
	filtersAPI.HandleFunc("/presets/{id}", filterHandler.DeletePreset).Methods("DELETE")

	// Protected API routes - Reports
	reportsAPI := r.PathPrefix("/api/reports").Subrouter()
	reportsAPI.Use(authMiddleware.Authenticate)
	reportsAPI.HandleFunc("/worklogs/zip", reportHandler.GetBulkWorkLogZip).Methods("GET")
	reportsAPI.HandleFunc("/worklogs/csv", reportHandler.GetWorkLogsCSV).Methods("GET")
	reportsAPI.HandleFunc("/worklogs/{id}/pdf", reportHandler.GetWorkLogPDF).Methods("GET")
	reportsAPI.HandleFunc("/projects/{id}/pdf", reportHandler.GetProjectPDF).Methods("GET")
	reportsAPI.Handle("/archive", authMiddleware.RequireManager(http.HandlerFunc(reportHandler.ListArchived))).Methods("GET")

	// Health endpoints (no auth required - for probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// NewPortalRouter builds the read-only client portal served on its own port
func NewPortalRouter(
	portalHandler *handlers.PortalHandler,
	healthHandler *handlers.HealthHandler,
	clientAuth *middleware.ClientAuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	r.Use(middleware.PanicRecovery)
	r.Use(middleware.RequestLogging)
	r.Use(middleware.MetricsMiddleware)

	// Public API - client login with email + access code
	r.HandleFunc("/auth/login", portalHandler.Login).Methods("POST")

	// Protected API routes - client portal (requires client JWT)
	portalAPI := r.PathPrefix("/api/portal").Subrouter()
	portalAPI.Use(clientAuth.Authenticate)
	portalAPI.HandleFunc("/dashboard", portalHandler.Dashboard).Methods("GET")
	portalAPI.HandleFunc("/schedule", portalHandler.Schedule).Methods("GET")
	portalAPI.HandleFunc("/worklogs", portalHandler.WorkLogs).Methods("GET")

	// Health endpoints (no auth required - for probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")

	return r
}

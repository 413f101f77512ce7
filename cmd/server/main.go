package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"gametrack-backend/internal/auth"
	"gametrack-backend/internal/cache"
	"gametrack-backend/internal/config"
	"gametrack-backend/internal/database"
	"gametrack-backend/internal/db"
	"gametrack-backend/internal/handlers"
	"gametrack-backend/internal/health"
	h "gametrack-backend/internal/http"
	"gametrack-backend/internal/locations"
	"gametrack-backend/internal/middleware"
	"gametrack-backend/internal/monitoring"
	"gametrack-backend/internal/repositories"
	"gametrack-backend/internal/services"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	migrationsDir := flag.String("migrations", "migrations", "Path to SQL migrations")
	flag.Parse()

	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	pool := db.Connect(cfg)
	defer pool.Close()

	// Redis is optional; everything that uses it degrades gracefully
	if err := cache.Init(cfg); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (sign-in log and dashboard cache disabled)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	log.Println("Running database migrations...")
	migrator := database.NewMigrator(pool, *migrationsDir)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	registry := locations.NewRegistry(cfg.Tracker.Locations, cfg.Tracker.SiteCodes)
	healthChecker := health.NewHealthChecker(pool)
	jwtManager := auth.NewJWTManager(cfg)

	// Repositories
	gameRepo := repositories.NewGameRepository(pool)
	transportationRepo := repositories.NewTransportationRepository(pool)
	depositRepo := repositories.NewDepositRepository(pool)
	officeRepo := repositories.NewOfficeRepository(pool)
	issueRepo := repositories.NewIssueRepository(pool)
	operatorRepo := repositories.NewOperatorRepository(pool)

	// Monitoring dashboard on its own port
	go monitoring.NewMonitoringServer(pool, gameRepo, transportationRepo, officeRepo, issueRepo, registry, 9090).Start()

	// Services
	lifecycleService := services.NewLifecycleService(gameRepo, transportationRepo, depositRepo, registry, cfg.Tracker.Pickers)
	intakeService := services.NewIntakeService(gameRepo, registry)
	officeScanService := services.NewOfficeScanService(officeRepo)
	issueService := services.NewIssueService(issueRepo)
	dashboardService := services.NewDashboardService(gameRepo, depositRepo, registry)
	reportService := services.NewReportService(depositRepo)
	archiveService := services.NewArchiveService(gameRepo, cfg)
	authService := services.NewAuthService(operatorRepo, jwtManager)

	// Handlers
	uploadHandler := handlers.NewUploadHandler(intakeService)
	inventoryHandler := handlers.NewInventoryHandler(lifecycleService)
	sellerHandler := handlers.NewSellerHandler(lifecycleService)
	gameHandler := handlers.NewGameHandler(lifecycleService)
	pickupHandler := handlers.NewPickupHandler(lifecycleService)
	transportationHandler := handlers.NewTransportationHandler(lifecycleService)
	depositHandler := handlers.NewDepositHandler(lifecycleService, reportService)
	officeHandler := handlers.NewOfficeHandler(officeScanService)
	issueHandler := handlers.NewIssueHandler(issueService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	signInHandler := handlers.NewSignInHandler()
	authHandler := handlers.NewAuthHandler(authService)
	archiveHandler := handlers.NewArchiveHandler(archiveService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	authMiddleware := middleware.NewAuthMiddleware(jwtManager)
	corsMiddleware := middleware.NewCORS(cfg)

	router := h.NewRouter(
		uploadHandler,
		inventoryHandler,
		sellerHandler,
		gameHandler,
		pickupHandler,
		transportationHandler,
		depositHandler,
		officeHandler,
		issueHandler,
		dashboardHandler,
		signInHandler,
		authHandler,
		archiveHandler,
		healthHandler,
		authMiddleware,
	)

	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Game tracker listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

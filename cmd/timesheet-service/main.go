package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/cloksy/cloksy-backend/internal/auth"
	authhandler "github.com/cloksy/cloksy-backend/internal/auth/handler"
	"github.com/cloksy/cloksy-backend/internal/auth/jwt"
	"github.com/cloksy/cloksy-backend/internal/timesheet/archive"
	"github.com/cloksy/cloksy-backend/internal/timesheet/events"
	"github.com/cloksy/cloksy-backend/internal/timesheet/handler"
	"github.com/cloksy/cloksy-backend/internal/timesheet/migrations"
	"github.com/cloksy/cloksy-backend/internal/timesheet/repository"
	"github.com/cloksy/cloksy-backend/internal/timesheet/service"
	"github.com/cloksy/cloksy-backend/pkg/config"
	"github.com/cloksy/cloksy-backend/pkg/database"
	"github.com/cloksy/cloksy-backend/pkg/httputil"
	"github.com/cloksy/cloksy-backend/pkg/logger"
	"github.com/cloksy/cloksy-backend/pkg/messaging"
)

const serviceName = "timesheet-service"

func main() {
	// Load configuration
	cfg, err := config.LoadWithValidation(serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(serviceName, cfg.Server.Environment)
	log.Info().Str("report_window", cfg.Reports.Window).Msg("starting Timesheet Service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(ctx, migrations.FS); err != nil {
			log.Fatal().Err(err).Msg("failed to apply migrations")
		}
		log.Info().Msg("migrations applied")
	}

	// Events are optional; without RabbitMQ the publisher is a no-op
	var (
		rmq       *messaging.RabbitMQ
		publisher *events.TimesheetEventPublisher
	)
	if cfg.RabbitMQ.Enabled {
		rmq, err = messaging.New(&cfg.RabbitMQ, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
		}
		defer rmq.Close()

		publisher, err = events.NewTimesheetEventPublisher(rmq, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create event publisher")
		}
	}

	var archiver service.Archiver
	if cfg.Archive.Enabled {
		a, err := archive.New(ctx, cfg.Archive)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to configure export archive")
		}
		archiver = a
		log.Info().Str("bucket", cfg.Archive.Bucket).Msg("export archiving enabled")
	}

	// Initialize repositories
	projectRepo := repository.NewProjectRepository(db)
	timeLogRepo := repository.NewTimeLogRepository(db)
	holidayRepo := repository.NewHolidayRepository(db)
	ptoRepo := repository.NewPTORepository(db)

	// Initialize services
	projectService := service.NewProjectService(projectRepo, publisher, log.WithComponent("projects"))
	timesheetService := service.NewTimesheetService(projectRepo, timeLogRepo, publisher, log.WithComponent("timesheet"))
	calendarService := service.NewCalendarService(holidayRepo, publisher, log.WithComponent("calendar"))
	ptoService := service.NewPTOService(ptoRepo, publisher, log.WithComponent("pto"))
	reportService := service.NewReportService(timeLogRepo, archiver, publisher, log.WithComponent("reports"), cfg.Reports.Window)

	// Initialize handlers
	tokens := jwt.NewManager(&cfg.JWT)
	sessionHandler := authhandler.NewSessionHandler(auth.NewEmailDomainAuthenticator(cfg.Organization.EmailDomain), tokens, log)
	handlers := &handler.Handlers{
		Projects:  handler.NewProjectHandler(projectService, log),
		Timesheet: handler.NewTimesheetHandler(timesheetService, log),
		Calendar:  handler.NewCalendarHandler(calendarService, log),
		PTO:       handler.NewPTOHandler(ptoService, log),
		Reports:   handler.NewReportHandler(reportService, log),
	}

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(httputil.RequestID)
	r.Use(httputil.Logger(log))
	r.Use(httputil.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "Content-Disposition", "X-Archive-Key"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		status := map[string]interface{}{
			"status":   "healthy",
			"service":  serviceName,
			"database": db.Health(r.Context()),
		}
		if rmq != nil {
			status["rabbitmq"] = rmq.Health()
		}
		httputil.JSON(w, http.StatusOK, status)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/session", sessionHandler.Create)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(tokens, log))
			handlers.Mount(r)
		})
	})

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	cancel()

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

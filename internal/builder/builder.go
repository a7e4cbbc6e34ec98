package builder

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/heyverne/verne-backend/internal/api"
	analyticsapi "github.com/heyverne/verne-backend/internal/api/analytics"
	bookapi "github.com/heyverne/verne-backend/internal/api/book"
	sessionapi "github.com/heyverne/verne-backend/internal/api/session"
	storyapi "github.com/heyverne/verne-backend/internal/api/story"
	"github.com/heyverne/verne-backend/internal/config"
	"github.com/heyverne/verne-backend/internal/integration/imagegen"
	"github.com/heyverne/verne-backend/internal/pkg/formatter"
	"github.com/heyverne/verne-backend/internal/pkg/validator"
	"github.com/heyverne/verne-backend/internal/repository"
	"github.com/heyverne/verne-backend/internal/usecase/analytics"
	"github.com/heyverne/verne-backend/internal/usecase/book"
	"github.com/heyverne/verne-backend/internal/usecase/session"
	"github.com/heyverne/verne-backend/internal/usecase/story"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Setup database connection
	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	// Run database migrations
	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Uploads directory holds hero photos and generated panels
	if err := os.MkdirAll(cfg.FileUploadCfg.UploadDir, 0o755); err != nil {
		db.Close()
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	// Initialize repositories
	sessionRepo := repository.NewSessionPostgres(db)
	storyPageRepo := repository.NewStoryPagePostgres(db)
	interactionRepo := repository.NewInteractionPostgres(db)
	choiceRepo := repository.NewChoicePostgres(db)
	metricRepo := repository.NewMetricPostgres(db)
	logger.Info("Repositories initialized")

	// Initialize image generation connector (with mock support)
	taskStore := imagegen.NewTaskStore(cfg.ImageGenCfg.TaskTTL, cfg.ImageGenCfg.TaskCleanup)

	var imageGen story.ImageGenConnector
	if cfg.EnableMocks {
		logger.Info("Using mock connector for image generation")
		imageGen = imagegen.NewMockConnector(taskStore, logger)
	} else {
		logger.Info("Using real connector for image generation")
		imageGen = imagegen.NewConnector(cfg.ImageGenCfg, cfg.FileUploadCfg, taskStore, logger)
	}

	// Initialize validators
	requestValidator := validator.NewValidator(cfg.FileUploadCfg)
	logger.Info("Validators initialized")

	// Initialize use cases
	sessionUC := session.NewUsecase(
		sessionRepo,
		storyPageRepo,
		choiceRepo,
		interactionRepo,
		requestValidator,
		cfg.FileUploadCfg,
		logger,
	)

	storyUC := story.NewUsecase(
		sessionRepo,
		storyPageRepo,
		choiceRepo,
		interactionRepo,
		imageGen,
		requestValidator,
		logger,
	)

	analyticsUC := analytics.NewUsecase(
		sessionRepo,
		storyPageRepo,
		choiceRepo,
		interactionRepo,
		metricRepo,
		requestValidator,
		logger,
	)

	bookUC := book.NewUsecase(
		sessionRepo,
		storyPageRepo,
		choiceRepo,
		formatter.NewFactory(),
		logger,
	)
	logger.Info("Use cases initialized")

	// Setup API handlers
	handlers := api.Handlers{
		Session:   sessionapi.NewHandler(sessionUC, cfg.FileUploadCfg),
		Story:     storyapi.NewHandler(storyUC),
		Analytics: analyticsapi.NewHandler(analyticsUC),
		Book:      bookapi.NewHandler(bookUC),
	}
	logger.Info("API handlers initialized")

	// Setup router
	router := api.SetupRouter(handlers, cfg, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		db:     db,
		logger: logger,
	}, nil
}

package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/researchpartner/api/internal/collab"
	"github.com/researchpartner/api/internal/config"
	"github.com/researchpartner/api/internal/db"
	"github.com/researchpartner/api/internal/repository"
	"github.com/researchpartner/api/internal/service"
	"github.com/researchpartner/api/internal/storage"
)

type App struct {
	Cfg          *config.Config
	DB           *sqlx.DB
	AuthService  *service.AuthService
	EmailService *service.EmailService
	AIService    *service.AIService
	PaperService *service.PaperService
	IdeaService  *service.IdeaService
	Hub          *collab.Hub
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	paperRepository := repository.NewPaperRepository(database)
	summaryRepository := repository.NewSummaryRepository(database)
	ideaRepository := repository.NewIdeaRepository(database)
	chatRepository := repository.NewChatRepository(database)
	quizRepository := repository.NewQuizAttemptRepository(database)

	// Storage
	fileStorage, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	aiService, err := service.NewAIService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize AI service: %v", err)
	}
	pdfService := service.NewPDFService()
	authService := service.NewAuthService(
		userRepository,
		emailService,
		cfg.JWTSecret,
		cfg.JWTExpiry,
		cfg.OTPExpiry,
	)
	paperService := service.NewPaperService(
		paperRepository,
		userRepository,
		summaryRepository,
		ideaRepository,
		chatRepository,
		quizRepository,
		fileStorage,
		pdfService,
		aiService,
	)
	ideaService := service.NewIdeaService(ideaRepository, paperRepository, chatRepository, aiService)

	return &App{
		Cfg:          cfg,
		DB:           database,
		AuthService:  authService,
		EmailService: emailService,
		AIService:    aiService,
		PaperService: paperService,
		IdeaService:  ideaService,
		Hub:          collab.NewHub(),
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/bandscore/bandscore-api/internal/config"
	"github.com/bandscore/bandscore-api/internal/database"
	"github.com/bandscore/bandscore-api/internal/handler"
	"github.com/bandscore/bandscore-api/internal/middleware"
	"github.com/bandscore/bandscore-api/internal/models"
	"github.com/bandscore/bandscore-api/internal/repository"
	"github.com/bandscore/bandscore-api/internal/router"
	"github.com/bandscore/bandscore-api/internal/service"
	"github.com/bandscore/bandscore-api/pkg/ai"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.WritingScore{}, &models.CombinedWritingScore{}, &models.UserCredits{}, &models.ChatMessage{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	judge, err := buildJudge(cfg, logger)
	if err != nil {
		log.Fatalf("failed to create essay judge: %v", err)
	}

	tutor, err := ai.NewOpenAIChat(cfg.OpenAIAPIKey, "", logger)
	if err != nil {
		logger.Warn().Err(err).Msg("tutor chat disabled")
		tutor = nil
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	scoreRepo := repository.NewWritingScoreRepository(db)
	combinedRepo := repository.NewCombinedScoreRepository(db)
	creditsRepo := repository.NewCreditsRepository(db)
	chatRepo := repository.NewChatRepository(db)

	writingService := service.NewWritingService(scoreRepo, combinedRepo, creditsRepo, judge, validate, redisClient, logger, service.WritingServiceConfig{
		CreditsPerEvaluation: cfg.CreditsPerEvaluation,
		ScoreCacheTTL:        cfg.ScoreCacheTTL,
	})
	creditsService := service.NewCreditsService(creditsRepo, validate, logger)
	chatService := service.NewChatService(chatRepo, tutorCompleter(tutor), validate, logger)

	writingHandler := handler.NewWritingHandler(writingService, logger)
	creditsHandler := handler.NewCreditsHandler(creditsService, logger)
	chatHandler := handler.NewChatHandler(chatService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		WritingHandler: writingHandler,
		CreditsHandler: creditsHandler,
		ChatHandler:    chatHandler,
		JWTMiddleware:  middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func buildJudge(cfg config.Config, logger zerolog.Logger) (ai.EssayJudge, error) {
	switch cfg.AIProvider {
	case "anthropic":
		return ai.NewAnthropicJudge(ai.AnthropicConfig{APIKey: cfg.AnthropicAPIKey})
	default:
		return ai.NewOpenAIJudge(ai.OpenAIConfig{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.OpenAIModel,
			Logger: logger,
		})
	}
}

func tutorCompleter(tutor *ai.OpenAIChat) ai.ChatCompleter {
	if tutor == nil {
		return nil
	}
	return tutor
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}

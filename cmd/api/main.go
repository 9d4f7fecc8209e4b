// @title Quiz Forge API
// @version 1.0
// @description Generates and quality-validates multiple-choice quizzes from notes and documents.
// @host localhost:8090
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"quiz-forge/internal/adapter"
	"quiz-forge/internal/adapter/document"
	"quiz-forge/internal/adapter/provider"
	"quiz-forge/internal/cache"
	"quiz-forge/internal/config"
	"quiz-forge/internal/database"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/handler"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/middleware"
	"quiz-forge/internal/repository"
	"quiz-forge/internal/service"
	"quiz-forge/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Provider clients are built once here and read-only afterwards.
	registry, err := provider.NewRegistry(cfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize provider registry", zap.Error(err))
	}

	extractor := document.NewExtractor(document.NewPlainTextDecoder(), cfg.Pipeline.ContentCeiling)

	// Connect to database
	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	quizRepository := repository.NewQuizDatabaseAdapter(db)

	// Redis is optional: without it drafts are generated fresh every time.
	var cacheAdapter domain.Cache
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Warn("Redis unavailable, draft caching disabled", zap.Error(err))
	} else {
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("RedisCacheAdapter initialized")
	}

	// Pipeline components
	preparer := service.NewContentPreparer(registry, cfg.Pipeline)
	generator := service.NewQuizGenerator(registry, cfg.Pipeline)
	validator := service.NewQuizValidator(registry, cfg.Pipeline)
	quizService := service.NewQuizService(registry, extractor, preparer, generator, validator, cacheAdapter, cfg.Pipeline)
	storeService := service.NewQuizStoreService(quizRepository)

	requestValidator := validation.NewValidator()
	quizHandler := handler.NewQuizHandler(quizService, requestValidator)
	storageHandler := handler.NewStorageHandler(storeService, requestValidator)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	apiGroup := app.Group("/api")

	// Generation and validation
	apiGroup.Post("/generate-quiz", quizHandler.GenerateQuiz)
	apiGroup.Post("/generate-quiz/validated", quizHandler.GenerateValidatedQuiz)
	apiGroup.Post("/validate-quiz", quizHandler.ValidateQuiz)

	// Stored quizzes
	apiGroup.Post("/quiz", storageHandler.CreateQuiz)
	apiGroup.Get("/quiz/:id", storageHandler.GetQuiz)
	apiGroup.Get("/quizzes", storageHandler.GetQuizzes)
	apiGroup.Put("/quiz/:id", storageHandler.UpdateQuiz)
	apiGroup.Delete("/quiz/:id", storageHandler.DeleteQuiz)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}

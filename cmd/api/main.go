package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"prolens/profile-analyzer/internal/config"
	"prolens/profile-analyzer/internal/handlers"
	"prolens/profile-analyzer/internal/repositories"
	"prolens/profile-analyzer/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	profileRepo := repositories.NewProfileRepository(db)
	analysisRepo := repositories.NewAnalysisRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	extractor := services.NewTextExtractor(cfg.Storage.OCRLanguage)
	segmenter := services.NewSectionSegmenter()
	log.Println("✅ Services initialized successfully")

	// Initialize LLM providers
	claudeService := services.NewClaudeService(cfg.LLM.ClaudeAPIKey, cfg.LLM.MaxTokens)
	openaiService := services.NewOpenAIService(
		cfg.LLM.OpenAIAPIKey,
		cfg.LLM.OpenAIModel,
		cfg.LLM.MaxTokens,
		cfg.LLM.Timeout,
	)
	requester := services.NewAnalysisRequester(claudeService, openaiService)
	chatModifier := services.NewChatModifier(requester)
	log.Println("✅ LLM providers initialized successfully")

	// Initialize embeddings + Qdrant
	embeddingService, err := services.NewEmbeddingService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize embedding service: %v", err)
	}

	indexService, err := services.NewProfileIndexService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := indexService.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
	}

	indexer := services.NewProfileIndexer(embeddingService, indexService)
	log.Println("✅ Profile index initialized successfully")

	// Start session sweeper
	ctx := context.Background()
	sweeper := services.NewSessionSweeper(sessionRepo, cfg.Admin.SweepInterval)
	sweeper.Start(ctx)
	log.Println("✅ Session sweeper started successfully")

	// Initialize handlers
	analyzeHandler := handlers.NewAnalyzeHandler(
		profileRepo,
		analysisRepo,
		storageService,
		extractor,
		segmenter,
		requester,
		indexer,
		cfg.Storage.MaxFileSize,
	)
	chatHandler := handlers.NewChatHandler(chatModifier)
	profileHandler := handlers.NewProfileHandler(profileRepo, analysisRepo, indexer)
	adminHandler := handlers.NewAdminHandler(sessionRepo, cfg.Admin.APIKey, cfg.Admin.SessionTTL)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Profile Analyzer API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Admin-Token",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	profiles := api.Group("/profiles")
	profiles.Post("/analyze-profile", analyzeHandler.HandleAnalyzeProfile)
	profiles.Post("/chat-modify", chatHandler.HandleChatModify)
	profiles.Get("/:userId", profileHandler.HandleGetProfile)
	profiles.Get("/:userId/similar", profileHandler.HandleSimilarProfiles)
	profiles.Delete("/:userId", adminHandler.RequireSession, profileHandler.HandleDeleteProfile)

	api.Post("/admin/sessions", adminHandler.HandleCreateSession)
	api.Delete("/admin/sessions", adminHandler.HandleDeleteSession)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Profile Analyzer API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/profiles/analyze-profile",
				"POST /api/v1/profiles/chat-modify",
				"GET /api/v1/profiles/:userId",
				"GET /api/v1/profiles/:userId/similar",
				"DELETE /api/v1/profiles/:userId",
				"POST /api/v1/admin/sessions",
				"DELETE /api/v1/admin/sessions",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		sweeper.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}

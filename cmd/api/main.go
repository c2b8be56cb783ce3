package main

import (
	"context"
	"errors"
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

	"cv-match/internal/config"
	"cv-match/internal/handlers"
	"cv-match/internal/llm"
	"cv-match/internal/repositories"
	"cv-match/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Weights.Validate(); err != nil {
		log.Fatalf("❌ Invalid scoring weights: %v", err)
	}
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	offerRepo := repositories.NewJobOfferRepository(db)
	cvRepo := repositories.NewCVRepository(db)
	matchingRepo := repositories.NewMatchingRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	documentParser := services.NewDocumentParser()
	log.Println("✅ Services initialized successfully")

	// Initialize language model provider. Unconfigured providers are
	// tolerated: the pipeline then produces empty profiles and zero scores.
	modelClient, err := llm.New(llm.Config{
		Provider: cfg.Model.Provider,
		Model:    cfg.Model.Model,
		APIKey:   cfg.Model.APIKey,
		BaseURL:  cfg.Model.BaseURL,
	})
	if err != nil {
		if !errors.Is(err, llm.ErrNotConfigured) {
			log.Fatalf("❌ Failed to initialize model provider: %v", err)
		}
		log.Printf("⚠️  %v, scoring runs in degraded mode\n", err)
		modelClient = nil
	} else {
		log.Printf("✅ Model provider %q initialized successfully\n", modelClient.Provider())
	}

	// Initialize CV vector search (optional, needs qdrant + an embedding
	// capable provider)
	var vectorService services.VectorService
	if cfg.Qdrant.URL != "" {
		embedder, ok := modelClient.(llm.Embedder)
		if !ok {
			log.Println("⚠️  Configured provider has no embedding support, CV search disabled")
		} else {
			vectorService, err = services.NewVectorService(
				cfg.Qdrant.URL,
				cfg.Qdrant.APIKey,
				cfg.Qdrant.Collection,
				cfg.Qdrant.VectorSize,
				embedder,
			)
			if err != nil {
				log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
			}

			if err := vectorService.InitCollection(); err != nil {
				log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
			}
			log.Println("✅ Qdrant initialized successfully")
		}
	}

	// Initialize the scoring pipeline
	extractorService := services.NewExtractorService(modelClient, cvRepo)
	adjusterService := services.NewAdjusterService(modelClient, services.Weights{
		Experience: cfg.Weights.Experience,
		Skills:     cfg.Weights.Skills,
		Education:  cfg.Weights.Education,
		Languages:  cfg.Weights.Languages,
		JobFit:     cfg.Weights.JobFit,
	})
	matcherService := services.NewMatcherService(
		offerRepo,
		cvRepo,
		matchingRepo,
		documentParser,
		extractorService,
		adjusterService,
		vectorService,
	)
	log.Println("✅ Matcher service initialized")

	// Initialize worker for batch rescoring
	worker := services.NewWorker(cvRepo, matcherService, cfg.Worker.Concurrency)
	worker.Start(context.Background())
	log.Println("✅ Worker started successfully")

	// Initialize handlers
	offerHandler := handlers.NewJobOfferHandler(offerRepo, matchingRepo, worker)
	cvHandler := handlers.NewCVHandler(
		cvRepo,
		offerRepo,
		matchingRepo,
		storageService,
		matcherService,
		vectorService,
		cfg.Storage.MaxFileSize,
	)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "CV Match API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
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
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
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

	// Job offers
	api.Post("/job-offers", offerHandler.HandleCreate)
	api.Get("/job-offers", offerHandler.HandleList)
	api.Get("/job-offers/:id", offerHandler.HandleGet)
	api.Patch("/job-offers/:id", offerHandler.HandleUpdate)
	api.Delete("/job-offers/:id", offerHandler.HandleDelete)
	api.Get("/job-offers/:id/matched-cvs", offerHandler.HandleMatchedCVs)
	api.Post("/job-offers/:id/rescore", offerHandler.HandleRescore)

	// CVs
	api.Post("/cvs", cvHandler.HandleUpload)
	api.Get("/cvs", cvHandler.HandleList)
	api.Post("/cvs/search", cvHandler.HandleSearch)
	api.Get("/cvs/:id", cvHandler.HandleGet)
	api.Delete("/cvs/:id", cvHandler.HandleDelete)
	api.Post("/cvs/:id/score", cvHandler.HandleScore)
	api.Get("/cvs/:id/matched-job-offers", cvHandler.HandleMatchedJobOffers)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
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

package main

import (
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

	"anatomyguru/script-evaluator/internal/config"
	"anatomyguru/script-evaluator/internal/handlers"
	"anatomyguru/script-evaluator/internal/models"
	"anatomyguru/script-evaluator/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize services
	pdfParser := services.NewPDFParserService()
	ingestService := services.NewIngestService(pdfParser, cfg.Storage.MaxFileSize)
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI. A missing credential is a configuration error
	// surfaced per request, never a reason to crash the process.
	geminiService, err := services.NewGeminiService(cfg.Gemini)
	if err != nil {
		log.Printf("⚠️  Gemini AI unavailable: %v\n", err)
		geminiService = nil
	} else {
		log.Println("✅ Gemini AI initialized successfully")
	}

	// Initialize handlers
	ingestHandler := handlers.NewIngestHandler(ingestService, cfg.Storage.MaxFileSize)
	evaluateHandler := handlers.NewEvaluateHandler(geminiService)
	reportHandler := handlers.NewReportHandler()
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "AnatomyGuru Script Evaluator API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) * 2,
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
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
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
	api.Post("/ingest", ingestHandler.HandleIngest)
	api.All("/evaluate", evaluateHandler.HandleEvaluate)
	api.Post("/report/html", reportHandler.HandleRenderReport)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "AnatomyGuru Script Evaluator API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/ingest",
				"POST /api/v1/evaluate",
				"POST /api/v1/report/html",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
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

	return c.Status(code).JSON(models.ErrorResponse{
		Error: err.Error(),
		Kind:  models.KindUnknown,
	})
}

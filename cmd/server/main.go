package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/aparnaratheesh55/sunbird-cb-ext/internal/config"
	"github.com/aparnaratheesh55/sunbird-cb-ext/internal/database"
	"github.com/aparnaratheesh55/sunbird-cb-ext/internal/handlers"
	"github.com/aparnaratheesh55/sunbird-cb-ext/internal/logger"
	"github.com/aparnaratheesh55/sunbird-cb-ext/internal/pipeline"
	"github.com/aparnaratheesh55/sunbird-cb-ext/internal/rabbitmq"
	"github.com/aparnaratheesh55/sunbird-cb-ext/internal/redact"
	"github.com/aparnaratheesh55/sunbird-cb-ext/internal/routes"
	"github.com/aparnaratheesh55/sunbird-cb-ext/internal/sink"
	"github.com/aparnaratheesh55/sunbird-cb-ext/internal/store"
	"github.com/aparnaratheesh55/sunbird-cb-ext/internal/telemetry"
)

func main() {
	// Initialize logger
	if err := logger.Init(os.Getenv("LOG_LEVEL")); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Connect to PostgreSQL
	db, err := database.Connect(&cfg.Database, logger.Logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, logger.Logger); err != nil {
			logger.Error("Error closing database", zap.Error(err))
		}
	}()

	// Apply schema migrations
	if err := database.RunMigrations(&cfg.Database, logger.Logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Connect to RabbitMQ
	rmq := rabbitmq.NewConnection(&cfg.RabbitMQ, logger.Logger)
	if err := rmq.Connect(); err != nil {
		logger.Fatal("Failed to connect to RabbitMQ", zap.Error(err))
	}
	defer rmq.Close()

	// Select the telemetry publish path
	var eventSink sink.EventSink
	switch cfg.Telemetry.Sink {
	case "http":
		eventSink = sink.NewHTTPSink(
			cfg.Telemetry.BaseURL,
			cfg.Telemetry.Endpoint,
			cfg.Telemetry.AuthToken,
			logger.Logger,
		)
	default:
		eventSink = sink.NewQueueSink(rmq, cfg.Telemetry.Exchange, logger.Logger)
	}

	// Initialize and start the enrichment pipeline
	pipe := pipeline.NewPipeline(
		&cfg.Pipeline,
		cfg.Telemetry.Topic,
		rmq,
		store.NewRecords(db),
		store.NewMappings(db),
		eventSink,
		redact.New(cfg.Pipeline.RedactedFields),
		telemetry.NewBuilder(cfg.Telemetry.EnvID),
		pipeline.NewLogReporter(logger.Logger),
		logger.Logger,
	)
	if err := pipe.Start(); err != nil {
		logger.Fatal("Failed to start pipeline", zap.Error(err))
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Work Order Telemetry Service",
		ServerHeader: "Fiber",
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Setup routes
	routes.SetupRoutes(app,
		handlers.NewHealthHandler(db, rmq),
		handlers.NewMappingsHandler(db, logger.Logger),
	)

	// Start server in a goroutine
	go func() {
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		logger.Info("Server starting",
			zap.String("address", addr),
		)
		if err := app.Listen(addr); err != nil {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		logger.Error("Error during server shutdown", zap.Error(err))
	}

	// Stop the pipeline; in-flight messages finish first
	if err := pipe.Stop(); err != nil {
		logger.Error("Error stopping pipeline", zap.Error(err))
	}

	logger.Info("Server stopped")
}

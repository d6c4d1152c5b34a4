package main

import (
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/streadway/amqp"
	"go.uber.org/zap"

	"crafterscloset/internal/app"
	"crafterscloset/internal/config"
	"crafterscloset/internal/database"
	"crafterscloset/internal/logger"
	"crafterscloset/internal/models"
	"crafterscloset/internal/services"
	"crafterscloset/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg := config.Load()
	if err := logger.Init(cfg.AppEnv); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// --- Initialize Repositories ---
	repos, err := openRepositories(cfg)
	if err != nil {
		logger.L().Fatal("failed to initialize storage", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}

	// --- Initialize RabbitMQ Client (optional) ---
	var publisher services.EventPublisher
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			logger.L().Fatal("failed to initialize RabbitMQ client", zap.Error(err))
		}
		defer mqClient.Close() // Ensure the connection is closed on exit
		publisher = mqClient
	}

	// --- Initialize Services ---
	svc := app.NewServices(repos, cfg, publisher)
	if cfg.DBDriver == "memory" {
		seedCatalog(svc.Supplies)
	}

	// --- Initialize Fiber App ---
	fiberApp := app.New(svc, true)

	// --- Start RabbitMQ Consumer in a Goroutine ---
	if mqClient != nil {
		go func() {
			logger.Info("starting RabbitMQ consumer for inventory events")
			if consumerErr := mqClient.ConsumeInventoryEvents(logInventoryEvent); consumerErr != nil {
				logger.Error("failed to start RabbitMQ consumer", zap.Error(consumerErr))
			}
		}()
	}

	// --- Start HTTP Server ---
	logger.Info("starting server", zap.String("port", cfg.AppPort), zap.String("driver", cfg.DBDriver))

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := fiberApp.Listen(cfg.AppPort); err != nil {
			logger.L().Fatal("server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	logger.Info("shutting down server")

	if err := fiberApp.Shutdown(); err != nil {
		logger.Error("error during Fiber shutdown", zap.Error(err))
	}
	logger.Info("server gracefully stopped")
}

func openRepositories(cfg *config.Config) (app.Repositories, error) {
	if cfg.DBDriver == "memory" {
		return app.NewMemoryRepositories(), nil
	}
	db, err := database.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		return app.Repositories{}, err
	}
	if err := database.Migrate(db); err != nil {
		return app.Repositories{}, err
	}
	return app.NewGORMRepositories(db), nil
}

// logInventoryEvent records inventory changes published by this or another instance.
func logInventoryEvent(msg amqp.Delivery) error {
	var event models.InventoryEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		return err
	}
	logger.Info("inventory event",
		zap.String("type", event.Type),
		zap.String("event_id", event.ID),
		zap.Uint("user_id", event.UserID),
		zap.Uint("item_id", event.ItemID),
		zap.Int("quantity", event.Quantity))
	return nil
}

// seedCatalog populates an empty in-memory catalog with a few common supplies.
func seedCatalog(supplies *services.SupplyService) {
	seed := []models.SupplyInput{
		{SupplyType: "acrylic paint", Brand: "Apple Barrel", Color: "Bright Magenta", Units: "bottle"},
		{SupplyType: "yarn", Brand: "Lion Brand", Color: "Navy", Units: "skein"},
		{SupplyType: "washi tape", Color: "Gold", Units: "roll"},
		{SupplyType: "fabric", Color: "Red", Units: "yards"},
	}
	for _, in := range seed {
		sd, err := supplies.GetOrCreateSupply(in)
		if err != nil {
			logger.Warn("error seeding supply", zap.String("supply_type", in.SupplyType), zap.Error(err))
			continue
		}
		logger.Debug("seeded supply", zap.Uint("id", sd.ID), zap.String("supply_type", sd.SupplyType))
	}
}

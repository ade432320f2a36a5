// cmd/api/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/your-org/coffee-miniapp/internal/config"
	"github.com/your-org/coffee-miniapp/internal/domain/catalog"
	"github.com/your-org/coffee-miniapp/internal/domain/order"
	"github.com/your-org/coffee-miniapp/internal/domain/payment"
	"github.com/your-org/coffee-miniapp/internal/infrastructure/database/postgres"
	"github.com/your-org/coffee-miniapp/internal/infrastructure/database/redis"
	"github.com/your-org/coffee-miniapp/internal/infrastructure/telegram"
	"github.com/your-org/coffee-miniapp/internal/infrastructure/yookassa"
	"github.com/your-org/coffee-miniapp/internal/infrastructure/ytimes"
	httpserver "github.com/your-org/coffee-miniapp/internal/interfaces/http"
	"github.com/your-org/coffee-miniapp/internal/interfaces/http/handlers"
	"github.com/your-org/coffee-miniapp/internal/interfaces/http/routes"
	"github.com/your-org/coffee-miniapp/internal/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog := logger.New(cfg)
	appLog.Infof("🚀 Starting %s v%s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	// Connect to database
	db, err := postgres.NewConnection(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Connect to Redis
	redisClient, err := redis.NewConnection(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Run database migrations
	migration := postgres.NewMigration(db.GetDB())
	if err := migration.RunAutoMigrations(); err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}
	if err := migration.CreateIndexes(); err != nil {
		appLog.WithError(err).Warn("Index creation failed")
	}

	// POS client and background catalog refresh
	posClient := ytimes.NewClient(cfg)
	catalogService := catalog.NewService(posClient, cfg, appLog)

	refreshCtx, cancelRefresh := context.WithCancel(context.Background())
	defer cancelRefresh()
	go catalogService.Run(refreshCtx)

	// Services and handlers
	orderService := order.NewService(db.GetDB())
	paymentService := payment.NewService(redisClient)
	yookassaClient := yookassa.NewClient(cfg)
	telegramClient := telegram.NewClient(cfg, appLog)

	deps := &routes.Dependencies{
		Menu:    handlers.NewMenuHandler(catalogService),
		Order:   handlers.NewOrderHandler(posClient, orderService, appLog),
		Payment: handlers.NewPaymentHandler(paymentService, yookassaClient, posClient, orderService, cfg, appLog),
		Webhook: handlers.NewWebhookHandler(orderService, telegramClient, appLog),
		Config:  cfg,
		Log:     appLog,
	}

	server := httpserver.NewServer(cfg, deps, db, redisClient, appLog)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLog.Info("👋 Shutting down gracefully...")
	cancelRefresh()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		appLog.WithError(err).Error("Failed to shutdown HTTP server gracefully")
	}

	appLog.Info("✅ Server shutdown completed")
}

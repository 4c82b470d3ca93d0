package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fbanabil/Lost-and-Found-Web-Portal-Synesis-IT/internal/chat"
	"github.com/fbanabil/Lost-and-Found-Web-Portal-Synesis-IT/internal/matching"
	"github.com/fbanabil/Lost-and-Found-Web-Portal-Synesis-IT/internal/repositories"
	"github.com/fbanabil/Lost-and-Found-Web-Portal-Synesis-IT/internal/router"
	"github.com/fbanabil/Lost-and-Found-Web-Portal-Synesis-IT/pkg/config"
	"github.com/fbanabil/Lost-and-Found-Web-Portal-Synesis-IT/pkg/imagestore"
	"github.com/fbanabil/Lost-and-Found-Web-Portal-Synesis-IT/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Image storage for item photos and chat attachments
	images, err := imagestore.New(cfg.UploadDir, "/images")
	if err != nil {
		log.Fatalf("Failed to initialize image storage: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Realtime chat hub
	hub := chat.NewHub()

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, db.Mongo, images, hub)

	// Validator
	e.Validator = validators.NewValidator()

	// Start the auto-matching engine; cancelled at shutdown.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	engine := matching.NewEngine(
		repositories.NewPostgresItemRepository(db.Postgres),
		repositories.NewPostgresNotificationRepository(db.Postgres),
		cfg.MatchInterval,
	)
	go engine.Run(ctx)

	// Start server
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	// Wait for an interrupt, then stop the engine and drain the server.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown failed: %v", err)
	}
}

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/bhaktikarche/story-tales1/internal/config"
	"github.com/bhaktikarche/story-tales1/internal/db"
	routes "github.com/bhaktikarche/story-tales1/internal/http"
	"github.com/bhaktikarche/story-tales1/internal/models"
	"github.com/bhaktikarche/story-tales1/internal/storage"
)

func main() {
	// Load .env first. Missing file is fine: production sets env vars directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// 1. Initialize Database
	database, err := db.Init(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// 2. Run Migrations
	log.Println("Running database migrations...")
	if err := database.AutoMigrate(&models.Post{}, &models.PostImage{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations complete.")

	// 3. Initialize Image Store
	store, err := storage.New(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Failed to initialize image store: %v", err)
	}

	// 4. Initialize Gin Router
	router := gin.Default()

	// 5. Setup Routes
	routes.SetupRoutes(router, database, store, cfg)

	// 6. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}

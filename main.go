package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devsync-backend/internal/api"
	"devsync-backend/internal/auth"
	"devsync-backend/internal/config"
	"devsync-backend/internal/database"
	"devsync-backend/internal/logger"
	"devsync-backend/internal/metrics"
	"devsync-backend/internal/monitoring"
	"devsync-backend/internal/services"
	"devsync-backend/internal/websocket"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	auth.Init(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to apply database migrations: %v", err)
	}

	// Set up WebSocket Hub for the live feed stream
	hub := websocket.NewHub()
	go hub.Run()

	// Set up metrics
	m := metrics.Init()

	// Set up services
	activityService := services.NewActivityService(db)
	userService := services.NewUserService(db, activityService)
	graphService := services.NewGraphService(db, activityService)
	postService := services.NewPostService(db, hub, activityService)

	// Set up and run the background activity pruner
	pruner, err := monitoring.NewPruner(activityService, cfg.ActivityPruneCron, cfg.ActivityRetentionDays)
	if err != nil {
		log.Fatalf("Failed to initialize activity pruner: %v", err)
	}
	go pruner.Run()

	// Set up router
	router := api.NewRouter(hub, userService, graphService, postService, activityService, m, cfg.CORSOrigins)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on port %d\n", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	pruner.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}

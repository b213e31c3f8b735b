package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jatana/gymdesk/internal/api"
	"github.com/jatana/gymdesk/internal/config"
	"github.com/jatana/gymdesk/internal/repository/postgres"
	"github.com/jatana/gymdesk/internal/service"
	"github.com/jatana/gymdesk/internal/storage"
	"github.com/jatana/gymdesk/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("info").Fatalf("Failed to load config: %v", err)
	}

	log := logger.New(cfg.LogLevel)
	log.Info("Starting gymdesk server...")

	db, err := config.NewDatabase(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Info("Database migrations applied")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	blobs, err := storage.NewGCSStore(ctx, cfg.GCSBucketName, cfg.CDNDomain, cfg.GCSCredentialsFile)
	if err != nil {
		log.Fatalf("Failed to initialize document storage: %v", err)
	}
	defer blobs.Close()

	memberRepo := postgres.NewMemberRepository(db.DB)
	planRepo := postgres.NewPlanRepository(db.DB)
	membershipRepo := postgres.NewMembershipRepository(db.DB)
	paymentRepo := postgres.NewPaymentRepository(db.DB)
	documentRepo := postgres.NewDocumentRepository(db.DB)

	planService := service.NewPlanService(planRepo, log)
	memberService := service.NewMemberService(memberRepo, membershipRepo, documentRepo, log)
	membershipService := service.NewMembershipService(memberRepo, membershipRepo, paymentRepo, planRepo, log)
	paymentService := service.NewPaymentService(membershipRepo, paymentRepo, log)
	documentService := service.NewDocumentService(memberRepo, documentRepo, blobs, log)

	server := api.NewServer(planService, memberService, membershipService, paymentService, documentService, log)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      server.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infof("HTTP server listening on :%s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Graceful shutdown failed: %v", err)
	}
	log.Info("Server stopped")
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"finsight/internal/config"
	"finsight/internal/extractor"
	"finsight/internal/handler"
	"finsight/internal/period"
	"finsight/internal/repository/postgres"
	"finsight/internal/router"
	"finsight/internal/service"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	companyRepo := postgres.NewCompanyRepo(db)
	recordRepo := postgres.NewRecordRepo(db)
	importRepo := postgres.NewImportRepo(db)

	// Initialize services
	resolver := period.NewResolver(nil)
	companySvc := service.NewCompanyService(companyRepo, recordRepo, importRepo)
	ingestSvc := service.NewIngestService(companyRepo, recordRepo, importRepo, extractor.New(resolver), &cfg.Upload)
	periodSvc := service.NewPeriodService(resolver)

	// Initialize handlers
	healthH := handler.NewHealthHandler(db)
	companyH := handler.NewCompanyHandler(companySvc)
	ingestH := handler.NewIngestHandler(ingestSvc)
	periodH := handler.NewPeriodHandler(periodSvc)

	// Setup router
	r := router.Setup(cfg.CORS.AllowedOrigins, healthH, companyH, ingestH, periodH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-quit:
		log.Printf("received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Println("server stopped")
	return nil
}

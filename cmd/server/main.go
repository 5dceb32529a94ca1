// Package main provides the entry point for the database searcher HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Pituitary-Normal-Space/database-searcher/internal/config"
	"github.com/Pituitary-Normal-Space/database-searcher/internal/dedup"
	"github.com/Pituitary-Normal-Space/database-searcher/internal/observability"
	"github.com/Pituitary-Normal-Space/database-searcher/internal/pipeline"
	"github.com/Pituitary-Normal-Space/database-searcher/internal/server"
	"github.com/Pituitary-Normal-Space/database-searcher/internal/sources"
	"github.com/Pituitary-Normal-Space/database-searcher/internal/sources/embase"
	"github.com/Pituitary-Normal-Space/database-searcher/internal/sources/pubmed"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Set up structured logging.
	logger := observability.NewLogger(observability.LoggingConfig{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		AddSource:  cfg.Logging.AddSource,
		TimeFormat: cfg.Logging.TimeFormat,
	})
	logger = logger.With().Str("component", "server").Logger()
	logger.Info().Msg("database-searcher starting")

	// Set up context with graceful shutdown via OS signals.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics := observability.NewMetrics("database_searcher")

	// Register source runners.
	registry := sources.NewRegistry()

	pubmedClient := pubmed.New(pubmed.Config{
		Enabled:    cfg.Sources.PubMed.Enabled,
		BaseURL:    cfg.Sources.PubMed.BaseURL,
		APIKey:     cfg.Sources.PubMed.APIKey,
		Timeout:    cfg.Sources.PubMed.Timeout,
		RateLimit:  cfg.Sources.PubMed.RateLimit,
		MaxResults: cfg.Sources.PubMed.MaxResults,
	})
	registry.Register(pubmedClient)

	embaseClient := embase.New(embase.Config{
		Enabled:    cfg.Sources.Embase.Enabled,
		BaseURL:    cfg.Sources.Embase.BaseURL,
		APIKey:     cfg.Sources.Embase.APIKey,
		InstToken:  cfg.Sources.Embase.InstToken,
		Timeout:    cfg.Sources.Embase.Timeout,
		RateLimit:  cfg.Sources.Embase.RateLimit,
		MaxResults: cfg.Sources.Embase.MaxResults,
	})
	registry.Register(embaseClient)

	logger.Info().
		Bool("pubmed_enabled", pubmedClient.IsEnabled()).
		Bool("embase_enabled", embaseClient.IsEnabled()).
		Msg("source runners registered")

	// Build the search pipeline.
	searchPipeline := pipeline.New(registry, pipeline.Config{
		MaxDepth: cfg.Search.MaxDepth,
		Dedup:    dedup.Config{MatchAuthor: cfg.Search.DedupeMatchAuthor},
	}, logger, metrics)

	// Create the HTTP REST API server.
	httpSrv := server.NewServer(server.Config{
		Address:         cfg.Server.HTTPAddress(),
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		IdleTimeout:     cfg.Server.IdleTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		MetricsEnabled:  cfg.Metrics.Enabled,
		MetricsPath:     cfg.Metrics.Path,
	}, searchPipeline, logger)

	errCh := make(chan error, 1)

	go func() {
		if err := httpSrv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	logger.Info().
		Str("http_address", cfg.Server.HTTPAddress()).
		Msg("database-searcher is ready")

	// Wait for shutdown signal or server error.
	select {
	case <-ctx.Done():
		logger.Info().Msg("received shutdown signal")
	case err := <-errCh:
		logger.Error().Err(err).Msg("server error")
		return err
	}

	// Graceful shutdown.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown error")
	}

	logger.Info().Msg("database-searcher shutdown complete")
	return nil
}

// Package main is the entry point for the store-context HTTP server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/fleveque/store-context/internal/config"
	"github.com/fleveque/store-context/internal/server"
	"github.com/fleveque/store-context/internal/service"
)

func main() {
	// run() is separate so deferred cleanup executes before os.Exit.
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("STORECTX_CONFIG_PATH"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	var logger *zap.Logger
	if cfg.Log.Level == "debug" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	// Sync commonly fails on stdout/stderr; nothing to do about it.
	defer func() { _ = logger.Sync() }()

	lookups := service.NewFromConfig(cfg, logger)

	searchProvider, searchModel := lookups.SearchBackend()

	srv := server.New(cfg, server.Deps{
		Lookups:        lookups,
		PrimaryModel:   lookups.PrimaryModel(),
		SearchProvider: searchProvider,
		SearchModel:    searchModel,
	}, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		if err != nil {
			return err
		}
	}

	// In-flight lookups may be waiting on two provider calls.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.LLM.Timeout()+10*time.Second)
	defer cancel()

	return srv.Shutdown(ctx)
}

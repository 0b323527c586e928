// scriptdeck-console — веб-консоль: страницы списков ресурсов и
// прокси /api/ на backend.
//
// Конфигурация: YAML из $SCRIPTDECK_CONFIG и переменные SCRIPTDECK_*.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shaiso/scriptdeck/internal/client"
	"github.com/shaiso/scriptdeck/internal/config"
	"github.com/shaiso/scriptdeck/internal/console"
	"github.com/shaiso/scriptdeck/internal/telemetry"
)

func main() {
	cfg, err := config.Load(context.Background(), "")
	if err != nil {
		// Логгер ещё не настроен: уровень и формат берутся из конфигурации.
		telemetry.SetupLogger(os.Stderr, "info", "json").Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := telemetry.SetupLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	logger.Info("starting scriptdeck-console", "api_url", cfg.APIURL, "backend_url", cfg.BackendURL)

	api := client.New(client.Config{
		BaseURL: cfg.APIURL,
		Headers: cfg.Headers,
		Timeout: cfg.Timeout,
	}, client.WithLogger(logger), client.WithMetrics(client.NewMetrics(nil)))

	srv, err := console.NewServer(console.ServerConfig{
		API:        api,
		BackendURL: cfg.BackendURL,
		Logger:     logger,
	})
	if err != nil {
		logger.Error("failed to build server", "error", err)
		os.Exit(1)
	}

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	logger.Info("stopped")
}

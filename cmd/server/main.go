package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	appbilling "github.com/goldenhour/backend/internal/application/billing"
	"github.com/goldenhour/backend/internal/infrastructure/accounting"
	"github.com/goldenhour/backend/internal/infrastructure/config"
	"github.com/goldenhour/backend/internal/infrastructure/logger"
	"github.com/goldenhour/backend/internal/interfaces/http/handler"
	"github.com/goldenhour/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	adapter, err := accounting.NewWaveAdapter(buildWaveConfig(cfg), log.Named("wave"))
	if err != nil {
		log.Fatal("Failed to create accounting adapter", zap.Error(err))
	}

	service := appbilling.NewInvoiceService(adapter, nil, log.Named("billing"))

	engine := router.Setup(log, cfg.App.Env,
		handler.NewInvoiceHandler(service),
		handler.NewSystemHandler(adapter),
	)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Starting HTTP server",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}

// buildWaveConfig assembles the adapter configuration from the application
// config, joining the per-business income and expense account tables.
func buildWaveConfig(cfg *config.Config) *accounting.WaveConfig {
	names := make(map[string]accounting.AccountNames, len(cfg.Wave.Businesses))
	for _, business := range cfg.Wave.Businesses {
		income := lookupFold(cfg.Wave.IncomeAccounts, business)
		expense := lookupFold(cfg.Wave.ExpenseAccounts, business)
		if income == "" && expense == "" {
			continue // fall back to the adapter's default pair
		}
		if income == "" {
			income = accounting.DefaultAccountNames.Income
		}
		if expense == "" {
			expense = accounting.DefaultAccountNames.Expense
		}
		names[business] = accounting.AccountNames{Income: income, Expense: expense}
	}

	overrides := make(map[string]string, len(cfg.Wave.TitleOverrides))
	for _, business := range cfg.Wave.Businesses {
		if title := lookupFold(cfg.Wave.TitleOverrides, business); title != "" {
			overrides[business] = title
		}
	}

	return &accounting.WaveConfig{
		APIBaseURL:          cfg.Wave.APIBaseURL,
		Token:               cfg.Wave.Token,
		TimeoutSeconds:      cfg.Wave.TimeoutSeconds,
		Businesses:          cfg.Wave.Businesses,
		AccountNames:        names,
		TitleOverrides:      overrides,
		InvoicePageSize:     cfg.Wave.InvoicePageSize,
		CustomerPageSize:    cfg.Wave.CustomerPageSize,
		RateLimitRetryDelay: cfg.Wave.RateLimitRetryDelay,
	}
}

// lookupFold finds a map entry by key, case-insensitively. Viper lowercases
// TOML table keys, so business display names cannot be matched exactly.
func lookupFold(m map[string]string, key string) string {
	if v, ok := m[key]; ok {
		return v
	}
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}

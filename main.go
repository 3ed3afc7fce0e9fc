package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"qr-dine/ai"
	"qr-dine/config"
	"qr-dine/db"
	"qr-dine/notify"
	"qr-dine/server"
	"qr-dine/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	// Check for migrate subcommand
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		runMigrate(cfg)
		return
	}

	if err := db.Init(cfg.DB); err != nil {
		fmt.Fprintln(os.Stderr, "db:", err)
		os.Exit(1)
	}
	defer db.Close()

	// Optional auto-migration (useful in production and for fresh DBs).
	// Set AUTO_MIGRATE=1 (or "true") to enable.
	if v := strings.TrimSpace(os.Getenv("AUTO_MIGRATE")); v == "1" || strings.EqualFold(v, "true") {
		if err := applyMigrations(context.Background(), false); err != nil {
			fmt.Fprintln(os.Stderr, "migrate:", err)
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// AI delegates are optional: without an API key the system runs with no
	// summaries and no notification advice, never degraded ordering.
	var summarizer services.SummaryGenerator
	var advisor services.NotificationAdvisor
	if cfg.AI.APIKey != "" {
		client, err := ai.NewClient(ctx, cfg.AI.APIKey, cfg.AI.Model)
		if err != nil {
			log.Warn("AI client unavailable, delegates disabled", "error", err)
		} else {
			summarizer = client
			advisor = client
		}
	}

	watcher := services.NewWatcher(services.DBOrderSource{}, advisor, cfg.Watcher.PollInterval, log)
	watcher.AITimeout = cfg.AI.Timeout

	if cfg.Telegram.KitchenToken != "" {
		alerter, err := notify.NewTelegramAlerter(cfg.Telegram.KitchenToken, cfg.Telegram.KitchenChatID)
		if err != nil {
			log.Warn("telegram kitchen alerts disabled", "error", err)
		} else {
			watcher.Alerters = append(watcher.Alerters, alerter)
			log.Info("telegram kitchen alerts enabled", "chat_id", cfg.Telegram.KitchenChatID)
		}
	}

	go watcher.Run(ctx)

	placer := services.NewPlacer(
		services.OrderWriterFunc(services.InsertOrder),
		summarizer,
		cfg.AI.Timeout,
		log,
	)

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      server.New(services.NewCartStore(), placer, watcher, log).Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // SSE connections stay open
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening", "addr", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
}

func runMigrate(cfg *config.Config) {
	if err := db.Init(cfg.DB); err != nil {
		fmt.Fprintln(os.Stderr, "db:", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := applyMigrations(context.Background(), true); err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}

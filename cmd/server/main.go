package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/camuig/paper-broker/internal/config"
	"github.com/camuig/paper-broker/internal/instruments"
	"github.com/camuig/paper-broker/internal/logger"
	"github.com/camuig/paper-broker/internal/orders"
	"github.com/camuig/paper-broker/internal/portfolio"
	"github.com/camuig/paper-broker/internal/storage"
	"github.com/camuig/paper-broker/internal/telegram"
	"github.com/camuig/paper-broker/internal/web"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Init logger
	log := logger.New(cfg.Logging.Level)
	log.Info("starting paper-broker", "driver", cfg.Database.Driver)

	// Init database
	db, err := storage.NewDatabase(cfg.Database)
	if err != nil {
		log.Error("database init failed", "error", err)
		os.Exit(1)
	}
	repo := storage.NewRepository(db)

	// Init services
	notifier := telegram.NewNotifier(cfg, log)
	orderSvc := orders.NewService(repo, notifier, log)
	portfolioSvc := portfolio.NewService(repo, log)
	instrumentSvc := instruments.NewService(repo)
	server := web.NewServer(orderSvc, portfolioSvc, instrumentSvc, cfg, log)

	// Start web server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Error("web server error", "error", err)
		}
	}()

	notifier.NotifyStatus("🤖 paper-broker iniciado")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Info("shutdown signal received", "signal", sig.String())

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("web server shutdown error", "error", err)
	}

	notifier.NotifyStatus("🛑 paper-broker detenido")
	log.Info("paper-broker stopped")
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/GiftMarket_Go/internal/bootstrap"
	"github.com/osse101/GiftMarket_Go/internal/config"
	"github.com/osse101/GiftMarket_Go/internal/economy"
	"github.com/osse101/GiftMarket_Go/internal/handler"
	"github.com/osse101/GiftMarket_Go/internal/messages"
	"github.com/osse101/GiftMarket_Go/internal/middleware"
	"github.com/osse101/GiftMarket_Go/internal/server"
	"github.com/osse101/GiftMarket_Go/internal/settings"
	"github.com/osse101/GiftMarket_Go/internal/sse"
	"github.com/osse101/GiftMarket_Go/internal/worker"
)

// @title Gift Market API
// @version 1.0
// @description Wallet, inventory and marketplace API for the Telegram Mini-App.
// @BasePath /
// @securityDefinitions.apikey TelegramInitData
// @in header
// @name X-Telegram-Init-Data
// @description Raw Telegram Mini-App initData query string
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration failed: %v\n", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logger setup failed: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	if err := run(cfg); err != nil {
		slog.Error("Application failed", "error", err)
		logFile.Close()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	items, err := bootstrap.LoadCatalog(cfg)
	if err != nil {
		return err
	}

	ledger, err := bootstrap.InitializeLedger(ctx, cfg)
	if err != nil {
		return err
	}

	eventBus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		ledger.Close()
		return err
	}

	sseHub := sse.NewHub()
	sseHub.Start()
	sseSub := sse.NewSubscriber(sseHub, eventBus)
	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus:      eventBus,
		SSESubscriber: sseSub,
	}); err != nil {
		ledger.Close()
		return err
	}

	compensations := worker.NewPool(cfg.WorkerCount, bootstrap.WorkerQueueSize)
	compensations.Start()

	sessions := bootstrap.NewSessionManager(cfg, ledger, items, sseSub)
	economySvc := economy.NewService(ledger.Store, compensations, publisher)
	handlers := handler.NewHandlers(
		sessions,
		economySvc,
		settings.NewService(ledger.Settings, cfg.SettingsCacheTTL),
		messages.New(),
	)

	srv := server.NewServer(server.Config{
		Port:           cfg.Port,
		CORSOrigins:    cfg.CORSOrigins,
		TrustedProxies: cfg.TrustedProxies,
		RateLimit:      cfg.RateLimit,
	}, server.Deps{
		Handlers: handlers,
		Verifier: middleware.NewVerifier(cfg.TelegramBotToken, cfg.AuthMaxAge),
		SSEHub:   sseHub,
		Store:    ledger.Pinger,
	})

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err = <-serveErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		SSEHub:             sseHub,
		EconomyService:     economySvc,
		Sessions:           sessions,
		CompensationPool:   compensations,
		ResilientPublisher: publisher,
		Ledger:             ledger,
	})
	return err
}

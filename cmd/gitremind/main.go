package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gitremind/internal/app"
	"gitremind/internal/domain/alert"
	"gitremind/internal/domain/reminder"
	"gitremind/internal/domain/settings"
	"gitremind/internal/infra/config"
	"gitremind/internal/infra/httpapi"
	"gitremind/internal/infra/logger"
	"gitremind/internal/infra/notify"
	"gitremind/internal/infra/scheduler"
	"gitremind/internal/infra/store"

	"gopkg.in/telebot.v3"
)

// engineStore is what both store backends provide to the services.
type engineStore interface {
	reminder.Store
	settings.Store
	app.Resetter
}

func main() {
	fmt.Println("GitRemind engine starting...")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Could not load application configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg)
	log := logger.Get()
	log.WithFields(map[string]interface{}{
		"log_level":   cfg.LogLevel,
		"environment": cfg.Environment,
		"data_dir":    cfg.DataDir,
	}).Info("Configuration loaded")

	// Store backend: Postgres when configured, JSON files otherwise.
	var st engineStore
	if cfg.DatabaseURL != "" {
		pg, err := store.NewPostgresStore(cfg.DatabaseURL, log)
		if err != nil {
			log.WithError(err).Fatal("Could not connect to database")
		}
		defer pg.Close()
		st = pg
		log.Info("Postgres store initialized")
	} else {
		fs, err := store.NewFileStore(cfg.DataDir, log)
		if err != nil {
			log.WithError(err).Fatal("Could not initialize file store")
		}
		st = fs
		log.Info("File store initialized")
	}

	// Alert channel: Telegram when configured, log output otherwise. The log
	// channel always doubles as the degraded fallback.
	fallback := notify.NewLogNotifier(log)
	var notifier alert.Notifier = fallback
	if cfg.TelegramToken != "" {
		bot, err := telebot.NewBot(telebot.Settings{Token: cfg.TelegramToken})
		if err != nil {
			log.WithError(err).Fatal("Could not create Telegram bot")
		}
		notifier = notify.NewTelegramNotifier(bot, cfg.TelegramChatID)
		log.Info("Telegram alert channel initialized")
	}

	escalator := app.NewEscalationService(notifier, fallback, st, log)
	dueService := app.NewDueService(st, st, escalator, log)

	initial, err := st.LoadSettings()
	if err != nil {
		initial = settings.Default()
	}
	interval := time.Duration(initial.CheckInterval) * time.Second
	if interval <= 0 {
		interval = time.Duration(settings.Default().CheckInterval) * time.Second
	}

	poll := scheduler.NewPollScheduler(dueService.RunCheck, interval, log)
	if err := poll.Start(); err != nil {
		log.WithError(err).Fatal("Could not start poll scheduler")
	}

	engine := app.NewEngineService(st, st, st, escalator, poll, log)

	api := httpapi.NewServer(engine, cfg.ListenAddr, log)
	go func() {
		if err := api.Start(); err != nil {
			log.WithError(err).Fatal("Command API failed")
		}
	}()

	// First check shortly after startup, before the first full interval.
	firstCheck := time.AfterFunc(time.Second, dueService.RunCheck)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down...")
	firstCheck.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := api.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("Command API shutdown incomplete")
	}

	poll.Stop()
	escalator.Shutdown()
	log.Info("Shut down gracefully")
}

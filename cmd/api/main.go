package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"task-reminder/config"
	_ "task-reminder/docs" // Swagger docs
	"task-reminder/internal/httpserver"
	parserUC "task-reminder/internal/parser/usecase"
	"task-reminder/internal/task/delivery/job"
	tgDelivery "task-reminder/internal/task/delivery/telegram"
	"task-reminder/internal/task/repository/sqlite"
	"task-reminder/internal/task/usecase"
	"task-reminder/pkg/datemath"
	"task-reminder/pkg/gcalendar"
	"task-reminder/pkg/llmprovider"
	"task-reminder/pkg/log"
	"task-reminder/pkg/notion"
	"task-reminder/pkg/telegram"
)

// @title       Task Reminder API
// @description Telegram reminder assistant: natural-language tasks, recurring reminders, Notion and Google Calendar mirrors.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}
	if err := cfg.RequireTelegram(); err != nil {
		fmt.Println("Invalid config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Task Reminder...")
	logger.Infof(ctx, "Environment: %s, timezone: %s", cfg.Environment.Name, cfg.Parser.Timezone)

	// 3. Extraction
	dates, err := datemath.NewParser(cfg.Parser.Timezone, datemath.WithLocale(cfg.Parser.Locale))
	if err != nil {
		logger.Error(ctx, "Failed to create date parser: ", err)
		return
	}

	parserOpts := parserUC.Options{LLMTimeout: cfg.Parser.LLMTimeout}
	manager, err := llmprovider.NewManagerFromConfig(&cfg.LLM, logger)
	switch {
	case err == nil:
		parserOpts.LLM = manager
		logger.Infof(ctx, "LLM extraction enabled with %d provider(s)", len(manager.Providers()))
	case errors.Is(err, llmprovider.ErrNoProvidersConfigured):
		logger.Warnf(ctx, "LLM extraction disabled, using rule-based parser only: %v", err)
	default:
		logger.Error(ctx, "Failed to initialize LLM providers: ", err)
		return
	}
	extractor := parserUC.New(logger, dates, parserOpts)

	// 4. Storage
	db, err := sqlite.Open(cfg.Storage.SQLitePath)
	if err != nil {
		logger.Error(ctx, "Failed to open task database: ", err)
		return
	}
	defer db.Close()
	taskRepo := sqlite.New(db, logger, dates.Location())

	// 5. Mirrors (optional)
	var notionClient notion.INotion
	if cfg.Notion.Token != "" && cfg.Notion.DatabaseID != "" {
		client, nErr := notion.New(notion.Config{
			Token:      cfg.Notion.Token,
			DatabaseID: cfg.Notion.DatabaseID,
			Version:    cfg.Notion.Version,
		})
		if nErr != nil {
			logger.Warnf(ctx, "Notion sync not available (optional): %v", nErr)
		} else {
			notionClient = client
			logger.Info(ctx, "Notion sync initialized")
		}
	}

	var calendarClient gcalendar.ICalendar
	if cfg.GoogleCalendar.CredentialsPath != "" {
		client, gErr := gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath)
		if gErr != nil {
			logger.Warnf(ctx, "Google Calendar not available (optional): %v", gErr)
			logger.Warn(ctx, "Run `remindctl calendar-auth` to generate token.json")
		} else {
			calendarClient = client
			logger.Info(ctx, "Google Calendar initialized")
		}
	}

	// 6. Task domain
	bot := telegram.NewBot(cfg.Telegram.BotToken)
	taskUC := usecase.New(logger, taskRepo, extractor, bot, notionClient, calendarClient, usecase.Config{
		Location:   dates.Location(),
		CalendarID: cfg.GoogleCalendar.CalendarID,
	})
	telegramHandler := tgDelivery.New(logger, taskUC, bot, tgDelivery.Config{
		RateLimitPerMin: cfg.Telegram.RateLimitPerMin,
		Location:        dates.Location(),
	})

	// Register webhook: configured URL first, then ngrok auto-detection
	webhookURL := cfg.Telegram.WebhookURL
	if webhookURL == "" && cfg.Telegram.NgrokAPIURL != "" {
		webhookURL, err = webhookURLFromNgrok(ctx, cfg.Telegram.NgrokAPIURL, ngrokRetryDelay)
		if err != nil {
			logger.Warnf(ctx, "Could not detect ngrok URL: %v", err)
		}
	}
	if webhookURL != "" {
		if whErr := bot.SetWebhook(ctx, webhookURL, cfg.Telegram.WebhookSecret); whErr != nil {
			logger.Warnf(ctx, "Failed to set Telegram webhook: %v", whErr)
		} else {
			logger.Infof(ctx, "Telegram webhook registered at %s", webhookURL)
		}
	} else {
		logger.Warn(ctx, "No webhook URL configured; Telegram will not deliver updates")
	}

	// 7. Reminder dispatcher
	dispatcher := job.New(logger, taskUC, cfg.Reminder.PollInterval)
	dispatcherDone := make(chan struct{})
	go func() {
		defer close(dispatcherDone)
		dispatcher.Run(ctx)
	}()

	// 8. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		WebhookSecret:   cfg.Telegram.WebhookSecret,
		TelegramHandler: telegramHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		stop()
		<-dispatcherDone
		return
	}

	// 9. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
	}
	stop()
	<-dispatcherDone

	logger.Info(ctx, "Server stopped gracefully")
}

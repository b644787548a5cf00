package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vessel_briefing_bot/internal/app"
	"vessel_briefing_bot/internal/domain/briefing"
	"vessel_briefing_bot/internal/infra/config"
	"vessel_briefing_bot/internal/infra/httpapi"
	"vessel_briefing_bot/internal/infra/logger"
	"vessel_briefing_bot/internal/infra/notify"
	"vessel_briefing_bot/internal/infra/upstream"

	"gopkg.in/telebot.v3"
)

func main() {
	fmt.Println("Vessel Briefing Service starting...")

	mainLogger := log.New(os.Stdout, "MAIN: ", log.LstdFlags|log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		mainLogger.Fatalf("FATAL: Could not load application configuration: %v", err)
	}
	logger.Init(cfg.LogLevel, cfg.Environment)
	mainLogger.Printf("INFO: Configuration loaded. LogLevel: %s, Environment: %s, Timezone: %s", cfg.LogLevel, cfg.Environment, cfg.ReportTimezone)

	location, err := time.LoadLocation(cfg.ReportTimezone)
	if err != nil {
		mainLogger.Fatalf("FATAL: Invalid REPORT_TIMEZONE %q: %v", cfg.ReportTimezone, err)
	}

	// One shared client; its timeout is the only timeout layer on upstream
	// and channel calls.
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	vesselClient := upstream.NewHTTPVesselClient(cfg.VesselAPIBaseURL, httpClient)
	marineLogger := log.New(os.Stdout, "MARINE: ", log.LstdFlags|log.Lshortfile)
	marineClient := upstream.NewHTTPMarineClient(cfg.MarineAPIBaseURLs, httpClient, marineLogger)
	narrativeClient := upstream.NewHTTPNarrativeClient(cfg.NarrativeAPIBaseURL, httpClient)
	mainLogger.Println("INFO: Upstream clients initialized.")

	notifyLogger := log.New(os.Stdout, "NOTIFY: ", log.LstdFlags|log.Lshortfile)
	senders := []briefing.ChannelSender{
		notify.NewSlackNotifier(cfg.SlackWebhookURL, httpClient, notifyLogger),
		notify.NewEmailNotifier(cfg.EmailAPIBaseURL, cfg.EmailAPIKey, cfg.EmailSender, cfg.EmailRecipients, httpClient, notifyLogger),
	}
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		bot, err := telebot.NewBot(telebot.Settings{Token: cfg.TelegramToken})
		if err != nil {
			mainLogger.Printf("ERROR: Could not create Telegram bot, telegram channel disabled: %v", err)
		} else {
			senders = append(senders, notify.NewTelegramNotifier(bot, cfg.TelegramChatID, notifyLogger))
			mainLogger.Println("INFO: Telegram channel enabled.")
		}
	}
	mainLogger.Printf("INFO: %d notification channel(s) configured.", len(senders))

	state := briefing.NewState()
	serviceLogger := log.New(os.Stdout, "BRIEFING_SVC: ", log.LstdFlags|log.Lshortfile)
	service := app.NewBriefingServiceImpl(vesselClient, marineClient, narrativeClient, senders, state, location, serviceLogger)

	apiServer := httpapi.NewServer(service, location, logger.Get())
	httpServer := &http.Server{Addr: cfg.ListenAddr, Handler: apiServer}

	go func() {
		mainLogger.Printf("INFO: HTTP server listening on %s", cfg.ListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			mainLogger.Fatalf("FATAL: HTTP server failed: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	mainLogger.Println("INFO: Shutting down application...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		mainLogger.Printf("ERROR: HTTP server shutdown failed: %v", err)
	}
	mainLogger.Println("INFO: Application shut down gracefully.")
}

// internal/infra/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the briefing service. Every field is
// optional: a missing channel credential shows up later as a channel-local
// failure, never as a startup error.
type AppConfig struct {
	SlackWebhookURL     string
	EmailAPIKey         string
	EmailAPIBaseURL     string
	EmailSender         string
	EmailRecipients     []string
	TelegramToken       string
	TelegramChatID      int64
	ReportTimezone      string
	VesselAPIBaseURL    string
	MarineAPIBaseURLs   []string
	NarrativeAPIBaseURL string
	ListenAddr          string
	LogLevel            string
	Environment         string
	HTTPTimeout         time.Duration
}

// SchedulerConfig holds configuration for the dispatch scheduler binary.
type SchedulerConfig struct {
	DispatchBaseURL string
	LockFilePath    string
	LockDatabaseURL string
	CronSpecAM      string
	CronSpecPM      string
	ReportTimezone  string
	LogLevel        string
	Environment     string
}

// Load reads briefing-service configuration from environment variables and a
// .env file (if present).
func Load() (*AppConfig, error) {
	// godotenv.Load will not override variables already set in the env.
	_ = godotenv.Load()

	cfg := &AppConfig{}

	cfg.SlackWebhookURL = os.Getenv("SLACK_WEBHOOK_URL")
	cfg.EmailAPIKey = os.Getenv("EMAIL_API_KEY")
	cfg.EmailAPIBaseURL = getenvDefault("EMAIL_API_BASE_URL", "https://api.resend.com")
	cfg.EmailSender = os.Getenv("EMAIL_SENDER")
	cfg.EmailRecipients = SplitList(os.Getenv("EMAIL_RECIPIENTS"))

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if chatIDStr := os.Getenv("TELEGRAM_CHAT_ID"); chatIDStr != "" {
		chatID, err := strconv.ParseInt(chatIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.TelegramChatID = chatID
	}

	cfg.ReportTimezone = getenvDefault("REPORT_TIMEZONE", "Asia/Seoul")
	cfg.VesselAPIBaseURL = os.Getenv("VESSEL_API_BASE_URL")
	cfg.MarineAPIBaseURLs = SplitList(os.Getenv("MARINE_API_BASE_URLS"))
	cfg.NarrativeAPIBaseURL = os.Getenv("NARRATIVE_API_BASE_URL")

	cfg.ListenAddr = getenvDefault("LISTEN_ADDR", ":8080")
	cfg.LogLevel = strings.ToLower(getenvDefault("LOG_LEVEL", "info"))
	cfg.Environment = strings.ToLower(getenvDefault("ENVIRONMENT", "development"))

	timeoutStr := getenvDefault("HTTP_TIMEOUT_SECONDS", "10")
	timeoutSec, err := strconv.Atoi(timeoutStr)
	if err != nil || timeoutSec <= 0 {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT_SECONDS: %q", timeoutStr)
	}
	cfg.HTTPTimeout = time.Duration(timeoutSec) * time.Second

	return cfg, nil
}

// LoadScheduler reads dispatch-scheduler configuration from environment
// variables and a .env file (if present).
func LoadScheduler() (*SchedulerConfig, error) {
	_ = godotenv.Load()

	cfg := &SchedulerConfig{}

	cfg.DispatchBaseURL = getenvDefault("DISPATCH_BASE_URL", "http://localhost:8080")
	cfg.LockFilePath = getenvDefault("LOCK_FILE_PATH", "briefing_dispatch.lock")
	cfg.LockDatabaseURL = os.Getenv("LOCK_DATABASE_URL")
	cfg.CronSpecAM = getenvDefault("CRON_SPEC_AM", "0 7 * * *")
	cfg.CronSpecPM = getenvDefault("CRON_SPEC_PM", "0 17 * * *")
	cfg.ReportTimezone = getenvDefault("REPORT_TIMEZONE", "Asia/Seoul")
	cfg.LogLevel = strings.ToLower(getenvDefault("LOG_LEVEL", "info"))
	cfg.Environment = strings.ToLower(getenvDefault("ENVIRONMENT", "development"))

	return cfg, nil
}

// SplitList parses a comma-separated value into trimmed, non-empty entries.
func SplitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getenvDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

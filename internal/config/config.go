package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment.
type Config struct {
	DB struct {
		Driver string // "memory" or "postgres"
		DSN    string
	}
	API struct {
		Port     string
		BasePath string
	}
	Kafka struct {
		Broker  string
		Topic   string
		GroupID string
	}
	Email struct {
		SMTPServer string
		SMTPPort   int
		Username   string
		Password   string
		From       string
	}
	WhatsApp struct {
		APIURL       string
		APIToken     string
		DefaultPhone string
	}
	Telegram struct {
		BotToken      string
		ChatID        int64
		RatePerSecond int
	}
	Dispatch struct {
		Channels []string
		Timeout  time.Duration
	}
	Dedup struct {
		Windows map[string]time.Duration
	}
	Stats struct {
		SampleSize int
	}
	Checker struct {
		CronSpec string
	}
	Logging struct {
		Dir   string
		Level string
	}
	DashboardURL string
}

// DefaultDedupWindows maps alert types to their deduplication windows.
// Fast-changing conditions get short windows, slow cadences long ones.
var DefaultDedupWindows = map[string]time.Duration{
	"backup_failed":       24 * time.Hour,
	"stock_zero":          6 * time.Hour,
	"nfe_error":           2 * time.Hour,
	"db_connection_error": 1 * time.Hour,
	"high_error_rate":     1 * time.Hour,
	"disk_space_low":      6 * time.Hour,
}

// Load reads environment variables, applies defaults, and returns a Config.
func Load() (Config, error) {
	// Load .env if present
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config

	cfg.DB.Driver = os.Getenv("DB_DRIVER")
	cfg.DB.DSN = os.Getenv("DB_DSN")

	cfg.API.Port = os.Getenv("API_PORT")
	cfg.API.BasePath = os.Getenv("API_BASE_PATH")

	cfg.Kafka.Broker = os.Getenv("KAFKA_BROKER")
	cfg.Kafka.Topic = os.Getenv("KAFKA_TOPIC")
	cfg.Kafka.GroupID = os.Getenv("KAFKA_GROUP_ID")

	cfg.Email.SMTPServer = os.Getenv("SMTP_HOST")
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil {
		cfg.Email.SMTPPort = p
	}
	cfg.Email.Username = os.Getenv("SMTP_USER")
	cfg.Email.Password = os.Getenv("SMTP_PASSWORD")
	cfg.Email.From = os.Getenv("FROM_EMAIL")

	cfg.WhatsApp.APIURL = os.Getenv("WHATSAPP_API_URL")
	cfg.WhatsApp.APIToken = os.Getenv("WHATSAPP_API_TOKEN")
	cfg.WhatsApp.DefaultPhone = os.Getenv("WHATSAPP_DEFAULT_PHONE")

	cfg.Telegram.BotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	if id, err := strconv.ParseInt(os.Getenv("TELEGRAM_CHAT_ID"), 10, 64); err == nil {
		cfg.Telegram.ChatID = id
	}
	if r, err := strconv.Atoi(os.Getenv("TELEGRAM_RATE_LIMIT")); err == nil {
		cfg.Telegram.RatePerSecond = r
	}

	if raw := os.Getenv("ALERT_CHANNELS"); raw != "" {
		for _, ch := range strings.Split(raw, ",") {
			if ch = strings.TrimSpace(ch); ch != "" {
				cfg.Dispatch.Channels = append(cfg.Dispatch.Channels, ch)
			}
		}
	}
	if d, err := time.ParseDuration(os.Getenv("DISPATCH_TIMEOUT")); err == nil {
		cfg.Dispatch.Timeout = d
	}

	windows, err := parseWindows(os.Getenv("DEDUP_WINDOWS"))
	if err != nil {
		return Config{}, err
	}
	cfg.Dedup.Windows = windows

	if n, err := strconv.Atoi(os.Getenv("STATS_SAMPLE_SIZE")); err == nil {
		cfg.Stats.SampleSize = n
	}

	cfg.Checker.CronSpec = os.Getenv("CHECK_CRON")
	cfg.Logging.Dir = os.Getenv("LOG_DIR")
	cfg.Logging.Level = os.Getenv("LOG_LEVEL")
	cfg.DashboardURL = os.Getenv("DASHBOARD_URL")

	// Validate required settings
	if cfg.DB.Driver == "postgres" && cfg.DB.DSN == "" {
		return Config{}, fmt.Errorf("missing required configuration: DB_DSN (DB_DRIVER=postgres)")
	}

	// Apply defaults
	if cfg.DB.Driver == "" {
		cfg.DB.Driver = "memory"
	}
	if cfg.API.Port == "" {
		cfg.API.Port = ":8080"
	}
	if cfg.API.BasePath == "" {
		cfg.API.BasePath = "/api/v0"
	}
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = "alert-candidates"
	}
	if cfg.Kafka.GroupID == "" {
		cfg.Kafka.GroupID = "alerts-backend"
	}
	if len(cfg.Dispatch.Channels) == 0 {
		cfg.Dispatch.Channels = []string{"email"}
	}
	if cfg.Dispatch.Timeout == 0 {
		cfg.Dispatch.Timeout = 10 * time.Second
	}
	if cfg.Telegram.RatePerSecond == 0 {
		cfg.Telegram.RatePerSecond = 20
	}
	if cfg.Stats.SampleSize == 0 {
		cfg.Stats.SampleSize = 100
	}
	if cfg.Checker.CronSpec == "" {
		cfg.Checker.CronSpec = "*/5 * * * *"
	}
	if cfg.DashboardURL == "" {
		cfg.DashboardURL = "http://localhost:3000/alerts"
	}

	return cfg, nil
}

// parseWindows parses "stock_zero=6h,nfe_error=2h" style overrides on top
// of the defaults.
func parseWindows(raw string) (map[string]time.Duration, error) {
	windows := make(map[string]time.Duration, len(DefaultDedupWindows))
	for k, v := range DefaultDedupWindows {
		windows[k] = v
	}
	if raw == "" {
		return windows, nil
	}
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid DEDUP_WINDOWS entry %q", pair)
		}
		d, err := time.ParseDuration(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid DEDUP_WINDOWS duration %q: %w", parts[1], err)
		}
		windows[strings.TrimSpace(parts[0])] = d
	}
	return windows, nil
}

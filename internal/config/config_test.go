package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DB_DRIVER", "DB_DSN", "API_PORT", "API_BASE_PATH",
		"KAFKA_BROKER", "KAFKA_TOPIC", "KAFKA_GROUP_ID",
		"ALERT_CHANNELS", "DISPATCH_TIMEOUT", "DEDUP_WINDOWS",
		"STATS_SAMPLE_SIZE", "CHECK_CRON", "DASHBOARD_URL",
		"TELEGRAM_RATE_LIMIT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.DB.Driver)
	assert.Equal(t, ":8080", cfg.API.Port)
	assert.Equal(t, "/api/v0", cfg.API.BasePath)
	assert.Equal(t, []string{"email"}, cfg.Dispatch.Channels)
	assert.Equal(t, 10*time.Second, cfg.Dispatch.Timeout)
	assert.Equal(t, 100, cfg.Stats.SampleSize)
	assert.Equal(t, "*/5 * * * *", cfg.Checker.CronSpec)
	assert.Equal(t, DefaultDedupWindows, cfg.Dedup.Windows)
}

func TestLoadPostgresRequiresDSN(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "postgres")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DSN")
}

func TestLoadChannelList(t *testing.T) {
	clearEnv(t)
	t.Setenv("ALERT_CHANNELS", "email, telegram ,whatsapp")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"email", "telegram", "whatsapp"}, cfg.Dispatch.Channels)
}

func TestParseWindowsOverrides(t *testing.T) {
	windows, err := parseWindows("stock_zero=1h, certificate_expiring=48h")
	require.NoError(t, err)

	assert.Equal(t, time.Hour, windows["stock_zero"])
	assert.Equal(t, 48*time.Hour, windows["certificate_expiring"])
	// untouched defaults survive
	assert.Equal(t, 24*time.Hour, windows["backup_failed"])
}

func TestParseWindowsRejectsMalformed(t *testing.T) {
	_, err := parseWindows("stock_zero")
	assert.Error(t, err)

	_, err = parseWindows("stock_zero=banana")
	assert.Error(t, err)
}

func TestDefaultDedupWindows(t *testing.T) {
	assert.Equal(t, 24*time.Hour, DefaultDedupWindows["backup_failed"])
	assert.Equal(t, 6*time.Hour, DefaultDedupWindows["stock_zero"])
	assert.Equal(t, 2*time.Hour, DefaultDedupWindows["nfe_error"])
	assert.Equal(t, time.Hour, DefaultDedupWindows["db_connection_error"])
	assert.Equal(t, time.Hour, DefaultDedupWindows["high_error_rate"])
	assert.Equal(t, 6*time.Hour, DefaultDedupWindows["disk_space_low"])
}

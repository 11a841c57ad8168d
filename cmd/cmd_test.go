package cmd

import (
	"context"
	"testing"
	"time"

	"github.com/strompris/strompris/internal/pkg/config"
	"github.com/stretchr/testify/assert"
)

func testConfig() *config.Config {
	return &config.Config{
		ListenAddr:        "127.0.0.1:0",
		PriceAPIURL:       "http://127.0.0.1:1/prices",
		ForecastAPIURL:    "http://127.0.0.1:1/forecast",
		Timezone:          "Europe/Oslo",
		KeepAliveSchedule: "0 5 * * *",
		UpstreamTimeout:   time.Second,
		LogLevel:          "INFO",
	}
}

func TestRun_InvalidLogLevel(t *testing.T) {
	cfg := testConfig()
	cfg.LogLevel = "NOTALEVEL"

	err := run(context.Background(), cfg)
	assert.Error(t, err)
}

func TestRun_InvalidTimezone(t *testing.T) {
	cfg := testConfig()
	cfg.Timezone = "Mars/Olympus_Mons"

	err := run(context.Background(), cfg)
	assert.Error(t, err)
}

func TestRun_UnreachableRedis(t *testing.T) {
	cfg := testConfig()
	cfg.RedisAddr = "127.0.0.1:1"

	err := run(context.Background(), cfg)
	assert.ErrorContains(t, err, "redis unreachable")
}

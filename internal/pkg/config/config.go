package config

import "time"

type Config struct {
	ListenAddr        string
	PriceAPIURL       string
	ForecastAPIURL    string
	RedisAddr         string
	Timezone          string
	KeepAliveSchedule string
	UpstreamTimeout   time.Duration
	LogLevel          string
}

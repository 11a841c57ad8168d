package main

import (
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/strompris/strompris/cmd"
)

func main() {
	app := &cli.App{
		Name:   "strompris-api",
		Usage:  "electricity price dashboard API",
		Action: cmd.ServeCommand,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "listen-addr",
				EnvVars: []string{"LISTEN_ADDR"},
				Value:   "0.0.0.0:8000",
			},
			&cli.StringFlag{
				Name:    "price-api-url",
				EnvVars: []string{"PRICE_API_URL"},
				Value:   "https://www.hvakosterstrommen.no/api/v1/prices",
			},
			&cli.StringFlag{
				Name:    "forecast-api-url",
				EnvVars: []string{"FORECAST_API_URL"},
				Value:   "https://www.ladeassistent.no/api/forecast",
			},
			&cli.StringFlag{
				Name:    "redis-addr",
				EnvVars: []string{"REDIS_ADDR"},
				Value:   "",
			},
			&cli.StringFlag{
				Name:    "timezone",
				EnvVars: []string{"TIMEZONE"},
				Value:   "Europe/Oslo",
			},
			&cli.StringFlag{
				Name:    "keep-alive-schedule",
				EnvVars: []string{"KEEP_ALIVE_SCHEDULE"},
				Value:   "0 5 * * *",
			},
			&cli.DurationFlag{
				Name:    "upstream-timeout",
				EnvVars: []string{"UPSTREAM_TIMEOUT"},
				Value:   15 * time.Second,
			},
			&cli.StringFlag{
				Name:    "log-level",
				EnvVars: []string{"LOG_LEVEL"},
				Value:   "INFO",
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

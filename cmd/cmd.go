package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/strompris/strompris/internal/pkg/cache"
	"github.com/strompris/strompris/internal/pkg/config"
	"github.com/strompris/strompris/internal/pkg/server"
	"github.com/strompris/strompris/internal/pkg/upstream"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func ServeCommand(ctx *cli.Context) error {
	cfg := &config.Config{
		ListenAddr:        ctx.String("listen-addr"),
		PriceAPIURL:       ctx.String("price-api-url"),
		ForecastAPIURL:    ctx.String("forecast-api-url"),
		RedisAddr:         ctx.String("redis-addr"),
		Timezone:          ctx.String("timezone"),
		KeepAliveSchedule: ctx.String("keep-alive-schedule"),
		UpstreamTimeout:   ctx.Duration("upstream-timeout"),
		LogLevel:          ctx.String("log-level"),
	}

	return run(ctx.Context, cfg)
}

func run(ctx context.Context, cfg *config.Config) error {
	errorChan := make(chan error, 1000)
	var err error

	eg, ctx := errgroup.WithContext(ctx)
	logCfg := zap.NewProductionConfig()

	logCfg.Level, err = zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logCfg.OutputPaths = []string{"stdout"}
	logCfg.ErrorOutputPaths = []string{"stdout"}
	logCfg.Sampling = nil
	logger := zap.Must(logCfg.Build(zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel)))
	defer func() {
		_ = logger.Sync() // flushes buffer, if any.
	}()
	zap.ReplaceGlobals(logger)

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return err
	}

	var responseCache cache.Cache = cache.NewMemory()
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis unreachable at %s: %w", cfg.RedisAddr, err)
		}
		responseCache = cache.NewRedis(client)
		logger.Info("using redis response cache", zap.String("addr", cfg.RedisAddr))
	}

	httpClient := &http.Client{Timeout: cfg.UpstreamTimeout}
	prices := upstream.NewPriceClient(cfg.PriceAPIURL, httpClient, responseCache)
	forecasts := upstream.NewForecastClient(cfg.ForecastAPIURL, httpClient)

	srv := &http.Server{
		Handler:      server.New(prices, forecasts, loc).Handler(),
		Addr:         cfg.ListenAddr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	eg.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.ListenAddr))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	eg.Go(func() error {
		return cronKeepAlive(ctx, cfg, errorChan)
	})

	eg.Go(func() error {
		// handle any async errors from service
		for {
			select {
			case err := <-errorChan:
				if errors.Is(err, errCron) {
					logger.Error("cron error", zap.Error(err))
					return err
				}
			case <-ctx.Done():
				logger.Info("context done")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
				return ctx.Err()
			}
		}
	})

	return eg.Wait()
}

var errCron = errors.New("cron error")

// cronKeepAlive pings our own keep-alive route on a schedule, replacing the
// hosted cron job the dashboard used to rely on.
func cronKeepAlive(ctx context.Context, cfg *config.Config, errChan chan error) error {
	target := fmt.Sprintf("http://%s/api/keep-alive", cfg.ListenAddr)

	c := cron.New()
	if _, err := c.AddFunc("CRON_TZ="+cfg.Timezone+" "+cfg.KeepAliveSchedule, func() {
		pingCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		req, err := http.NewRequestWithContext(pingCtx, http.MethodGet, target, nil)
		if err != nil {
			errChan <- errCron
			return
		}
		res, err := http.DefaultClient.Do(req)
		if err != nil {
			zap.L().Error("keep-alive ping failed", zap.Error(err))
			errChan <- errCron
			return
		}
		defer res.Body.Close()
		zap.L().Info("keep-alive ping", zap.Int("status", res.StatusCode))
	}); err != nil {
		return err
	}

	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	return ctx.Err()
}

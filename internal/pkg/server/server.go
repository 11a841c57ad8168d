package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samber/lo"
	"github.com/strompris/strompris/internal/pkg/forecast"
	"github.com/strompris/strompris/internal/pkg/model"
	"github.com/strompris/strompris/internal/pkg/pricing"
	"github.com/strompris/strompris/internal/pkg/upstream"
	"go.uber.org/zap"
)

type priceService interface {
	Prices(ctx context.Context, date, zone string) (model.ExternalPriceItems, error)
}

type forecastService interface {
	Advice(ctx context.Context, zone string) (*model.ForecastResponse, error)
}

type server struct {
	prices    priceService
	forecasts forecastService
	loc       *time.Location
	now       func() time.Time
	logger    *zap.Logger
}

func New(prices priceService, forecasts forecastService, loc *time.Location) *server {
	return &server{
		prices:    prices,
		forecasts: forecasts,
		loc:       loc,
		now:       time.Now,
		logger:    zap.L(),
	}
}

// Handler wires the routes and middleware. Routes are registered both bare
// and under /api, the prefix the dashboard frontend has always called.
// Panics during transform surface as a plain 500 through the recovery
// handler.
func (s *server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(LoggingMiddleware, MetricsMiddleware)

	s.register(r)
	s.register(r.PathPrefix("/api").Subrouter())
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return handlers.RecoveryHandler()(r)
}

func (s *server) register(r *mux.Router) {
	r.HandleFunc("/price/{date}/{zone}", s.GetPrice).Methods(http.MethodGet)
	r.HandleFunc("/forecast/{zone}/advice", s.GetForecastAdvice).Methods(http.MethodGet)
	r.HandleFunc("/forecast/{zone}/grouped", s.GetForecastGrouped).Methods(http.MethodGet)
	r.HandleFunc("/zones", s.GetZones).Methods(http.MethodGet)
	r.HandleFunc("/keep-alive", s.KeepAlive).Methods(http.MethodGet)
}

// GetPrice serves the normalized day-ahead prices for one date and zone.
func (s *server) GetPrice(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	date, zone := vars["date"], vars["zone"]

	if date == "" {
		respondText(w, http.StatusBadRequest, "Missing date")
		return
	}
	if zone == "" {
		respondText(w, http.StatusBadRequest, "Missing zone")
		return
	}
	if !pricing.ValidDate(date) {
		s.logger.Warn("invalid date", zap.String("date", date))
		respondText(w, http.StatusBadRequest, "Invalid date format. Expected YYYY-MM-DD.")
		return
	}
	if !pricing.ValidZone(zone) {
		s.logger.Warn("invalid zone", zap.String("zone", zone))
		respondText(w, http.StatusBadRequest, "Invalid zone. Expected NO1-NO5.")
		return
	}

	external, err := s.prices.Prices(r.Context(), date, zone)
	if err != nil {
		if errors.Is(err, upstream.ErrNoData) {
			// Prices for a day are published the afternoon before; until
			// then the provider answers 404 and we answer with an empty
			// series.
			respondJSON(w, http.StatusOK, model.PriceData{
				Date:       date,
				Zone:       zone,
				Now:        nil,
				PriceItems: []model.PriceItem{},
			})
			return
		}
		s.logger.Error("price fetch failed", zap.String("date", date), zap.String("zone", zone), zap.Error(err))
		respondText(w, http.StatusBadGateway, "Failed to fetch external data")
		return
	}

	items := lo.Map(external, func(ext model.ExternalPriceItem, _ int) model.PriceItem {
		return pricing.FromExternal(ext)
	})
	min, avg, max := pricing.Summarize(items)

	respondJSON(w, http.StatusOK, model.PriceData{
		Date:       date,
		Zone:       zone,
		Min:        min,
		Avg:        avg,
		Max:        max,
		Now:        pricing.ResolveNow(items, s.now(), s.loc),
		PriceItems: items,
	})
}

// GetForecastAdvice proxies the forecast provider, converting the advice
// prices to øre and passing everything else through unchanged.
func (s *server) GetForecastAdvice(w http.ResponseWriter, r *http.Request) {
	zone := mux.Vars(r)["zone"]
	if !pricing.ValidZone(zone) {
		s.logger.Warn("invalid zone", zap.String("zone", zone))
		respondText(w, http.StatusBadRequest, "Invalid zone")
		return
	}

	res, err := s.forecasts.Advice(r.Context(), zone)
	if err != nil {
		s.logger.Error("forecast fetch failed", zap.String("zone", zone), zap.Error(err))
		respondText(w, http.StatusBadGateway, "Failed to fetch forecast data")
		return
	}

	for i, advice := range res.ForecastAdvice {
		res.ForecastAdvice[i].AveragePrice = float64(pricing.ToOre(advice.AveragePrice))
	}
	respondJSON(w, http.StatusOK, res)
}

// GetForecastGrouped serves the forecast bucketed into one row per day with
// 6 hour segments, ready for the dashboard table.
func (s *server) GetForecastGrouped(w http.ResponseWriter, r *http.Request) {
	zone := mux.Vars(r)["zone"]
	if !pricing.ValidZone(zone) {
		s.logger.Warn("invalid zone", zap.String("zone", zone))
		respondText(w, http.StatusBadRequest, "Invalid zone")
		return
	}

	res, err := s.forecasts.Advice(r.Context(), zone)
	if err != nil {
		s.logger.Error("forecast fetch failed", zap.String("zone", zone), zap.Error(err))
		respondText(w, http.StatusBadGateway, "Failed to fetch forecast data")
		return
	}

	items, err := forecast.GroupByDay(res.ForecastAdvice, s.now(), s.loc)
	if err != nil {
		s.logger.Error("forecast grouping failed", zap.String("zone", zone), zap.Error(err))
		respondText(w, http.StatusInternalServerError, "Failed to group forecast data")
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// GetZones lists the five price areas with their display labels.
func (s *server) GetZones(w http.ResponseWriter, _ *http.Request) {
	zones := lo.Map(model.Zones, func(z model.Zone, _ int) model.ZoneInfo {
		return model.ZoneInfo{Zone: z, Label: model.ZoneLabels[z]}
	})
	respondJSON(w, http.StatusOK, zones)
}

// KeepAlive is a liveness ping, also hit daily by the in-process cron so
// hosting platforms do not idle the service out.
func (s *server) KeepAlive(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"message": "Keep-alive success"})
}

func respondText(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	w.Write([]byte(msg))
}

func respondJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("failed to encode response", zap.Error(err))
	}
}

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/diwise/home-activity-sync/internal/pkg/application/aggregation"
	"github.com/diwise/home-activity-sync/internal/pkg/application/polling"
	"github.com/diwise/home-activity-sync/internal/pkg/infrastructure/logging"
	"github.com/diwise/home-activity-sync/internal/pkg/infrastructure/storage"
	"github.com/diwise/home-activity-sync/internal/pkg/infrastructure/tracing"
	"github.com/diwise/home-activity-sync/internal/pkg/presentation/api/auth"
	"github.com/diwise/home-activity-sync/pkg/types"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("home-activity-sync/api")

//go:generate moq -rm -out poller_mock.go . Poller
type Poller interface {
	RunPollCycle(ctx context.Context) (types.PollSummary, error)
	RunBatteryCycle(ctx context.Context) (types.PollSummary, error)
}

//go:generate moq -rm -out aggregator_mock.go . Aggregator
type Aggregator interface {
	AggregateWindows(ctx context.Context, lookbackMinutes int) (types.WindowSummary, error)
	RefreshDailyStats(ctx context.Context, tenantID string, days int) (types.DailySummary, error)
}

//go:generate moq -rm -out reader_mock.go . Reader
type Reader interface {
	GetActivityWindows(ctx context.Context, tenantID string, since time.Time) ([]types.ActivityWindow, error)
	GetDailyStats(ctx context.Context, tenantID, date string) (types.DailyStats, error)
	GetRecentEvents(ctx context.Context, tenantID string, limit int) ([]types.ActivityEvent, error)
}

const (
	defaultWindowHistory = 24 * time.Hour
	defaultEventLimit    = 50
	maxEventLimit        = 1000
)

type cycleFunc func(ctx context.Context) (types.PollSummary, error)

func RegisterHandlers(ctx context.Context, router *chi.Mux, poller Poller, aggregator Aggregator, reader Reader, jwtSecret string, gatherer prometheus.Gatherer) *chi.Mux {
	log := logging.GetFromContext(ctx)

	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(logging.NewContextWithLogger(r.Context(), log)))
		})
	})

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	if gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	if jwtSecret == "" {
		log.Warn().Msg("no jwt secret configured, trigger endpoints are unauthenticated")
	}

	router.Route("/api/v0", func(r chi.Router) {
		r.Use(auth.NewAuthenticator(jwtSecret))

		r.Post("/poll", runCycleHandler("poll-cycle", poller.RunPollCycle))
		r.Post("/battery", runCycleHandler("battery-cycle", poller.RunBatteryCycle))
		r.Post("/windows", aggregateWindowsHandler(aggregator))
		r.Post("/dailystats", refreshDailyStatsHandler(aggregator))

		r.Route("/tenants/{tenantID}", func(r chi.Router) {
			r.Get("/windows", getActivityWindowsHandler(reader))
			r.Get("/dailystats/{date}", getDailyStatsHandler(reader))
			r.Get("/events", getRecentEventsHandler(reader))
		})
	})

	return router
}

func runCycleHandler(name string, run cycleFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), name)
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		log := logging.GetFromContext(ctx)

		summary, err := run(ctx)
		if errors.Is(err, polling.ErrCycleInProgress) {
			log.Info().Str("cycle", name).Msg("rejected request, a cycle is already running")
			writeError(w, http.StatusConflict, err)
			return
		}
		if err != nil {
			log.Error().Err(err).Str("cycle", name).Msg("cycle failed")
			writeError(w, http.StatusInternalServerError, err)
			return
		}

		if !summary.Succeeded() {
			log.Warn().Str("cycle", name).Int("failed", len(summary.Failed())).Msg("cycle completed with failed tenants")
		}

		writeData(w, summary)
	}
}

func aggregateWindowsHandler(aggregator Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "aggregate-windows")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		log := logging.GetFromContext(ctx)

		minutes, err := intParam(r, "minutes", aggregation.DefaultLookbackMinutes)
		if err != nil {
			log.Debug().Err(err).Msg("bad minutes parameter")
			writeError(w, http.StatusBadRequest, err)
			return
		}

		summary, err := aggregator.AggregateWindows(ctx, minutes)
		if err != nil {
			log.Error().Err(err).Msg("window aggregation failed")
			writeError(w, http.StatusInternalServerError, err)
			return
		}

		writeData(w, summary)
	}
}

func refreshDailyStatsHandler(aggregator Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "refresh-daily-stats")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		log := logging.GetFromContext(ctx)

		tenantID := r.URL.Query().Get("tenant")

		days, err := intParam(r, "days", 1)
		if err != nil {
			log.Debug().Err(err).Msg("bad days parameter")
			writeError(w, http.StatusBadRequest, err)
			return
		}

		summary, err := aggregator.RefreshDailyStats(ctx, tenantID, days)
		if errors.Is(err, aggregation.ErrUnknownTenant) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		if err != nil {
			log.Error().Err(err).Str("tenant_id", tenantID).Msg("daily stats refresh failed")
			writeError(w, http.StatusInternalServerError, err)
			return
		}

		writeData(w, summary)
	}
}

func getActivityWindowsHandler(reader Reader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "get-activity-windows")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		tenantID := chi.URLParam(r, "tenantID")
		log := logging.GetFromContext(ctx).With().Str("tenant_id", tenantID).Logger()

		since := time.Now().UTC().Add(-defaultWindowHistory)
		if s := r.URL.Query().Get("since"); s != "" {
			since, err = time.Parse(time.RFC3339, s)
			if err != nil {
				writeError(w, http.StatusBadRequest, fmt.Errorf("invalid value %q for parameter since", s))
				return
			}
		}

		windows, err := reader.GetActivityWindows(ctx, tenantID, since)
		if err != nil {
			log.Error().Err(err).Msg("failed to read activity windows")
			writeError(w, http.StatusInternalServerError, err)
			return
		}

		writeData(w, windows)
	}
}

func getDailyStatsHandler(reader Reader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "get-daily-stats")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		tenantID := chi.URLParam(r, "tenantID")
		date := chi.URLParam(r, "date")
		log := logging.GetFromContext(ctx).With().Str("tenant_id", tenantID).Logger()

		if _, err = time.Parse(time.DateOnly, date); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid date %q", date))
			return
		}

		stats, err := reader.GetDailyStats(ctx, tenantID, date)
		if errors.Is(err, storage.ErrNoRows) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		if err != nil {
			log.Error().Err(err).Str("date", date).Msg("failed to read daily stats")
			writeError(w, http.StatusInternalServerError, err)
			return
		}

		writeData(w, stats)
	}
}

func getRecentEventsHandler(reader Reader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "get-recent-events")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		tenantID := chi.URLParam(r, "tenantID")
		log := logging.GetFromContext(ctx).With().Str("tenant_id", tenantID).Logger()

		limit, err := intParam(r, "limit", defaultEventLimit)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		limit = min(limit, maxEventLimit)

		events, err := reader.GetRecentEvents(ctx, tenantID, limit)
		if err != nil {
			log.Error().Err(err).Msg("failed to read events")
			writeError(w, http.StatusInternalServerError, err)
			return
		}

		writeData(w, events)
	}
}

func intParam(r *http.Request, name string, defaultValue int) (int, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return defaultValue, nil
	}

	i, err := strconv.Atoi(value)
	if err != nil || i < 1 {
		return 0, fmt.Errorf("invalid value %q for parameter %s", value, name)
	}

	return i, nil
}

func writeData(w http.ResponseWriter, data any) {
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(ApiResponse{Data: data}.Byte())
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(errorResponse{Error: err.Error()}.Byte())
}

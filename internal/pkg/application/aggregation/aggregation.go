package aggregation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/diwise/home-activity-sync/internal/pkg/infrastructure/logging"
	"github.com/diwise/home-activity-sync/internal/pkg/infrastructure/metrics"
	"github.com/diwise/home-activity-sync/internal/pkg/infrastructure/storage"
	"github.com/diwise/home-activity-sync/internal/pkg/infrastructure/tracing"
	"github.com/diwise/home-activity-sync/pkg/types"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("home-activity-sync/aggregation")

var ErrUnknownTenant = errors.New("unknown tenant")

const DefaultLookbackMinutes = 60

//go:generate moq -rm -out store_mock.go . Store
type Store interface {
	GetTenants(ctx context.Context) ([]types.TenantConfig, error)
	GetInstrumentedRooms(ctx context.Context, tenantID string) ([]string, error)
	QueryEvents(ctx context.Context, conditions ...storage.ConditionFunc) ([]types.ActivityEvent, error)
	UpsertActivityWindow(ctx context.Context, w types.ActivityWindow) error
	UpsertDailyStats(ctx context.Context, d types.DailyStats) error
}

type Aggregator struct {
	store   Store
	metrics *metrics.Metrics
	now     func() time.Time
}

func New(store Store, m *metrics.Metrics) *Aggregator {
	if m == nil {
		m = metrics.NewForTest()
	}

	return &Aggregator{
		store:   store,
		metrics: m,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// AggregateWindows rebuilds every activity window touched by events in the lookback
// period. The start of the period is aligned to a window boundary so that windows
// are always rebuilt from all of their events.
func (a *Aggregator) AggregateWindows(ctx context.Context, lookbackMinutes int) (types.WindowSummary, error) {
	var err error
	ctx, span := tracer.Start(ctx, "aggregate-windows")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	log := logging.GetFromContext(ctx)

	if lookbackMinutes <= 0 {
		lookbackMinutes = DefaultLookbackMinutes
	}

	since := a.now().Add(-time.Duration(lookbackMinutes) * time.Minute).Truncate(types.WindowSize)
	summary := types.WindowSummary{Since: since}

	events, err := a.store.QueryEvents(ctx, storage.WithSince(since))
	if err != nil {
		err = fmt.Errorf("could not load events: %w", err)
		return summary, err
	}

	windows, unattributed := BuildWindows(events)
	summary.Events = len(events)
	summary.Unattributed = unattributed

	for _, w := range windows {
		if upsertErr := a.store.UpsertActivityWindow(ctx, w); upsertErr != nil {
			log.Error().Err(upsertErr).Str("tenant_id", w.TenantID).Str("room", w.Room).Msg("failed to store activity window")
			summary.Errors = append(summary.Errors, types.AggregationError{TenantID: w.TenantID, Room: w.Room, Error: upsertErr.Error()})
			continue
		}
		summary.Windows++
	}

	a.metrics.WindowsWritten.Add(float64(summary.Windows))
	a.metrics.Cycles.WithLabelValues("windows").Inc()

	log.Info().Int("events", summary.Events).Int("windows", summary.Windows).Int("unattributed", unattributed).Msg("activity windows aggregated")

	return summary, nil
}

type windowKey struct {
	tenantID string
	room     string
	start    time.Time
}

// BuildWindows groups events into windows keyed by tenant, room and window start.
// Events without a room can not be placed and are only counted.
func BuildWindows(events []types.ActivityEvent) ([]types.ActivityWindow, int) {
	attributed := lo.Filter(events, func(e types.ActivityEvent, _ int) bool {
		return e.RoomName() != ""
	})

	groups := lo.GroupBy(attributed, func(e types.ActivityEvent) windowKey {
		return windowKey{tenantID: e.TenantID, room: e.RoomName(), start: e.OccurredAt.UTC().Truncate(types.WindowSize)}
	})

	windows := make([]types.ActivityWindow, 0, len(groups))

	for key, group := range groups {
		w := types.ActivityWindow{
			TenantID:     key.tenantID,
			Room:         key.room,
			WindowStart:  key.start,
			TriggerCount: len(group),
			FirstTrigger: group[0].OccurredAt.UTC(),
			LastTrigger:  group[0].OccurredAt.UTC(),
		}

		for _, e := range group {
			ts := e.OccurredAt.UTC()
			if ts.Before(w.FirstTrigger) {
				w.FirstTrigger = ts
			}
			if ts.After(w.LastTrigger) {
				w.LastTrigger = ts
			}
		}

		w.TriggerTypes = lo.Uniq(lo.Map(group, func(e types.ActivityEvent, _ int) types.DeviceClass {
			return e.Class
		}))
		sort.Slice(w.TriggerTypes, func(i, j int) bool { return w.TriggerTypes[i] < w.TriggerTypes[j] })

		windows = append(windows, w)
	}

	sort.Slice(windows, func(i, j int) bool {
		if windows[i].TenantID != windows[j].TenantID {
			return windows[i].TenantID < windows[j].TenantID
		}
		if !windows[i].WindowStart.Equal(windows[j].WindowStart) {
			return windows[i].WindowStart.Before(windows[j].WindowStart)
		}
		return windows[i].Room < windows[j].Room
	})

	return windows, len(events) - len(attributed)
}

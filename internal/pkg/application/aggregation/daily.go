package aggregation

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/diwise/home-activity-sync/internal/pkg/infrastructure/logging"
	"github.com/diwise/home-activity-sync/internal/pkg/infrastructure/storage"
	"github.com/diwise/home-activity-sync/internal/pkg/infrastructure/tracing"
	"github.com/diwise/home-activity-sync/pkg/types"
	"github.com/samber/lo"
)

const (
	nightStartHour = 23
	nightEndHour   = 6
)

// RefreshDailyStats recomputes the daily stats of the last days calendar days, today
// included, for one tenant or for all tenants when tenantID is empty. Days are
// calendar days in the tenant's time zone.
func (a *Aggregator) RefreshDailyStats(ctx context.Context, tenantID string, days int) (types.DailySummary, error) {
	var err error
	ctx, span := tracer.Start(ctx, "refresh-daily-stats")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	if days < 1 {
		days = 1
	}

	summary := types.DailySummary{}

	tenants, err := a.store.GetTenants(ctx)
	if err != nil {
		err = fmt.Errorf("could not load tenants: %w", err)
		return summary, err
	}

	if tenantID != "" {
		tenants = lo.Filter(tenants, func(t types.TenantConfig, _ int) bool { return t.ID == tenantID })
		if len(tenants) == 0 {
			err = fmt.Errorf("%w: %s", ErrUnknownTenant, tenantID)
			return summary, err
		}
	}

	now := a.now()

	for _, tenant := range tenants {
		summary.Tenants++
		a.refreshTenant(ctx, tenant, days, now, &summary)
	}

	a.metrics.DailyRows.Add(float64(summary.Rows))
	a.metrics.Cycles.WithLabelValues("dailystats").Inc()

	return summary, nil
}

func (a *Aggregator) refreshTenant(ctx context.Context, tenant types.TenantConfig, days int, now time.Time, summary *types.DailySummary) {
	ctx, log := logging.WithTenant(ctx, tenant.ID)

	rooms, err := a.store.GetInstrumentedRooms(ctx, tenant.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to load instrumented rooms")
		summary.Errors = append(summary.Errors, types.AggregationError{TenantID: tenant.ID, Error: err.Error()})
		return
	}

	loc := tenant.Location()
	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	for d := days - 1; d >= 0; d-- {
		start := today.AddDate(0, 0, -d)
		end := start.AddDate(0, 0, 1)
		date := start.Format(time.DateOnly)

		events, err := a.store.QueryEvents(ctx, storage.WithTenant(tenant.ID), storage.WithSince(start), storage.WithUntil(end))
		if err != nil {
			log.Error().Err(err).Str("date", date).Msg("failed to load events")
			summary.Errors = append(summary.Errors, types.AggregationError{TenantID: tenant.ID, Date: date, Error: err.Error()})
			continue
		}

		stats := ComputeDailyStats(tenant.ID, start, events, len(rooms))

		if err := a.store.UpsertDailyStats(ctx, stats); err != nil {
			log.Error().Err(err).Str("date", date).Msg("failed to store daily stats")
			summary.Errors = append(summary.Errors, types.AggregationError{TenantID: tenant.ID, Date: date, Error: err.Error()})
			continue
		}

		summary.Rows++
	}
}

// ComputeDailyStats builds the stats for the day starting at day, in day's location,
// from all events of that day.
func ComputeDailyStats(tenantID string, day time.Time, events []types.ActivityEvent, roomsInstrumented int) types.DailyStats {
	loc := day.Location()

	stats := types.DailyStats{
		TenantID:          tenantID,
		Date:              day.Format(time.DateOnly),
		TotalEvents:       len(events),
		RoomsInstrumented: roomsInstrumented,
	}

	rooms := map[string]struct{}{}
	times := make([]time.Time, 0, len(events))

	for _, e := range events {
		hour := e.OccurredAt.In(loc).Hour()
		stats.HourlyCounts[hour]++

		if isNight(hour) {
			stats.NightEvents++
		}

		if room := e.RoomName(); room != "" {
			rooms[room] = struct{}{}
		}

		switch e.Class {
		case types.ClassMotionSensor:
			stats.MotionEvents++
		case types.ClassContactSensor:
			stats.DoorEvents++
		}

		times = append(times, e.OccurredAt)
	}

	for hour, count := range stats.HourlyCounts {
		if count == 0 {
			continue
		}
		stats.ActiveHours++
		if isNight(hour) {
			stats.NightActiveHours++
		}
	}

	stats.RoomsActive = len(rooms)
	stats.LongestGap = longestGap(times)

	return stats
}

func isNight(hour int) bool {
	return hour >= nightStartHour || hour < nightEndHour
}

func longestGap(times []time.Time) time.Duration {
	if len(times) < 2 {
		return 0
	}

	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

	var longest time.Duration
	for i := 1; i < len(times); i++ {
		if gap := times[i].Sub(times[i-1]); gap > longest {
			longest = gap
		}
	}

	return longest
}

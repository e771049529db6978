package storage

import (
	"context"
	"time"

	"github.com/diwise/home-activity-sync/pkg/types"
	"github.com/jackc/pgx/v5"
)

// UpsertActivityWindow replaces the stored window for (tenant, room, window start).
// Windows are rebuilt from every event they contain, so the latest build is complete.
func (s *Storage) UpsertActivityWindow(ctx context.Context, w types.ActivityWindow) error {
	triggerTypes := make([]string, 0, len(w.TriggerTypes))
	for _, t := range w.TriggerTypes {
		triggerTypes = append(triggerTypes, string(t))
	}

	return s.execOne(ctx, `
		INSERT INTO activity_windows (tenant_id, room, window_start, trigger_types, trigger_count, first_trigger, last_trigger)
		VALUES (@tenant_id, @room, @window_start, @trigger_types, @trigger_count, @first_trigger, @last_trigger)
		ON CONFLICT (tenant_id, room, window_start) DO UPDATE
		SET trigger_types = EXCLUDED.trigger_types,
			trigger_count = EXCLUDED.trigger_count,
			first_trigger = EXCLUDED.first_trigger,
			last_trigger = EXCLUDED.last_trigger,
			modified_on = CURRENT_TIMESTAMP
	`, pgx.NamedArgs{
		"tenant_id":     w.TenantID,
		"room":          w.Room,
		"window_start":  w.WindowStart.UTC(),
		"trigger_types": triggerTypes,
		"trigger_count": w.TriggerCount,
		"first_trigger": w.FirstTrigger.UTC(),
		"last_trigger":  w.LastTrigger.UTC(),
	})
}

func (s *Storage) GetActivityWindows(ctx context.Context, tenantID string, since time.Time) ([]types.ActivityWindow, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT tenant_id, room, window_start, trigger_types, trigger_count, first_trigger, last_trigger
		FROM activity_windows
		WHERE tenant_id = @tenant_id AND window_start >= @since
		ORDER BY window_start ASC, room ASC
	`, pgx.NamedArgs{"tenant_id": tenantID, "since": since.UTC()})
	if err != nil {
		return nil, err
	}

	var tenant, room string
	var windowStart, firstTrigger, lastTrigger time.Time
	var triggerTypes []string
	var triggerCount int32

	windows := make([]types.ActivityWindow, 0)

	_, err = pgx.ForEachRow(rows, []any{&tenant, &room, &windowStart, &triggerTypes, &triggerCount, &firstTrigger, &lastTrigger}, func() error {
		w := types.ActivityWindow{
			TenantID:     tenant,
			Room:         room,
			WindowStart:  windowStart.UTC(),
			TriggerCount: int(triggerCount),
			FirstTrigger: firstTrigger.UTC(),
			LastTrigger:  lastTrigger.UTC(),
		}
		for _, t := range triggerTypes {
			w.TriggerTypes = append(w.TriggerTypes, types.DeviceClass(t))
		}
		windows = append(windows, w)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return windows, nil
}

// UpsertDailyStats replaces the row for (tenant, date).
func (s *Storage) UpsertDailyStats(ctx context.Context, d types.DailyStats) error {
	hourly := make([]int32, len(d.HourlyCounts))
	for i, c := range d.HourlyCounts {
		hourly[i] = int32(c)
	}

	return s.execOne(ctx, `
		INSERT INTO daily_stats (tenant_id, date, total_events, hourly_counts, active_hours, rooms_active, rooms_instrumented,
			longest_gap_seconds, night_events, night_active_hours, motion_events, door_events)
		VALUES (@tenant_id, @date::date, @total_events, @hourly_counts, @active_hours, @rooms_active, @rooms_instrumented,
			@longest_gap_seconds, @night_events, @night_active_hours, @motion_events, @door_events)
		ON CONFLICT (tenant_id, date) DO UPDATE
		SET total_events = EXCLUDED.total_events,
			hourly_counts = EXCLUDED.hourly_counts,
			active_hours = EXCLUDED.active_hours,
			rooms_active = EXCLUDED.rooms_active,
			rooms_instrumented = EXCLUDED.rooms_instrumented,
			longest_gap_seconds = EXCLUDED.longest_gap_seconds,
			night_events = EXCLUDED.night_events,
			night_active_hours = EXCLUDED.night_active_hours,
			motion_events = EXCLUDED.motion_events,
			door_events = EXCLUDED.door_events,
			modified_on = CURRENT_TIMESTAMP
	`, pgx.NamedArgs{
		"tenant_id":           d.TenantID,
		"date":                d.Date,
		"total_events":        d.TotalEvents,
		"hourly_counts":       hourly,
		"active_hours":        d.ActiveHours,
		"rooms_active":        d.RoomsActive,
		"rooms_instrumented":  d.RoomsInstrumented,
		"longest_gap_seconds": int64(d.LongestGap / time.Second),
		"night_events":        d.NightEvents,
		"night_active_hours":  d.NightActiveHours,
		"motion_events":       d.MotionEvents,
		"door_events":         d.DoorEvents,
	})
}

func (s *Storage) GetDailyStats(ctx context.Context, tenantID, date string) (types.DailyStats, error) {
	var hourly []int32
	var longestGap int64
	var totalEvents, activeHours, roomsActive, roomsInstrumented, nightEvents, nightActiveHours, motionEvents, doorEvents int32

	err := s.pool.QueryRow(ctx, `
		SELECT total_events, hourly_counts, active_hours, rooms_active, rooms_instrumented, longest_gap_seconds,
			night_events, night_active_hours, motion_events, door_events
		FROM daily_stats
		WHERE tenant_id = @tenant_id AND date = @date::date
	`, pgx.NamedArgs{"tenant_id": tenantID, "date": date}).Scan(
		&totalEvents, &hourly, &activeHours, &roomsActive, &roomsInstrumented, &longestGap,
		&nightEvents, &nightActiveHours, &motionEvents, &doorEvents)
	if err != nil {
		if isNoRows(err) {
			return types.DailyStats{}, ErrNoRows
		}
		return types.DailyStats{}, err
	}

	d := types.DailyStats{
		TenantID:          tenantID,
		Date:              date,
		TotalEvents:       int(totalEvents),
		ActiveHours:       int(activeHours),
		RoomsActive:       int(roomsActive),
		RoomsInstrumented: int(roomsInstrumented),
		LongestGap:        time.Duration(longestGap) * time.Second,
		NightEvents:       int(nightEvents),
		NightActiveHours:  int(nightActiveHours),
		MotionEvents:      int(motionEvents),
		DoorEvents:        int(doorEvents),
	}
	for i := 0; i < len(hourly) && i < len(d.HourlyCounts); i++ {
		d.HourlyCounts[i] = int(hourly[i])
	}

	return d, nil
}

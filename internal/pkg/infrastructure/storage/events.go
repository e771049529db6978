package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/diwise/home-activity-sync/pkg/types"
	"github.com/jackc/pgx/v5"
)

// InsertEvents stores a batch of activity events. Event ids are derived from the
// observed change, so events already stored are left untouched on a retry.
func (s *Storage) InsertEvents(ctx context.Context, events []types.ActivityEvent) error {
	if len(events) == 0 {
		return nil
	}

	batch := &pgx.Batch{}

	for _, e := range events {
		if e.ID == "" {
			return ErrNoID
		}

		payload, err := json.Marshal(e.Payload)
		if err != nil {
			return err
		}

		batch.Queue(`
			INSERT INTO activity_events (event_id, tenant_id, device_id, device_name, class, room, occurred_at, payload)
			VALUES (@event_id, @tenant_id, @device_id, @device_name, @class, @room, @occurred_at, @payload)
			ON CONFLICT (event_id) DO NOTHING
		`, pgx.NamedArgs{
			"event_id":    e.ID,
			"tenant_id":   e.TenantID,
			"device_id":   e.DeviceID,
			"device_name": nullable(e.DeviceName),
			"class":       string(e.Class),
			"room":        e.Room,
			"occurred_at": e.OccurredAt.UTC(),
			"payload":     string(payload),
		})
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrStoreFailed, err.Error())
	}
	defer tx.Rollback(ctx)

	results := tx.SendBatch(ctx, batch)

	var errs []error
	for range events {
		_, err := results.Exec()
		errs = append(errs, err)
	}
	errs = append(errs, results.Close())

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %s", ErrStoreFailed, err.Error())
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: %s", ErrStoreFailed, err.Error())
	}

	return nil
}

// GetRecentEvents returns the latest events of a tenant, newest first.
func (s *Storage) GetRecentEvents(ctx context.Context, tenantID string, limit int) ([]types.ActivityEvent, error) {
	return s.QueryEvents(ctx, WithTenant(tenantID), WithSortDesc(true), WithLimit(limit))
}

func (s *Storage) QueryEvents(ctx context.Context, conditions ...ConditionFunc) ([]types.ActivityEvent, error) {
	condition := &Condition{}
	for _, f := range conditions {
		f(condition)
	}

	query := fmt.Sprintf(`
		SELECT event_id, tenant_id, device_id, device_name, class, room, occurred_at, payload
		FROM activity_events
		%s
		%s
		%s
	`, condition.Where(), condition.OrderBy(), condition.Limit())

	rows, err := s.pool.Query(ctx, query, condition.NamedArgs())
	if err != nil {
		return nil, err
	}

	var eventID, tenantID, deviceID, class string
	var deviceName, room *string
	var occurredAt time.Time
	var payload json.RawMessage

	events := make([]types.ActivityEvent, 0)

	_, err = pgx.ForEachRow(rows, []any{&eventID, &tenantID, &deviceID, &deviceName, &class, &room, &occurredAt, &payload}, func() error {
		e := types.ActivityEvent{
			ID:         eventID,
			TenantID:   tenantID,
			DeviceID:   deviceID,
			Class:      types.DeviceClass(class),
			OccurredAt: occurredAt.UTC(),
		}
		if deviceName != nil {
			e.DeviceName = *deviceName
		}
		if room != nil {
			r := *room
			e.Room = &r
		}
		if err := json.Unmarshal(payload, &e.Payload); err != nil {
			return err
		}
		events = append(events, e)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return events, nil
}

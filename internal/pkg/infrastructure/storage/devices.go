package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/diwise/home-activity-sync/pkg/types"
	"github.com/jackc/pgx/v5"
)

func (s *Storage) GetDevicesFor(ctx context.Context, tenantID string) ([]types.Device, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT device_id, tenant_id, legacy_id, unique_id, class, vendor_type, name, room, state, last_state_at, battery_level
		FROM devices
		WHERE tenant_id = @tenant_id
		ORDER BY unique_id ASC
	`, pgx.NamedArgs{"tenant_id": tenantID})
	if err != nil {
		return nil, err
	}

	var deviceID, tenant, uniqueID, class, name string
	var legacyID, vendorType, room *string
	var state json.RawMessage
	var lastStateAt *time.Time
	var batteryLevel *int32

	devices := make([]types.Device, 0)

	_, err = pgx.ForEachRow(rows, []any{&deviceID, &tenant, &legacyID, &uniqueID, &class, &vendorType, &name, &room, &state, &lastStateAt, &batteryLevel}, func() error {
		d := types.Device{
			ID:       deviceID,
			TenantID: tenant,
			UniqueID: uniqueID,
			Class:    types.DeviceClass(class),
			Name:     name,
		}

		if legacyID != nil {
			d.LegacyID = *legacyID
		}
		if vendorType != nil {
			d.VendorType = *vendorType
		}
		if room != nil {
			r := *room
			d.Room = &r
		}
		if len(state) > 0 && string(state) != "null" {
			if err := json.Unmarshal(state, &d.State); err != nil {
				return fmt.Errorf("invalid state for device %s: %w", deviceID, err)
			}
		}
		if lastStateAt != nil {
			ts := lastStateAt.UTC()
			d.LastStateAt = &ts
		}
		if batteryLevel != nil {
			b := int(*batteryLevel)
			d.BatteryLevel = &b
		}

		devices = append(devices, d)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return devices, nil
}

// UpsertDevice stores the device keyed by (tenant, unique id) and returns the id of
// the stored row, which is the existing id when the device was already known.
func (s *Storage) UpsertDevice(ctx context.Context, d types.Device) (string, error) {
	if d.ID == "" {
		return "", ErrNoID
	}

	var state any
	if d.State != nil {
		b, err := json.Marshal(d.State)
		if err != nil {
			return "", err
		}
		state = string(b)
	}

	args := pgx.NamedArgs{
		"device_id":     d.ID,
		"tenant_id":     d.TenantID,
		"legacy_id":     nullable(d.LegacyID),
		"unique_id":     d.UniqueID,
		"class":         string(d.Class),
		"vendor_type":   nullable(d.VendorType),
		"name":          d.Name,
		"room":          d.Room,
		"state":         state,
		"last_state_at": d.LastStateAt,
		"battery_level": d.BatteryLevel,
	}

	var id string
	err := s.pool.QueryRow(ctx, `
		INSERT INTO devices (device_id, tenant_id, legacy_id, unique_id, class, vendor_type, name, room, state, last_state_at, battery_level)
		VALUES (@device_id, @tenant_id, @legacy_id, @unique_id, @class, @vendor_type, @name, @room, @state, @last_state_at, @battery_level)
		ON CONFLICT (tenant_id, unique_id) DO UPDATE
		SET legacy_id = EXCLUDED.legacy_id,
			vendor_type = EXCLUDED.vendor_type,
			name = EXCLUDED.name,
			room = COALESCE(EXCLUDED.room, devices.room),
			state = EXCLUDED.state,
			last_state_at = EXCLUDED.last_state_at,
			battery_level = COALESCE(EXCLUDED.battery_level, devices.battery_level),
			modified_on = CURRENT_TIMESTAMP
		RETURNING device_id
	`, args).Scan(&id)
	if err != nil {
		if isNoRows(err) {
			return "", ErrNoRows
		}
		return "", fmt.Errorf("%w: %s", ErrStoreFailed, err.Error())
	}

	return id, nil
}

func (s *Storage) UpdateBatteryLevel(ctx context.Context, tenantID, uniqueID string, level int) error {
	return s.execOne(ctx, `
		UPDATE devices
		SET battery_level = @battery_level, modified_on = CURRENT_TIMESTAMP
		WHERE tenant_id = @tenant_id AND unique_id = @unique_id
	`, pgx.NamedArgs{
		"tenant_id":     tenantID,
		"unique_id":     uniqueID,
		"battery_level": level,
	})
}

// GetInstrumentedRooms returns the distinct rooms that have at least one device.
func (s *Storage) GetInstrumentedRooms(ctx context.Context, tenantID string) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT DISTINCT room FROM devices
		WHERE tenant_id = @tenant_id AND room IS NOT NULL AND room <> ''
		ORDER BY room
	`, pgx.NamedArgs{"tenant_id": tenantID})
	if err != nil {
		return nil, err
	}

	rooms, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}

	return rooms, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

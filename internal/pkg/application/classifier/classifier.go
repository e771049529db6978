package classifier

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/diwise/home-activity-sync/internal/pkg/infrastructure/hue"
	"github.com/diwise/home-activity-sync/pkg/types"
	"github.com/google/uuid"
)

// Payload keys of emitted activity events.
const (
	PayloadOn     = "on"
	PayloadMotion = "motion"
	PayloadOpen   = "open"
	PayloadButton = "button"
)

var eventNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("home-activity-sync/activity-event"))

// EventID derives the id of an activity event from what was observed, so that the
// same state change detected twice yields the same id.
func EventID(e types.ActivityEvent) string {
	payload, _ := json.Marshal(e.Payload)

	key := strings.Join([]string{
		e.TenantID,
		e.DeviceID,
		string(e.Class),
		e.OccurredAt.UTC().Format(time.RFC3339Nano),
		string(payload),
	}, "|")

	return uuid.NewSHA1(eventNamespace, []byte(key)).String()
}

// UpsertSnapshot replaces the stored state of a device with the observed one and
// returns an activity event when the change is activity for the device's class.
// A device without a stored state only gets its baseline recorded.
func UpsertSnapshot(device types.Device, observed hue.Device, pollTime time.Time) (types.Device, *types.ActivityEvent) {
	previous := device.State
	current := observed.Snapshot()

	var event *types.ActivityEvent

	if previous != nil {
		if occurredAt, payload, ok := detect(device.Class, previous, current, pollTime); ok {
			event = &types.ActivityEvent{
				TenantID:   device.TenantID,
				DeviceID:   device.ID,
				DeviceName: device.Name,
				Class:      device.Class,
				Room:       device.Room,
				OccurredAt: occurredAt,
				Payload:    payload,
			}
			event.ID = EventID(*event)
		}
	}

	if previous == nil || !sameState(previous, current) {
		t := pollTime.UTC()
		device.LastStateAt = &t
	}

	device.State = current

	return device, event
}

// detect applies the activity predicate of a device class. Temperature and light
// level sensors never report activity.
func detect(class types.DeviceClass, previous, current types.State, pollTime time.Time) (time.Time, map[string]any, bool) {
	switch class {
	case types.ClassLight:
		return light(previous, current, pollTime)
	case types.ClassMotionSensor:
		return motion(previous, current, pollTime)
	case types.ClassContactSensor:
		return contact(previous, current, pollTime)
	case types.ClassButton:
		return button(previous, current, pollTime)
	}

	return time.Time{}, nil, false
}

func light(previous, current types.State, pollTime time.Time) (time.Time, map[string]any, bool) {
	was, ok := previous.Bool(hue.StateOn)
	if !ok {
		return time.Time{}, nil, false
	}

	is, _ := current.Bool(hue.StateOn)
	if was == is {
		return time.Time{}, nil, false
	}

	return pollTime.UTC(), map[string]any{PayloadOn: is}, true
}

func motion(previous, current types.State, pollTime time.Time) (time.Time, map[string]any, bool) {
	lastUpdated, _ := current.String(hue.StateLastUpdated)
	if isMissing(lastUpdated) {
		return time.Time{}, nil, false
	}

	stored, _ := previous.String(hue.StateLastUpdated)
	if lastUpdated == stored {
		return time.Time{}, nil, false
	}

	presence, _ := current.Bool(hue.StatePresence)

	return NormalizeTimestamp(lastUpdated, pollTime), map[string]any{PayloadMotion: true, hue.StatePresence: presence}, true
}

func contact(previous, current types.State, pollTime time.Time) (time.Time, map[string]any, bool) {
	changed, _ := current.String(hue.StateChanged)
	if isMissing(changed) {
		return time.Time{}, nil, false
	}

	stored, _ := previous.String(hue.StateChanged)
	if changed == stored {
		return time.Time{}, nil, false
	}

	open, _ := current.Bool(hue.StateOpen)

	return NormalizeTimestamp(changed, pollTime), map[string]any{PayloadOpen: open}, true
}

func button(previous, current types.State, pollTime time.Time) (time.Time, map[string]any, bool) {
	code, ok := current.Int(hue.StateButtonEvent)
	if !ok {
		return time.Time{}, nil, false
	}

	stored, ok := previous.Int(hue.StateButtonEvent)
	if ok && stored == code {
		return time.Time{}, nil, false
	}

	lastUpdated, _ := current.String(hue.StateLastUpdated)

	return NormalizeTimestamp(lastUpdated, pollTime), map[string]any{PayloadButton: code}, true
}

// sameState compares snapshots after a JSON round trip since stored snapshots have
// been through one and carry numbers as float64.
func sameState(a, b types.State) bool {
	ab, err := json.Marshal(a)
	if err != nil {
		return false
	}
	bb, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return string(ab) == string(bb)
}

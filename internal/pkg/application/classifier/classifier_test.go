package classifier

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/diwise/home-activity-sync/internal/pkg/infrastructure/hue"
	"github.com/diwise/home-activity-sync/pkg/types"
	"github.com/matryer/is"
)

var pollTime = time.Date(2024, 1, 1, 10, 5, 0, 0, time.UTC)

func TestThatUnchangedStateEmitsNoEvent(t *testing.T) {
	is := is.New(t)

	bri := 100
	observed := []hue.Device{
		hue.Light{On: true, Brightness: &bri},
		hue.MotionSensor{Presence: true, LastUpdated: "2024-01-01T10:00:00"},
		hue.ContactSensor{Open: false, Changed: "2024-01-01T09:00:00.000Z"},
		hue.Button{ButtonEvent: intPtr(1002), LastUpdated: "2024-01-01T09:00:00"},
	}
	classes := []types.DeviceClass{types.ClassLight, types.ClassMotionSensor, types.ClassContactSensor, types.ClassButton}

	for i, o := range observed {
		device := types.Device{ID: "d", Class: classes[i]}

		device, _ = UpsertSnapshot(device, o, pollTime)
		device.State = roundTrip(t, device.State)

		_, event := UpsertSnapshot(device, o, pollTime.Add(5*time.Minute))
		is.True(event == nil)
	}
}

func TestThatFirstObservationOnlySetsBaseline(t *testing.T) {
	is := is.New(t)

	device, event := UpsertSnapshot(types.Device{Class: types.ClassMotionSensor}, hue.MotionSensor{Presence: true, LastUpdated: "2024-01-01T10:00:00"}, pollTime)
	is.True(event == nil)
	is.Equal(device.State[hue.StateLastUpdated], "2024-01-01T10:00:00")
	is.Equal(*device.LastStateAt, pollTime)
}

func TestMotionPulseWithPresenceStillTrue(t *testing.T) {
	is := is.New(t)
	room := "Kitchen"

	device := types.Device{
		ID:       "motion-1",
		TenantID: "T",
		Class:    types.ClassMotionSensor,
		Room:     &room,
		State:    types.State{"presence": true, "lastupdated": "2024-01-01T10:00:00"},
	}

	updated, event := UpsertSnapshot(device, hue.MotionSensor{Presence: true, LastUpdated: "2024-01-01T10:03:00"}, pollTime)

	is.True(event != nil)
	is.Equal(event.OccurredAt, time.Date(2024, 1, 1, 10, 3, 0, 0, time.UTC))
	is.Equal(event.Class, types.ClassMotionSensor)
	is.Equal(event.RoomName(), "Kitchen")
	is.Equal(event.DeviceID, "motion-1")
	is.Equal(event.Payload[PayloadMotion], true)

	is.Equal(updated.State[hue.StateLastUpdated], "2024-01-01T10:03:00")
	is.Equal(*updated.LastStateAt, pollTime)
}

func TestThatRedetectedChangeGetsSameEventID(t *testing.T) {
	is := is.New(t)

	device := types.Device{
		ID:       "motion-1",
		TenantID: "T",
		Class:    types.ClassMotionSensor,
		State:    types.State{"presence": true, "lastupdated": "2024-01-01T10:00:00"},
	}
	observed := hue.MotionSensor{Presence: true, LastUpdated: "2024-01-01T10:03:00"}

	_, first := UpsertSnapshot(device, observed, pollTime)
	_, second := UpsertSnapshot(device, observed, pollTime.Add(5*time.Minute))
	is.True(first != nil && second != nil)
	is.Equal(first.ID, second.ID)

	_, other := UpsertSnapshot(device, hue.MotionSensor{Presence: true, LastUpdated: "2024-01-01T10:04:00"}, pollTime)
	is.True(other.ID != first.ID)
}

func TestThatMotionSentinelTimestampIsNotActivity(t *testing.T) {
	is := is.New(t)

	device := types.Device{Class: types.ClassMotionSensor, State: types.State{"presence": false, "lastupdated": "2024-01-01T10:00:00"}}

	updated, event := UpsertSnapshot(device, hue.MotionSensor{LastUpdated: "none"}, pollTime)
	is.True(event == nil)
	is.Equal(updated.State[hue.StateLastUpdated], "none")
}

func TestLightChangesWithoutOnFlipAreNotActivity(t *testing.T) {
	is := is.New(t)

	device := types.Device{Class: types.ClassLight, State: types.State{"on": true, "bri": float64(100), "hue": float64(8000), "ct": float64(366)}}

	updated, event := UpsertSnapshot(device, hue.Light{On: true, Brightness: intPtr(254), Hue: intPtr(100), ColorTemp: intPtr(153)}, pollTime)
	is.True(event == nil)
	is.Equal(updated.State[hue.StateBrightness], 254)
	is.Equal(*updated.LastStateAt, pollTime)

	_, event = UpsertSnapshot(updated, hue.Light{On: false, Brightness: intPtr(254)}, pollTime.Add(time.Minute))
	is.True(event != nil)
	is.Equal(event.OccurredAt, pollTime.Add(time.Minute))
	is.Equal(event.Payload[PayloadOn], false)
}

func TestContactChange(t *testing.T) {
	is := is.New(t)

	device := types.Device{Class: types.ClassContactSensor, State: types.State{"open": false, "changed": "2024-01-01T09:00:00.000Z"}}

	_, event := UpsertSnapshot(device, hue.ContactSensor{Open: true, Changed: "2024-01-01T10:01:30.500Z"}, pollTime)
	is.True(event != nil)
	is.Equal(event.OccurredAt, time.Date(2024, 1, 1, 10, 1, 30, 500000000, time.UTC))
	is.Equal(event.Payload[PayloadOpen], true)
}

func TestButtonCode(t *testing.T) {
	is := is.New(t)

	device := types.Device{Class: types.ClassButton, State: types.State{"buttonevent": float64(1002), "lastupdated": "2024-01-01T09:00:00"}}

	_, event := UpsertSnapshot(device, hue.Button{ButtonEvent: intPtr(1002), LastUpdated: "2024-01-01T10:00:00"}, pollTime)
	is.True(event == nil)

	_, event = UpsertSnapshot(device, hue.Button{ButtonEvent: intPtr(4002), LastUpdated: "2024-01-01T10:00:00"}, pollTime)
	is.True(event != nil)
	is.Equal(event.Payload[PayloadButton], 4002)
	is.Equal(event.OccurredAt, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC))

	_, event = UpsertSnapshot(device, hue.Button{LastUpdated: "2024-01-01T10:00:00"}, pollTime)
	is.True(event == nil)
}

func TestThatTemperatureChangesAreNotActivity(t *testing.T) {
	is := is.New(t)

	celsius := 22.5
	device := types.Device{Class: types.ClassTemperatureSensor, State: types.State{"temperature": 21.0, "lastupdated": "2024-01-01T09:00:00"}}

	updated, event := UpsertSnapshot(device, hue.TemperatureSensor{Temperature: &celsius, LastUpdated: "2024-01-01T10:00:00"}, pollTime)
	is.True(event == nil)
	is.Equal(updated.State[hue.StateTemperature], 22.5)
}

func TestThatUnchangedStateKeepsLastStateAt(t *testing.T) {
	is := is.New(t)

	earlier := pollTime.Add(-time.Hour)
	device := types.Device{Class: types.ClassLight, State: types.State{"on": true, "bri": float64(10)}, LastStateAt: &earlier}

	updated, _ := UpsertSnapshot(device, hue.Light{On: true, Brightness: intPtr(10)}, pollTime)
	is.Equal(*updated.LastStateAt, earlier)
}

func TestNormalizeTimestamp(t *testing.T) {
	is := is.New(t)

	is.Equal(NormalizeTimestamp("2024-01-01T10:03:00", pollTime), time.Date(2024, 1, 1, 10, 3, 0, 0, time.UTC))
	is.Equal(NormalizeTimestamp("2024-01-01T10:03:00Z", pollTime), time.Date(2024, 1, 1, 10, 3, 0, 0, time.UTC))
	is.Equal(NormalizeTimestamp("2024-01-01T12:03:00+02:00", pollTime), time.Date(2024, 1, 1, 10, 3, 0, 0, time.UTC))
	is.Equal(NormalizeTimestamp("none", pollTime), pollTime)
	is.Equal(NormalizeTimestamp("None", pollTime), pollTime)
	is.Equal(NormalizeTimestamp("", pollTime), pollTime)
	is.Equal(NormalizeTimestamp("yesterday", pollTime), pollTime)
}

func intPtr(i int) *int {
	return &i
}

func roundTrip(t *testing.T, s types.State) types.State {
	b, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	var out types.State
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatal(err)
	}
	return out
}

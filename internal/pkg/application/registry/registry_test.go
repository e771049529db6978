package registry

import (
	"errors"
	"testing"

	"github.com/diwise/home-activity-sync/internal/pkg/infrastructure/hue"
	"github.com/diwise/home-activity-sync/pkg/types"
	"github.com/matryer/is"
)

func TestThatFirstObservationCreatesDevice(t *testing.T) {
	is := is.New(t)

	r := New("tenant", nil)
	battery := 87
	room := "Kitchen"

	motion := hue.MotionSensor{Identity: hue.Identity{Source: hue.SourceSensors, LegacyID: "5", UniqueID: "u-1", Name: "Motion", VendorType: "ZLLPresence", Battery: &battery}}

	d, created, err := r.UpsertDiscovered(motion, &room)
	is.NoErr(err)
	is.True(created)
	is.True(d.ID != "")
	is.Equal(d.TenantID, "tenant")
	is.Equal(d.Class, types.ClassMotionSensor)
	is.Equal(d.RoomName(), "Kitchen")
	is.Equal(*d.BatteryLevel, 87)
	is.True(d.State == nil)
}

func TestThatKnownDeviceIsNotDuplicated(t *testing.T) {
	is := is.New(t)

	r := New("tenant", []types.Device{
		{ID: "existing", TenantID: "tenant", UniqueID: "u-1", Class: types.ClassLight, Name: "Old name", State: types.State{"on": true}},
	})

	light := hue.Light{Identity: hue.Identity{Source: hue.SourceLights, LegacyID: "1", UniqueID: "u-1", Name: "New name"}}

	d, created, err := r.UpsertDiscovered(light, nil)
	is.NoErr(err)
	is.True(!created)
	is.Equal(d.ID, "existing")
	is.Equal(d.Name, "New name")
	is.Equal(d.State["on"], true)

	_, created, _ = r.UpsertDiscovered(light, nil)
	is.True(!created)
	is.Equal(r.Len(), 1)
}

func TestThatNewDeviceIsOnlyCreatedOnce(t *testing.T) {
	is := is.New(t)

	r := New("tenant", nil)
	light := hue.Light{Identity: hue.Identity{UniqueID: "u-2"}}

	first, created, _ := r.UpsertDiscovered(light, nil)
	is.True(created)

	second, created, _ := r.UpsertDiscovered(light, nil)
	is.True(!created)
	is.Equal(first.ID, second.ID)
}

func TestThatUnknownDevicesAreIgnored(t *testing.T) {
	is := is.New(t)

	r := New("tenant", nil)

	_, _, err := r.UpsertDiscovered(hue.Unknown{Identity: hue.Identity{UniqueID: "daylight"}}, nil)
	is.True(errors.Is(err, ErrUnsupportedDevice))
	is.Equal(r.Len(), 0)
}

func TestThatPreviousRoomIsKeptWhenUnresolved(t *testing.T) {
	is := is.New(t)

	office := "Office"
	r := New("tenant", []types.Device{{ID: "existing", UniqueID: "u-1", Class: types.ClassMotionSensor, Room: &office}})

	d, _, err := r.UpsertDiscovered(hue.MotionSensor{Identity: hue.Identity{UniqueID: "u-1"}}, nil)
	is.NoErr(err)
	is.Equal(d.RoomName(), "Office")
}

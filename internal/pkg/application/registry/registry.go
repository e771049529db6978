package registry

import (
	"errors"

	"github.com/diwise/home-activity-sync/internal/pkg/infrastructure/hue"
	"github.com/diwise/home-activity-sync/pkg/types"
	"github.com/google/uuid"
)

var ErrUnsupportedDevice = errors.New("unsupported device type")

// Registry is the set of known devices for one tenant, keyed by the vendor unique id.
type Registry struct {
	tenantID string
	devices  map[string]types.Device
	newID    func() string
}

func New(tenantID string, known []types.Device) *Registry {
	r := &Registry{
		tenantID: tenantID,
		devices:  make(map[string]types.Device, len(known)),
		newID:    func() string { return uuid.NewString() },
	}

	for _, d := range known {
		r.devices[d.UniqueID] = d
	}

	return r
}

// UpsertDiscovered returns the registered device for a vendor device, creating it on
// first observation. Name and battery level always reflect the latest poll, the room
// only when one was resolved. The stored state snapshot is left for the classifier.
func (r *Registry) UpsertDiscovered(vd hue.Device, room *string) (types.Device, bool, error) {
	class, ok := vd.Class()
	if !ok {
		return types.Device{}, false, ErrUnsupportedDevice
	}

	id := vd.ID()

	device, found := r.devices[id.UniqueID]
	if !found {
		device = types.Device{
			ID:       r.newID(),
			TenantID: r.tenantID,
			UniqueID: id.UniqueID,
			Class:    class,
		}
	}

	device.LegacyID = id.LegacyID
	device.VendorType = id.VendorType
	device.Name = id.Name
	if room != nil {
		device.Room = room
	}

	if id.Battery != nil {
		battery := *id.Battery
		device.BatteryLevel = &battery
	}

	r.devices[id.UniqueID] = device

	return device, !found, nil
}

// Update stores the device as the latest known version.
func (r *Registry) Update(device types.Device) {
	r.devices[device.UniqueID] = device
}

func (r *Registry) Get(uniqueID string) (types.Device, bool) {
	d, ok := r.devices[uniqueID]
	return d, ok
}

func (r *Registry) Len() int {
	return len(r.devices)
}

package hue

import (
	"sort"
	"strings"

	"github.com/diwise/home-activity-sync/pkg/types"
	"github.com/samber/lo"
)

const (
	SourceLights   = "lights"
	SourceSensors  = "sensors"
	SourceContacts = "contact"
)

// vendorTypes maps vendor type names onto device classes. Types not listed here,
// such as the bridge's virtual daylight sensor or CLIP sensors, are not physical
// devices and are ignored.
var vendorTypes = map[string]types.DeviceClass{
	"Extended color light":    types.ClassLight,
	"Color light":             types.ClassLight,
	"Dimmable light":          types.ClassLight,
	"Color temperature light": types.ClassLight,
	"On/Off light":            types.ClassLight,
	"On/Off plug-in unit":     types.ClassLight,

	"ZLLPresence":    types.ClassMotionSensor,
	"ZHAPresence":    types.ClassMotionSensor,
	"ZLLTemperature": types.ClassTemperatureSensor,
	"ZHATemperature": types.ClassTemperatureSensor,
	"ZLLLightLevel":  types.ClassLightSensor,
	"ZHALightLevel":  types.ClassLightSensor,
	"ZLLSwitch":      types.ClassButton,
	"ZGPSwitch":      types.ClassButton,
	"ZHASwitch":      types.ClassButton,
	"ZHAOpenClose":   types.ClassContactSensor,
	"contact":        types.ClassContactSensor,
}

func ClassOf(vendorType string) (types.DeviceClass, bool) {
	c, ok := vendorTypes[vendorType]
	return c, ok
}

type Identity struct {
	Source     string
	LegacyID   string
	UniqueID   string
	OwnerID    string
	Name       string
	VendorType string
	Battery    *int
}

func (i Identity) ID() Identity {
	return i
}

// AccessoryPrefix is the part of the unique id shared by every capability of one
// physical accessory, e.g. 00:17:88:01:02:03:04:05 for 00:17:88:01:02:03:04:05-02-0406.
func (i Identity) AccessoryPrefix() string {
	if i.Source == SourceContacts {
		return ""
	}
	prefix, _, found := strings.Cut(i.UniqueID, "-")
	if !found {
		return ""
	}
	return prefix
}

// Device is one of Light, MotionSensor, ContactSensor, TemperatureSensor,
// LightSensor, Button or Unknown.
type Device interface {
	ID() Identity
	Class() (types.DeviceClass, bool)
	Snapshot() types.State
	isDevice()
}

type Light struct {
	Identity
	On         bool
	Brightness *int
	Hue        *int
	Saturation *int
	ColorTemp  *int
	Reachable  *bool
}

type MotionSensor struct {
	Identity
	Presence    bool
	LastUpdated string
}

type ContactSensor struct {
	Identity
	Open    bool
	Changed string
}

type TemperatureSensor struct {
	Identity
	Temperature *float64
	LastUpdated string
}

type LightSensor struct {
	Identity
	LightLevel  *int
	Dark        *bool
	Daylight    *bool
	LastUpdated string
}

type Button struct {
	Identity
	ButtonEvent *int
	LastUpdated string
}

type Unknown struct {
	Identity
}

func (Light) isDevice()             {}
func (MotionSensor) isDevice()      {}
func (ContactSensor) isDevice()     {}
func (TemperatureSensor) isDevice() {}
func (LightSensor) isDevice()       {}
func (Button) isDevice()            {}
func (Unknown) isDevice()           {}

func (Light) Class() (types.DeviceClass, bool) {
	return types.ClassLight, true
}

func (MotionSensor) Class() (types.DeviceClass, bool) {
	return types.ClassMotionSensor, true
}

func (ContactSensor) Class() (types.DeviceClass, bool) {
	return types.ClassContactSensor, true
}

func (TemperatureSensor) Class() (types.DeviceClass, bool) {
	return types.ClassTemperatureSensor, true
}

func (LightSensor) Class() (types.DeviceClass, bool) {
	return types.ClassLightSensor, true
}

func (Button) Class() (types.DeviceClass, bool) {
	return types.ClassButton, true
}

func (Unknown) Class() (types.DeviceClass, bool) {
	return "", false
}

const (
	StateOn          = "on"
	StateBrightness  = "bri"
	StateHue         = "hue"
	StateSaturation  = "sat"
	StateColorTemp   = "ct"
	StateReachable   = "reachable"
	StatePresence    = "presence"
	StateLastUpdated = "lastupdated"
	StateOpen        = "open"
	StateChanged     = "changed"
	StateTemperature = "temperature"
	StateLightLevel  = "lightlevel"
	StateDark        = "dark"
	StateDaylight    = "daylight"
	StateButtonEvent = "buttonevent"
)

func (l Light) Snapshot() types.State {
	s := types.State{StateOn: l.On}
	putInt(s, StateBrightness, l.Brightness)
	putInt(s, StateHue, l.Hue)
	putInt(s, StateSaturation, l.Saturation)
	putInt(s, StateColorTemp, l.ColorTemp)
	putBool(s, StateReachable, l.Reachable)
	return s
}

func (m MotionSensor) Snapshot() types.State {
	return types.State{StatePresence: m.Presence, StateLastUpdated: m.LastUpdated}
}

func (c ContactSensor) Snapshot() types.State {
	return types.State{StateOpen: c.Open, StateChanged: c.Changed}
}

func (t TemperatureSensor) Snapshot() types.State {
	s := types.State{StateLastUpdated: t.LastUpdated}
	if t.Temperature != nil {
		s[StateTemperature] = *t.Temperature
	}
	return s
}

func (l LightSensor) Snapshot() types.State {
	s := types.State{StateLastUpdated: l.LastUpdated}
	putInt(s, StateLightLevel, l.LightLevel)
	putBool(s, StateDark, l.Dark)
	putBool(s, StateDaylight, l.Daylight)
	return s
}

func (b Button) Snapshot() types.State {
	s := types.State{StateLastUpdated: b.LastUpdated}
	putInt(s, StateButtonEvent, b.ButtonEvent)
	return s
}

func (Unknown) Snapshot() types.State {
	return types.State{}
}

func putInt(s types.State, key string, v *int) {
	if v != nil {
		s[key] = *v
	}
}

func putBool(s types.State, key string, v *bool) {
	if v != nil {
		s[key] = *v
	}
}

// Extract projects a snapshot into typed devices. The result is ordered by source
// and legacy id so that repeated polls visit devices in the same order.
func Extract(snapshot *Snapshot) []Device {
	owners := map[string]DeviceResource{}
	for _, d := range snapshot.Devices {
		if d.IDV1 != "" {
			owners[d.IDV1] = d
		}
	}
	resources := map[string]DeviceResource{}
	for _, d := range snapshot.Devices {
		resources[d.ID] = d
	}

	devices := make([]Device, 0, len(snapshot.Lights)+len(snapshot.Sensors)+len(snapshot.Contacts))

	for _, id := range sortedKeys(snapshot.Lights) {
		devices = append(devices, extractLight(id, snapshot.Lights[id], owners))
	}

	for _, id := range sortedKeys(snapshot.Sensors) {
		devices = append(devices, extractSensor(id, snapshot.Sensors[id], owners))
	}

	contacts := append([]ContactResource{}, snapshot.Contacts...)
	sort.Slice(contacts, func(i, j int) bool { return contacts[i].ID < contacts[j].ID })
	for _, c := range contacts {
		devices = append(devices, extractContact(c, resources))
	}

	return devices
}

func extractLight(id string, l LegacyLight, owners map[string]DeviceResource) Device {
	identity := Identity{
		Source:     SourceLights,
		LegacyID:   id,
		UniqueID:   l.UniqueID,
		OwnerID:    owners["/lights/"+id].ID,
		Name:       l.Name,
		VendorType: l.Type,
	}

	if class, ok := ClassOf(l.Type); !ok || class != types.ClassLight || l.UniqueID == "" {
		return Unknown{Identity: identity}
	}

	light := Light{
		Identity:   identity,
		Brightness: l.State.Bri,
		Hue:        l.State.Hue,
		Saturation: l.State.Sat,
		ColorTemp:  l.State.CT,
		Reachable:  l.State.Reachable,
	}
	if l.State.On != nil {
		light.On = *l.State.On
	}

	return light
}

func extractSensor(id string, s LegacySensor, owners map[string]DeviceResource) Device {
	identity := Identity{
		Source:     SourceSensors,
		LegacyID:   id,
		UniqueID:   s.UniqueID,
		OwnerID:    owners["/sensors/"+id].ID,
		Name:       s.Name,
		VendorType: s.Type,
		Battery:    s.Config.Battery,
	}

	class, ok := ClassOf(s.Type)
	if !ok || s.UniqueID == "" {
		return Unknown{Identity: identity}
	}

	switch class {
	case types.ClassMotionSensor:
		m := MotionSensor{Identity: identity, LastUpdated: s.State.LastUpdated}
		if s.State.Presence != nil {
			m.Presence = *s.State.Presence
		}
		return m
	case types.ClassTemperatureSensor:
		t := TemperatureSensor{Identity: identity, LastUpdated: s.State.LastUpdated}
		if s.State.Temperature != nil {
			celsius := float64(*s.State.Temperature) / 100.0
			t.Temperature = &celsius
		}
		return t
	case types.ClassLightSensor:
		return LightSensor{
			Identity:    identity,
			LightLevel:  s.State.LightLevel,
			Dark:        s.State.Dark,
			Daylight:    s.State.Daylight,
			LastUpdated: s.State.LastUpdated,
		}
	case types.ClassButton:
		return Button{Identity: identity, ButtonEvent: s.State.ButtonEvent, LastUpdated: s.State.LastUpdated}
	case types.ClassContactSensor:
		c := ContactSensor{Identity: identity, Changed: s.State.LastUpdated}
		if s.State.Open != nil {
			c.Open = *s.State.Open
		}
		return c
	}

	return Unknown{Identity: identity}
}

func extractContact(c ContactResource, resources map[string]DeviceResource) Device {
	identity := Identity{
		Source:     SourceContacts,
		LegacyID:   strings.TrimPrefix(c.IDV1, "/sensors/"),
		UniqueID:   c.ID,
		OwnerID:    c.Owner.RID,
		Name:       resources[c.Owner.RID].Metadata.Name,
		VendorType: "contact",
	}

	if !c.Enabled || c.ContactReport == nil {
		return Unknown{Identity: identity}
	}

	return ContactSensor{
		Identity: identity,
		Open:     c.ContactReport.State == ContactStateOpen,
		Changed:  c.ContactReport.Changed,
	}
}

func sortedKeys[T any](m map[string]T) []string {
	keys := lo.Keys(m)
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) < len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

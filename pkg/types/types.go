package types

import (
	"time"
)

const (
	TenantStatusActive  = "active"
	TenantStatusPending = "pending"
	TenantStatusError   = "error"
)

type TenantConfig struct {
	ID             string     `json:"id"`
	AccessToken    string     `json:"-"`
	RefreshToken   string     `json:"-"`
	TokenExpiry    time.Time  `json:"tokenExpiry"`
	ApplicationKey string     `json:"-"`
	Status         string     `json:"status"`
	TimeZone       string     `json:"timeZone,omitempty"`
	LastSyncAt     *time.Time `json:"lastSyncAt,omitempty"`
	LastError      string     `json:"lastError,omitempty"`
}

// Location returns the tenant's time zone, falling back to UTC when unset or unknown.
func (t TenantConfig) Location() *time.Location {
	if t.TimeZone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(t.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type DeviceClass string

const (
	ClassLight             DeviceClass = "light"
	ClassMotionSensor      DeviceClass = "motion_sensor"
	ClassContactSensor     DeviceClass = "contact_sensor"
	ClassTemperatureSensor DeviceClass = "temperature_sensor"
	ClassLightSensor       DeviceClass = "light_sensor"
	ClassButton            DeviceClass = "button"
)

// State is the last known snapshot of a device. Keys are the closed set of
// fields projected for the device's class.
type State map[string]any

func (s State) String(key string) (string, bool) {
	v, ok := s[key].(string)
	return v, ok
}

func (s State) Bool(key string) (bool, bool) {
	v, ok := s[key].(bool)
	return v, ok
}

// Int reads integers that may have passed through a JSON round trip.
func (s State) Int(key string) (int, bool) {
	switch v := s[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}

type Device struct {
	ID           string      `json:"id"`
	TenantID     string      `json:"tenantID"`
	LegacyID     string      `json:"legacyID,omitempty"`
	UniqueID     string      `json:"uniqueID"`
	Class        DeviceClass `json:"class"`
	VendorType   string      `json:"vendorType,omitempty"`
	Name         string      `json:"name"`
	Room         *string     `json:"room,omitempty"`
	State        State       `json:"state,omitempty"`
	LastStateAt  *time.Time  `json:"lastStateAt,omitempty"`
	BatteryLevel *int        `json:"batteryLevel,omitempty"`
}

func (d Device) RoomName() string {
	if d.Room == nil {
		return ""
	}
	return *d.Room
}

type ActivityEvent struct {
	ID         string         `json:"id"`
	TenantID   string         `json:"tenantID"`
	DeviceID   string         `json:"deviceID"`
	DeviceName string         `json:"deviceName,omitempty"`
	Class      DeviceClass    `json:"class"`
	Room       *string        `json:"room,omitempty"`
	OccurredAt time.Time      `json:"occurredAt"`
	Payload    map[string]any `json:"payload"`
}

func (e ActivityEvent) RoomName() string {
	if e.Room == nil {
		return ""
	}
	return *e.Room
}

const WindowSize = 5 * time.Minute

type ActivityWindow struct {
	TenantID     string        `json:"tenantID"`
	Room         string        `json:"room"`
	WindowStart  time.Time     `json:"windowStart"`
	TriggerTypes []DeviceClass `json:"triggerTypes"`
	TriggerCount int           `json:"triggerCount"`
	FirstTrigger time.Time     `json:"firstTrigger"`
	LastTrigger  time.Time     `json:"lastTrigger"`
}

type DailyStats struct {
	TenantID          string        `json:"tenantID"`
	Date              string        `json:"date"`
	TotalEvents       int           `json:"totalEvents"`
	HourlyCounts      [24]int       `json:"hourlyCounts"`
	ActiveHours       int           `json:"activeHours"`
	RoomsActive       int           `json:"roomsActive"`
	RoomsInstrumented int           `json:"roomsInstrumented"`
	LongestGap        time.Duration `json:"longestGap"`
	NightEvents       int           `json:"nightEvents"`
	NightActiveHours  int           `json:"nightActiveHours"`
	MotionEvents      int           `json:"motionEvents"`
	DoorEvents        int           `json:"doorEvents"`
}

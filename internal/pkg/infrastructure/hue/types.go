package hue

import "time"

// Legacy (per bridge) API shapes. Collections are keyed by the bridge's legacy id.

type LegacyLight struct {
	Name     string           `json:"name"`
	Type     string           `json:"type"`
	ModelID  string           `json:"modelid"`
	UniqueID string           `json:"uniqueid"`
	State    LegacyLightState `json:"state"`
}

type LegacyLightState struct {
	On        *bool `json:"on"`
	Bri       *int  `json:"bri,omitempty"`
	Hue       *int  `json:"hue,omitempty"`
	Sat       *int  `json:"sat,omitempty"`
	CT        *int  `json:"ct,omitempty"`
	Reachable *bool `json:"reachable,omitempty"`
}

type LegacySensor struct {
	Name     string             `json:"name"`
	Type     string             `json:"type"`
	ModelID  string             `json:"modelid"`
	UniqueID string             `json:"uniqueid"`
	State    LegacySensorState  `json:"state"`
	Config   LegacySensorConfig `json:"config"`
}

type LegacySensorState struct {
	Presence    *bool  `json:"presence,omitempty"`
	Open        *bool  `json:"open,omitempty"`
	ButtonEvent *int   `json:"buttonevent,omitempty"`
	Temperature *int   `json:"temperature,omitempty"`
	LightLevel  *int   `json:"lightlevel,omitempty"`
	Dark        *bool  `json:"dark,omitempty"`
	Daylight    *bool  `json:"daylight,omitempty"`
	LastUpdated string `json:"lastupdated,omitempty"`
}

type LegacySensorConfig struct {
	On        *bool `json:"on,omitempty"`
	Battery   *int  `json:"battery,omitempty"`
	Reachable *bool `json:"reachable,omitempty"`
}

const LegacyGroupTypeRoom = "Room"

type LegacyGroup struct {
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	Class   string   `json:"class,omitempty"`
	Lights  []string `json:"lights"`
	Sensors []string `json:"sensors"`
}

// Resource oriented API shapes.

type resourceEnvelope[T any] struct {
	Errors []struct {
		Description string `json:"description"`
	} `json:"errors"`
	Data []T `json:"data"`
}

type ResourceRef struct {
	RID   string `json:"rid"`
	RType string `json:"rtype"`
}

type ResourceMetadata struct {
	Name      string `json:"name"`
	Archetype string `json:"archetype,omitempty"`
}

type RoomResource struct {
	ID       string           `json:"id"`
	IDV1     string           `json:"id_v1,omitempty"`
	Metadata ResourceMetadata `json:"metadata"`
	Children []ResourceRef    `json:"children"`
	Services []ResourceRef    `json:"services"`
}

type DeviceResource struct {
	ID          string           `json:"id"`
	IDV1        string           `json:"id_v1,omitempty"`
	Metadata    ResourceMetadata `json:"metadata"`
	ProductData struct {
		ModelID     string `json:"model_id"`
		ProductName string `json:"product_name"`
	} `json:"product_data"`
	Services []ResourceRef `json:"services"`
}

type ContactReport struct {
	Changed string `json:"changed"`
	State   string `json:"state"`
}

const ContactStateOpen = "no_contact"

type ContactResource struct {
	ID            string         `json:"id"`
	IDV1          string         `json:"id_v1,omitempty"`
	Owner         ResourceRef    `json:"owner"`
	Enabled       bool           `json:"enabled"`
	ContactReport *ContactReport `json:"contact_report,omitempty"`
}

// Snapshot is everything fetched for one tenant in a single poll.
type Snapshot struct {
	FetchedAt time.Time
	Lights    map[string]LegacyLight
	Sensors   map[string]LegacySensor
	Groups    map[string]LegacyGroup
	Rooms     []RoomResource
	Devices   []DeviceResource
	Contacts  []ContactResource
}

type Credentials struct {
	AccessToken    string
	ApplicationKey string
}

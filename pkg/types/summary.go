package types

import "time"

const (
	TenantResultOK      = "ok"
	TenantResultFailed  = "failed"
	TenantResultSkipped = "skipped"
)

const (
	ErrorKindAuthExpired        = "auth_expired"
	ErrorKindVendorUnavailable  = "vendor_unavailable"
	ErrorKindPersistenceFailure = "persistence_failure"
	ErrorKindUnknown            = "unknown"
)

type TenantResult struct {
	TenantID          string   `json:"tenantID"`
	Status            string   `json:"status"`
	ErrorKind         string   `json:"errorKind,omitempty"`
	Error             string   `json:"error,omitempty"`
	DevicesSeen       int      `json:"devicesSeen"`
	DevicesDiscovered int      `json:"devicesDiscovered"`
	DevicesUpdated    int      `json:"devicesUpdated"`
	EventsEmitted     int      `json:"eventsEmitted"`
	PersistenceErrors []string `json:"persistenceErrors,omitempty"`
}

type PollSummary struct {
	StartedAt  time.Time      `json:"startedAt"`
	FinishedAt time.Time      `json:"finishedAt"`
	Tenants    []TenantResult `json:"tenants"`
}

// Succeeded reports whether every tenant in the cycle completed without error.
func (s PollSummary) Succeeded() bool {
	for _, t := range s.Tenants {
		if t.Status == TenantResultFailed {
			return false
		}
	}
	return true
}

func (s PollSummary) EventsEmitted() int {
	n := 0
	for _, t := range s.Tenants {
		n += t.EventsEmitted
	}
	return n
}

func (s PollSummary) Failed() []TenantResult {
	failed := []TenantResult{}
	for _, t := range s.Tenants {
		if t.Status == TenantResultFailed {
			failed = append(failed, t)
		}
	}
	return failed
}

type AggregationError struct {
	TenantID string `json:"tenantID"`
	Room     string `json:"room,omitempty"`
	Date     string `json:"date,omitempty"`
	Error    string `json:"error"`
}

type WindowSummary struct {
	Since        time.Time          `json:"since"`
	Events       int                `json:"events"`
	Unattributed int                `json:"unattributed"`
	Windows      int                `json:"windows"`
	Errors       []AggregationError `json:"errors,omitempty"`
}

type DailySummary struct {
	Tenants int                `json:"tenants"`
	Rows    int                `json:"rows"`
	Errors  []AggregationError `json:"errors,omitempty"`
}

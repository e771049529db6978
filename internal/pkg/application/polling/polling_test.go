package polling

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/diwise/home-activity-sync/internal/pkg/application/tokens"
	"github.com/diwise/home-activity-sync/internal/pkg/infrastructure/hue"
	"github.com/diwise/home-activity-sync/internal/pkg/infrastructure/messaging"
	"github.com/diwise/home-activity-sync/pkg/types"
	"github.com/matryer/is"
)

var fetchedAt = time.Date(2024, 1, 1, 10, 5, 0, 0, time.UTC)

func TestThatOneTenantsAuthFailureDoesNotAffectOthers(t *testing.T) {
	is, store, vendor, tm := testSetup(t)

	store.GetActiveTenantsFunc = func(ctx context.Context) ([]types.TenantConfig, error) {
		return []types.TenantConfig{{ID: "A"}, {ID: "B"}}, nil
	}
	tm.EnsureValidAccessTokenFunc = func(ctx context.Context, tenant *types.TenantConfig) (string, error) {
		if tenant.ID == "A" {
			return "", fmt.Errorf("%w: invalid_grant", tokens.ErrAuthExpired)
		}
		return "token-" + tenant.ID, nil
	}

	summary, err := New(store, vendor, tm, nil, nil, nil).RunPollCycle(context.Background())
	is.NoErr(err)

	is.Equal(len(summary.Tenants), 2)
	is.Equal(summary.Tenants[0].Status, types.TenantResultFailed)
	is.Equal(summary.Tenants[0].ErrorKind, types.ErrorKindAuthExpired)
	is.Equal(summary.Tenants[1].Status, types.TenantResultOK)
	is.Equal(summary.Tenants[1].EventsEmitted, 1)
	is.True(!summary.Succeeded())

	is.Equal(len(vendor.FetchAllCalls()), 1)
	is.Equal(vendor.FetchAllCalls()[0].Creds.AccessToken, "token-B")

	is.Equal(len(store.InsertEventsCalls()), 1)
	is.Equal(store.InsertEventsCalls()[0].Events[0].TenantID, "B")
	is.Equal(len(store.MarkTenantSyncedCalls()), 1)
}

func TestThatTokenIsEnsuredBeforeVendorIsCalled(t *testing.T) {
	is, store, vendor, tm := testSetup(t)

	order := []string{}
	tm.EnsureValidAccessTokenFunc = func(ctx context.Context, tenant *types.TenantConfig) (string, error) {
		order = append(order, "token")
		return "token", nil
	}
	fetch := vendor.FetchAllFunc
	vendor.FetchAllFunc = func(ctx context.Context, creds hue.Credentials) (*hue.Snapshot, error) {
		order = append(order, "fetch")
		return fetch(ctx, creds)
	}

	_, err := New(store, vendor, tm, nil, nil, nil).RunPollCycle(context.Background())
	is.NoErr(err)
	is.Equal(order, []string{"token", "fetch"})
}

func TestMotionPulseIsPersistedAndPublished(t *testing.T) {
	is, store, vendor, tm := testSetup(t)

	publisher := &messaging.PublisherMock{
		PublishOnTopicFunc: func(ctx context.Context, message messaging.TopicMessage) error {
			return nil
		},
	}

	summary, err := New(store, vendor, tm, publisher, nil, nil).RunPollCycle(context.Background())
	is.NoErr(err)
	is.True(summary.Succeeded())

	result := summary.Tenants[0]
	is.Equal(result.DevicesSeen, 2)
	is.Equal(result.DevicesDiscovered, 1) // the light
	is.Equal(result.EventsEmitted, 1)

	events := store.InsertEventsCalls()[0].Events
	is.Equal(events[0].DeviceID, "motion-1")
	is.Equal(events[0].OccurredAt, time.Date(2024, 1, 1, 10, 3, 0, 0, time.UTC))
	is.Equal(events[0].RoomName(), "Kitchen")

	is.Equal(len(publisher.PublishOnTopicCalls()), 1)
	is.Equal(publisher.PublishOnTopicCalls()[0].Message.TopicName(), types.TopicActivityRegistered)

	upserted := map[string]types.Device{}
	for _, c := range store.UpsertDeviceCalls() {
		upserted[c.D.UniqueID] = c.D
	}
	is.Equal(upserted["00:17:88:01:aa:aa:aa:aa-02-0406"].State[hue.StateLastUpdated], "2024-01-01T10:03:00")
}

func TestThatVendorOutageIsReportedPerTenant(t *testing.T) {
	is, store, vendor, tm := testSetup(t)

	store.GetActiveTenantsFunc = func(ctx context.Context) ([]types.TenantConfig, error) {
		return []types.TenantConfig{{ID: "A"}, {ID: "B"}}, nil
	}
	fetch := vendor.FetchAllFunc
	vendor.FetchAllFunc = func(ctx context.Context, creds hue.Credentials) (*hue.Snapshot, error) {
		if creds.ApplicationKey == "" {
			return nil, &hue.StatusError{Endpoint: "lights", StatusCode: 503}
		}
		return fetch(ctx, creds)
	}
	tm.EnsureValidAccessTokenFunc = func(ctx context.Context, tenant *types.TenantConfig) (string, error) {
		if tenant.ID == "B" {
			tenant.ApplicationKey = "key"
		}
		return "token", nil
	}

	summary, err := New(store, vendor, tm, nil, nil, nil).RunPollCycle(context.Background())
	is.NoErr(err)
	is.Equal(summary.Tenants[0].ErrorKind, types.ErrorKindVendorUnavailable)
	is.Equal(summary.Tenants[1].Status, types.TenantResultOK)
}

func TestThatFailedDeviceWriteDoesNotStopSiblings(t *testing.T) {
	is, store, vendor, tm := testSetup(t)

	store.UpsertDeviceFunc = func(ctx context.Context, d types.Device) (string, error) {
		if d.Class == types.ClassMotionSensor {
			return "", errors.New("connection reset")
		}
		return d.ID, nil
	}

	summary, err := New(store, vendor, tm, nil, nil, nil).RunPollCycle(context.Background())
	is.NoErr(err)

	result := summary.Tenants[0]
	is.Equal(result.Status, types.TenantResultFailed)
	is.Equal(result.ErrorKind, types.ErrorKindPersistenceFailure)
	is.Equal(len(result.PersistenceErrors), 1)
	is.Equal(result.DevicesUpdated, 1)
	is.Equal(result.EventsEmitted, 1)
	is.Equal(len(store.InsertEventsCalls()), 1)
}

func TestThatSnapshotsAreNotAdvancedWhenEventsCannotBeStored(t *testing.T) {
	is, store, vendor, tm := testSetup(t)

	store.InsertEventsFunc = func(ctx context.Context, events []types.ActivityEvent) error {
		return errors.New("connection reset")
	}

	summary, err := New(store, vendor, tm, nil, nil, nil).RunPollCycle(context.Background())
	is.NoErr(err)

	result := summary.Tenants[0]
	is.Equal(result.Status, types.TenantResultFailed)
	is.Equal(result.ErrorKind, types.ErrorKindPersistenceFailure)
	is.Equal(result.EventsEmitted, 0)
	is.Equal(len(store.UpsertDeviceCalls()), 0)
	is.Equal(len(store.MarkTenantSyncedCalls()), 0)
}

func TestThatLockedTenantIsSkipped(t *testing.T) {
	is, store, vendor, tm := testSetup(t)

	store.LockTenantFunc = func(ctx context.Context, tenantID string) (func(), bool, error) {
		return nil, false, nil
	}

	summary, err := New(store, vendor, tm, nil, nil, nil).RunPollCycle(context.Background())
	is.NoErr(err)
	is.Equal(summary.Tenants[0].Status, types.TenantResultSkipped)
	is.True(summary.Succeeded())
	is.Equal(len(vendor.FetchAllCalls()), 0)
}

func TestThatOverlappingCyclesAreRejected(t *testing.T) {
	is, store, vendor, tm := testSetup(t)

	p := New(store, vendor, tm, nil, nil, nil)
	p.running.Lock()
	defer p.running.Unlock()

	_, err := p.RunPollCycle(context.Background())
	is.True(errors.Is(err, ErrCycleInProgress))
}

func TestThatTenantEnumerationFailureIsAnError(t *testing.T) {
	is, store, vendor, tm := testSetup(t)

	store.GetActiveTenantsFunc = func(ctx context.Context) ([]types.TenantConfig, error) {
		return nil, errors.New("db down")
	}

	_, err := New(store, vendor, tm, nil, nil, nil).RunPollCycle(context.Background())
	is.True(errors.Is(err, ErrPersistenceFailure))
}

func TestBatteryCycleUpdatesKnownSensorsOnly(t *testing.T) {
	is, store, vendor, tm := testSetup(t)

	vendor.FetchSensorsFunc = func(ctx context.Context, creds hue.Credentials) (map[string]hue.LegacySensor, error) {
		return map[string]hue.LegacySensor{
			"5": {UniqueID: "00:17:88:01:aa:aa:aa:aa-02-0406", Config: hue.LegacySensorConfig{Battery: intPtr(42)}},
			"6": {UniqueID: "unknown", Config: hue.LegacySensorConfig{Battery: intPtr(10)}},
		}, nil
	}

	summary, err := New(store, vendor, tm, nil, nil, nil).RunBatteryCycle(context.Background())
	is.NoErr(err)
	is.Equal(summary.Tenants[0].DevicesUpdated, 1)

	calls := store.UpdateBatteryLevelCalls()
	is.Equal(len(calls), 1)
	is.Equal(calls[0].Level, 42)
	is.Equal(len(store.UpsertDeviceCalls()), 0)
	is.Equal(len(store.InsertEventsCalls()), 0)
}

func testSetup(t *testing.T) (*is.I, *StoreMock, *VendorClientMock, *TokenManagerMock) {
	is := is.New(t)

	kitchen := "Kitchen"

	store := &StoreMock{
		GetActiveTenantsFunc: func(ctx context.Context) ([]types.TenantConfig, error) {
			return []types.TenantConfig{{ID: "T", ApplicationKey: "key"}}, nil
		},
		LockTenantFunc: func(ctx context.Context, tenantID string) (func(), bool, error) {
			return func() {}, true, nil
		},
		GetDevicesForFunc: func(ctx context.Context, tenantID string) ([]types.Device, error) {
			return []types.Device{
				{
					ID:           "motion-1",
					TenantID:     tenantID,
					UniqueID:     "00:17:88:01:aa:aa:aa:aa-02-0406",
					Class:        types.ClassMotionSensor,
					Room:         &kitchen,
					State:        types.State{"presence": true, "lastupdated": "2024-01-01T10:00:00"},
					BatteryLevel: intPtr(90),
				},
			}, nil
		},
		UpsertDeviceFunc: func(ctx context.Context, d types.Device) (string, error) {
			return d.ID, nil
		},
		InsertEventsFunc: func(ctx context.Context, events []types.ActivityEvent) error {
			return nil
		},
		MarkTenantSyncedFunc: func(ctx context.Context, tenantID string, syncedAt time.Time) error {
			return nil
		},
		UpdateBatteryLevelFunc: func(ctx context.Context, tenantID string, uniqueID string, level int) error {
			return nil
		},
	}

	vendor := &VendorClientMock{
		FetchAllFunc: func(ctx context.Context, creds hue.Credentials) (*hue.Snapshot, error) {
			return testSnapshot(), nil
		},
	}

	tm := &TokenManagerMock{
		EnsureValidAccessTokenFunc: func(ctx context.Context, tenant *types.TenantConfig) (string, error) {
			return "token", nil
		},
	}

	return is, store, vendor, tm
}

func testSnapshot() *hue.Snapshot {
	presence := true
	on := true

	return &hue.Snapshot{
		FetchedAt: fetchedAt,
		Lights: map[string]hue.LegacyLight{
			"1": {Name: "Ceiling", Type: "Extended color light", UniqueID: "00:17:88:01:aa:aa:aa:aa-0b", State: hue.LegacyLightState{On: &on}},
		},
		Sensors: map[string]hue.LegacySensor{
			"1": {Name: "Daylight", Type: "Daylight"},
			"5": {
				Name:     "Kitchen motion",
				Type:     "ZLLPresence",
				UniqueID: "00:17:88:01:aa:aa:aa:aa-02-0406",
				State:    hue.LegacySensorState{Presence: &presence, LastUpdated: "2024-01-01T10:03:00"},
			},
		},
		Groups: map[string]hue.LegacyGroup{
			"1": {Name: "Kitchen", Type: hue.LegacyGroupTypeRoom, Lights: []string{"1"}},
		},
		Rooms:    []hue.RoomResource{},
		Devices:  []hue.DeviceResource{},
		Contacts: []hue.ContactResource{},
	}
}

func intPtr(i int) *int {
	return &i
}

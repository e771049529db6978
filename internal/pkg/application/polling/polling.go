package polling

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/diwise/home-activity-sync/internal/pkg/application/classifier"
	"github.com/diwise/home-activity-sync/internal/pkg/application/registry"
	"github.com/diwise/home-activity-sync/internal/pkg/application/rooms"
	"github.com/diwise/home-activity-sync/internal/pkg/application/tokens"
	"github.com/diwise/home-activity-sync/internal/pkg/infrastructure/hue"
	"github.com/diwise/home-activity-sync/internal/pkg/infrastructure/logging"
	"github.com/diwise/home-activity-sync/internal/pkg/infrastructure/messaging"
	"github.com/diwise/home-activity-sync/internal/pkg/infrastructure/metrics"
	"github.com/diwise/home-activity-sync/internal/pkg/infrastructure/tracing"
	"github.com/diwise/home-activity-sync/pkg/types"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("home-activity-sync/polling")

var (
	ErrPersistenceFailure = errors.New("persistence failure")
	ErrCycleInProgress    = errors.New("a cycle is already in progress")
)

//go:generate moq -rm -out store_mock.go . Store
type Store interface {
	GetActiveTenants(ctx context.Context) ([]types.TenantConfig, error)
	GetDevicesFor(ctx context.Context, tenantID string) ([]types.Device, error)
	UpsertDevice(ctx context.Context, d types.Device) (string, error)
	UpdateBatteryLevel(ctx context.Context, tenantID, uniqueID string, level int) error
	InsertEvents(ctx context.Context, events []types.ActivityEvent) error
	MarkTenantSynced(ctx context.Context, tenantID string, syncedAt time.Time) error
	LockTenant(ctx context.Context, tenantID string) (func(), bool, error)
}

//go:generate moq -rm -out vendorclient_mock.go . VendorClient
type VendorClient interface {
	FetchAll(ctx context.Context, creds hue.Credentials) (*hue.Snapshot, error)
	FetchSensors(ctx context.Context, creds hue.Credentials) (map[string]hue.LegacySensor, error)
}

//go:generate moq -rm -out tokenmanager_mock.go . TokenManager
type TokenManager interface {
	EnsureValidAccessToken(ctx context.Context, tenant *types.TenantConfig) (string, error)
}

type Poller struct {
	store       Store
	vendor      VendorClient
	tokens      TokenManager
	publisher   messaging.Publisher
	metrics     *metrics.Metrics
	suffixWords []string
	now         func() time.Time

	running sync.Mutex
}

func New(store Store, vendor VendorClient, tokens TokenManager, publisher messaging.Publisher, m *metrics.Metrics, suffixWords []string) *Poller {
	if publisher == nil {
		publisher = messaging.NewNoopPublisher()
	}
	if m == nil {
		m = metrics.NewForTest()
	}

	return &Poller{
		store:       store,
		vendor:      vendor,
		tokens:      tokens,
		publisher:   publisher,
		metrics:     m,
		suffixWords: suffixWords,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// RunPollCycle synchronizes every active tenant in turn. Failures are recorded per
// tenant in the summary, only a failure to load the tenants is returned as an error.
func (p *Poller) RunPollCycle(ctx context.Context) (types.PollSummary, error) {
	return p.cycle(ctx, "poll", p.syncTenant)
}

// RunBatteryCycle refreshes the battery level of known sensors without touching their
// state snapshots.
func (p *Poller) RunBatteryCycle(ctx context.Context) (types.PollSummary, error) {
	return p.cycle(ctx, "battery", p.syncBattery)
}

type tenantFunc func(ctx context.Context, tenant types.TenantConfig, result *types.TenantResult) error

func (p *Poller) cycle(ctx context.Context, kind string, syncFn tenantFunc) (types.PollSummary, error) {
	if !p.running.TryLock() {
		return types.PollSummary{}, ErrCycleInProgress
	}
	defer p.running.Unlock()

	var err error
	ctx, span := tracer.Start(ctx, kind+"-cycle")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	log := logging.GetFromContext(ctx)

	summary := types.PollSummary{StartedAt: p.now(), Tenants: []types.TenantResult{}}

	tenants, err := p.store.GetActiveTenants(ctx)
	if err != nil {
		err = fmt.Errorf("%w: could not load tenants: %s", ErrPersistenceFailure, err.Error())
		return summary, err
	}

	for _, tenant := range tenants {
		summary.Tenants = append(summary.Tenants, p.runTenant(ctx, tenant, syncFn))
	}

	summary.FinishedAt = p.now()

	p.metrics.Cycles.WithLabelValues(kind).Inc()
	p.metrics.CycleDuration.WithLabelValues(kind).Observe(summary.FinishedAt.Sub(summary.StartedAt).Seconds())

	log.Info().
		Str("kind", kind).
		Int("tenants", len(summary.Tenants)).
		Int("failed", len(summary.Failed())).
		Int("events", summary.EventsEmitted()).
		Msg("cycle completed")

	return summary, nil
}

func (p *Poller) runTenant(ctx context.Context, tenant types.TenantConfig, syncFn tenantFunc) types.TenantResult {
	var err error
	ctx, span := tracer.Start(ctx, "tenant", trace.WithAttributes(attribute.String("tenant_id", tenant.ID)))
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	ctx, log := logging.WithTenant(ctx, tenant.ID)

	result := types.TenantResult{TenantID: tenant.ID, Status: types.TenantResultOK}

	unlock, locked, err := p.store.LockTenant(ctx, tenant.ID)
	if err != nil {
		err = fmt.Errorf("%w: could not lock tenant: %s", ErrPersistenceFailure, err.Error())
		p.fail(ctx, &result, err)
		return result
	}
	if !locked {
		log.Info().Msg("tenant is being synchronized elsewhere, skipping")
		result.Status = types.TenantResultSkipped
		return result
	}
	defer unlock()

	if err = syncFn(ctx, tenant, &result); err != nil {
		p.fail(ctx, &result, err)
		return result
	}

	if len(result.PersistenceErrors) > 0 {
		err = fmt.Errorf("%w: %d writes failed", ErrPersistenceFailure, len(result.PersistenceErrors))
		p.fail(ctx, &result, err)
	}

	return result
}

func (p *Poller) fail(ctx context.Context, result *types.TenantResult, err error) {
	log := logging.GetFromContext(ctx)

	result.Status = types.TenantResultFailed
	result.ErrorKind = ErrorKind(err)
	result.Error = err.Error()

	p.metrics.TenantFailures.WithLabelValues(result.ErrorKind).Inc()

	log.Error().Err(err).Str("kind", result.ErrorKind).Msg("tenant sync failed")
}

// ErrorKind classifies an error from a tenant sync.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, tokens.ErrAuthExpired):
		return types.ErrorKindAuthExpired
	case errors.Is(err, hue.ErrVendorUnavailable):
		return types.ErrorKindVendorUnavailable
	case errors.Is(err, ErrPersistenceFailure):
		return types.ErrorKindPersistenceFailure
	}
	return types.ErrorKindUnknown
}

func (p *Poller) credentials(ctx context.Context, tenant *types.TenantConfig) (hue.Credentials, error) {
	token, err := p.tokens.EnsureValidAccessToken(ctx, tenant)
	if err != nil {
		if !errors.Is(err, tokens.ErrAuthExpired) {
			err = fmt.Errorf("%w: %s", ErrPersistenceFailure, err.Error())
		}
		return hue.Credentials{}, err
	}

	return hue.Credentials{AccessToken: token, ApplicationKey: tenant.ApplicationKey}, nil
}

func (p *Poller) syncTenant(ctx context.Context, tenant types.TenantConfig, result *types.TenantResult) error {
	log := logging.GetFromContext(ctx)

	creds, err := p.credentials(ctx, &tenant)
	if err != nil {
		return err
	}

	snapshot, err := p.vendor.FetchAll(ctx, creds)
	if err != nil {
		return err
	}

	pollTime := snapshot.FetchedAt
	if pollTime.IsZero() {
		pollTime = p.now()
	}

	known, err := p.store.GetDevicesFor(ctx, tenant.ID)
	if err != nil {
		return fmt.Errorf("%w: could not load devices: %s", ErrPersistenceFailure, err.Error())
	}

	vendorDevices := hue.Extract(snapshot)
	resolver := rooms.NewResolver(snapshot, vendorDevices, p.suffixWords)
	reg := registry.New(tenant.ID, known)

	updates := []types.Device{}
	events := []types.ActivityEvent{}

	for _, vd := range vendorDevices {
		device, created, err := reg.UpsertDiscovered(vd, resolver.Room(vd))
		if errors.Is(err, registry.ErrUnsupportedDevice) {
			continue
		}

		result.DevicesSeen++
		if created {
			result.DevicesDiscovered++
			log.Info().Str("unique_id", device.UniqueID).Str("class", string(device.Class)).Msg("discovered new device")
		}

		updated, event := classifier.UpsertSnapshot(device, vd, pollTime)
		updates = append(updates, updated)

		if event != nil {
			events = append(events, *event)
		}
	}

	// snapshots only advance once the events derived from them are stored, so a
	// failed insert is detected again by the next poll
	if len(events) > 0 {
		if err := p.store.InsertEvents(ctx, events); err != nil {
			return fmt.Errorf("%w: could not store %d events: %s", ErrPersistenceFailure, len(events), err.Error())
		}

		result.EventsEmitted = len(events)

		for _, e := range events {
			p.metrics.Events.WithLabelValues(string(e.Class)).Inc()
		}

		p.publish(ctx, tenant.ID, events)
	}

	for _, updated := range updates {
		id, err := p.store.UpsertDevice(ctx, updated)
		if err != nil {
			log.Error().Err(err).Str("device_id", updated.ID).Msg("failed to store device")
			result.PersistenceErrors = append(result.PersistenceErrors, fmt.Sprintf("device %s: %s", updated.UniqueID, err.Error()))
			continue
		}

		if id != "" {
			updated.ID = id
		}

		reg.Update(updated)
		result.DevicesUpdated++
	}

	if err := p.store.MarkTenantSynced(ctx, tenant.ID, pollTime); err != nil {
		result.PersistenceErrors = append(result.PersistenceErrors, fmt.Sprintf("last sync: %s", err.Error()))
	}

	log.Debug().
		Int("seen", result.DevicesSeen).
		Int("discovered", result.DevicesDiscovered).
		Int("events", result.EventsEmitted).
		Msg("tenant synchronized")

	return nil
}

func (p *Poller) publish(ctx context.Context, tenantID string, events []types.ActivityEvent) {
	log := logging.GetFromContext(ctx)

	for _, e := range events {
		msg := &types.ActivityRegistered{Event: e, Tenant: tenantID, Timestamp: p.now()}
		if err := p.publisher.PublishOnTopic(ctx, msg); err != nil {
			p.metrics.PublishErrors.Inc()
			log.Warn().Err(err).Str("event_id", e.ID).Msg("failed to publish activity event")
		}
	}
}

func (p *Poller) syncBattery(ctx context.Context, tenant types.TenantConfig, result *types.TenantResult) error {
	creds, err := p.credentials(ctx, &tenant)
	if err != nil {
		return err
	}

	sensors, err := p.vendor.FetchSensors(ctx, creds)
	if err != nil {
		return err
	}

	known, err := p.store.GetDevicesFor(ctx, tenant.ID)
	if err != nil {
		return fmt.Errorf("%w: could not load devices: %s", ErrPersistenceFailure, err.Error())
	}

	reg := registry.New(tenant.ID, known)

	for _, s := range sensors {
		if s.UniqueID == "" || s.Config.Battery == nil {
			continue
		}

		device, ok := reg.Get(s.UniqueID)
		if !ok {
			continue
		}

		result.DevicesSeen++

		if device.BatteryLevel != nil && *device.BatteryLevel == *s.Config.Battery {
			continue
		}

		if err := p.store.UpdateBatteryLevel(ctx, tenant.ID, s.UniqueID, *s.Config.Battery); err != nil {
			result.PersistenceErrors = append(result.PersistenceErrors, fmt.Sprintf("battery %s: %s", s.UniqueID, err.Error()))
			continue
		}

		result.DevicesUpdated++
	}

	return nil
}

package hue

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/diwise/home-activity-sync/internal/pkg/infrastructure/logging"
	"github.com/diwise/home-activity-sync/internal/pkg/infrastructure/tracing"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultLegacyURL   = "https://api.meethue.com/bridge"
	DefaultResourceURL = "https://api.meethue.com/route/clip/v2"
	DefaultTokenURL    = "https://api.meethue.com/v2/oauth2/token"

	defaultTimeout = 15 * time.Second

	applicationKeyHeader = "hue-application-key"
)

var tracer = otel.Tracer("home-activity-sync/hue")

type Config struct {
	LegacyURL    string
	ResourceURL  string
	TokenURL     string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

type Client struct {
	cfg        Config
	httpClient *http.Client
	now        func() time.Time
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return NewClientWithHTTPClient(cfg, &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	})
}

func NewClientWithHTTPClient(cfg Config, httpClient *http.Client) *Client {
	if cfg.LegacyURL == "" {
		cfg.LegacyURL = DefaultLegacyURL
	}
	if cfg.ResourceURL == "" {
		cfg.ResourceURL = DefaultResourceURL
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = DefaultTokenURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if httpClient.Timeout == 0 {
		httpClient.Timeout = defaultTimeout
	}

	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// FetchAll issues every read for a tenant concurrently. A failure of the legacy
// endpoints aborts the fetch, the resource endpoints degrade to empty collections.
func (c *Client) FetchAll(ctx context.Context, creds Credentials) (*Snapshot, error) {
	var err error
	ctx, span := tracer.Start(ctx, "fetch-all")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	snapshot := &Snapshot{FetchedAt: c.now()}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		snapshot.Lights, err = c.FetchLights(gctx, creds)
		return
	})
	g.Go(func() (err error) {
		snapshot.Sensors, err = c.FetchSensors(gctx, creds)
		return
	})
	g.Go(func() (err error) {
		snapshot.Groups, err = c.FetchGroups(gctx, creds)
		return
	})
	g.Go(func() error {
		snapshot.Contacts = optional(gctx, "contact", func() ([]ContactResource, error) {
			return c.FetchContactSensors(gctx, creds)
		})
		return nil
	})
	g.Go(func() error {
		snapshot.Rooms = optional(gctx, "room", func() ([]RoomResource, error) {
			return c.FetchRoomResources(gctx, creds)
		})
		return nil
	})
	g.Go(func() error {
		snapshot.Devices = optional(gctx, "device", func() ([]DeviceResource, error) {
			return c.FetchDeviceResources(gctx, creds)
		})
		return nil
	})

	if err = g.Wait(); err != nil {
		return nil, err
	}

	return snapshot, nil
}

func optional[T any](ctx context.Context, resource string, fetch func() ([]T, error)) []T {
	items, err := fetch()
	if err != nil {
		log := logging.GetFromContext(ctx)
		log.Warn().Err(err).Str("resource", resource).Msg("optional resource unavailable, continuing without it")
		return []T{}
	}
	return items
}

func (c *Client) FetchLights(ctx context.Context, creds Credentials) (map[string]LegacyLight, error) {
	lights := map[string]LegacyLight{}
	err := c.getLegacy(ctx, creds, "lights", &lights)
	return lights, err
}

func (c *Client) FetchSensors(ctx context.Context, creds Credentials) (map[string]LegacySensor, error) {
	sensors := map[string]LegacySensor{}
	err := c.getLegacy(ctx, creds, "sensors", &sensors)
	return sensors, err
}

func (c *Client) FetchGroups(ctx context.Context, creds Credentials) (map[string]LegacyGroup, error) {
	groups := map[string]LegacyGroup{}
	err := c.getLegacy(ctx, creds, "groups", &groups)
	return groups, err
}

func (c *Client) FetchContactSensors(ctx context.Context, creds Credentials) ([]ContactResource, error) {
	return getResource[ContactResource](ctx, c, creds, "contact")
}

func (c *Client) FetchRoomResources(ctx context.Context, creds Credentials) ([]RoomResource, error) {
	return getResource[RoomResource](ctx, c, creds, "room")
}

func (c *Client) FetchDeviceResources(ctx context.Context, creds Credentials) ([]DeviceResource, error) {
	return getResource[DeviceResource](ctx, c, creds, "device")
}

// RefreshToken exchanges a refresh token for a new token pair using the client
// credentials as basic auth.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	var err error
	ctx, span := tracer.Start(ctx, "refresh-token")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	cfg := oauth2.Config{
		ClientID:     c.cfg.ClientID,
		ClientSecret: c.cfg.ClientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL:  c.cfg.TokenURL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)

	token, err := cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		return nil, err
	}

	return token, nil
}

func (c *Client) getLegacy(ctx context.Context, creds Credentials, endpoint string, result any) error {
	url := fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(c.cfg.LegacyURL, "/"), creds.ApplicationKey, endpoint)
	return c.get(ctx, endpoint, url, creds.AccessToken, nil, result)
}

func getResource[T any](ctx context.Context, c *Client, creds Credentials, resource string) ([]T, error) {
	url := fmt.Sprintf("%s/resource/%s", strings.TrimSuffix(c.cfg.ResourceURL, "/"), resource)
	headers := map[string]string{applicationKeyHeader: creds.ApplicationKey}

	envelope := resourceEnvelope[T]{}
	err := c.get(ctx, resource, url, creds.AccessToken, headers, &envelope)
	if err != nil {
		return nil, err
	}

	if len(envelope.Errors) > 0 && len(envelope.Data) == 0 {
		return nil, unavailable(resource, fmt.Errorf("%s", envelope.Errors[0].Description))
	}

	if envelope.Data == nil {
		return []T{}, nil
	}

	return envelope.Data, nil
}

func (c *Client) get(ctx context.Context, endpoint, url, token string, headers map[string]string, result any) error {
	var err error
	ctx, span := tracer.Start(ctx, "get-"+endpoint)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		err = fmt.Errorf("failed to create http request: %w", err)
		return err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = unavailable(endpoint, err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		io.Copy(io.Discard, resp.Body)
		err = &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode}
		return err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		err = unavailable(endpoint, err)
		return err
	}

	if err = json.Unmarshal(body, result); err != nil {
		err = unavailable(endpoint, fmt.Errorf("failed to unmarshal response body: %w", err))
		return err
	}

	return nil
}

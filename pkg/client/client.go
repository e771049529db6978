package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/diwise/home-activity-sync/internal/pkg/infrastructure/tracing"
	"github.com/diwise/home-activity-sync/pkg/types"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

var tracer = otel.Tracer("home-activity-sync-client")

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("a cycle is already running")
)

// ActivityClient triggers synchronization and reads aggregates from a
// home-activity-sync service.
type ActivityClient interface {
	RunPollCycle(ctx context.Context) (types.PollSummary, error)
	RunBatteryCycle(ctx context.Context) (types.PollSummary, error)
	AggregateWindows(ctx context.Context, lookbackMinutes int) (types.WindowSummary, error)
	RefreshDailyStats(ctx context.Context, tenantID string, days int) (types.DailySummary, error)
	GetActivityWindows(ctx context.Context, tenantID string, since time.Time) ([]types.ActivityWindow, error)
	GetDailyStats(ctx context.Context, tenantID, date string) (types.DailyStats, error)
	GetRecentEvents(ctx context.Context, tenantID string, limit int) ([]types.ActivityEvent, error)
}

type activityClient struct {
	url        string
	httpClient *http.Client
}

// New creates a client that authenticates with tokens from ts. A nil token source
// sends unauthenticated requests.
func New(ctx context.Context, serviceURL string, ts oauth2.TokenSource) ActivityClient {
	httpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	if ts != nil {
		httpClient.Transport = &oauth2.Transport{
			Source: oauth2.ReuseTokenSource(nil, ts),
			Base:   httpClient.Transport,
		}
	}

	return &activityClient{
		url:        strings.TrimSuffix(serviceURL, "/"),
		httpClient: httpClient,
	}
}

// NewWithClientCredentials creates a client that fetches its tokens from an oauth2
// token endpoint using the client credentials grant.
func NewWithClientCredentials(ctx context.Context, serviceURL, oauthTokenURL, clientID, clientSecret string) (ActivityClient, error) {
	oauthConfig := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     oauthTokenURL,
	}

	ts := oauthConfig.TokenSource(ctx)

	if _, err := ts.Token(); err != nil {
		return nil, fmt.Errorf("failed to get client credentials from %s: %w", oauthTokenURL, err)
	}

	return New(ctx, serviceURL, ts), nil
}

func (c *activityClient) RunPollCycle(ctx context.Context) (types.PollSummary, error) {
	summary := types.PollSummary{}
	err := c.do(ctx, "run-poll-cycle", http.MethodPost, "/api/v0/poll", nil, &summary)
	return summary, err
}

func (c *activityClient) RunBatteryCycle(ctx context.Context) (types.PollSummary, error) {
	summary := types.PollSummary{}
	err := c.do(ctx, "run-battery-cycle", http.MethodPost, "/api/v0/battery", nil, &summary)
	return summary, err
}

func (c *activityClient) AggregateWindows(ctx context.Context, lookbackMinutes int) (types.WindowSummary, error) {
	params := url.Values{}
	if lookbackMinutes > 0 {
		params.Set("minutes", strconv.Itoa(lookbackMinutes))
	}

	summary := types.WindowSummary{}
	err := c.do(ctx, "aggregate-windows", http.MethodPost, "/api/v0/windows", params, &summary)
	return summary, err
}

func (c *activityClient) RefreshDailyStats(ctx context.Context, tenantID string, days int) (types.DailySummary, error) {
	params := url.Values{}
	if tenantID != "" {
		params.Set("tenant", tenantID)
	}
	if days > 0 {
		params.Set("days", strconv.Itoa(days))
	}

	summary := types.DailySummary{}
	err := c.do(ctx, "refresh-daily-stats", http.MethodPost, "/api/v0/dailystats", params, &summary)
	return summary, err
}

func (c *activityClient) GetActivityWindows(ctx context.Context, tenantID string, since time.Time) ([]types.ActivityWindow, error) {
	params := url.Values{}
	params.Set("since", since.UTC().Format(time.RFC3339))

	windows := []types.ActivityWindow{}
	err := c.do(ctx, "get-activity-windows", http.MethodGet, "/api/v0/tenants/"+url.PathEscape(tenantID)+"/windows", params, &windows)
	return windows, err
}

func (c *activityClient) GetDailyStats(ctx context.Context, tenantID, date string) (types.DailyStats, error) {
	stats := types.DailyStats{}
	err := c.do(ctx, "get-daily-stats", http.MethodGet, "/api/v0/tenants/"+url.PathEscape(tenantID)+"/dailystats/"+url.PathEscape(date), nil, &stats)
	return stats, err
}

func (c *activityClient) GetRecentEvents(ctx context.Context, tenantID string, limit int) ([]types.ActivityEvent, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	events := []types.ActivityEvent{}
	err := c.do(ctx, "get-recent-events", http.MethodGet, "/api/v0/tenants/"+url.PathEscape(tenantID)+"/events", params, &events)
	return events, err
}

func (c *activityClient) do(ctx context.Context, operation, method, path string, params url.Values, result any) error {
	var err error
	ctx, span := tracer.Start(ctx, operation)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	u := c.url + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		err = fmt.Errorf("failed to create http request: %w", err)
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = fmt.Errorf("request to %s failed: %w", path, err)
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		err = fmt.Errorf("failed to read response body: %w", err)
		return err
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		err = fmt.Errorf("%w: %s", ErrNotFound, path)
		return err
	case http.StatusConflict:
		err = ErrConflict
		return err
	default:
		err = fmt.Errorf("request to %s failed with status code %d: %s", path, resp.StatusCode, errorMessage(body))
		return err
	}

	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}

	if err = json.Unmarshal(body, &envelope); err == nil {
		err = json.Unmarshal(envelope.Data, result)
	}
	if err != nil {
		err = fmt.Errorf("failed to unmarshal response body: %w", err)
		return err
	}

	return nil
}

func errorMessage(body []byte) string {
	e := struct {
		Error string `json:"error"`
	}{}
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		return e.Error
	}
	return string(body)
}

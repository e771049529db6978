package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/diwise/home-activity-sync/internal/pkg/application/aggregation"
	"github.com/diwise/home-activity-sync/internal/pkg/application/polling"
	"github.com/diwise/home-activity-sync/internal/pkg/infrastructure/router"
	"github.com/diwise/home-activity-sync/internal/pkg/infrastructure/storage"
	"github.com/diwise/home-activity-sync/internal/pkg/presentation/api/auth"
	"github.com/diwise/home-activity-sync/pkg/types"
	"github.com/matryer/is"
	"github.com/prometheus/client_golang/prometheus"
)

func TestHealthIsUnauthenticated(t *testing.T) {
	is, _, _, server := testSetup(t, "secret")
	defer server.Close()

	resp, _ := testRequest(is, server, http.MethodGet, "/health", "")
	is.Equal(resp.StatusCode, http.StatusNoContent)
}

func TestMetricsAreExposed(t *testing.T) {
	is, _, _, server := testSetup(t, "")
	defer server.Close()

	resp, body := testRequest(is, server, http.MethodGet, "/metrics", "")
	is.Equal(resp.StatusCode, http.StatusOK)
	is.True(strings.Contains(body, "test_requests_total"))
}

func TestPollReturnsSummaryEvenWhenTenantsFail(t *testing.T) {
	is, poller, _, server := testSetup(t, "")
	defer server.Close()

	poller.RunPollCycleFunc = func(ctx context.Context) (types.PollSummary, error) {
		return types.PollSummary{Tenants: []types.TenantResult{
			{TenantID: "t1", Status: types.TenantResultOK, EventsEmitted: 2},
			{TenantID: "t2", Status: types.TenantResultFailed, ErrorKind: types.ErrorKindAuthExpired},
		}}, nil
	}

	resp, body := testRequest(is, server, http.MethodPost, "/api/v0/poll", "")
	is.Equal(resp.StatusCode, http.StatusOK)

	var response struct {
		Data types.PollSummary `json:"data"`
	}
	is.NoErr(json.Unmarshal([]byte(body), &response))
	is.Equal(len(response.Data.Tenants), 2)
	is.Equal(response.Data.Tenants[1].ErrorKind, types.ErrorKindAuthExpired)
}

func TestPollConflictsWhenCycleIsRunning(t *testing.T) {
	is, poller, _, server := testSetup(t, "")
	defer server.Close()

	poller.RunPollCycleFunc = func(ctx context.Context) (types.PollSummary, error) {
		return types.PollSummary{}, polling.ErrCycleInProgress
	}

	resp, _ := testRequest(is, server, http.MethodPost, "/api/v0/poll", "")
	is.Equal(resp.StatusCode, http.StatusConflict)
}

func TestPollFailsWhenTenantsCannotBeLoaded(t *testing.T) {
	is, poller, _, server := testSetup(t, "")
	defer server.Close()

	poller.RunPollCycleFunc = func(ctx context.Context) (types.PollSummary, error) {
		return types.PollSummary{}, polling.ErrPersistenceFailure
	}

	resp, body := testRequest(is, server, http.MethodPost, "/api/v0/poll", "")
	is.Equal(resp.StatusCode, http.StatusInternalServerError)
	is.True(strings.Contains(body, "persistence failure"))
}

func TestBatteryRunsBatteryCycle(t *testing.T) {
	is, poller, _, server := testSetup(t, "")
	defer server.Close()

	resp, _ := testRequest(is, server, http.MethodPost, "/api/v0/battery", "")
	is.Equal(resp.StatusCode, http.StatusOK)
	is.Equal(len(poller.RunBatteryCycleCalls()), 1)
	is.Equal(len(poller.RunPollCycleCalls()), 0)
}

func TestWindowsUsesLookbackParameter(t *testing.T) {
	is, _, aggregator, server := testSetup(t, "")
	defer server.Close()

	resp, _ := testRequest(is, server, http.MethodPost, "/api/v0/windows?minutes=15", "")
	is.Equal(resp.StatusCode, http.StatusOK)
	is.Equal(aggregator.AggregateWindowsCalls()[0].LookbackMinutes, 15)

	resp, _ = testRequest(is, server, http.MethodPost, "/api/v0/windows", "")
	is.Equal(resp.StatusCode, http.StatusOK)
	is.Equal(aggregator.AggregateWindowsCalls()[1].LookbackMinutes, aggregation.DefaultLookbackMinutes)
}

func TestWindowsRejectsInvalidLookback(t *testing.T) {
	is, _, aggregator, server := testSetup(t, "")
	defer server.Close()

	resp, _ := testRequest(is, server, http.MethodPost, "/api/v0/windows?minutes=soon", "")
	is.Equal(resp.StatusCode, http.StatusBadRequest)

	resp, _ = testRequest(is, server, http.MethodPost, "/api/v0/windows?minutes=-5", "")
	is.Equal(resp.StatusCode, http.StatusBadRequest)

	is.Equal(len(aggregator.AggregateWindowsCalls()), 0)
}

func TestDailyStatsForOneTenant(t *testing.T) {
	is, _, aggregator, server := testSetup(t, "")
	defer server.Close()

	resp, _ := testRequest(is, server, http.MethodPost, "/api/v0/dailystats?tenant=t1&days=7", "")
	is.Equal(resp.StatusCode, http.StatusOK)

	call := aggregator.RefreshDailyStatsCalls()[0]
	is.Equal(call.TenantID, "t1")
	is.Equal(call.Days, 7)
}

func TestDailyStatsForUnknownTenant(t *testing.T) {
	is, _, aggregator, server := testSetup(t, "")
	defer server.Close()

	aggregator.RefreshDailyStatsFunc = func(ctx context.Context, tenantID string, days int) (types.DailySummary, error) {
		return types.DailySummary{}, fmt.Errorf("%w: %s", aggregation.ErrUnknownTenant, tenantID)
	}

	resp, _ := testRequest(is, server, http.MethodPost, "/api/v0/dailystats?tenant=nope", "")
	is.Equal(resp.StatusCode, http.StatusNotFound)
}

func TestTriggersRequireTokenWhenSecretIsSet(t *testing.T) {
	is, poller, _, server := testSetup(t, "secret")
	defer server.Close()

	resp, _ := testRequest(is, server, http.MethodPost, "/api/v0/poll", "")
	is.Equal(resp.StatusCode, http.StatusUnauthorized)
	is.Equal(len(poller.RunPollCycleCalls()), 0)

	_, token, err := auth.NewTokenAuth("other secret").Encode(map[string]any{"sub": "scheduler"})
	is.NoErr(err)
	resp, _ = testRequest(is, server, http.MethodPost, "/api/v0/poll", token)
	is.Equal(resp.StatusCode, http.StatusUnauthorized)

	_, token, err = auth.NewTokenAuth("secret").Encode(map[string]any{"sub": "scheduler"})
	is.NoErr(err)
	resp, _ = testRequest(is, server, http.MethodPost, "/api/v0/poll", token)
	is.Equal(resp.StatusCode, http.StatusOK)
	is.Equal(len(poller.RunPollCycleCalls()), 1)
}

func TestGetActivityWindows(t *testing.T) {
	is := is.New(t)

	reader := &ReaderMock{
		GetActivityWindowsFunc: func(ctx context.Context, tenantID string, since time.Time) ([]types.ActivityWindow, error) {
			return []types.ActivityWindow{{TenantID: tenantID, Room: "Hallway", TriggerCount: 3}}, nil
		},
	}
	server := newTestServer("", &PollerMock{}, &AggregatorMock{}, reader)
	defer server.Close()

	resp, body := testRequest(is, server, http.MethodGet, "/api/v0/tenants/t1/windows?since=2024-03-01T10:00:00Z", "")
	is.Equal(resp.StatusCode, http.StatusOK)

	call := reader.GetActivityWindowsCalls()[0]
	is.Equal(call.TenantID, "t1")
	is.Equal(call.Since, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))

	var response struct {
		Data []types.ActivityWindow `json:"data"`
	}
	is.NoErr(json.Unmarshal([]byte(body), &response))
	is.Equal(response.Data[0].Room, "Hallway")

	resp, _ = testRequest(is, server, http.MethodGet, "/api/v0/tenants/t1/windows?since=yesterday", "")
	is.Equal(resp.StatusCode, http.StatusBadRequest)
}

func TestGetDailyStats(t *testing.T) {
	is := is.New(t)

	reader := &ReaderMock{
		GetDailyStatsFunc: func(ctx context.Context, tenantID string, date string) (types.DailyStats, error) {
			if date == "2024-03-02" {
				return types.DailyStats{}, storage.ErrNoRows
			}
			return types.DailyStats{TenantID: tenantID, Date: date, TotalEvents: 12}, nil
		},
	}
	server := newTestServer("", &PollerMock{}, &AggregatorMock{}, reader)
	defer server.Close()

	resp, body := testRequest(is, server, http.MethodGet, "/api/v0/tenants/t1/dailystats/2024-03-01", "")
	is.Equal(resp.StatusCode, http.StatusOK)
	is.True(strings.Contains(body, `"totalEvents":12`))

	resp, _ = testRequest(is, server, http.MethodGet, "/api/v0/tenants/t1/dailystats/2024-03-02", "")
	is.Equal(resp.StatusCode, http.StatusNotFound)

	resp, _ = testRequest(is, server, http.MethodGet, "/api/v0/tenants/t1/dailystats/march", "")
	is.Equal(resp.StatusCode, http.StatusBadRequest)
	is.Equal(len(reader.GetDailyStatsCalls()), 2)
}

func TestGetRecentEvents(t *testing.T) {
	is := is.New(t)

	reader := &ReaderMock{
		GetRecentEventsFunc: func(ctx context.Context, tenantID string, limit int) ([]types.ActivityEvent, error) {
			return []types.ActivityEvent{{ID: "e1", TenantID: tenantID, Class: types.ClassMotionSensor}}, nil
		},
	}
	server := newTestServer("", &PollerMock{}, &AggregatorMock{}, reader)
	defer server.Close()

	resp, body := testRequest(is, server, http.MethodGet, "/api/v0/tenants/t1/events", "")
	is.Equal(resp.StatusCode, http.StatusOK)
	is.True(strings.Contains(body, `"e1"`))

	resp, _ = testRequest(is, server, http.MethodGet, "/api/v0/tenants/t1/events?limit=5000", "")
	is.Equal(resp.StatusCode, http.StatusOK)

	resp, _ = testRequest(is, server, http.MethodGet, "/api/v0/tenants/t1/events?limit=none", "")
	is.Equal(resp.StatusCode, http.StatusBadRequest)

	calls := reader.GetRecentEventsCalls()
	is.Equal(len(calls), 2)
	is.Equal(calls[0].TenantID, "t1")
	is.Equal(calls[0].Limit, defaultEventLimit)
	is.Equal(calls[1].Limit, maxEventLimit)
}

func testSetup(t *testing.T, secret string) (*is.I, *PollerMock, *AggregatorMock, *httptest.Server) {
	is := is.New(t)

	poller := &PollerMock{
		RunPollCycleFunc: func(ctx context.Context) (types.PollSummary, error) {
			return types.PollSummary{Tenants: []types.TenantResult{}}, nil
		},
		RunBatteryCycleFunc: func(ctx context.Context) (types.PollSummary, error) {
			return types.PollSummary{Tenants: []types.TenantResult{}}, nil
		},
	}

	aggregator := &AggregatorMock{
		AggregateWindowsFunc: func(ctx context.Context, lookbackMinutes int) (types.WindowSummary, error) {
			return types.WindowSummary{}, nil
		},
		RefreshDailyStatsFunc: func(ctx context.Context, tenantID string, days int) (types.DailySummary, error) {
			return types.DailySummary{Tenants: 1, Rows: days}, nil
		},
	}

	return is, poller, aggregator, newTestServer(secret, poller, aggregator, &ReaderMock{})
}

func newTestServer(secret string, poller Poller, aggregator Aggregator, reader Reader) *httptest.Server {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_requests_total"})
	reg.MustRegister(counter)
	counter.Inc()

	r := router.New("home-activity-sync")
	RegisterHandlers(context.Background(), r, poller, aggregator, reader, secret, reg)

	return httptest.NewServer(r)
}

func testRequest(is *is.I, ts *httptest.Server, method, path, token string) (*http.Response, string) {
	req, _ := http.NewRequest(method, ts.URL+path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	is.NoErr(err)
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	return resp, string(respBody)
}

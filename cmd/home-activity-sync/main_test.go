package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/diwise/home-activity-sync/internal/pkg/application"
	"github.com/diwise/home-activity-sync/internal/pkg/application/rooms"
	"github.com/diwise/home-activity-sync/internal/pkg/presentation/api"
	"github.com/diwise/home-activity-sync/pkg/types"
	"github.com/matryer/is"
)

func TestSetup(t *testing.T) {
	is := is.New(t)

	r := createAppAndSetupRouter(context.Background(), envConfig{}, application.DefaultConfig(), &api.PollerMock{}, &api.AggregatorMock{}, &api.ReaderMock{})
	server := httptest.NewServer(r)
	defer server.Close()

	resp, _ := testRequest(is, server, http.MethodGet, "/health", nil)

	is.Equal(resp.StatusCode, http.StatusNoContent)
}

func TestThatTriggersRequireTokenWhenSecretIsConfigured(t *testing.T) {
	is := is.New(t)

	r := createAppAndSetupRouter(context.Background(), envConfig{JWTSecret: "s3cr3t"}, application.DefaultConfig(), &api.PollerMock{}, &api.AggregatorMock{}, &api.ReaderMock{})
	server := httptest.NewServer(r)
	defer server.Close()

	resp, _ := testRequest(is, server, http.MethodPost, "/api/v0/poll", nil)

	is.Equal(resp.StatusCode, http.StatusUnauthorized)
}

func TestScheduledJobsCallEntryPoints(t *testing.T) {
	is := is.New(t)

	poller := &api.PollerMock{
		RunPollCycleFunc: func(ctx context.Context) (types.PollSummary, error) {
			return types.PollSummary{}, nil
		},
		RunBatteryCycleFunc: func(ctx context.Context) (types.PollSummary, error) {
			return types.PollSummary{}, nil
		},
	}
	aggregator := &api.AggregatorMock{
		AggregateWindowsFunc: func(ctx context.Context, lookbackMinutes int) (types.WindowSummary, error) {
			return types.WindowSummary{}, nil
		},
		RefreshDailyStatsFunc: func(ctx context.Context, tenantID string, days int) (types.DailySummary, error) {
			return types.DailySummary{}, nil
		},
	}

	cfg := application.DefaultConfig()
	cfg.WindowLookbackMinutes = 15
	cfg.DailyStatsDays = 3

	for _, j := range jobs(cfg, poller, aggregator) {
		is.NoErr(j.Run(context.Background()))
	}

	is.Equal(len(poller.RunPollCycleCalls()), 1)
	is.Equal(len(poller.RunBatteryCycleCalls()), 1)
	is.Equal(aggregator.AggregateWindowsCalls()[0].LookbackMinutes, 15)
	is.Equal(aggregator.RefreshDailyStatsCalls()[0].TenantID, "")
	is.Equal(aggregator.RefreshDailyStatsCalls()[0].Days, 3)
}

func TestMissingConfigFileUsesDefaults(t *testing.T) {
	is := is.New(t)

	cfg, err := loadAppConfig(filepath.Join(t.TempDir(), "nosuchfile.yaml"))
	is.NoErr(err)
	is.Equal(cfg.SuffixWords, rooms.DefaultSuffixWords)
}

func TestConfigFileIsLoaded(t *testing.T) {
	is := is.New(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	is.NoErr(os.WriteFile(path, []byte("schedule:\n  poll: \"@every 2m\"\n"), 0o600))

	cfg, err := loadAppConfig(path)
	is.NoErr(err)
	is.Equal(cfg.Schedule.Poll, "@every 2m")
}

func testRequest(is *is.I, ts *httptest.Server, method, path string, body io.Reader) (*http.Response, string) {
	req, _ := http.NewRequest(method, ts.URL+path, body)
	resp, err := http.DefaultClient.Do(req)
	is.NoErr(err)
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	return resp, string(respBody)
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/diwise/home-activity-sync/internal/pkg/application"
	"github.com/diwise/home-activity-sync/internal/pkg/application/aggregation"
	"github.com/diwise/home-activity-sync/internal/pkg/application/polling"
	"github.com/diwise/home-activity-sync/internal/pkg/application/scheduler"
	"github.com/diwise/home-activity-sync/internal/pkg/application/tokens"
	"github.com/diwise/home-activity-sync/internal/pkg/infrastructure/hue"
	"github.com/diwise/home-activity-sync/internal/pkg/infrastructure/logging"
	"github.com/diwise/home-activity-sync/internal/pkg/infrastructure/messaging"
	"github.com/diwise/home-activity-sync/internal/pkg/infrastructure/metrics"
	"github.com/diwise/home-activity-sync/internal/pkg/infrastructure/router"
	"github.com/diwise/home-activity-sync/internal/pkg/infrastructure/storage"
	"github.com/diwise/home-activity-sync/internal/pkg/infrastructure/tracing"
	"github.com/diwise/home-activity-sync/internal/pkg/presentation/api"
	"github.com/go-chi/chi/v5"
	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

const serviceName string = "home-activity-sync"

type envConfig struct {
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	ServicePort string `envconfig:"SERVICE_PORT" default:"8080"`
	ConfigFile  string `envconfig:"CONFIG_FILE" default:"/opt/diwise/config/config.yaml"`
	JWTSecret   string `envconfig:"JWT_SECRET"`

	PostgresHost     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	PostgresPort     string `envconfig:"POSTGRES_PORT" default:"5432"`
	PostgresDBName   string `envconfig:"POSTGRES_DBNAME" default:"diwise"`
	PostgresUser     string `envconfig:"POSTGRES_USER" default:"postgres"`
	PostgresPassword string `envconfig:"POSTGRES_PASSWORD"`
	PostgresSSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable"`

	HueClientID     string `envconfig:"HUE_CLIENT_ID"`
	HueClientSecret string `envconfig:"HUE_CLIENT_SECRET"`
	HueLegacyURL    string `envconfig:"HUE_LEGACY_URL" default:"https://api.meethue.com/bridge"`
	HueResourceURL  string `envconfig:"HUE_RESOURCE_URL" default:"https://api.meethue.com/route/clip/v2"`
	HueTokenURL     string `envconfig:"HUE_TOKEN_URL" default:"https://api.meethue.com/v2/oauth2/token"`

	RabbitMQURL      string `envconfig:"RABBITMQ_URL"`
	RabbitMQExchange string `envconfig:"RABBITMQ_EXCHANGE" default:"home-activity"`
}

func main() {
	serviceVersion := version()

	env, err := loadEnvConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load configuration from environment: %s\n", err.Error())
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ctx, logger := logging.NewLogger(ctx, serviceName, serviceVersion, env.LogLevel)
	logger.Info().Msg("starting up ...")

	cleanup, err := tracing.Init(ctx, logger, serviceName, serviceVersion)
	exitIf(err, logger, "failed to init tracing")
	defer cleanup()

	appCfg, err := loadAppConfig(env.ConfigFile)
	exitIf(err, logger, "could not load configuration file", "file", env.ConfigFile)

	db, err := storage.New(ctx, storage.NewConfig(env.PostgresHost, env.PostgresUser, env.PostgresPassword, env.PostgresPort, env.PostgresDBName, env.PostgresSSLMode))
	exitIf(err, logger, "could not connect to database")
	defer db.Close()

	err = db.Initialize(ctx)
	exitIf(err, logger, "could not initialize database")

	publisher, err := newPublisher(ctx, env)
	exitIf(err, logger, "could not connect to message broker")
	defer publisher.Close()

	m := metrics.New(prometheus.DefaultRegisterer)

	hueClient := hue.NewClient(hue.Config{
		LegacyURL:    env.HueLegacyURL,
		ResourceURL:  env.HueResourceURL,
		TokenURL:     env.HueTokenURL,
		ClientID:     env.HueClientID,
		ClientSecret: env.HueClientSecret,
	})

	poller := polling.New(db, hueClient, tokens.NewManager(hueClient, db), publisher, m, appCfg.SuffixWords)
	aggregator := aggregation.New(db, m)

	sched, err := scheduler.New(ctx, jobs(appCfg, poller, aggregator))
	exitIf(err, logger, "could not create scheduler")

	if appCfg.Schedule.Enabled() {
		sched.Start()
		defer sched.Stop()
	}

	r := createAppAndSetupRouter(ctx, env, appCfg, poller, aggregator, db)

	server := &http.Server{
		Addr:              ":" + env.ServicePort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancelShutdown()
		server.Shutdown(shutdownCtx)
	}()

	logger.Info().Str("port", env.ServicePort).Msg("starting to listen for connections")

	err = server.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		exitIf(err, logger, "failed to start request router")
	}

	logger.Info().Msg("shutting down")
}

func createAppAndSetupRouter(ctx context.Context, env envConfig, appCfg *application.Config, poller api.Poller, aggregator api.Aggregator, reader api.Reader) *chi.Mux {
	r := router.New(serviceName, appCfg.AllowedOrigins...)
	return api.RegisterHandlers(ctx, r, poller, aggregator, reader, env.JWTSecret, prometheus.DefaultGatherer)
}

func jobs(appCfg *application.Config, poller api.Poller, aggregator api.Aggregator) []scheduler.Job {
	return []scheduler.Job{
		{
			Name: "poll",
			Spec: appCfg.Schedule.Poll,
			Run: func(ctx context.Context) error {
				_, err := poller.RunPollCycle(ctx)
				return err
			},
		},
		{
			Name: "battery",
			Spec: appCfg.Schedule.Battery,
			Run: func(ctx context.Context) error {
				_, err := poller.RunBatteryCycle(ctx)
				return err
			},
		},
		{
			Name: "windows",
			Spec: appCfg.Schedule.Windows,
			Run: func(ctx context.Context) error {
				_, err := aggregator.AggregateWindows(ctx, appCfg.WindowLookbackMinutes)
				return err
			},
		},
		{
			Name: "dailystats",
			Spec: appCfg.Schedule.DailyStats,
			Run: func(ctx context.Context) error {
				_, err := aggregator.RefreshDailyStats(ctx, "", appCfg.DailyStatsDays)
				return err
			},
		},
	}
}

func newPublisher(ctx context.Context, env envConfig) (messaging.Publisher, error) {
	if env.RabbitMQURL == "" {
		logger := logging.GetFromContext(ctx)
		logger.Warn().Msg("no message broker configured, activity events will not be published")
		return messaging.NewNoopPublisher(), nil
	}

	return messaging.New(ctx, messaging.Config{URL: env.RabbitMQURL, Exchange: env.RabbitMQExchange})
}

func loadEnvConfig() (envConfig, error) {
	env := envConfig{}
	if err := envconfig.Process("", &env); err != nil {
		return env, err
	}

	// Allow command line arguments to override the environment
	flag.StringVar(&env.ConfigFile, "config", env.ConfigFile, "yaml file with schedules and room attribution settings")
	flag.StringVar(&env.ServicePort, "port", env.ServicePort, "port to listen for trigger requests on")
	flag.Parse()

	return env, nil
}

func loadAppConfig(path string) (*application.Config, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return application.DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return application.LoadConfiguration(f)
}

func version() string {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	infoMap := map[string]string{}
	for _, s := range buildInfo.Settings {
		infoMap[s.Key] = s.Value
	}

	sha := infoMap["vcs.revision"]
	if infoMap["vcs.modified"] == "true" {
		sha += "+"
	}

	return sha
}

func exitIf(err error, logger zerolog.Logger, msg string, keysAndValues ...any) {
	if err != nil {
		logger.Fatal().Err(err).Fields(keysAndValues).Msg(msg)
	}
}

package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Config struct {
	host     string
	user     string
	password string
	port     string
	dbname   string
	sslmode  string
}

func (c Config) ConnStr() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", c.user, c.password, c.host, c.port, c.dbname, c.sslmode)
}

func NewConfig(host, user, password, port, dbname, sslmode string) Config {
	return Config{
		host:     host,
		user:     user,
		password: password,
		port:     port,
		dbname:   dbname,
		sslmode:  sslmode,
	}
}

func NewPool(ctx context.Context, config Config) (*pgxpool.Pool, error) {
	p, err := pgxpool.New(ctx, config.ConnStr())
	if err != nil {
		return nil, err
	}

	err = p.Ping(ctx)
	if err != nil {
		return nil, err
	}

	return p, nil
}

var (
	ErrNoRows      = errors.New("no rows in result set")
	ErrStoreFailed = errors.New("could not store data")
	ErrNoID        = errors.New("data contains no id")
)

type Storage struct {
	pool *pgxpool.Pool
}

func NewWithPool(pool *pgxpool.Pool) *Storage {
	return &Storage{pool: pool}
}

func New(ctx context.Context, config Config) (*Storage, error) {
	pool, err := NewPool(ctx, config)
	if err != nil {
		return nil, err
	}

	return &Storage{pool: pool}, nil
}

func (s *Storage) Initialize(ctx context.Context) error {
	return s.CreateTables(ctx)
}

func (s *Storage) CreateTables(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS tenants (
			tenant_id		TEXT	NOT NULL,
			access_token	TEXT	NOT NULL DEFAULT '',
			refresh_token	TEXT	NOT NULL DEFAULT '',
			token_expiry	timestamp with time zone NULL,
			application_key	TEXT	NOT NULL DEFAULT '',
			status			TEXT	NOT NULL DEFAULT 'pending',
			time_zone		TEXT	NOT NULL DEFAULT 'UTC',
			last_sync_at	timestamp with time zone NULL,
			last_error		TEXT	NULL,
			created_on		timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			modified_on		timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT pkey_tenants PRIMARY KEY (tenant_id)
		);

		CREATE TABLE IF NOT EXISTS devices (
			device_id		TEXT	NOT NULL,
			tenant_id		TEXT	NOT NULL REFERENCES tenants (tenant_id) ON DELETE CASCADE,
			legacy_id		TEXT	NULL,
			unique_id		TEXT	NOT NULL,
			class			TEXT	NOT NULL,
			vendor_type		TEXT	NULL,
			name			TEXT	NOT NULL DEFAULT '',
			room			TEXT	NULL,
			state			JSONB	NULL,
			last_state_at	timestamp with time zone NULL,
			battery_level	INTEGER	NULL,
			created_on		timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			modified_on		timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT pkey_devices PRIMARY KEY (device_id),
			CONSTRAINT devices_tenant_unique_id UNIQUE (tenant_id, unique_id)
		);

		CREATE TABLE IF NOT EXISTS activity_events (
			event_id		TEXT	NOT NULL,
			tenant_id		TEXT	NOT NULL REFERENCES tenants (tenant_id) ON DELETE CASCADE,
			device_id		TEXT	NOT NULL,
			device_name		TEXT	NULL,
			class			TEXT	NOT NULL,
			room			TEXT	NULL,
			occurred_at		timestamp with time zone NOT NULL,
			payload			JSONB	NOT NULL,
			created_on		timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT pkey_activity_events PRIMARY KEY (event_id)
		);

		CREATE TABLE IF NOT EXISTS activity_windows (
			tenant_id		TEXT	NOT NULL REFERENCES tenants (tenant_id) ON DELETE CASCADE,
			room			TEXT	NOT NULL,
			window_start	timestamp with time zone NOT NULL,
			trigger_types	TEXT[]	NOT NULL,
			trigger_count	INTEGER	NOT NULL,
			first_trigger	timestamp with time zone NOT NULL,
			last_trigger	timestamp with time zone NOT NULL,
			modified_on		timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT pkey_activity_windows PRIMARY KEY (tenant_id, room, window_start)
		);

		CREATE TABLE IF NOT EXISTS daily_stats (
			tenant_id			TEXT	NOT NULL REFERENCES tenants (tenant_id) ON DELETE CASCADE,
			date				DATE	NOT NULL,
			total_events		INTEGER	NOT NULL,
			hourly_counts		INTEGER[] NOT NULL,
			active_hours		INTEGER	NOT NULL,
			rooms_active		INTEGER	NOT NULL,
			rooms_instrumented	INTEGER	NOT NULL,
			longest_gap_seconds	BIGINT	NOT NULL,
			night_events		INTEGER	NOT NULL,
			night_active_hours	INTEGER	NOT NULL,
			motion_events		INTEGER	NOT NULL,
			door_events			INTEGER	NOT NULL,
			modified_on			timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT pkey_daily_stats PRIMARY KEY (tenant_id, date)
		);

		CREATE INDEX IF NOT EXISTS activity_events_tenant_occurred_idx ON activity_events (tenant_id, occurred_at);
		CREATE INDEX IF NOT EXISTS tenants_status_idx ON tenants (status);
	`)
	if err != nil {
		return err
	}

	return nil
}

func (s *Storage) Close() {
	s.pool.Close()
}

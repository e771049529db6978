package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/diwise/home-activity-sync/pkg/types"
	"github.com/jackc/pgx/v5"
)

func (s *Storage) GetActiveTenants(ctx context.Context) ([]types.TenantConfig, error) {
	return s.queryTenants(ctx, "WHERE status = @status", pgx.NamedArgs{"status": types.TenantStatusActive})
}

func (s *Storage) GetTenants(ctx context.Context) ([]types.TenantConfig, error) {
	return s.queryTenants(ctx, "", pgx.NamedArgs{})
}

func (s *Storage) GetTenant(ctx context.Context, tenantID string) (types.TenantConfig, error) {
	tenants, err := s.queryTenants(ctx, "WHERE tenant_id = @tenant_id", pgx.NamedArgs{"tenant_id": tenantID})
	if err != nil {
		return types.TenantConfig{}, err
	}
	if len(tenants) == 0 {
		return types.TenantConfig{}, ErrNoRows
	}
	return tenants[0], nil
}

func (s *Storage) queryTenants(ctx context.Context, where string, args pgx.NamedArgs) ([]types.TenantConfig, error) {
	query := fmt.Sprintf(`
		SELECT tenant_id, access_token, refresh_token, token_expiry, application_key, status, time_zone, last_sync_at, last_error
		FROM tenants
		%s
		ORDER BY tenant_id ASC
	`, where)

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}

	var id, accessToken, refreshToken, applicationKey, status, timeZone string
	var tokenExpiry, lastSyncAt *time.Time
	var lastError *string

	tenants := make([]types.TenantConfig, 0)

	_, err = pgx.ForEachRow(rows, []any{&id, &accessToken, &refreshToken, &tokenExpiry, &applicationKey, &status, &timeZone, &lastSyncAt, &lastError}, func() error {
		t := types.TenantConfig{
			ID:             id,
			AccessToken:    accessToken,
			RefreshToken:   refreshToken,
			ApplicationKey: applicationKey,
			Status:         status,
			TimeZone:       timeZone,
		}
		if tokenExpiry != nil {
			t.TokenExpiry = tokenExpiry.UTC()
		}
		if lastSyncAt != nil {
			ts := lastSyncAt.UTC()
			t.LastSyncAt = &ts
		}
		if lastError != nil {
			t.LastError = *lastError
		}
		tenants = append(tenants, t)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return tenants, nil
}

// AddTenant stores a paired tenant. Pairing itself happens elsewhere, this is used
// when seeding tenants and in tests.
func (s *Storage) AddTenant(ctx context.Context, t types.TenantConfig) error {
	status := t.Status
	if status == "" {
		status = types.TenantStatusPending
	}
	timeZone := t.TimeZone
	if timeZone == "" {
		timeZone = "UTC"
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO tenants (tenant_id, access_token, refresh_token, token_expiry, application_key, status, time_zone)
		VALUES (@tenant_id, @access_token, @refresh_token, @token_expiry, @application_key, @status, @time_zone)
		ON CONFLICT (tenant_id) DO UPDATE
		SET access_token = EXCLUDED.access_token, refresh_token = EXCLUDED.refresh_token, token_expiry = EXCLUDED.token_expiry,
			application_key = EXCLUDED.application_key, status = EXCLUDED.status, time_zone = EXCLUDED.time_zone, modified_on = CURRENT_TIMESTAMP
	`, pgx.NamedArgs{
		"tenant_id":       t.ID,
		"access_token":    t.AccessToken,
		"refresh_token":   t.RefreshToken,
		"token_expiry":    t.TokenExpiry.UTC(),
		"application_key": t.ApplicationKey,
		"status":          status,
		"time_zone":       timeZone,
	})

	return err
}

func (s *Storage) UpdateTenantTokens(ctx context.Context, tenantID, accessToken, refreshToken string, expiry time.Time) error {
	return s.execOne(ctx, `
		UPDATE tenants
		SET access_token = @access_token, refresh_token = @refresh_token, token_expiry = @token_expiry, modified_on = CURRENT_TIMESTAMP
		WHERE tenant_id = @tenant_id
	`, pgx.NamedArgs{
		"tenant_id":     tenantID,
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"token_expiry":  expiry.UTC(),
	})
}

func (s *Storage) UpdateTenantStatus(ctx context.Context, tenantID, status, reason string) error {
	return s.execOne(ctx, `
		UPDATE tenants
		SET status = @status, last_error = NULLIF(@last_error, ''), modified_on = CURRENT_TIMESTAMP
		WHERE tenant_id = @tenant_id
	`, pgx.NamedArgs{
		"tenant_id":  tenantID,
		"status":     status,
		"last_error": reason,
	})
}

func (s *Storage) MarkTenantSynced(ctx context.Context, tenantID string, syncedAt time.Time) error {
	return s.execOne(ctx, `
		UPDATE tenants
		SET last_sync_at = @last_sync_at, last_error = NULL, modified_on = CURRENT_TIMESTAMP
		WHERE tenant_id = @tenant_id
	`, pgx.NamedArgs{
		"tenant_id":    tenantID,
		"last_sync_at": syncedAt.UTC(),
	})
}

func (s *Storage) execOne(ctx context.Context, sql string, args pgx.NamedArgs) error {
	tag, err := s.pool.Exec(ctx, sql, args)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrStoreFailed, err.Error())
	}
	if tag.RowsAffected() == 0 {
		return ErrNoRows
	}
	return nil
}

// LockTenant takes a session level advisory lock for the tenant on a dedicated
// connection. It reports false without blocking when the lock is held elsewhere.
func (s *Storage) LockTenant(ctx context.Context, tenantID string) (func(), bool, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, false, err
	}

	var locked bool
	err = conn.QueryRow(ctx, "SELECT pg_try_advisory_lock(hashtext($1))", tenantID).Scan(&locked)
	if err != nil {
		conn.Release()
		return nil, false, err
	}

	if !locked {
		conn.Release()
		return nil, false, nil
	}

	unlock := func() {
		_, err := conn.Exec(context.Background(), "SELECT pg_advisory_unlock(hashtext($1))", tenantID)
		if err != nil {
			// a lock that can not be released dies with its session
			conn.Conn().Close(context.Background())
		}
		conn.Release()
	}

	return unlock, true, nil
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

package tokens

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/diwise/home-activity-sync/internal/pkg/infrastructure/logging"
	"github.com/diwise/home-activity-sync/internal/pkg/infrastructure/tracing"
	"github.com/diwise/home-activity-sync/pkg/types"
	"go.opentelemetry.io/otel"
	"golang.org/x/oauth2"
)

var tracer = otel.Tracer("home-activity-sync/tokens")

// ErrAuthExpired means the tenant's credentials could not be refreshed. The tenant has
// been marked as failed and should be skipped until it is re-authorized.
var ErrAuthExpired = errors.New("authorization expired")

// RefreshBuffer is how long before the stored expiry a token is considered expired.
const RefreshBuffer = 5 * time.Minute

//go:generate moq -rm -out refresher_mock.go . TokenRefresher
type TokenRefresher interface {
	RefreshToken(ctx context.Context, refreshToken string) (*oauth2.Token, error)
}

//go:generate moq -rm -out tenantstore_mock.go . TenantStore
type TenantStore interface {
	UpdateTenantTokens(ctx context.Context, tenantID, accessToken, refreshToken string, expiry time.Time) error
	UpdateTenantStatus(ctx context.Context, tenantID, status, reason string) error
}

type Manager struct {
	refresher TokenRefresher
	store     TenantStore
	now       func() time.Time
}

func NewManager(refresher TokenRefresher, store TenantStore) *Manager {
	return &Manager{
		refresher: refresher,
		store:     store,
		now:       time.Now,
	}
}

// EnsureValidAccessToken returns an access token for the tenant, refreshing it first
// when it expires within RefreshBuffer. The tenant passed in is updated with the new
// credentials on a successful refresh.
func (m *Manager) EnsureValidAccessToken(ctx context.Context, tenant *types.TenantConfig) (string, error) {
	if !m.now().After(tenant.TokenExpiry.Add(-RefreshBuffer)) {
		return tenant.AccessToken, nil
	}

	var err error
	ctx, span := tracer.Start(ctx, "refresh-access-token")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	log := logging.GetFromContext(ctx)
	log.Debug().Time("expiry", tenant.TokenExpiry).Msg("access token about to expire, refreshing")

	token, err := m.refresher.RefreshToken(ctx, tenant.RefreshToken)
	if err != nil {
		reason := fmt.Sprintf("token refresh failed: %s", err.Error())
		if statusErr := m.store.UpdateTenantStatus(ctx, tenant.ID, types.TenantStatusError, reason); statusErr != nil {
			log.Error().Err(statusErr).Msg("failed to mark tenant as failed")
		}
		tenant.Status = types.TenantStatusError
		tenant.LastError = reason

		err = fmt.Errorf("%w: %s", ErrAuthExpired, err.Error())
		return "", err
	}

	refreshToken := token.RefreshToken
	if refreshToken == "" {
		refreshToken = tenant.RefreshToken
	}

	err = m.store.UpdateTenantTokens(ctx, tenant.ID, token.AccessToken, refreshToken, token.Expiry)
	if err != nil {
		err = fmt.Errorf("failed to store refreshed tokens: %w", err)
		return "", err
	}

	tenant.AccessToken = token.AccessToken
	tenant.RefreshToken = refreshToken
	tenant.TokenExpiry = token.Expiry

	log.Info().Time("expiry", token.Expiry).Msg("access token refreshed")

	return token.AccessToken, nil
}

package auth

import (
	"context"
	"net/http"

	"github.com/diwise/home-activity-sync/internal/pkg/infrastructure/logging"
	"github.com/go-chi/jwtauth/v5"
)

const Algorithm = "HS256"

func NewTokenAuth(secret string) *jwtauth.JWTAuth {
	return jwtauth.New(Algorithm, []byte(secret), nil)
}

// NewAuthenticator returns a middleware that only lets requests carrying a valid
// bearer token signed with secret through. An empty secret disables the check.
func NewAuthenticator(secret string) func(http.Handler) http.Handler {
	if secret == "" {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	verify := jwtauth.Verifier(NewTokenAuth(secret))

	return func(next http.Handler) http.Handler {
		return verify(jwtauth.Authenticator(withCaller(next)))
	}
}

func withCaller(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if caller := Caller(r.Context()); caller != "" {
			logger := logging.GetFromContext(r.Context()).With().Str("caller", caller).Logger()
			r = r.WithContext(logging.NewContextWithLogger(r.Context(), logger))
		}
		next.ServeHTTP(w, r)
	})
}

// Caller returns the subject of the verified token in ctx, if any.
func Caller(ctx context.Context) string {
	token, _, err := jwtauth.FromContext(ctx)
	if err != nil || token == nil {
		return ""
	}
	return token.Subject()
}

// Package auth provides OpenID Connect bearer token authentication middleware.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/JaimeStill/canopy/pkg/handlers"
)

var (
	// ErrMissingToken indicates the request carried no bearer token.
	ErrMissingToken = errors.New("missing bearer token")
	// ErrInvalidToken indicates the bearer token failed verification.
	ErrInvalidToken = errors.New("invalid bearer token")
)

type subjectKey struct{}

// Authenticator verifies bearer ID tokens against an OIDC issuer.
// A nil *Authenticator authenticates nothing and passes every request through.
type Authenticator struct {
	verifier *oidc.IDTokenVerifier
	logger   *slog.Logger
}

// New discovers the configured issuer and returns an Authenticator.
// Returns nil when authentication is disabled.
func New(ctx context.Context, cfg *Config, logger *slog.Logger) (*Authenticator, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	provider, err := oidc.NewProvider(ctx, cfg.IssuerURL)
	if err != nil {
		return nil, fmt.Errorf("discover oidc issuer: %w", err)
	}

	return NewWithVerifier(
		provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
		logger,
	), nil
}

// NewWithVerifier creates an Authenticator from an existing verifier.
func NewWithVerifier(verifier *oidc.IDTokenVerifier, logger *slog.Logger) *Authenticator {
	return &Authenticator{
		verifier: verifier,
		logger:   logger.With("system", "auth"),
	}
}

// Middleware rejects requests without a valid bearer token and stores the
// token subject in the request context.
func (a *Authenticator) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if a == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				handlers.RespondError(w, a.logger, http.StatusUnauthorized, ErrMissingToken)
				return
			}

			token, err := a.verifier.Verify(r.Context(), raw)
			if err != nil {
				a.logger.Warn("token verification failed", "error", err)
				handlers.RespondError(w, a.logger, http.StatusUnauthorized, ErrInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), subjectKey{}, token.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Subject returns the authenticated subject stored by Middleware.
func Subject(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(subjectKey{}).(string)
	return s, ok
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

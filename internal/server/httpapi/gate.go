package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/R3gret/ITPM-Backend/internal/common"
	"github.com/R3gret/ITPM-Backend/internal/server/auth"
)

// AuthedHandlerFunc is a handler that runs only after the caller has been
// authenticated. The identity is passed explicitly, so a handler of this
// type cannot be mounted without going through Gate.Authenticate.
type AuthedHandlerFunc func(w http.ResponseWriter, r *http.Request, id auth.Identity)

// TokenVerifier checks a session token and returns its identity.
type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

type identityKey struct{}

// IdentityFromContext returns the identity stored by the gate.
func IdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(auth.Identity)
	return id, ok
}

// Gate authenticates requests carrying a bearer session token.
type Gate struct {
	tokens  TokenVerifier
	errors  *errorWriter
	metrics *Metrics
}

func NewGate(tokens TokenVerifier, ew *errorWriter, m *Metrics) *Gate {
	return &Gate{tokens: tokens, errors: ew, metrics: m}
}

// Authenticate extracts and verifies the bearer token, then calls next with
// the verified identity. Every failure is a 401 with a distinct message.
func (g *Gate) Authenticate(next AuthedHandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerToken(r.Header.Get(common.AuthorizationHeaderName))
		if err == nil {
			var id auth.Identity
			if id, err = g.tokens.Verify(token); err == nil {
				ctx := context.WithValue(r.Context(), identityKey{}, id)
				next(w, r.WithContext(ctx), id)
				return
			}
		}

		g.metrics.authFailure(err)
		if !isTokenError(err) {
			err = common.ErrTokenMalformed
		}
		g.errors.write(w, r, err)
	})
}

// RequireRole lets the request through only if the identity holds one of
// roles. Otherwise it answers 403.
func (g *Gate) RequireRole(next AuthedHandlerFunc, roles ...auth.Role) AuthedHandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, id auth.Identity) {
		if !id.HasRole(roles...) {
			g.errors.write(w, r, common.ErrForbidden)
			return
		}
		next(w, r, id)
	}
}

func bearerToken(header string) (string, error) {
	if !strings.HasPrefix(header, common.BearerPrefix) {
		return "", common.ErrMissingCredential
	}
	token := strings.TrimSpace(header[len(common.BearerPrefix):])
	if token == "" {
		return "", common.ErrMissingCredential
	}
	return token, nil
}

func isTokenError(err error) bool {
	return errors.Is(err, common.ErrMissingCredential) ||
		errors.Is(err, common.ErrTokenExpired) ||
		errors.Is(err, common.ErrTokenMalformed)
}

// Package auth holds the credential primitives of the server: the closed
// role set, the session token codec and the password hasher.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/R3gret/ITPM-Backend/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is used when the codec is built with a zero ttl.
const DefaultTokenTTL = time.Hour

// ErrMissingSigningSecret is returned by NewTokenCodec when no secret is
// configured. The server must not start in that state.
var ErrMissingSigningSecret = errors.New("token signing secret is not set")

// Claims is the JWT payload: standard registered claims (sub, iat, exp) plus
// the username and role of the subject.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// TokenCodec issues and verifies HS256 session tokens with a single
// process-wide secret.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// TokenCodecOption customizes a TokenCodec.
type TokenCodecOption func(*TokenCodec)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) TokenCodecOption {
	return func(c *TokenCodec) { c.now = now }
}

func NewTokenCodec(secret string, ttl time.Duration, opts ...TokenCodecOption) (*TokenCodec, error) {
	if secret == "" {
		return nil, ErrMissingSigningSecret
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	c := &TokenCodec{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// TTL returns the lifetime given to issued tokens.
func (c *TokenCodec) TTL() time.Duration { return c.ttl }

// Issue signs a token for id valid from now until now+ttl.
func (c *TokenCodec) Issue(id Identity) (string, error) {
	if !id.Role.Valid() {
		return "", fmt.Errorf("issue token: invalid role %q", id.Role)
	}

	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(id.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		Username: id.Username,
		Role:     id.Role,
	})

	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return tokenString, nil
}

// Verify checks signature and expiry and returns the identity carried by the
// token. Expired tokens yield common.ErrTokenExpired, everything else that
// fails yields common.ErrTokenMalformed.
func (c *TokenCodec) Verify(tokenString string) (Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, common.ErrTokenExpired
		}
		return Identity{}, fmt.Errorf("%w: %v", common.ErrTokenMalformed, err)
	}

	if !token.Valid {
		return Identity{}, common.ErrTokenMalformed
	}

	// Exactly at exp the token is no longer valid.
	if !c.now().Before(claims.ExpiresAt.Time) {
		return Identity{}, common.ErrTokenExpired
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: bad subject", common.ErrTokenMalformed)
	}

	return Identity{UserID: userID, Username: claims.Username, Role: claims.Role}, nil
}

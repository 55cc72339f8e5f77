package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/R3gret/ITPM-Backend/internal/logging"
	"github.com/R3gret/ITPM-Backend/internal/server/auth"
	"github.com/R3gret/ITPM-Backend/internal/server/models"
	"github.com/R3gret/ITPM-Backend/internal/server/ratelimit"
	"github.com/R3gret/ITPM-Backend/internal/server/repositories/memory"
	"github.com/R3gret/ITPM-Backend/internal/server/services"
	"github.com/stretchr/testify/require"
)

// plainHasher keeps tests fast; bcrypt itself is covered in package auth.
type plainHasher struct{}

func (plainHasher) Hash(_ context.Context, pw string) (string, error) { return "h:" + pw, nil }
func (plainHasher) Verify(_ context.Context, pw, hash string) (bool, error) {
	return hash == "h:"+pw, nil
}

type clock struct{ t time.Time }

func (c *clock) Now() time.Time { return c.t }

type testEnv struct {
	server *Server
	store  *memory.RepositoryManager
	codec  *auth.TokenCodec
	clock  *clock
}

type envOption func(*Options)

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	clk := &clock{t: time.Now()}
	codec, err := auth.NewTokenCodec("integration-secret", time.Hour, auth.WithClock(clk.Now))
	require.NoError(t, err)

	store := memory.NewRepositoryManager()
	o := Options{
		Address:     ":0",
		Environment: "test",
		Users:       services.NewUserService(nil, store, plainHasher{}, codec, logging.Nop{}),
		Resorts:     services.NewResortService(nil, store, logging.Nop{}),
		Locations:   services.NewLocationService(nil, store),
		Tokens:      codec,
		Limits: Limits{
			General: ratelimit.NewMemoryLimiter(ratelimit.DefaultConfig()),
			Auth:    ratelimit.NewMemoryLimiter(ratelimit.AuthConfig()),
			Window:  15 * time.Minute,
		},
		Logger: logging.Nop{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &testEnv{server: NewServer(o), store: store, codec: codec, clock: clk}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rdr *bytes.Reader
	switch b := body.(type) {
	case nil:
		rdr = bytes.NewReader(nil)
	case string:
		rdr = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.RemoteAddr = "192.0.2.10:5555"
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(rec, req)
	return rec
}

// adminToken stores an admin directly, since registration only creates users.
func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	u, err := e.store.Users(nil).Create(context.Background(), &models.User{
		UserName: "root_admin", Email: "root@example.com", PasswordHash: "h:x", Role: auth.RoleAdmin,
	})
	require.NoError(t, err)
	tok, err := e.codec.Issue(u.Identity())
	require.NoError(t, err)
	return tok
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(strings.NewReader(rec.Body.String())).Decode(&out))
	return out
}

func register(username, password, email string) map[string]string {
	return map[string]string{"username": username, "password": password, "email": email}
}

func login(username, password string) map[string]string {
	return map[string]string{"username": username, "password": password}
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }

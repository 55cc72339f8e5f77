// Package httpapi exposes the resort backend over HTTP: user registration
// and login, resort CRUD and location pings, behind rate limiting, bearer
// token authentication and role checks.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/R3gret/ITPM-Backend/internal/logging"
	"github.com/R3gret/ITPM-Backend/internal/server/auth"
	"github.com/R3gret/ITPM-Backend/internal/server/models"
	"github.com/R3gret/ITPM-Backend/internal/server/ratelimit"
	"github.com/R3gret/ITPM-Backend/internal/server/services"
	"github.com/gorilla/mux"
)

type UserService interface {
	Register(ctx context.Context, in services.RegisterInput) (*services.AuthResult, error)
	Login(ctx context.Context, in services.LoginInput) (*services.AuthResult, error)
	Me(ctx context.Context, id auth.Identity) (models.UserView, error)
	ListUsers(ctx context.Context) ([]models.UserView, error)
}

type ResortService interface {
	List(ctx context.Context) ([]*models.Resort, error)
	Get(ctx context.Context, id int64) (*models.Resort, error)
	Create(ctx context.Context, in services.ResortInput) (int64, error)
	Update(ctx context.Context, id int64, in services.ResortInput) error
	Delete(ctx context.Context, id int64) error
}

type LocationService interface {
	Record(ctx context.Context, id auth.Identity, in services.LocationInput) (*models.LocationPing, error)
	ListMine(ctx context.Context, id auth.Identity) ([]*models.LocationPing, error)
}

// Limits configures both rate limiters. Window is used for Retry-After.
type Limits struct {
	General ratelimit.Limiter
	Auth    ratelimit.Limiter
	Window  time.Duration
	Key     ratelimit.ClientKeyFunc
}

// Options groups everything NewServer needs.
type Options struct {
	Address     string
	Environment string
	Development bool
	Users       UserService
	Resorts     ResortService
	Locations   LocationService
	Tokens      TokenVerifier
	Limits      Limits
	Logger      logging.Logger
}

type Server struct {
	address     string
	environment string
	users       UserService
	resorts     ResortService
	locations   LocationService
	gate        *Gate
	errors      *errorWriter
	metrics     *Metrics
	limits      Limits
	logger      logging.Logger
	now         func() time.Time
	handler     http.Handler
}

func NewServer(o Options) *Server {
	logger := o.Logger.With("module", "http_server")
	if o.Limits.Key == nil {
		o.Limits.Key = ratelimit.ClientIP(nil)
	}

	s := &Server{
		address:     o.Address,
		environment: o.Environment,
		users:       o.Users,
		resorts:     o.Resorts,
		locations:   o.Locations,
		metrics:     NewMetrics(),
		limits:      o.Limits,
		logger:      logger,
		now:         time.Now,
	}
	s.errors = &errorWriter{logger: logger, development: o.Development, now: s.now}
	s.gate = NewGate(o.Tokens, s.errors, s.metrics)
	s.handler = s.routes()
	return s
}

// Handler returns the fully wrapped router.
func (s *Server) Handler() http.Handler { return s.handler }

func (s *Server) routes() http.Handler {
	r := mux.NewRouter()
	r.Use(s.metrics.Middleware)

	authLimit := limitByClient("auth", s.limits.Auth, s.limits.Window, s.limits.Key, s.errors, s.metrics)

	r.HandleFunc("/health", s.health).Methods(http.MethodGet)
	r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	users := r.PathPrefix("/api/users").Subrouter()
	users.Handle("/register", authLimit(http.HandlerFunc(s.register))).Methods(http.MethodPost)
	users.Handle("/login", authLimit(http.HandlerFunc(s.login))).Methods(http.MethodPost)
	users.Handle("/me", s.gate.Authenticate(s.me)).Methods(http.MethodGet)
	users.Handle("/users", s.gate.Authenticate(s.gate.RequireRole(s.listUsers, auth.RoleAdmin))).Methods(http.MethodGet)

	r.Handle("/api/auth/protected", s.gate.Authenticate(s.protected)).Methods(http.MethodGet)

	resorts := r.PathPrefix("/api/resorts").Subrouter()
	resorts.HandleFunc("", s.listResorts).Methods(http.MethodGet)
	resorts.HandleFunc("/{id:[0-9]+}", s.getResort).Methods(http.MethodGet)
	resorts.Handle("", s.gate.Authenticate(s.createResort)).Methods(http.MethodPost)
	resorts.Handle("/{id:[0-9]+}", s.gate.Authenticate(s.updateResort)).Methods(http.MethodPut)
	resorts.Handle("/{id:[0-9]+}", s.gate.Authenticate(s.gate.RequireRole(s.deleteResort, auth.RoleAdmin))).Methods(http.MethodDelete)

	locations := r.PathPrefix("/api/locations").Subrouter()
	locations.Handle("", s.gate.Authenticate(s.recordLocation)).Methods(http.MethodPost)
	locations.Handle("", s.gate.Authenticate(s.listLocations)).Methods(http.MethodGet)

	notFound := s.metrics.instrument("unmatched", http.HandlerFunc(s.notFound))
	r.NotFoundHandler = notFound
	r.MethodNotAllowedHandler = notFound

	var h http.Handler = r
	h = limitByClient("general", s.limits.General, s.limits.Window, s.limits.Key, s.errors, s.metrics)(h)
	h = recoverer(s.errors)(h)
	h = requestLogger(s.logger)(h)
	return h
}

// Run serves until ctx is cancelled and then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Package services contains server-side business logic. UserService handles
// registration and login; ResortService and LocationService cover the
// resource endpoints.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/R3gret/ITPM-Backend/internal/common"
	"github.com/R3gret/ITPM-Backend/internal/dbx"
	"github.com/R3gret/ITPM-Backend/internal/logging"
	"github.com/R3gret/ITPM-Backend/internal/server/auth"
	"github.com/R3gret/ITPM-Backend/internal/server/models"
	"github.com/R3gret/ITPM-Backend/internal/server/repositories/repomanager"
)

// RegisterInput is the body of a registration request.
type RegisterInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// LoginInput is the body of a login request.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResult is returned by a successful registration or login.
type AuthResult struct {
	Token string
	User  models.UserView
}

// dummyPassword is hashed once and compared against when the login name is
// unknown, so both failure paths cost one bcrypt comparison.
const dummyPassword = "not-a-real-password-Aa1!"

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      auth.PasswordHasher
	tokens      *auth.TokenCodec
	logger      logging.Logger

	dummyOnce sync.Once
	dummyHash string
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher auth.PasswordHasher, tokens *auth.TokenCodec, logger logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		logger:      logger.With("module", "users"),
	}
}

// Register validates the input, rejects taken names, hashes the password,
// creates a user with the "user" role and returns a session token for it. Field problems are reported together as a
// *common.ValidationError; a taken username or email yields
// common.ErrConflict.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	username := strings.TrimSpace(in.Username)

	verr := &common.ValidationError{}
	validateUsername(verr, username)
	if !strongPassword(in.Password) {
		verr.Add("password", msgPasswordStrength)
	}
	email := strings.TrimSpace(in.Email)
	if validEmail(email) {
		email = normalizeEmail(email)
	} else {
		verr.Add("email", msgInvalidEmail)
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	// Checked again inside the transaction.
	taken, err := s.repomanager.Users(s.db).ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, fmt.Errorf("%w: register: %w", common.ErrorInternal, err)
	}
	if taken {
		return nil, common.ErrConflict
	}

	hash, err := s.hasher.Hash(ctx, in.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: register: %w", common.ErrorInternal, err)
	}

	var user *models.User
	err = s.repomanager.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		taken, err := repo.ExistsByUsernameOrEmail(ctx, username, email)
		if err != nil {
			return err
		}
		if taken {
			return common.ErrConflict
		}

		user, err = repo.Create(ctx, &models.User{
			UserName:     username,
			Email:        email,
			PasswordHash: hash,
			Role:         auth.RoleUser,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("%w: register: %w", common.ErrorInternal, err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return s.issue(user)
}

// Login checks the credentials and returns a fresh session token. An unknown
// username and a wrong password both yield common.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	username := strings.TrimSpace(in.Username)

	verr := &common.ValidationError{}
	if username == "" {
		verr.Add("username", msgUsernameRequired)
	}
	if in.Password == "" {
		verr.Add("password", msgPasswordRequired)
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users(s.db).GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.burnComparison(ctx, in.Password)
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: login: %w", common.ErrorInternal, err)
	}

	ok, err := s.hasher.Verify(ctx, in.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("%w: login: %w", common.ErrorInternal, err)
	}
	if !ok {
		s.logger.Debug(ctx, "password mismatch", "user_id", user.ID)
		return nil, common.ErrInvalidCredentials
	}

	return s.issue(user)
}

// Me returns the stored view of the authenticated user.
func (s *UserService) Me(ctx context.Context, id auth.Identity) (models.UserView, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return models.UserView{}, common.ErrorNotFound
		}
		return models.UserView{}, fmt.Errorf("%w: me: %w", common.ErrorInternal, err)
	}
	return user.View(), nil
}

// ListUsers returns every user without password hashes.
func (s *UserService) ListUsers(ctx context.Context) ([]models.UserView, error) {
	users, err := s.repomanager.Users(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list users: %w", common.ErrorInternal, err)
	}
	views := make([]models.UserView, 0, len(users))
	for _, u := range users {
		views = append(views, u.View())
	}
	return views, nil
}

func (s *UserService) issue(user *models.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user.Identity())
	if err != nil {
		return nil, fmt.Errorf("%w: issue token: %w", common.ErrorInternal, err)
	}
	return &AuthResult{Token: token, User: user.View()}, nil
}

func (s *UserService) burnComparison(ctx context.Context, password string) {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash(context.WithoutCancel(ctx), dummyPassword)
		if err != nil {
			s.logger.Warn(ctx, "cannot prepare dummy hash", "error", err)
			return
		}
		s.dummyHash = hash
	})
	if s.dummyHash == "" {
		return
	}
	_, _ = s.hasher.Verify(ctx, password, s.dummyHash)
}

package users

import (
	"context"

	"github.com/R3gret/ITPM-Backend/internal/server/models"
)

// Repository is the credential store adapter.
type Repository interface {
	// Create inserts user and fills in ID and CreatedAt. A username or email
	// collision reported by the store yields common.ErrConflict.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// GetUserByLogin returns common.ErrorNotFound when no user has that name.
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	// ExistsByUsernameOrEmail reports whether either value is already taken.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	List(ctx context.Context) ([]*models.User, error)
}

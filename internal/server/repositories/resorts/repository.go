package resorts

import (
	"context"

	"github.com/R3gret/ITPM-Backend/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]*models.Resort, error)
	// Get returns common.ErrorNotFound for an unknown id.
	Get(ctx context.Context, id int64) (*models.Resort, error)
	Create(ctx context.Context, resort *models.Resort) (int64, error)
	// Update and Delete return common.ErrorNotFound when no row was affected.
	Update(ctx context.Context, resort *models.Resort) error
	Delete(ctx context.Context, id int64) error
}

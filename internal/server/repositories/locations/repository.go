package locations

import (
	"context"

	"github.com/R3gret/ITPM-Backend/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, ping *models.LocationPing) (*models.LocationPing, error)
	// ListByUser returns at most limit pings of userID, newest first.
	ListByUser(ctx context.Context, userID int64, limit int) ([]*models.LocationPing, error)
}

// Package locations stores the location pings reported by users.
package locations

import (
	"context"
	"fmt"

	"github.com/R3gret/ITPM-Backend/internal/dbx"
	"github.com/R3gret/ITPM-Backend/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, ping *models.LocationPing) (*models.LocationPing, error) {
	query := `
		INSERT INTO location_pings (user_id, lat, longitude)
		VALUES ($1, $2, $3)
		RETURNING ping_id, recorded_at
	`
	if err := r.db.QueryRowContext(ctx, query, ping.UserID, ping.Lat, ping.Longitude).
		Scan(&ping.ID, &ping.RecordedAt); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return ping, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]*models.LocationPing, error) {
	query := `
		SELECT ping_id, user_id, lat, longitude, recorded_at FROM location_pings
		WHERE user_id = $1
		ORDER BY recorded_at DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.LocationPing{}
	for rows.Next() {
		var p models.LocationPing
		if err := rows.Scan(&p.ID, &p.UserID, &p.Lat, &p.Longitude, &p.RecordedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

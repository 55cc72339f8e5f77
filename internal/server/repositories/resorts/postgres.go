// Package resorts provides PostgreSQL-backed persistence for resort records.
package resorts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/R3gret/ITPM-Backend/internal/common"
	"github.com/R3gret/ITPM-Backend/internal/dbx"
	"github.com/R3gret/ITPM-Backend/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns the summary columns of every resort.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Resort, error) {
	query := `SELECT resort_id, name, lat, longitude, description FROM resorts ORDER BY resort_id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Resort{}
	for rows.Next() {
		var item models.Resort
		if err := rows.Scan(&item.ID, &item.Name, &item.Lat, &item.Longitude, &item.Description); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Resort, error) {
	query := `
		SELECT resort_id, name, lat, longitude, description, address, contact_number, email, website
		FROM resorts WHERE resort_id = $1
	`
	var item models.Resort
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.Name, &item.Lat, &item.Longitude, &item.Description,
		&item.Address, &item.ContactNumber, &item.Email, &item.Website,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &item, nil
}

func (r *PostgresRepository) Create(ctx context.Context, resort *models.Resort) (int64, error) {
	query := `
		INSERT INTO resorts (name, lat, longitude, description, address, contact_number, email, website)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING resort_id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		resort.Name, resort.Lat, resort.Longitude, resort.Description,
		resort.Address, resort.ContactNumber, resort.Email, resort.Website,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

func (r *PostgresRepository) Update(ctx context.Context, resort *models.Resort) error {
	query := `
		UPDATE resorts SET
			name = $1, lat = $2, longitude = $3, description = $4,
			address = $5, contact_number = $6, email = $7, website = $8
		WHERE resort_id = $9
	`
	res, err := r.db.ExecContext(ctx, query,
		resort.Name, resort.Lat, resort.Longitude, resort.Description,
		resort.Address, resort.ContactNumber, resort.Email, resort.Website, resort.ID,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM resorts WHERE resort_id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

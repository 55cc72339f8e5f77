package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/R3gret/ITPM-Backend/internal/common"
	"github.com/R3gret/ITPM-Backend/internal/server/auth"
	"github.com/R3gret/ITPM-Backend/internal/server/models"
	"github.com/R3gret/ITPM-Backend/internal/server/repositories/repomanager"
)

// LocationHistoryLimit caps how many pings ListMine returns.
const LocationHistoryLimit = 100

// LocationInput is the body of a location ping.
type LocationInput struct {
	Lat       *float64 `json:"lat"`
	Longitude *float64 `json:"longitude"`
}

type LocationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewLocationService(db *sql.DB, m repomanager.RepositoryManager) *LocationService {
	return &LocationService{db: db, repomanager: m}
}

// Record stores a ping for the authenticated user.
func (s *LocationService) Record(ctx context.Context, id auth.Identity, in LocationInput) (*models.LocationPing, error) {
	verr := &common.ValidationError{}
	switch {
	case in.Lat == nil:
		verr.Add("lat", "Latitude is required")
	case *in.Lat < -90 || *in.Lat > 90:
		verr.Add("lat", "Latitude must be between -90 and 90")
	}
	switch {
	case in.Longitude == nil:
		verr.Add("longitude", "Longitude is required")
	case *in.Longitude < -180 || *in.Longitude > 180:
		verr.Add("longitude", "Longitude must be between -180 and 180")
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	ping, err := s.repomanager.Locations(s.db).Create(ctx, &models.LocationPing{
		UserID:    id.UserID,
		Lat:       *in.Lat,
		Longitude: *in.Longitude,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: record location: %w", common.ErrorInternal, err)
	}
	return ping, nil
}

// ListMine returns the caller's most recent pings, newest first.
func (s *LocationService) ListMine(ctx context.Context, id auth.Identity) ([]*models.LocationPing, error) {
	pings, err := s.repomanager.Locations(s.db).ListByUser(ctx, id.UserID, LocationHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: list locations: %w", common.ErrorInternal, err)
	}
	return pings, nil
}

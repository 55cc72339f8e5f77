package services

import (
	"context"

	"github.com/R3gret/ITPM-Backend/internal/server/models"
)

type brokenUsers struct{}

func (brokenUsers) Create(context.Context, *models.User) (*models.User, error) { return nil, errBoom }
func (brokenUsers) GetUserByLogin(context.Context, string) (*models.User, error) {
	return nil, errBoom
}
func (brokenUsers) GetByID(context.Context, int64) (*models.User, error) { return nil, errBoom }
func (brokenUsers) ExistsByUsernameOrEmail(context.Context, string, string) (bool, error) {
	return false, errBoom
}
func (brokenUsers) List(context.Context) ([]*models.User, error) { return nil, errBoom }

type brokenResorts struct{}

func (brokenResorts) List(context.Context) ([]*models.Resort, error)        { return nil, errBoom }
func (brokenResorts) Get(context.Context, int64) (*models.Resort, error)    { return nil, errBoom }
func (brokenResorts) Create(context.Context, *models.Resort) (int64, error) { return 0, errBoom }
func (brokenResorts) Update(context.Context, *models.Resort) error          { return errBoom }
func (brokenResorts) Delete(context.Context, int64) error                   { return errBoom }

type brokenLocations struct{}

func (brokenLocations) Create(context.Context, *models.LocationPing) (*models.LocationPing, error) {
	return nil, errBoom
}
func (brokenLocations) ListByUser(context.Context, int64, int) ([]*models.LocationPing, error) {
	return nil, errBoom
}

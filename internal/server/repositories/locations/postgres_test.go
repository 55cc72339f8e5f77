package locations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/R3gret/ITPM-Backend/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	at := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO location_pings \(user_id, lat, longitude\)`).
		WithArgs(int64(3), 10.25, -20.5).
		WillReturnRows(sqlmock.NewRows([]string{"ping_id", "recorded_at"}).AddRow(int64(100), at))

	got, err := repo.Create(context.Background(), &models.LocationPing{UserID: 3, Lat: 10.25, Longitude: -20.5})
	require.NoError(t, err)
	assert.Equal(t, int64(100), got.ID)
	assert.True(t, got.RecordedAt.Equal(at))
}

func TestCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`INSERT INTO location_pings`).WillReturnError(errors.New("fk violation"))

	_, err := repo.Create(context.Background(), &models.LocationPing{UserID: 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error: fk violation")
}

func TestListByUser(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT ping_id, user_id, lat, longitude, recorded_at FROM location_pings\s+WHERE user_id = \$1\s+ORDER BY recorded_at DESC\s+LIMIT \$2`).
		WithArgs(int64(3), 100).
		WillReturnRows(sqlmock.NewRows([]string{"ping_id", "user_id", "lat", "longitude", "recorded_at"}).
			AddRow(int64(2), int64(3), 1.0, 2.0, now).
			AddRow(int64(1), int64(3), 1.5, 2.5, now.Add(-time.Minute)))

	got, err := repo.ListByUser(context.Background(), 3, 100)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

package memory

import (
	"context"

	"github.com/R3gret/ITPM-Backend/internal/server/models"
)

type locationRepository struct {
	store *store
}

func (r *locationRepository) Create(_ context.Context, ping *models.LocationPing) (*models.LocationPing, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextPing++
	c := *ping
	c.ID = s.nextPing
	c.RecordedAt = s.now().UTC()
	s.pings = append(s.pings, &c)

	out := c
	return &out, nil
}

// ListByUser walks the pings backwards, so the newest come first.
func (r *locationRepository) ListByUser(_ context.Context, userID int64, limit int) ([]*models.LocationPing, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*models.LocationPing{}
	for i := len(s.pings) - 1; i >= 0 && len(out) < limit; i-- {
		if p := s.pings[i]; p.UserID == userID {
			c := *p
			out = append(out, &c)
		}
	}
	return out, nil
}

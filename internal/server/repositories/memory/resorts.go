package memory

import (
	"context"
	"sort"

	"github.com/R3gret/ITPM-Backend/internal/common"
	"github.com/R3gret/ITPM-Backend/internal/server/models"
)

type resortRepository struct {
	store *store
}

// List returns the summary fields of every resort ordered by id.
func (r *resortRepository) List(context.Context) ([]*models.Resort, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Resort, 0, len(s.resorts))
	for _, res := range s.resorts {
		out = append(out, &models.Resort{
			ID:          res.ID,
			Name:        res.Name,
			Lat:         res.Lat,
			Longitude:   res.Longitude,
			Description: res.Description,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *resortRepository) Get(_ context.Context, id int64) (*models.Resort, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, ok := s.resorts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *res
	return &c, nil
}

func (r *resortRepository) Create(_ context.Context, resort *models.Resort) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextRes++
	c := *resort
	c.ID = s.nextRes
	s.resorts[c.ID] = &c
	return c.ID, nil
}

func (r *resortRepository) Update(_ context.Context, resort *models.Resort) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.resorts[resort.ID]; !ok {
		return common.ErrorNotFound
	}
	c := *resort
	s.resorts[c.ID] = &c
	return nil
}

func (r *resortRepository) Delete(_ context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.resorts[id]; !ok {
		return common.ErrorNotFound
	}
	delete(s.resorts, id)
	return nil
}

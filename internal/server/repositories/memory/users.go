package memory

import (
	"context"
	"strings"

	"github.com/R3gret/ITPM-Backend/internal/common"
	"github.com/R3gret/ITPM-Backend/internal/server/models"
)

type userRepository struct {
	store *store
}

func (r *userRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.UserName == user.UserName || strings.EqualFold(u.Email, user.Email) {
			return nil, common.ErrConflict
		}
	}

	s.nextUser++
	created := *user
	created.ID = s.nextUser
	created.CreatedAt = s.now().UTC()
	s.users = append(s.users, &created)

	out := created
	return &out, nil
}

func (r *userRepository) GetUserByLogin(_ context.Context, login string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.UserName == login })
}

func (r *userRepository) GetByID(_ context.Context, id int64) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.ID == id })
}

func (r *userRepository) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	_, err := r.find(func(u *models.User) bool {
		return u.UserName == username || strings.EqualFold(u.Email, email)
	})
	if err == common.ErrorNotFound {
		return false, nil
	}
	return err == nil, err
}

// List returns copies without password hashes.
func (r *userRepository) List(context.Context) ([]*models.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.User, 0, len(s.users))
	for _, u := range s.users {
		c := *u
		c.PasswordHash = ""
		out = append(out, &c)
	}
	return out, nil
}

func (r *userRepository) find(match func(*models.User) bool) (*models.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if match(u) {
			c := *u
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

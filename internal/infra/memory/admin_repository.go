package memory

import (
	"context"
	"sort"
	"sync"

	"bigbang-quiz-service/internal/domain"
)

// AdminRepository is an in-memory implementation of app.AdminRepository.
type AdminRepository struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]domain.Administrator
}

func NewAdminRepository() *AdminRepository {
	return &AdminRepository{nextID: 1, rows: make(map[int64]domain.Administrator)}
}

func (r *AdminRepository) ByID(_ context.Context, id int64) (domain.Administrator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	admin, ok := r.rows[id]
	if !ok {
		return domain.Administrator{}, domain.ErrAdminNotFound
	}
	return admin, nil
}

func (r *AdminRepository) ByEmail(_ context.Context, email string) (domain.Administrator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, admin := range r.rows {
		if admin.Email == email {
			return admin, nil
		}
	}
	return domain.Administrator{}, domain.ErrAdminNotFound
}

func (r *AdminRepository) List(_ context.Context) ([]domain.Administrator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Administrator, 0, len(r.rows))
	for _, admin := range r.rows {
		out = append(out, admin)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *AdminRepository) Create(_ context.Context, admin *domain.Administrator) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.rows {
		if existing.Email == admin.Email {
			return domain.ErrDuplicateEmail
		}
	}
	admin.ID = r.nextID
	r.nextID++
	r.rows[admin.ID] = *admin
	return nil
}

func (r *AdminRepository) Update(_ context.Context, admin *domain.Administrator) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[admin.ID]; !ok {
		return domain.ErrAdminNotFound
	}
	r.rows[admin.ID] = *admin
	return nil
}

func (r *AdminRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return domain.ErrAdminNotFound
	}
	delete(r.rows, id)
	return nil
}

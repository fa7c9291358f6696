package memory

import (
	"context"
	"sync"

	"profile-directory/internal/domain"
)

type profileRepo struct {
	mu       sync.RWMutex
	profiles []domain.Profile
	version  uint64
}

// NewProfileRepository creates an in-memory repository seeded with profiles.
// The seed slice is copied; source order is kept.
func NewProfileRepository(seed []domain.Profile) domain.ProfileRepository {
	profiles := make([]domain.Profile, len(seed))
	copy(profiles, seed)
	return &profileRepo{profiles: profiles}
}

// List returns a snapshot of the collection in order
func (r *profileRepo) List(ctx context.Context) ([]domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Profile, len(r.profiles))
	copy(out, r.profiles)
	return out, nil
}

// GetByID retrieves a profile by its ID
func (r *profileRepo) GetByID(ctx context.Context, id int) (*domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(id); i >= 0 {
		p := r.profiles[i]
		return &p, nil
	}
	return nil, domain.ErrNotFound
}

// Update replaces the stored profile with the same ID
func (r *profileRepo) Update(ctx context.Context, profile *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(profile.ID)
	if i < 0 {
		return domain.ErrNotFound
	}
	r.profiles[i] = *profile
	r.version++
	return nil
}

// Delete removes the profile with id. It reports whether anything was removed.
func (r *profileRepo) Delete(ctx context.Context, id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return false, nil
	}
	r.profiles = append(r.profiles[:i:i], r.profiles[i+1:]...)
	r.version++
	return true, nil
}

func (r *profileRepo) Version() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}

func (r *profileRepo) indexOf(id int) int {
	for i, p := range r.profiles {
		if p.ID == id {
			return i
		}
	}
	return -1
}

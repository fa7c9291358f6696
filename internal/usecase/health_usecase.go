package usecase

import (
	"context"

	"profile-directory/internal/domain"
)

// HealthStatus is reported by the health endpoint
type HealthStatus struct {
	Status       string `json:"status"`
	ProfileCount int    `json:"profile_count"`
}

type HealthUsecase interface {
	Check(ctx context.Context) (*HealthStatus, error)
}

type healthUsecase struct {
	repo domain.ProfileRepository
}

func NewHealthUsecase(repo domain.ProfileRepository) HealthUsecase {
	return &healthUsecase{repo: repo}
}

func (u *healthUsecase) Check(ctx context.Context) (*HealthStatus, error) {
	profiles, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return &HealthStatus{Status: "ok", ProfileCount: len(profiles)}, nil
}

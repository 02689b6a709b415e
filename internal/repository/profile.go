package repository

import (
	"context"

	"github.com/unighana/unighana-backend/internal/domain"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	FindByID(ctx context.Context, id string) (*domain.Profile, error)
	FindByEmail(ctx context.Context, email string) (*domain.Profile, error)
	SetEmailVerified(ctx context.Context, id string, verified bool) error
}

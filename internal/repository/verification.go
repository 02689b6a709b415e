package repository

import (
	"context"
	"time"

	"github.com/unighana/unighana-backend/internal/domain"
)

type VerificationRepository interface {
	Create(ctx context.Context, code *domain.VerificationCode) error

	// FindPending returns the unverified code matching (userID, code)
	// exactly, or domain.ErrInvalidCode if none exists.
	FindPending(ctx context.Context, userID, code string) (*domain.VerificationCode, error)

	// Consume atomically flips the code's verified flag false→true and sets
	// the profile's emailVerified flag in the same unit of work. It fails
	// with domain.ErrInvalidCode if another request consumed the code first.
	Consume(ctx context.Context, codeID, userID string, now time.Time) error
}

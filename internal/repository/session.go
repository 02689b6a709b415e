package repository

import (
	"context"

	"github.com/unighana/unighana-backend/internal/domain"
)

type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) (string, error)

	// Deactivate marks the session inactive and stamps loggedOutAt.
	// Returns domain.ErrSessionNotFound for an unknown id.
	Deactivate(ctx context.Context, sessionID string) error
}

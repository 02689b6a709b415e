package repository

import (
	"context"

	"github.com/unighana/unighana-backend/internal/domain"
)

type BookmarkRepository interface {
	// Upsert stores the school under the user's bookmarks, replacing any
	// prior bookmark of the same school.
	Upsert(ctx context.Context, bookmark *domain.Bookmark) error
	Delete(ctx context.Context, userID, schoolID string) error
	ListByUser(ctx context.Context, userID string) ([]domain.Bookmark, error)
}

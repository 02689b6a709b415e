package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/unighana/unighana-backend/internal/domain"
	"github.com/unighana/unighana-backend/internal/repository"
)

type BookmarkUsecase struct {
	bookmarks repository.BookmarkRepository
}

func NewBookmarkUsecase(bookmarks repository.BookmarkRepository) *BookmarkUsecase {
	return &BookmarkUsecase{bookmarks: bookmarks}
}

// Add pins a school to the user's bookmarks. Re-bookmarking the same school
// replaces the stored payload rather than duplicating it.
func (u *BookmarkUsecase) Add(ctx context.Context, userID, schoolID string, school map[string]any) error {
	if err := u.bookmarks.Upsert(ctx, &domain.Bookmark{
		UserID:       userID,
		SchoolID:     schoolID,
		School:       school,
		BookmarkedAt: time.Now(),
	}); err != nil {
		return fmt.Errorf("add bookmark: %w", err)
	}
	return nil
}

func (u *BookmarkUsecase) Remove(ctx context.Context, userID, schoolID string) error {
	if err := u.bookmarks.Delete(ctx, userID, schoolID); err != nil {
		return fmt.Errorf("remove bookmark: %w", err)
	}
	return nil
}

func (u *BookmarkUsecase) List(ctx context.Context, userID string) ([]domain.Bookmark, error) {
	return u.bookmarks.ListByUser(ctx, userID)
}

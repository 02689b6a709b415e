package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/unighana/unighana-backend/internal/domain"
)

type bookmarkDoc struct {
	UserID       string    `bson:"user_id"`
	SchoolID     string    `bson:"school_id"`
	School       bson.M    `bson:"school"`
	BookmarkedAt time.Time `bson:"bookmarked_at"`
}

type BookmarkRepository struct {
	coll *mongo.Collection
}

func NewBookmarkRepository(db *mongo.Database) *BookmarkRepository {
	return &BookmarkRepository{coll: db.Collection(bookmarkCollection)}
}

func (r *BookmarkRepository) Upsert(ctx context.Context, bookmark *domain.Bookmark) error {
	filter := bson.M{"user_id": bookmark.UserID, "school_id": bookmark.SchoolID}
	update := bson.M{"$set": bookmarkDoc{
		UserID:       bookmark.UserID,
		SchoolID:     bookmark.SchoolID,
		School:       bson.M(bookmark.School),
		BookmarkedAt: bookmark.BookmarkedAt,
	}}

	if _, err := r.coll.UpdateOne(ctx, filter, update, options.UpdateOne().SetUpsert(true)); err != nil {
		return fmt.Errorf("upsert bookmark: %w", err)
	}
	return nil
}

func (r *BookmarkRepository) Delete(ctx context.Context, userID, schoolID string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"user_id": userID, "school_id": schoolID}); err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}
	return nil
}

func (r *BookmarkRepository) ListByUser(ctx context.Context, userID string) ([]domain.Bookmark, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "bookmarked_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	defer cursor.Close(ctx)

	var bookmarks []domain.Bookmark
	for cursor.Next(ctx) {
		var doc bookmarkDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode bookmark: %w", err)
		}
		bookmarks = append(bookmarks, domain.Bookmark{
			UserID:       doc.UserID,
			SchoolID:     doc.SchoolID,
			School:       map[string]any(doc.School),
			BookmarkedAt: doc.BookmarkedAt,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookmarks: %w", err)
	}

	return bookmarks, nil
}

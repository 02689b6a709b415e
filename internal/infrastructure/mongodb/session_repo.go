package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/unighana/unighana-backend/internal/domain"
)

type sessionDoc struct {
	ID           string     `bson:"_id"`
	UserID       string     `bson:"user_id"`
	UserAgent    string     `bson:"user_agent"`
	IPAddress    string     `bson:"ip_address"`
	IsActive     bool       `bson:"is_active"`
	CreatedAt    time.Time  `bson:"created_at"`
	LastActiveAt time.Time  `bson:"last_active_at"`
	LoggedOutAt  *time.Time `bson:"logged_out_at,omitempty"`
}

type SessionRepository struct {
	coll *mongo.Collection
}

func NewSessionRepository(db *mongo.Database) *SessionRepository {
	return &SessionRepository{coll: db.Collection(sessionCollection)}
}

func (r *SessionRepository) Create(ctx context.Context, session *domain.Session) (string, error) {
	doc := sessionDoc{
		ID:           session.ID,
		UserID:       session.UserID,
		UserAgent:    session.UserAgent,
		IPAddress:    session.IPAddress,
		IsActive:     session.IsActive,
		CreatedAt:    session.CreatedAt,
		LastActiveAt: session.LastActiveAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("insert session: %w", err)
	}
	return doc.ID, nil
}

func (r *SessionRepository) Deactivate(ctx context.Context, sessionID string) error {
	res, err := r.coll.UpdateByID(ctx, sessionID, bson.M{"$set": bson.M{
		"is_active":     false,
		"logged_out_at": time.Now(),
	}})
	if err != nil {
		return fmt.Errorf("deactivate session: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

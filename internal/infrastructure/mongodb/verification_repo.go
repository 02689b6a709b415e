package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/unighana/unighana-backend/internal/domain"
)

type verificationDoc struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	Email     string    `bson:"email"`
	Code      string    `bson:"code"`
	Verified  bool      `bson:"verified"`
	CreatedAt time.Time `bson:"created_at"`
	ExpiresAt time.Time `bson:"expires_at"`
}

// VerificationRepository holds the client as well as the database because
// Consume spans two collections in one transaction.
type VerificationRepository struct {
	client *mongo.Client
	codes  *mongo.Collection
	users  *mongo.Collection
}

func NewVerificationRepository(client *mongo.Client, db *mongo.Database) *VerificationRepository {
	return &VerificationRepository{
		client: client,
		codes:  db.Collection(verificationCollection),
		users:  db.Collection(profileCollection),
	}
}

func (r *VerificationRepository) Create(ctx context.Context, code *domain.VerificationCode) error {
	doc := verificationDoc{
		ID:        code.ID,
		UserID:    code.UserID,
		Email:     code.Email,
		Code:      code.Code,
		Verified:  code.Verified,
		CreatedAt: code.CreatedAt,
		ExpiresAt: code.ExpiresAt,
	}

	if _, err := r.codes.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert verification code: %w", err)
	}
	return nil
}

func (r *VerificationRepository) FindPending(ctx context.Context, userID, code string) (*domain.VerificationCode, error) {
	filter := bson.M{"user_id": userID, "code": code, "verified": false}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var doc verificationDoc
	if err := r.codes.FindOne(ctx, filter, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInvalidCode
		}
		return nil, fmt.Errorf("find verification code: %w", err)
	}

	return &domain.VerificationCode{
		ID:        doc.ID,
		UserID:    doc.UserID,
		Email:     doc.Email,
		Code:      doc.Code,
		Verified:  doc.Verified,
		CreatedAt: doc.CreatedAt,
		ExpiresAt: doc.ExpiresAt,
	}, nil
}

// Consume marks the code verified and the profile email-verified in one
// transaction, so the store never exposes a verified code alongside an
// unverified profile. The verified:false guard in the filter doubles as a
// compare-and-swap against concurrent consumption of the same code.
func (r *VerificationRepository) Consume(ctx context.Context, codeID, userID string, now time.Time) error {
	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(ctx context.Context) (any, error) {
		res, err := r.codes.UpdateOne(ctx,
			bson.M{"_id": codeID, "verified": false},
			bson.M{"$set": bson.M{"verified": true, "verified_at": now}},
		)
		if err != nil {
			return nil, fmt.Errorf("mark code verified: %w", err)
		}
		if res.ModifiedCount == 0 {
			return nil, domain.ErrInvalidCode
		}

		if _, err := r.users.UpdateByID(ctx, userID,
			bson.M{"$set": bson.M{"email_verified": true}},
		); err != nil {
			return nil, fmt.Errorf("mark profile verified: %w", err)
		}

		return nil, nil
	})
	return err
}

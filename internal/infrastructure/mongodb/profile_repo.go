package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/unighana/unighana-backend/internal/domain"
)

type profileDoc struct {
	ID             string    `bson:"_id"`
	FirstName      string    `bson:"first_name"`
	LastName       string    `bson:"last_name"`
	Email          string    `bson:"email"`
	EducationLevel string    `bson:"education_level"`
	EmailVerified  bool      `bson:"email_verified"`
	ProfileImage   string    `bson:"profile_image,omitempty"`
	CreatedAt      time.Time `bson:"created_at"`
}

type ProfileRepository struct {
	coll *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{coll: db.Collection(profileCollection)}
}

func (r *ProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	doc := profileDoc{
		ID:             profile.ID,
		FirstName:      profile.FirstName,
		LastName:       profile.LastName,
		Email:          profile.Email,
		EducationLevel: profile.EducationLevel,
		EmailVerified:  profile.EmailVerified,
		ProfileImage:   profile.ProfileImage,
		CreatedAt:      profile.CreatedAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) FindByID(ctx context.Context, id string) (*domain.Profile, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *ProfileRepository) FindByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *ProfileRepository) SetEmailVerified(ctx context.Context, id string, verified bool) error {
	res, err := r.coll.UpdateByID(ctx, id, bson.M{"$set": bson.M{"email_verified": verified}})
	if err != nil {
		return fmt.Errorf("update email_verified: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *ProfileRepository) findOne(ctx context.Context, filter bson.M) (*domain.Profile, error) {
	var doc profileDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}

	return &domain.Profile{
		ID:             doc.ID,
		FirstName:      doc.FirstName,
		LastName:       doc.LastName,
		Email:          doc.Email,
		EducationLevel: doc.EducationLevel,
		EmailVerified:  doc.EmailVerified,
		ProfileImage:   doc.ProfileImage,
		CreatedAt:      doc.CreatedAt,
	}, nil
}

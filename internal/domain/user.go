package domain

import "time"

// Profile is the application-level user document, keyed 1:1 by the identity
// id assigned at the identity provider. EmailVerified is a denormalized copy
// of the provider's flag; the verification-code flow keeps the two in sync.
type Profile struct {
	ID             string
	FirstName      string
	LastName       string
	Email          string
	EducationLevel string
	EmailVerified  bool
	ProfileImage   string
	CreatedAt      time.Time
}

// Bookmark pins a school to a user's profile. The school payload is stored
// as-is so the frontend round-trips whatever shape it sent.
type Bookmark struct {
	UserID       string
	SchoolID     string
	School       map[string]any
	BookmarkedAt time.Time
}

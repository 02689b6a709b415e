package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/unighana/unighana-backend/internal/domain"
	"github.com/unighana/unighana-backend/internal/identity"
)

// Resolve decides what a completed federated handshake maps to:
//
//   - no identity for the email     → create identity + profile
//   - identity linked to a password → reject (prevents a silent merge that
//     would hand the federated caller an account someone registered with a
//     password)
//   - identity linked to Google     → log in against the existing profile
//   - anything else                 → reject
//
// Failures surface as the tagged errors the OAuth callback redirects on.
func (u *AuthUsecase) Resolve(ctx context.Context, fp domain.FederatedProfile) (*domain.Profile, error) {
	if fp.Email == "" {
		return nil, domain.ErrFederatedAuthFailed
	}

	ident, err := u.identities.GetUserByEmail(ctx, fp.Email)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return u.createFederated(ctx, fp)
	case err != nil:
		u.logger.ErrorContext(ctx, "federated identity lookup", "error", err)
		return nil, domain.ErrFederatedAuthFailed
	}

	if ident.HasProvider(domain.ProviderPassword) {
		return nil, domain.ErrEmailPasswordExists
	}

	if ident.HasProvider(domain.ProviderGoogle) {
		profile, err := u.profiles.FindByID(ctx, ident.ID)
		if errors.Is(err, domain.ErrUserNotFound) {
			// Identity exists but its profile document is missing. Heal by
			// recreating it from the federated attributes.
			return u.createProfile(ctx, ident.ID, fp)
		}
		if err != nil {
			return nil, fmt.Errorf("find federated profile: %w", err)
		}
		return profile, nil
	}

	// Linked to neither a password nor this provider: reject rather than
	// risk creating a duplicate account for an email that already has one.
	u.logger.WarnContext(ctx, "federated login for identity with unrecognized providers",
		"user_id", ident.ID)
	return nil, domain.ErrFederatedAuthFailed
}

// FederatedLogin resolves the federated profile and issues a session token
// through the same issuer as the password path.
func (u *AuthUsecase) FederatedLogin(ctx context.Context, fp domain.FederatedProfile) (*domain.Profile, string, error) {
	profile, err := u.Resolve(ctx, fp)
	if err != nil {
		return nil, "", err
	}

	signed, err := u.tokens.Issue(profile.ID, profile.Email)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return profile, signed, nil
}

func (u *AuthUsecase) createFederated(ctx context.Context, fp domain.FederatedProfile) (*domain.Profile, error) {
	userID, err := u.identities.CreateUser(ctx, identity.CreateUserParams{
		Email:         fp.Email,
		DisplayName:   fp.FirstName + " " + fp.LastName,
		EmailVerified: fp.EmailVerified,
	})
	if err != nil {
		u.logger.ErrorContext(ctx, "create federated identity", "error", err)
		return nil, domain.ErrFederatedAuthFailed
	}

	return u.createProfile(ctx, userID, fp)
}

func (u *AuthUsecase) createProfile(ctx context.Context, userID string, fp domain.FederatedProfile) (*domain.Profile, error) {
	profile := &domain.Profile{
		ID:             userID,
		FirstName:      fp.FirstName,
		LastName:       fp.LastName,
		Email:          fp.Email,
		EducationLevel: "",
		EmailVerified:  fp.EmailVerified,
		CreatedAt:      time.Now(),
	}
	if err := u.profiles.Create(ctx, profile); err != nil {
		u.logger.ErrorContext(ctx, "create federated profile", "error", err)
		return nil, domain.ErrFederatedAuthFailed
	}
	return profile, nil
}

package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/unighana/unighana-backend/internal/domain"
	"github.com/unighana/unighana-backend/internal/email"
	"github.com/unighana/unighana-backend/internal/identity"
	"github.com/unighana/unighana-backend/internal/repository"
	"github.com/unighana/unighana-backend/internal/token"
)

// IdentityStore is the subset of the identity provider client the auth flows
// need. Defined here so tests can inject a fake.
type IdentityStore interface {
	CreateUser(ctx context.Context, params identity.CreateUserParams) (string, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.Identity, error)
	VerifyPassword(ctx context.Context, email, password string) error
	SetEmailVerified(ctx context.Context, userID string, verified bool) error
}

type AuthUsecase struct {
	identities IdentityStore
	profiles   repository.ProfileRepository
	codes      repository.VerificationRepository
	sessions   repository.SessionRepository
	email      email.Sender
	tokens     *token.Issuer
	logger     *slog.Logger
}

func NewAuthUsecase(
	identities IdentityStore,
	profiles repository.ProfileRepository,
	codes repository.VerificationRepository,
	sessions repository.SessionRepository,
	emailSender email.Sender,
	tokens *token.Issuer,
	logger *slog.Logger,
) *AuthUsecase {
	return &AuthUsecase{
		identities: identities,
		profiles:   profiles,
		codes:      codes,
		sessions:   sessions,
		email:      emailSender,
		tokens:     tokens,
		logger:     logger.With("component", "auth_usecase"),
	}
}

type SignupInput struct {
	FirstName      string
	LastName       string
	Email          string
	Password       string
	EducationLevel string
}

// Signup registers the account at the identity provider, creates the profile
// document, and emails a verification code. The provider's email-uniqueness
// constraint is what rejects duplicate signups; there is no local
// check-then-act window.
func (u *AuthUsecase) Signup(ctx context.Context, in SignupInput) (string, error) {
	userID, err := u.identities.CreateUser(ctx, identity.CreateUserParams{
		Email:         in.Email,
		Password:      in.Password,
		DisplayName:   in.FirstName + " " + in.LastName,
		EmailVerified: false,
	})
	if err != nil {
		return "", fmt.Errorf("create identity: %w", err)
	}

	profile := &domain.Profile{
		ID:             userID,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Email:          in.Email,
		EducationLevel: in.EducationLevel,
		EmailVerified:  false,
		CreatedAt:      time.Now(),
	}
	if err := u.profiles.Create(ctx, profile); err != nil {
		return "", fmt.Errorf("create profile: %w", err)
	}

	if err := u.issueAndSendCode(ctx, userID, in.Email); err != nil {
		return "", err
	}

	return userID, nil
}

type LoginInput struct {
	Email     string
	Password  string
	UserAgent string
	IPAddress string
}

type LoginResult struct {
	Profile   *domain.Profile
	Token     string
	SessionID string
}

// Login resolves the identity by email, verifies the password against the
// provider, writes a session audit record, and issues a self-signed token.
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	ident, err := u.identities.GetUserByEmail(ctx, in.Email)
	if err != nil {
		// Unknown email and provider failure look identical to the client.
		return nil, domain.ErrInvalidCredentials
	}

	profile, err := u.profiles.FindByID(ctx, ident.ID)
	if err != nil {
		return nil, fmt.Errorf("find profile: %w", err)
	}

	if err := u.identities.VerifyPassword(ctx, in.Email, in.Password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	signed, err := u.tokens.Issue(ident.ID, profile.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	now := time.Now()
	sessionID, err := u.sessions.Create(ctx, &domain.Session{
		ID:           uuid.NewString(),
		UserID:       ident.ID,
		UserAgent:    in.UserAgent,
		IPAddress:    in.IPAddress,
		IsActive:     true,
		CreatedAt:    now,
		LastActiveAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &LoginResult{Profile: profile, Token: signed, SessionID: sessionID}, nil
}

// VerifyEmail consumes a verification code. An expired code fails without
// being consumed; a consumed code never verifies twice.
func (u *AuthUsecase) VerifyEmail(ctx context.Context, userID, code string) error {
	vc, err := u.codes.FindPending(ctx, userID, code)
	if err != nil {
		return err
	}

	now := time.Now()
	if vc.Expired(now) {
		return domain.ErrCodeExpired
	}

	if err := u.codes.Consume(ctx, vc.ID, userID, now); err != nil {
		return err
	}

	// The profile flag is what the API serves; the provider's own flag is
	// synced afterwards and failures only cost a log line.
	if err := u.identities.SetEmailVerified(ctx, userID, true); err != nil {
		u.logger.WarnContext(ctx, "sync provider emailVerified", "user_id", userID, "error", err)
	}

	return nil
}

// ResendVerification issues a fresh code without invalidating earlier ones.
func (u *AuthUsecase) ResendVerification(ctx context.Context, userID string) error {
	profile, err := u.profiles.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("find profile: %w", err)
	}

	return u.issueAndSendCode(ctx, userID, profile.Email)
}

func (u *AuthUsecase) Logout(ctx context.Context, sessionID string) error {
	return u.sessions.Deactivate(ctx, sessionID)
}

func (u *AuthUsecase) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	return u.profiles.FindByID(ctx, userID)
}

func (u *AuthUsecase) issueAndSendCode(ctx context.Context, userID, emailAddr string) error {
	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}

	now := time.Now()
	vc := &domain.VerificationCode{
		ID:        uuid.NewString(),
		UserID:    userID,
		Email:     emailAddr,
		Code:      code,
		Verified:  false,
		CreatedAt: now,
		ExpiresAt: now.Add(domain.CodeTTL),
	}
	if err := u.codes.Create(ctx, vc); err != nil {
		return fmt.Errorf("store verification code: %w", err)
	}

	if err := u.email.Send(ctx, emailAddr, email.VerificationSubject(), email.VerificationBody(code)); err != nil {
		return fmt.Errorf("send verification email: %w", err)
	}
	return nil
}

// generateCode returns a uniformly random 5-digit decimal code in
// [10000, 99999].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(90000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%05d", n.Int64()+10000), nil
}

package oauth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	googleoauth "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/unighana/unighana-backend/internal/domain"
)

var ErrNoEmail = errors.New("federated profile has no email")

// GoogleProvider drives the redirect half of the Google OAuth handshake and
// turns the granted code into the (email, name, verified) tuple the
// federation merge consumes.
type GoogleProvider struct {
	config *oauth2.Config
}

func NewGoogleProvider(clientID, clientSecret, callbackURL string) *GoogleProvider {
	return &GoogleProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  callbackURL,
			Scopes:       []string{"openid", "profile", "email"},
			Endpoint:     google.Endpoint,
		},
	}
}

// AuthCodeURL returns the consent-screen URL carrying the anti-CSRF state.
func (p *GoogleProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state)
}

// Exchange trades the authorization code for tokens and fetches the user's
// profile attributes.
func (p *GoogleProvider) Exchange(ctx context.Context, code string) (*domain.FederatedProfile, error) {
	tok, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}

	svc, err := googleoauth.NewService(ctx, option.WithTokenSource(p.config.TokenSource(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("oauth2 service: %w", err)
	}

	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("fetch userinfo: %w", err)
	}
	if info.Email == "" {
		return nil, ErrNoEmail
	}

	verified := info.VerifiedEmail != nil && *info.VerifiedEmail
	return &domain.FederatedProfile{
		Email:         info.Email,
		FirstName:     info.GivenName,
		LastName:      info.FamilyName,
		EmailVerified: verified,
	}, nil
}

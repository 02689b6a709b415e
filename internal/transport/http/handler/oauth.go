package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/unighana/unighana-backend/internal/domain"
	"github.com/unighana/unighana-backend/internal/metrics"
)

const stateCookie = "oauth_state"

type googleProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*domain.FederatedProfile, error)
}

type federatedLoginer interface {
	FederatedLogin(ctx context.Context, fp domain.FederatedProfile) (*domain.Profile, string, error)
}

// OAuthHandler drives the browser half of the federated login flow. Every
// outcome ends in a redirect to the frontend: success carries token and user
// in the query string, failure carries a stable reason tag.
type OAuthHandler struct {
	provider    googleProvider
	authUsecase federatedLoginer
	frontendURL string
	logger      *slog.Logger
}

func NewOAuthHandler(provider googleProvider, authUsecase federatedLoginer, frontendURL string, logger *slog.Logger) *OAuthHandler {
	return &OAuthHandler{
		provider:    provider,
		authUsecase: authUsecase,
		frontendURL: frontendURL,
		logger:      logger.With("component", "oauth_handler"),
	}
}

// GET /auth/google
func (h *OAuthHandler) GoogleLogin(c *gin.Context) {
	state := uuid.NewString()
	c.SetCookie(stateCookie, state, 600, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, h.provider.AuthCodeURL(state))
}

// GET /auth/google/callback
func (h *OAuthHandler) GoogleCallback(c *gin.Context) {
	if errParam := c.Query("error"); errParam != "" {
		h.logger.WarnContext(c.Request.Context(), "consent screen returned error", "error", errParam)
		h.redirectFailure(c, domain.ErrFederatedAuthFailed.Error())
		return
	}

	state, err := c.Cookie(stateCookie)
	if err != nil || state == "" || c.Query("state") != state {
		h.logger.WarnContext(c.Request.Context(), "oauth state mismatch")
		h.redirectFailure(c, domain.ErrFederatedAuthFailed.Error())
		return
	}
	c.SetCookie(stateCookie, "", -1, "/", "", false, true)

	fp, err := h.provider.Exchange(c.Request.Context(), c.Query("code"))
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "oauth exchange", "error", err)
		metrics.LoginsTotal.WithLabelValues("google", "error").Inc()
		h.redirectFailure(c, domain.ErrFederatedAuthFailed.Error())
		return
	}

	profile, token, err := h.authUsecase.FederatedLogin(c.Request.Context(), *fp)
	if err != nil {
		reason := domain.ErrFederatedAuthFailed.Error()
		if errors.Is(err, domain.ErrEmailPasswordExists) {
			reason = domain.ErrEmailPasswordExists.Error()
		}
		metrics.LoginsTotal.WithLabelValues("google", reason).Inc()
		h.redirectFailure(c, reason)
		return
	}

	userJSON, err := json.Marshal(map[string]string{
		"id":        profile.ID,
		"firstName": profile.FirstName,
		"lastName":  profile.LastName,
		"email":     profile.Email,
	})
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "marshal federated user", "error", err)
		h.redirectFailure(c, domain.ErrFederatedAuthFailed.Error())
		return
	}

	metrics.LoginsTotal.WithLabelValues("google", "ok").Inc()
	query := url.Values{}
	query.Set("token", token)
	query.Set("user", string(userJSON))
	c.Redirect(http.StatusFound, h.frontendURL+"/landing-page?"+query.Encode())
}

func (h *OAuthHandler) redirectFailure(c *gin.Context, reason string) {
	c.Redirect(http.StatusFound, h.frontendURL+"/register?error="+url.QueryEscape(reason))
}

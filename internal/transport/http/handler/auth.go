package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/unighana/unighana-backend/internal/domain"
	"github.com/unighana/unighana-backend/internal/metrics"
	"github.com/unighana/unighana-backend/internal/usecase"
)

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	Signup(ctx context.Context, in usecase.SignupInput) (string, error)
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginResult, error)
	VerifyEmail(ctx context.Context, userID, code string) error
	ResendVerification(ctx context.Context, userID string) error
	Logout(ctx context.Context, sessionID string) error
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
}

type AuthHandler struct {
	authUsecase authUsecaser
	logger      *slog.Logger
}

func NewAuthHandler(authUsecase authUsecaser, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		logger:      logger.With("component", "auth_handler"),
	}
}

type signupRequest struct {
	FirstName      string `json:"firstName"      binding:"required,max=100"`
	LastName       string `json:"lastName"       binding:"required,max=100"`
	Email          string `json:"email"          binding:"required,email"`
	Password       string `json:"password"       binding:"required,min=6,max=128"`
	EducationLevel string `json:"educationLevel" binding:"max=100"`
}

// POST /signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	userID, err := h.authUsecase.Signup(c.Request.Context(), usecase.SignupInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Password:       req.Password,
		EducationLevel: req.EducationLevel,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			metrics.SignupsTotal.WithLabelValues("duplicate_email").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": errDuplicateEmail})
			return
		}
		metrics.SignupsTotal.WithLabelValues("error").Inc()
		h.logger.ErrorContext(c.Request.Context(), "signup", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": errInternalServer})
		return
	}

	metrics.SignupsTotal.WithLabelValues("ok").Inc()
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User created successfully. Please verify your email.",
		"userId":  userID,
	})
}

type loginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginUser struct {
	ID             string `json:"id"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	EducationLevel string `json:"educationLevel"`
	EmailVerified  bool   `json:"emailVerified"`
}

// POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	result, err := h.authUsecase.Login(c.Request.Context(), usecase.LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("password", "invalid_credentials").Inc()
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": errInvalidCredentials})
		case errors.Is(err, domain.ErrUserNotFound):
			metrics.LoginsTotal.WithLabelValues("password", "not_found").Inc()
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User account not found"})
		default:
			metrics.LoginsTotal.WithLabelValues("password", "error").Inc()
			h.logger.ErrorContext(c.Request.Context(), "login", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": errInternalServer})
		}
		return
	}

	metrics.LoginsTotal.WithLabelValues("password", "ok").Inc()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"user": loginUser{
			ID:             result.Profile.ID,
			FirstName:      result.Profile.FirstName,
			LastName:       result.Profile.LastName,
			Email:          result.Profile.Email,
			EducationLevel: result.Profile.EducationLevel,
			EmailVerified:  result.Profile.EmailVerified,
		},
		"token":     result.Token,
		"sessionId": result.SessionID,
	})
}

type verifyEmailRequest struct {
	UserID string `json:"userId" binding:"required"`
	Code   string `json:"code"   binding:"required,len=5,numeric"`
}

// POST /verify-email
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req verifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User ID and verification code are required"})
		return
	}

	if err := h.authUsecase.VerifyEmail(c.Request.Context(), req.UserID, req.Code); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCode):
			metrics.VerificationsTotal.WithLabelValues("invalid_code").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": errInvalidCode})
		case errors.Is(err, domain.ErrCodeExpired):
			metrics.VerificationsTotal.WithLabelValues("expired").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": errCodeExpired})
		default:
			metrics.VerificationsTotal.WithLabelValues("error").Inc()
			h.logger.ErrorContext(c.Request.Context(), "verify email", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": errInternalServer})
		}
		return
	}

	metrics.VerificationsTotal.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Email verified successfully"})
}

type resendVerificationRequest struct {
	UserID string `json:"userId" binding:"required"`
}

// POST /resend-verification
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var req resendVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User ID is required"})
		return
	}

	if err := h.authUsecase.ResendVerification(c.Request.Context(), req.UserID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": errUserNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "resend verification", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Verification code resent successfully"})
}

type logoutRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
}

// POST /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	var req logoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Session ID is required"})
		return
	}

	if err := h.authUsecase.Logout(c.Request.Context(), req.SessionID); err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": errSessionNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "logout", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}

type profileResponse struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	EducationLevel string    `json:"educationLevel"`
	ProfileImage   string    `json:"profileImage,omitempty"`
	EmailVerified  bool      `json:"emailVerified"`
	CreatedAt      time.Time `json:"createdAt"`
}

// GET /user/profile. The user comes from the validated bearer token.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID := c.GetString("userID")

	profile, err := h.authUsecase.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": errUserNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "get profile", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, profileResponse{
		ID:             profile.ID,
		FirstName:      profile.FirstName,
		LastName:       profile.LastName,
		Email:          profile.Email,
		EducationLevel: profile.EducationLevel,
		ProfileImage:   profile.ProfileImage,
		EmailVerified:  profile.EmailVerified,
		CreatedAt:      profile.CreatedAt,
	})
}

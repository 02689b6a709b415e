package httptransport

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"

	"github.com/unighana/unighana-backend/internal/token"
	"github.com/unighana/unighana-backend/internal/transport/http/handler"
	"github.com/unighana/unighana-backend/internal/transport/http/middleware"
)

func NewRouter(
	logger *slog.Logger,
	authHandler *handler.AuthHandler,
	oauthHandler *handler.OAuthHandler,
	bookmarkHandler *handler.BookmarkHandler,
	admissionHandler *handler.AdmissionHandler,
	tokens *token.Issuer,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	// Public auth routes
	r.POST("/signup", authHandler.Signup)
	r.POST("/login", authHandler.Login)
	r.POST("/verify-email", authHandler.VerifyEmail)
	r.POST("/resend-verification", authHandler.ResendVerification)
	r.POST("/logout", authHandler.Logout)

	// Federated login
	r.GET("/auth/google", oauthHandler.GoogleLogin)
	r.GET("/auth/google/callback", oauthHandler.GoogleCallback)

	// Schools
	r.GET("/schools/knust-admission", admissionHandler.Get)

	// Protected routes
	authMW := middleware.Auth(tokens, logger)
	r.GET("/user/profile", authMW, authHandler.GetProfile)
	r.POST("/bookmark", authMW, bookmarkHandler.Add)
	r.POST("/unbookmark", authMW, bookmarkHandler.Remove)
	r.GET("/bookmarks/:userId", authMW, bookmarkHandler.List)

	return r
}

package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/unighana/unighana-backend/config"
	"github.com/unighana/unighana-backend/internal/email"
	"github.com/unighana/unighana-backend/internal/health"
	"github.com/unighana/unighana-backend/internal/identity"
	"github.com/unighana/unighana-backend/internal/infrastructure/mongodb"
	ctxlog "github.com/unighana/unighana-backend/internal/log"
	"github.com/unighana/unighana-backend/internal/metrics"
	"github.com/unighana/unighana-backend/internal/oauth"
	"github.com/unighana/unighana-backend/internal/scraper"
	"github.com/unighana/unighana-backend/internal/token"
	httptransport "github.com/unighana/unighana-backend/internal/transport/http"
	"github.com/unighana/unighana-backend/internal/transport/http/handler"
	"github.com/unighana/unighana-backend/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	client, err := mongodb.Connect(ctx, cfg.MongoURI)
	if err != nil {
		stop()
		log.Fatalf("mongodb: %v", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			logger.Error("mongodb disconnect", "error", err)
		}
	}()

	db := client.Database(cfg.MongoDatabase)
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		stop()
		log.Fatalf("mongodb indexes: %v", err)
	}

	// Auth core
	identities := identity.NewClient(cfg.IdentityBaseURL, cfg.IdentityAPIKey, logger)
	tokens := token.NewIssuer([]byte(cfg.JWTSecret), cfg.SessionTokenTTL)
	sender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)

	profileRepo := mongodb.NewProfileRepository(db)
	verificationRepo := mongodb.NewVerificationRepository(client, db)
	sessionRepo := mongodb.NewSessionRepository(db)
	authUsecase := usecase.NewAuthUsecase(identities, profileRepo, verificationRepo, sessionRepo, sender, tokens, logger)
	authHandler := handler.NewAuthHandler(authUsecase, logger)

	// Federated login
	google := oauth.NewGoogleProvider(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.OAuthCallbackURL)
	oauthHandler := handler.NewOAuthHandler(google, authUsecase, cfg.FrontendBaseURL, logger)

	// Bookmarks
	bookmarkRepo := mongodb.NewBookmarkRepository(db)
	bookmarkUsecase := usecase.NewBookmarkUsecase(bookmarkRepo)
	bookmarkHandler := handler.NewBookmarkHandler(bookmarkUsecase, logger)

	// Admissions scrape cache
	refresher := scraper.NewRefresher(scraper.New(cfg.AdmissionPageURL), logger)
	if err := refresher.Start(cfg.AdmissionRefresh); err != nil {
		stop()
		log.Fatalf("admission refresher: %v", err)
	}
	defer refresher.Stop()
	admissionHandler := handler.NewAdmissionHandler(refresher, logger)

	metrics.Register()
	checker := health.NewChecker(mongodb.Pinger{Client: client}, logger, prometheus.DefaultRegisterer)

	srv := http.Server{
		Addr:    ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, authHandler, oauthHandler, bookmarkHandler, admissionHandler, tokens),
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}

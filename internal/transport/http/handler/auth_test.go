package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/unighana/unighana-backend/internal/domain"
	"github.com/unighana/unighana-backend/internal/transport/http/handler"
	"github.com/unighana/unighana-backend/internal/usecase"
)

type fakeAuthUsecase struct {
	signup             func(ctx context.Context, in usecase.SignupInput) (string, error)
	login              func(ctx context.Context, in usecase.LoginInput) (*usecase.LoginResult, error)
	verifyEmail        func(ctx context.Context, userID, code string) error
	resendVerification func(ctx context.Context, userID string) error
	logout             func(ctx context.Context, sessionID string) error
	getProfile         func(ctx context.Context, userID string) (*domain.Profile, error)
}

func (f *fakeAuthUsecase) Signup(ctx context.Context, in usecase.SignupInput) (string, error) {
	return f.signup(ctx, in)
}

func (f *fakeAuthUsecase) Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginResult, error) {
	return f.login(ctx, in)
}

func (f *fakeAuthUsecase) VerifyEmail(ctx context.Context, userID, code string) error {
	return f.verifyEmail(ctx, userID, code)
}

func (f *fakeAuthUsecase) ResendVerification(ctx context.Context, userID string) error {
	return f.resendVerification(ctx, userID)
}

func (f *fakeAuthUsecase) Logout(ctx context.Context, sessionID string) error {
	return f.logout(ctx, sessionID)
}

func (f *fakeAuthUsecase) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	return f.getProfile(ctx, userID)
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func newAuthRouter(fake *fakeAuthUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewAuthHandler(fake, slog.Default())
	r := gin.New()
	r.POST("/signup", h.Signup)
	r.POST("/login", h.Login)
	r.POST("/verify-email", h.VerifyEmail)
	r.POST("/resend-verification", h.ResendVerification)
	r.POST("/logout", h.Logout)
	r.GET("/user/profile", func(c *gin.Context) {
		c.Set("userID", "user-1")
		h.GetProfile(c)
	})
	return r
}

var validSignup = map[string]string{
	"firstName":      "Ama",
	"lastName":       "Mensah",
	"email":          "ama@example.com",
	"password":       "secret123",
	"educationLevel": "SHS",
}

func TestSignup_Created(t *testing.T) {
	fake := &fakeAuthUsecase{
		signup: func(_ context.Context, in usecase.SignupInput) (string, error) {
			if in.Email != "ama@example.com" {
				t.Errorf("signup email = %q", in.Email)
			}
			return "user-1", nil
		},
	}
	w := postJSON(t, newAuthRouter(fake), "/signup", validSignup)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["userId"] != "user-1" {
		t.Errorf("userId = %v, want user-1", body["userId"])
	}
	if body["success"] != true {
		t.Errorf("success = %v, want true", body["success"])
	}
}

func TestSignup_MissingFields_BadRequest(t *testing.T) {
	fake := &fakeAuthUsecase{
		signup: func(_ context.Context, _ usecase.SignupInput) (string, error) {
			t.Error("usecase must not run on a failed binding")
			return "", nil
		},
	}
	w := postJSON(t, newAuthRouter(fake), "/signup", map[string]string{"email": "ama@example.com"})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestSignup_DuplicateEmail_BadRequest(t *testing.T) {
	fake := &fakeAuthUsecase{
		signup: func(_ context.Context, _ usecase.SignupInput) (string, error) {
			return "", domain.ErrDuplicateEmail
		},
	}
	w := postJSON(t, newAuthRouter(fake), "/signup", validSignup)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	body := decodeBody(t, w)
	if body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
}

func TestLogin_OK(t *testing.T) {
	fake := &fakeAuthUsecase{
		login: func(_ context.Context, in usecase.LoginInput) (*usecase.LoginResult, error) {
			return &usecase.LoginResult{
				Profile: &domain.Profile{
					ID:            "user-1",
					FirstName:     "Ama",
					Email:         in.Email,
					EmailVerified: true,
					CreatedAt:     time.Now(),
				},
				Token:     "signed.jwt.token",
				SessionID: "sess-1",
			}, nil
		},
	}
	w := postJSON(t, newAuthRouter(fake), "/login", map[string]string{
		"email": "ama@example.com", "password": "secret123",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["token"] != "signed.jwt.token" {
		t.Errorf("token = %v", body["token"])
	}
	if body["sessionId"] != "sess-1" {
		t.Errorf("sessionId = %v", body["sessionId"])
	}
	user, ok := body["user"].(map[string]any)
	if !ok {
		t.Fatalf("user missing from body: %v", body)
	}
	if user["id"] != "user-1" || user["emailVerified"] != true {
		t.Errorf("user = %v", user)
	}
}

func TestLogin_InvalidCredentials_Unauthorized(t *testing.T) {
	fake := &fakeAuthUsecase{
		login: func(_ context.Context, _ usecase.LoginInput) (*usecase.LoginResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	w := postJSON(t, newAuthRouter(fake), "/login", map[string]string{
		"email": "ama@example.com", "password": "wrong",
	})

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestLogin_MissingProfile_NotFound(t *testing.T) {
	fake := &fakeAuthUsecase{
		login: func(_ context.Context, _ usecase.LoginInput) (*usecase.LoginResult, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	w := postJSON(t, newAuthRouter(fake), "/login", map[string]string{
		"email": "ama@example.com", "password": "secret123",
	})

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestVerifyEmail_OK(t *testing.T) {
	fake := &fakeAuthUsecase{
		verifyEmail: func(_ context.Context, userID, code string) error {
			if userID != "user-1" || code != "12345" {
				t.Errorf("VerifyEmail(%q, %q)", userID, code)
			}
			return nil
		},
	}
	w := postJSON(t, newAuthRouter(fake), "/verify-email", map[string]string{
		"userId": "user-1", "code": "12345",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
}

func TestVerifyEmail_NonNumericCode_BadRequest(t *testing.T) {
	fake := &fakeAuthUsecase{
		verifyEmail: func(_ context.Context, _, _ string) error {
			t.Error("usecase must not run on a failed binding")
			return nil
		},
	}
	w := postJSON(t, newAuthRouter(fake), "/verify-email", map[string]string{
		"userId": "user-1", "code": "12a45",
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestVerifyEmail_InvalidAndExpired_DistinctMessages(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"invalid", domain.ErrInvalidCode},
		{"expired", domain.ErrCodeExpired},
	}

	var messages []string
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeAuthUsecase{
				verifyEmail: func(_ context.Context, _, _ string) error { return tc.err },
			}
			w := postJSON(t, newAuthRouter(fake), "/verify-email", map[string]string{
				"userId": "user-1", "code": "12345",
			})

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
			body := decodeBody(t, w)
			msg, _ := body["message"].(string)
			if msg == "" {
				t.Fatal("missing message")
			}
			messages = append(messages, msg)
		})
	}

	if len(messages) == 2 && messages[0] == messages[1] {
		t.Errorf("invalid and expired codes share message %q", messages[0])
	}
}

func TestResendVerification_UnknownUser_NotFound(t *testing.T) {
	fake := &fakeAuthUsecase{
		resendVerification: func(_ context.Context, _ string) error {
			return domain.ErrUserNotFound
		},
	}
	w := postJSON(t, newAuthRouter(fake), "/resend-verification", map[string]string{"userId": "ghost"})

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestLogout_UnknownSession_NotFound(t *testing.T) {
	fake := &fakeAuthUsecase{
		logout: func(_ context.Context, _ string) error {
			return domain.ErrSessionNotFound
		},
	}
	w := postJSON(t, newAuthRouter(fake), "/logout", map[string]string{"sessionId": "nope"})

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestGetProfile_OK(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	fake := &fakeAuthUsecase{
		getProfile: func(_ context.Context, userID string) (*domain.Profile, error) {
			if userID != "user-1" {
				t.Errorf("GetProfile userID = %q", userID)
			}
			return &domain.Profile{
				ID:            userID,
				FirstName:     "Ama",
				LastName:      "Mensah",
				Email:         "ama@example.com",
				EmailVerified: true,
				CreatedAt:     created,
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/user/profile", nil)
	w := httptest.NewRecorder()
	newAuthRouter(fake).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["id"] != "user-1" || body["email"] != "ama@example.com" {
		t.Errorf("body = %v", body)
	}
}

package token_test

import (
	"errors"
	"testing"
	"time"

	"github.com/unighana/unighana-backend/internal/token"
)

const testSecret = "token-test-secret-at-least-32-ch!!"

func TestIssueThenValidate_RoundTripsClaims(t *testing.T) {
	issuer := token.NewIssuer([]byte(testSecret), 2*time.Hour)

	signed, err := issuer.Issue("user-1", "a@x.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := issuer.Validate(signed)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("UserID = %q, want %q", claims.UserID, "user-1")
	}
	if claims.Email != "a@x.com" {
		t.Errorf("Email = %q, want %q", claims.Email, "a@x.com")
	}
}

func TestValidate_PastExpiry_FailsExpired(t *testing.T) {
	issuer := token.NewIssuer([]byte(testSecret), -time.Second)

	signed, err := issuer.Issue("user-1", "a@x.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	_, err = issuer.Validate(signed)
	if !errors.Is(err, token.ErrExpired) {
		t.Errorf("err = %v, want ErrExpired", err)
	}
}

func TestValidate_DifferentSecret_FailsBadSignature(t *testing.T) {
	issuer := token.NewIssuer([]byte(testSecret), time.Hour)
	other := token.NewIssuer([]byte("another-secret-that-is-32-chars!!!"), time.Hour)

	signed, err := other.Issue("user-1", "a@x.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	_, err = issuer.Validate(signed)
	if !errors.Is(err, token.ErrBadSignature) {
		t.Errorf("err = %v, want ErrBadSignature", err)
	}
}

func TestValidate_Garbage_FailsMalformed(t *testing.T) {
	issuer := token.NewIssuer([]byte(testSecret), time.Hour)

	_, err := issuer.Validate("not.a.jwt")
	if !errors.Is(err, token.ErrMalformed) {
		t.Errorf("err = %v, want ErrMalformed", err)
	}
}

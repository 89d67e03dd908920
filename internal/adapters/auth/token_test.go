package auth

import (
	"testing"
	"time"
)

func TestJWT_IssueVerifyRoundTrip(t *testing.T) {
	issuer := NewJWTIssuer("test-secret")
	verifier := NewJWTVerifier("test-secret")

	token, err := issuer.Issue("user-7", "user7@uni.edu", time.Hour)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	userID, email, err := verifier.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if userID != "user-7" {
		t.Errorf("expected user ID user-7, got %q", userID)
	}
	if email != "user7@uni.edu" {
		t.Errorf("expected email claim to round-trip, got %q", email)
	}
}

func TestJWT_WrongSecretRejected(t *testing.T) {
	issuer := NewJWTIssuer("secret-a")
	verifier := NewJWTVerifier("secret-b")

	token, err := issuer.Issue("user-7", "", time.Hour)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, _, err := verifier.Verify(token); err == nil {
		t.Fatal("expected verification to fail with the wrong secret")
	}
}

func TestJWT_ExpiredRejected(t *testing.T) {
	issuer := NewJWTIssuer("test-secret")
	verifier := NewJWTVerifier("test-secret")

	token, err := issuer.Issue("user-7", "", -time.Minute)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, _, err := verifier.Verify(token); err == nil {
		t.Fatal("expected verification to fail for an expired token")
	}
}

func TestJWT_GarbageRejected(t *testing.T) {
	verifier := NewJWTVerifier("test-secret")
	if _, _, err := verifier.Verify("not-a-token"); err == nil {
		t.Fatal("expected verification to fail for garbage input")
	}
}

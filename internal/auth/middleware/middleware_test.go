package auth_test

import (
	"testing"

	auth "github.com/quizmaster/quizmaster/internal/auth/middleware"
)

func TestJWTRoundTrip(t *testing.T) {
	svc := auth.NewAuthService("test-secret")

	tok, err := svc.IssueJWT(42, "admin")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := svc.Parse(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Sub != 42 || claims.Role != "admin" {
		t.Fatalf("claims = %+v", claims)
	}
	if claims.Issuer != "quizmaster" {
		t.Fatalf("issuer = %q", claims.Issuer)
	}
}

func TestParseRejectsForeignKey(t *testing.T) {
	tok, err := auth.NewAuthService("key-a").IssueJWT(1, "user")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := auth.NewAuthService("key-b").Parse(tok); err == nil {
		t.Fatal("expected verification failure for token signed with another key")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := auth.NewAuthService("k").Parse("not.a.token"); err == nil {
		t.Fatal("expected parse failure")
	}
}

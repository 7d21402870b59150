package auth_test

import (
	"context"
	"testing"

	"github.com/shashiranjanraj/micromarket/pkg/auth"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := auth.GenerateToken(42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected user id 42, got %d", claims.UserID)
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	if _, err := auth.ValidateToken("not.a.token"); err == nil {
		t.Error("expected error for malformed token")
	}
	if _, err := auth.ValidateToken(""); err == nil {
		t.Error("expected error for empty token")
	}
}

func TestValidateRejectsTamperedToken(t *testing.T) {
	token, err := auth.GenerateToken(42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := auth.ValidateToken(tampered); err == nil {
		t.Error("expected error for tampered signature")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "secret123" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !auth.CheckPassword(hash, "secret123") {
		t.Error("correct password rejected")
	}
	if auth.CheckPassword(hash, "wrong") {
		t.Error("wrong password accepted")
	}
}

func TestUserIDContext(t *testing.T) {
	ctx := auth.WithUserID(context.Background(), 7)

	id, ok := auth.UserID(ctx)
	if !ok || id != 7 {
		t.Errorf("expected (7, true), got (%d, %v)", id, ok)
	}

	if _, ok := auth.UserID(context.Background()); ok {
		t.Error("expected no user id on a bare context")
	}
}

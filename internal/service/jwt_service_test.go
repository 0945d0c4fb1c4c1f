package service

import (
	"errors"
	"testing"
	"time"

	"taskflow/internal/domain"
)

func testUser() domain.User {
	return domain.User{
		ID:          "u1",
		Email:       "user@example.com",
		DisplayName: "Test",
		CreatedAt:   time.Now().UTC(),
	}
}

func TestJWTService_GenerateParseAccess(t *testing.T) {
	svc := NewJWTServiceWithStore("secret", 7*24*time.Hour, 30*24*time.Hour, NewMemoryRefreshTokenStore())

	pair, err := svc.GeneratePair(testUser())
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected tokens")
	}
	if pair.ExpiresIn != int64((7 * 24 * time.Hour).Seconds()) {
		t.Fatalf("unexpected expires_in: %d", pair.ExpiresIn)
	}

	claims, err := svc.ParseAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("parse access: %v", err)
	}
	if claims.UserID != "u1" || claims.Email != "user@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestJWTService_RejectsOtherSecret(t *testing.T) {
	svc := NewJWTService("secret", time.Hour, time.Hour)
	other := NewJWTService("another-secret", time.Hour, time.Hour)

	pair, err := other.GeneratePair(testUser())
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}
	if _, err := svc.ParseAccessToken(pair.AccessToken); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid, got %v", err)
	}
}

func TestJWTService_RejectsExpired(t *testing.T) {
	svc := NewJWTServiceWithStore("secret", time.Hour, time.Hour, NewMemoryRefreshTokenStore())
	svc.accessTTL = -time.Minute

	pair, err := svc.GeneratePair(testUser())
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}
	if _, err := svc.ParseAccessToken(pair.AccessToken); !errors.Is(err, ErrJWTExpired) {
		t.Fatalf("expected ErrJWTExpired, got %v", err)
	}
}

func TestJWTService_RejectsRefreshAsAccess(t *testing.T) {
	svc := NewJWTService("secret", time.Hour, time.Hour)

	pair, err := svc.GeneratePair(testUser())
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}
	if _, err := svc.ParseAccessToken(pair.RefreshToken); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid for refresh token, got %v", err)
	}
}

func TestJWTService_RejectsMalformed(t *testing.T) {
	svc := NewJWTService("secret", time.Hour, time.Hour)
	for _, token := range []string{"", "   ", "not-a-jwt", "a.b.c"} {
		if _, err := svc.ParseAccessToken(token); err == nil {
			t.Fatalf("expected error for token %q", token)
		}
	}
}

func TestJWTService_RefreshRotation(t *testing.T) {
	svc := NewJWTServiceWithStore("secret", time.Hour, time.Hour, NewMemoryRefreshTokenStore())

	pair, err := svc.GeneratePair(testUser())
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}

	refreshed, err := svc.RefreshPair(pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh pair: %v", err)
	}
	if refreshed.AccessToken == "" || refreshed.RefreshToken == "" {
		t.Fatalf("expected refreshed tokens")
	}

	if _, err := svc.RefreshPair(pair.RefreshToken); err == nil {
		t.Fatalf("expected old refresh token to be revoked")
	}
}

func TestJWTService_RevokeRefresh(t *testing.T) {
	svc := NewJWTServiceWithStore("secret", time.Hour, time.Hour, NewMemoryRefreshTokenStore())

	pair, err := svc.GeneratePair(testUser())
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}
	if err := svc.RevokeRefresh(pair.RefreshToken); err != nil {
		t.Fatalf("revoke refresh: %v", err)
	}
	if _, err := svc.RefreshPair(pair.RefreshToken); err == nil {
		t.Fatalf("expected revoked refresh token to fail")
	}
}

package util

import (
	"career_coach_backend/internal/model"
	"testing"
	"time"
)

func TestJWTRoundTrip(t *testing.T) {
	user := &model.User{Email: "ada@example.com"}
	user.ID = 42

	token, err := GenerateJWT(user, "secret-secret-secret-secret-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	claims, err := ParseJWT(token, "secret-secret-secret-secret-secret")
	if err != nil {
		t.Fatalf("ParseJWT() error = %v", err)
	}
	if claims.UserID != 42 || claims.Email != "ada@example.com" {
		t.Fatalf("claims = %+v", claims)
	}

	if _, err := ParseJWT(token, "another-secret"); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestJWTExpired(t *testing.T) {
	user := &model.User{Email: "ada@example.com"}
	token, err := GenerateJWT(user, "s", -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseJWT(token, "s"); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 50, "short"},
		{"abcdef", 3, "abc"},
		{"héllo", 2, "hé"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

package util

import (
	"errors"
	"first20_backend/internal/model"
	"testing"
	"time"
)

func TestGenerateAndParseJWT(t *testing.T) {
	user := &model.User{Email: "ada@example.com"}
	user.ID = 42

	token, err := GenerateJWT(user, "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT error: %v", err)
	}

	claims, err := ParseJWT(token, "secret")
	if err != nil {
		t.Fatalf("ParseJWT error: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "ada@example.com" {
		t.Fatalf("claims=%+v", claims)
	}
}

func TestParseJWTRejectsWrongSecretAndExpired(t *testing.T) {
	user := &model.User{Email: "ada@example.com"}
	user.ID = 1

	token, _ := GenerateJWT(user, "secret", time.Hour)
	if _, err := ParseJWT(token, "other"); err == nil {
		t.Error("expected error for wrong secret")
	}

	expired, _ := GenerateJWT(user, "secret", -time.Minute)
	if _, err := ParseJWT(expired, "secret"); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestDomainErrorsWrapKinds(t *testing.T) {
	cases := []struct {
		err  error
		kind error
	}{
		{ErrSkillNotFound, ErrNotFound},
		{ErrPlanNotFound, ErrNotFound},
		{ErrSessionNotFound, ErrNotFound},
		{ErrUserNotFound, ErrNotFound},
		{ErrEmailRegistered, ErrConflict},
	}
	for _, tc := range cases {
		if !errors.Is(tc.err, tc.kind) {
			t.Errorf("%v should wrap %v", tc.err, tc.kind)
		}
	}
}

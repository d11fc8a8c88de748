package service

import (
	"context"
	"errors"
	"first20_backend/internal/util"
	"testing"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.auth.Register(ctx, RegisterRequest{Email: " Alice@Example.com ", Username: "alice", Password: "correct-horse"})
	if err != nil {
		t.Fatal(err)
	}
	if user.Email != "alice@example.com" || user.StreakFreezesAvailable != 3 {
		t.Errorf("user=%+v", user)
	}
	if user.Password == "correct-horse" {
		t.Error("password stored in clear text")
	}

	if _, err := env.auth.Register(ctx, RegisterRequest{Email: "alice@example.com", Username: "again", Password: "another-pass"}); !errors.Is(err, util.ErrEmailRegistered) {
		t.Errorf("duplicate email: err=%v", err)
	}

	token, err := env.auth.Login(ctx, "ALICE@example.com", "correct-horse")
	if err != nil {
		t.Fatal(err)
	}
	if token.TokenType != "bearer" {
		t.Errorf("token type=%q", token.TokenType)
	}
	claims, err := util.ParseJWT(token.AccessToken, env.cfg.JWT.Secret)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != user.ID {
		t.Errorf("claims user=%d, want %d", claims.UserID, user.ID)
	}

	profile, err := env.auth.GetCurrentUser(ctx, user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if profile.LastLogin == nil {
		t.Error("last login not recorded")
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.auth.Register(context.Background(), RegisterRequest{Email: "bob@example.com", Username: "bob", Password: "short"})
	if !errors.Is(err, util.ErrInvalidInput) {
		t.Errorf("err=%v, want invalid input", err)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	if _, err := env.auth.Register(ctx, RegisterRequest{Email: "carol@example.com", Username: "carol", Password: "long-enough"}); err != nil {
		t.Fatal(err)
	}

	for _, tc := range []struct{ email, password string }{
		{"carol@example.com", "wrong-password"},
		{"nobody@example.com", "long-enough"},
	} {
		if _, err := env.auth.Login(ctx, tc.email, tc.password); !errors.Is(err, util.ErrInvalidCredentials) {
			t.Errorf("Login(%q): err=%v, want invalid credentials", tc.email, err)
		}
	}
}

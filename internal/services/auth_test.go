package services

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/interface8/Prompt-8/internal/requestdata"
	"github.com/interface8/Prompt-8/internal/types"
)

func registerTestUser(t *testing.T, env *testEnv, email string) *types.User {
	t.Helper()
	user := &types.User{Email: email, Name: "Ada Lovelace", Password: "s3cret"}
	if err := env.auth.RegisterUser(context.Background(), user); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	return user
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	user := registerTestUser(t, env, "Ada@Example.com")

	if user.Email != "ada@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.Password == "s3cret" {
		t.Fatalf("password stored in plaintext")
	}
	if user.Role != types.RoleUser {
		t.Fatalf("expected default role USER, got %q", user.Role)
	}
	if !strings.Contains(user.Image, "ui-avatars.com") {
		t.Fatalf("expected generated avatar, got %q", user.Image)
	}

	access, refresh, err := env.auth.LoginUser(context.Background(), "ada@example.com", "s3cret")
	if err != nil {
		t.Fatalf("LoginUser: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatalf("expected token pair, got %q / %q", access, refresh)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	registerTestUser(t, env, "ada@example.com")

	dupe := &types.User{Email: "ada@example.com", Name: "Imposter", Password: "other"}
	err := env.auth.RegisterUser(context.Background(), dupe)
	wantStatus(t, err, http.StatusBadRequest)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	registerTestUser(t, env, "ada@example.com")

	_, _, err := env.auth.LoginUser(context.Background(), "ada@example.com", "wrong")
	wantStatus(t, err, http.StatusUnauthorized)

	_, _, err = env.auth.LoginUser(context.Background(), "nobody@example.com", "s3cret")
	wantStatus(t, err, http.StatusUnauthorized)
}

func TestSetContextFromToken(t *testing.T) {
	env := newTestEnv(t)
	registerTestUser(t, env, "ada@example.com")

	access, refresh, err := env.auth.LoginUser(context.Background(), "ada@example.com", "s3cret")
	if err != nil {
		t.Fatalf("LoginUser: %v", err)
	}

	ctx, err := env.auth.SetContextFromToken(context.Background(), access)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		t.Fatalf("expected request data in context")
	}
	if rd.TokenString != access || rd.RefreshToken != refresh {
		t.Fatalf("unexpected request data %+v", rd)
	}

	if _, err := env.auth.SetContextFromToken(context.Background(), "not-a-jwt"); err == nil {
		t.Fatalf("expected error for malformed token")
	}
}

func TestRefreshRotatesTokens(t *testing.T) {
	env := newTestEnv(t)
	registerTestUser(t, env, "ada@example.com")

	access, refresh, err := env.auth.LoginUser(context.Background(), "ada@example.com", "s3cret")
	if err != nil {
		t.Fatalf("LoginUser: %v", err)
	}

	ctx := requestdata.WithRequestData(context.Background(), &requestdata.RequestData{
		TokenString:  access,
		RefreshToken: refresh,
	})
	newAccess, newRefresh, err := env.auth.RefreshUser(ctx)
	if err != nil {
		t.Fatalf("RefreshUser: %v", err)
	}
	if newRefresh == refresh {
		t.Fatalf("expected rotated refresh token")
	}
	if newAccess == "" {
		t.Fatalf("expected new access token")
	}

	// The old refresh token is gone after rotation.
	_, _, err = env.auth.RefreshUser(ctx)
	wantStatus(t, err, http.StatusUnauthorized)
}

func TestLogoutDeletesTokens(t *testing.T) {
	env := newTestEnv(t)
	registerTestUser(t, env, "ada@example.com")

	access, _, err := env.auth.LoginUser(context.Background(), "ada@example.com", "s3cret")
	if err != nil {
		t.Fatalf("LoginUser: %v", err)
	}

	ctx := requestdata.WithRequestData(context.Background(), &requestdata.RequestData{TokenString: access})
	if err := env.auth.LogoutUser(ctx); err != nil {
		t.Fatalf("LogoutUser: %v", err)
	}

	tokens, tErr := env.tokens.GetByAccessTokens(context.Background(), nil, []string{access})
	if tErr != nil {
		t.Fatalf("GetByAccessTokens: %v", tErr)
	}
	if len(tokens) != 0 {
		t.Fatalf("expected tokens deleted on logout, found %d", len(tokens))
	}
}

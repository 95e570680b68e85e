package service

import (
	"errors"
	"roleplay_coach_backend/internal/config"
	"roleplay_coach_backend/internal/model"
	"roleplay_coach_backend/internal/repository"
	"roleplay_coach_backend/internal/util"
	"testing"
	"time"
)

func newAuthFixture(t *testing.T) *AuthService {
	t.Helper()
	db := testDB(t)
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-0123456789abcdef0123456789abcdef"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(repository.NewUserRepository(db), repository.NewStatsRepository(db), cfg)
}

func TestRegisterHashesPasswordAndCreatesStats(t *testing.T) {
	svc := newAuthFixture(t)

	user := &model.User{Name: "Ana", Email: "ana@example.com", Password: "supersecret"}
	if err := svc.Register(user); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Password == "supersecret" {
		t.Fatal("password stored in plain text")
	}
	if user.Role != model.RoleUser {
		t.Fatalf("expected default role, got %q", user.Role)
	}

	stats, err := svc.StatsRepo.FindOrCreateByUserID(user.ID)
	if err != nil {
		t.Fatalf("stats row: %v", err)
	}
	if stats.Level != 1 {
		t.Fatalf("fresh stats should be level 1, got %d", stats.Level)
	}

	dup := &model.User{Name: "Otra", Email: "ana@example.com", Password: "x"}
	if err := svc.Register(dup); !errors.Is(err, util.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginIssuesParseableToken(t *testing.T) {
	svc := newAuthFixture(t)
	user := &model.User{Name: "Ana", Email: "ana@example.com", Password: "supersecret"}
	if err := svc.Register(user); err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, loggedIn, err := svc.Login("ana@example.com", "supersecret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Fatalf("unexpected user %d", loggedIn.ID)
	}

	claims, err := util.ParseJWT(token, svc.Cfg.JWT.Secret)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != "ana@example.com" || claims.Role != model.RoleUser {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLoginRejectsBadCredentialsAndDisabledAccounts(t *testing.T) {
	svc := newAuthFixture(t)
	user := &model.User{Name: "Ana", Email: "ana@example.com", Password: "supersecret"}
	if err := svc.Register(user); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, _, err := svc.Login("ana@example.com", "wrong"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login("nobody@example.com", "supersecret"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}

	user.Disabled = true
	if err := svc.UserRepo.Update(user); err != nil {
		t.Fatalf("disable user: %v", err)
	}
	if _, _, err := svc.Login("ana@example.com", "supersecret"); !errors.Is(err, util.ErrAccountDisabled) {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
}

package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/agendavista/task-api/internal/core/domain"
)

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by normalized email
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	key := strings.ToLower(user.Email)
	if _, exists := r.users[key]; exists {
		return nil, domain.ErrEmailTaken
	}
	stored := cloneUser(user)
	if stored.ID == "" {
		r.nextID++
		stored.ID = strings.Repeat("u", r.nextID)
	}
	r.users[key] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.users[strings.ToLower(email)]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func newTestAuthService() (*AuthService, *stubUserRepo) {
	repo := newStubUserRepo()
	return NewAuthService(repo, NewTokenService("secret", time.Hour)), repo
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, _ := newTestAuthService()

	user, token, err := svc.Register(context.Background(), "  Ann  ", "Ann@X.com", "secret1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user.Name != "Ann" {
		t.Fatalf("expected trimmed name, got %q", user.Name)
	}
	if user.Email != "ann@x.com" {
		t.Fatalf("expected lowercased email, got %q", user.Email)
	}
	if user.PasswordHash == "secret1" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	svc, _ := newTestAuthService()

	cases := [][3]string{
		{"", "a@example.com", "pass"},
		{"Ann", "", "pass"},
		{"Ann", "a@example.com", ""},
		{"   ", "a@example.com", "pass"},
	}
	for _, tc := range cases {
		if _, _, err := svc.Register(context.Background(), tc[0], tc[1], tc[2]); err != domain.ErrMissingFields {
			t.Fatalf("expected ErrMissingFields for %v, got %v", tc, err)
		}
	}
}

func TestAuthService_Register_DuplicateEmailCaseInsensitive(t *testing.T) {
	svc, _ := newTestAuthService()

	if _, _, err := svc.Register(context.Background(), "Ann", "ann@x.com", "secret1"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, _, err := svc.Register(context.Background(), "Ann 2", "ANN@X.COM", "secret2"); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, _ := newTestAuthService()

	created, _, err := svc.Register(context.Background(), "Ann", "Ann@X.com", "secret1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, token, err := svc.Login(context.Background(), "ann@x.com", "secret1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user.ID != created.ID {
		t.Fatalf("login resolved a different user: %q vs %q", user.ID, created.ID)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _ := newTestAuthService()

	_, _, _ = svc.Register(context.Background(), "Ann", "ann@x.com", "goodpass")
	if _, _, err := svc.Login(context.Background(), "ann@x.com", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _ := newTestAuthService()

	// Unknown email and wrong password must be indistinguishable.
	if _, _, err := svc.Login(context.Background(), "ghost@x.com", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

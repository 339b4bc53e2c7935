package handler_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/mzigo/insurance-brokerage-portal/internal/config"
	"github.com/mzigo/insurance-brokerage-portal/internal/handler"
	"github.com/mzigo/insurance-brokerage-portal/internal/model"
	"github.com/mzigo/insurance-brokerage-portal/internal/repository"
	"github.com/mzigo/insurance-brokerage-portal/internal/utils"
)

type fakeAccountStore struct {
	users  map[string]model.User // keyed by email
	nextID uint64
}

func newFakeAccounts() *fakeAccountStore {
	return &fakeAccountStore{users: map[string]model.User{}, nextID: 1}
}

func (f *fakeAccountStore) Create(ctx context.Context, name, email, password, role string, cost int) (uint64, error) {
	if _, ok := f.users[email]; ok {
		return 0, repository.ErrEmailExists
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	id := f.nextID
	f.nextID++
	f.users[email] = model.User{
		ID: id, Name: name, Email: email, PasswordHash: hash, Role: role, IsActive: true,
	}
	return id, nil
}

func (f *fakeAccountStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	u, ok := f.users[email]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

func (f *fakeAccountStore) GetByID(ctx context.Context, id uint64) (model.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, sql.ErrNoRows
}

type fakeTokenStore struct {
	hashes map[string]uint64 // token hash -> user id
}

func newFakeTokens() *fakeTokenStore {
	return &fakeTokenStore{hashes: map[string]uint64{}}
}

func (f *fakeTokenStore) StoreRefresh(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error {
	f.hashes[tokenHash] = userID
	return nil
}

func (f *fakeTokenStore) ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error) {
	id, ok := f.hashes[tokenHash]
	if !ok {
		return 0, errors.New("refresh token not found")
	}
	return id, nil
}

func (f *fakeTokenStore) RevokeByHash(ctx context.Context, tokenHash string) error {
	delete(f.hashes, tokenHash)
	return nil
}

func (f *fakeTokenStore) RevokeAllForUser(ctx context.Context, userID uint64) error {
	for h, id := range f.hashes {
		if id == userID {
			delete(f.hashes, h)
		}
	}
	return nil
}

func testAuthConfig() config.Config {
	return config.Config{
		JWTSecret:      "test-secret",
		AccessTTLMin:   15,
		RefreshTTLDays: 30,
		BcryptCost:     4, // min bcrypt cost keeps the tests fast
	}
}

func decodeAuth(t *testing.T, env envelope) (resp struct {
	User struct {
		ID    uint64 `json:"id"`
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"user"`
	Access struct {
		Token string `json:"token"`
	} `json:"access"`
	Refresh struct {
		Token string `json:"token"`
	} `json:"refresh"`
}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, &resp); err != nil {
		t.Fatalf("decode auth response: %v", err)
	}
	return resp
}

func TestRegisterIssuesTokens(t *testing.T) {
	h := handler.NewAuthHandler(testAuthConfig(), newFakeAccounts(), newFakeTokens())

	rec, env := request(t, h.Register, http.MethodPost, "/v1/auth/register",
		`{"name":"Grace Wanjiru","email":"Grace@Example.com","password":"s3cret-pass"}`, nil)

	if rec.Code != http.StatusCreated || !env.Success {
		t.Fatalf("status = %d success = %v (body %s)", rec.Code, env.Success, rec.Body.String())
	}
	resp := decodeAuth(t, env)
	if resp.User.Email != "grace@example.com" {
		t.Fatalf("email = %q, want it lowercased", resp.User.Email)
	}
	if resp.User.Role != model.RoleUser {
		t.Fatalf("role = %q, self-registration must never grant elevation", resp.User.Role)
	}
	if resp.Access.Token == "" || resp.Refresh.Token == "" {
		t.Fatal("registration must return a usable token pair")
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	h := handler.NewAuthHandler(testAuthConfig(), newFakeAccounts(), newFakeTokens())

	rec, env := request(t, h.Register, http.MethodPost, "/v1/auth/register",
		`{"name":"A","email":"a@example.com","password":"short"}`, nil)

	if rec.Code != http.StatusBadRequest || env.Success {
		t.Fatalf("status = %d success = %v, want 400 failure", rec.Code, env.Success)
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	accounts := newFakeAccounts()
	h := handler.NewAuthHandler(testAuthConfig(), accounts, newFakeTokens())
	body := `{"name":"A","email":"a@example.com","password":"s3cret-pass"}`

	if rec, _ := request(t, h.Register, http.MethodPost, "/v1/auth/register", body, nil); rec.Code != http.StatusCreated {
		t.Fatalf("first registration failed with %d", rec.Code)
	}
	rec, env := request(t, h.Register, http.MethodPost, "/v1/auth/register", body, nil)
	if rec.Code != http.StatusConflict || env.Success {
		t.Fatalf("status = %d success = %v, want 409 failure", rec.Code, env.Success)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	accounts := newFakeAccounts()
	h := handler.NewAuthHandler(testAuthConfig(), accounts, newFakeTokens())
	if _, err := accounts.Create(context.Background(), "A", "a@example.com", "s3cret-pass", model.RoleUser, 4); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	rec, env := request(t, h.Login, http.MethodPost, "/v1/auth/login",
		`{"email":"a@example.com","password":"wrong-pass"}`, nil)

	if rec.Code != http.StatusUnauthorized || env.Success {
		t.Fatalf("status = %d success = %v, want 401 failure", rec.Code, env.Success)
	}
}

func TestLoginUnknownEmailSameAsWrongPassword(t *testing.T) {
	h := handler.NewAuthHandler(testAuthConfig(), newFakeAccounts(), newFakeTokens())

	rec, env := request(t, h.Login, http.MethodPost, "/v1/auth/login",
		`{"email":"nobody@example.com","password":"whatever1"}`, nil)

	if rec.Code != http.StatusUnauthorized || env.Success {
		t.Fatalf("status = %d success = %v, want 401 without leaking which field was wrong", rec.Code, env.Success)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	tokens := newFakeTokens()
	h := handler.NewAuthHandler(testAuthConfig(), newFakeAccounts(), tokens)

	_, regEnv := request(t, h.Register, http.MethodPost, "/v1/auth/register",
		`{"name":"A","email":"a@example.com","password":"s3cret-pass"}`, nil)
	first := decodeAuth(t, regEnv)

	rec, refEnv := request(t, h.Refresh, http.MethodPost, "/v1/auth/refresh",
		`{"refresh_token":"`+first.Refresh.Token+`"}`, nil)
	if rec.Code != http.StatusOK || !refEnv.Success {
		t.Fatalf("status = %d success = %v", rec.Code, refEnv.Success)
	}
	second := decodeAuth(t, refEnv)
	if second.Refresh.Token == first.Refresh.Token {
		t.Fatal("refresh must rotate, not reuse, the refresh token")
	}

	// The consumed token is dead.
	rec, env := request(t, h.Refresh, http.MethodPost, "/v1/auth/refresh",
		`{"refresh_token":"`+first.Refresh.Token+`"}`, nil)
	if rec.Code != http.StatusUnauthorized || env.Success {
		t.Fatalf("replaying a rotated token: status = %d success = %v, want 401", rec.Code, env.Success)
	}
}

func TestLogoutRevokesPresentedToken(t *testing.T) {
	tokens := newFakeTokens()
	h := handler.NewAuthHandler(testAuthConfig(), newFakeAccounts(), tokens)

	_, regEnv := request(t, h.Register, http.MethodPost, "/v1/auth/register",
		`{"name":"A","email":"a@example.com","password":"s3cret-pass"}`, nil)
	resp := decodeAuth(t, regEnv)

	rec, env := request(t, h.Logout, http.MethodPost, "/v1/auth/logout",
		`{"refresh_token":"`+resp.Refresh.Token+`"}`, nil)
	if rec.Code != http.StatusOK || !env.Success {
		t.Fatalf("status = %d success = %v", rec.Code, env.Success)
	}
	if len(tokens.hashes) != 0 {
		t.Fatalf("token store still holds %d sessions after logout", len(tokens.hashes))
	}
}

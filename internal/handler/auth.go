package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mzigo/insurance-brokerage-portal/internal/config"
	"github.com/mzigo/insurance-brokerage-portal/internal/model"
	"github.com/mzigo/insurance-brokerage-portal/internal/repository"
	"github.com/mzigo/insurance-brokerage-portal/internal/utils"
)

// AccountStore provides the user operations the auth endpoints need.
type AccountStore interface {
	Create(ctx context.Context, name, email, password, role string, cost int) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// TokenStore provides refresh token persistence.
type TokenStore interface {
	StoreRefresh(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error
	ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error)
	RevokeByHash(ctx context.Context, tokenHash string) error
	RevokeAllForUser(ctx context.Context, userID uint64) error
}

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Cfg      config.Config
	Accounts AccountStore
	Tokens   TokenStore
}

func NewAuthHandler(cfg config.Config, a AccountStore, t TokenStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Accounts: a, Tokens: t}
}

// ----- DTOs -----

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type userPart struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
type authResp struct {
	User    userPart  `json:"user"`
	Access  tokenPart `json:"access"`
	Refresh tokenPart `json:"refresh"`
}

// issueTokens creates a fresh access/refresh pair and stores the refresh hash.
func (h *AuthHandler) issueTokens(ctx context.Context, u userPart) (authResp, error) {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return authResp{}, err
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return authResp{}, err
	}
	if err := h.Tokens.StoreRefresh(ctx, u.ID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return authResp{}, err
	}
	return authResp{
		User:    u,
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp}, // raw back to client
	}, nil
}

// Register creates a customer account and returns tokens immediately.
// Elevated roles are only ever assigned through the back office.
// POST /v1/auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body", err.Error())
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || len(req.Password) < 8 {
		return fail(c, http.StatusBadRequest, "invalid registration",
			"name, email and a password of at least 8 characters are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Accounts.Create(ctx, req.Name, req.Email, req.Password, model.RoleUser, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrEmailExists {
			return fail(c, http.StatusConflict, "email already registered", err.Error())
		}
		return fail(c, http.StatusInternalServerError, "create user failed", err.Error())
	}

	resp, err := h.issueTokens(ctx, userPart{ID: uid, Name: req.Name, Email: req.Email, Role: model.RoleUser})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "issue tokens failed", err.Error())
	}
	return okData(c, http.StatusCreated, resp, "Account created")
}

// Login verifies credentials and returns a new token pair.
// POST /v1/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body", err.Error())
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, "invalid login", "email and password are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return fail(c, http.StatusUnauthorized, "invalid credentials", "")
		}
		return fail(c, http.StatusInternalServerError, "query failed", err.Error())
	}
	if !u.IsActive {
		return fail(c, http.StatusUnauthorized, "account disabled", "")
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return fail(c, http.StatusUnauthorized, "invalid credentials", "")
	}

	resp, err := h.issueTokens(ctx, userPart{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "issue tokens failed", err.Error())
	}
	return okData(c, http.StatusOK, resp, "")
}

// Refresh validates a refresh token by hash, revokes it and issues a new
// pair (rotation).
// POST /v1/auth/refresh
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return fail(c, http.StatusBadRequest, "refresh_token required", "")
	}
	hash := utils.HashRefreshRaw(strings.TrimSpace(req.RefreshToken))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	userID, err := h.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "invalid refresh token", "")
	}
	_ = h.Tokens.RevokeByHash(ctx, hash)

	u, err := h.Accounts.GetByID(ctx, userID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "load user failed", err.Error())
	}

	resp, err := h.issueTokens(ctx, userPart{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "issue tokens failed", err.Error())
	}
	return okData(c, http.StatusOK, resp, "")
}

// Logout revokes refresh tokens. With a refresh_token in the body only that
// session ends; otherwise every session of the authenticated user is revoked.
// POST /v1/auth/logout (protected)
func (h *AuthHandler) Logout(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var req refreshReq
	_ = c.Bind(&req)
	if raw := strings.TrimSpace(req.RefreshToken); raw != "" {
		_ = h.Tokens.RevokeByHash(ctx, utils.HashRefreshRaw(raw))
		return okData(c, http.StatusOK, nil, "Session ended")
	}
	sub, ok := c.Get("user_id").(float64)
	if !ok {
		return fail(c, http.StatusBadRequest, "nothing to revoke", "provide refresh_token or authenticate")
	}
	if err := h.Tokens.RevokeAllForUser(ctx, uint64(sub)); err != nil {
		return fail(c, http.StatusInternalServerError, "revoke failed", err.Error())
	}
	return okData(c, http.StatusOK, nil, "All sessions ended")
}

// Me returns the authenticated user's profile.
// GET /v1/auth/me (protected)
func (h *AuthHandler) Me(c echo.Context) error {
	sub, ok := c.Get("user_id").(float64)
	if !ok {
		return fail(c, http.StatusUnauthorized, "not authenticated", "")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Accounts.GetByID(ctx, uint64(sub))
	if err != nil {
		if err == sql.ErrNoRows {
			return fail(c, http.StatusNotFound, "", "user not found")
		}
		return fail(c, http.StatusInternalServerError, "load user failed", err.Error())
	}
	return okData(c, http.StatusOK, u, "")
}

package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mzigo/insurance-brokerage-portal/internal/model"
	"github.com/mzigo/insurance-brokerage-portal/internal/repository"
	"github.com/mzigo/insurance-brokerage-portal/internal/resilience"
)

// userID parses the :id path parameter for user routes.
func userID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return id, err == nil
}

// ListUsers returns a page of users. The status query parameter filters on
// role. Users have no sample fallback: an unreachable store is a 503 here.
// GET /admin/users
func (h *AdminHandler) ListUsers(c echo.Context) error {
	q := parseListQuery(c)
	res := resilience.Do(c.Request().Context(), h.Exec, "list users",
		func(ctx context.Context) (page[model.User], error) {
			items, total, err := h.Users.List(ctx, q)
			return page[model.User]{items: items, total: total}, err
		})
	switch {
	case res.OK():
		items := res.Data().items
		if items == nil {
			items = []model.User{}
		}
		return okList(c, items, pagination{
			Page:  q.Page,
			Limit: q.Limit,
			Total: res.Data().total,
			Pages: pageCount(res.Data().total, q.Limit),
		}, "")
	case res.Kind() == resilience.KindAuth:
		return fail(c, http.StatusInternalServerError, "data store authentication failed", res.Message())
	}
	return fail(c, http.StatusServiceUnavailable, "data store unavailable", res.Message())
}

// GetUser returns one user.
// GET /admin/users/:id
func (h *AdminHandler) GetUser(c echo.Context) error {
	id, ok := userID(c)
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid user id", "id must be numeric")
	}
	return getEntity(c, h.Exec, "get user", func(ctx context.Context) (model.User, error) {
		u, err := h.Users.GetByID(ctx, id)
		if err == sql.ErrNoRows {
			return u, repository.ErrUserNotFound
		}
		return u, err
	})
}

// UpdateUserRole changes a user's role. Admins cannot change their own role;
// route-level middleware restricts this endpoint to SUPER_ADMIN.
// PUT /admin/users/:id/role
func (h *AdminHandler) UpdateUserRole(c echo.Context) error {
	id, ok := userID(c)
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid user id", "id must be numeric")
	}
	var req struct {
		Role string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body", err.Error())
	}
	if !model.ValidRole(req.Role) {
		return fail(c, http.StatusBadRequest, "invalid role",
			"role must be one of: USER, ADMIN, SUPER_ADMIN")
	}
	// JWT claims decode numbers as float64.
	if sub, isNum := c.Get("user_id").(float64); isNum && uint64(sub) == id {
		return fail(c, http.StatusForbidden, "cannot change your own role", "")
	}
	return mutateEntity(c, h.Exec, "update user role",
		func(ctx context.Context) error { return h.Users.UpdateRole(ctx, id, req.Role) },
		func() error {
			return okData(c, http.StatusOK, echo.Map{"id": id, "role": req.Role}, "User role updated")
		})
}

// DeleteUser removes a user account and revokes its refresh tokens via the
// database's cascading delete.
// DELETE /admin/users/:id
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, ok := userID(c)
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid user id", "id must be numeric")
	}
	if sub, isNum := c.Get("user_id").(float64); isNum && uint64(sub) == id {
		return fail(c, http.StatusForbidden, "cannot delete your own account", "")
	}
	return mutateEntity(c, h.Exec, "delete user",
		func(ctx context.Context) error { return h.Users.Delete(ctx, id) },
		func() error {
			return okData(c, http.StatusOK, echo.Map{"id": id}, "User deleted")
		})
}

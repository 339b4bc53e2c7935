package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mzigo/insurance-brokerage-portal/internal/model"
	"github.com/mzigo/insurance-brokerage-portal/internal/resilience"
)

// ListDiaspora returns a page of diaspora-service requests.
// GET /admin/diaspora
func (h *AdminHandler) ListDiaspora(c echo.Context) error {
	return listEntity(c, h.Exec, "diaspora", h.Diaspora.List,
		h.Buffers.Diaspora, h.Supplier.Diaspora, h.Supplier.Message("diaspora requests"))
}

// GetDiaspora returns one diaspora request.
// GET /admin/diaspora/:id
func (h *AdminHandler) GetDiaspora(c echo.Context) error {
	id := c.Param("id")
	return getEntity(c, h.Exec, "get diaspora request", func(ctx context.Context) (*model.DiasporaRequest, error) {
		return h.Diaspora.GetByID(ctx, id)
	})
}

// UpdateDiasporaStatus sets a diaspora request's status.
// PUT /admin/diaspora/:id/status
func (h *AdminHandler) UpdateDiasporaStatus(c echo.Context) error {
	id := c.Param("id")
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body", err.Error())
	}
	if !model.ValidDiasporaStatus(req.Status) {
		return fail(c, http.StatusBadRequest, "invalid status",
			"status must be one of: pending, scheduled, completed, cancelled")
	}
	return mutateEntity(c, h.Exec, "update diaspora status",
		func(ctx context.Context) error { return h.Diaspora.UpdateStatus(ctx, id, req.Status) },
		func() error {
			h.notify(c, "diaspora", resilience.ActionUpdated, id)
			return okData(c, http.StatusOK, echo.Map{"id": id, "status": req.Status}, "Diaspora request status updated")
		})
}

// DeleteDiaspora removes a diaspora request.
// DELETE /admin/diaspora/:id
func (h *AdminHandler) DeleteDiaspora(c echo.Context) error {
	id := c.Param("id")
	return mutateEntity(c, h.Exec, "delete diaspora request",
		func(ctx context.Context) error { return h.Diaspora.Delete(ctx, id) },
		func() error {
			h.notify(c, "diaspora", resilience.ActionDeleted, id)
			return okData(c, http.StatusOK, echo.Map{"id": id}, "Diaspora request deleted")
		})
}

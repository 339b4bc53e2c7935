package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mzigo/insurance-brokerage-portal/internal/model"
	"github.com/mzigo/insurance-brokerage-portal/internal/resilience"
)

// ListOutsourcing returns a page of outsourcing requests.
// GET /admin/outsourcing
func (h *AdminHandler) ListOutsourcing(c echo.Context) error {
	return listEntity(c, h.Exec, "outsourcing", h.Outsourcing.List,
		h.Buffers.Outsourcing, h.Supplier.Outsourcing, h.Supplier.Message("outsourcing requests"))
}

// GetOutsourcing returns one outsourcing request with its documents.
// GET /admin/outsourcing/:id
func (h *AdminHandler) GetOutsourcing(c echo.Context) error {
	id := c.Param("id")
	return getEntity(c, h.Exec, "get outsourcing request", func(ctx context.Context) (*model.OutsourcingRequest, error) {
		or, err := h.Outsourcing.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if h.Documents != nil {
			if docs, derr := h.Documents.ListByParent(ctx, "outsourcing_id", id); derr == nil {
				or.Documents = docs
			}
		}
		return or, nil
	})
}

// UpdateOutsourcingStatus sets an outsourcing request's status.
// PUT /admin/outsourcing/:id/status
func (h *AdminHandler) UpdateOutsourcingStatus(c echo.Context) error {
	id := c.Param("id")
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body", err.Error())
	}
	if !model.ValidOutsourcingStatus(req.Status) {
		return fail(c, http.StatusBadRequest, "invalid status",
			"status must be one of: pending, in_progress, completed, rejected")
	}
	return mutateEntity(c, h.Exec, "update outsourcing status",
		func(ctx context.Context) error { return h.Outsourcing.UpdateStatus(ctx, id, req.Status) },
		func() error {
			h.notify(c, "outsourcing", resilience.ActionUpdated, id)
			return okData(c, http.StatusOK, echo.Map{"id": id, "status": req.Status}, "Outsourcing request status updated")
		})
}

// DeleteOutsourcing removes an outsourcing request and its documents.
// DELETE /admin/outsourcing/:id
func (h *AdminHandler) DeleteOutsourcing(c echo.Context) error {
	id := c.Param("id")
	return mutateEntity(c, h.Exec, "delete outsourcing request",
		func(ctx context.Context) error { return h.Outsourcing.Delete(ctx, id) },
		func() error {
			h.notify(c, "outsourcing", resilience.ActionDeleted, id)
			return okData(c, http.StatusOK, echo.Map{"id": id}, "Outsourcing request deleted")
		})
}

package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mzigo/insurance-brokerage-portal/internal/model"
	"github.com/mzigo/insurance-brokerage-portal/internal/resilience"
)

// ListPayments returns a page of payment records.
// GET /admin/payments
func (h *AdminHandler) ListPayments(c echo.Context) error {
	return listEntity(c, h.Exec, "payments", h.Payments.List,
		h.Buffers.Payments, h.Supplier.Payments, h.Supplier.Message("payments"))
}

// GetPayment returns one payment record.
// GET /admin/payments/:id
func (h *AdminHandler) GetPayment(c echo.Context) error {
	id := c.Param("id")
	return getEntity(c, h.Exec, "get payment", func(ctx context.Context) (*model.Payment, error) {
		return h.Payments.GetByID(ctx, id)
	})
}

// UpdatePaymentStatus settles a payment to completed or failed.
// PUT /admin/payments/:id/status
func (h *AdminHandler) UpdatePaymentStatus(c echo.Context) error {
	id := c.Param("id")
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body", err.Error())
	}
	if !model.ValidPaymentStatus(req.Status) {
		return fail(c, http.StatusBadRequest, "invalid status",
			"status must be one of: pending, completed, failed")
	}
	return mutateEntity(c, h.Exec, "update payment status",
		func(ctx context.Context) error { return h.Payments.UpdateStatus(ctx, id, req.Status) },
		func() error {
			h.notify(c, "payments", resilience.ActionUpdated, id)
			return okData(c, http.StatusOK, echo.Map{"id": id, "status": req.Status}, "Payment status updated")
		})
}

// DeletePayment removes a payment record.
// DELETE /admin/payments/:id
func (h *AdminHandler) DeletePayment(c echo.Context) error {
	id := c.Param("id")
	return mutateEntity(c, h.Exec, "delete payment",
		func(ctx context.Context) error { return h.Payments.Delete(ctx, id) },
		func() error {
			h.notify(c, "payments", resilience.ActionDeleted, id)
			return okData(c, http.StatusOK, echo.Map{"id": id}, "Payment deleted")
		})
}

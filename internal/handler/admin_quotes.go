package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mzigo/insurance-brokerage-portal/internal/model"
	"github.com/mzigo/insurance-brokerage-portal/internal/resilience"
)

// ListQuotes returns a page of quote requests.
// GET /admin/quotes
func (h *AdminHandler) ListQuotes(c echo.Context) error {
	return listEntity(c, h.Exec, "quotes", h.Quotes.List,
		h.Buffers.Quotes, h.Supplier.Quotes, h.Supplier.Message("quotes"))
}

// GetQuote returns one quote request with its uploaded documents.
// GET /admin/quotes/:id
func (h *AdminHandler) GetQuote(c echo.Context) error {
	id := c.Param("id")
	return getEntity(c, h.Exec, "get quote", func(ctx context.Context) (*model.Quote, error) {
		qt, err := h.Quotes.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if h.Documents != nil {
			if docs, derr := h.Documents.ListByParent(ctx, "quote_id", id); derr == nil {
				qt.Documents = docs
			}
		}
		return qt, nil
	})
}

// UpdateQuoteStatus sets a quote's status after validating the value.
// PUT /admin/quotes/:id/status
func (h *AdminHandler) UpdateQuoteStatus(c echo.Context) error {
	id := c.Param("id")
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body", err.Error())
	}
	if !model.ValidQuoteStatus(req.Status) {
		return fail(c, http.StatusBadRequest, "invalid status",
			"status must be one of: pending, quoted, accepted, expired")
	}
	return mutateEntity(c, h.Exec, "update quote status",
		func(ctx context.Context) error { return h.Quotes.UpdateStatus(ctx, id, req.Status) },
		func() error {
			h.notify(c, "quotes", resilience.ActionUpdated, id)
			return okData(c, http.StatusOK, echo.Map{"id": id, "status": req.Status}, "Quote status updated")
		})
}

// DeleteQuote removes a quote request and its documents.
// DELETE /admin/quotes/:id
func (h *AdminHandler) DeleteQuote(c echo.Context) error {
	id := c.Param("id")
	return mutateEntity(c, h.Exec, "delete quote",
		func(ctx context.Context) error { return h.Quotes.Delete(ctx, id) },
		func() error {
			h.notify(c, "quotes", resilience.ActionDeleted, id)
			return okData(c, http.StatusOK, echo.Map{"id": id}, "Quote deleted")
		})
}

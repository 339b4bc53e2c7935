package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mzigo/insurance-brokerage-portal/internal/model"
	"github.com/mzigo/insurance-brokerage-portal/internal/resilience"
)

// ListClaims returns a page of claims with optional status and search
// filters. When the store is unreachable the supplier's sample claims are
// served instead, tagged with a diagnostic message.
// GET /admin/claims
func (h *AdminHandler) ListClaims(c echo.Context) error {
	return listEntity(c, h.Exec, "claims", h.Claims.List,
		h.Buffers.Claims, h.Supplier.Claims, h.Supplier.Message("claims"))
}

// GetClaim returns one claim with its uploaded documents.
// GET /admin/claims/:id
func (h *AdminHandler) GetClaim(c echo.Context) error {
	id := c.Param("id")
	return getEntity(c, h.Exec, "get claim", func(ctx context.Context) (*model.Claim, error) {
		cl, err := h.Claims.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if h.Documents != nil {
			if docs, derr := h.Documents.ListByParent(ctx, "claim_id", id); derr == nil {
				cl.Documents = docs
			}
		}
		return cl, nil
	})
}

// UpdateClaimStatus sets a claim's status after validating the value.
// PUT /admin/claims/:id/status
func (h *AdminHandler) UpdateClaimStatus(c echo.Context) error {
	id := c.Param("id")
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body", err.Error())
	}
	if !model.ValidClaimStatus(req.Status) {
		return fail(c, http.StatusBadRequest, "invalid status",
			"status must be one of: pending, in_review, approved, rejected")
	}
	return mutateEntity(c, h.Exec, "update claim status",
		func(ctx context.Context) error { return h.Claims.UpdateStatus(ctx, id, req.Status) },
		func() error {
			h.notify(c, "claims", resilience.ActionUpdated, id)
			return okData(c, http.StatusOK, echo.Map{"id": id, "status": req.Status}, "Claim status updated")
		})
}

// DeleteClaim removes a claim and its documents.
// DELETE /admin/claims/:id
func (h *AdminHandler) DeleteClaim(c echo.Context) error {
	id := c.Param("id")
	return mutateEntity(c, h.Exec, "delete claim",
		func(ctx context.Context) error { return h.Claims.Delete(ctx, id) },
		func() error {
			h.notify(c, "claims", resilience.ActionDeleted, id)
			return okData(c, http.StatusOK, echo.Map{"id": id}, "Claim deleted")
		})
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mzigo/insurance-brokerage-portal/internal/model"
	"github.com/mzigo/insurance-brokerage-portal/internal/utils"
	"github.com/mzigo/insurance-brokerage-portal/internal/validate"
)

type paymentRequest struct {
	Amount        float64         `json:"amount"`
	Currency      string          `json:"currency"`
	PaymentMethod string          `json:"payment_method"`
	Reference     string          `json:"reference"`
	Email         string          `json:"email"`
	Metadata      json.RawMessage `json:"metadata"`
}

func (r paymentRequest) check() error {
	switch {
	case r.Amount <= 0:
		return errors.New("amount must be positive")
	case r.PaymentMethod == "":
		return errors.New("payment_method is required")
	case r.Reference == "":
		return errors.New("reference is required")
	case r.Email == "":
		return errors.New("email is required")
	}
	return nil
}

// SubmitPayment records a premium payment. A snowflake transaction id is
// assigned on acceptance; settlement happens later through the back office.
// POST /v1/payments
func (h *SubmitHandler) SubmitPayment(c echo.Context) error {
	body, err := readBody(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body", err.Error())
	}
	if err := validate.Submission(c.Request().Context(), validate.Payment, body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid submission", err.Error())
	}
	var req paymentRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body", err.Error())
	}
	if err := req.check(); err != nil {
		return fail(c, http.StatusBadRequest, "invalid submission", err.Error())
	}
	if req.Currency == "" {
		req.Currency = "KES"
	}

	now := time.Now().UTC()
	p := &model.Payment{
		ID:            utils.NewID(),
		Amount:        req.Amount,
		Currency:      req.Currency,
		PaymentMethod: req.PaymentMethod,
		Reference:     req.Reference,
		TransactionID: utils.NewTransactionID(),
		Metadata:      req.Metadata,
		Status:        model.PaymentStatusPending,
		Email:         req.Email,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	buffered, err := persist(c, h.Exec, "create payment",
		func(ctx context.Context) error { return h.Payments.Create(ctx, p) },
		h.Buffers.Payments, *p)
	if err != nil {
		return err
	}
	h.announce(c, "payments", p.ID, "", p.Email, buffered)
	return okData(c, http.StatusCreated, p, submissionMessage("Payment", buffered))
}

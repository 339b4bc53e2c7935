package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mzigo/insurance-brokerage-portal/internal/model"
	"github.com/mzigo/insurance-brokerage-portal/internal/utils"
	"github.com/mzigo/insurance-brokerage-portal/internal/validate"
)

type quoteRequest struct {
	Product       string `json:"product"`
	Budget        string `json:"budget"`
	Coverage      string `json:"coverage"`
	ContactMethod string `json:"contact_method"`
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
}

func (r quoteRequest) check() error {
	switch {
	case r.Product == "":
		return errors.New("product is required")
	case r.FullName == "":
		return errors.New("full_name is required")
	case r.Email == "":
		return errors.New("email is required")
	}
	return nil
}

func quoteFromForm(c echo.Context) quoteRequest {
	return quoteRequest{
		Product:       strings.TrimSpace(c.FormValue("product")),
		Budget:        strings.TrimSpace(c.FormValue("budget")),
		Coverage:      strings.TrimSpace(c.FormValue("coverage")),
		ContactMethod: strings.TrimSpace(c.FormValue("contact_method")),
		FullName:      strings.TrimSpace(c.FormValue("full_name")),
		Email:         strings.TrimSpace(c.FormValue("email")),
		Phone:         strings.TrimSpace(c.FormValue("phone")),
	}
}

// SubmitQuote accepts a public quote request, as JSON or as a multipart form
// with optional document uploads.
// POST /v1/quotes
func (h *SubmitHandler) SubmitQuote(c echo.Context) error {
	var req quoteRequest
	multipart := isMultipart(c)
	if multipart {
		req = quoteFromForm(c)
	} else {
		body, err := readBody(c)
		if err != nil {
			return fail(c, http.StatusBadRequest, "invalid request body", err.Error())
		}
		if err := validate.Submission(c.Request().Context(), validate.Quote, body); err != nil {
			return fail(c, http.StatusBadRequest, "invalid submission", err.Error())
		}
		if err := json.Unmarshal(body, &req); err != nil {
			return fail(c, http.StatusBadRequest, "invalid request body", err.Error())
		}
	}
	if err := req.check(); err != nil {
		return fail(c, http.StatusBadRequest, "invalid submission", err.Error())
	}
	if req.ContactMethod == "" {
		req.ContactMethod = "email"
	}

	now := time.Now().UTC()
	qt := &model.Quote{
		ID:            utils.NewID(),
		Product:       req.Product,
		Budget:        req.Budget,
		Coverage:      req.Coverage,
		ContactMethod: req.ContactMethod,
		Status:        model.QuoteStatusPending,
		FullName:      req.FullName,
		Email:         req.Email,
		Phone:         req.Phone,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	buffered, err := persist(c, h.Exec, "create quote",
		func(ctx context.Context) error { return h.Quotes.Create(ctx, qt) },
		h.Buffers.Quotes, *qt)
	if err != nil {
		return err
	}
	if !buffered && multipart {
		qt.Documents = h.saveDocuments(c, formFiles(c), func(d *model.Document) {
			d.QuoteID = &qt.ID
		})
	}
	h.announce(c, "quotes", qt.ID, qt.FullName, qt.Email, buffered)
	return okData(c, http.StatusCreated, qt, submissionMessage("Quote request", buffered))
}

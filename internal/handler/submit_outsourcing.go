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

type outsourcingRequest struct {
	OrganizationName    string   `json:"organization_name"`
	Services            []string `json:"services"`
	NatureOfOutsourcing string   `json:"nature_of_outsourcing"`
	BudgetRange         string   `json:"budget_range"`
	ContactName         string   `json:"contact_name"`
	Email               string   `json:"email"`
	Phone               string   `json:"phone"`
}

func (r outsourcingRequest) check() error {
	switch {
	case r.OrganizationName == "":
		return errors.New("organization_name is required")
	case len(r.Services) == 0:
		return errors.New("at least one service is required")
	case r.ContactName == "":
		return errors.New("contact_name is required")
	case r.Email == "":
		return errors.New("email is required")
	}
	return nil
}

func outsourcingFromForm(c echo.Context) outsourcingRequest {
	req := outsourcingRequest{
		OrganizationName:    strings.TrimSpace(c.FormValue("organization_name")),
		NatureOfOutsourcing: strings.TrimSpace(c.FormValue("nature_of_outsourcing")),
		BudgetRange:         strings.TrimSpace(c.FormValue("budget_range")),
		ContactName:         strings.TrimSpace(c.FormValue("contact_name")),
		Email:               strings.TrimSpace(c.FormValue("email")),
		Phone:               strings.TrimSpace(c.FormValue("phone")),
	}
	// Services arrive as repeated form values.
	if form, err := c.FormParams(); err == nil {
		for _, s := range form["services"] {
			if s = strings.TrimSpace(s); s != "" {
				req.Services = append(req.Services, s)
			}
		}
	}
	return req
}

// SubmitOutsourcing accepts a corporate outsourcing request, as JSON or as a
// multipart form with optional document uploads.
// POST /v1/outsourcing
func (h *SubmitHandler) SubmitOutsourcing(c echo.Context) error {
	var req outsourcingRequest
	multipart := isMultipart(c)
	if multipart {
		req = outsourcingFromForm(c)
	} else {
		body, err := readBody(c)
		if err != nil {
			return fail(c, http.StatusBadRequest, "invalid request body", err.Error())
		}
		if err := validate.Submission(c.Request().Context(), validate.Outsourcing, body); err != nil {
			return fail(c, http.StatusBadRequest, "invalid submission", err.Error())
		}
		if err := json.Unmarshal(body, &req); err != nil {
			return fail(c, http.StatusBadRequest, "invalid request body", err.Error())
		}
	}
	if err := req.check(); err != nil {
		return fail(c, http.StatusBadRequest, "invalid submission", err.Error())
	}

	now := time.Now().UTC()
	or := &model.OutsourcingRequest{
		ID:                  utils.NewID(),
		OrganizationName:    req.OrganizationName,
		Services:            req.Services,
		NatureOfOutsourcing: req.NatureOfOutsourcing,
		BudgetRange:         req.BudgetRange,
		Status:              model.OutsourcingStatusPending,
		ContactName:         req.ContactName,
		Email:               req.Email,
		Phone:               req.Phone,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	buffered, err := persist(c, h.Exec, "create outsourcing request",
		func(ctx context.Context) error { return h.Outsourcing.Create(ctx, or) },
		h.Buffers.Outsourcing, *or)
	if err != nil {
		return err
	}
	if !buffered && multipart {
		or.Documents = h.saveDocuments(c, formFiles(c), func(d *model.Document) {
			d.OutsourcingID = &or.ID
		})
	}
	h.announce(c, "outsourcing", or.ID, or.ContactName, or.Email, buffered)
	return okData(c, http.StatusCreated, or, submissionMessage("Outsourcing request", buffered))
}

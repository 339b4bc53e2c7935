package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mzigo/insurance-brokerage-portal/internal/model"
	"github.com/mzigo/insurance-brokerage-portal/internal/utils"
	"github.com/mzigo/insurance-brokerage-portal/internal/validate"
)

type claimRequest struct {
	PolicyNumber  string    `json:"policy_number"`
	ClaimType     string    `json:"claim_type"`
	IncidentDate  time.Time `json:"incident_date"`
	EstimatedLoss float64   `json:"estimated_loss"`
	Description   string    `json:"description"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
}

func (r claimRequest) check() error {
	switch {
	case r.PolicyNumber == "":
		return errors.New("policy_number is required")
	case r.ClaimType == "":
		return errors.New("claim_type is required")
	case r.IncidentDate.IsZero():
		return errors.New("incident_date is required")
	case r.IncidentDate.After(time.Now()):
		return errors.New("incident_date cannot be in the future")
	case r.EstimatedLoss < 0:
		return errors.New("estimated_loss cannot be negative")
	case r.Description == "":
		return errors.New("description is required")
	case r.FullName == "":
		return errors.New("full_name is required")
	case r.Email == "":
		return errors.New("email is required")
	}
	return nil
}

func claimFromForm(c echo.Context) (claimRequest, error) {
	req := claimRequest{
		PolicyNumber: strings.TrimSpace(c.FormValue("policy_number")),
		ClaimType:    strings.TrimSpace(c.FormValue("claim_type")),
		Description:  strings.TrimSpace(c.FormValue("description")),
		FullName:     strings.TrimSpace(c.FormValue("full_name")),
		Email:        strings.TrimSpace(c.FormValue("email")),
		Phone:        strings.TrimSpace(c.FormValue("phone")),
	}
	if v := c.FormValue("incident_date"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return req, errors.New("incident_date must be an RFC3339 timestamp")
		}
		req.IncidentDate = t
	}
	if v := c.FormValue("estimated_loss"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return req, errors.New("estimated_loss must be a number")
		}
		req.EstimatedLoss = f
	}
	return req, nil
}

// SubmitClaim accepts a public claim submission, as JSON or as a multipart
// form with optional document uploads.
// POST /v1/claims
func (h *SubmitHandler) SubmitClaim(c echo.Context) error {
	var req claimRequest
	multipart := isMultipart(c)
	if multipart {
		var err error
		if req, err = claimFromForm(c); err != nil {
			return fail(c, http.StatusBadRequest, "invalid submission", err.Error())
		}
	} else {
		body, err := readBody(c)
		if err != nil {
			return fail(c, http.StatusBadRequest, "invalid request body", err.Error())
		}
		if err := validate.Submission(c.Request().Context(), validate.Claim, body); err != nil {
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
	cl := &model.Claim{
		ID:            utils.NewID(),
		PolicyNumber:  req.PolicyNumber,
		ClaimType:     req.ClaimType,
		IncidentDate:  req.IncidentDate.UTC(),
		EstimatedLoss: req.EstimatedLoss,
		Description:   req.Description,
		Status:        model.ClaimStatusPending,
		FullName:      req.FullName,
		Email:         req.Email,
		Phone:         req.Phone,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	buffered, err := persist(c, h.Exec, "create claim",
		func(ctx context.Context) error { return h.Claims.Create(ctx, cl) },
		h.Buffers.Claims, *cl)
	if err != nil {
		return err
	}
	if !buffered && multipart {
		cl.Documents = h.saveDocuments(c, formFiles(c), func(d *model.Document) {
			d.ClaimID = &cl.ID
		})
	}
	h.announce(c, "claims", cl.ID, cl.FullName, cl.Email, buffered)
	return okData(c, http.StatusCreated, cl, submissionMessage("Claim", buffered))
}

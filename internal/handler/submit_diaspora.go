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

type diasporaRequest struct {
	Country         string `json:"country"`
	Timezone        string `json:"timezone"`
	ServiceInterest string `json:"service_interest"`
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
}

func (r diasporaRequest) check() error {
	switch {
	case r.Country == "":
		return errors.New("country is required")
	case r.ServiceInterest == "":
		return errors.New("service_interest is required")
	case r.FullName == "":
		return errors.New("full_name is required")
	case r.Email == "":
		return errors.New("email is required")
	}
	return nil
}

// SubmitDiaspora accepts a diaspora-service request from a customer abroad.
// POST /v1/diaspora
func (h *SubmitHandler) SubmitDiaspora(c echo.Context) error {
	body, err := readBody(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body", err.Error())
	}
	if err := validate.Submission(c.Request().Context(), validate.Diaspora, body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid submission", err.Error())
	}
	var req diasporaRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body", err.Error())
	}
	if err := req.check(); err != nil {
		return fail(c, http.StatusBadRequest, "invalid submission", err.Error())
	}
	if req.Timezone != "" {
		if _, err := time.LoadLocation(req.Timezone); err != nil {
			return fail(c, http.StatusBadRequest, "invalid submission", "timezone must be an IANA zone name")
		}
	}

	now := time.Now().UTC()
	dr := &model.DiasporaRequest{
		ID:              utils.NewID(),
		Country:         req.Country,
		Timezone:        req.Timezone,
		ServiceInterest: req.ServiceInterest,
		Status:          model.DiasporaStatusPending,
		FullName:        req.FullName,
		Email:           req.Email,
		Phone:           req.Phone,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	buffered, err := persist(c, h.Exec, "create diaspora request",
		func(ctx context.Context) error { return h.Diaspora.Create(ctx, dr) },
		h.Buffers.Diaspora, *dr)
	if err != nil {
		return err
	}
	h.announce(c, "diaspora", dr.ID, dr.FullName, dr.Email, buffered)
	return okData(c, http.StatusCreated, dr, submissionMessage("Diaspora request", buffered))
}

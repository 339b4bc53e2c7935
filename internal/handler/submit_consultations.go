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

type consultationRequest struct {
	ServiceType string `json:"service_type"`
	Notes       string `json:"notes"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

func (r consultationRequest) check() error {
	switch {
	case r.ServiceType == "":
		return errors.New("service_type is required")
	case r.FullName == "":
		return errors.New("full_name is required")
	case r.Email == "":
		return errors.New("email is required")
	}
	return nil
}

// SubmitConsultation accepts a public consultation request.
// POST /v1/consultations
func (h *SubmitHandler) SubmitConsultation(c echo.Context) error {
	body, err := readBody(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body", err.Error())
	}
	if err := validate.Submission(c.Request().Context(), validate.Consultation, body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid submission", err.Error())
	}
	var req consultationRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body", err.Error())
	}
	if err := req.check(); err != nil {
		return fail(c, http.StatusBadRequest, "invalid submission", err.Error())
	}

	now := time.Now().UTC()
	cn := &model.Consultation{
		ID:          utils.NewID(),
		ServiceType: req.ServiceType,
		Notes:       req.Notes,
		Status:      model.ConsultationStatusPending,
		FullName:    req.FullName,
		Email:       req.Email,
		Phone:       req.Phone,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	buffered, err := persist(c, h.Exec, "create consultation",
		func(ctx context.Context) error { return h.Consultations.Create(ctx, cn) },
		h.Buffers.Consultations, *cn)
	if err != nil {
		return err
	}
	h.announce(c, "consultations", cn.ID, cn.FullName, cn.Email, buffered)
	return okData(c, http.StatusCreated, cn, submissionMessage("Consultation request", buffered))
}

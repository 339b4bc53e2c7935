package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mzigo/insurance-brokerage-portal/internal/model"
	"github.com/mzigo/insurance-brokerage-portal/internal/resilience"
)

// ListConsultations returns a page of consultation requests.
// GET /admin/consultations
func (h *AdminHandler) ListConsultations(c echo.Context) error {
	return listEntity(c, h.Exec, "consultations", h.Consultations.List,
		h.Buffers.Consultations, h.Supplier.Consultations, h.Supplier.Message("consultations"))
}

// GetConsultation returns one consultation request.
// GET /admin/consultations/:id
func (h *AdminHandler) GetConsultation(c echo.Context) error {
	id := c.Param("id")
	return getEntity(c, h.Exec, "get consultation", func(ctx context.Context) (*model.Consultation, error) {
		return h.Consultations.GetByID(ctx, id)
	})
}

// ScheduleConsultation assigns a meeting slot and link to a pending
// consultation and moves it to the scheduled status.
// PUT /admin/consultations/:id/schedule
func (h *AdminHandler) ScheduleConsultation(c echo.Context) error {
	id := c.Param("id")
	var req struct {
		ScheduledAt     time.Time `json:"scheduled_at"`
		MeetingLink     string    `json:"meeting_link"`
		DurationMinutes int       `json:"duration_minutes"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body", err.Error())
	}
	if req.ScheduledAt.IsZero() {
		return fail(c, http.StatusBadRequest, "invalid schedule", "scheduled_at is required")
	}
	if req.ScheduledAt.Before(time.Now()) {
		return fail(c, http.StatusBadRequest, "invalid schedule", "scheduled_at must be in the future")
	}
	if req.DurationMinutes <= 0 {
		req.DurationMinutes = 30
	}
	return mutateEntity(c, h.Exec, "schedule consultation",
		func(ctx context.Context) error {
			return h.Consultations.Schedule(ctx, id, req.ScheduledAt.UTC(), req.MeetingLink, req.DurationMinutes)
		},
		func() error {
			h.notify(c, "consultations", resilience.ActionUpdated, id)
			return okData(c, http.StatusOK, echo.Map{
				"id":           id,
				"status":       model.ConsultationStatusScheduled,
				"scheduled_at": req.ScheduledAt.UTC(),
			}, "Consultation scheduled")
		})
}

// UpdateConsultationStatus sets a consultation's status after validating the
// value.
// PUT /admin/consultations/:id/status
func (h *AdminHandler) UpdateConsultationStatus(c echo.Context) error {
	id := c.Param("id")
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body", err.Error())
	}
	if !model.ValidConsultationStatus(req.Status) {
		return fail(c, http.StatusBadRequest, "invalid status",
			"status must be one of: pending, scheduled, completed, cancelled")
	}
	return mutateEntity(c, h.Exec, "update consultation status",
		func(ctx context.Context) error { return h.Consultations.UpdateStatus(ctx, id, req.Status) },
		func() error {
			h.notify(c, "consultations", resilience.ActionUpdated, id)
			return okData(c, http.StatusOK, echo.Map{"id": id, "status": req.Status}, "Consultation status updated")
		})
}

// DeleteConsultation removes a consultation request.
// DELETE /admin/consultations/:id
func (h *AdminHandler) DeleteConsultation(c echo.Context) error {
	id := c.Param("id")
	return mutateEntity(c, h.Exec, "delete consultation",
		func(ctx context.Context) error { return h.Consultations.Delete(ctx, id) },
		func() error {
			h.notify(c, "consultations", resilience.ActionDeleted, id)
			return okData(c, http.StatusOK, echo.Map{"id": id}, "Consultation deleted")
		})
}

package handler

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/mzigo/insurance-brokerage-portal/internal/resilience"
)

// AdminHandler serves the back-office API: list/detail/status/delete per
// entity, consultation scheduling, user administration, the dashboard and
// exports. Exec, Supplier and Buffers must be set; Notifier and Log may be
// nil.
type AdminHandler struct {
	Claims        ClaimStore
	Quotes        QuoteStore
	Consultations ConsultationStore
	Outsourcing   OutsourcingStore
	Diaspora      DiasporaStore
	Payments      PaymentStore
	Users         UserStore
	Stats         DashboardStore
	Documents     DocumentStore

	Exec     *resilience.Executor
	Supplier *resilience.Supplier
	Buffers  *resilience.Buffers
	Notifier *resilience.Notifier
	Log      *zap.Logger

	// Dashboard refresh ordering: a slow fetch must not overwrite the
	// snapshot applied by a newer one.
	gate      resilience.VersionGate
	summaryMu sync.Mutex
	summary   *dashboardSummary
}

// notify publishes a change event; a nil notifier makes it a no-op.
func (h *AdminHandler) notify(c echo.Context, entity, action, id string) {
	if h.Notifier == nil {
		return
	}
	h.Notifier.Publish(c.Request().Context(), resilience.Event{
		Entity: entity,
		Action: action,
		ID:     id,
	})
}

// ResetBuffers clears every ephemeral write buffer.
// POST /admin/buffer/reset
func (h *AdminHandler) ResetBuffers(c echo.Context) error {
	cleared := h.Buffers.Len()
	h.Buffers.ResetAll()
	if h.Log != nil {
		h.Log.Info("write buffers cleared", zap.Int("records", cleared))
	}
	return okData(c, http.StatusOK, echo.Map{"cleared": cleared}, "Buffered submissions cleared")
}

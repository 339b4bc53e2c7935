package handler

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mzigo/insurance-brokerage-portal/internal/model"
	"github.com/mzigo/insurance-brokerage-portal/internal/repository"
	"github.com/mzigo/insurance-brokerage-portal/internal/resilience"
)

// collectAll drains every page of a list method for export.
func collectAll[T any](ctx context.Context,
	list func(context.Context, repository.ListQuery) ([]T, int64, error)) ([]T, error) {

	var out []T
	for p := 1; ; p++ {
		items, total, err := list(ctx, repository.ListQuery{Page: p, Limit: 100})
		if err != nil {
			return nil, err
		}
		out = append(out, items...)
		if len(items) == 0 || int64(len(out)) >= total {
			return out, nil
		}
	}
}

// Export streams a full entity collection as CSV (default) or JSON.
// Exports hit the store directly without retries; a degraded store fails the
// export rather than producing a partial or sample file.
// GET /admin/export/:entity?format=csv|json
func (h *AdminHandler) Export(c echo.Context) error {
	entity := c.Param("entity")
	format := c.QueryParam("format")
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "json" {
		return fail(c, http.StatusBadRequest, "invalid format", "format must be csv or json")
	}
	ctx := c.Request().Context()

	var (
		data   any
		header []string
		rows   [][]string
		err    error
	)
	switch entity {
	case "claims":
		var items []model.Claim
		if items, err = collectAll(ctx, h.Claims.List); err == nil {
			data = items
			header, rows = claimCSV(items)
		}
	case "quotes":
		var items []model.Quote
		if items, err = collectAll(ctx, h.Quotes.List); err == nil {
			data = items
			header, rows = quoteCSV(items)
		}
	case "consultations":
		var items []model.Consultation
		if items, err = collectAll(ctx, h.Consultations.List); err == nil {
			data = items
			header, rows = consultationCSV(items)
		}
	case "outsourcing":
		var items []model.OutsourcingRequest
		if items, err = collectAll(ctx, h.Outsourcing.List); err == nil {
			data = items
			header, rows = outsourcingCSV(items)
		}
	case "diaspora":
		var items []model.DiasporaRequest
		if items, err = collectAll(ctx, h.Diaspora.List); err == nil {
			data = items
			header, rows = diasporaCSV(items)
		}
	case "payments":
		var items []model.Payment
		if items, err = collectAll(ctx, h.Payments.List); err == nil {
			data = items
			header, rows = paymentCSV(items)
		}
	default:
		return fail(c, http.StatusBadRequest, "unknown entity",
			"entity must be one of: claims, quotes, consultations, outsourcing, diaspora, payments")
	}
	if err != nil {
		if resilience.Classify(err) == resilience.KindAuth {
			return fail(c, http.StatusInternalServerError, "data store authentication failed", err.Error())
		}
		return fail(c, http.StatusServiceUnavailable, "export failed", err.Error())
	}

	if format == "json" {
		return okData(c, http.StatusOK, data, "")
	}

	filename := fmt.Sprintf("%s-export-%s.csv", entity, time.Now().UTC().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Response().WriteHeader(http.StatusOK)

	w := csv.NewWriter(c.Response())
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func fmtTime(t time.Time) string { return t.UTC().Format(time.RFC3339) }

func fmtAmount(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func claimCSV(items []model.Claim) ([]string, [][]string) {
	header := []string{"id", "policy_number", "claim_type", "incident_date",
		"estimated_loss", "status", "full_name", "email", "phone", "created_at"}
	rows := make([][]string, 0, len(items))
	for _, cl := range items {
		rows = append(rows, []string{cl.ID, cl.PolicyNumber, cl.ClaimType,
			fmtTime(cl.IncidentDate), fmtAmount(cl.EstimatedLoss), cl.Status,
			cl.FullName, cl.Email, cl.Phone, fmtTime(cl.CreatedAt)})
	}
	return header, rows
}

func quoteCSV(items []model.Quote) ([]string, [][]string) {
	header := []string{"id", "product", "budget", "coverage", "contact_method",
		"status", "full_name", "email", "phone", "created_at"}
	rows := make([][]string, 0, len(items))
	for _, q := range items {
		rows = append(rows, []string{q.ID, q.Product, q.Budget, q.Coverage,
			q.ContactMethod, q.Status, q.FullName, q.Email, q.Phone, fmtTime(q.CreatedAt)})
	}
	return header, rows
}

func consultationCSV(items []model.Consultation) ([]string, [][]string) {
	header := []string{"id", "service_type", "scheduled_at", "meeting_link",
		"duration_minutes", "status", "full_name", "email", "phone", "created_at"}
	rows := make([][]string, 0, len(items))
	for _, cn := range items {
		scheduled := ""
		if cn.ScheduledAt != nil {
			scheduled = fmtTime(*cn.ScheduledAt)
		}
		rows = append(rows, []string{cn.ID, cn.ServiceType, scheduled, cn.MeetingLink,
			strconv.Itoa(cn.DurationMinutes), cn.Status, cn.FullName, cn.Email,
			cn.Phone, fmtTime(cn.CreatedAt)})
	}
	return header, rows
}

func outsourcingCSV(items []model.OutsourcingRequest) ([]string, [][]string) {
	header := []string{"id", "organization_name", "services", "nature_of_outsourcing",
		"budget_range", "status", "contact_name", "email", "phone", "created_at"}
	rows := make([][]string, 0, len(items))
	for _, or := range items {
		rows = append(rows, []string{or.ID, or.OrganizationName,
			strings.Join(or.Services, "; "), or.NatureOfOutsourcing, or.BudgetRange,
			or.Status, or.ContactName, or.Email, or.Phone, fmtTime(or.CreatedAt)})
	}
	return header, rows
}

func diasporaCSV(items []model.DiasporaRequest) ([]string, [][]string) {
	header := []string{"id", "country", "timezone", "service_interest",
		"status", "full_name", "email", "phone", "created_at"}
	rows := make([][]string, 0, len(items))
	for _, dr := range items {
		rows = append(rows, []string{dr.ID, dr.Country, dr.Timezone,
			dr.ServiceInterest, dr.Status, dr.FullName, dr.Email, dr.Phone,
			fmtTime(dr.CreatedAt)})
	}
	return header, rows
}

func paymentCSV(items []model.Payment) ([]string, [][]string) {
	header := []string{"id", "amount", "currency", "payment_method", "reference",
		"transaction_id", "status", "email", "created_at"}
	rows := make([][]string, 0, len(items))
	for _, p := range items {
		rows = append(rows, []string{p.ID, fmtAmount(p.Amount), p.Currency,
			p.PaymentMethod, p.Reference, p.TransactionID, p.Status, p.Email,
			fmtTime(p.CreatedAt)})
	}
	return header, rows
}

// Package handler defines the HTTP handlers for the public site and the
// administrative back office. Handlers depend on small store interfaces
// (satisfied by the repository types) and on the injected resilience pieces,
// so the degraded-store behavior is testable without a database.
package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mzigo/insurance-brokerage-portal/internal/model"
	"github.com/mzigo/insurance-brokerage-portal/internal/repository"
	"github.com/mzigo/insurance-brokerage-portal/internal/resilience"
)

// Store interfaces implemented by the repository layer.

// ClaimStore provides claim persistence.
type ClaimStore interface {
	Create(ctx context.Context, cl *model.Claim) error
	GetByID(ctx context.Context, id string) (*model.Claim, error)
	List(ctx context.Context, q repository.ListQuery) ([]model.Claim, int64, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

// QuoteStore provides quote persistence.
type QuoteStore interface {
	Create(ctx context.Context, qt *model.Quote) error
	GetByID(ctx context.Context, id string) (*model.Quote, error)
	List(ctx context.Context, q repository.ListQuery) ([]model.Quote, int64, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

// ConsultationStore provides consultation persistence and scheduling.
type ConsultationStore interface {
	Create(ctx context.Context, cn *model.Consultation) error
	GetByID(ctx context.Context, id string) (*model.Consultation, error)
	List(ctx context.Context, q repository.ListQuery) ([]model.Consultation, int64, error)
	Schedule(ctx context.Context, id string, at time.Time, link string, durationMinutes int) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

// OutsourcingStore provides outsourcing request persistence.
type OutsourcingStore interface {
	Create(ctx context.Context, or *model.OutsourcingRequest) error
	GetByID(ctx context.Context, id string) (*model.OutsourcingRequest, error)
	List(ctx context.Context, q repository.ListQuery) ([]model.OutsourcingRequest, int64, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

// DiasporaStore provides diaspora request persistence.
type DiasporaStore interface {
	Create(ctx context.Context, dr *model.DiasporaRequest) error
	GetByID(ctx context.Context, id string) (*model.DiasporaRequest, error)
	List(ctx context.Context, q repository.ListQuery) ([]model.DiasporaRequest, int64, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

// PaymentStore provides payment persistence.
type PaymentStore interface {
	Create(ctx context.Context, p *model.Payment) error
	GetByID(ctx context.Context, id string) (*model.Payment, error)
	List(ctx context.Context, q repository.ListQuery) ([]model.Payment, int64, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

// DocumentStore provides document persistence and retrieval.
type DocumentStore interface {
	Create(ctx context.Context, d *model.Document) error
	GetByID(ctx context.Context, id string) (*model.Document, error)
	ListByParent(ctx context.Context, column, parentID string) ([]model.Document, error)
}

// ResourceStore provides downloadable resource persistence.
type ResourceStore interface {
	Create(ctx context.Context, res *model.Resource) error
	GetByID(ctx context.Context, id string) (*model.Resource, error)
	List(ctx context.Context, q repository.ListQuery) ([]model.Resource, int64, error)
	Delete(ctx context.Context, id string) error
}

// UserStore provides user administration.
type UserStore interface {
	GetByID(ctx context.Context, id uint64) (model.User, error)
	List(ctx context.Context, q repository.ListQuery) ([]model.User, int64, error)
	UpdateRole(ctx context.Context, id uint64, role string) error
	Delete(ctx context.Context, id uint64) error
}

// DashboardStore runs the dashboard aggregation.
type DashboardStore interface {
	Counts(ctx context.Context) (*repository.DashboardCounts, error)
	Recent(ctx context.Context, limit int) ([]repository.RecentSubmission, error)
}

// pagination is the envelope attached to every list response.
type pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

func pageCount(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// response is the uniform body shape for every endpoint: mutations return
// {success, data, message}; failures return {success:false, message, error}.
type response struct {
	Success    bool        `json:"success"`
	Data       any         `json:"data,omitempty"`
	Pagination *pagination `json:"pagination,omitempty"`
	Message    string      `json:"message,omitempty"`
	Error      string      `json:"error,omitempty"`
}

func okData(c echo.Context, status int, data any, message string) error {
	return c.JSON(status, response{Success: true, Data: data, Message: message})
}

func okList(c echo.Context, data any, pg pagination, message string) error {
	return c.JSON(http.StatusOK, response{Success: true, Data: data, Pagination: &pg, Message: message})
}

func fail(c echo.Context, status int, message, errStr string) error {
	return c.JSON(status, response{Success: false, Message: message, Error: errStr})
}

// parseListQuery reads the page/limit/status/search query parameters.
func parseListQuery(c echo.Context) repository.ListQuery {
	q := repository.ListQuery{
		Status: strings.TrimSpace(c.QueryParam("status")),
		Search: strings.TrimSpace(c.QueryParam("search")),
	}
	if n, err := strconv.Atoi(c.QueryParam("page")); err == nil {
		q.Page = n
	}
	if n, err := strconv.Atoi(c.QueryParam("limit")); err == nil {
		q.Limit = n
	}
	return q.Normalize()
}

// page bundles a list method's two return values through the executor.
type page[T any] struct {
	items []T
	total int64
}

// listEntity runs a list query under the executor and builds the uniform
// list response. On transient exhaustion, and when the live table holds no
// rows at all, it follows the executor's policy: fallback rows tagged with
// the supplier's diagnostic message, or a 503 (empty lists render as-is under
// Propagate). Buffered submissions are merged ahead of the result on the
// first page and counted into the total so they are visible immediately
// after submission.
func listEntity[T any](c echo.Context, ex *resilience.Executor, entity string,
	list func(context.Context, repository.ListQuery) ([]T, int64, error),
	buf *resilience.Buffer[T], fallback func() []T, fallbackMsg string) error {

	q := parseListQuery(c)
	res := resilience.Do(c.Request().Context(), ex, "list "+entity,
		func(ctx context.Context) (page[T], error) {
			items, total, err := list(ctx, q)
			return page[T]{items: items, total: total}, err
		})

	var (
		items   []T
		total   int64
		message string
	)
	switch {
	case res.OK():
		items = res.Data().items
		total = res.Data().total
		if total == 0 && ex.Policy().OnTransient == resilience.Fallback {
			items = fallback()
			total = int64(len(items))
			message = fallbackMsg
		}
	case res.Kind() == resilience.KindAuth:
		return fail(c, http.StatusInternalServerError, "data store authentication failed", res.Message())
	default:
		if ex.Policy().OnTransient != resilience.Fallback {
			return fail(c, http.StatusServiceUnavailable, "data store unavailable", res.Message())
		}
		items = fallback()
		total = int64(len(items))
		message = fallbackMsg
	}

	if q.Page == 1 && buf != nil {
		if buffered := buf.Items(); len(buffered) > 0 {
			items = append(buffered, items...)
			total += int64(len(buffered))
		}
	}
	if items == nil {
		items = []T{}
	}
	return okList(c, items, pagination{
		Page:  q.Page,
		Limit: q.Limit,
		Total: total,
		Pages: pageCount(total, q.Limit),
	}, message)
}

// getEntity runs a get-by-id under the executor. Unknown ids come back as
// {success:false, error: "<entity> not found"} with a 404, never a panic.
func getEntity[T any](c echo.Context, ex *resilience.Executor, label string,
	get func(context.Context) (T, error)) error {

	res := resilience.Do(c.Request().Context(), ex, label, get)
	switch {
	case res.OK():
		return okData(c, http.StatusOK, res.Data(), "")
	case res.Kind() == resilience.KindNotFound:
		return fail(c, http.StatusNotFound, "", res.Message())
	case res.Kind() == resilience.KindAuth:
		return fail(c, http.StatusInternalServerError, "data store authentication failed", res.Message())
	}
	return fail(c, http.StatusServiceUnavailable, "data store unavailable", res.Message())
}

// mutateEntity runs a mutation (status update, schedule, delete) under the
// executor, translating not-found sentinels into the uniform error shape and
// leaving the write buffers untouched on every failure path.
func mutateEntity(c echo.Context, ex *resilience.Executor, label string,
	mutate func(context.Context) error, onSuccess func() error) error {

	res := resilience.Do(c.Request().Context(), ex, label,
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, mutate(ctx)
		})
	switch {
	case res.OK():
		return onSuccess()
	case res.Kind() == resilience.KindNotFound:
		return fail(c, http.StatusNotFound, "", res.Message())
	case res.Kind() == resilience.KindAuth:
		return fail(c, http.StatusInternalServerError, "data store authentication failed", res.Message())
	}
	return fail(c, http.StatusServiceUnavailable, "data store unavailable", res.Message())
}

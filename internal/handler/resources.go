package handler

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mzigo/insurance-brokerage-portal/internal/model"
	"github.com/mzigo/insurance-brokerage-portal/internal/resilience"
	"github.com/mzigo/insurance-brokerage-portal/internal/utils"
)

// ResourceHandler serves the public resource library and document downloads,
// plus the admin upload/delete endpoints for resources.
type ResourceHandler struct {
	Resources ResourceStore
	Documents DocumentStore
	Exec      *resilience.Executor
	Notifier  *resilience.Notifier
}

// ListResources returns downloadable resource metadata with optional
// category (status param) and title search filters.
// GET /v1/resources
func (h *ResourceHandler) ListResources(c echo.Context) error {
	q := parseListQuery(c)
	res := resilience.Do(c.Request().Context(), h.Exec, "list resources",
		func(ctx context.Context) (page[model.Resource], error) {
			items, total, err := h.Resources.List(ctx, q)
			return page[model.Resource]{items: items, total: total}, err
		})
	switch {
	case res.OK():
		items := res.Data().items
		if items == nil {
			items = []model.Resource{}
		}
		return okList(c, items, pagination{
			Page:  q.Page,
			Limit: q.Limit,
			Total: res.Data().total,
			Pages: pageCount(res.Data().total, q.Limit),
		}, "")
	case res.Kind() == resilience.KindAuth:
		return fail(c, http.StatusInternalServerError, "data store authentication failed", res.Message())
	}
	return fail(c, http.StatusServiceUnavailable, "data store unavailable", res.Message())
}

// DownloadResource streams a resource file with its stored filename and mime
// type. Unknown ids get the uniform not-found shape, never a broken stream.
// GET /v1/resources/:id/download
func (h *ResourceHandler) DownloadResource(c echo.Context) error {
	id := c.Param("id")
	res := resilience.Do(c.Request().Context(), h.Exec, "download resource",
		func(ctx context.Context) (*model.Resource, error) {
			return h.Resources.GetByID(ctx, id)
		})
	switch {
	case res.OK():
		r := res.Data()
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+r.Filename+`"`)
		return c.Blob(http.StatusOK, r.MimeType, r.Content)
	case res.Kind() == resilience.KindNotFound:
		return fail(c, http.StatusNotFound, "", res.Message())
	}
	return fail(c, http.StatusServiceUnavailable, "data store unavailable", res.Message())
}

// DownloadDocument streams an uploaded submission document.
// GET /v1/documents/:id/download
func (h *ResourceHandler) DownloadDocument(c echo.Context) error {
	id := c.Param("id")
	res := resilience.Do(c.Request().Context(), h.Exec, "download document",
		func(ctx context.Context) (*model.Document, error) {
			return h.Documents.GetByID(ctx, id)
		})
	switch {
	case res.OK():
		d := res.Data()
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+d.Filename+`"`)
		return c.Blob(http.StatusOK, d.MimeType, d.Content)
	case res.Kind() == resilience.KindNotFound:
		return fail(c, http.StatusNotFound, "", res.Message())
	}
	return fail(c, http.StatusServiceUnavailable, "data store unavailable", res.Message())
}

// UploadResource stores a new downloadable resource from a multipart form
// with title, category and file fields.
// POST /admin/resources
func (h *ResourceHandler) UploadResource(c echo.Context) error {
	title := c.FormValue("title")
	category := c.FormValue("category")
	if title == "" {
		return fail(c, http.StatusBadRequest, "invalid resource", "title is required")
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid resource", "file is required")
	}
	if fh.Size > maxUploadSize {
		return fail(c, http.StatusBadRequest, "invalid resource", "file exceeds the 10 MiB limit")
	}
	f, err := fh.Open()
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid resource", err.Error())
	}
	defer func() { _ = f.Close() }()
	content, err := io.ReadAll(io.LimitReader(f, maxUploadSize))
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid resource", err.Error())
	}
	mime := fh.Header.Get("Content-Type")
	if mime == "" {
		mime = "application/octet-stream"
	}

	r := &model.Resource{
		ID:        utils.NewID(),
		Title:     title,
		Category:  category,
		Filename:  fh.Filename,
		MimeType:  mime,
		Size:      int64(len(content)),
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.Resources.Create(c.Request().Context(), r); err != nil {
		if resilience.Classify(err) == resilience.KindAuth {
			return fail(c, http.StatusInternalServerError, "data store authentication failed", err.Error())
		}
		return fail(c, http.StatusServiceUnavailable, "store resource failed", err.Error())
	}
	r.Content = nil
	h.notify(c, resilience.ActionCreated, r.ID)
	return okData(c, http.StatusCreated, r, "Resource uploaded")
}

// DeleteResource removes a resource from the library.
// DELETE /admin/resources/:id
func (h *ResourceHandler) DeleteResource(c echo.Context) error {
	id := c.Param("id")
	return mutateEntity(c, h.Exec, "delete resource",
		func(ctx context.Context) error { return h.Resources.Delete(ctx, id) },
		func() error {
			h.notify(c, resilience.ActionDeleted, id)
			return okData(c, http.StatusOK, echo.Map{"id": id}, "Resource deleted")
		})
}

func (h *ResourceHandler) notify(c echo.Context, action, id string) {
	if h.Notifier == nil {
		return
	}
	h.Notifier.Publish(c.Request().Context(), resilience.Event{
		Entity: "resources",
		Action: action,
		ID:     id,
	})
}

package handler

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/mzigo/insurance-brokerage-portal/internal/model"
	"github.com/mzigo/insurance-brokerage-portal/internal/queue"
	"github.com/mzigo/insurance-brokerage-portal/internal/resilience"
	"github.com/mzigo/insurance-brokerage-portal/internal/utils"
)

// Request body and per-file upload bounds for public submissions.
const (
	maxSubmissionBody = 1 << 20  // 1 MiB
	maxUploadSize     = 10 << 20 // 10 MiB per file
)

// EventPublisher announces accepted submissions on the message broker.
type EventPublisher interface {
	SubmissionReceived(ctx context.Context, ev queue.SubmissionReceivedEvent) error
}

// SubmitHandler serves the public submission endpoints. Writes that fail
// transiently land in the ephemeral buffers instead of erroring, so a form
// submission never bounces just because the database is restarting. Exec and
// Buffers must be set; Documents, Notifier, Events and Log may be nil.
type SubmitHandler struct {
	Claims        ClaimStore
	Quotes        QuoteStore
	Consultations ConsultationStore
	Outsourcing   OutsourcingStore
	Diaspora      DiasporaStore
	Payments      PaymentStore
	Documents     DocumentStore

	Exec     *resilience.Executor
	Buffers  *resilience.Buffers
	Notifier *resilience.Notifier
	Events   EventPublisher
	Log      *zap.Logger
}

// readBody drains the request body with a hard size cap.
func readBody(c echo.Context) ([]byte, error) {
	return io.ReadAll(io.LimitReader(c.Request().Body, maxSubmissionBody))
}

// isMultipart reports whether the request carries a multipart form.
func isMultipart(c echo.Context) bool {
	ct := c.Request().Header.Get(echo.HeaderContentType)
	return strings.HasPrefix(ct, echo.MIMEMultipartForm)
}

// formFiles returns the uploaded files under the documents form key.
func formFiles(c echo.Context) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File["documents"]
}

// persist runs the entity create under the executor. When the store is
// transiently unreachable the record is captured in buf and the submission
// still succeeds; only an auth failure bubbles up as a server error.
func persist[T any](c echo.Context, ex *resilience.Executor, label string,
	create func(context.Context) error, buf *resilience.Buffer[T], record T) (buffered bool, err error) {

	res := resilience.Do(c.Request().Context(), ex, label,
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, create(ctx)
		})
	if res.OK() {
		return false, nil
	}
	if res.Kind() == resilience.KindAuth {
		return false, fail(c, http.StatusInternalServerError, "data store authentication failed", res.Message())
	}
	buf.Record(record)
	return true, nil
}

// announce publishes the change event and the broker notification for an
// accepted submission. Both are best-effort.
func (h *SubmitHandler) announce(c echo.Context, entity, id, name, email string, buffered bool) {
	if h.Notifier != nil {
		h.Notifier.Publish(c.Request().Context(), resilience.Event{
			Entity: entity,
			Action: resilience.ActionCreated,
			ID:     id,
		})
	}
	if h.Events == nil {
		return
	}
	ev := queue.SubmissionReceivedEvent{
		Entity:     entity,
		ID:         id,
		FullName:   name,
		Email:      email,
		Buffered:   buffered,
		ReceivedAt: time.Now().UTC().Format(time.RFC3339),
	}
	// Broker publish dials per message; keep it off the request path.
	go func() {
		if err := h.Events.SubmissionReceived(context.Background(), ev); err != nil && h.Log != nil {
			h.Log.Warn("submission event publish failed",
				zap.String("entity", entity), zap.String("id", id), zap.Error(err))
		}
	}()
}

// saveDocuments stores uploaded files against a parent submission. Failures
// are logged and skipped: losing an attachment must not fail the submission.
func (h *SubmitHandler) saveDocuments(c echo.Context, files []*multipart.FileHeader,
	assign func(d *model.Document)) []model.Document {

	if h.Documents == nil || len(files) == 0 {
		return nil
	}
	ctx := c.Request().Context()
	var saved []model.Document
	for _, fh := range files {
		if fh.Size > maxUploadSize {
			if h.Log != nil {
				h.Log.Warn("upload skipped, file too large",
					zap.String("filename", fh.Filename), zap.Int64("size", fh.Size))
			}
			continue
		}
		f, err := fh.Open()
		if err != nil {
			continue
		}
		content, err := io.ReadAll(io.LimitReader(f, maxUploadSize))
		_ = f.Close()
		if err != nil {
			continue
		}
		mime := fh.Header.Get("Content-Type")
		if mime == "" {
			mime = "application/octet-stream"
		}
		d := model.Document{
			ID:        utils.NewID(),
			Filename:  fh.Filename,
			MimeType:  mime,
			Size:      int64(len(content)),
			Content:   content,
			CreatedAt: time.Now().UTC(),
		}
		assign(&d)
		if err := h.Documents.Create(ctx, &d); err != nil {
			if h.Log != nil {
				h.Log.Warn("document store failed",
					zap.String("filename", d.Filename), zap.Error(err))
			}
			continue
		}
		d.Content = nil
		saved = append(saved, d)
	}
	return saved
}

// submissionMessage builds the success message, noting when the record was
// only captured in the write buffer.
func submissionMessage(what string, buffered bool) string {
	if buffered {
		return what + " received; our systems are briefly offline and it has been queued for processing"
	}
	return what + " submitted successfully"
}

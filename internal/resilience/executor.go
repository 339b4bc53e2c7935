package resilience

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
)

// TransientAction tells callers what to do once retries are exhausted.
type TransientAction int

const (
	// Propagate surfaces the failure to the caller as a failed Result.
	Propagate TransientAction = iota
	// Fallback tells the caller to substitute sample data from the Supplier.
	Fallback
)

// Policy configures the Executor. The always-render-something behavior is
// opt-in through OnTransient rather than implicit.
type Policy struct {
	Retries     int             // additional attempts after the first failure
	Delay       time.Duration   // fixed pause between attempts
	OnTransient TransientAction // what the caller should do on exhaustion
}

// DefaultPolicy retries once after a two second pause and directs callers to
// fall back to sample data.
func DefaultPolicy() Policy {
	return Policy{Retries: 1, Delay: 2 * time.Second, OnTransient: Fallback}
}

// Executor runs data operations under a retry policy. It holds no mutable
// state of its own; a single instance is shared by all handlers.
type Executor struct {
	policy Policy
	log    *zap.Logger
}

// NewExecutor builds an Executor. A nil logger is replaced with a no-op one.
func NewExecutor(p Policy, log *zap.Logger) *Executor {
	if log == nil {
		log = zap.NewNop()
	}
	if p.Retries < 0 {
		p.Retries = 0
	}
	return &Executor{policy: p, log: log}
}

// Policy returns the executor's configured policy.
func (e *Executor) Policy() Policy { return e.policy }

// Do executes fn under the executor's policy. Auth failures abort after a
// single attempt. Transient failures are retried Policy.Retries times with
// Policy.Delay between attempts, honoring ctx cancellation, and the final
// failure comes back as a failed Result rather than an error. An operation
// that returns an empty list with a nil error is a success: emptiness and
// unreachability are different outcomes.
func Do[T any](ctx context.Context, e *Executor, label string, fn func(context.Context) (T, error)) Result[T] {
	attempts := e.policy.Retries + 1
	var last error
	for i := 0; i < attempts; i++ {
		data, err := fn(ctx)
		if err == nil {
			return Ok(data)
		}
		last = err
		switch Classify(err) {
		case KindAuth:
			e.log.Warn("operation aborted on auth failure",
				zap.String("op", label), zap.Error(err))
			return Fail[T](KindAuth, err.Error())
		case KindNotFound:
			return Fail[T](KindNotFound, err.Error())
		}
		if i < attempts-1 {
			e.log.Debug("operation failed, retrying",
				zap.String("op", label), zap.Int("attempt", i+1), zap.Error(err))
			select {
			case <-ctx.Done():
				return Fail[T](KindTransient, ctx.Err().Error())
			case <-time.After(e.policy.Delay):
			}
		}
	}
	e.log.Warn("operation failed after retries",
		zap.String("op", label), zap.Int("attempts", attempts), zap.Error(last))
	return Fail[T](KindTransient, last.Error())
}

// Markers of fatal authentication/authorization failures in driver and
// server error strings. MySQL reports bad credentials as "Access denied".
var authMarkers = []string{
	"access denied",
	"authentication failed",
	"invalid credentials",
	"permission denied",
	"unauthorized",
}

// Classify maps an error to a failure Kind by its message vocabulary.
// Anything that is neither an auth failure nor a missing row is treated as
// transient and therefore retryable.
func Classify(err error) Kind {
	if err == nil {
		return KindNone
	}
	if errors.Is(err, sql.ErrNoRows) {
		return KindNotFound
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "not found") {
		return KindNotFound
	}
	for _, m := range authMarkers {
		if strings.Contains(msg, m) {
			return KindAuth
		}
	}
	return KindTransient
}

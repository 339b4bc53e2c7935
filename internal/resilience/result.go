// Package resilience keeps the API answering when the primary store is
// unreachable. It bundles a retrying query executor, a fallback supplier of
// sample records, an in-memory buffer for submissions accepted while the
// store is down, and a change notifier built on Redis pub/sub. Everything
// here is constructed explicitly and injected; there is no package-level
// state.
package resilience

// Kind classifies why an operation failed.
type Kind int

const (
	// KindNone marks a successful result.
	KindNone Kind = iota
	// KindTransient covers infrastructure failures: missing tables,
	// timeouts, dropped connections. Transient failures are retried and may
	// degrade to fallback data.
	KindTransient
	// KindAuth covers authentication and authorization failures. These are
	// fatal: retrying with the same credentials cannot succeed.
	KindAuth
	// KindNotFound covers lookups of ids that do not exist. Never retried,
	// never degraded to fallback data.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindTransient:
		return "transient"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	}
	return "unknown"
}

// Result is the tagged outcome of an executed operation: either Ok carrying
// data, or a failure carrying a kind and message. Callers switch on Kind()
// instead of inspecting loosely-typed success flags.
type Result[T any] struct {
	ok      bool
	data    T
	kind    Kind
	message string
}

// Ok wraps data in a successful Result.
func Ok[T any](data T) Result[T] {
	return Result[T]{ok: true, data: data}
}

// Fail builds a failed Result with the given kind and message.
func Fail[T any](kind Kind, message string) Result[T] {
	return Result[T]{kind: kind, message: message}
}

// OK reports whether the operation succeeded.
func (r Result[T]) OK() bool { return r.ok }

// Data returns the payload; the zero value when the operation failed.
func (r Result[T]) Data() T { return r.data }

// Kind returns the failure classification, KindNone on success.
func (r Result[T]) Kind() Kind { return r.kind }

// Message returns the failure message, empty on success.
func (r Result[T]) Message() string { return r.message }

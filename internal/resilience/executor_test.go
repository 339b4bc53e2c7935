package resilience

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"
)

func testPolicy(retries int) Policy {
	return Policy{Retries: retries, Delay: time.Millisecond, OnTransient: Fallback}
}

func TestDoSucceedsFirstAttempt(t *testing.T) {
	ex := NewExecutor(testPolicy(2), nil)
	calls := 0
	res := Do(context.Background(), ex, "op", func(ctx context.Context) (int, error) {
		calls++
		return 42, nil
	})
	if !res.OK() || res.Data() != 42 {
		t.Fatalf("expected ok result with 42, got ok=%v data=%d", res.OK(), res.Data())
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestDoRetriesTransientThenSucceeds(t *testing.T) {
	ex := NewExecutor(testPolicy(1), nil)
	calls := 0
	res := Do(context.Background(), ex, "op", func(ctx context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("connection refused")
		}
		return "live", nil
	})
	if !res.OK() || res.Data() != "live" {
		t.Fatalf("expected recovery on retry, got ok=%v", res.OK())
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}

func TestDoRetryBound(t *testing.T) {
	const delay = 15 * time.Millisecond
	ex := NewExecutor(Policy{Retries: 2, Delay: delay, OnTransient: Fallback}, nil)
	calls := 0
	start := time.Now()
	res := Do(context.Background(), ex, "op", func(ctx context.Context) (int, error) {
		calls++
		return 0, errors.New("connection reset by peer")
	})
	if res.OK() {
		t.Fatal("expected failed result")
	}
	if res.Kind() != KindTransient {
		t.Fatalf("expected transient kind, got %v", res.Kind())
	}
	if calls != 3 {
		t.Fatalf("expected exactly retries+1=3 calls, got %d", calls)
	}
	if elapsed := time.Since(start); elapsed < 2*delay {
		t.Fatalf("elapsed %v, want at least retries x delay = %v between attempts", elapsed, 2*delay)
	}
	if res.Message() == "" {
		t.Fatal("expected the final error message to be preserved")
	}
}

func TestDoAuthFailureAbortsImmediately(t *testing.T) {
	ex := NewExecutor(testPolicy(5), nil)
	calls := 0
	res := Do(context.Background(), ex, "op", func(ctx context.Context) (int, error) {
		calls++
		return 0, errors.New("Access denied for user 'app'@'localhost'")
	})
	if res.Kind() != KindAuth {
		t.Fatalf("expected auth kind, got %v", res.Kind())
	}
	if calls != 1 {
		t.Fatalf("auth failures must not be retried, got %d calls", calls)
	}
}

func TestDoNotFoundIsNotRetried(t *testing.T) {
	ex := NewExecutor(testPolicy(5), nil)
	calls := 0
	res := Do(context.Background(), ex, "op", func(ctx context.Context) (*int, error) {
		calls++
		return nil, sql.ErrNoRows
	})
	if res.Kind() != KindNotFound {
		t.Fatalf("expected not-found kind, got %v", res.Kind())
	}
	if calls != 1 {
		t.Fatalf("missing rows must not be retried, got %d calls", calls)
	}
}

func TestDoEmptyResultIsSuccess(t *testing.T) {
	ex := NewExecutor(testPolicy(0), nil)
	res := Do(context.Background(), ex, "op", func(ctx context.Context) ([]int, error) {
		return []int{}, nil
	})
	if !res.OK() {
		t.Fatal("an empty list with a nil error is a success, not a failure")
	}
	if len(res.Data()) != 0 {
		t.Fatalf("expected empty data, got %v", res.Data())
	}
}

func TestDoHonorsContextCancellation(t *testing.T) {
	ex := NewExecutor(Policy{Retries: 3, Delay: time.Minute, OnTransient: Fallback}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	start := time.Now()
	res := Do(ctx, ex, "op", func(ctx context.Context) (int, error) {
		return 0, errors.New("dial tcp: connection refused")
	})
	if res.OK() || res.Kind() != KindTransient {
		t.Fatalf("expected transient failure after cancellation, got ok=%v kind=%v", res.OK(), res.Kind())
	}
	if time.Since(start) > 5*time.Second {
		t.Fatal("cancellation did not interrupt the retry delay")
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindNone},
		{"no rows", sql.ErrNoRows, KindNotFound},
		{"wrapped no rows", errors.Join(errors.New("get claim"), sql.ErrNoRows), KindNotFound},
		{"sentinel not found", errors.New("claim not found"), KindNotFound},
		{"access denied", errors.New("Error 1045: Access denied for user"), KindAuth},
		{"invalid credentials", errors.New("invalid credentials"), KindAuth},
		{"permission denied", errors.New("permission denied"), KindAuth},
		{"timeout", errors.New("i/o timeout"), KindTransient},
		{"connection refused", errors.New("dial tcp 127.0.0.1:3306: connection refused"), KindTransient},
	}
	for _, tc := range cases {
		if got := Classify(tc.err); got != tc.want {
			t.Errorf("%s: Classify = %v, want %v", tc.name, got, tc.want)
		}
	}
}

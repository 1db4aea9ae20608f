package util

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestParallel_RunsEveryInput(t *testing.T) {
	var sum atomic.Int64
	inputs := []int{1, 2, 3, 4, 5}

	err := Parallel(context.Background(), inputs, 3, func(_ context.Context, n int) error {
		sum.Add(int64(n))
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Load() != 15 {
		t.Errorf("expected sum 15, got %d", sum.Load())
	}
}

func TestParallel_ReturnsFirstError(t *testing.T) {
	boom := errors.New("boom")

	err := Parallel(context.Background(), []int{1, 2, 3}, 1, func(_ context.Context, n int) error {
		if n == 2 {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestParallel_EmptyInput(t *testing.T) {
	called := false
	err := Parallel(context.Background(), []string{}, 4, func(context.Context, string) error {
		called = true
		return nil
	})
	if err != nil || called {
		t.Errorf("expected no-op, got err=%v called=%v", err, called)
	}
}

package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// mockTextGenerator is a mock implementation of the TextGenerator interface.
type mockTextGenerator struct {
	GenerateSummaryFunc func(ctx context.Context, text string) (string, error)
}

func (m *mockTextGenerator) GenerateSummary(ctx context.Context, text string) (string, error) {
	if m.GenerateSummaryFunc != nil {
		return m.GenerateSummaryFunc(ctx, text)
	}
	return "summary", nil
}

func TestSummarizeUsecase_Summarize(t *testing.T) {
	ctx := context.Background()

	t.Run("success: summary passed through", func(t *testing.T) {
		gen := &mockTextGenerator{
			GenerateSummaryFunc: func(ctx context.Context, text string) (string, error) {
				return "a concise summary", nil
			},
		}
		uc := NewSummarizeUsecase(gen)

		got, err := uc.Summarize(ctx, "a long account of the experience")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "a concise summary" {
			t.Errorf("expected summary, got %q", got)
		}
	})

	t.Run("failure: empty input rejected before upstream call", func(t *testing.T) {
		gen := &mockTextGenerator{
			GenerateSummaryFunc: func(ctx context.Context, text string) (string, error) {
				t.Error("generator should not be called")
				return "", nil
			},
		}
		uc := NewSummarizeUsecase(gen)

		if _, err := uc.Summarize(ctx, "   "); err == nil {
			t.Error("expected error for empty input")
		}
	})

	t.Run("failure: upstream error surfaced", func(t *testing.T) {
		upstreamErr := errors.New("upstream 503")
		gen := &mockTextGenerator{
			GenerateSummaryFunc: func(ctx context.Context, text string) (string, error) {
				return "", upstreamErr
			},
		}
		uc := NewSummarizeUsecase(gen)

		_, err := uc.Summarize(ctx, "some text")
		if !errors.Is(err, upstreamErr) {
			t.Errorf("expected upstream error, got: %v", err)
		}
	})

	t.Run("failure: blank upstream output treated as error", func(t *testing.T) {
		gen := &mockTextGenerator{
			GenerateSummaryFunc: func(ctx context.Context, text string) (string, error) {
				return "  ", nil
			},
		}
		uc := NewSummarizeUsecase(gen)

		if _, err := uc.Summarize(ctx, "some text"); err == nil {
			t.Error("expected error for blank summary")
		}
	})

	t.Run("oversized input is truncated", func(t *testing.T) {
		var gotLen int
		gen := &mockTextGenerator{
			GenerateSummaryFunc: func(ctx context.Context, text string) (string, error) {
				gotLen = len(text)
				return "summary", nil
			},
		}
		uc := NewSummarizeUsecase(gen)

		_, err := uc.Summarize(ctx, strings.Repeat("a", maxInputLength+500))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotLen != maxInputLength {
			t.Errorf("expected input truncated to %d, got %d", maxInputLength, gotLen)
		}
	})

	t.Run("cancelled context aborts the wait", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		uc := NewSummarizeUsecase(&mockTextGenerator{})

		// バーストを使い切ってからキャンセル済みコンテキストで待機させる
		for i := 0; i < burstSize; i++ {
			if _, err := uc.Summarize(ctx, "warmup"); err != nil {
				t.Fatalf("unexpected error during warmup: %v", err)
			}
		}
		if _, err := uc.Summarize(cancelled, "some text"); err == nil {
			t.Error("expected error when context is cancelled")
		}
	})
}

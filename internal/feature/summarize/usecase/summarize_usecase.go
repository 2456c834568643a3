// Package usecase は自由テキスト要約のビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/time/rate"
)

const (
	// maxInputLength は要約APIに渡す入力の上限文字数です。
	maxInputLength = 20000

	// requestsPerSecond は上流APIへのリクエストレートの上限です。
	requestsPerSecond = 2

	// burstSize は瞬間的に許容するリクエスト数です。
	burstSize = 4
)

// TextGenerator は要約を生成する上流モデルクライアントを抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type TextGenerator interface {
	// GenerateSummary は入力テキストの要約を返します。
	// 呼び出しごとに独立しており、過去の呼び出しの内容が混入することはありません。
	GenerateSummary(ctx context.Context, text string) (string, error)
}

// summarizeUsecase は上流モデル呼び出しにレート制限を適用します。
type summarizeUsecase struct {
	generator TextGenerator
	limiter   *rate.Limiter
}

// NewSummarizeUsecase はsummarizeUsecaseの新しいインスタンスを生成します。
func NewSummarizeUsecase(generator TextGenerator) *summarizeUsecase {
	return &summarizeUsecase{
		generator: generator,
		limiter:   rate.NewLimiter(rate.Limit(requestsPerSecond), burstSize),
	}
}

// Summarize は入力を検証し、レート制限の下で要約を生成します。
// コンテキストのキャンセルは待機中・呼び出し中の両方で尊重されます。
func (u *summarizeUsecase) Summarize(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("text to summarize is empty")
	}
	if len(text) > maxInputLength {
		text = text[:maxInputLength]
	}

	if err := u.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait aborted: %w", err)
	}

	summary, err := u.generator.GenerateSummary(ctx, text)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(summary) == "" {
		return "", fmt.Errorf("upstream returned an empty summary")
	}
	return summary, nil
}

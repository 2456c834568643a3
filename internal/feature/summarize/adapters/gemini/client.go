// Package gemini はGoogle Gemini APIを使用した医療的要約クライアントを提供します。
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"wellness_backend/internal/feature/summarize/usecase"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"

	// systemPrompt は要約の役割と出力形式を固定するシステム指示です。
	systemPrompt = `You are a professional medical summarization assistant. Your role is to summarize user-provided experiences into concise, clear, and medically relevant summaries. The summaries should focus on key symptoms, emotions, behaviors, and any notable medical or psychological details mentioned by the user.

Guidelines:
1. Extract the most important details from the text and organize them in a coherent, logical order.
2. Avoid including unnecessary conversational details or filler words.
3. If the text contains medical or psychological terminology, ensure accurate and professional phrasing.
4. Structure the summary in a way that is easy for healthcare professionals to understand.
5. Keep the summary under 100 words, unless the input text requires more detail to be precise.
6. Provide a professional tone and avoid speculation or assumptions beyond what is stated.`
)

// GeminiSummarizer はGoogle Gemini APIを使用して要約を生成します。
// 各呼び出しは独立したリクエストであり、会話履歴は保持しません。
// 履歴を共有すると並行リクエスト間で内容が混線するためです。
type GeminiSummarizer struct {
	client *genai.Client
	model  string
}

// GeminiSummarizerがTextGeneratorを実装していることをコンパイル時に検証します。
var _ usecase.TextGenerator = (*GeminiSummarizer)(nil)

// NewGeminiSummarizer はADCを使用してGeminiSummarizerの新しいインスタンスを生成します。
// 環境変数 GOOGLE_GENAI_USE_VERTEXAI, GOOGLE_CLOUD_PROJECT, GOOGLE_CLOUD_LOCATION が必要です。
func NewGeminiSummarizer(ctx context.Context) (*GeminiSummarizer, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiSummarizer{client: client, model: DefaultModel}, nil
}

// GenerateSummary は入力テキストの要約を生成します。
func (g *GeminiSummarizer) GenerateSummary(ctx context.Context, text string) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		},
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(text), config)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}

	return resp.Text(), nil
}

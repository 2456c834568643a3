// Package handler はformsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"wellness_backend/internal/api"
	"wellness_backend/internal/feature/forms/domain/entity"
	"wellness_backend/internal/feature/forms/transport/http/dto"
	"wellness_backend/internal/feature/forms/usecase"
	jwtmw "wellness_backend/internal/platform/jwt"
)

// FormsUsecase はフォームレコード保存のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type FormsUsecase interface {
	SaveOnboarding(ctx context.Context, userID uint, email string, responses []entity.QuestionAnswer) (*entity.OnboardingQuestion, error)
	SaveJournal(ctx context.Context, userID uint, email string, input usecase.JournalInput) (*entity.Journal, error)
	SaveMuscles(ctx context.Context, userID uint, email, date string, tokens []string) (*entity.MuscleSelection, error)
	SaveJourney(ctx context.Context, userID uint, email, date string, levels []entity.Level) (*entity.Journey, error)
	SavePostExperience(ctx context.Context, userID uint, email, date, text string) (*entity.PostExperience, error)
	SaveAudio(ctx context.Context, userID uint, email, date, text string) (*entity.Audio, error)
}

// FormsHandler はフォーム保存のHTTPリクエストを処理します。
type FormsHandler struct {
	forms FormsUsecase
}

// NewFormsHandler はFormsHandlerの新しいインスタンスを生成します。
func NewFormsHandler(forms FormsUsecase) *FormsHandler {
	return &FormsHandler{forms: forms}
}

// identity は認証ミドルウェアが設定した識別情報を取得します。
// 保護ルートでのみ呼ばれるため、欠落は構成ミスとして401を返します。
func identity(c *gin.Context) (jwtmw.Identity, bool) {
	id, ok := jwtmw.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "missing bearer token"})
	}
	return id, ok
}

// respondError はユースケースのエラーをHTTPステータスに対応付けます。
// バリデーションエラーは400、それ以外は500です。
func respondError(c *gin.Context, action string, err error) {
	var ve *usecase.ValidationError
	if errors.As(err, &ve) {
		slog.Warn(action+" validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: ve.Message})
		return
	}
	slog.Error(action+" failed", "error", err, "remote_addr", c.ClientIP())
	c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
}

// SaveAnswers はオンボーディング回答の保存APIエンドポイントを処理します。
func (h *FormsHandler) SaveAnswers(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req dto.SaveAnswersReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	responses := make([]entity.QuestionAnswer, 0, len(req.Responses))
	for _, qa := range req.Responses {
		responses = append(responses, entity.QuestionAnswer{Question: qa.Question, Answer: qa.Answer})
	}

	record, err := h.forms.SaveOnboarding(c.Request.Context(), id.UserID, id.Email, responses)
	if err != nil {
		respondError(c, "save answers", err)
		return
	}
	c.JSON(http.StatusCreated, api.SavedResponse{Message: "Answers saved successfully!", Data: record})
}

// SaveJournal はジャーナルエントリの保存APIエンドポイントを処理します。
func (h *FormsHandler) SaveJournal(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req dto.SaveJournalReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	record, err := h.forms.SaveJournal(c.Request.Context(), id.UserID, id.Email, usecase.JournalInput{
		Medicine:       req.JournalEntry.Medicine,
		Intention:      req.JournalEntry.Intention,
		ExperienceDate: req.JournalEntry.ExperienceDate,
		CurrentState:   req.JournalEntry.CurrentState,
		PostExperience: req.JournalEntry.PostExperience,
	})
	if err != nil {
		respondError(c, "save journal", err)
		return
	}
	c.JSON(http.StatusCreated, api.SavedResponse{Message: "Journal entry saved successfully!", Data: record})
}

// SaveMuscles は部位選択の保存APIエンドポイントを処理します。
func (h *FormsHandler) SaveMuscles(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req dto.SaveMusclesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	record, err := h.forms.SaveMuscles(c.Request.Context(), id.UserID, id.Email, req.Date, req.SelectedMuscles)
	if err != nil {
		respondError(c, "save muscles", err)
		return
	}
	c.JSON(http.StatusCreated, api.SavedResponse{Message: "Muscles saved successfully!", Data: record})
}

// SaveStory はストーリー回答の保存APIエンドポイントを処理します。
func (h *FormsHandler) SaveStory(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req dto.SaveStoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	levels := make([]entity.Level, 0, len(req.Levels))
	for _, level := range req.Levels {
		qas := make([]entity.QuestionAnswer, 0, len(level.QuestionAnswers))
		for _, qa := range level.QuestionAnswers {
			qas = append(qas, entity.QuestionAnswer{Question: qa.Question, Answer: qa.Answer})
		}
		levels = append(levels, entity.Level{Title: level.Title, QuestionAnswers: qas})
	}

	record, err := h.forms.SaveJourney(c.Request.Context(), id.UserID, id.Email, req.Date, levels)
	if err != nil {
		respondError(c, "save story", err)
		return
	}
	c.JSON(http.StatusCreated, api.SavedResponse{Message: "Journey saved successfully!", Data: record})
}

// SavePostExperience は体験後テキストの保存APIエンドポイントを処理します。
func (h *FormsHandler) SavePostExperience(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req dto.SavePostExperienceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	record, err := h.forms.SavePostExperience(c.Request.Context(), id.UserID, id.Email, req.Date, req.JournalEntry.PostExperience)
	if err != nil {
		respondError(c, "save post experience", err)
		return
	}
	c.JSON(http.StatusCreated, api.SavedResponse{Message: "Journal entry saved successfully!", Data: record})
}

// SaveAudio は音声テキストの要約保存APIエンドポイントを処理します。
// 要約APIが失敗してもレコードは保存され、201が返ります。
func (h *FormsHandler) SaveAudio(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req dto.SaveAudioReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	record, err := h.forms.SaveAudio(c.Request.Context(), id.UserID, id.Email, req.Date, req.PostExperience)
	if err != nil {
		respondError(c, "save audio", err)
		return
	}
	c.JSON(http.StatusCreated, api.SavedResponse{Message: "Audio entry saved successfully!", Data: record})
}

// Package handler はprofileフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"wellness_backend/internal/api"
	"wellness_backend/internal/feature/profile/transport/http/dto"
	"wellness_backend/internal/feature/profile/usecase"
)

// ProfileUsecase はプロフィール集約のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type ProfileUsecase interface {
	// GetProfile は指定メールアドレスの集約プロフィールを返します。
	GetProfile(ctx context.Context, email string) (*usecase.Profile, error)
}

// ProfileHandler はプロフィール取得のHTTPリクエストを処理します。
type ProfileHandler struct {
	profile ProfileUsecase
}

// NewProfileHandler はProfileHandlerの新しいインスタンスを生成します。
func NewProfileHandler(profile ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{profile: profile}
}

// GetProfile はプロフィール取得APIエンドポイントを処理します。
// - メールアドレス未指定時は400を返却
// - ユーザー不在時は404を返却
// - 成功時は集約バンドル付きで200を返却
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	var req dto.ProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	profile, err := h.profile.GetProfile(c.Request.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmailRequired):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "email is required"})
		case errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "user not found"})
		default:
			slog.Error("profile fetch failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, api.SavedResponse{Message: "Profile data fetched successfully", Data: profile})
}

package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authhandler "wellness_backend/internal/feature/auth/transport/handler"
	formshandler "wellness_backend/internal/feature/forms/transport/handler"
	profilehandler "wellness_backend/internal/feature/profile/transport/handler"
	jwtmw "wellness_backend/internal/platform/jwt"
)

// Health は導通確認用のハンドラーです。
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// NewRouter は全ルートを登録したGinエンジンを生成します。
// 認証ポリシーはこのファイルで一元管理します。公開グループと保護グループの
// どちらに属するかがそのまま各ルートのポリシーです。
func NewRouter(authHandler *authhandler.AuthHandler, forms *formshandler.FormsHandler,
	profile *profilehandler.ProfileHandler, resolve jwtmw.IdentityResolver) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/healthz", Health)
	// 新規ユーザー登録
	r.POST("/auth/register", authHandler.Register)
	// ログイン（JWT 発行）
	r.POST("/auth/login", authHandler.Login)
	// リフレッシュトークンによる再発行
	r.POST("/auth/refresh", authHandler.Refresh)

	// 認証必須のルート
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに Bearer JWT が必要になる
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired(resolve))
	{
		auth.GET("/auth/me", authHandler.Me)
		auth.POST("/auth/logout", authHandler.Logout)

		auth.POST("/api/save-answers", forms.SaveAnswers)
		auth.POST("/api/journal", forms.SaveJournal)
		auth.POST("/api/save-muscles", forms.SaveMuscles)
		// ストーリー回答も他のフォームと同様に認証必須
		auth.POST("/api/story-answers", forms.SaveStory)
		auth.POST("/api/savePostExperience", forms.SavePostExperience)
		auth.POST("/api/saveAudio", forms.SaveAudio)

		auth.POST("/api/profile", profile.GetProfile)
	}

	return r
}

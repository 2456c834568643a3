package main

import (
	"context"
	"errors"
	"log"
	"os"

	redisv9 "github.com/redis/go-redis/v9"

	"wellness_backend/internal/app/router"
	authadapters "wellness_backend/internal/feature/auth/adapters"
	authhandler "wellness_backend/internal/feature/auth/transport/handler"
	authusecase "wellness_backend/internal/feature/auth/usecase"
	formsadapters "wellness_backend/internal/feature/forms/adapters"
	formshandler "wellness_backend/internal/feature/forms/transport/handler"
	formsusecase "wellness_backend/internal/feature/forms/usecase"
	profileadapters "wellness_backend/internal/feature/profile/adapters"
	profilehandler "wellness_backend/internal/feature/profile/transport/handler"
	profileusecase "wellness_backend/internal/feature/profile/usecase"
	"wellness_backend/internal/feature/summarize/adapters/gemini"
	summarizeusecase "wellness_backend/internal/feature/summarize/usecase"
	"wellness_backend/internal/platform/cache"
	platformdb "wellness_backend/internal/platform/db"
	jwtmw "wellness_backend/internal/platform/jwt"
	platformredis "wellness_backend/internal/platform/redis"
)

func main() {
	ctx := context.Background()

	// db
	db := platformdb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache and refresh sessions.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserGorm(db)
	recordRepo := formsadapters.NewRecordRepository(db)
	profileRepo := profileadapters.NewProfileRepository(db)

	var sessionRepo authusecase.SessionRepository
	if rdb != nil {
		sessionRepo = authadapters.NewSessionRedis(rdb, "session")
	}

	// プロフィールキャッシュ（Redis未接続時は素通し）
	profileCache := cache.NewProfileCache(rdb, 0, "profile")

	// 要約クライアント（初期化失敗時は劣化モードで継続）
	var summarizer formsusecase.Summarizer
	if gen, err := gemini.NewGeminiSummarizer(ctx); err != nil {
		log.Println("[WARN] Gemini unavailable. Audio summaries will be degraded:", err)
	} else {
		summarizer = summarizeusecase.NewSummarizeUsecase(gen)
	}

	// Usecase
	jwtGen := jwtmw.NewGenerator(os.Getenv(jwtmw.EnvKeyJWTSecret), jwtmw.DefaultExpiration)
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo, jwtGen)
	formsUC := formsusecase.NewFormsUsecase(recordRepo, summarizer, profileCache)
	profileUC := profileusecase.NewProfileUsecase(profileRepo, profileCache)

	// 認証ミドルウェアの本人確認
	resolve := func(ctx context.Context, userID uint) (jwtmw.Identity, bool, error) {
		user, err := authUC.GetUser(ctx, userID)
		if err != nil {
			if errors.Is(err, authusecase.ErrUserNotFound) {
				return jwtmw.Identity{}, false, nil
			}
			return jwtmw.Identity{}, false, err
		}
		return jwtmw.Identity{UserID: user.ID, Email: user.Email, Name: user.Name}, true, nil
	}

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	formsH := formshandler.NewFormsHandler(formsUC)
	profileH := profilehandler.NewProfileHandler(profileUC)

	// ルータ生成
	r := router.NewRouter(authH, formsH, profileH, resolve)

	// JWT_SECRETチェック（開発中の注意喚起）
	if os.Getenv(jwtmw.EnvKeyJWTSecret) == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}

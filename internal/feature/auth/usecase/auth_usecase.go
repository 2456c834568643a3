package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"wellness_backend/internal/feature/auth/domain/entity"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8

	// sessionTTL はリフレッシュセッションの有効期間です。
	sessionTTL = 30 * 24 * time.Hour

	// maxSessionsPerUser はユーザーごとの同時セッション数の上限です。
	// 超過した場合は最も古いセッションを削除します。
	maxSessionsPerUser = 5
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// JWTGenerator はJWTトークン生成のインターフェースを定義します。
type JWTGenerator interface {
	// GenerateToken は指定されたユーザーの署名済みJWTトークンを生成します。
	GenerateToken(userID uint, email string) (string, error)
}

// SessionRepository はリフレッシュセッションの永続化層を抽象化します。
type SessionRepository interface {
	// Create は新しいセッションをストレージに永続化します。
	Create(ctx context.Context, session *entity.Session) error

	// FindByID はID（リフレッシュトークン値）でセッションを取得します。
	FindByID(ctx context.Context, id string) (*entity.Session, error)

	// Revoke はセッションを失効済みとしてマークします。
	Revoke(ctx context.Context, id string) error

	// CountByUserID はユーザーの有効セッション数を返します。
	CountByUserID(ctx context.Context, userID uint) (int64, error)

	// DeleteOldestByUserID はユーザーの最も古いセッションを削除します。
	DeleteOldestByUserID(ctx context.Context, userID uint) error
}

// ClientMeta はセッションに記録するクライアント情報です。
type ClientMeta struct {
	UserAgent string
	IPAddress string
}

// AuthResult は登録・ログイン・リフレッシュ成功時の結果です。
type AuthResult struct {
	Token        string
	RefreshToken string
	User         *entity.User
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users        UserRepository
	sessions     SessionRepository
	jwtGenerator JWTGenerator
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, sessions SessionRepository, jwtGenerator JWTGenerator) *authUsecase {
	return &authUsecase{
		users:        users,
		sessions:     sessions,
		jwtGenerator: jwtGenerator,
	}
}

// NormalizeEmail はメールアドレスを小文字化・トリムして比較可能な形に揃えます。
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validatePassword はパスワードがセキュリティ要件を満たしているかチェックします。
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	return nil
}

// Register はハッシュ化されたパスワードで新規ユーザーを登録し、トークンを発行します。
// メールアドレスが既に存在する場合はErrEmailAlreadyExistsを返します。
func (u *authUsecase) Register(ctx context.Context, email, password, name string, meta ClientMeta) (*AuthResult, error) {
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Email:    NormalizeEmail(email),
		Password: string(hashed),
		Name:     strings.TrimSpace(name),
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return u.issueTokens(ctx, user, meta)
}

// Login はユーザーを認証し、成功時にトークンを返します。
// メールアドレス未登録とパスワード不一致は同一のエラーを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, email, password string, meta ClientMeta) (*AuthResult, error) {
	user, err := u.users.FindByEmail(ctx, NormalizeEmail(email))

	// ユーザーが存在しない場合のタイミング攻撃緩和用ダミーハッシュ
	// bcrypt.CompareHashAndPasswordが常に呼ばれることを保証する
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy" // ダミーハッシュ
	if err == nil {
		passwordHash = user.Password
	}

	// タイミング攻撃防止のため、常にパスワードを検証
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	// ユーザー未検出またはパスワード不一致の場合、汎用エラーを返す
	if err != nil || compareErr != nil {
		return nil, ErrInvalidCredentials
	}

	return u.issueTokens(ctx, user, meta)
}

// GetUser はIDでユーザーを取得します。認証ミドルウェアの本人確認に使用します。
func (u *authUsecase) GetUser(ctx context.Context, userID uint) (*entity.User, error) {
	return u.users.FindByID(ctx, userID)
}

// Refresh はリフレッシュトークンを検証し、新しいトークンペアを発行します。
// 使用されたセッションは失効させ、ローテーションします。
func (u *authUsecase) Refresh(ctx context.Context, refreshToken string, meta ClientMeta) (*AuthResult, error) {
	if u.sessions == nil {
		return nil, ErrSessionNotFound
	}
	session, err := u.sessions.FindByID(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if session.IsRevoked() {
		return nil, ErrSessionRevoked
	}
	if session.IsExpired() {
		return nil, ErrSessionExpired
	}

	user, err := u.users.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	// ローテーション: 使用済みセッションは失効させる
	if err := u.sessions.Revoke(ctx, session.ID); err != nil {
		return nil, fmt.Errorf("failed to revoke session: %w", err)
	}

	return u.issueTokens(ctx, user, meta)
}

// Logout はリフレッシュセッションを失効させます。
// セッションが既に存在しない場合もエラーにしません。
func (u *authUsecase) Logout(ctx context.Context, refreshToken string) error {
	if u.sessions == nil {
		return nil
	}
	if err := u.sessions.Revoke(ctx, refreshToken); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil
		}
		return err
	}
	return nil
}

// issueTokens はアクセストークンとリフレッシュセッションを発行します。
func (u *authUsecase) issueTokens(ctx context.Context, user *entity.User, meta ClientMeta) (*AuthResult, error) {
	token, err := u.jwtGenerator.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	// セッションストアが無い構成（Redis未接続）ではアクセストークンのみ発行
	if u.sessions == nil {
		return &AuthResult{Token: token, User: user}, nil
	}

	// セッション数の上限を超える場合は最も古いものを削除
	if count, err := u.sessions.CountByUserID(ctx, user.ID); err == nil && count >= maxSessionsPerUser {
		_ = u.sessions.DeleteOldestByUserID(ctx, user.ID)
	}

	session := &entity.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		UserAgent: meta.UserAgent,
		IPAddress: meta.IPAddress,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(sessionTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &AuthResult{
		Token:        token,
		RefreshToken: session.ID,
		User:         user,
	}, nil
}

// Package api はHTTPトランスポート層で共有するレスポンスエンベロープを定義します。
package api

// ErrorResponse はエラー時のレスポンスボディを表します。
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse はメッセージのみのレスポンスボディを表します。
type MessageResponse struct {
	Message string `json:"message"`
}

// SavedResponse はレコード保存成功時のレスポンスボディを表します。
// Dataには保存されたレコードがそのまま入ります。
type SavedResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// UserSummary はパスワードハッシュを含まないユーザー情報を表します。
type UserSummary struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// AuthResponse は登録・ログイン成功時のレスポンスボディを表します。
type AuthResponse struct {
	Token        string      `json:"token"`
	RefreshToken string      `json:"refresh_token,omitempty"`
	User         UserSummary `json:"user"`
}

// TokenPairResponse はトークンリフレッシュ成功時のレスポンスボディを表します。
type TokenPairResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

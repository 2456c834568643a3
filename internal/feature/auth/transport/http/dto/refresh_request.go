package dto

// RefreshReq は/auth/refreshエンドポイントのリクエストボディを表します。
type RefreshReq struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

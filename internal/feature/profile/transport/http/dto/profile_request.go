// Package dto はプロフィール取得APIのリクエストDTOを定義します。
package dto

// ProfileReq はプロフィール取得のリクエストです。
// メールアドレスの必須チェックはユースケース側で行い、
// 空ボディでも400が返るようbindingは付けません。
type ProfileReq struct {
	Email string `json:"email"`
}

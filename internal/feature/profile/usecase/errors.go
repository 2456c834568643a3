// Package usecase はプロフィール集約のビジネスロジックを実装します。
package usecase

import "errors"

var (
	// ErrEmailRequired はメールアドレスが指定されなかったことを示します。
	ErrEmailRequired = errors.New("email is required")
	// ErrUserNotFound は指定のユーザーが存在しないことを示します。
	ErrUserNotFound = errors.New("user not found")
)

// Package usecase はフォームレコード保存のビジネスロジックを実装します。
package usecase

// ValidationError は入力バリデーション失敗を表します。
// ハンドラーはこのエラーを400 Bad Requestに対応付けます。
// Messageには欠落・不正なフィールドがすべて列挙されます。
type ValidationError struct {
	Message string
}

// Error はエラーメッセージを返します。
func (e *ValidationError) Error() string {
	return e.Message
}

// newValidationError はValidationErrorを生成します。
func newValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

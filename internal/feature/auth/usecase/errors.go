// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import "errors"

// フォーム検証エラー。いずれも上流APIを呼ぶ前に確定します。
var (
	ErrUsernameRequired = errors.New("username is required")
	ErrEmailRequired    = errors.New("email is required")
	ErrFullNameRequired = errors.New("full name is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrPasswordTooShort = errors.New("password is too short")
	ErrPasswordMismatch = errors.New("password confirmation does not match")
	ErrLoginRequired    = errors.New("login id and password are required")
)

// validationMessages は検証エラーごとの表示文言です。
var validationMessages = map[error]string{
	ErrUsernameRequired: "아이디를 입력해주세요.",
	ErrEmailRequired:    "이메일을 입력해주세요.",
	ErrFullNameRequired: "이름을 입력해주세요.",
	ErrPasswordRequired: "비밀번호를 입력해주세요.",
	ErrPasswordTooShort: "비밀번호는 8자 이상이어야 합니다.",
	ErrPasswordMismatch: "비밀번호가 일치하지 않습니다.",
	ErrLoginRequired:    "아이디와 비밀번호를 입력해주세요.",
}

// ValidationMessage は検証エラーの表示文言を返します。
// 検証エラー以外には空文字列を返します。
func ValidationMessage(err error) string {
	for sentinel, msg := range validationMessages {
		if errors.Is(err, sentinel) {
			return msg
		}
	}
	return ""
}

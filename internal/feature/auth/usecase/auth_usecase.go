package usecase

import (
	"context"
	"fmt"
	"strings"

	"etf_platform/internal/platform/etfapi"
	"etf_platform/internal/platform/session"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8
)

// AuthAPI は認証に必要な上流呼び出しを抽象化します。
// Goの慣例に従い、インターフェースはプロバイダーではなくコンシューマー（usecase）が定義します。
type AuthAPI interface {
	// RegisterUser は新規ユーザーを上流に登録します。重複などの業務エラーは
	// サーバ由来メッセージ付きで返ります。
	RegisterUser(ctx context.Context, username, email, fullName, password string) error

	// Login は認証を行い、成功時にユーザー情報を返します。
	Login(ctx context.Context, usernameOrEmail, password string) (*etfapi.User, error)
}

// SessionStore はログインセッションの永続化層を抽象化します。
type SessionStore interface {
	Create(ctx context.Context, identity *session.Identity) (string, error)
	Destroy(ctx context.Context, id string) error
}

// TokenSigner はセッションIDをクッキー向けトークンへ署名します。
type TokenSigner interface {
	Sign(sessionID string) (string, error)
}

// RegisterInput は登録フォーム1回分の入力です。
type RegisterInput struct {
	Username        string
	Email           string
	FullName        string
	Password        string
	ConfirmPassword string
}

// AuthUsecase は認証ビジネスロジックを実装します。
type AuthUsecase struct {
	api      AuthAPI
	sessions SessionStore
	signer   TokenSigner
}

// NewAuthUsecase はAuthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(api AuthAPI, sessions SessionStore, signer TokenSigner) *AuthUsecase {
	return &AuthUsecase{
		api:      api,
		sessions: sessions,
		signer:   signer,
	}
}

// validateRegister は登録フォームを検証します。検証はすべてローカルで行われ、
// 失敗した場合は上流APIに一切触れません。
func validateRegister(in *RegisterInput) error {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)

	switch {
	case in.Username == "":
		return ErrUsernameRequired
	case in.Email == "":
		return ErrEmailRequired
	case in.FullName == "":
		return ErrFullNameRequired
	case in.Password == "":
		return ErrPasswordRequired
	case len(in.Password) < minPasswordLength:
		return ErrPasswordTooShort
	case in.Password != in.ConfirmPassword:
		return ErrPasswordMismatch
	}
	return nil
}

// Register は登録フォームを検証し、上流へ新規ユーザーを登録します。
// 重複ユーザーなどのサーバ由来メッセージは改変せず呼び出し元へ返します。
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) error {
	if err := validateRegister(&in); err != nil {
		return err
	}
	return u.api.RegisterUser(ctx, in.Username, in.Email, in.FullName, in.Password)
}

// Login はユーザーを認証し、セッションを作成して署名済みクッキー値を返します。
// 入力が欠けている場合はローカルで弾き、上流APIを呼びません。
func (u *AuthUsecase) Login(ctx context.Context, usernameOrEmail, password string) (string, error) {
	usernameOrEmail = strings.TrimSpace(usernameOrEmail)
	if usernameOrEmail == "" || password == "" {
		return "", ErrLoginRequired
	}

	user, err := u.api.Login(ctx, usernameOrEmail, password)
	if err != nil {
		return "", err
	}

	sid, err := u.sessions.Create(ctx, &session.Identity{
		Authenticated: true,
		UserID:        user.ID,
		Username:      user.Username,
		FullName:      user.FullName,
		Email:         user.Email,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	cookie, err := u.signer.Sign(sid)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return cookie, nil
}

// Logout はセッションを破棄します。既に存在しないセッションでもエラーにしません。
func (u *AuthUsecase) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return u.sessions.Destroy(ctx, sessionID)
}

// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"etf_platform/internal/feature/auth/usecase"
	"etf_platform/internal/platform/session"
	"etf_platform/internal/platform/token"
	"etf_platform/internal/platform/viewstate"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は登録フォームを検証し、新規ユーザーを登録します。
	Register(ctx context.Context, in usecase.RegisterInput) error
	// Login は認証とセッション作成を行い、署名済みクッキー値を返します。
	Login(ctx context.Context, usernameOrEmail, password string) (string, error)
	// Logout はセッションを破棄します。
	Logout(ctx context.Context, sessionID string) error
}

// cookieMaxAge はセッションクッキーの寿命（秒）です。ストア側のTTLと揃えます。
const cookieMaxAge = 12 * 60 * 60

// registerNotice は登録成功後にログインページへ出す案内です。
const registerNotice = "회원가입이 완료되었습니다. 로그인해주세요."

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からAuthUsecaseを注入します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// LoginPage はログイン・登録ページを描画します。
//
// GET /login
//
// ログイン済みでの再訪はホームへ戻します。
func (h *AuthHandler) LoginPage(c *gin.Context) {
	if session.Current(c) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.HTML(http.StatusOK, "login.tmpl", gin.H{
		"Identity": nil,
		"Notice":   c.Query("notice"),
	})
}

// Login はログインフォームを処理します。
//
// POST /login  (form: usernameOrEmail, password)
//
// 成功時は署名済みセッションクッキーを発行してホームへ遷移します。
// 失敗時は入力値を保ったままフォームを再描画します。サーバ由来の
// 業務メッセージ（認証失敗理由など）は改変せずそのまま表示します。
func (h *AuthHandler) Login(c *gin.Context) {
	usernameOrEmail := c.PostForm("usernameOrEmail")
	password := c.PostForm("password")

	cookie, err := h.auth.Login(c.Request.Context(), usernameOrEmail, password)
	if err != nil {
		slog.Warn("login failed", "login_id", usernameOrEmail, "remote_addr", c.ClientIP())
		c.HTML(http.StatusOK, "login.tmpl", gin.H{
			"Identity":   nil,
			"LoginID":    usernameOrEmail,
			"LoginError": displayMessage(err),
		})
		return
	}

	slog.Info("user login successful", "login_id", usernameOrEmail, "remote_addr", c.ClientIP())
	c.SetCookie(token.CookieName, cookie, cookieMaxAge, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

// Register は登録フォームを処理します。
//
// POST /register  (form: username, email, fullName, password, confirmPassword)
//
// 検証はローカルで先に行われ、失敗時は上流APIを呼びません。
func (h *AuthHandler) Register(c *gin.Context) {
	in := usecase.RegisterInput{
		Username:        c.PostForm("username"),
		Email:           c.PostForm("email"),
		FullName:        c.PostForm("fullName"),
		Password:        c.PostForm("password"),
		ConfirmPassword: c.PostForm("confirmPassword"),
	}

	if err := h.auth.Register(c.Request.Context(), in); err != nil {
		slog.Warn("signup failed", "username", in.Username, "remote_addr", c.ClientIP())
		c.HTML(http.StatusOK, "login.tmpl", gin.H{
			"Identity":      nil,
			"Register":      in,
			"RegisterError": displayMessage(err),
		})
		return
	}

	slog.Info("user signup successful", "username", in.Username, "remote_addr", c.ClientIP())
	c.Redirect(http.StatusFound, "/login?notice="+url.QueryEscape(registerNotice))
}

// Logout はセッションを破棄し、クッキーを無効化してホームへ戻します。
//
// POST /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if sid := session.CurrentID(c); sid != "" {
		if err := h.auth.Logout(c.Request.Context(), sid); err != nil {
			slog.Warn("failed to destroy session", "error", err)
		}
	}
	c.SetCookie(token.CookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

// userMessager はそのままユーザーに見せてよいメッセージを持つエラーです。
type userMessager interface {
	UserMessage() string
}

// displayMessage はエラーを表示文言へ変換します。優先順位は
// ローカル検証文言、サーバ由来メッセージ、汎用文言の順です。
func displayMessage(err error) string {
	if msg := usecase.ValidationMessage(err); msg != "" {
		return msg
	}
	var um userMessager
	if errors.As(err, &um) && um.UserMessage() != "" {
		return um.UserMessage()
	}
	return viewstate.GenericErrorMessage
}

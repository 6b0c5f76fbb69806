// Package handler はwatchlistフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"etf_platform/internal/feature/watchlist/usecase"
	"etf_platform/internal/platform/session"
	"etf_platform/internal/platform/viewstate"
)

// WatchlistUsecase は関心種目ページのユースケースインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type WatchlistUsecase interface {
	Overview(ctx context.Context, userID int64) *usecase.View
	Add(ctx context.Context, userID int64, isinCd, memo string) error
	AddPopular(ctx context.Context, userID int64, isinCd string) error
	Remove(ctx context.Context, watchlistID string, confirmed bool) error
}

// 操作結果をリダイレクト先に伝える通知文言。
const (
	noticeAdded   = "관심종목에 추가되었습니다."
	noticeRemoved = "관심종목에서 삭제되었습니다."
	noticeConfirm = "삭제하려면 확인이 필요합니다."
)

// WatchlistHandler は関心種目ページのHTTPリクエストを処理します。
// すべてのルートはログイン必須で、未ログインは案内ページへ誘導されます。
type WatchlistHandler struct {
	uc WatchlistUsecase
}

// NewWatchlistHandler はWatchlistHandlerの新しいインスタンスを生成します。
func NewWatchlistHandler(uc WatchlistUsecase) *WatchlistHandler {
	return &WatchlistHandler{uc: uc}
}

// Page は関心種目ページを描画します。
//
// GET /watchlist
//
// 未ログインの場合は2秒後にログインページへ遷移する案内ページを返します。
func (h *WatchlistHandler) Page(c *gin.Context) {
	identity := session.Current(c)
	if identity == nil {
		c.HTML(http.StatusOK, "login_required.tmpl", gin.H{
			"Identity": nil,
			"Redirect": "/login",
		})
		return
	}

	view := h.uc.Overview(c.Request.Context(), identity.UserID)

	c.HTML(http.StatusOK, "watchlist.tmpl", gin.H{
		"Identity": identity,
		"View":     view,
		"Notice":   c.Query("notice"),
		"Error":    c.Query("error"),
	})
}

// Add は関心種目を追加し、ページへリダイレクトで戻します。
//
// POST /watchlist  (form: isinCd, memo, popular)
//
// popular=1 のときは人気リスト由来の固定メモが付きます。
func (h *WatchlistHandler) Add(c *gin.Context) {
	identity := session.Current(c)
	if identity == nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	isin := c.PostForm("isinCd")
	var err error
	if c.PostForm("popular") == "1" {
		err = h.uc.AddPopular(c.Request.Context(), identity.UserID, isin)
	} else {
		err = h.uc.Add(c.Request.Context(), identity.UserID, isin, c.PostForm("memo"))
	}
	if err != nil {
		slog.Warn("failed to add watchlist entry", "isin", isin, "error", err)
		redirectError(c, err)
		return
	}
	redirectNotice(c, noticeAdded)
}

// Remove は関心種目を削除し、ページへリダイレクトで戻します。
//
// POST /watchlist/:id/remove  (form: confirmed)
//
// confirmed=1 が無い要求は削除せず、確認を促す通知だけを返します。
func (h *WatchlistHandler) Remove(c *gin.Context) {
	identity := session.Current(c)
	if identity == nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	id := c.Param("id")
	err := h.uc.Remove(c.Request.Context(), id, c.PostForm("confirmed") == "1")
	if errors.Is(err, usecase.ErrNotConfirmed) {
		c.Redirect(http.StatusFound, "/watchlist?error="+url.QueryEscape(noticeConfirm))
		return
	}
	if err != nil {
		slog.Warn("failed to remove watchlist entry", "id", id, "error", err)
		redirectError(c, err)
		return
	}
	redirectNotice(c, noticeRemoved)
}

func redirectNotice(c *gin.Context, notice string) {
	c.Redirect(http.StatusFound, "/watchlist?notice="+url.QueryEscape(notice))
}

func redirectError(c *gin.Context, err error) {
	c.Redirect(http.StatusFound, "/watchlist?error="+url.QueryEscape(userMessage(err)))
}

// userMessager はそのままユーザーに見せてよいメッセージを持つエラーです。
type userMessager interface {
	UserMessage() string
}

func userMessage(err error) string {
	var um userMessager
	if errors.As(err, &um) && um.UserMessage() != "" {
		return um.UserMessage()
	}
	if errors.Is(err, usecase.ErrEmptyIsin) {
		return "종목 코드를 입력해주세요."
	}
	return viewstate.GenericErrorMessage
}

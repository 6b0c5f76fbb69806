// Package handler はrankingsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"etf_platform/internal/feature/rankings/usecase"
	"etf_platform/internal/platform/session"
)

// prefKeyKind は最後に見たランキング種別を記憶する設定キーです。
const prefKeyKind = "rankings.kind"

// RankingsUsecase はランキングページのユースケースインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type RankingsUsecase interface {
	Load(ctx context.Context, kind usecase.Kind) *usecase.View
}

// Prefs はユーザー設定ストアを抽象化します。nilの場合は記憶機能なしで動作します。
type Prefs interface {
	GetString(ctx context.Context, userID int64, key, fallback string) string
	Set(ctx context.Context, userID int64, key string, value any) error
}

// KindButton は種別切り替えボタン1個分の表示モデルです。
type KindButton struct {
	Kind   usecase.Kind
	Label  string
	Class  string
	Active bool
}

// RankingsHandler はランキングページのHTTPリクエストを処理します。
type RankingsHandler struct {
	uc    RankingsUsecase
	prefs Prefs
}

// NewRankingsHandler はRankingsHandlerの新しいインスタンスを生成します。
func NewRankingsHandler(uc RankingsUsecase, prefs Prefs) *RankingsHandler {
	return &RankingsHandler{uc: uc, prefs: prefs}
}

// Page はランキングページを描画します。
//
// GET /rankings?type=gainers
//
// type未指定かつログイン済みの場合、最後に見た種別を設定ストアから復元します。
// typeはURLに往復するのでブックマーク・共有が可能です。
func (h *RankingsHandler) Page(c *gin.Context) {
	ctx := c.Request.Context()
	identity := session.Current(c)

	param := c.Query("type")
	if param == "" && identity != nil && h.prefs != nil {
		param = h.prefs.GetString(ctx, identity.UserID, prefKeyKind, "")
	}
	kind := usecase.ParseKind(param)

	view := h.uc.Load(ctx, kind)

	if c.Query("type") != "" && identity != nil && h.prefs != nil {
		if err := h.prefs.Set(ctx, identity.UserID, prefKeyKind, string(kind)); err != nil {
			slog.Warn("failed to save ranking kind preference", "error", err)
		}
	}

	c.HTML(http.StatusOK, "rankings.tmpl", gin.H{
		"Identity": identity,
		"View":     view,
		"Buttons":  buttons(kind),
	})
}

// buttons は5種別のボタン列を組み立てます。選択中だけactiveクラスになります。
func buttons(active usecase.Kind) []KindButton {
	out := make([]KindButton, 0, len(usecase.Kinds))
	for _, k := range usecase.Kinds {
		class := k.OutlineClass()
		if k == active {
			class = k.ActiveClass()
		}
		out = append(out, KindButton{
			Kind:   k,
			Label:  k.Label(),
			Class:  class,
			Active: k == active,
		})
	}
	return out
}

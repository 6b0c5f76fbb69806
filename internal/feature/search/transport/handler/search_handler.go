// Package handler はsearchフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"etf_platform/internal/feature/search/usecase"
	"etf_platform/internal/platform/session"
	"etf_platform/internal/platform/viewstate"
)

// SearchUsecase は検索ページのユースケースインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type SearchUsecase interface {
	Search(ctx context.Context, keyword string) (*usecase.View, error)
}

// SearchHandler は検索ページのHTTPリクエストを処理します。
type SearchHandler struct {
	uc SearchUsecase
}

// NewSearchHandler はSearchHandlerの新しいインスタンスを生成します。
func NewSearchHandler(uc SearchUsecase) *SearchHandler {
	return &SearchHandler{uc: uc}
}

// Page は検索ページを描画します。
//
// GET /search?keyword=반도체
//
// keywordはURLに往復するのでブックマーク・共有・リロードで同じ結果になります。
// keyword未指定（または空白のみ）の場合はおすすめ表示の初期ページになります。
func (h *SearchHandler) Page(c *gin.Context) {
	keyword := c.Query("keyword")

	view, err := h.uc.Search(c.Request.Context(), keyword)
	if errors.Is(err, usecase.ErrEmptyKeyword) {
		c.HTML(http.StatusOK, "search.tmpl", gin.H{
			"Identity": session.Current(c),
			"Keyword":  "",
			"Initial":  true,
		})
		return
	}

	ctrl := viewstate.New()
	// 分類は実際に描画できる件数で行います。サーバー報告のCountは
	// 件数ラベル専用で、データ本体と食い違うことがあります。
	count := 0
	if err == nil {
		count = len(view.Cards)
	}
	state, message := ctrl.Classify(count, err)

	c.HTML(http.StatusOK, "search.tmpl", gin.H{
		"Identity": session.Current(c),
		"Keyword":  keyword,
		"Initial":  false,
		"View":     view,
		"State":    state,
		"Message":  message,
		"Regions":  ctrl.Regions(),
	})
}

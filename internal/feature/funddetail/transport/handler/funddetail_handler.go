// Package handler はfunddetailフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"etf_platform/internal/feature/funddetail/usecase"
	"etf_platform/internal/platform/session"
)

// FundDetailUsecase は銘柄詳細ページのユースケースインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type FundDetailUsecase interface {
	Load(ctx context.Context, isin string) *usecase.View
}

// FundDetailHandler は銘柄詳細ページのHTTPリクエストを処理します。
type FundDetailHandler struct {
	uc FundDetailUsecase
}

// NewFundDetailHandler はFundDetailHandlerの新しいインスタンスを生成します。
func NewFundDetailHandler(uc FundDetailUsecase) *FundDetailHandler {
	return &FundDetailHandler{uc: uc}
}

// Page は銘柄詳細ページを描画します。
//
// GET /etf/:isin
//
// isinはリンク生成時にエスケープされているため、ここで復号してから使います。
func (h *FundDetailHandler) Page(c *gin.Context) {
	isin := c.Param("isin")
	if decoded, err := url.PathUnescape(isin); err == nil {
		isin = decoded
	}

	view := h.uc.Load(c.Request.Context(), isin)

	c.HTML(http.StatusOK, "fund_detail.tmpl", gin.H{
		"Identity": session.Current(c),
		"View":     view,
	})
}

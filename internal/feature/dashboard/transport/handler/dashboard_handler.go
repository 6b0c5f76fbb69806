// Package handler はdashboardフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"etf_platform/internal/feature/dashboard/usecase"
	"etf_platform/internal/platform/session"
)

// DashboardUsecase はダッシュボードページのユースケースインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type DashboardUsecase interface {
	Load(ctx context.Context) *usecase.View
	Chart(ctx context.Context) ([]byte, error)
}

// DashboardHandler はダッシュボードページのHTTPリクエストを処理します。
type DashboardHandler struct {
	uc DashboardUsecase
}

// NewDashboardHandler はDashboardHandlerの新しいインスタンスを生成します。
func NewDashboardHandler(uc DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Page はダッシュボード（ホーム）ページを描画します。
//
// GET /
func (h *DashboardHandler) Page(c *gin.Context) {
	view := h.uc.Load(c.Request.Context())
	c.HTML(http.StatusOK, "dashboard.tmpl", gin.H{
		"Identity": session.Current(c),
		"View":     view,
	})
}

// Chart は騰落分布の棒グラフPNGを返します。
//
// GET /dashboard/chart.png
//
// 統計が取得できない場合はプレースホルダーを返す代わりに404で応答し、
// ページ側のonerrorで画像領域ごと非表示にします。
func (h *DashboardHandler) Chart(c *gin.Context) {
	png, err := h.uc.Chart(c.Request.Context())
	if err != nil {
		if errors.Is(err, usecase.ErrNoStats) {
			c.Status(http.StatusNotFound)
			return
		}
		slog.Warn("failed to render dashboard chart", "error", err)
		c.Status(http.StatusBadGateway)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

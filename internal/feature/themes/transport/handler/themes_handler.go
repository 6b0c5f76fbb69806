// Package handler はthemesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"etf_platform/internal/feature/themes/usecase"
	"etf_platform/internal/platform/session"
)

// テーマ詳細の絞り込み・並べ替え条件を記憶する設定キーです。
const (
	prefKeyFilter = "themes.filter"
	prefKeySort   = "themes.sort"
)

// ThemesUsecase はテーマ画面のユースケースインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type ThemesUsecase interface {
	List(ctx context.Context) *usecase.ListView
	Detail(ctx context.Context, theme string, filter usecase.Filter, sort usecase.Sort) *usecase.DetailView
}

// Prefs はユーザー設定ストアを抽象化します。nilの場合は記憶機能なしで動作します。
type Prefs interface {
	GetString(ctx context.Context, userID int64, key, fallback string) string
	Set(ctx context.Context, userID int64, key string, value any) error
}

// FilterOption は絞り込み・並べ替えボタン1個分の表示モデルです。
type FilterOption struct {
	Value  string
	Label  string
	Active bool
	Href   string
}

// ThemesHandler はテーマ画面のHTTPリクエストを処理します。
type ThemesHandler struct {
	uc    ThemesUsecase
	prefs Prefs
}

// NewThemesHandler はThemesHandlerの新しいインスタンスを生成します。
func NewThemesHandler(uc ThemesUsecase, prefs Prefs) *ThemesHandler {
	return &ThemesHandler{uc: uc, prefs: prefs}
}

// ListPage はテーマ一覧ページを描画します。
//
// GET /themes
func (h *ThemesHandler) ListPage(c *gin.Context) {
	view := h.uc.List(c.Request.Context())
	c.HTML(http.StatusOK, "themes.tmpl", gin.H{
		"Identity": session.Current(c),
		"View":     view,
	})
}

// DetailPage はテーマ詳細ページを描画します。
//
// GET /themes/:name?filter=rising&sort=change
//
// filterとsortは未知の値を既定値へフォールバックし、URLに往復します。
// 未指定かつログイン済みの場合、前回の条件を設定ストアから復元します。
func (h *ThemesHandler) DetailPage(c *gin.Context) {
	ctx := c.Request.Context()
	identity := session.Current(c)

	theme := c.Param("name")
	if decoded, err := url.PathUnescape(theme); err == nil {
		theme = decoded
	}

	filterParam := c.Query("filter")
	sortParam := c.Query("sort")
	if identity != nil && h.prefs != nil {
		if filterParam == "" {
			filterParam = h.prefs.GetString(ctx, identity.UserID, prefKeyFilter, "")
		}
		if sortParam == "" {
			sortParam = h.prefs.GetString(ctx, identity.UserID, prefKeySort, "")
		}
	}
	filter := usecase.ParseFilter(filterParam)
	sortBy := usecase.ParseSort(sortParam)

	view := h.uc.Detail(ctx, theme, filter, sortBy)

	if identity != nil && h.prefs != nil {
		if c.Query("filter") != "" {
			if err := h.prefs.Set(ctx, identity.UserID, prefKeyFilter, string(filter)); err != nil {
				slog.Warn("failed to save theme filter preference", "error", err)
			}
		}
		if c.Query("sort") != "" {
			if err := h.prefs.Set(ctx, identity.UserID, prefKeySort, string(sortBy)); err != nil {
				slog.Warn("failed to save theme sort preference", "error", err)
			}
		}
	}

	c.HTML(http.StatusOK, "theme_detail.tmpl", gin.H{
		"Identity": identity,
		"View":     view,
		"Filters":  filterOptions(theme, filter, sortBy),
		"Sorts":    sortOptions(theme, filter, sortBy),
	})
}

var filterLabels = []struct {
	value usecase.Filter
	label string
}{
	{usecase.FilterAll, "전체"},
	{usecase.FilterRising, "상승"},
	{usecase.FilterFalling, "하락"},
	{usecase.FilterFlat, "보합"},
}

var sortLabels = []struct {
	value usecase.Sort
	label string
}{
	{usecase.SortName, "이름순"},
	{usecase.SortChange, "등락률순"},
	{usecase.SortVolume, "거래량순"},
}

func filterOptions(theme string, active usecase.Filter, sortBy usecase.Sort) []FilterOption {
	out := make([]FilterOption, 0, len(filterLabels))
	for _, fl := range filterLabels {
		out = append(out, FilterOption{
			Value:  string(fl.value),
			Label:  fl.label,
			Active: fl.value == active,
			Href:   detailHref(theme, fl.value, sortBy),
		})
	}
	return out
}

func sortOptions(theme string, filter usecase.Filter, active usecase.Sort) []FilterOption {
	out := make([]FilterOption, 0, len(sortLabels))
	for _, sl := range sortLabels {
		out = append(out, FilterOption{
			Value:  string(sl.value),
			Label:  sl.label,
			Active: sl.value == active,
			Href:   detailHref(theme, filter, sl.value),
		})
	}
	return out
}

// detailHref は現在の条件を保ったまま片方だけ変えたリンクを作ります。
func detailHref(theme string, filter usecase.Filter, sortBy usecase.Sort) string {
	q := url.Values{}
	if filter != usecase.FilterAll {
		q.Set("filter", string(filter))
	}
	if sortBy != usecase.SortName {
		q.Set("sort", string(sortBy))
	}
	href := "/themes/" + url.PathEscape(theme)
	if enc := q.Encode(); enc != "" {
		href += "?" + enc
	}
	return href
}

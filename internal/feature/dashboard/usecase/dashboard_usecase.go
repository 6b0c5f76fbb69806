// Package usecase はdashboardフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"bytes"
	"context"
	"errors"
	"net/url"

	chart "github.com/wcharczuk/go-chart/v2"

	"etf_platform/internal/platform/etfapi"
	"etf_platform/internal/platform/viewstate"
	"etf_platform/internal/shared/format"
)

// MarketAPI はダッシュボードに必要な上流呼び出しを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type MarketAPI interface {
	Dashboard(ctx context.Context) (*etfapi.DashboardSummary, error)
}

// ErrNoStats は統計が得られずチャートを描画できない場合に返されます。
var ErrNoStats = errors.New("market stats unavailable")

// StatsView は市場統計カード4枚分の表示モデルです。
type StatsView struct {
	Total   string
	Rising  string
	Falling string
	Stable  string
}

// ListItem はランキング小リストの1件分です。
type ListItem struct {
	Name         string
	Code         string
	DetailPath   string
	Primary      string
	PrimaryClass string
	Secondary    string
}

// Region はダッシュボード上のひとつの独立した表示領域です。
// 領域ごとに状態を持ち、ある領域の失敗が他の領域の表示を妨げることはありません。
type Region struct {
	State   viewstate.State
	Message string
	Regions viewstate.Regions
	Items   []ListItem
}

// View はダッシュボードページ1回分の描画スナップショットです。
type View struct {
	Stats       *StatsView
	StatsRegion Region
	Gainers     Region
	Volume      Region
}

// DashboardUsecase はダッシュボードページのユースケースです。
type DashboardUsecase struct {
	api MarketAPI
}

// NewDashboardUsecase はDashboardUsecaseの新しいインスタンスを生成します。
func NewDashboardUsecase(api MarketAPI) *DashboardUsecase {
	return &DashboardUsecase{api: api}
}

// Load はダッシュボード概要を1回取得し、3領域それぞれを独立に状態分類します。
func (u *DashboardUsecase) Load(ctx context.Context) *View {
	sum, err := u.api.Dashboard(ctx)

	view := &View{}

	statsCount := 0
	if err == nil && sum != nil && sum.MarketStats != nil {
		statsCount = 1
		view.Stats = &StatsView{
			Total:   format.Count(sum.MarketStats.TotalCount),
			Rising:  format.Count(sum.MarketStats.RisingCount),
			Falling: format.Count(sum.MarketStats.FallingCount),
			Stable:  format.Count(sum.MarketStats.StableCount),
		}
	}
	view.StatsRegion = classify(statsCount, err, nil)

	if err == nil && sum != nil {
		view.Gainers = classify(len(sum.TopGainers), nil, gainerItems(sum.TopGainers))
		view.Volume = classify(len(sum.MostTradedVolume), nil, volumeItems(sum.MostTradedVolume))
	} else {
		view.Gainers = classify(0, err, nil)
		view.Volume = classify(0, err, nil)
	}

	return view
}

// classify は1領域分の状態確定を行います。
func classify(count int, err error, items []ListItem) Region {
	ctrl := viewstate.New()
	state, message := ctrl.Classify(count, err)
	return Region{
		State:   state,
		Message: message,
		Regions: ctrl.Regions(),
		Items:   items,
	}
}

// gainerItems は騰落率上位リストを組み立てます。サーバ順のまま描画します。
func gainerItems(funds []etfapi.Fund) []ListItem {
	items := make([]ListItem, 0, len(funds))
	for _, f := range funds {
		primary := format.Percent(f.FltRt)
		if f.FltRt != nil && *f.FltRt > 0 {
			primary = "+" + primary
		}
		items = append(items, ListItem{
			Name:         format.Text(f.ItmsNm),
			Code:         format.Text(f.SrtnCd),
			DetailPath:   "/etf/" + url.PathEscape(f.IsinCd),
			Primary:      primary,
			PrimaryClass: format.SignClass(f.FltRt),
			Secondary:    format.Won(f.ClosePrice),
		})
	}
	return items
}

// volumeItems は取引量上位リストを組み立てます。サーバ順のまま描画します。
func volumeItems(funds []etfapi.Fund) []ListItem {
	items := make([]ListItem, 0, len(funds))
	for _, f := range funds {
		items = append(items, ListItem{
			Name:       format.Text(f.ItmsNm),
			Code:       format.Text(f.SrtnCd),
			DetailPath: "/etf/" + url.PathEscape(f.IsinCd),
			Primary:    format.Int(f.TradeVolume),
			Secondary:  "주",
		})
	}
	return items
}

// Chart は上昇/下落/保合の分布を棒グラフPNGとして描画します。
func (u *DashboardUsecase) Chart(ctx context.Context) ([]byte, error) {
	sum, err := u.api.Dashboard(ctx)
	if err != nil {
		return nil, err
	}
	stats := sum.MarketStats
	if stats == nil || stats.TotalCount == 0 {
		return nil, ErrNoStats
	}

	graph := chart.BarChart{
		Title:    "등락 분포",
		Width:    640,
		Height:   320,
		BarWidth: 80,
		Bars: []chart.Value{
			{Value: float64(stats.RisingCount), Label: "상승"},
			{Value: float64(stats.FallingCount), Label: "하락"},
			{Value: float64(stats.StableCount), Label: "보합"},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

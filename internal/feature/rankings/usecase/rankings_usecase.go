// Package usecase はrankingsフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"net/url"

	"etf_platform/internal/platform/etfapi"
	"etf_platform/internal/platform/viewstate"
	"etf_platform/internal/shared/format"
)

// MarketAPI はランキング取得に必要な上流呼び出しを抽象化します。
// Goの慣例に従い、インターフェースはプロバイダーではなくコンシューマー（usecase）が定義します。
type MarketAPI interface {
	Rankings(ctx context.Context, kind string) (*etfapi.RankingResult, error)
}

// Row はランキング表の1行分の表示モデルです。すべて整形済み文字列で、
// テンプレートは値をそのまま流し込むだけです。
type Row struct {
	Rank          int
	RankClass     string
	Name          string
	Code          string
	IndexName     string
	Price         string
	Value         string
	ValueClass    string
	Nav           string
	Category      string
	CategoryClass string
	DetailPath    string
}

// View はランキングページ1回分の描画スナップショットです。
type View struct {
	Kind        Kind
	Title       string
	Count       int
	CountLabel  string
	ValueHeader string
	Rows        []Row
	State       viewstate.State
	Message     string
	Regions     viewstate.Regions
}

// RankingsUsecase はランキングページのユースケースです。
type RankingsUsecase struct {
	api MarketAPI
}

// NewRankingsUsecase はRankingsUsecaseの新しいインスタンスを生成します。
func NewRankingsUsecase(api MarketAPI) *RankingsUsecase {
	return &RankingsUsecase{api: api}
}

// Load は指定種別のランキングを取得し、状態分類済みのビューを返します。
// 行の並びはサーバが返した順のままで、こちらでは並べ替えません。
func (u *RankingsUsecase) Load(ctx context.Context, kind Kind) *View {
	res, err := u.api.Rankings(ctx, string(kind))

	view := &View{
		Kind:        kind,
		Title:       kind.DefaultTitle(),
		ValueHeader: kind.ValueHeader(),
	}

	count := 0
	if err == nil && res != nil {
		count = len(res.Data)
		if res.Title != "" {
			view.Title = res.Title
		}
		view.Count = res.Count
		view.CountLabel = format.Count(res.Count) + "개"
		view.Rows = buildRows(res.Data, kind)
	}

	ctrl := viewstate.New()
	view.State, view.Message = ctrl.Classify(count, err)
	view.Regions = ctrl.Regions()
	return view
}

// buildRows はサーバ順を保ったまま表示行を組み立てます。
func buildRows(funds []etfapi.Fund, kind Kind) []Row {
	rows := make([]Row, 0, len(funds))
	for i, f := range funds {
		rankClass := "bg-secondary"
		if i < 3 {
			rankClass = "bg-warning"
		}
		value, valueClass := kind.Value(f)
		rows = append(rows, Row{
			Rank:          i + 1,
			RankClass:     rankClass,
			Name:          format.Text(f.ItmsNm),
			Code:          format.Text(f.SrtnCd),
			IndexName:     f.BaseIndexName,
			Price:         format.Won(f.ClosePrice),
			Value:         value,
			ValueClass:    valueClass,
			Nav:           format.Number(f.Nav),
			Category:      categoryOrDefault(f.Category),
			CategoryClass: format.CategoryClass(f.Category),
			DetailPath:    "/etf/" + url.PathEscape(f.IsinCd),
		})
	}
	return rows
}

// categoryOrDefault は欠損カテゴリを「기타」として表示します。
func categoryOrDefault(category string) string {
	if category == "" {
		return "기타"
	}
	return category
}

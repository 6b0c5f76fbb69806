// Package usecase はfunddetailフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"net/url"

	"etf_platform/internal/platform/etfapi"
	"etf_platform/internal/platform/viewstate"
	"etf_platform/internal/shared/format"
)

// MarketAPI は銘柄詳細に必要な上流呼び出しを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type MarketAPI interface {
	FundDetail(ctx context.Context, isin string) (*etfapi.Fund, error)
}

// MissingPriceWarning は終値が欠損または0以下のときに出す注意書きです。
const MissingPriceWarning = "가격 정보가 아직 제공되지 않는 종목입니다."

// Field はラベル付き表示値1個分です。
type Field struct {
	Label string
	Value string
	Class string
}

// RelatedLink は関連ETFを探すための検索リンクです。
type RelatedLink struct {
	Label string
	Href  string
}

// View は銘柄詳細ページ1回分の描画スナップショットです。
type View struct {
	Isin           string
	Name           string
	Code           string
	Category       string
	CategoryClass  string
	Direction      string
	DirectionClass string

	Price      string
	PriceClass string
	Rate       string
	RateClass  string
	Vs         string
	VsClass    string

	// Warning は終値を表示できない場合の注意書きです。空なら正常です。
	Warning string

	Basic   []Field
	Trade   []Field
	Related []RelatedLink

	State   viewstate.State
	Message string
	Regions viewstate.Regions
}

// FundDetailUsecase は銘柄詳細のユースケースです。
type FundDetailUsecase struct {
	api MarketAPI
}

// NewFundDetailUsecase はFundDetailUsecaseの新しいインスタンスを生成します。
func NewFundDetailUsecase(api MarketAPI) *FundDetailUsecase {
	return &FundDetailUsecase{api: api}
}

// Load は1銘柄の詳細を取得してパネル群を組み立てます。
func (u *FundDetailUsecase) Load(ctx context.Context, isin string) *View {
	f, err := u.api.FundDetail(ctx, isin)

	view := &View{Isin: isin}
	count := 0
	if err == nil && f != nil {
		count = 1
		build(view, f)
	}

	ctrl := viewstate.New()
	view.State, view.Message = ctrl.Classify(count, err)
	view.Regions = ctrl.Regions()
	return view
}

func build(view *View, f *etfapi.Fund) {
	direction := format.Direction(f.PriceDirection)

	view.Isin = f.IsinCd
	view.Name = format.Text(f.ItmsNm)
	view.Code = format.Text(f.SrtnCd)
	view.Category = categoryOrDefault(f.Category)
	view.CategoryClass = format.CategoryClass(f.Category)
	view.Direction = direction
	view.DirectionClass = format.DirectionClass(direction)

	view.Price = format.Won(f.ClosePrice)
	view.PriceClass = format.SignClass(f.FltRt)
	view.Rate = format.Percent(f.FltRt)
	view.RateClass = format.SignClass(f.FltRt)
	view.Vs = format.Number(f.Vs)
	view.VsClass = format.SignClass(f.Vs)

	if f.ClosePrice == nil || *f.ClosePrice <= 0 {
		view.Warning = MissingPriceWarning
	}

	view.Basic = []Field{
		{Label: "기초지수", Value: format.Text(f.BaseIndexName)},
		{Label: "기초지수 종가", Value: format.Number(f.BaseIndexClosePrice)},
		{Label: "기준일", Value: format.Text(f.BaseDate)},
		{Label: "순자산총액", Value: format.Eokwon(f.NetAssetTotalAmt)},
		{Label: "시가총액", Value: format.Eokwon(f.MarketTotalAmt)},
		{Label: "상장주식수", Value: format.Int(f.StLstgCnt)},
	}
	view.Trade = []Field{
		{Label: "시가", Value: format.Won(f.OpenPrice)},
		{Label: "고가", Value: format.Won(f.HighPrice), Class: format.ClassUp},
		{Label: "저가", Value: format.Won(f.LowPrice), Class: format.ClassDown},
		{Label: "거래량", Value: format.Int(f.TradeVolume)},
		{Label: "거래대금", Value: format.Eokwon(f.TradePrice)},
		{Label: "NAV", Value: format.Number(f.Nav)},
	}
	view.Related = relatedLinks(f)
}

// relatedLinks はカテゴリと基礎指数名の先頭部分を検索キーワードにした
// 関連リンクを作ります。指数名は長大になりがちなので先頭10ルーンで切ります。
func relatedLinks(f *etfapi.Fund) []RelatedLink {
	var out []RelatedLink
	if f.Category != "" {
		out = append(out, RelatedLink{
			Label: f.Category + " 관련 ETF",
			Href:  "/search?keyword=" + url.QueryEscape(f.Category),
		})
	}
	if f.BaseIndexName != "" {
		prefix := truncateRunes(f.BaseIndexName, 10)
		out = append(out, RelatedLink{
			Label: prefix + " 추종 ETF",
			Href:  "/search?keyword=" + url.QueryEscape(prefix),
		})
	}
	return out
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func categoryOrDefault(category string) string {
	if category == "" {
		return "기타"
	}
	return category
}

// Package usecase はsearchフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"etf_platform/internal/platform/etfapi"
	"etf_platform/internal/shared/format"
)

// MarketAPI は検索に必要な上流呼び出しを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type MarketAPI interface {
	Search(ctx context.Context, keyword string) (*etfapi.SearchResult, error)
}

// ErrEmptyKeyword はトリム後のキーワードが空の場合に返されます。
// このとき上流APIは一切呼び出されません。
var ErrEmptyKeyword = errors.New("search keyword is empty")

// Card は検索結果カード1枚分の表示モデルです。
type Card struct {
	Name          string
	Code          string
	Category      string
	CategoryClass string
	Price         string
	Rate          string
	RateClass     string
	Volume        string
	DetailPath    string
}

// View は検索結果1回分の描画スナップショットです。
type View struct {
	Keyword    string
	Count      int
	CountLabel string
	Cards      []Card
	// HasMore は件数が閾値に達し、表示されていない結果が
	// まだ存在することを示します。
	HasMore bool
}

// SearchUsecase は検索のユースケースです。
type SearchUsecase struct {
	api MarketAPI
}

// NewSearchUsecase はSearchUsecaseの新しいインスタンスを生成します。
func NewSearchUsecase(api MarketAPI) *SearchUsecase {
	return &SearchUsecase{api: api}
}

// Search はキーワードをトリムして検索し、表示モデルを組み立てます。
// トリム後が空なら ErrEmptyKeyword を返し、ネットワークには出ません。
func (u *SearchUsecase) Search(ctx context.Context, keyword string) (*View, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, ErrEmptyKeyword
	}

	res, err := u.api.Search(ctx, keyword)
	if err != nil {
		return nil, err
	}

	cards := make([]Card, 0, len(res.Data))
	for _, f := range res.Data {
		cards = append(cards, Card{
			Name:          format.Text(f.ItmsNm),
			Code:          format.Text(f.SrtnCd),
			Category:      categoryOrDefault(f.Category),
			CategoryClass: format.CategoryClass(f.Category),
			Price:         format.Won(f.ClosePrice),
			Rate:          format.Percent(f.FltRt),
			RateClass:     format.SignClass(f.FltRt),
			Volume:        format.Int(f.TradeVolume),
			DetailPath:    "/etf/" + url.PathEscape(f.IsinCd),
		})
	}

	return &View{
		Keyword:    keyword,
		Count:      res.Count,
		CountLabel: format.Count(res.Count),
		Cards:      cards,
		HasMore:    res.Count >= etfapi.MoreResultsThreshold,
	}, nil
}

func categoryOrDefault(category string) string {
	if category == "" {
		return "기타"
	}
	return category
}

package usecase

import (
	"context"
	"net/url"
	"sort"

	"etf_platform/internal/platform/etfapi"
	"etf_platform/internal/platform/viewstate"
	"etf_platform/internal/shared/format"
)

// MarketAPI はテーマ画面に必要な上流呼び出しを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type MarketAPI interface {
	Themes(ctx context.Context) (*etfapi.ThemeList, error)
	ThemeDetail(ctx context.Context, theme string) (*etfapi.ThemeDetail, error)
}

// 一覧ページの先頭に出す主要ブランド。この順で描画します。
var featuredBrands = []string{"KODEX", "TIGER", "ACE"}

// BrandCard は主要ブランドカード1枚分の表示モデルです。
type BrandCard struct {
	Name       string
	Class      string
	CountLabel string
	DetailPath string
}

// GroupItem はカテゴリグループ内の1銘柄です。
type GroupItem struct {
	Name       string
	Code       string
	Rate       string
	RateClass  string
	DetailPath string
}

// Group はカテゴリグループ1個分の表示モデルです。
type Group struct {
	Name       string
	Class      string
	CountLabel string
	DetailPath string
	Items      []GroupItem
}

// ListView はテーマ一覧ページ1回分の描画スナップショットです。
type ListView struct {
	Brands  []BrandCard
	Groups  []Group
	State   viewstate.State
	Message string
	Regions viewstate.Regions
}

// Row はテーマ詳細テーブルの1行です。
type Row struct {
	Name           string
	Code           string
	IndexName      string
	Price          string
	Rate           string
	RateClass      string
	Volume         string
	Direction      string
	DirectionClass string
	DetailPath     string
}

// DetailView はテーマ詳細ページ1回分の描画スナップショットです。
type DetailView struct {
	Theme      string
	Filter     Filter
	Sort       Sort
	TotalCount int
	CountLabel string
	Rows       []Row
	State      viewstate.State
	Message    string
	Regions    viewstate.Regions
}

// ThemesUsecase はテーマ画面のユースケースです。
type ThemesUsecase struct {
	api MarketAPI
}

// NewThemesUsecase はThemesUsecaseの新しいインスタンスを生成します。
func NewThemesUsecase(api MarketAPI) *ThemesUsecase {
	return &ThemesUsecase{api: api}
}

// List はテーマ一覧を取得し、ブランドカードとカテゴリグループを組み立てます。
// 上流のグループはマップで順序が不定なため、グループ名の昇順で並べて
// リロードのたびに順序が変わらないようにします。
func (u *ThemesUsecase) List(ctx context.Context) *ListView {
	res, err := u.api.Themes(ctx)

	view := &ListView{}
	count := 0
	if err == nil && res != nil {
		view.Brands = brandCards(res.ThemeCounts)
		view.Groups = categoryGroups(res.CategoryGroups)
		count = len(view.Brands) + len(view.Groups)
	}

	ctrl := viewstate.New()
	view.State, view.Message = ctrl.Classify(count, err)
	view.Regions = ctrl.Regions()
	return view
}

// Detail はテーマ詳細を取得し、絞り込みと並べ替えを適用して組み立てます。
// filterとsortはURLに往復するため、リロード・共有で同じ表示が再現されます。
func (u *ThemesUsecase) Detail(ctx context.Context, theme string, filter Filter, sortBy Sort) *DetailView {
	res, err := u.api.ThemeDetail(ctx, theme)

	view := &DetailView{
		Theme:  theme,
		Filter: filter,
		Sort:   sortBy,
	}

	count := 0
	if err == nil && res != nil {
		col := NewCollection(res.Data)
		col.SetFilter(filter)
		col.SetSort(sortBy)
		items := col.Items()

		view.Theme = res.Theme
		view.TotalCount = res.Count
		view.CountLabel = format.Count(res.Count)
		view.Rows = rows(items)
		count = len(items)
	}

	ctrl := viewstate.New()
	view.State, view.Message = ctrl.Classify(count, err)
	view.Regions = ctrl.Regions()
	return view
}

// brandCards は主要ブランドを固定順で並べます。件数のないブランドはスキップします。
func brandCards(counts map[string]int) []BrandCard {
	cards := make([]BrandCard, 0, len(featuredBrands))
	for _, name := range featuredBrands {
		n, ok := counts[name]
		if !ok {
			continue
		}
		cards = append(cards, BrandCard{
			Name:       name,
			Class:      format.CategoryClass(name),
			CountLabel: format.Count(n),
			DetailPath: "/themes/" + url.PathEscape(name),
		})
	}
	return cards
}

// categoryGroups はグループ名の昇順でカテゴリ一覧を組み立てます。
func categoryGroups(groups map[string][]etfapi.Fund) []Group {
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Group, 0, len(names))
	for _, name := range names {
		funds := groups[name]
		items := make([]GroupItem, 0, len(funds))
		for _, f := range funds {
			items = append(items, GroupItem{
				Name:       format.Text(f.ItmsNm),
				Code:       format.Text(f.SrtnCd),
				Rate:       format.Percent(f.FltRt),
				RateClass:  format.SignClass(f.FltRt),
				DetailPath: "/etf/" + url.PathEscape(f.IsinCd),
			})
		}
		out = append(out, Group{
			Name:       name,
			Class:      format.CategoryClass(name),
			CountLabel: format.Count(len(funds)),
			DetailPath: "/themes/" + url.PathEscape(name),
			Items:      items,
		})
	}
	return out
}

func rows(funds []etfapi.Fund) []Row {
	out := make([]Row, 0, len(funds))
	for _, f := range funds {
		direction := format.Direction(f.PriceDirection)
		out = append(out, Row{
			Name:           format.Text(f.ItmsNm),
			Code:           format.Text(f.SrtnCd),
			IndexName:      format.Text(f.BaseIndexName),
			Price:          format.Won(f.ClosePrice),
			Rate:           format.Percent(f.FltRt),
			RateClass:      format.SignClass(f.FltRt),
			Volume:         format.Int(f.TradeVolume),
			Direction:      direction,
			DirectionClass: format.DirectionClass(direction),
			DetailPath:     "/etf/" + url.PathEscape(f.IsinCd),
		})
	}
	return out
}

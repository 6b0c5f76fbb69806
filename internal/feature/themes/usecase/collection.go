// Package usecase はthemesフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"sort"

	"etf_platform/internal/platform/etfapi"
)

// Filter はクライアント側絞り込みの種別です。
type Filter string

const (
	FilterAll     Filter = "all"
	FilterRising  Filter = "rising"
	FilterFalling Filter = "falling"
	FilterFlat    Filter = "flat"
)

// ParseFilter は未知の値をFilterAllへフォールバックします。
func ParseFilter(s string) Filter {
	switch Filter(s) {
	case FilterRising, FilterFalling, FilterFlat:
		return Filter(s)
	default:
		return FilterAll
	}
}

// Sort はクライアント側並べ替えの種別です。
type Sort string

const (
	SortName   Sort = "name"
	SortChange Sort = "change"
	SortVolume Sort = "volume"
)

// ParseSort は未知の値をSortNameへフォールバックします。
func ParseSort(s string) Sort {
	switch Sort(s) {
	case SortChange, SortVolume:
		return Sort(s)
	default:
		return SortName
	}
}

// Collection はテーマ詳細の全件をフェッチ1回分だけ保持し、
// 絞り込み・並べ替えのたびに元データから表示列を作り直します。
// 破壊的な絞り込みを重ねて母集合が痩せていくことはありません。
type Collection struct {
	source []etfapi.Fund
	filter Filter
	sort   Sort
}

// NewCollection は全件スナップショットからCollectionを生成します。
func NewCollection(funds []etfapi.Fund) *Collection {
	return &Collection{
		source: funds,
		filter: FilterAll,
		sort:   SortName,
	}
}

// SetFilter は絞り込み条件を置き換えます。
func (c *Collection) SetFilter(f Filter) {
	c.filter = f
}

// SetSort は並べ替え条件を置き換えます。
func (c *Collection) SetSort(s Sort) {
	c.sort = s
}

// Items は現在の条件を元データへ適用した結果を返します。
// 呼び出しごとに元データから計算し直すため、条件の変更順序に結果は依存しません。
func (c *Collection) Items() []etfapi.Fund {
	out := make([]etfapi.Fund, 0, len(c.source))
	for _, f := range c.source {
		if c.match(f) {
			out = append(out, f)
		}
	}
	c.order(out)
	return out
}

// match は方向ラベルで絞り込みます。欠損した方向は보합として扱います。
func (c *Collection) match(f etfapi.Fund) bool {
	switch c.filter {
	case FilterRising:
		return f.PriceDirection == etfapi.DirectionUp
	case FilterFalling:
		return f.PriceDirection == etfapi.DirectionDown
	case FilterFlat:
		return f.PriceDirection == etfapi.DirectionFlat || f.PriceDirection == ""
	default:
		return true
	}
}

// order は現在の並べ替え条件を適用します。欠損数値は0として比較します。
// 同値の並びは元の順序を保ちます。
func (c *Collection) order(funds []etfapi.Fund) {
	switch c.sort {
	case SortChange:
		sort.SliceStable(funds, func(i, j int) bool {
			return deref(funds[i].FltRt) > deref(funds[j].FltRt)
		})
	case SortVolume:
		sort.SliceStable(funds, func(i, j int) bool {
			return derefInt(funds[i].TradeVolume) > derefInt(funds[j].TradeVolume)
		})
	default:
		sort.SliceStable(funds, func(i, j int) bool {
			return funds[i].ItmsNm < funds[j].ItmsNm
		})
	}
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func derefInt(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

// Package format はETF表示値の整形ルールを提供します。
// 欠損値は常にプレースホルダ「-」になり、0やNaNとして描画されることはありません。
package format

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"etf_platform/internal/platform/etfapi"
)

// Placeholder は欠損フィールドの表示トークンです。
const Placeholder = "-"

// EokwonUnit は金額集計値を億원単位へ変換する除数です。
const EokwonUnit = 100_000_000

var printer = message.NewPrinter(language.Korean)

// Number は桁区切り付きで数値を整形します。nil は Placeholder になります。
func Number(v *float64) string {
	if v == nil {
		return Placeholder
	}
	return printer.Sprint(number.Decimal(*v, number.MaxFractionDigits(3)))
}

// Int は整数値を桁区切り付きで整形します。nil は Placeholder になります。
func Int(v *int64) string {
	if v == nil {
		return Placeholder
	}
	return printer.Sprint(number.Decimal(*v))
}

// Count は常に存在する件数値を桁区切り付きで整形します。
func Count(v int) string {
	return printer.Sprint(number.Decimal(v))
}

// Won は価格を「1,234원」形式で整形します。nil は Placeholder になります。
func Won(v *float64) string {
	if v == nil {
		return Placeholder
	}
	return Number(v) + "원"
}

// Eokwon は원単位の金額集計値を億원単位へ割ってから整形します。
// 床関数は適用しません（100,000,000での素の除算）。nil は Placeholder になります。
func Eokwon(v *float64) string {
	if v == nil {
		return Placeholder
	}
	scaled := *v / EokwonUnit
	return printer.Sprint(number.Decimal(scaled, number.MaxFractionDigits(3))) + "억원"
}

// Percent は騰落率を「1.23%」形式で整形します。nil は Placeholder になります。
func Percent(v *float64) string {
	if v == nil {
		return Placeholder
	}
	return strconv.FormatFloat(*v, 'f', 2, 64) + "%"
}

// 騰落率・前日比の符号に対応する表示クラス。
const (
	ClassUp      = "price-up"
	ClassDown    = "price-down"
	ClassNeutral = "price-neutral"
)

// SignClass は厳密な符号比較で表示クラスを決めます。
// 正→ClassUp、負→ClassDown、0または欠損→ClassNeutral の3値で網羅的です。
func SignClass(v *float64) string {
	switch {
	case v == nil:
		return ClassNeutral
	case *v > 0:
		return ClassUp
	case *v < 0:
		return ClassDown
	default:
		return ClassNeutral
	}
}

// categoryClasses は既知カテゴリのバッジ色です。未知のカテゴリはすべて
// defaultCategoryClass にフォールバックします。
var categoryClasses = map[string]string{
	"KODEX":  "bg-success",
	"TIGER":  "bg-warning",
	"반도체": "bg-info",
	"SOL":    "bg-primary",
	"ACE":    "bg-dark",
	"바이오": "bg-success",
}

const defaultCategoryClass = "bg-secondary"

// CategoryClass はカテゴリ名をバッジ色クラスへ写像します。
func CategoryClass(category string) string {
	if c, ok := categoryClasses[category]; ok {
		return c
	}
	return defaultCategoryClass
}

// directionClasses は方向ラベルのバッジ色です。
var directionClasses = map[string]string{
	etfapi.DirectionUp:   "bg-danger",
	etfapi.DirectionDown: "bg-primary",
	etfapi.DirectionFlat: "bg-secondary",
}

// DirectionClass は方向ラベル（상승/하락/보합）をバッジ色クラスへ写像します。
func DirectionClass(direction string) string {
	if c, ok := directionClasses[direction]; ok {
		return c
	}
	return directionClasses[etfapi.DirectionFlat]
}

// Text は空文字列をプレースホルダに置き換えます。
func Text(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}

// Direction は方向ラベルの表示名を返します。欠損は보합扱いです。
func Direction(s string) string {
	if s == "" {
		return etfapi.DirectionFlat
	}
	return s
}

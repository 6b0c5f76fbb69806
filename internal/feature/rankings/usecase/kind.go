package usecase

import (
	"etf_platform/internal/platform/etfapi"
	"etf_platform/internal/shared/format"
)

// Kind はランキング種別です。上流APIの type パラメータ値と一致します。
type Kind string

const (
	KindGainers Kind = "gainers" // 騰落率上位
	KindLosers  Kind = "losers"  // 騰落率下位
	KindVolume  Kind = "volume"  // 取引量上位
	KindAmount  Kind = "amount"  // 取引代金上位
	KindAsset   Kind = "asset"   // 純資産総額上位
)

// Kinds は表示順のランキング種別一覧です。
var Kinds = []Kind{KindGainers, KindLosers, KindVolume, KindAmount, KindAsset}

// ParseKind は未知の値をデフォルト種別(gainers)に丸めます。
func ParseKind(s string) Kind {
	switch Kind(s) {
	case KindGainers, KindLosers, KindVolume, KindAmount, KindAsset:
		return Kind(s)
	default:
		return KindGainers
	}
}

// kindInfo は種別ごとの表示属性です。クラスの付け替えは文字列置換ではなく
// この表引きで宣言的に行います。
type kindInfo struct {
	label        string
	valueHeader  string
	activeClass  string
	outlineClass string
	defaultTitle string
}

var kindInfos = map[Kind]kindInfo{
	KindGainers: {"등락률 상위", "등락률", "btn-danger", "btn-outline-danger", "등락률 상위 ETF"},
	KindLosers:  {"등락률 하위", "등락률", "btn-primary", "btn-outline-primary", "등락률 하위 ETF"},
	KindVolume:  {"거래량 상위", "거래량", "btn-success", "btn-outline-success", "거래량 상위 ETF"},
	KindAmount:  {"거래대금 상위", "거래대금", "btn-warning", "btn-outline-warning", "거래대금 상위 ETF"},
	KindAsset:   {"순자산 상위", "순자산총액", "btn-info", "btn-outline-info", "순자산총액 상위 ETF"},
}

// Label は種別選択ボタンの表示名です。
func (k Kind) Label() string { return kindInfos[k].label }

// ValueHeader は種別に応じた値カラムの見出しです。
func (k Kind) ValueHeader() string { return kindInfos[k].valueHeader }

// ActiveClass は選択中ボタンのクラスです。
func (k Kind) ActiveClass() string { return kindInfos[k].activeClass }

// OutlineClass は非選択ボタンのクラスです。
func (k Kind) OutlineClass() string { return kindInfos[k].outlineClass }

// DefaultTitle はサーバタイトルが得られない場合のフォールバックです。
func (k Kind) DefaultTitle() string { return kindInfos[k].defaultTitle }

// Value は種別に応じた値カラムの表示文字列と表示クラスを返します。
// 騰落率系のみ符号クラスが付き、それ以外はクラスなしです。
func (k Kind) Value(f etfapi.Fund) (text, class string) {
	switch k {
	case KindGainers, KindLosers:
		return format.Percent(f.FltRt), format.SignClass(f.FltRt)
	case KindVolume:
		return format.Int(f.TradeVolume), ""
	case KindAmount:
		return format.Eokwon(f.TradePrice), ""
	case KindAsset:
		return format.Eokwon(f.NetAssetTotalAmt), ""
	default:
		return format.Placeholder, ""
	}
}

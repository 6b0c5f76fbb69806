package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"etf_platform/internal/platform/etfapi"
)

func f(v float64) *float64 { return &v }
func i(v int64) *int64     { return &v }

func sampleFunds() []etfapi.Fund {
	return []etfapi.Fund{
		{ItmsNm: "다", PriceDirection: "상승", FltRt: f(1.5), TradeVolume: i(100)},
		{ItmsNm: "가", PriceDirection: "하락", FltRt: f(-2.0), TradeVolume: i(900)},
		{ItmsNm: "나", PriceDirection: "보합", FltRt: f(0), TradeVolume: i(500)},
		{ItmsNm: "라", PriceDirection: "", FltRt: nil, TradeVolume: nil},
		{ItmsNm: "마", PriceDirection: "상승", FltRt: f(3.0), TradeVolume: i(300)},
	}
}

// TestParseFilterAndSort は未知の値のフォールバックを検証します。
func TestParseFilterAndSort(t *testing.T) {
	t.Parallel()

	assert.Equal(t, FilterRising, ParseFilter("rising"))
	assert.Equal(t, FilterAll, ParseFilter(""))
	assert.Equal(t, FilterAll, ParseFilter("bogus"))

	assert.Equal(t, SortVolume, ParseSort("volume"))
	assert.Equal(t, SortName, ParseSort(""))
	assert.Equal(t, SortName, ParseSort("bogus"))
}

// TestCollection_Filter は方向ラベルでの絞り込みを検証します。
func TestCollection_Filter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		filter    Filter
		wantNames []string
	}{
		{name: "all keeps everything", filter: FilterAll, wantNames: []string{"가", "나", "다", "라", "마"}},
		{name: "rising", filter: FilterRising, wantNames: []string{"다", "마"}},
		{name: "falling", filter: FilterFalling, wantNames: []string{"가"}},
		// 欠損した方向は보합として扱う
		{name: "flat includes missing direction", filter: FilterFlat, wantNames: []string{"나", "라"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			col := NewCollection(sampleFunds())
			col.SetFilter(tt.filter)

			var names []string
			for _, f := range col.Items() {
				names = append(names, f.ItmsNm)
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

// TestCollection_Sort は並べ替え規則を検証します。欠損数値は0として比較されます。
func TestCollection_Sort(t *testing.T) {
	t.Parallel()

	t.Run("change descending with nil as zero", func(t *testing.T) {
		t.Parallel()
		col := NewCollection(sampleFunds())
		col.SetSort(SortChange)

		var names []string
		for _, f := range col.Items() {
			names = append(names, f.ItmsNm)
		}
		// 3.0, 1.5, 0, nil(0), -2.0。同値の나/라は元の相対順を保つ
		assert.Equal(t, []string{"마", "다", "나", "라", "가"}, names)
	})

	t.Run("volume descending", func(t *testing.T) {
		t.Parallel()
		col := NewCollection(sampleFunds())
		col.SetSort(SortVolume)

		var names []string
		for _, f := range col.Items() {
			names = append(names, f.ItmsNm)
		}
		assert.Equal(t, []string{"가", "나", "마", "다", "라"}, names)
	})

	t.Run("name ascending is default", func(t *testing.T) {
		t.Parallel()
		col := NewCollection(sampleFunds())

		var names []string
		for _, f := range col.Items() {
			names = append(names, f.ItmsNm)
		}
		assert.Equal(t, []string{"가", "나", "다", "라", "마"}, names)
	})
}

// TestCollection_RederivesFromSource は条件変更を重ねても母集合が
// 痩せないことを検証します。
func TestCollection_RederivesFromSource(t *testing.T) {
	t.Parallel()

	col := NewCollection(sampleFunds())

	col.SetFilter(FilterRising)
	require.Len(t, col.Items(), 2)

	col.SetFilter(FilterFalling)
	require.Len(t, col.Items(), 1)

	// 絞り込みを戻すと全件に戻る。直前の絞り込み結果からは引き継がない
	col.SetFilter(FilterAll)
	assert.Len(t, col.Items(), 5)
}

// TestCollection_FilterThenSort は絞り込みと並べ替えの併用を検証します。
func TestCollection_FilterThenSort(t *testing.T) {
	t.Parallel()

	col := NewCollection(sampleFunds())
	col.SetFilter(FilterRising)
	col.SetSort(SortChange)

	var names []string
	for _, f := range col.Items() {
		names = append(names, f.ItmsNm)
	}
	assert.Equal(t, []string{"마", "다"}, names)
}

// TestCollection_Empty は空の母集合でも安全に動くことを検証します。
func TestCollection_Empty(t *testing.T) {
	t.Parallel()

	col := NewCollection(nil)
	col.SetFilter(FilterRising)
	col.SetSort(SortVolume)
	assert.Empty(t, col.Items())
}

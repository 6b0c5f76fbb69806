package viewstate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type messagedError struct{ msg string }

func (e *messagedError) Error() string       { return "upstream rejected" }
func (e *messagedError) UserMessage() string { return e.msg }

// TestController_Resolve は件数とエラーから終端状態への分類規則を検証します。
func TestController_Resolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		count       int
		err         error
		wantState   State
		wantMessage string
	}{
		{
			name:      "results present resolves to success",
			count:     3,
			wantState: Success,
		},
		{
			name:      "zero results resolve to empty not error",
			count:     0,
			wantState: Empty,
		},
		{
			name:        "transport error uses generic message",
			count:       0,
			err:         errors.New("connection refused"),
			wantState:   Error,
			wantMessage: GenericErrorMessage,
		},
		{
			name:        "server message is shown verbatim",
			count:       0,
			err:         &messagedError{msg: "검색 결과를 불러올 수 없습니다."},
			wantState:   Error,
			wantMessage: "검색 결과를 불러올 수 없습니다.",
		},
		{
			name:      "error wins even when results exist",
			count:     5,
			err:       errors.New("decode failed"),
			wantState: Error,
			wantMessage: GenericErrorMessage,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := New()
			tok := c.Begin()
			assert.Equal(t, Loading, c.State())

			ok := c.Resolve(tok, tt.count, tt.err)
			require.True(t, ok)
			assert.Equal(t, tt.wantState, c.State())
			assert.Equal(t, tt.wantMessage, c.Message())
		})
	}
}

// TestController_StaleToken は追い越されたフェッチの確定が破棄されることを検証します。
func TestController_StaleToken(t *testing.T) {
	t.Parallel()

	c := New()
	first := c.Begin()
	second := c.Begin()

	// 先に発行されたフェッチが後から完了しても反映されない
	ok := c.Resolve(first, 10, nil)
	assert.False(t, ok)
	assert.Equal(t, Loading, c.State())

	ok = c.Resolve(second, 0, nil)
	require.True(t, ok)
	assert.Equal(t, Empty, c.State())

	// 確定後に届いた古い結果も無視される
	ok = c.Resolve(first, 10, nil)
	assert.False(t, ok)
	assert.Equal(t, Empty, c.State())
}

// TestController_Regions はどの状態でも領域がちょうど1つだけ表示されることを検証します。
func TestController_Regions(t *testing.T) {
	t.Parallel()

	exactlyOne := func(r Regions) int {
		n := 0
		for _, b := range []bool{r.Loading, r.Content, r.Empty, r.Error} {
			if b {
				n++
			}
		}
		return n
	}

	c := New()
	assert.Equal(t, 1, exactlyOne(c.Regions()))
	assert.True(t, c.Regions().Loading)

	tok := c.Begin()
	assert.True(t, c.Regions().Loading)

	require.True(t, c.Resolve(tok, 2, nil))
	assert.Equal(t, 1, exactlyOne(c.Regions()))
	assert.True(t, c.Regions().Content)

	tok = c.Begin()
	require.True(t, c.Resolve(tok, 0, nil))
	assert.True(t, c.Regions().Empty)

	tok = c.Begin()
	require.True(t, c.Resolve(tok, 0, errors.New("boom")))
	assert.True(t, c.Regions().Error)
}

// TestController_Reset はReset後に未解決のフェッチが反映されないことを検証します。
func TestController_Reset(t *testing.T) {
	t.Parallel()

	c := New()
	tok := c.Begin()
	c.Reset()

	assert.Equal(t, Idle, c.State())
	assert.False(t, c.Resolve(tok, 5, nil))
	assert.Equal(t, Idle, c.State())
}

// TestController_Reentry はエラー確定後でも再検索できることを検証します。
func TestController_Reentry(t *testing.T) {
	t.Parallel()

	c := New()
	tok := c.Begin()
	require.True(t, c.Resolve(tok, 0, errors.New("boom")))
	assert.Equal(t, Error, c.State())

	tok = c.Begin()
	assert.Equal(t, Loading, c.State())
	assert.Empty(t, c.Message())
	require.True(t, c.Resolve(tok, 1, nil))
	assert.Equal(t, Success, c.State())
}

// TestClassify は一括確定ヘルパーの分類を検証します。
func TestClassify(t *testing.T) {
	t.Parallel()

	state, msg := New().Classify(4, nil)
	assert.Equal(t, Success, state)
	assert.Empty(t, msg)

	state, msg = New().Classify(0, nil)
	assert.Equal(t, Empty, state)
	assert.Empty(t, msg)

	state, msg = New().Classify(0, errors.New("boom"))
	assert.Equal(t, Error, state)
	assert.Equal(t, GenericErrorMessage, msg)
}

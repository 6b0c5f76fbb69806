package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"etf_platform/internal/platform/viewstate"
)

// mockSearcher はテスト用のSearcherモック実装です。
type mockSearcher struct {
	searchFn func(ctx context.Context, keyword string) (*View, error)
}

func (m *mockSearcher) Search(ctx context.Context, keyword string) (*View, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, keyword)
	}
	return &View{Keyword: keyword, Count: 1, Cards: []Card{{Name: keyword}}}, nil
}

// collector はemitされた更新をスレッドセーフに貯めます。
type collector struct {
	mu      sync.Mutex
	updates []Update
}

func (c *collector) emit(up Update) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updates = append(c.updates, up)
}

func (c *collector) all() []Update {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Update, len(c.updates))
	copy(out, c.updates)
	return out
}

func (c *collector) waitFor(t *testing.T, n int) []Update {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if ups := c.all(); len(ups) >= n {
			return ups
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d updates, got %d", n, len(c.all()))
	return nil
}

// TestLiveSession_DebouncedSearch は静止期間後に1回だけ検索されることを検証します。
func TestLiveSession_DebouncedSearch(t *testing.T) {
	t.Parallel()

	var calls sync.Map
	searcher := &mockSearcher{
		searchFn: func(ctx context.Context, keyword string) (*View, error) {
			calls.Store(keyword, true)
			return &View{Keyword: keyword, Count: 2, Cards: []Card{{Name: keyword}}}, nil
		},
	}
	col := &collector{}
	sess := NewLiveSession(searcher, 30*time.Millisecond, col.emit)
	defer sess.Close()

	ctx := context.Background()
	sess.Input(ctx, "반도")
	sess.Input(ctx, "반도체")

	ups := col.waitFor(t, 2)
	// loading → success の順で届く
	assert.Equal(t, viewstate.Loading.String(), ups[0].State)
	assert.Equal(t, "반도체", ups[0].Keyword)
	last := ups[len(ups)-1]
	assert.Equal(t, viewstate.Success.String(), last.State)
	require.NotNil(t, last.View)
	assert.Equal(t, "반도체", last.View.Keyword)

	// 追い越された「반도」は検索されない
	_, called := calls.Load("반도")
	assert.False(t, called)
}

// TestLiveSession_MinRunes は2ルーン未満の入力で検索が発行されないことを検証します。
func TestLiveSession_MinRunes(t *testing.T) {
	t.Parallel()

	searcher := &mockSearcher{
		searchFn: func(ctx context.Context, keyword string) (*View, error) {
			t.Fatalf("search must not run for short keyword %q", keyword)
			return nil, nil
		},
	}
	col := &collector{}
	sess := NewLiveSession(searcher, 20*time.Millisecond, col.emit)
	defer sess.Close()

	// ハングル1文字はバイト数こそ多いがルーン数は1
	sess.Input(context.Background(), "반")
	time.Sleep(80 * time.Millisecond)

	assert.Empty(t, col.all())
}

// TestLiveSession_ShortInputCancelsPending は短い入力への後退が
// 予約済みの検索を取り消すことを検証します。
func TestLiveSession_ShortInputCancelsPending(t *testing.T) {
	t.Parallel()

	searcher := &mockSearcher{
		searchFn: func(ctx context.Context, keyword string) (*View, error) {
			t.Fatal("search must not run after input shrank below minimum")
			return nil, nil
		},
	}
	sess := NewLiveSession(searcher, 30*time.Millisecond, func(Update) {})
	defer sess.Close()

	ctx := context.Background()
	sess.Input(ctx, "반도체")
	sess.Input(ctx, "반")
	time.Sleep(100 * time.Millisecond)
}

// TestLiveSession_EmptyInputResets は空入力で初期表示へ戻ることを検証します。
func TestLiveSession_EmptyInputResets(t *testing.T) {
	t.Parallel()

	searcher := &mockSearcher{
		searchFn: func(ctx context.Context, keyword string) (*View, error) {
			t.Fatal("search must not run for empty input")
			return nil, nil
		},
	}
	col := &collector{}
	sess := NewLiveSession(searcher, 30*time.Millisecond, col.emit)
	defer sess.Close()

	ctx := context.Background()
	sess.Input(ctx, "반도체")
	sess.Input(ctx, "")
	time.Sleep(100 * time.Millisecond)

	ups := col.all()
	require.Len(t, ups, 1)
	assert.Equal(t, viewstate.Idle.String(), ups[0].State)
	// 4領域すべてfalse。クライアントはおすすめ表示へ戻す
	assert.Equal(t, viewstate.Regions{}, ups[0].Regions)
}

// TestLiveSession_SubmitBypassesDebounce はSubmitが待ち時間なしで
// 検索することを検証します。
func TestLiveSession_SubmitBypassesDebounce(t *testing.T) {
	t.Parallel()

	searcher := &mockSearcher{
		searchFn: func(ctx context.Context, keyword string) (*View, error) {
			return &View{Keyword: keyword, Count: 1, Cards: []Card{{Name: keyword}}}, nil
		},
	}
	col := &collector{}
	// 静止期間を長くしてSubmitの即時性を際立たせる
	sess := NewLiveSession(searcher, 5*time.Second, col.emit)
	defer sess.Close()

	sess.Submit(context.Background(), "KODEX")

	ups := col.waitFor(t, 2)
	assert.Equal(t, viewstate.Success.String(), ups[len(ups)-1].State)
}

// TestLiveSession_SubmitEmptyPrompts は空のままの送信が検索せず
// 案内文言を返すことを検証します。
func TestLiveSession_SubmitEmptyPrompts(t *testing.T) {
	t.Parallel()

	searcher := &mockSearcher{
		searchFn: func(ctx context.Context, keyword string) (*View, error) {
			t.Fatal("search must not run for empty submit")
			return nil, nil
		},
	}
	col := &collector{}
	sess := NewLiveSession(searcher, 20*time.Millisecond, col.emit)
	defer sess.Close()

	sess.Submit(context.Background(), "   ")

	ups := col.waitFor(t, 1)
	assert.Equal(t, PromptMessage, ups[0].Message)
}

// TestLiveSession_StaleResultDiscarded は遅れて完了した古い検索の結果が
// 配信されないことを検証します。
func TestLiveSession_StaleResultDiscarded(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	searcher := &mockSearcher{
		searchFn: func(ctx context.Context, keyword string) (*View, error) {
			if keyword == "느린검색" {
				<-release
			}
			return &View{Keyword: keyword, Count: 1, Cards: []Card{{Name: keyword}}}, nil
		},
	}
	col := &collector{}
	sess := NewLiveSession(searcher, 10*time.Millisecond, col.emit)
	defer sess.Close()

	ctx := context.Background()
	sess.Input(ctx, "느린검색")
	// 遅い検索が走り出すのを待つ
	col.waitFor(t, 1)

	// 後続の検索が先に完了する
	sess.Submit(ctx, "빠른검색")
	col.waitFor(t, 3)

	// 遅い検索を完了させても、その結果は捨てられる
	close(release)
	time.Sleep(50 * time.Millisecond)

	ups := col.all()
	last := ups[len(ups)-1]
	require.NotNil(t, last.View)
	assert.Equal(t, "빠른검색", last.View.Keyword)
	for _, up := range ups {
		if up.View != nil {
			assert.NotEqual(t, "느린검색", up.View.Keyword)
		}
	}
}

// TestLiveSession_CountMismatch はサーバ報告のCountとデータ本体が食い違う応答で
// データ本体の件数に従って空状態になることを検証します。
func TestLiveSession_CountMismatch(t *testing.T) {
	t.Parallel()

	searcher := &mockSearcher{
		searchFn: func(ctx context.Context, keyword string) (*View, error) {
			return &View{Keyword: keyword, Count: 5, CountLabel: "5", Cards: nil}, nil
		},
	}
	col := &collector{}
	sess := NewLiveSession(searcher, 10*time.Millisecond, col.emit)
	defer sess.Close()

	sess.Submit(context.Background(), "KODEX")

	ups := col.waitFor(t, 2)
	last := ups[len(ups)-1]
	assert.Equal(t, viewstate.Empty.String(), last.State)
	assert.True(t, last.Regions.Empty)
	assert.Nil(t, last.View)
}

// TestLiveSession_EmptyResult は0件がエラーではなく空状態になることを検証します。
func TestLiveSession_EmptyResult(t *testing.T) {
	t.Parallel()

	searcher := &mockSearcher{
		searchFn: func(ctx context.Context, keyword string) (*View, error) {
			return &View{Keyword: keyword, Count: 0}, nil
		},
	}
	col := &collector{}
	sess := NewLiveSession(searcher, 10*time.Millisecond, col.emit)
	defer sess.Close()

	sess.Submit(context.Background(), "존재하지않는이름")

	ups := col.waitFor(t, 2)
	last := ups[len(ups)-1]
	assert.Equal(t, viewstate.Empty.String(), last.State)
	assert.True(t, last.Regions.Empty)
	assert.Nil(t, last.View)
}

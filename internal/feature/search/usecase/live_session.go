package usecase

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"etf_platform/internal/platform/debounce"
	"etf_platform/internal/platform/viewstate"
)

// ライブ検索の入力制約。
const (
	// MinKeywordRunes 未満の入力では検索を発行しません。バイト数ではなく
	// ルーン数で数えるため、ハングル2文字で検索が始まります。
	MinKeywordRunes = 2
	// DefaultQuiet は入力静止からフェッチ発行までの待ち時間です。
	DefaultQuiet = 500 * time.Millisecond
)

// PromptMessage は空のまま送信されたときの案内文言です。
const PromptMessage = "검색어를 입력해주세요."

// Searcher はライブセッションが使う検索実行器です。
type Searcher interface {
	Search(ctx context.Context, keyword string) (*View, error)
}

// Update はライブ検索の1回分の画面更新です。接続ごとに順番に配信されます。
type Update struct {
	Keyword string            `json:"keyword"`
	State   string            `json:"state"`
	Message string            `json:"message,omitempty"`
	Regions viewstate.Regions `json:"regions"`
	View    *View             `json:"view,omitempty"`
}

// LiveSession は1クライアント分のライブ検索状態です。
// 入力のたびにデバウンスタイマーがリセットされ、静止期間後に1回だけ検索します。
// 追い越されたフェッチの結果はトークン照合で破棄され、配信されません。
type LiveSession struct {
	searcher Searcher
	deb      *debounce.Debouncer
	vs       *viewstate.Controller
	emit     func(Update)
}

// NewLiveSession はライブ検索セッションを生成します。
// emit は更新の配信先で、タイマーゴルーチンから呼ばれ得ます。
func NewLiveSession(searcher Searcher, quiet time.Duration, emit func(Update)) *LiveSession {
	if quiet <= 0 {
		quiet = DefaultQuiet
	}
	return &LiveSession{
		searcher: searcher,
		deb:      debounce.New(quiet),
		vs:       viewstate.New(),
		emit:     emit,
	}
}

// Input は入力欄の変化を処理します。
//   - 空入力       → 予約を取り消して初期表示（おすすめ）へ戻す
//   - 2ルーン未満  → 予約を取り消すだけで何も発行しない
//   - それ以外     → 静止期間後の検索を予約する
func (s *LiveSession) Input(ctx context.Context, keyword string) {
	keyword = strings.TrimSpace(keyword)

	if keyword == "" {
		s.deb.Stop()
		s.vs.Reset()
		s.emit(Update{State: viewstate.Idle.String(), Regions: viewstate.Regions{}})
		return
	}
	if utf8.RuneCountInString(keyword) < MinKeywordRunes {
		s.deb.Stop()
		return
	}

	s.deb.Trigger(func() {
		s.run(ctx, keyword)
	})
}

// Submit はデバウンスを迂回して即時に検索します。
// 空のままの送信は検索せず案内文言だけを返します。
func (s *LiveSession) Submit(ctx context.Context, keyword string) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		s.deb.Stop()
		s.vs.Reset()
		s.emit(Update{
			State:   viewstate.Idle.String(),
			Message: PromptMessage,
			Regions: viewstate.Regions{},
		})
		return
	}
	s.deb.Flush(func() {
		s.run(ctx, keyword)
	})
}

// Close は予約済みの検索を取り消します。接続切断時に呼びます。
func (s *LiveSession) Close() {
	s.deb.Stop()
}

// run は1回の検索を発行し、最新のフェッチである場合だけ結果を配信します。
func (s *LiveSession) run(ctx context.Context, keyword string) {
	tok := s.vs.Begin()
	s.emit(Update{
		Keyword: keyword,
		State:   viewstate.Loading.String(),
		Regions: s.vs.Regions(),
	})

	view, err := s.searcher.Search(ctx, keyword)

	// 分類は実際に描画できる件数で行います。サーバー報告のCountは
	// 件数ラベル専用で、データ本体と食い違うことがあります。
	count := 0
	if err == nil {
		count = len(view.Cards)
	}
	if !s.vs.Resolve(tok, count, err) {
		// 後続の入力に追い越されたフェッチ。画面には反映しません。
		return
	}

	up := Update{
		Keyword: keyword,
		State:   s.vs.State().String(),
		Message: s.vs.Message(),
		Regions: s.vs.Regions(),
	}
	if err == nil && count > 0 {
		up.View = view
	}
	s.emit(up)
}

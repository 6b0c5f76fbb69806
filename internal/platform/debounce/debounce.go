// Package debounce は入力が一定時間静止するまで処理を遅らせるタイマーを提供します。
package debounce

import (
	"sync"
	"time"
)

// Debouncer は再スタート可能な一回発火タイマーです。
// Trigger を呼ぶたびに待ち時間がリセットされ、静止期間が経過した時点で
// 最後に渡された関数だけが一度実行されます。
type Debouncer struct {
	mu    sync.Mutex
	quiet time.Duration
	timer *time.Timer
	gen   uint64
}

// New は指定された静止期間のDebouncerを生成します。
func New(quiet time.Duration) *Debouncer {
	return &Debouncer{quiet: quiet}
}

// Trigger は fn の実行を予約します。既に予約済みの実行は取り消され、
// 待ち時間が最初からやり直しになります。
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, func() {
		d.mu.Lock()
		stale := gen != d.gen
		d.mu.Unlock()
		if stale {
			return
		}
		fn()
	})
}

// Stop は予約済みの実行を取り消します。実行中の fn は中断しません。
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Flush は予約をすべて取り消した上で fn を即時実行します。
// フォーム送信などデバウンスを迂回する明示操作に使います。
func (d *Debouncer) Flush(fn func()) {
	d.Stop()
	fn()
}

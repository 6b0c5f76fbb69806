// Package viewstate はページ領域の 読み込み中→成功/空/失敗 ライフサイクルを管理します。
package viewstate

import (
	"errors"
	"sync"
)

// State はひとつの表示領域が取り得る状態です。
type State int

const (
	// Idle は最初のフェッチが発行される前の状態です。
	Idle State = iota
	// Loading はフェッチ発行から結果確定までの状態です。
	Loading
	// Success は1件以上の結果を伴う正常終了です。
	Success
	// Empty は正常終了だが結果が0件の状態です。エラー扱いにはしません。
	Empty
	// Error は通信失敗・非2xx・success=false のいずれかです。
	Error
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Empty:
		return "empty"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// GenericErrorMessage は通信失敗など、サーバ由来のメッセージを持たない
// エラーに対して表示される汎用メッセージです。
const GenericErrorMessage = "일시적인 오류가 발생했습니다. 잠시 후 다시 시도해주세요."

// userMessager はそのままユーザーに見せてよいメッセージを持つエラーです。
// etfapi.APIError が実装します。
type userMessager interface {
	UserMessage() string
}

// Regions は相互排他の4領域のうちどれを表示するかのスナップショットです。
// 常にちょうど1つだけがtrueになります。
type Regions struct {
	Loading bool
	Content bool
	Empty   bool
	Error   bool
}

// Token は発行済みフェッチの識別子です。後から発行されたフェッチの結果だけが
// 描画に反映され、追い越されたフェッチの確定は破棄されます。
type Token uint64

// Controller はひとつの表示領域の状態機械です。再入可能で、
// どの終端状態からも Begin により Loading へ戻れます。
type Controller struct {
	mu      sync.Mutex
	state   State
	message string
	issued  Token
}

// New はIdle状態のControllerを生成します。
func New() *Controller {
	return &Controller{state: Idle}
}

// Begin は新しいフェッチの開始を記録し、Loadingへ遷移してトークンを返します。
// ユーザー操作と同期的に呼ぶことで、前状態が残って見える隙間をなくします。
func (c *Controller) Begin() Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.issued++
	c.state = Loading
	c.message = ""
	return c.issued
}

// Resolve はフェッチ結果を状態に反映します。count は結果コレクションの件数です。
// 分類規則:
//   - err != nil          → Error（サーバ由来メッセージがあればそのまま、なければ汎用文言）
//   - err == nil, count=0 → Empty
//   - err == nil, count>0 → Success
//
// tok が最新の発行トークンでない場合は何もせず false を返します。
func (c *Controller) Resolve(tok Token, count int, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if tok != c.issued {
		return false
	}
	switch {
	case err != nil:
		c.state = Error
		c.message = messageFor(err)
	case count == 0:
		c.state = Empty
		c.message = ""
	default:
		c.state = Success
		c.message = ""
	}
	return true
}

// Reset はIdleへ戻します。検索入力が空になった場合など、
// フェッチを伴わずに初期表示へ戻るときに使います。
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.issued++
	c.state = Idle
	c.message = ""
}

// State は現在の状態を返します。
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Message はError状態の表示メッセージを返します。それ以外の状態では空文字列です。
func (c *Controller) Message() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.message
}

// Regions は現在の状態に対応する領域スナップショットを返します。
// Idleでは何も表示しない代わりにLoading領域を返します（初期表示はローディング）。
func (c *Controller) Regions() Regions {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.state {
	case Success:
		return Regions{Content: true}
	case Empty:
		return Regions{Empty: true}
	case Error:
		return Regions{Error: true}
	default:
		return Regions{Loading: true}
	}
}

// messageFor はエラーから表示メッセージを選びます。
// success=false のサーバメッセージは改変せずそのまま使います。
func messageFor(err error) string {
	var um userMessager
	if errors.As(err, &um) && um.UserMessage() != "" {
		return um.UserMessage()
	}
	return GenericErrorMessage
}

// Classify は1回きりのサーバサイド描画のための補助です。
// Begin/Resolve を内部で行い、確定後の状態・メッセージを返します。
func (c *Controller) Classify(count int, err error) (State, string) {
	tok := c.Begin()
	c.Resolve(tok, count, err)
	return c.State(), c.Message()
}

package handler

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"etf_platform/internal/feature/search/usecase"
)

// clientMessage はクライアントから受け取る1メッセージです。
// typeは "input"（入力変化）または "submit"（明示送信）です。
type clientMessage struct {
	Type    string `json:"type"`
	Keyword string `json:"keyword"`
}

// LiveSearchHandler は検索ページのライブ検索WebSocketを処理します。
// 接続1本ごとに独立したデバウンス・状態機械を持ちます。
type LiveSearchHandler struct {
	searcher usecase.Searcher
	quiet    time.Duration
	upgrader websocket.Upgrader
}

// NewLiveSearchHandler はLiveSearchHandlerの新しいインスタンスを生成します。
func NewLiveSearchHandler(searcher usecase.Searcher, quiet time.Duration) *LiveSearchHandler {
	return &LiveSearchHandler{
		searcher: searcher,
		quiet:    quiet,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
}

// Serve はWebSocket接続1本分の寿命を扱います。
//
// GET /ws/search
//
// 更新の配信はデバウンスタイマーのゴルーチンからも行われるため、
// 書き込みはミューテックスで直列化します。
func (h *LiveSearchHandler) Serve(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer func() {
		if err := conn.Close(); err != nil {
			slog.Warn("websocket close failed", "error", err)
		}
	}()

	var writeMu sync.Mutex
	emit := func(up usecase.Update) {
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := conn.WriteJSON(up); err != nil {
			slog.Warn("websocket write failed", "error", err)
		}
	}

	// 接続が切れてもタイマー予約済みの検索を道連れにしないよう、
	// リクエストのコンテキストではなくセッションClose経由で後始末します。
	sess := usecase.NewLiveSession(h.searcher, h.quiet, emit)
	defer sess.Close()

	ctx := c.Request.Context()
	for {
		var msg clientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("websocket read failed", "error", err)
			}
			return
		}
		switch msg.Type {
		case "submit":
			sess.Submit(ctx, msg.Keyword)
		default:
			sess.Input(ctx, msg.Keyword)
		}
	}
}

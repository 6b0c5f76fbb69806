// Package http は上流API呼び出し用のHTTPクライアント構築を提供します。
package http

import (
	"net"
	"net/http"
	"time"
)

// NewClient は上流ETF API呼び出し用に設定されたHTTPクライアントを作成します。
//
// 1ページの描画が複数のAPI呼び出しになるため、アイドル接続を多めに保持して
// 接続の張り直しを避けます。http.DefaultClientにはタイムアウトがないため、
// 常にこのクライアントを使用すること。
func NewClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}

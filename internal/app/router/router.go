// Package router はページと静的アセットのルーティングを組み立てます。
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authhandler "etf_platform/internal/feature/auth/transport/handler"
	dashboardhandler "etf_platform/internal/feature/dashboard/transport/handler"
	funddetailhandler "etf_platform/internal/feature/funddetail/transport/handler"
	rankingshandler "etf_platform/internal/feature/rankings/transport/handler"
	searchhandler "etf_platform/internal/feature/search/transport/handler"
	themeshandler "etf_platform/internal/feature/themes/transport/handler"
	watchlisthandler "etf_platform/internal/feature/watchlist/transport/handler"
	platformhandler "etf_platform/internal/platform/http/handler"
	"etf_platform/internal/platform/session"
	"etf_platform/internal/platform/token"
	"etf_platform/web"
)

// Handlers はルーティングに必要なハンドラー一式です。
type Handlers struct {
	Dashboard  *dashboardhandler.DashboardHandler
	Rankings   *rankingshandler.RankingsHandler
	Search     *searchhandler.SearchHandler
	LiveSearch *searchhandler.LiveSearchHandler
	Themes     *themeshandler.ThemesHandler
	FundDetail *funddetailhandler.FundDetailHandler
	Watchlist  *watchlisthandler.WatchlistHandler
	Auth       *authhandler.AuthHandler
}

// NewRouter は全ルートを登録したginエンジンを返します。
// セッション解決は全ルート共通のミドルウェアで行い、個々のハンドラーは
// コンテキストから身元を読むだけにします。
func NewRouter(h Handlers, store *session.Store, signer *token.Signer) *gin.Engine {
	r := gin.Default()

	r.SetHTMLTemplate(web.Templates())
	r.StaticFS("/static", http.FS(web.Static()))

	// 導通確認用
	r.GET("/healthz", platformhandler.Health)

	// クッキーがあれば身元を解決する。無くてもリクエストは通す。
	r.Use(session.Resolver(store, signer))

	// 市場データページ
	r.GET("/", h.Dashboard.Page)
	r.GET("/dashboard/chart.png", h.Dashboard.Chart)
	r.GET("/rankings", h.Rankings.Page)
	r.GET("/search", h.Search.Page)
	r.GET("/ws/search", h.LiveSearch.Serve)
	r.GET("/themes", h.Themes.ListPage)
	r.GET("/themes/:name", h.Themes.DetailPage)
	r.GET("/etf/:isin", h.FundDetail.Page)

	// 関心種目。ログイン確認はハンドラー側で案内ページへ誘導する。
	r.GET("/watchlist", h.Watchlist.Page)
	r.POST("/watchlist", h.Watchlist.Add)
	r.POST("/watchlist/:id/remove", h.Watchlist.Remove)

	// 認証
	r.GET("/login", h.Auth.LoginPage)
	r.POST("/login", h.Auth.Login)
	r.POST("/register", h.Auth.Register)
	r.POST("/logout", h.Auth.Logout)

	return r
}

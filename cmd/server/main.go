package main

import (
	"log"
	"log/slog"

	"github.com/joho/godotenv"

	"etf_platform/internal/app/config"
	"etf_platform/internal/app/router"
	authhandler "etf_platform/internal/feature/auth/transport/handler"
	authusecase "etf_platform/internal/feature/auth/usecase"
	dashboardhandler "etf_platform/internal/feature/dashboard/transport/handler"
	dashboardusecase "etf_platform/internal/feature/dashboard/usecase"
	funddetailhandler "etf_platform/internal/feature/funddetail/transport/handler"
	funddetailusecase "etf_platform/internal/feature/funddetail/usecase"
	rankingshandler "etf_platform/internal/feature/rankings/transport/handler"
	rankingsusecase "etf_platform/internal/feature/rankings/usecase"
	searchhandler "etf_platform/internal/feature/search/transport/handler"
	searchusecase "etf_platform/internal/feature/search/usecase"
	themeshandler "etf_platform/internal/feature/themes/transport/handler"
	themesusecase "etf_platform/internal/feature/themes/usecase"
	watchlisthandler "etf_platform/internal/feature/watchlist/transport/handler"
	watchlistusecase "etf_platform/internal/feature/watchlist/usecase"
	"etf_platform/internal/platform/cache"
	"etf_platform/internal/platform/etfapi"
	"etf_platform/internal/platform/prefs"
	platformredis "etf_platform/internal/platform/redis"
	"etf_platform/internal/platform/session"
	"etf_platform/internal/platform/token"
)

func main() {
	// .env はローカル開発用。無ければ環境変数だけで動く。
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file loaded", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Redis。セッションがRedisに載るため、接続できなければ起動しない。
	rdb, err := platformredis.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatal("Redis is required for sessions: ", err)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			slog.Error("failed to close Redis client", "error", err)
		}
	}()

	// ユーザー設定ストア。開けなくてもページ機能は落とさない。
	var prefStore *prefs.Store
	if store, err := prefs.Open(cfg.PrefsDBPath); err != nil {
		slog.Warn("prefs store unavailable, preferences disabled", "path", cfg.PrefsDBPath, "error", err)
	} else {
		prefStore = store
	}

	// 上流APIクライアントとRedisキャッシュ
	apiCfg := etfapi.LoadConfig()
	apiCfg.BaseURL = cfg.APIBaseURL
	apiClient := etfapi.NewClient(apiCfg)
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		// 上流データは毎朝8時（KST）に更新される
		ttl = cache.TimeUntilNext8AM()
	}
	cachedReader := cache.NewCachingMarketReader(rdb, ttl, apiClient, "market")

	// セッション
	if cfg.SessionSecret == "" {
		slog.Warn("SESSION_SECRET is not set. Set a strong secret in production.")
	}
	sessionStore := session.NewStore(rdb, "session", cfg.SessionTTL)
	signer := token.NewSigner(cfg.SessionSecret, cfg.SessionTTL)

	// Usecase
	dashboardUC := dashboardusecase.NewDashboardUsecase(cachedReader)
	rankingsUC := rankingsusecase.NewRankingsUsecase(cachedReader)
	searchUC := searchusecase.NewSearchUsecase(apiClient)
	themesUC := themesusecase.NewThemesUsecase(cachedReader)
	fundDetailUC := funddetailusecase.NewFundDetailUsecase(apiClient)
	watchlistUC := watchlistusecase.NewWatchlistUsecase(apiClient)
	authUC := authusecase.NewAuthUsecase(apiClient, sessionStore, signer)

	// Handler
	handlers := router.Handlers{
		Dashboard:  dashboardhandler.NewDashboardHandler(dashboardUC),
		Rankings:   rankingshandler.NewRankingsHandler(rankingsUC, prefsOrNil(prefStore)),
		Search:     searchhandler.NewSearchHandler(searchUC),
		LiveSearch: searchhandler.NewLiveSearchHandler(searchUC, cfg.SearchQuiet),
		Themes:     themeshandler.NewThemesHandler(themesUC, prefsOrNil(prefStore)),
		FundDetail: funddetailhandler.NewFundDetailHandler(fundDetailUC),
		Watchlist:  watchlisthandler.NewWatchlistHandler(watchlistUC),
		Auth:       authhandler.NewAuthHandler(authUC),
	}

	r := router.NewRouter(handlers, sessionStore, signer)

	slog.Info("server starting", "addr", cfg.Addr, "api", cfg.APIBaseURL)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}

// prefsOrNil はnilの*prefs.Storeをnilインターフェースへ落とします。
// 型付きnilをそのまま渡すとハンドラー側のnil判定をすり抜けるためです。
func prefsOrNil(store *prefs.Store) rankingshandler.Prefs {
	if store == nil {
		return nil
	}
	return store
}

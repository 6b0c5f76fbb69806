package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"etf_platform/internal/feature/rankings/usecase"
	"etf_platform/internal/platform/session"
	"etf_platform/internal/platform/viewstate"
	"etf_platform/web"
)

// mockRankingsUsecase はテスト用のRankingsUsecaseモック実装です。
type mockRankingsUsecase struct {
	loadFn func(ctx context.Context, kind usecase.Kind) *usecase.View
}

func (m *mockRankingsUsecase) Load(ctx context.Context, kind usecase.Kind) *usecase.View {
	if m.loadFn != nil {
		return m.loadFn(ctx, kind)
	}
	return &usecase.View{Kind: kind, Regions: viewstate.Regions{Empty: true}}
}

// mockPrefs はテスト用のPrefsモック実装です。
type mockPrefs struct {
	getStringFn func(ctx context.Context, userID int64, key, fallback string) string
	setFn       func(ctx context.Context, userID int64, key string, value any) error
}

func (m *mockPrefs) GetString(ctx context.Context, userID int64, key, fallback string) string {
	if m.getStringFn != nil {
		return m.getStringFn(ctx, userID, key, fallback)
	}
	return fallback
}

func (m *mockPrefs) Set(ctx context.Context, userID int64, key string, value any) error {
	if m.setFn != nil {
		return m.setFn(ctx, userID, key, value)
	}
	return nil
}

func newTestRouter(h *RankingsHandler, identity *session.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.SetHTMLTemplate(web.Templates())
	r.Use(func(c *gin.Context) {
		if identity != nil {
			c.Set(session.ContextIdentity, identity)
		}
		c.Next()
	})
	r.GET("/rankings", h.Page)
	return r
}

func successView(kind usecase.Kind) *usecase.View {
	return &usecase.View{
		Kind:        kind,
		Title:       kind.DefaultTitle(),
		CountLabel:  "1개",
		ValueHeader: kind.ValueHeader(),
		Rows: []usecase.Row{
			{Rank: 1, RankClass: "bg-warning", Name: "KODEX 200", Code: "069500",
				Price: "35,000원", Value: "1.23%", ValueClass: "price-up",
				Nav: "35,001", Category: "KODEX", CategoryClass: "bg-success", DetailPath: "/etf/KR7069500007"},
		},
		State:   viewstate.Success,
		Regions: viewstate.Regions{Content: true},
	}
}

// TestRankingsHandler_DefaultKind はtype未指定が既定種別になることを検証します。
func TestRankingsHandler_DefaultKind(t *testing.T) {
	var gotKind usecase.Kind
	uc := &mockRankingsUsecase{
		loadFn: func(ctx context.Context, kind usecase.Kind) *usecase.View {
			gotKind = kind
			return successView(kind)
		},
	}
	router := newTestRouter(NewRankingsHandler(uc, nil), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/rankings", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, usecase.KindGainers, gotKind)
	assert.Contains(t, w.Body.String(), "등락률 상위 ETF")
}

// TestRankingsHandler_ExplicitKind はtypeクエリが種別と見出しに反映されることを検証します。
func TestRankingsHandler_ExplicitKind(t *testing.T) {
	uc := &mockRankingsUsecase{
		loadFn: func(ctx context.Context, kind usecase.Kind) *usecase.View {
			require.Equal(t, usecase.KindVolume, kind)
			return successView(kind)
		},
	}
	router := newTestRouter(NewRankingsHandler(uc, nil), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/rankings?type=volume", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "거래량 상위 ETF")
	// 値カラムの見出しも種別に追従する
	assert.Contains(t, body, "<th class=\"text-end\">거래량</th>")
}

// TestRankingsHandler_RestoresPreference はログイン済み・type未指定のとき
// 保存済み種別が復元されることを検証します。
func TestRankingsHandler_RestoresPreference(t *testing.T) {
	var gotKind usecase.Kind
	uc := &mockRankingsUsecase{
		loadFn: func(ctx context.Context, kind usecase.Kind) *usecase.View {
			gotKind = kind
			return successView(kind)
		},
	}
	prefs := &mockPrefs{
		getStringFn: func(ctx context.Context, userID int64, key, fallback string) string {
			assert.Equal(t, int64(7), userID)
			assert.Equal(t, "rankings.kind", key)
			return "asset"
		},
	}
	identity := &session.Identity{Authenticated: true, UserID: 7, Username: "hong"}
	router := newTestRouter(NewRankingsHandler(uc, prefs), identity)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/rankings", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, usecase.KindAsset, gotKind)
}

// TestRankingsHandler_SavesPreference は明示的なtype指定が保存されることを検証します。
func TestRankingsHandler_SavesPreference(t *testing.T) {
	saved := map[string]any{}
	uc := &mockRankingsUsecase{
		loadFn: func(ctx context.Context, kind usecase.Kind) *usecase.View {
			return successView(kind)
		},
	}
	prefs := &mockPrefs{
		setFn: func(ctx context.Context, userID int64, key string, value any) error {
			saved[key] = value
			return nil
		},
	}
	identity := &session.Identity{Authenticated: true, UserID: 7, Username: "hong"}
	router := newTestRouter(NewRankingsHandler(uc, prefs), identity)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/rankings?type=losers", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, "losers", saved["rankings.kind"])
}

// TestRankingsHandler_AnonymousSkipsPrefs は未ログイン時に設定ストアへ
// 触れないことを検証します。
func TestRankingsHandler_AnonymousSkipsPrefs(t *testing.T) {
	prefs := &mockPrefs{
		getStringFn: func(ctx context.Context, userID int64, key, fallback string) string {
			t.Fatal("prefs must not be read for anonymous visitors")
			return ""
		},
		setFn: func(ctx context.Context, userID int64, key string, value any) error {
			t.Fatal("prefs must not be written for anonymous visitors")
			return nil
		},
	}
	router := newTestRouter(NewRankingsHandler(&mockRankingsUsecase{}, prefs), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/rankings?type=volume", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

// TestRankingsHandler_ErrorRegion はエラー時にエラー領域だけが描画されることを検証します。
func TestRankingsHandler_ErrorRegion(t *testing.T) {
	uc := &mockRankingsUsecase{
		loadFn: func(ctx context.Context, kind usecase.Kind) *usecase.View {
			return &usecase.View{
				Kind:    kind,
				Title:   kind.DefaultTitle(),
				State:   viewstate.Error,
				Message: viewstate.GenericErrorMessage,
				Regions: viewstate.Regions{Error: true},
			}
		},
	}
	router := newTestRouter(NewRankingsHandler(uc, nil), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/rankings", nil)
	router.ServeHTTP(w, req)

	body := w.Body.String()
	assert.Contains(t, body, viewstate.GenericErrorMessage)
	assert.NotContains(t, body, "<table")
}

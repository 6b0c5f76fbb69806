package etfapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	platformhttp "etf_platform/internal/platform/http"
)

// APIError はsuccessフラグがfalseのレスポンスを表します。
// Message はサーバが返した人間可読メッセージそのままです。
type APIError struct {
	Endpoint string
	Message  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("etfapi: %s: %s", e.Endpoint, e.Message)
}

// UserMessage はそのまま画面に表示してよいサーバ由来のメッセージを返します。
func (e *APIError) UserMessage() string { return e.Message }

// Client はETFプラットフォームAPIのHTTPクライアントです。
// 自動リトライは行いません。リトライは常に呼び出し側の明示的な再実行です。
type Client struct {
	cfg     Config
	client  *http.Client
	limiter *rate.Limiter
}

// NewClient は指定された設定でClientの新しいインスタンスを生成します。
func NewClient(cfg Config) *Client {
	rps := cfg.Rate
	if rps <= 0 {
		rps = 10
	}
	return &Client{
		cfg:     cfg,
		client:  platformhttp.NewClient(cfg.Timeout),
		limiter: rate.NewLimiter(rate.Limit(rps), rps),
	}
}

// do executes one request and decodes the JSON body into out.
// Transport failures and non-2xx statuses are returned as plain errors;
// the caller maps them to a generic user-facing message.
func (c *Client) do(ctx context.Context, method, path string, q url.Values, form url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	u := c.cfg.BaseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("etfapi: %s: http %d", path, res.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("etfapi: %s: decode: %w", path, err)
	}
	return nil
}

// envelope は全エンドポイント共通のレスポンス外装です。
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (e envelope) check(path string) error {
	if e.Success {
		return nil
	}
	return &APIError{Endpoint: path, Message: e.Message}
}

// Dashboard は市場統計とランキング上位を含むダッシュボード概要を取得します。
func (c *Client) Dashboard(ctx context.Context) (*DashboardSummary, error) {
	var res struct {
		envelope
		DashboardSummary
	}
	if err := c.do(ctx, http.MethodGet, "/api/dashboard", nil, nil, &res); err != nil {
		return nil, err
	}
	if err := res.check("/api/dashboard"); err != nil {
		return nil, err
	}
	return &res.DashboardSummary, nil
}

// Rankings は指定された種別のランキングを取得します。
// Data の並びはサーバが割り当てた順位そのものです。
func (c *Client) Rankings(ctx context.Context, kind string) (*RankingResult, error) {
	q := url.Values{}
	q.Set("type", kind)
	var res struct {
		envelope
		RankingResult
	}
	if err := c.do(ctx, http.MethodGet, "/api/rankings", q, nil, &res); err != nil {
		return nil, err
	}
	if err := res.check("/api/rankings"); err != nil {
		return nil, err
	}
	return &res.RankingResult, nil
}

// Search はキーワードでETFを検索します。
func (c *Client) Search(ctx context.Context, keyword string) (*SearchResult, error) {
	q := url.Values{}
	q.Set("keyword", keyword)
	var res struct {
		envelope
		SearchResult
	}
	if err := c.do(ctx, http.MethodGet, "/api/search", q, nil, &res); err != nil {
		return nil, err
	}
	if err := res.check("/api/search"); err != nil {
		return nil, err
	}
	res.SearchResult.Keyword = keyword
	return &res.SearchResult, nil
}

// Themes はテーマ一覧（ブランド別件数とカテゴリ別グループ）を取得します。
func (c *Client) Themes(ctx context.Context) (*ThemeList, error) {
	var res struct {
		envelope
		ThemeList
	}
	if err := c.do(ctx, http.MethodGet, "/api/themes", nil, nil, &res); err != nil {
		return nil, err
	}
	if err := res.check("/api/themes"); err != nil {
		return nil, err
	}
	return &res.ThemeList, nil
}

// ThemeDetail は指定テーマに属するETF一覧を取得します。
// theme はデコード済みのテーマ名を渡します（エンコードはこちらで行います）。
func (c *Client) ThemeDetail(ctx context.Context, theme string) (*ThemeDetail, error) {
	path := "/api/themes/" + url.PathEscape(theme)
	var res struct {
		envelope
		ThemeDetail
	}
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &res); err != nil {
		return nil, err
	}
	if err := res.check(path); err != nil {
		return nil, err
	}
	return &res.ThemeDetail, nil
}

// FundDetail はISINコードでETF 1銘柄の詳細を取得します。
func (c *Client) FundDetail(ctx context.Context, isinCd string) (*Fund, error) {
	path := "/api/etf/" + url.PathEscape(isinCd)
	var res struct {
		envelope
		Data *Fund `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &res); err != nil {
		return nil, err
	}
	if err := res.check(path); err != nil {
		return nil, err
	}
	if res.Data == nil {
		return nil, &APIError{Endpoint: path, Message: res.Message}
	}
	return res.Data, nil
}

// RegisterUser は新規ユーザーを登録します。
func (c *Client) RegisterUser(ctx context.Context, username, email, fullName, password string) error {
	form := url.Values{}
	form.Set("username", username)
	form.Set("email", email)
	form.Set("fullName", fullName)
	form.Set("password", password)
	var res envelope
	if err := c.do(ctx, http.MethodPost, "/api/users", nil, form, &res); err != nil {
		return err
	}
	return res.check("/api/users")
}

// Login はユーザーを認証し、成功時にプロフィールを返します。
func (c *Client) Login(ctx context.Context, usernameOrEmail, password string) (*User, error) {
	form := url.Values{}
	form.Set("usernameOrEmail", usernameOrEmail)
	form.Set("password", password)
	var res struct {
		envelope
		User *User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/users/login", nil, form, &res); err != nil {
		return nil, err
	}
	if err := res.check("/api/users/login"); err != nil {
		return nil, err
	}
	if res.User == nil {
		return nil, &APIError{Endpoint: "/api/users/login", Message: res.Message}
	}
	return res.User, nil
}

// UserInfo はユーザーIDでプロフィールを取得します。
func (c *Client) UserInfo(ctx context.Context, userID int64) (*User, error) {
	path := "/api/users/" + strconv.FormatInt(userID, 10)
	var res struct {
		envelope
		User *User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &res); err != nil {
		return nil, err
	}
	if err := res.check(path); err != nil {
		return nil, err
	}
	if res.User == nil {
		return nil, &APIError{Endpoint: path, Message: res.Message}
	}
	return res.User, nil
}

// Watchlist はユーザーの関心種目一覧をETF情報付きで取得します。
func (c *Client) Watchlist(ctx context.Context, userID int64) ([]WatchlistEntry, error) {
	q := url.Values{}
	q.Set("userId", strconv.FormatInt(userID, 10))
	q.Set("includeEtfInfo", "true")
	var res struct {
		envelope
		Data []WatchlistEntry `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/watchlist", q, nil, &res); err != nil {
		return nil, err
	}
	if err := res.check("/api/watchlist"); err != nil {
		return nil, err
	}
	return res.Data, nil
}

// AddWatchlist は関心種目を1件追加します。
func (c *Client) AddWatchlist(ctx context.Context, userID int64, isinCd, memo string) error {
	form := url.Values{}
	form.Set("userId", strconv.FormatInt(userID, 10))
	form.Set("isinCd", isinCd)
	form.Set("memo", memo)
	var res envelope
	if err := c.do(ctx, http.MethodPost, "/api/watchlist", nil, form, &res); err != nil {
		return err
	}
	return res.check("/api/watchlist")
}

// RemoveWatchlist は関心種目を1件削除します。
func (c *Client) RemoveWatchlist(ctx context.Context, watchlistID string) error {
	path := "/api/watchlist/" + url.PathEscape(watchlistID)
	var res envelope
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, &res); err != nil {
		return err
	}
	return res.check(path)
}

// WatchlistStatistics は全体統計を取得します。
func (c *Client) WatchlistStatistics(ctx context.Context) (*WatchlistStatistics, error) {
	var res struct {
		envelope
		Statistics *WatchlistStatistics `json:"statistics"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/watchlist/statistics", nil, nil, &res); err != nil {
		return nil, err
	}
	if err := res.check("/api/watchlist/statistics"); err != nil {
		return nil, err
	}
	if res.Statistics == nil {
		return nil, &APIError{Endpoint: "/api/watchlist/statistics", Message: res.Message}
	}
	return res.Statistics, nil
}

// PopularFunds は関心登録数の多いETFを取得します。
// このエンドポイントはエンベロープなしの素の配列を返します。
func (c *Client) PopularFunds(ctx context.Context, limit int) ([]PopularFund, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	var res []PopularFund
	if err := c.do(ctx, http.MethodGet, "/api/watchlist/popular", q, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

package etfapi

// Fund は上流APIが返すETF 1銘柄分の表示用レコードです。
// 数値フィールドはすべて欠損し得るため、ポインタで保持します。
// 欠損値は描画側でプレースホルダに変換され、0として扱われることはありません。
type Fund struct {
	IsinCd              string   `json:"isinCd"`
	SrtnCd              string   `json:"srtnCd"`
	ItmsNm              string   `json:"itmsNm"`
	Category            string   `json:"category"`
	BaseDate            string   `json:"baseDate"`
	BaseIndexName       string   `json:"baseIndexName"`
	PriceDirection      string   `json:"priceDirection"`
	ClosePrice          *float64 `json:"closePrice"`
	FltRt               *float64 `json:"fltRt"`
	Vs                  *float64 `json:"vs"`
	Nav                 *float64 `json:"nav"`
	OpenPrice           *float64 `json:"openPrice"`
	HighPrice           *float64 `json:"highPrice"`
	LowPrice            *float64 `json:"lowPrice"`
	TradeVolume         *int64   `json:"tradeVolume"`
	TradePrice          *float64 `json:"tradePrice"`
	MarketTotalAmt      *float64 `json:"marketTotalAmt"`
	NetAssetTotalAmt    *float64 `json:"netAssetTotalAmt"`
	BaseIndexClosePrice *float64 `json:"baseIndexClosePrice"`
	StLstgCnt           *int64   `json:"stLstgCnt"`
}

// 上流APIのpriceDirectionが取る値。
const (
	DirectionUp   = "상승"
	DirectionDown = "하락"
	DirectionFlat = "보합"
)

// MarketStats はダッシュボードの市場統計です。
type MarketStats struct {
	TotalCount   int `json:"totalCount"`
	RisingCount  int `json:"risingCount"`
	FallingCount int `json:"fallingCount"`
	StableCount  int `json:"stableCount"`
}

// DashboardSummary は /api/dashboard のペイロードです。
type DashboardSummary struct {
	MarketStats      *MarketStats `json:"marketStats"`
	TopGainers       []Fund       `json:"topGainers"`
	MostTradedVolume []Fund       `json:"mostTradedVolume"`
}

// RankingResult は /api/rankings のペイロードです。
// Data の並びはサーバが決めたランキング順であり、呼び出し側は並べ替えてはいけません。
type RankingResult struct {
	Title string `json:"title"`
	Count int    `json:"count"`
	Data  []Fund `json:"data"`
}

// SearchResult は /api/search のペイロードです。
type SearchResult struct {
	Keyword string
	Count   int    `json:"count"`
	Data    []Fund `json:"data"`
}

// MoreResultsThreshold 以上の件数は「表示されていない結果がまだある」ことを示します。
const MoreResultsThreshold = 20

// ThemeList は /api/themes のペイロードです。
type ThemeList struct {
	ThemeCounts    map[string]int    `json:"themeCounts"`
	CategoryGroups map[string][]Fund `json:"categoryGroups"`
}

// ThemeDetail は /api/themes/{theme} のペイロードです。
type ThemeDetail struct {
	Theme string `json:"theme"`
	Count int    `json:"count"`
	Data  []Fund `json:"data"`
}

// User は上流APIのユーザープロフィールです。
type User struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	WatchListCount int    `json:"watchListCount"`
}

// WatchlistEntry は関心種目1件です。EtfInfo は includeEtfInfo=true 指定時の結合結果で、
// 解決できなかった場合はnilのまま返ります（エントリ自体は落とされません）。
type WatchlistEntry struct {
	ID        string `json:"id"`
	UserID    int64  `json:"userId"`
	IsinCd    string `json:"isinCd"`
	Memo      string `json:"memo"`
	CreatedAt string `json:"createdAt"`
	EtfInfo   *Fund  `json:"etfInfo"`
}

// WatchlistStatistics は /api/watchlist/statistics のペイロードです。
type WatchlistStatistics struct {
	TotalUsers      int `json:"totalUsers"`
	TotalEtfs       int `json:"totalEtfs"`
	TotalWatchLists int `json:"totalWatchLists"`
}

// PopularFund は /api/watchlist/popular の1件です。このエンドポイントだけは
// 成功フラグ付きエンベロープではなく素の配列を返します。
type PopularFund struct {
	IsinCd    string `json:"isinCd"`
	EtfName   string `json:"etfName"`
	LikeCount int    `json:"likeCount"`
}

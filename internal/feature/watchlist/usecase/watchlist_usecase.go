// Package usecase はwatchlistフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"

	"etf_platform/internal/platform/etfapi"
	"etf_platform/internal/platform/viewstate"
	"etf_platform/internal/shared/format"
)

// WatchlistAPI は関心種目画面に必要な上流呼び出しを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type WatchlistAPI interface {
	Watchlist(ctx context.Context, userID int64) ([]etfapi.WatchlistEntry, error)
	AddWatchlist(ctx context.Context, userID int64, isinCd, memo string) error
	RemoveWatchlist(ctx context.Context, watchlistID string) error
	WatchlistStatistics(ctx context.Context) (*etfapi.WatchlistStatistics, error)
	PopularFunds(ctx context.Context, limit int) ([]etfapi.PopularFund, error)
	UserInfo(ctx context.Context, userID int64) (*etfapi.User, error)
}

// 操作に対する検証エラー。削除は確認済みフラグなしでは発行されません。
var (
	ErrNotConfirmed = errors.New("removal not confirmed")
	ErrEmptyIsin    = errors.New("isin code is empty")
)

// PopularMemo は人気リストから追加したときに付くメモです。
const PopularMemo = "인기 ETF에서 추가"

// popularLimit は人気リストの取得件数です。
const popularLimit = 5

// Entry は関心種目1件分の表示モデルです。
type Entry struct {
	ID         string
	Isin       string
	Memo       string
	CreatedAt  string
	Name       string
	Code       string
	Price      string
	Rate       string
	RateClass  string
	DetailPath string
	// HasInfo は銘柄情報の結合に成功したことを示します。falseの行は
	// ISINとメモだけで描画されます。
	HasInfo bool
}

// StatsView は利用統計カードの表示モデルです。
type StatsView struct {
	TotalUsers      string
	TotalEtfs       string
	TotalWatchLists string
}

// PopularItem は人気ETF1件分の表示モデルです。
type PopularItem struct {
	Isin       string
	Name       string
	LikeCount  string
	DetailPath string
}

// ProfileView はページ上部に出すユーザー概要です。
type ProfileView struct {
	DisplayName string
	Email       string
	Count       string
}

// Region は独立に状態確定する1領域です。
type Region struct {
	State   viewstate.State
	Message string
	Regions viewstate.Regions
}

// View は関心種目ページ1回分の描画スナップショットです。
// 4領域は並行に取得され、それぞれ独立に状態確定します。
// ある領域の失敗が他の領域の表示を妨げることはありません。
type View struct {
	Entries       []Entry
	EntriesRegion Region

	Stats       *StatsView
	StatsRegion Region

	Popular       []PopularItem
	PopularRegion Region

	Profile       *ProfileView
	ProfileRegion Region
}

// WatchlistUsecase は関心種目のユースケースです。
type WatchlistUsecase struct {
	api WatchlistAPI
}

// NewWatchlistUsecase はWatchlistUsecaseの新しいインスタンスを生成します。
func NewWatchlistUsecase(api WatchlistAPI) *WatchlistUsecase {
	return &WatchlistUsecase{api: api}
}

// Overview は4領域を並行に取得します。WaitGroupで全領域の確定を待ってから
// 返すため、部分的に未確定のスナップショットが描画されることはありません。
func (u *WatchlistUsecase) Overview(ctx context.Context, userID int64) *View {
	view := &View{}

	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		entries, err := u.api.Watchlist(ctx, userID)
		if err == nil {
			view.Entries = entryModels(entries)
		}
		view.EntriesRegion = classify(len(entries), err)
	}()

	go func() {
		defer wg.Done()
		stats, err := u.api.WatchlistStatistics(ctx)
		count := 0
		if err == nil && stats != nil {
			count = 1
			view.Stats = &StatsView{
				TotalUsers:      format.Count(stats.TotalUsers),
				TotalEtfs:       format.Count(stats.TotalEtfs),
				TotalWatchLists: format.Count(stats.TotalWatchLists),
			}
		}
		view.StatsRegion = classify(count, err)
	}()

	go func() {
		defer wg.Done()
		popular, err := u.api.PopularFunds(ctx, popularLimit)
		if err == nil {
			view.Popular = popularModels(popular)
		}
		view.PopularRegion = classify(len(popular), err)
	}()

	go func() {
		defer wg.Done()
		user, err := u.api.UserInfo(ctx, userID)
		count := 0
		if err == nil && user != nil {
			count = 1
			view.Profile = profileModel(user)
		}
		view.ProfileRegion = classify(count, err)
	}()

	wg.Wait()
	return view
}

// Add は関心種目を追加します。ISINが空のままでは上流を呼びません。
func (u *WatchlistUsecase) Add(ctx context.Context, userID int64, isinCd, memo string) error {
	isinCd = strings.TrimSpace(isinCd)
	if isinCd == "" {
		return ErrEmptyIsin
	}
	return u.api.AddWatchlist(ctx, userID, isinCd, strings.TrimSpace(memo))
}

// AddPopular は人気リストからの追加です。固定メモが付きます。
func (u *WatchlistUsecase) AddPopular(ctx context.Context, userID int64, isinCd string) error {
	return u.Add(ctx, userID, isinCd, PopularMemo)
}

// Remove は関心種目を削除します。confirmed が false の間は削除APIを
// 一切呼ばず ErrNotConfirmed を返します。確認はネットワークより先です。
func (u *WatchlistUsecase) Remove(ctx context.Context, watchlistID string, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	if strings.TrimSpace(watchlistID) == "" {
		return ErrEmptyIsin
	}
	return u.api.RemoveWatchlist(ctx, watchlistID)
}

func classify(count int, err error) Region {
	ctrl := viewstate.New()
	state, message := ctrl.Classify(count, err)
	return Region{State: state, Message: message, Regions: ctrl.Regions()}
}

func entryModels(entries []etfapi.WatchlistEntry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		m := Entry{
			ID:         e.ID,
			Isin:       e.IsinCd,
			Memo:       e.Memo,
			CreatedAt:  format.Text(e.CreatedAt),
			Name:       e.IsinCd,
			Code:       format.Placeholder,
			Price:      format.Placeholder,
			Rate:       format.Placeholder,
			RateClass:  format.ClassNeutral,
			DetailPath: "/etf/" + url.PathEscape(e.IsinCd),
		}
		if e.EtfInfo != nil {
			m.HasInfo = true
			m.Name = format.Text(e.EtfInfo.ItmsNm)
			m.Code = format.Text(e.EtfInfo.SrtnCd)
			m.Price = format.Won(e.EtfInfo.ClosePrice)
			m.Rate = format.Percent(e.EtfInfo.FltRt)
			m.RateClass = format.SignClass(e.EtfInfo.FltRt)
		}
		out = append(out, m)
	}
	return out
}

func popularModels(funds []etfapi.PopularFund) []PopularItem {
	out := make([]PopularItem, 0, len(funds))
	for _, f := range funds {
		out = append(out, PopularItem{
			Isin:       f.IsinCd,
			Name:       format.Text(f.EtfName),
			LikeCount:  format.Count(f.LikeCount),
			DetailPath: "/etf/" + url.PathEscape(f.IsinCd),
		})
	}
	return out
}

func profileModel(user *etfapi.User) *ProfileView {
	name := user.FullName
	if name == "" {
		name = user.Username
	}
	return &ProfileView{
		DisplayName: name,
		Email:       format.Text(user.Email),
		Count:       format.Count(user.WatchListCount),
	}
}

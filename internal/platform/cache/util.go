package cache

import (
	"time"
)

// TimeUntilNext8AM は次の午前8時（韓国時間）までの期間を返します。
// 上流のETFデータは毎朝8時に前営業日分へ差し替わるため、キャッシュは
// その時点まで有効です。
func TimeUntilNext8AM() time.Duration {
	loc, _ := time.LoadLocation("Asia/Seoul")
	now := time.Now().In(loc)

	next8am := time.Date(now.Year(), now.Month(), now.Day(), 8, 0, 0, 0, loc)
	if now.After(next8am) {
		next8am = next8am.Add(24 * time.Hour)
	}

	return next8am.Sub(now)
}

// Package prefs はユーザーごとの任意キー/値設定を保持する長寿命ストアです。
// 値はスキーマバージョンなしの素のJSONとして保存されます。
package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// ErrNotFound は指定キーの設定が存在しない場合に返されます。
var ErrNotFound = errors.New("preference not found")

// Preference は設定1件のレコードです。
type Preference struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    int64  `gorm:"uniqueIndex:idx_user_key;not null"`
	Key       string `gorm:"size:64;uniqueIndex:idx_user_key;not null"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}

// Store はSQLiteバックエンドの設定ストアです。
type Store struct {
	db *gorm.DB
}

// Open はSQLiteファイルを開き、スキーマを適用してStoreを返します。
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open prefs db: %w", err)
	}
	if err := db.AutoMigrate(&Preference{}); err != nil {
		return nil, fmt.Errorf("failed to migrate prefs db: %w", err)
	}
	return &Store{db: db}, nil
}

// Set は値をJSONにして upsert します。
func (s *Store) Set(ctx context.Context, userID int64, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal preference: %w", err)
	}
	pref := Preference{UserID: userID, Key: key, Value: string(data)}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&pref).Error
}

// Get は保存済みJSONを out にデコードします。
func (s *Store) Get(ctx context.Context, userID int64, key string, out any) error {
	var pref Preference
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND key = ?", userID, key).
		First(&pref).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return json.Unmarshal([]byte(pref.Value), out)
}

// GetString は文字列設定を取得し、なければ fallback を返します。
func (s *Store) GetString(ctx context.Context, userID int64, key, fallback string) string {
	var v string
	if err := s.Get(ctx, userID, key, &v); err != nil {
		return fallback
	}
	return v
}

// Delete は設定を1件削除します。存在しないキーの削除はエラーになりません。
func (s *Store) Delete(ctx context.Context, userID int64, key string) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND key = ?", userID, key).
		Delete(&Preference{}).Error
}

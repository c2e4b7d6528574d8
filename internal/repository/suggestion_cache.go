package repository

import (
	"sync"
	"time"

	"PerfectWalk-App/internal/domain/model"
)

// DefaultSuggestionCacheTTL おすすめスポットキャッシュの有効期限
const DefaultSuggestionCacheTTL = 5 * time.Minute

// suggestionCacheEntry キャッシュエントリ（データと挿入時刻）
type suggestionCacheEntry struct {
	data      []model.Suggestion
	timestamp time.Time
}

// SuggestionCache カテゴリ+丸め座標をキーとするTTL付きインメモリキャッシュ
// 期限切れエントリは次のGet時に遅延削除される（定期的な掃除は行わない）
// テストのために時計を注入できる
type SuggestionCache struct {
	mu      sync.Mutex
	entries map[string]suggestionCacheEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewSuggestionCache デフォルトTTLと実時計でキャッシュを作成
func NewSuggestionCache() *SuggestionCache {
	return NewSuggestionCacheWithClock(DefaultSuggestionCacheTTL, time.Now)
}

// NewSuggestionCacheWithClock TTLと時計を注入してキャッシュを作成
func NewSuggestionCacheWithClock(ttl time.Duration, now func() time.Time) *SuggestionCache {
	return &SuggestionCache{
		entries: make(map[string]suggestionCacheEntry),
		ttl:     ttl,
		now:     now,
	}
}

// Get キーに対応する有効なエントリを取得する（期限切れは削除してnilを返す）
func (c *SuggestionCache) Get(key string) []model.Suggestion {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return nil
	}
	if c.now().Sub(entry.timestamp) >= c.ttl {
		delete(c.entries, key)
		return nil
	}
	return entry.data
}

// Set キーに対してデータを保存する（既存エントリは上書き）
func (c *SuggestionCache) Set(key string, data []model.Suggestion) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = suggestionCacheEntry{
		data:      data,
		timestamp: c.now(),
	}
}

// Clear すべてのエントリを削除する
func (c *SuggestionCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]suggestionCacheEntry)
}

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	interestsKeyPrefix = "prefs:interests:"
	statsKeyPrefix     = "stats:progress:"
)

// Cache 偏好/统计读缓存
// 数据库永远是权威数据源，每次写入偏好后必须失效对应键
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New 创建缓存，rdb 为 nil 时缓存退化为全部未命中
func New(rdb *redis.Client, ttlMinutes int) *Cache {
	ttl := 30 * time.Minute
	if ttlMinutes > 0 {
		ttl = time.Duration(ttlMinutes) * time.Minute
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

// InterestsKey 用户兴趣缓存键
func InterestsKey(userID int64) string {
	return fmt.Sprintf("%s%d", interestsKeyPrefix, userID)
}

// StatsKey 用户进度统计缓存键
func StatsKey(userID int64) string {
	return fmt.Sprintf("%s%d", statsKeyPrefix, userID)
}

// GetJSON 读取缓存，未命中返回 false
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	if c.rdb == nil {
		return false, nil
	}

	val, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		// 缓存内容损坏按未命中处理并清掉
		c.rdb.Del(ctx, key)
		return false, nil
	}

	return true, nil
}

// SetJSON 写入缓存
func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}) error {
	if c.rdb == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.rdb.Set(ctx, key, data, c.ttl).Err()
}

// Invalidate 删除缓存键
func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	if c.rdb == nil || len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	reportCachePrefix = "weave:report:"
	reportCacheTTL    = 5 * time.Minute
)

// reportCache 销售季报表的Redis缓存。
// 缓存失效是尽力而为：Redis不可用时报表直接回源计算。
type reportCache struct {
	rdb *redis.Client
}

func newReportCache(rdb *redis.Client) *reportCache {
	return &reportCache{rdb: rdb}
}

func (c *reportCache) key(campaignID string) string {
	return reportCachePrefix + campaignID
}

// Get 读取缓存的报表，未命中或Redis异常返回false
func (c *reportCache) Get(ctx context.Context, campaignID string, dest interface{}) bool {
	if c.rdb == nil {
		return false
	}
	data, err := c.rdb.Get(ctx, c.key(campaignID)).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

// Set 写入缓存，带TTL兜底
func (c *reportCache) Set(ctx context.Context, campaignID string, value interface{}) {
	if c.rdb == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, c.key(campaignID), data, reportCacheTTL)
}

// Invalidate 失效单个销售季的报表缓存
func (c *reportCache) Invalidate(ctx context.Context, campaignID string) {
	if c.rdb == nil || campaignID == "" {
		return
	}
	c.rdb.Del(ctx, c.key(campaignID))
}

// InvalidateAll 失效所有销售季的报表缓存。
// 入库记录不区分销售季，写入后所有报表的库存列都可能变化。
func (c *reportCache) InvalidateAll(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	iter := c.rdb.Scan(ctx, 0, reportCachePrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if iter.Err() != nil {
		return
	}
	if len(keys) > 0 {
		c.rdb.Del(ctx, keys...)
	}
}

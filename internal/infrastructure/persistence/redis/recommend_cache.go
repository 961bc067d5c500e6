package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/crosssell/internal/domain/recommend"
	apperrors "github.com/xiebiao/crosssell/pkg/errors"
)

// RecommendCache 推荐结果缓存（Redis实现）
// 设计说明：
// 1. 实现domain/recommend/repository.go的Cache端口
// 2. Key设计：{prefix}:{signature}，prefix统一命名空间便于整体清空
// 3. Value是JSON编码的商品ID列表（空列表也是合法值，表示"已解析过，无推荐"）
// 4. redis.Nil转换为(nil, false, nil)：未命中不是错误
type RecommendCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRecommendCache 创建推荐结果缓存
// 注意：返回的是domain层的接口类型，不是具体类型（依赖倒置）
func NewRecommendCache(client *redis.Client, prefix string, ttl time.Duration) recommend.Cache {
	return &RecommendCache{client: client, prefix: prefix, ttl: ttl}
}

// Get 读取缓存的推荐结果
// 返回三元组区分三种情况：命中(ids, true, nil)、未命中(nil, false, nil)、
// 后端故障(nil, false, err)
func (c *RecommendCache) Get(ctx context.Context, key string) ([]uint, bool, error) {
	data, err := c.client.Get(ctx, c.fullKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, apperrors.Wrap(err, "读取推荐缓存失败")
	}

	var ids []uint
	if err := json.Unmarshal(data, &ids); err != nil {
		// 值损坏当作未命中，下次Set会覆盖
		return nil, false, nil
	}
	if ids == nil {
		ids = []uint{}
	}

	return ids, true, nil
}

// Set 写入推荐结果
// TTL只兜底事件丢失的场景，正常失效靠Clear
func (c *RecommendCache) Set(ctx context.Context, key string, productIDs []uint) error {
	data, err := json.Marshal(productIDs)
	if err != nil {
		return apperrors.Wrap(err, "序列化推荐结果失败")
	}

	if err := c.client.Set(ctx, c.fullKey(key), data, c.ttl).Err(); err != nil {
		return apperrors.Wrap(err, "写入推荐缓存失败")
	}

	return nil
}

// Clear 清空整个推荐结果命名空间
// 学习要点：
// 1. SCAN游标迭代，不用KEYS（KEYS会阻塞Redis，生产禁用）
// 2. UNLINK异步删除，不阻塞主线程（DEL是同步的）
// 3. 批量攒够一批再删，减少网络往返
func (c *RecommendCache) Clear(ctx context.Context) error {
	pattern := c.prefix + ":*"
	var cursor uint64
	batch := make([]string, 0, 100)

	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return apperrors.Wrap(err, "扫描推荐缓存键失败")
		}

		batch = append(batch, keys...)
		if len(batch) >= 100 {
			if err := c.client.Unlink(ctx, batch...).Err(); err != nil {
				return apperrors.Wrap(err, "删除推荐缓存键失败")
			}
			batch = batch[:0]
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	if len(batch) > 0 {
		if err := c.client.Unlink(ctx, batch...).Err(); err != nil {
			return apperrors.Wrap(err, "删除推荐缓存键失败")
		}
	}

	return nil
}

func (c *RecommendCache) fullKey(key string) string {
	return fmt.Sprintf("%s:%s", c.prefix, key)
}

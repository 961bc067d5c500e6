package eventbus

import (
	"context"
	"encoding/json"
	"log"
	"sync/atomic"

	"github.com/xiebiao/crosssell/internal/domain/recommend"
	"github.com/xiebiao/crosssell/pkg/metrics"
	"github.com/xiebiao/crosssell/pkg/mq"
)

// 目录变更事件的路由键
const (
	RoutingKeyProductUpdated = "product.updated"
	RoutingKeyProductDeleted = "product.deleted"
)

// productEvent 目录变更事件载荷
// 失效动作是全量清空,载荷内容只用于日志
type productEvent struct {
	ProductID uint `json:"product_id"`
	StoreID   uint `json:"store_id"`
}

// Invalidator 事件驱动的缓存失效器
// 设计说明:
// 1. 订阅product.*路由键:任何目录变更都整体清空推荐缓存
//    (共同购买关系是跨商品的,单商品变更可能影响任意结果,逐键失效不可行)
// 2. 失效是幂等的:清空已空的缓存无副作用,事件重复投递无害
// 3. 批量导入抑制:Suppress()后事件只计数不清缓存,Resume()收尾清一次,
//    万条商品导入只产生1次清空而不是1万次
// 4. 抑制标志用atomic.Bool:HTTP管理接口和消费者goroutine并发访问
type Invalidator struct {
	resolver   recommend.Service
	queue      string
	suppressed atomic.Bool
}

// NewInvalidator 创建缓存失效器
func NewInvalidator(resolver recommend.Service, queue string) *Invalidator {
	return &Invalidator{resolver: resolver, queue: queue}
}

// Run 启动消费循环(阻塞,通常在独立goroutine中运行)
func (i *Invalidator) Run(ctx context.Context, consumer *mq.Consumer) error {
	return consumer.Consume(ctx, i.handle)
}

// handle 处理一条目录变更事件
// 注意:返回错误会导致消息重新入队,所以只有失效动作本身失败才返回错误,
// 载荷解析失败只记日志(老版本生产者的未知字段不应卡死队列)
func (i *Invalidator) handle(routingKey string, body []byte) error {
	var event productEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.Printf("⚠️  事件载荷解析失败: RoutingKey=%s, err=%v", routingKey, err)
	}

	// 批量导入期间:只计数,不清缓存
	if i.suppressed.Load() {
		metrics.IncCounter(metrics.InvalidationsSuppressedTotal)
		metrics.IncCounterVec(metrics.MessagesConsumedTotal, map[string]string{
			"queue": i.queue, "result": "success",
		})
		log.Printf("⏸ 失效已抑制(批量导入中): RoutingKey=%s, ProductID=%d", routingKey, event.ProductID)
		return nil
	}

	if err := i.resolver.Invalidate(context.Background()); err != nil {
		metrics.IncCounterVec(metrics.MessagesConsumedTotal, map[string]string{
			"queue": i.queue, "result": "failure",
		})
		return err
	}

	metrics.IncCounterVec(metrics.InvalidationsTotal, map[string]string{"source": "event"})
	metrics.IncCounterVec(metrics.MessagesConsumedTotal, map[string]string{
		"queue": i.queue, "result": "success",
	})
	log.Printf("✓ 推荐缓存已失效: RoutingKey=%s, ProductID=%d", routingKey, event.ProductID)
	return nil
}

// Suppress 开启失效抑制(批量导入开始)
func (i *Invalidator) Suppress() {
	i.suppressed.Store(true)
	log.Println("⏸ 缓存失效已抑制")
}

// Resume 关闭失效抑制并清空一次缓存(批量导入结束)
func (i *Invalidator) Resume(ctx context.Context) error {
	i.suppressed.Store(false)

	if err := i.resolver.Invalidate(ctx); err != nil {
		return err
	}
	metrics.IncCounterVec(metrics.InvalidationsTotal, map[string]string{"source": "event"})
	log.Println("▶ 缓存失效已恢复, 推荐缓存已清空")
	return nil
}

// Suppressed 当前是否处于抑制状态
func (i *Invalidator) Suppressed() bool {
	return i.suppressed.Load()
}

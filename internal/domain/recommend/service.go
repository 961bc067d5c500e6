package recommend

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	apperrors "github.com/xiebiao/crosssell/pkg/errors"
	"github.com/xiebiao/crosssell/pkg/metrics"
)

// Service 推荐解析领域服务接口
type Service interface {
	// Resolve 解析一次推荐请求,返回可展示的推荐商品ID列表
	// 结果长度不超过数量上限;输入为空时直接返回空列表,不触碰任何数据源
	Resolve(ctx context.Context, input InputSet, scope Scope) ([]uint, error)
	// Invalidate 清空全部已缓存的推荐结果
	Invalidate(ctx context.Context) error
}

// Options 解析器配置
type Options struct {
	// MaxRecommendations 单次推荐数量上限(Scope未指定时的默认值)
	MaxRecommendations int
	// OrderScanLimit 共同购买反查时扫描的近期订单数上限
	// 上限让解析代价与历史订单总量解耦:热门商品出现在几十万订单里时,
	// 只看最近的一批就足够了
	OrderScanLimit int
}

// service 推荐解析服务实现
// 设计说明:
// 1. 解析流水线:缓存查找 → 订单反查 → 可见性过滤 → 均匀抽样 → 回填缓存
// 2. 缓存故障永不冒泡:Get失败当作未命中,Set失败只记指标,
//    缓存层宕机时解析照常工作,只是变慢
// 3. singleflight合并并发的同key解析:缓存失效后的请求尖峰只产生一次查库
type service struct {
	orders  OrderReader
	cache   Cache
	policy  Policy
	sampler *Sampler
	group   singleflight.Group
	opts    Options
}

// NewService 创建推荐解析服务
func NewService(orders OrderReader, cache Cache, policy Policy, sampler *Sampler, opts Options) Service {
	return &service{
		orders:  orders,
		cache:   cache,
		policy:  policy,
		sampler: sampler,
		opts:    opts,
	}
}

// Resolve 解析推荐
func (s *service) Resolve(ctx context.Context, input InputSet, scope Scope) ([]uint, error) {
	// 1. 空输入:约定返回空列表,不查库也不占缓存
	if input.Empty() {
		return []uint{}, nil
	}

	// 2. 数量上限:请求级覆盖优先,否则用配置默认值
	max := scope.MaxRecommendations
	if max <= 0 {
		max = s.opts.MaxRecommendations
	}

	// 3. 缓存查找(故障降级为未命中)
	key := input.Signature(scope, max)
	if cached, ok, err := s.cache.Get(ctx, key); err != nil {
		metrics.IncCounterVec(metrics.CacheErrorsTotal, map[string]string{"op": "get"})
	} else if ok {
		metrics.IncCounterVec(metrics.ResolutionsTotal, map[string]string{"result": "hit"})
		return cached, nil
	}

	// 4. singleflight:并发miss同一个key时只解析一次,其余等待共享结果
	v, err, shared := s.group.Do(key, func() (interface{}, error) {
		return s.resolve(ctx, input, scope, key, max)
	})
	if shared {
		metrics.IncCounter(metrics.ResolutionSharedTotal)
	}
	if err != nil {
		metrics.IncCounterVec(metrics.ResolutionsTotal, map[string]string{"result": "unavailable"})
		return nil, err
	}

	ids := v.([]uint)
	if len(ids) == 0 {
		metrics.IncCounterVec(metrics.ResolutionsTotal, map[string]string{"result": "empty"})
	} else {
		metrics.IncCounterVec(metrics.ResolutionsTotal, map[string]string{"result": "miss"})
	}
	return ids, nil
}

// resolve 缓存未命中时的完整解析
func (s *service) resolve(ctx context.Context, input InputSet, scope Scope, key string, max int) ([]uint, error) {
	start := time.Now()
	defer func() {
		metrics.ObserveHistogram(metrics.ResolutionDuration, time.Since(start).Seconds())
	}()

	// 1. 找出包含任一输入商品的近期有效订单
	orderIDs, err := s.orders.FindRecentOrderIDs(ctx, input.IDs(), scope.StoreID, s.opts.OrderScanLimit)
	if err != nil {
		return nil, apperrors.WrapWithCode(err, apperrors.ErrCodeDataUnavailable, "查询共同购买订单失败")
	}
	if len(orderIDs) == 0 {
		// 没有共同购买记录,空结果也写缓存,避免反复查库
		s.store(ctx, key, []uint{})
		return []uint{}, nil
	}

	// 2. 取出这些订单中的其他商品(已排除输入集合、已去重)
	candidates, err := s.orders.FindCoPurchasedCandidates(ctx, orderIDs, input.IDs())
	if err != nil {
		return nil, apperrors.WrapWithCode(err, apperrors.ErrCodeDataUnavailable, "查询候选商品失败")
	}

	// 3. 可见性过滤
	eligible := s.policy.Filter(candidates, scope)
	ids := make([]uint, 0, len(eligible))
	for _, c := range eligible {
		ids = append(ids, c.ProductID)
	}

	// 4. 均匀抽样到数量上限
	picked := s.sampler.Sample(ids, max)

	// 5. 回填缓存(失败不影响本次结果)
	s.store(ctx, key, picked)
	return picked, nil
}

// store 写缓存,失败只记指标
func (s *service) store(ctx context.Context, key string, ids []uint) {
	if err := s.cache.Set(ctx, key, ids); err != nil {
		metrics.IncCounterVec(metrics.CacheErrorsTotal, map[string]string{"op": "set"})
	}
}

// Invalidate 清空推荐缓存
func (s *service) Invalidate(ctx context.Context) error {
	if err := s.cache.Clear(ctx); err != nil {
		metrics.IncCounterVec(metrics.CacheErrorsTotal, map[string]string{"op": "clear"})
		return apperrors.Wrap(err, "清空推荐缓存失败")
	}
	return nil
}

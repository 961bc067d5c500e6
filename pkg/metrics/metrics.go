// Package metrics 提供基于Prometheus的指标收集框架
//
// 核心概念：
//
// **1. Counter（计数器）**：只增不减的累计值
//   - 示例：推荐解析总数、缓存命中总数、失效总数
//
// **2. Gauge（仪表盘）**：可增可减的瞬时值
//   - 示例：正在处理的HTTP请求数
//
// **3. Histogram（直方图）**：观测值的分布
//   - 示例：推荐解析耗时（自动计算P50、P90、P99）
//
// 使用示例：
//
//	// 1. 初始化Metrics
//	metrics.InitMetrics()
//
//	// 2. 在HTTP服务中暴露/metrics端点
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
//	// 3. 在业务代码中记录指标
//	start := time.Now()
//	list, err := resolver.Resolve(ctx, input, scope)
//	metrics.ObserveHistogram(metrics.ResolutionDuration, time.Since(start).Seconds())
//	metrics.IncCounter(metrics.ResolutionsTotal)
//
// 指标命名规范：
// 1. Counter以`_total`结尾（recommendations_resolved_total）
// 2. Histogram以单位结尾（resolution_duration_seconds）
// 3. 避免高基数标签：不要用product_id做标签，用result/queue等有限值
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initialized 标记是否已初始化（防止重复注册）
	initialized bool

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（/api/v1/recommendations）、status（200/500）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 推荐解析指标

	// ResolutionsTotal 推荐解析总数（Counter）
	// 标签：result（hit/miss/empty/unavailable）
	// - hit: 缓存命中
	// - miss: 缓存未命中，完整执行了解析
	// - empty: 解析结果为空（没有共同购买记录或全部被过滤）
	// - unavailable: 订单数据源不可用，降级为空列表
	ResolutionsTotal *prometheus.CounterVec

	// ResolutionDuration 缓存未命中时的完整解析耗时（Histogram）
	ResolutionDuration prometheus.Histogram

	// ResolutionSharedTotal singleflight合并掉的重复解析数（Counter）
	// 并发miss同一个key时，只有1次真正查库，其余共享结果
	ResolutionSharedTotal prometheus.Counter

	// 缓存失效指标

	// InvalidationsTotal 缓存整体失效总数（Counter）
	// 标签：source（event/settings/manual）
	InvalidationsTotal *prometheus.CounterVec

	// InvalidationsSuppressedTotal 批量导入期间被抑制的失效事件数（Counter）
	InvalidationsSuppressedTotal prometheus.Counter

	// CacheErrorsTotal 缓存后端错误总数（Counter）
	// 标签：op（get/set/clear）
	// 缓存错误从不向上冒泡，只能靠指标发现
	CacheErrorsTotal *prometheus.CounterVec

	// 消息队列指标

	// MessagesPublishedTotal 消息发布总数（Counter）
	// 标签：exchange（交换机）、routing_key（路由键）
	MessagesPublishedTotal *prometheus.CounterVec

	// MessagesConsumedTotal 消息消费总数（Counter）
	// 标签：queue（队列名称）、result（success/failure）
	MessagesConsumedTotal *prometheus.CounterVec
)

// InitMetrics 初始化所有Prometheus指标
//
// 必须在程序启动时调用一次，用于注册所有指标到全局Registry
//
// 设计要点：
// 1. 使用promauto.New*自动注册到默认Registry
// 2. Counter使用*Vec支持标签（多维度统计）
// 3. Histogram的Buckets根据业务场景定制
func InitMetrics() {
	// 防止重复初始化
	if initialized {
		return
	}
	initialized = true

	// HTTP请求指标
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"}, // 标签：方法、路径、状态码
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "HTTP请求耗时（秒）",
			// 桶设置：1ms、10ms、100ms、500ms、1s、5s、10s
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"}, // 标签：方法、路径
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	// 推荐解析指标
	ResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_resolved_total",
			Help: "推荐解析总数",
		},
		[]string{"result"}, // 标签：结果（hit/miss/empty/unavailable）
	)

	ResolutionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "recommendation_resolution_duration_seconds",
			Help: "缓存未命中时的完整解析耗时（秒）",
			// 解析包含两次订单库查询，通常在10ms-500ms之间
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	ResolutionSharedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_resolutions_shared_total",
			Help: "singleflight合并掉的重复解析数",
		},
	)

	// 缓存失效指标
	InvalidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_cache_invalidations_total",
			Help: "推荐缓存整体失效总数",
		},
		[]string{"source"}, // 标签：触发来源（event/settings/manual）
	)

	InvalidationsSuppressedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_cache_invalidations_suppressed_total",
			Help: "批量导入期间被抑制的失效事件数",
		},
	)

	CacheErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_cache_errors_total",
			Help: "缓存后端错误总数",
		},
		[]string{"op"}, // 标签：操作（get/set/clear）
	)

	// 消息队列指标
	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "消息发布总数",
		},
		[]string{"exchange", "routing_key"}, // 标签：交换机、路由键
	)

	MessagesConsumedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_consumed_total",
			Help: "消息消费总数",
		},
		[]string{"queue", "result"}, // 标签：队列名称、结果（success/failure）
	)
}

// IncCounter 递增Counter（便捷函数）
func IncCounter(counter prometheus.Counter) {
	counter.Inc()
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	gauge.Dec()
}

// ObserveHistogram 记录Histogram观测值
func ObserveHistogram(histogram prometheus.Histogram, value float64) {
	histogram.Observe(value)
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}

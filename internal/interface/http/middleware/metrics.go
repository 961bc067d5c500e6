package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/crosssell/pkg/metrics"
)

// Metrics HTTP请求指标中间件
// 设计说明：
// 1. 记录请求总数、耗时分布、正在处理的请求数
// 2. path标签用路由模板（c.FullPath()）而不是真实URL，
//    避免/api/v1/products/123这类路径撑爆标签基数
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		metrics.IncGauge(metrics.HTTPRequestsInProgress)

		c.Next()

		metrics.DecGauge(metrics.HTTPRequestsInProgress)

		// 未匹配任何路由时FullPath为空（404请求），归入unknown
		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}

		metrics.IncCounterVec(metrics.HTTPRequestsTotal, map[string]string{
			"method": c.Request.Method,
			"path":   path,
			"status": strconv.Itoa(c.Writer.Status()),
		})
		metrics.ObserveHistogramVec(metrics.HTTPRequestDuration, map[string]string{
			"method": c.Request.Method,
			"path":   path,
		}, time.Since(start).Seconds())
	}
}

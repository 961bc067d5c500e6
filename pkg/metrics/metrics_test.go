package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// TestInitMetrics 测试指标初始化
func TestInitMetrics(t *testing.T) {
	// 初始化指标
	InitMetrics()

	// 验证所有指标已创建
	if HTTPRequestsTotal == nil {
		t.Error("HTTPRequestsTotal未初始化")
	}
	if ResolutionsTotal == nil {
		t.Error("ResolutionsTotal未初始化")
	}
	if ResolutionDuration == nil {
		t.Error("ResolutionDuration未初始化")
	}
	if InvalidationsTotal == nil {
		t.Error("InvalidationsTotal未初始化")
	}
	if CacheErrorsTotal == nil {
		t.Error("CacheErrorsTotal未初始化")
	}

	t.Log("✅ 所有指标初始化成功")
}

// TestCounter 测试Counter指标
func TestCounter(t *testing.T) {
	InitMetrics()

	// 初始值应为0
	initialValue := getCounterValue(t, InvalidationsSuppressedTotal)
	if initialValue != 0 {
		t.Errorf("Counter初始值错误: expected=0, got=%f", initialValue)
	}

	// 递增3次
	IncCounter(InvalidationsSuppressedTotal)
	IncCounter(InvalidationsSuppressedTotal)
	IncCounter(InvalidationsSuppressedTotal)

	// 验证值为3
	value := getCounterValue(t, InvalidationsSuppressedTotal)
	if value != 3 {
		t.Errorf("Counter值错误: expected=3, got=%f", value)
	}

	t.Log("✅ Counter测试通过")
}

// TestCounterVec 测试CounterVec指标
func TestCounterVec(t *testing.T) {
	InitMetrics()

	// 递增不同标签的Counter
	IncCounterVec(ResolutionsTotal, map[string]string{"result": "hit"})
	IncCounterVec(ResolutionsTotal, map[string]string{"result": "miss"})
	IncCounterVec(ResolutionsTotal, map[string]string{"result": "hit"})

	// 验证hit的计数为2
	value := getCounterVecValue(t, ResolutionsTotal, map[string]string{"result": "hit"})
	if value != 2 {
		t.Errorf("CounterVec值错误: expected=2, got=%f", value)
	}

	t.Log("✅ CounterVec测试通过")
}

// TestGauge 测试Gauge指标
func TestGauge(t *testing.T) {
	InitMetrics()

	// 初始值应为0
	initialValue := getGaugeValue(t, HTTPRequestsInProgress)
	if initialValue != 0 {
		t.Errorf("Gauge初始值错误: expected=0, got=%f", initialValue)
	}

	// 递增
	IncGauge(HTTPRequestsInProgress)
	IncGauge(HTTPRequestsInProgress)
	value := getGaugeValue(t, HTTPRequestsInProgress)
	if value != 2 {
		t.Errorf("Gauge递增后值错误: expected=2, got=%f", value)
	}

	// 递减
	DecGauge(HTTPRequestsInProgress)
	DecGauge(HTTPRequestsInProgress)
	value = getGaugeValue(t, HTTPRequestsInProgress)
	if value != 0 {
		t.Errorf("Gauge递减后值错误: expected=0, got=%f", value)
	}

	t.Log("✅ Gauge测试通过")
}

// TestHistogram 测试Histogram指标
func TestHistogram(t *testing.T) {
	InitMetrics()

	// 记录多个观测值
	ObserveHistogram(ResolutionDuration, 0.01) // 10ms
	ObserveHistogram(ResolutionDuration, 0.05) // 50ms
	ObserveHistogram(ResolutionDuration, 0.1)  // 100ms
	ObserveHistogram(ResolutionDuration, 0.5)  // 500ms

	// 验证观测次数
	count := getHistogramCount(t, ResolutionDuration)
	if count != 4 {
		t.Errorf("Histogram观测次数错误: expected=4, got=%d", count)
	}

	// 验证总和
	sum := getHistogramSum(t, ResolutionDuration)
	expectedSum := 0.01 + 0.05 + 0.1 + 0.5
	if sum != expectedSum {
		t.Errorf("Histogram总和错误: expected=%f, got=%f", expectedSum, sum)
	}

	t.Logf("✅ Histogram测试通过, 观测次数=%d, 总和=%f", count, sum)
}

// TestRealWorldScenario 真实场景：模拟一批推荐请求
func TestRealWorldScenario(t *testing.T) {
	InitMetrics()

	// 模拟10个推荐请求：3次命中，7次未命中
	for i := 0; i < 10; i++ {
		IncGauge(HTTPRequestsInProgress)

		if i < 3 {
			IncCounterVec(ResolutionsTotal, map[string]string{"result": "hit"})
		} else {
			start := time.Now()
			time.Sleep(time.Millisecond)
			IncCounterVec(ResolutionsTotal, map[string]string{"result": "miss"})
			ObserveHistogram(ResolutionDuration, time.Since(start).Seconds())
		}

		DecGauge(HTTPRequestsInProgress)
	}

	// 验证正在处理的请求数（应为0）
	inProgress := getGaugeValue(t, HTTPRequestsInProgress)
	if inProgress != 0 {
		t.Errorf("正在处理的请求数错误: expected=0, got=%f", inProgress)
	}

	t.Log("✅ 真实场景测试通过")
}

// 辅助函数：获取Counter值
func getCounterValue(t *testing.T, counter prometheus.Counter) float64 {
	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("读取Counter值失败: %v", err)
	}
	return metric.Counter.GetValue()
}

// 辅助函数：获取CounterVec值
func getCounterVecValue(t *testing.T, counterVec *prometheus.CounterVec, labels map[string]string) float64 {
	var metric dto.Metric
	counter := counterVec.With(labels)
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("读取CounterVec值失败: %v", err)
	}
	return metric.Counter.GetValue()
}

// 辅助函数：获取Gauge值
func getGaugeValue(t *testing.T, gauge prometheus.Gauge) float64 {
	var metric dto.Metric
	if err := gauge.Write(&metric); err != nil {
		t.Fatalf("读取Gauge值失败: %v", err)
	}
	return metric.Gauge.GetValue()
}

// 辅助函数：获取Histogram观测次数
func getHistogramCount(t *testing.T, histogram prometheus.Histogram) uint64 {
	var metric dto.Metric
	if err := histogram.Write(&metric); err != nil {
		t.Fatalf("读取Histogram值失败: %v", err)
	}
	return metric.Histogram.GetSampleCount()
}

// 辅助函数：获取Histogram总和
func getHistogramSum(t *testing.T, histogram prometheus.Histogram) float64 {
	var metric dto.Metric
	if err := histogram.Write(&metric); err != nil {
		t.Fatalf("读取Histogram值失败: %v", err)
	}
	return metric.Histogram.GetSampleSum()
}

package eventbus

import (
	"context"
	"testing"

	"github.com/xiebiao/crosssell/internal/domain/recommend"
	"github.com/xiebiao/crosssell/pkg/metrics"
)

func TestMain(m *testing.M) {
	metrics.InitMetrics()
	m.Run()
}

// fakeResolver 只记录Invalidate调用次数
type fakeResolver struct {
	invalidations int
}

func (f *fakeResolver) Resolve(_ context.Context, _ recommend.InputSet, _ recommend.Scope) ([]uint, error) {
	return []uint{}, nil
}

func (f *fakeResolver) Invalidate(_ context.Context) error {
	f.invalidations++
	return nil
}

// TestHandleInvalidates 测试目录变更事件触发缓存失效
func TestHandleInvalidates(t *testing.T) {
	resolver := &fakeResolver{}
	inv := NewInvalidator(resolver, "crosssell.invalidation")

	if err := inv.handle(RoutingKeyProductUpdated, []byte(`{"product_id":1,"store_id":1}`)); err != nil {
		t.Fatalf("处理事件失败: %v", err)
	}
	if resolver.invalidations != 1 {
		t.Errorf("期望失效1次, 实际%d次", resolver.invalidations)
	}

	t.Log("✓ 事件触发缓存失效")
}

// TestHandleBadPayload 测试载荷损坏不卡死队列
func TestHandleBadPayload(t *testing.T) {
	resolver := &fakeResolver{}
	inv := NewInvalidator(resolver, "crosssell.invalidation")

	if err := inv.handle(RoutingKeyProductDeleted, []byte("not-json")); err != nil {
		t.Fatalf("载荷损坏不应返回错误(避免无限重新入队): %v", err)
	}
	if resolver.invalidations != 1 {
		t.Error("载荷损坏仍应执行失效(失效是全量清空,不依赖载荷内容)")
	}

	t.Log("✓ 损坏载荷不阻塞消费")
}

// TestSuppression 测试批量导入期间的失效抑制
func TestSuppression(t *testing.T) {
	resolver := &fakeResolver{}
	inv := NewInvalidator(resolver, "crosssell.invalidation")
	ctx := context.Background()

	inv.Suppress()
	if !inv.Suppressed() {
		t.Fatal("Suppress后应处于抑制状态")
	}

	// 抑制期间事件只计数,不清缓存
	for i := 0; i < 5; i++ {
		if err := inv.handle(RoutingKeyProductUpdated, []byte(`{"product_id":9}`)); err != nil {
			t.Fatalf("处理事件失败: %v", err)
		}
	}
	if resolver.invalidations != 0 {
		t.Errorf("抑制期间不应失效, 实际失效%d次", resolver.invalidations)
	}

	// 恢复时收尾清一次
	if err := inv.Resume(ctx); err != nil {
		t.Fatalf("恢复失败: %v", err)
	}
	if inv.Suppressed() {
		t.Error("Resume后不应再处于抑制状态")
	}
	if resolver.invalidations != 1 {
		t.Errorf("恢复时期望收尾失效1次, 实际%d次", resolver.invalidations)
	}

	t.Log("✓ 批量导入只产生一次失效")
}

package recommend

import (
	"context"

	"github.com/xiebiao/crosssell/internal/domain/recommend"
	"github.com/xiebiao/crosssell/pkg/metrics"
)

// ImportGuard 批量导入期间的失效抑制控制
// 由事件消费侧实现(application层只依赖接口,不依赖MQ细节)
type ImportGuard interface {
	Suppress()
	Resume(ctx context.Context) error
	Suppressed() bool
}

// ClearCacheUseCase 手动清空缓存用例(管理接口)
type ClearCacheUseCase struct {
	resolver recommend.Service
}

// NewClearCacheUseCase 创建手动清空缓存用例
func NewClearCacheUseCase(resolver recommend.Service) *ClearCacheUseCase {
	return &ClearCacheUseCase{resolver: resolver}
}

// Execute 执行手动清空
func (uc *ClearCacheUseCase) Execute(ctx context.Context) error {
	if err := uc.resolver.Invalidate(ctx); err != nil {
		return err
	}
	metrics.IncCounterVec(metrics.InvalidationsTotal, map[string]string{"source": "manual"})
	return nil
}

// BeginImportUseCase 批量导入开始用例
// 开启失效抑制:导入期间的目录变更事件只计数,不逐条清缓存
type BeginImportUseCase struct {
	guard ImportGuard
}

// NewBeginImportUseCase 创建批量导入开始用例
func NewBeginImportUseCase(guard ImportGuard) *BeginImportUseCase {
	return &BeginImportUseCase{guard: guard}
}

// Execute 执行导入开始
func (uc *BeginImportUseCase) Execute(_ context.Context) {
	uc.guard.Suppress()
}

// EndImportUseCase 批量导入结束用例
// 关闭失效抑制并收尾清空一次缓存
type EndImportUseCase struct {
	guard ImportGuard
}

// NewEndImportUseCase 创建批量导入结束用例
func NewEndImportUseCase(guard ImportGuard) *EndImportUseCase {
	return &EndImportUseCase{guard: guard}
}

// Execute 执行导入结束
func (uc *EndImportUseCase) Execute(ctx context.Context) error {
	return uc.guard.Resume(ctx)
}

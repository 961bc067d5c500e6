package recommend

import (
	"context"

	"github.com/xiebiao/crosssell/internal/domain/recommend"
	apperrors "github.com/xiebiao/crosssell/pkg/errors"
	"github.com/xiebiao/crosssell/pkg/metrics"
)

// 数量上限的合法区间
// 上限50:推荐列表是页面组件,不是搜索结果,没有展示几十个的场景
const (
	minRecommendations = 1
	maxRecommendations = 50
)

// GetSettingsUseCase 设置查询用例
type GetSettingsUseCase struct {
	settings recommend.SettingsStore
}

// NewGetSettingsUseCase 创建设置查询用例
func NewGetSettingsUseCase(settings recommend.SettingsStore) *GetSettingsUseCase {
	return &GetSettingsUseCase{settings: settings}
}

// SettingsResponse 设置DTO
type SettingsResponse struct {
	MaxRecommendations int  `json:"max_recommendations"`
	ShowPrice          bool `json:"show_price"`
}

// Execute 执行设置查询用例
func (uc *GetSettingsUseCase) Execute(ctx context.Context) (*SettingsResponse, error) {
	settings, err := uc.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	return &SettingsResponse{
		MaxRecommendations: settings.MaxRecommendations,
		ShowPrice:          settings.ShowPrice,
	}, nil
}

// UpdateSettingsUseCase 设置更新用例
// 设计说明:
// 1. 校验 → 持久化 → 清空结果缓存,三步顺序不能变:
//    先清缓存再写设置会留下用旧设置算出的新缓存
// 2. 清缓存失败不回滚设置:签名含数量上限,旧缓存不会被新请求命中,
//    残留的键等TTL回收即可
type UpdateSettingsUseCase struct {
	settings recommend.SettingsStore
	resolver recommend.Service
}

// NewUpdateSettingsUseCase 创建设置更新用例
func NewUpdateSettingsUseCase(settings recommend.SettingsStore, resolver recommend.Service) *UpdateSettingsUseCase {
	return &UpdateSettingsUseCase{settings: settings, resolver: resolver}
}

// UpdateSettingsRequest 设置更新请求DTO
type UpdateSettingsRequest struct {
	MaxRecommendations int  // 单次推荐数量上限
	ShowPrice          bool // 推荐列表是否展示价格
}

// Execute 执行设置更新用例
func (uc *UpdateSettingsUseCase) Execute(ctx context.Context, req UpdateSettingsRequest) (*SettingsResponse, error) {
	// 1. 校验
	if req.MaxRecommendations < minRecommendations || req.MaxRecommendations > maxRecommendations {
		return nil, apperrors.New(apperrors.ErrCodeInvalidConfig, "推荐数量上限必须在1-50之间")
	}

	// 2. 持久化
	settings := recommend.Settings{
		MaxRecommendations: req.MaxRecommendations,
		ShowPrice:          req.ShowPrice,
	}
	if err := uc.settings.Update(ctx, settings); err != nil {
		return nil, err
	}

	// 3. 清空结果缓存(设置变了,已缓存的结果全部过时)
	if err := uc.resolver.Invalidate(ctx); err != nil {
		return nil, err
	}
	metrics.IncCounterVec(metrics.InvalidationsTotal, map[string]string{"source": "settings"})

	return &SettingsResponse{
		MaxRecommendations: settings.MaxRecommendations,
		ShowPrice:          settings.ShowPrice,
	}, nil
}

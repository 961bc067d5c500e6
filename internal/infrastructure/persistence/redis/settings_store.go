package redis

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/crosssell/internal/domain/recommend"
	apperrors "github.com/xiebiao/crosssell/pkg/errors"
)

// settingsKey 运行时设置的Redis Hash键
const settingsKey = "crosssell:settings"

// SettingsStore 运行时设置存储（Redis实现）
// 设计说明：
// 1. 用Hash存储多个设置字段，HGetAll一次取回
// 2. 字段缺失时回退到配置文件的默认值（首次启动时Redis是空的）
// 3. 设置不设TTL：管理员改过的值要一直生效
type SettingsStore struct {
	client   *redis.Client
	defaults recommend.Settings
}

// NewSettingsStore 创建设置存储
// 注意：返回的是domain层的接口类型，不是具体类型（依赖倒置）
func NewSettingsStore(client *redis.Client, defaults recommend.Settings) recommend.SettingsStore {
	return &SettingsStore{client: client, defaults: defaults}
}

// Get 读取运行时设置（缺失字段回退默认值）
func (s *SettingsStore) Get(ctx context.Context) (recommend.Settings, error) {
	fields, err := s.client.HGetAll(ctx, settingsKey).Result()
	if err != nil {
		return recommend.Settings{}, apperrors.Wrap(err, "读取推荐设置失败")
	}

	settings := s.defaults
	if v, ok := fields["max_recommendations"]; ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			settings.MaxRecommendations = n
		}
	}
	if v, ok := fields["show_price"]; ok {
		if b, err := strconv.ParseBool(v); err == nil {
			settings.ShowPrice = b
		}
	}

	return settings, nil
}

// Update 写入运行时设置
func (s *SettingsStore) Update(ctx context.Context, settings recommend.Settings) error {
	err := s.client.HSet(ctx, settingsKey,
		"max_recommendations", strconv.Itoa(settings.MaxRecommendations),
		"show_price", strconv.FormatBool(settings.ShowPrice),
	).Err()
	if err != nil {
		return apperrors.Wrap(err, "保存推荐设置失败")
	}

	return nil
}

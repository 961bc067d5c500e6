package recommend

import "context"

// Settings 推荐引擎的运行时设置
// 设计说明:
// 1. 配置文件里的值是启动默认值,这里是管理接口可在线修改的部分
// 2. MaxRecommendations改变时整个缓存命名空间失效(签名含数量上限,
//    旧缓存自然不会再命中,失效只是提前回收)
type Settings struct {
	// MaxRecommendations 单次推荐数量上限
	MaxRecommendations int `json:"max_recommendations"`
	// ShowPrice 推荐列表是否展示价格
	ShowPrice bool `json:"show_price"`
}

// SettingsStore 运行时设置存储端口
type SettingsStore interface {
	Get(ctx context.Context) (Settings, error)
	Update(ctx context.Context, s Settings) error
}

//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 教学说明：
// 1. Wire是Google开发的编译期依赖注入工具
// 2. 与运行时反射注入（如Spring的@Autowired）不同，Wire在编译期生成代码
// 3. 优势：零运行时开销、类型安全、编译期检测循环依赖
//
// Wire工作流程：
// Step 1: 编写wire.go（本文件），定义Providers和Injector
// Step 2: 运行 `wire gen ./cmd/api`
// Step 3: Wire生成wire_gen.go，包含完整的依赖创建代码
// Step 4: main.go调用wire_gen.go中的InitializeApp()
//
// 核心概念：
// - Provider: 提供依赖的构造函数（如NewProductRepository）
// - Injector: 声明最终要构造的目标类型（如*gin.Engine）
// - wire.Build(): 告诉Wire如何组装依赖链

package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"

	appproduct "github.com/xiebiao/crosssell/internal/application/product"
	apprecommend "github.com/xiebiao/crosssell/internal/application/recommend"
	"github.com/xiebiao/crosssell/internal/domain/product"
	"github.com/xiebiao/crosssell/internal/domain/recommend"
	"github.com/xiebiao/crosssell/internal/infrastructure/config"
	"github.com/xiebiao/crosssell/internal/infrastructure/eventbus"
	"github.com/xiebiao/crosssell/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/crosssell/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/crosssell/internal/interface/http/handler"
	"github.com/xiebiao/crosssell/internal/interface/http/middleware"
	"github.com/xiebiao/crosssell/pkg/jwt"
	"github.com/xiebiao/crosssell/pkg/mq"
)

// ========================================
// Wire Provider Sets (依赖分组)
// ========================================

// infrastructureSet 基础设施层依赖
// 包含：配置加载、数据库连接、Redis连接
var infrastructureSet = wire.NewSet(
	config.Load,     // 加载配置文件
	mysql.NewDB,     // 创建MySQL连接
	redis.NewClient, // 创建Redis连接
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mysql.NewProductRepository, // 商品仓储
	mysql.NewOrderReader,       // 订单只读仓储
	provideRecommendCache,      // 推荐结果缓存
	provideSettingsStore,       // 运行时设置存储
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	product.NewService, // 商品领域服务
	provideResolver,    // 推荐解析服务
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	apprecommend.NewGetRecommendationsUseCase, // 推荐查询用例
	apprecommend.NewGetSettingsUseCase,        // 设置查询用例
	apprecommend.NewUpdateSettingsUseCase,     // 设置更新用例
	apprecommend.NewClearCacheUseCase,         // 手动清缓存用例
	apprecommend.NewBeginImportUseCase,        // 批量导入开始用例
	apprecommend.NewEndImportUseCase,          // 批量导入结束用例
	appproduct.NewCreateProductUseCase,        // 商品创建用例
	appproduct.NewUpdateProductUseCase,        // 商品更新用例
	appproduct.NewDeleteProductUseCase,        // 商品删除用例
)

// eventSet 事件总线依赖
var eventSet = wire.NewSet(
	providePublisher,   // MQ发布端
	provideInvalidator, // 缓存失效器
	wire.Bind(new(appproduct.EventPublisher), new(*mq.Publisher)),
	wire.Bind(new(apprecommend.ImportGuard), new(*eventbus.Invalidator)),
)

// middlewareSet 中间件依赖
var middlewareSet = wire.NewSet(
	provideJWTManager,            // JWT管理器（需要从config提取参数）
	middleware.NewAuthMiddleware, // 认证中间件
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewRecommendHandler, // 推荐处理器
	handler.NewSettingsHandler,  // 设置处理器
	handler.NewAdminHandler,     // 运维处理器
	handler.NewProductHandler,   // 商品处理器
)

// ========================================
// Custom Providers (自定义Provider)
// ========================================
// 有些依赖的构造函数参数不是直接的类型，需要从Config中提取

// provideJWTManager 从配置创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Expire)
}

// provideDefaultSettings 从配置提取运行时设置默认值
func provideDefaultSettings(cfg *config.Config) recommend.Settings {
	return recommend.Settings{
		MaxRecommendations: cfg.Recommend.MaxRecommendations,
		ShowPrice:          cfg.Recommend.ShowPrice,
	}
}

// provideRecommendCache 从Redis客户端创建推荐结果缓存
func provideRecommendCache(client *goredis.Client, cfg *config.Config) recommend.Cache {
	return redis.NewRecommendCache(client, cfg.Recommend.CacheKeyPrefix, cfg.Recommend.CacheTTL)
}

// provideSettingsStore 从Redis客户端创建运行时设置存储
func provideSettingsStore(client *goredis.Client, cfg *config.Config) recommend.SettingsStore {
	return redis.NewSettingsStore(client, provideDefaultSettings(cfg))
}

// provideResolver 组装推荐解析服务
// 采样器用时间种子（测试中注入固定种子获得确定性）
func provideResolver(orders recommend.OrderReader, cache recommend.Cache, cfg *config.Config) recommend.Service {
	return recommend.NewService(
		orders,
		cache,
		recommend.Policy{
			GroupAccessEnabled: cfg.Recommend.GroupAccessEnabled,
			GuestGroupID:       cfg.Recommend.GuestGroupID,
		},
		recommend.NewSampler(time.Now().UnixNano()),
		recommend.Options{
			MaxRecommendations: cfg.Recommend.MaxRecommendations,
			OrderScanLimit:     cfg.Recommend.OrderScanLimit,
		},
	)
}

// providePublisher 创建MQ发布端
func providePublisher(cfg *config.Config) (*mq.Publisher, error) {
	return mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType)
}

// provideInvalidator 创建缓存失效器
func provideInvalidator(resolver recommend.Service, cfg *config.Config) *eventbus.Invalidator {
	return eventbus.NewInvalidator(resolver, cfg.MQ.Queue)
}

// provideGinEngine 创建并配置Gin引擎
// 路由注册与main.go的registerRoutes保持一致
func provideGinEngine(
	cfg *config.Config,
	recommendHandler *handler.RecommendHandler,
	settingsHandler *handler.SettingsHandler,
	adminHandler *handler.AdminHandler,
	productHandler *handler.ProductHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	// 设置运行模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.Metrics())

	// 路由统一在registerRoutes注册（含/swagger/*any，见main.go）
	registerRoutes(r, recommendHandler, settingsHandler, adminHandler, productHandler, authMiddleware)

	return r
}

// ========================================
// Wire Injector (依赖注入器)
// ========================================
//
// 依赖链示例：
// *gin.Engine 需要 → *handler.RecommendHandler
// *handler.RecommendHandler 需要 → *apprecommend.GetRecommendationsUseCase
// *apprecommend.GetRecommendationsUseCase 需要 → recommend.Service
// recommend.Service 需要 → recommend.OrderReader + recommend.Cache
// recommend.OrderReader 需要 → *gorm.DB
// *gorm.DB 需要 → *config.Config

// InitializeApp 初始化整个应用
// 返回：配置好的Gin引擎
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		// 基础设施层
		infrastructureSet,

		// 仓储层
		repositorySet,

		// 领域层
		domainSet,

		// 事件总线
		eventSet,

		// 应用层
		applicationSet,

		// 中间件层
		middlewareSet,

		// 接口层
		handlerSet,

		// 默认设置
		provideDefaultSettings,

		// Gin引擎
		provideGinEngine,
	)

	// 返回值是占位符，实际运行时会被wire_gen.go替代
	return nil, nil
}

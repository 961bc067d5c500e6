package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

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
	"github.com/xiebiao/crosssell/pkg/metrics"
	"github.com/xiebiao/crosssell/pkg/mq"
	"github.com/xiebiao/crosssell/pkg/response"
)

// main 主程序入口
// 说明：手动依赖注入（wire.go中有等价的Wire配置，wire gen后可替换这里的组装代码）
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 数据库: %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	fmt.Printf("  - Redis: %s\n", cfg.Redis.Addr())
	fmt.Printf("  - MQ: %s\n", cfg.MQ.Exchange)

	// 2. 初始化Metrics
	metrics.InitMetrics()

	// 3. 初始化数据库连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	// 4. 初始化Redis连接
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}

	// 5. 初始化消息队列（发布端+消费端）
	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType)
	if err != nil {
		log.Fatalf("初始化MQ发布端失败: %v", err)
	}
	defer publisher.Close()

	consumer, err := mq.NewConsumer(
		cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType, cfg.MQ.Queue,
		[]string{"product.*"}, // 订阅全部目录变更事件
	)
	if err != nil {
		log.Fatalf("初始化MQ消费端失败: %v", err)
	}
	defer consumer.Close()

	// 6. 依赖注入（手动组装）
	// 依赖链：Repository ← Service ← UseCase ← Handler

	// 基础设施层
	productRepo := mysql.NewProductRepository(db)
	orderReader := mysql.NewOrderReader(db)
	recommendCache := redis.NewRecommendCache(redisClient, cfg.Recommend.CacheKeyPrefix, cfg.Recommend.CacheTTL)
	defaultSettings := recommend.Settings{
		MaxRecommendations: cfg.Recommend.MaxRecommendations,
		ShowPrice:          cfg.Recommend.ShowPrice,
	}
	settingsStore := redis.NewSettingsStore(redisClient, defaultSettings)
	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Expire)

	// 领域层
	productService := product.NewService(productRepo)
	resolver := recommend.NewService(
		orderReader,
		recommendCache,
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

	// 事件驱动的缓存失效器
	invalidator := eventbus.NewInvalidator(resolver, cfg.MQ.Queue)

	// 应用层
	getRecommendationsUseCase := apprecommend.NewGetRecommendationsUseCase(resolver, productService, settingsStore, defaultSettings)
	getSettingsUseCase := apprecommend.NewGetSettingsUseCase(settingsStore)
	updateSettingsUseCase := apprecommend.NewUpdateSettingsUseCase(settingsStore, resolver)
	clearCacheUseCase := apprecommend.NewClearCacheUseCase(resolver)
	beginImportUseCase := apprecommend.NewBeginImportUseCase(invalidator)
	endImportUseCase := apprecommend.NewEndImportUseCase(invalidator)
	createProductUseCase := appproduct.NewCreateProductUseCase(productService, publisher)
	updateProductUseCase := appproduct.NewUpdateProductUseCase(productService, publisher)
	deleteProductUseCase := appproduct.NewDeleteProductUseCase(productService, publisher)

	// 接口层
	recommendHandler := handler.NewRecommendHandler(getRecommendationsUseCase)
	settingsHandler := handler.NewSettingsHandler(getSettingsUseCase, updateSettingsUseCase)
	adminHandler := handler.NewAdminHandler(clearCacheUseCase, beginImportUseCase, endImportUseCase, invalidator)
	productHandler := handler.NewProductHandler(createProductUseCase, updateProductUseCase, deleteProductUseCase)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager)

	// 7. 启动事件消费（独立goroutine，随进程退出信号停止）
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := invalidator.Run(ctx, consumer); err != nil {
			log.Printf("❌ 事件消费退出: %v", err)
		}
	}()

	// 8. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.Metrics())

	// 9. 注册路由
	registerRoutes(r, recommendHandler, settingsHandler, adminHandler, productHandler, authMiddleware)

	// 10. 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("\n🚀 服务启动成功！\n")
	fmt.Printf("   访问地址: http://localhost%s\n", addr)
	fmt.Printf("   健康检查: http://localhost%s/ping\n", addr)
	fmt.Printf("   推荐查询: GET http://localhost%s/api/v1/recommendations?product_ids=1,2,3\n", addr)
	fmt.Printf("   API文档: http://localhost%s/swagger/index.html\n", addr)
	fmt.Printf("\n按Ctrl+C停止服务\n\n")

	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务失败: %v", err)
	}
}

// registerRoutes 注册路由
func registerRoutes(
	r *gin.Engine,
	recommendHandler *handler.RecommendHandler,
	settingsHandler *handler.SettingsHandler,
	adminHandler *handler.AdminHandler,
	productHandler *handler.ProductHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档
	// 访问 http://localhost:8080/swagger/index.html 查看API文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API路由组
	v1 := r.Group("/api/v1")
	{
		// 推荐查询（公开接口，店面调用）
		v1.GET("/recommendations", recommendHandler.GetRecommendations)

		// 管理接口（需要管理Token）
		admin := v1.Group("")
		admin.Use(authMiddleware.RequireAdmin())
		{
			// 推荐设置
			admin.GET("/settings", settingsHandler.GetSettings)
			admin.PUT("/settings", settingsHandler.UpdateSettings)

			// 商品维护
			products := admin.Group("/products")
			{
				products.POST("", productHandler.CreateProduct)
				products.PUT("/:id", productHandler.UpdateProduct)
				products.DELETE("/:id", productHandler.DeleteProduct)
			}

			// 运维操作
			ops := admin.Group("/admin")
			{
				ops.POST("/cache/clear", adminHandler.ClearCache)
				ops.POST("/import/begin", adminHandler.BeginImport)
				ops.POST("/import/end", adminHandler.EndImport)
			}
		}
	}
}

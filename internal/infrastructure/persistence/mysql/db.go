package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/crosssell/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	// 1. 构建DSN连接字符串
	dsn := cfg.Database.DSN()

	// 2. 配置GORM日志
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	// 3. 连接数据库
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			// 使用UTC+8时间（配合MySQL的TZ=Asia/Shanghai）
			return time.Now()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 4. 配置连接池
	// 学习要点：合理的连接池配置对性能至关重要
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	// 最大打开连接数（建议：CPU核数 * 2 + 磁盘数量）
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)

	// 最大空闲连接数（建议：MaxOpenConns的1/4到1/2）
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	// 连接最大存活时间（防止数据库主动断开连接）
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// 5. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	// 6. 自动迁移表结构（开发环境）
	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// 学习要点：
// 1. AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
// 2. 生产环境应使用版本化的迁移脚本，不要依赖AutoMigrate
func autoMigrate(db *gorm.DB) error {
	// 定义需要迁移的模型
	// 注意：这里需要使用GORM的模型定义（带tag），不是domain层的实体
	return db.AutoMigrate(
		&ProductModel{},
		&CategoryGroupModel{},
		&OrderModel{},
		&OrderItemModel{},
	)
}

// ProductModel GORM商品模型
// 设计说明:
// 1. 这是infrastructure层的数据模型,包含GORM tag
// 2. domain/product/entity.go是领域实体,不依赖GORM
// 3. Repository负责两者之间的转换
// 4. 价格使用int64存储"分"为单位(避免浮点数精度问题)
// 5. Visibility存枚举字符串(both/catalog/search/none),带索引支持可见性过滤
type ProductModel struct {
	ID                uint           `gorm:"primaryKey"`
	StoreID           uint           `gorm:"index:idx_store_visible;not null;comment:所属店铺ID"`
	Name              string         `gorm:"size:200;not null;comment:商品名称"`
	Reference         string         `gorm:"uniqueIndex;size:64;not null;comment:商品编码"`
	Price             int64          `gorm:"not null;comment:价格(分)"`
	Active            bool           `gorm:"index:idx_store_visible;default:true;comment:是否上架"`
	Visibility        string         `gorm:"index:idx_store_visible;size:10;not null;default:both;comment:可见性(both/catalog/search/none)"`
	DefaultCategoryID uint           `gorm:"index;not null;comment:默认分类ID"`
	CreatedAt         time.Time      `gorm:"comment:创建时间"`
	UpdatedAt         time.Time      `gorm:"comment:更新时间"`
	DeletedAt         gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

// TableName 指定表名
func (ProductModel) TableName() string {
	return "products"
}

// CategoryGroupModel GORM分类-客户组授权模型
// 设计说明:
// 1. 多对多关系表:分类授权给哪些客户组
// 2. 商品的可见性检查走默认分类的授权组(一次JOIN即可拿到)
type CategoryGroupModel struct {
	ID         uint `gorm:"primaryKey"`
	CategoryID uint `gorm:"uniqueIndex:idx_category_group;not null;comment:分类ID"`
	GroupID    uint `gorm:"uniqueIndex:idx_category_group;not null;comment:客户组ID"`
}

// TableName 指定表名
func (CategoryGroupModel) TableName() string {
	return "category_groups"
}

// OrderModel GORM订单模型
// 教学要点:
// 1. 与OrderItemModel是一对多关系
// 2. OrderNo有唯一索引(业务主键)
// 3. Valid标记订单是否计入共同购买统计(已取消/无效订单置false)
type OrderModel struct {
	ID         uint             `gorm:"primaryKey"`
	OrderNo    string           `gorm:"uniqueIndex;size:32;not null;comment:订单号"`
	StoreID    uint             `gorm:"index;not null;comment:下单店铺ID"`
	CustomerID uint             `gorm:"index;not null;comment:买家客户ID"`
	Total      int64            `gorm:"not null;comment:订单总金额(分)"`
	Valid      bool             `gorm:"index;default:true;comment:是否计入统计(取消订单置false)"`
	Items      []OrderItemModel `gorm:"foreignKey:OrderID"` // 一对多关联
	CreatedAt  time.Time        `gorm:"index;comment:创建时间"`
	UpdatedAt  time.Time        `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel GORM订单明细模型
// 教学要点:
// 1. 记录下单时的价格快照(Price字段)
// 2. (OrderID, ProductID)复合索引支撑共同购买反查的两个方向
type OrderItemModel struct {
	ID        uint  `gorm:"primaryKey"`
	OrderID   uint  `gorm:"index:idx_order_product;not null;comment:订单ID"`
	ProductID uint  `gorm:"index:idx_product_order;not null;comment:商品ID"`
	Quantity  int   `gorm:"not null;comment:购买数量"`
	Price     int64 `gorm:"not null;comment:下单时单价(分)"`
}

// TableName 指定表名
func (OrderItemModel) TableName() string {
	return "order_items"
}

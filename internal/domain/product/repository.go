package product

import (
	"context"
)

// Repository 商品仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于Mock测试,不依赖具体数据库实现
type Repository interface {
	// Create 创建商品
	Create(ctx context.Context, p *Product) error

	// FindByID 根据ID查找商品
	FindByID(ctx context.Context, id uint) (*Product, error)

	// FindByIDs 批量查找商品(结果顺序不保证,缺失的ID静默跳过)
	FindByIDs(ctx context.Context, ids []uint) ([]*Product, error)

	// Update 更新商品信息
	Update(ctx context.Context, p *Product) error

	// Delete 删除商品(软删除)
	Delete(ctx context.Context, id uint) error
}

package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/crosssell/internal/domain/product"
	apperrors "github.com/xiebiao/crosssell/pkg/errors"
)

// productRepository 商品仓储实现（MySQL）
// 设计说明：
// 1. 实现domain/product/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定的错误（如编码重复），转换为业务错误
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储
// 注意：返回的是domain层的接口类型，不是具体类型（依赖倒置）
func NewProductRepository(db *gorm.DB) product.Repository {
	return &productRepository{db: db}
}

// Create 创建商品
// 学习要点：
// 1. 编码唯一性由数据库UNIQUE索引保证（而非应用层SELECT再INSERT）
// 2. 捕获MySQL的Duplicate Entry错误，转换为业务错误ErrReferenceDuplicate
func (r *productRepository) Create(ctx context.Context, p *product.Product) error {
	// 1. 领域实体 → GORM模型
	model := toProductModel(p)

	// 2. 插入数据库
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		// MySQL错误码1062: Duplicate entry
		if isDuplicateError(err) {
			return product.ErrReferenceDuplicate
		}
		return apperrors.Wrap(err, "创建商品失败")
	}

	// 3. 回填自增ID（GORM自动填充）
	p.ID = model.ID
	p.CreatedAt = model.CreatedAt
	p.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找商品
func (r *productRepository) FindByID(ctx context.Context, id uint) (*product.Product, error) {
	var model ProductModel
	err := r.db.WithContext(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, product.ErrProductNotFound
		}
		return nil, apperrors.Wrap(err, "查询商品失败")
	}

	return toProductEntity(&model), nil
}

// FindByIDs 批量查找商品
// 学习要点：
// 1. IN查询一次取回全部，避免N+1
// 2. 软删除商品被GORM自动过滤，不存在的ID静默跳过（调用方按需重排）
func (r *productRepository) FindByIDs(ctx context.Context, ids []uint) ([]*product.Product, error) {
	if len(ids) == 0 {
		return []*product.Product{}, nil
	}

	var models []ProductModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "批量查询商品失败")
	}

	products := make([]*product.Product, len(models))
	for i := range models {
		products[i] = toProductEntity(&models[i])
	}
	return products, nil
}

// Update 更新商品信息
func (r *productRepository) Update(ctx context.Context, p *product.Product) error {
	model := toProductModel(p)
	model.ID = p.ID

	// 使用Save更新所有字段
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		if isDuplicateError(err) {
			return product.ErrReferenceDuplicate
		}
		return apperrors.Wrap(err, "更新商品失败")
	}

	p.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除商品（软删除）
// 学习要点：
// 1. GORM的软删除：DELETE操作会自动变成UPDATE deleted_at
// 2. 后续查询会自动过滤deleted_at不为NULL的记录
func (r *productRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&ProductModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除商品失败")
	}

	if result.RowsAffected == 0 {
		return product.ErrProductNotFound
	}

	return nil
}

// =========================================
// 辅助函数：模型转换
// =========================================

// toProductEntity GORM模型 → 领域实体
// 说明：这是Repository的重要职责之一，隔离infrastructure层与domain层
func toProductEntity(model *ProductModel) *product.Product {
	return &product.Product{
		ID:                model.ID,
		StoreID:           model.StoreID,
		Name:              model.Name,
		Reference:         model.Reference,
		Price:             model.Price,
		Active:            model.Active,
		Visibility:        product.Visibility(model.Visibility),
		DefaultCategoryID: model.DefaultCategoryID,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	}
}

// toProductModel 领域实体 → GORM模型
func toProductModel(p *product.Product) *ProductModel {
	return &ProductModel{
		StoreID:           p.StoreID,
		Name:              p.Name,
		Reference:         p.Reference,
		Price:             p.Price,
		Active:            p.Active,
		Visibility:        string(p.Visibility),
		DefaultCategoryID: p.DefaultCategoryID,
	}
}

package product

import (
	"context"
)

// Service 商品领域服务接口
// 设计说明:
// 1. 领域服务封装业务规则校验(价格、可见性、店铺)
// 2. 不依赖具体的Repository实现(依赖倒置)
type Service interface {
	// CreateProduct 创建商品
	// 业务规则:
	// - 价格必须>0
	// - 可见性取值必须合法
	// - 店铺ID必须>0
	CreateProduct(ctx context.Context, storeID uint, name, reference string, price int64, visibility Visibility, defaultCategoryID uint) (*Product, error)

	// GetProductByID 根据ID获取商品
	GetProductByID(ctx context.Context, id uint) (*Product, error)

	// ListByIDs 批量获取商品(展示层按推荐顺序组装,缺失的ID静默跳过)
	ListByIDs(ctx context.Context, ids []uint) ([]*Product, error)

	// UpdateProduct 更新商品信息(名称/货号/价格/可见性/上下架)
	UpdateProduct(ctx context.Context, id uint, name, reference string, price int64, visibility Visibility, active *bool) (*Product, error)

	// DeleteProduct 删除商品
	DeleteProduct(ctx context.Context, id uint) error
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建商品领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreateProduct 创建商品
func (s *service) CreateProduct(ctx context.Context, storeID uint, name, reference string, price int64, visibility Visibility, defaultCategoryID uint) (*Product, error) {
	// 1. 店铺校验
	if storeID == 0 {
		return nil, ErrInvalidStore
	}

	// 2. 价格校验
	if price <= 0 {
		return nil, ErrInvalidPrice
	}

	// 3. 可见性校验
	if !visibility.Valid() {
		return nil, ErrInvalidVisibility
	}

	// 4. 创建商品实体
	p := NewProduct(storeID, name, reference, price, visibility, defaultCategoryID)

	// 5. 持久化
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// GetProductByID 根据ID获取商品
func (s *service) GetProductByID(ctx context.Context, id uint) (*Product, error) {
	return s.repo.FindByID(ctx, id)
}

// ListByIDs 批量获取商品
func (s *service) ListByIDs(ctx context.Context, ids []uint) ([]*Product, error) {
	if len(ids) == 0 {
		return []*Product{}, nil
	}
	return s.repo.FindByIDs(ctx, ids)
}

// UpdateProduct 更新商品信息
func (s *service) UpdateProduct(ctx context.Context, id uint, name, reference string, price int64, visibility Visibility, active *bool) (*Product, error) {
	// 1. 查询商品
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. 更新基本信息(空值表示不修改)
	p.UpdateInfo(name, reference, price)

	// 3. 可见性(空字符串表示不修改)
	if visibility != "" {
		if err := p.ChangeVisibility(visibility); err != nil {
			return nil, err
		}
	}

	// 4. 上下架(nil表示不修改)
	if active != nil {
		if *active {
			p.Activate()
		} else {
			p.Deactivate()
		}
	}

	// 5. 持久化
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// DeleteProduct 删除商品
func (s *service) DeleteProduct(ctx context.Context, id uint) error {
	// 先确认存在,让调用方拿到明确的NotFound
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

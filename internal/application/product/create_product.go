package product

import (
	"context"

	"github.com/xiebiao/crosssell/internal/domain/product"
)

// CreateProductUseCase 商品创建用例
// 设计说明:
// 1. 业务规则校验在domain层(价格、可见性、店铺)
// 2. 创建成功后发布product.updated事件,驱动推荐缓存失效
type CreateProductUseCase struct {
	productService product.Service
	publisher      EventPublisher
}

// NewCreateProductUseCase 创建商品创建用例
func NewCreateProductUseCase(productService product.Service, publisher EventPublisher) *CreateProductUseCase {
	return &CreateProductUseCase{
		productService: productService,
		publisher:      publisher,
	}
}

// CreateProductRequest 商品创建请求DTO
type CreateProductRequest struct {
	StoreID           uint   // 所属店铺ID
	Name              string // 商品名称
	Reference         string // 商品编码(唯一)
	Price             int64  // 价格(分)
	Visibility        string // 可见性(both/catalog/search/none)
	DefaultCategoryID uint   // 默认分类ID
}

// ProductResponse 商品DTO
type ProductResponse struct {
	ID                uint   `json:"id"`
	StoreID           uint   `json:"store_id"`
	Name              string `json:"name"`
	Reference         string `json:"reference"`
	Price             int64  `json:"price"` // 价格(分)
	Active            bool   `json:"active"`
	Visibility        string `json:"visibility"`
	DefaultCategoryID uint   `json:"default_category_id"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`
}

// Execute 执行商品创建用例
func (uc *CreateProductUseCase) Execute(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	// 1. 调用领域服务创建商品
	p, err := uc.productService.CreateProduct(
		ctx,
		req.StoreID,
		req.Name,
		req.Reference,
		req.Price,
		product.Visibility(req.Visibility),
		req.DefaultCategoryID,
	)
	if err != nil {
		return nil, err
	}

	// 2. 发布目录变更事件
	publishEvent(uc.publisher, EventProductUpdated, ProductEvent{
		ProductID: p.ID,
		StoreID:   p.StoreID,
	})

	return toResponse(p), nil
}

// toResponse 领域实体 → 响应DTO
func toResponse(p *product.Product) *ProductResponse {
	return &ProductResponse{
		ID:                p.ID,
		StoreID:           p.StoreID,
		Name:              p.Name,
		Reference:         p.Reference,
		Price:             p.Price,
		Active:            p.Active,
		Visibility:        string(p.Visibility),
		DefaultCategoryID: p.DefaultCategoryID,
		CreatedAt:         p.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:         p.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

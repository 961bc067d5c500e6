package product

import (
	"context"

	"github.com/xiebiao/crosssell/internal/domain/product"
)

// UpdateProductUseCase 商品更新用例
// 更新成功后发布product.updated事件(可见性、上下架的变更都可能影响推荐结果)
type UpdateProductUseCase struct {
	productService product.Service
	publisher      EventPublisher
}

// NewUpdateProductUseCase 创建商品更新用例
func NewUpdateProductUseCase(productService product.Service, publisher EventPublisher) *UpdateProductUseCase {
	return &UpdateProductUseCase{
		productService: productService,
		publisher:      publisher,
	}
}

// UpdateProductRequest 商品更新请求DTO
// 零值语义:空字符串/0表示不修改该字段,Active用指针区分"不改"和"下架"
type UpdateProductRequest struct {
	ID         uint   // 商品ID
	Name       string // 商品名称(空表示不修改)
	Reference  string // 商品编码(空表示不修改)
	Price      int64  // 价格(分,0表示不修改)
	Visibility string // 可见性(空表示不修改)
	Active     *bool  // 上下架(nil表示不修改)
}

// Execute 执行商品更新用例
func (uc *UpdateProductUseCase) Execute(ctx context.Context, req UpdateProductRequest) (*ProductResponse, error) {
	// 1. 调用领域服务更新商品
	p, err := uc.productService.UpdateProduct(
		ctx,
		req.ID,
		req.Name,
		req.Reference,
		req.Price,
		product.Visibility(req.Visibility),
		req.Active,
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

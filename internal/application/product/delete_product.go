package product

import (
	"context"

	"github.com/xiebiao/crosssell/internal/domain/product"
)

// DeleteProductUseCase 商品删除用例
// 删除成功后发布product.deleted事件(已缓存的推荐结果可能包含该商品)
type DeleteProductUseCase struct {
	productService product.Service
	publisher      EventPublisher
}

// NewDeleteProductUseCase 创建商品删除用例
func NewDeleteProductUseCase(productService product.Service, publisher EventPublisher) *DeleteProductUseCase {
	return &DeleteProductUseCase{
		productService: productService,
		publisher:      publisher,
	}
}

// Execute 执行商品删除用例
func (uc *DeleteProductUseCase) Execute(ctx context.Context, id uint) error {
	// 1. 取商品(事件载荷需要store_id,删除后就查不到了)
	p, err := uc.productService.GetProductByID(ctx, id)
	if err != nil {
		return err
	}

	// 2. 调用领域服务删除
	if err := uc.productService.DeleteProduct(ctx, id); err != nil {
		return err
	}

	// 3. 发布目录变更事件
	publishEvent(uc.publisher, EventProductDeleted, ProductEvent{
		ProductID: p.ID,
		StoreID:   p.StoreID,
	})

	return nil
}

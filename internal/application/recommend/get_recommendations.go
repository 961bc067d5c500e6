package recommend

import (
	"context"
	"log"

	"github.com/xiebiao/crosssell/internal/domain/product"
	"github.com/xiebiao/crosssell/internal/domain/recommend"
)

// GetRecommendationsUseCase 推荐查询用例
// 设计说明:
// 1. 编排解析流程:读运行时设置 → 解析推荐ID → 批量取商品详情 → 组装DTO
// 2. 运行时设置读取失败时回退到配置默认值(设置存储和结果缓存共用Redis,
//    Redis故障时两者一起降级,推荐本身仍然可用)
// 3. 商品详情按推荐顺序重排(批量查询不保证顺序)
type GetRecommendationsUseCase struct {
	resolver        recommend.Service
	productService  product.Service
	settings        recommend.SettingsStore
	defaultSettings recommend.Settings
}

// NewGetRecommendationsUseCase 创建推荐查询用例
func NewGetRecommendationsUseCase(
	resolver recommend.Service,
	productService product.Service,
	settings recommend.SettingsStore,
	defaultSettings recommend.Settings,
) *GetRecommendationsUseCase {
	return &GetRecommendationsUseCase{
		resolver:        resolver,
		productService:  productService,
		settings:        settings,
		defaultSettings: defaultSettings,
	}
}

// GetRecommendationsRequest 推荐查询请求DTO
type GetRecommendationsRequest struct {
	ProductIDs []uint // 输入商品集合(购物车内容+正在浏览的商品)
	StoreID    uint   // 店铺范围
	Groups     []uint // 访客所属客户组(空表示未登录)
	Limit      int    // 请求级数量上限(0表示用运行时设置)
}

// RecommendedProduct 推荐商品DTO
type RecommendedProduct struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Reference string `json:"reference"`
	Price     int64  `json:"price"` // 价格(分)
}

// GetRecommendationsResponse 推荐查询响应DTO
type GetRecommendationsResponse struct {
	Products  []RecommendedProduct `json:"products"`
	ShowPrice bool                 `json:"show_price"`
}

// Execute 执行推荐查询用例
func (uc *GetRecommendationsUseCase) Execute(ctx context.Context, req GetRecommendationsRequest) (*GetRecommendationsResponse, error) {
	// 1. 读运行时设置(失败回退默认值)
	settings, err := uc.settings.Get(ctx)
	if err != nil {
		log.Printf("⚠️  读取推荐设置失败, 使用默认值: %v", err)
		settings = uc.defaultSettings
	}

	// 2. 数量上限:请求级覆盖优先
	max := settings.MaxRecommendations
	if req.Limit > 0 && req.Limit < max {
		max = req.Limit
	}

	// 3. 解析推荐商品ID
	input := recommend.NewInputSet(req.ProductIDs)
	scope := recommend.Scope{
		StoreID:            req.StoreID,
		CustomerGroups:     req.Groups,
		MaxRecommendations: max,
	}
	ids, err := uc.resolver.Resolve(ctx, input, scope)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return &GetRecommendationsResponse{
			Products:  []RecommendedProduct{},
			ShowPrice: settings.ShowPrice,
		}, nil
	}

	// 4. 批量取商品详情
	products, err := uc.productService.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	// 5. 按推荐顺序重排并组装DTO
	// 缓存命中返回的ID可能指向刚被删除的商品,详情查不到就跳过
	byID := make(map[uint]*product.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	list := make([]RecommendedProduct, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			continue
		}
		list = append(list, RecommendedProduct{
			ID:        p.ID,
			Name:      p.Name,
			Reference: p.Reference,
			Price:     p.Price,
		})
	}

	return &GetRecommendationsResponse{
		Products:  list,
		ShowPrice: settings.ShowPrice,
	}, nil
}

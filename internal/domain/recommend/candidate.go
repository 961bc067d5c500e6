package recommend

import "github.com/xiebiao/crosssell/internal/domain/product"

// Candidate 共同购买候选商品
// 设计说明:
// 1. 候选由订单数据反查得到,只携带可见性裁决需要的元数据,
//    不是完整的商品实体(展示层需要时再按ID取详情)
// 2. AuthorizedGroupIDs是默认分类上授权的客户组ID列表,
//    空列表表示该分类未配置任何组(策略视为不可见)
type Candidate struct {
	ProductID          uint
	StoreID            uint
	Active             bool
	Visibility         product.Visibility
	DefaultCategoryID  uint
	AuthorizedGroupIDs []uint
}

package recommend

import "context"

// OrderReader 订单数据只读端口
// 设计说明:
// 1. 推荐域只读历史订单,不参与订单写路径,所以单独定义窄接口,
//    不复用订单域的完整Repository
// 2. 两步查询:先找包含输入商品的近期有效订单,再取这些订单里的其他商品,
//    两步都由基础设施层用SQL实现,领域层只看ID
type OrderReader interface {
	// FindRecentOrderIDs 查找包含任一输入商品的近期有效订单ID
	// 按下单时间从新到旧,至多返回limit条
	FindRecentOrderIDs(ctx context.Context, productIDs []uint, storeID uint, limit int) ([]uint, error)
	// FindCoPurchasedCandidates 取出这些订单中除exclude外的去重候选商品
	FindCoPurchasedCandidates(ctx context.Context, orderIDs []uint, exclude []uint) ([]Candidate, error)
}

// Cache 推荐结果缓存端口
// 设计说明:
// 1. Get用(value, ok, err)三元组区分"未命中"和"缓存层故障",
//    解析器对故障降级为未命中,不让缓存拖垮解析
// 2. Clear清空整个推荐结果命名空间(目录数据变更后的失效动作)
type Cache interface {
	Get(ctx context.Context, key string) ([]uint, bool, error)
	Set(ctx context.Context, key string, productIDs []uint) error
	Clear(ctx context.Context) error
}

package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/crosssell/internal/domain/product"
	"github.com/xiebiao/crosssell/internal/domain/recommend"
	apperrors "github.com/xiebiao/crosssell/pkg/errors"
)

// orderReader 订单只读仓储实现（MySQL）
// 设计说明：
// 1. 实现domain/recommend/repository.go的OrderReader端口
// 2. 共同购买反查拆成两条SQL:先定位订单,再取候选商品元数据,
//    两条都走(order_id, product_id)复合索引,避免一条巨型JOIN
// 3. 所有条件都用参数占位符,商品ID列表来自用户输入,不拼接SQL
type orderReader struct {
	db *gorm.DB
}

// NewOrderReader 创建订单只读仓储
func NewOrderReader(db *gorm.DB) recommend.OrderReader {
	return &orderReader{db: db}
}

// FindRecentOrderIDs 查找包含任一输入商品的近期有效订单ID
// 学习要点：
// 1. GROUP BY去重(同一订单含多个输入商品时只算一次),
//    比DISTINCT+ORDER BY更兼容ONLY_FULL_GROUP_BY模式
// 2. LIMIT让扫描代价与订单总量解耦:热门商品出现在几十万订单里时,
//    只取最近的一批
func (r *orderReader) FindRecentOrderIDs(ctx context.Context, productIDs []uint, storeID uint, limit int) ([]uint, error) {
	if len(productIDs) == 0 {
		return []uint{}, nil
	}

	query := r.db.WithContext(ctx).
		Table("orders").
		Select("orders.id").
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Where("order_items.product_id IN ?", productIDs).
		Where("orders.valid = ?", true)

	// storeID为0表示不限店铺
	if storeID != 0 {
		query = query.Where("orders.store_id = ?", storeID)
	}

	var ids []uint
	err := query.
		Group("orders.id").
		Order("MAX(orders.created_at) DESC").
		Limit(limit).
		Scan(&ids).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询共同购买订单失败")
	}

	return ids, nil
}

// candidateRow 候选商品查询的扫描结构
type candidateRow struct {
	ID                uint
	StoreID           uint
	Active            bool
	Visibility        string
	DefaultCategoryID uint
}

// FindCoPurchasedCandidates 取出订单中除exclude外的去重候选商品
// 学习要点：
// 1. 第一条SQL:订单明细JOIN商品表,一次拿到可见性裁决需要的全部元数据
// 2. 第二条SQL:批量取默认分类的授权客户组,按分类ID分组回填
//    (N个候选只产生2条SQL,没有N+1问题)
// 3. 手动过滤软删除:Table()绕过了GORM的模型回调,deleted_at要显式写
func (r *orderReader) FindCoPurchasedCandidates(ctx context.Context, orderIDs []uint, exclude []uint) ([]recommend.Candidate, error) {
	if len(orderIDs) == 0 {
		return []recommend.Candidate{}, nil
	}

	// 1. 候选商品及元数据
	query := r.db.WithContext(ctx).
		Table("order_items").
		Select("DISTINCT products.id, products.store_id, products.active, products.visibility, products.default_category_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("order_items.order_id IN ?", orderIDs).
		Where("products.deleted_at IS NULL")

	if len(exclude) > 0 {
		query = query.Where("order_items.product_id NOT IN ?", exclude)
	}

	var rows []candidateRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询候选商品失败")
	}
	if len(rows) == 0 {
		return []recommend.Candidate{}, nil
	}

	// 2. 批量取默认分类的授权客户组
	categoryIDs := make([]uint, 0, len(rows))
	seen := make(map[uint]struct{}, len(rows))
	for _, row := range rows {
		if _, ok := seen[row.DefaultCategoryID]; ok {
			continue
		}
		seen[row.DefaultCategoryID] = struct{}{}
		categoryIDs = append(categoryIDs, row.DefaultCategoryID)
	}

	var grants []CategoryGroupModel
	err := r.db.WithContext(ctx).
		Where("category_id IN ?", categoryIDs).
		Find(&grants).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询分类授权客户组失败")
	}

	groupsByCategory := make(map[uint][]uint, len(categoryIDs))
	for _, g := range grants {
		groupsByCategory[g.CategoryID] = append(groupsByCategory[g.CategoryID], g.GroupID)
	}

	// 3. 组装候选
	candidates := make([]recommend.Candidate, 0, len(rows))
	for _, row := range rows {
		candidates = append(candidates, recommend.Candidate{
			ProductID:          row.ID,
			StoreID:            row.StoreID,
			Active:             row.Active,
			Visibility:         product.Visibility(row.Visibility),
			DefaultCategoryID:  row.DefaultCategoryID,
			AuthorizedGroupIDs: groupsByCategory[row.DefaultCategoryID],
		})
	}

	return candidates, nil
}

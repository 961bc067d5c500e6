package product

import (
	"time"
)

// Visibility 商品在目录中的可见性
// 设计说明:
// 1. 对应目录的可见性语义:both(列表+搜索)/catalog(仅列表)/search(仅搜索)/none(不可见)
// 2. 只有both和catalog允许出现在推荐位里(推荐位本质上是一种目录列表)
type Visibility string

const (
	VisibilityBoth    Visibility = "both"    // 列表和搜索均可见
	VisibilityCatalog Visibility = "catalog" // 仅目录列表可见
	VisibilitySearch  Visibility = "search"  // 仅搜索可见
	VisibilityNone    Visibility = "none"    // 不可见
)

// Listable 是否允许出现在目录列表(含推荐位)
func (v Visibility) Listable() bool {
	return v == VisibilityBoth || v == VisibilityCatalog
}

// Valid 是否为合法的可见性取值
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityBoth, VisibilityCatalog, VisibilitySearch, VisibilityNone:
		return true
	}
	return false
}

// Product 商品实体(聚合根)
// 设计说明:
// 1. Product是商品聚合的根实体,包含推荐引擎关心的全部目录属性
// 2. 价格使用int64存储"分"为单位(避免浮点数精度问题),仅透传给展示层
// 3. StoreID实现多店铺隔离(同一商品ID在不同店铺相互独立)
// 4. DefaultCategoryID是默认分类,客户组授权挂在分类上
type Product struct {
	ID                uint
	StoreID           uint       // 所属店铺
	Name              string     // 商品名
	Reference         string     // 商品货号(SKU)
	Price             int64      // 价格(单位:分,1元=100分)
	Active            bool       // 是否上架
	Visibility        Visibility // 目录可见性
	DefaultCategoryID uint       // 默认分类ID(客户组授权的挂载点)
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewProduct 创建新商品(工厂方法)
func NewProduct(storeID uint, name, reference string, price int64, visibility Visibility, defaultCategoryID uint) *Product {
	now := time.Now()
	return &Product{
		StoreID:           storeID,
		Name:              name,
		Reference:         reference,
		Price:             price,
		Active:            true,
		Visibility:        visibility,
		DefaultCategoryID: defaultCategoryID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// UpdateInfo 更新商品基本信息
func (p *Product) UpdateInfo(name, reference string, price int64) {
	if name != "" {
		p.Name = name
	}
	if reference != "" {
		p.Reference = reference
	}
	if price > 0 {
		p.Price = price
	}
	p.UpdatedAt = time.Now()
}

// ChangeVisibility 调整可见性(领域行为)
func (p *Product) ChangeVisibility(v Visibility) error {
	if !v.Valid() {
		return ErrInvalidVisibility
	}
	p.Visibility = v
	p.UpdatedAt = time.Now()
	return nil
}

// Deactivate 下架商品
func (p *Product) Deactivate() {
	p.Active = false
	p.UpdatedAt = time.Now()
}

// Activate 上架商品
func (p *Product) Activate() {
	p.Active = true
	p.UpdatedAt = time.Now()
}

// BelongsTo 检查商品是否属于指定店铺
func (p *Product) BelongsTo(storeID uint) bool {
	return p.StoreID == storeID
}

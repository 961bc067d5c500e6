package dto

import "fmt"

// RecommendationsRequest HTTP推荐查询请求(Query参数)
// product_ids和groups是逗号分隔的ID列表,在Handler中解析
type RecommendationsRequest struct {
	ProductIDs string `form:"product_ids" binding:"required" example:"1,2,3"`
	StoreID    uint   `form:"store_id" binding:"omitempty" example:"1"`
	Groups     string `form:"groups" binding:"omitempty" example:"2,3"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=50" example:"8"`
}

// RecommendedProduct HTTP推荐商品项
type RecommendedProduct struct {
	ID        uint   `json:"id" example:"42"`
	Name      string `json:"name" example:"运动水壶"`
	Reference string `json:"reference" example:"SKU-BOTTLE-01"`
	Price     int64  `json:"price" example:"2900"`       // 价格(分)
	PriceYuan string `json:"price_yuan" example:"29.00"` // 价格(元),方便前端显示
}

// RecommendationsResponse HTTP推荐查询响应
type RecommendationsResponse struct {
	Products  []RecommendedProduct `json:"products"`
	ShowPrice bool                 `json:"show_price" example:"true"`
}

// SettingsResponse HTTP推荐设置响应
type SettingsResponse struct {
	MaxRecommendations int  `json:"max_recommendations" example:"8"`
	ShowPrice          bool `json:"show_price" example:"true"`
}

// UpdateSettingsRequest HTTP推荐设置更新请求
type UpdateSettingsRequest struct {
	MaxRecommendations int  `json:"max_recommendations" binding:"required,min=1,max=50" example:"8"`
	ShowPrice          bool `json:"show_price" example:"true"`
}

// ImportStatusResponse HTTP批量导入状态响应
type ImportStatusResponse struct {
	Suppressed bool `json:"suppressed" example:"true"` // 失效抑制是否开启
}

// FormatPriceYuan 格式化价格(分→元)
// 例如:2900分 → "29.00"
func FormatPriceYuan(priceFen int64) string {
	yuan := float64(priceFen) / 100.0
	return fmt.Sprintf("%.2f", yuan)
}

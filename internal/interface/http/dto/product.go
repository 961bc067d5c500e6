package dto

// CreateProductRequest HTTP商品创建请求
// validator tag说明:
// - required: 必填字段
// - min/max: 数值范围校验
// - oneof: 枚举值校验
type CreateProductRequest struct {
	StoreID           uint   `json:"store_id" binding:"required" example:"1"`
	Name              string `json:"name" binding:"required,max=200" example:"运动水壶"`
	Reference         string `json:"reference" binding:"required,max=64" example:"SKU-BOTTLE-01"`
	Price             int64  `json:"price" binding:"required,min=1,max=99999999" example:"2900"` // 价格(分),29.00元
	Visibility        string `json:"visibility" binding:"omitempty,oneof=both catalog search none" example:"both"`
	DefaultCategoryID uint   `json:"default_category_id" binding:"required" example:"10"`
}

// UpdateProductRequest HTTP商品更新请求
// 零值语义:省略字段表示不修改,active用指针区分"不改"和"下架"
type UpdateProductRequest struct {
	Name       string `json:"name" binding:"omitempty,max=200" example:"运动水壶(大容量)"`
	Reference  string `json:"reference" binding:"omitempty,max=64" example:"SKU-BOTTLE-02"`
	Price      int64  `json:"price" binding:"omitempty,min=1,max=99999999" example:"3200"`
	Visibility string `json:"visibility" binding:"omitempty,oneof=both catalog search none" example:"catalog"`
	Active     *bool  `json:"active" binding:"omitempty" example:"true"`
}

// ProductResponse HTTP商品响应
type ProductResponse struct {
	ID                uint   `json:"id" example:"42"`
	StoreID           uint   `json:"store_id" example:"1"`
	Name              string `json:"name" example:"运动水壶"`
	Reference         string `json:"reference" example:"SKU-BOTTLE-01"`
	Price             int64  `json:"price" example:"2900"`
	PriceYuan         string `json:"price_yuan" example:"29.00"`
	Active            bool   `json:"active" example:"true"`
	Visibility        string `json:"visibility" example:"both"`
	DefaultCategoryID uint   `json:"default_category_id" example:"10"`
	CreatedAt         string `json:"created_at" example:"2024-01-15 10:30:00"`
	UpdatedAt         string `json:"updated_at" example:"2024-01-15 10:30:00"`
}

package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appproduct "github.com/xiebiao/crosssell/internal/application/product"
	"github.com/xiebiao/crosssell/internal/interface/http/dto"
	"github.com/xiebiao/crosssell/pkg/response"
)

// ProductHandler 商品HTTP处理器
type ProductHandler struct {
	createProductUseCase *appproduct.CreateProductUseCase
	updateProductUseCase *appproduct.UpdateProductUseCase
	deleteProductUseCase *appproduct.DeleteProductUseCase
}

// NewProductHandler 创建商品处理器
func NewProductHandler(
	createProductUseCase *appproduct.CreateProductUseCase,
	updateProductUseCase *appproduct.UpdateProductUseCase,
	deleteProductUseCase *appproduct.DeleteProductUseCase,
) *ProductHandler {
	return &ProductHandler{
		createProductUseCase: createProductUseCase,
		updateProductUseCase: updateProductUseCase,
		deleteProductUseCase: deleteProductUseCase,
	}
}

// CreateProduct 创建商品
// @Summary      创建商品
// @Description  后台录入商品,成功后通过事件总线触发推荐缓存失效
// @Tags         商品
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateProductRequest true "商品信息"
// @Success      200 {object} response.Response{data=dto.ProductResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      401 {object} response.Response "未认证"
// @Failure      409 {object} response.Response "商品编码已存在"
// @Router       /api/v1/products [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	// 1. 参数绑定与验证
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	// 可见性默认both
	if req.Visibility == "" {
		req.Visibility = "both"
	}

	// 2. 调用应用层用例
	result, err := h.createProductUseCase.Execute(c.Request.Context(), appproduct.CreateProductRequest{
		StoreID:           req.StoreID,
		Name:              req.Name,
		Reference:         req.Reference,
		Price:             req.Price,
		Visibility:        req.Visibility,
		DefaultCategoryID: req.DefaultCategoryID,
	})

	if err != nil {
		response.Error(c, err)
		return
	}

	// 3. 构建HTTP响应
	response.Success(c, toProductDTO(result))
}

// UpdateProduct 更新商品
// @Summary      更新商品
// @Description  修改商品信息(省略的字段不修改),成功后触发推荐缓存失效
// @Tags         商品
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "商品ID"
// @Param        request body dto.UpdateProductRequest true "商品信息"
// @Success      200 {object} response.Response{data=dto.ProductResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "商品不存在"
// @Router       /api/v1/products/{id} [put]
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	// 1. 路径参数
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.ErrorWithCode(c, 40900, "参数错误: 商品ID必须是正整数")
		return
	}

	// 2. 参数绑定与验证
	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	// 3. 调用应用层用例
	result, err := h.updateProductUseCase.Execute(c.Request.Context(), appproduct.UpdateProductRequest{
		ID:         uint(id),
		Name:       req.Name,
		Reference:  req.Reference,
		Price:      req.Price,
		Visibility: req.Visibility,
		Active:     req.Active,
	})

	if err != nil {
		response.Error(c, err)
		return
	}

	// 4. 构建HTTP响应
	response.Success(c, toProductDTO(result))
}

// DeleteProduct 删除商品
// @Summary      删除商品
// @Description  软删除商品,成功后触发推荐缓存失效
// @Tags         商品
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "商品ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "商品不存在"
// @Router       /api/v1/products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.ErrorWithCode(c, 40900, "参数错误: 商品ID必须是正整数")
		return
	}

	if err := h.deleteProductUseCase.Execute(c.Request.Context(), uint(id)); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// toProductDTO 应用层DTO → HTTP DTO
func toProductDTO(p *appproduct.ProductResponse) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:                p.ID,
		StoreID:           p.StoreID,
		Name:              p.Name,
		Reference:         p.Reference,
		Price:             p.Price,
		PriceYuan:         dto.FormatPriceYuan(p.Price),
		Active:            p.Active,
		Visibility:        p.Visibility,
		DefaultCategoryID: p.DefaultCategoryID,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

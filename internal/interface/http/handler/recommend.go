package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	apprecommend "github.com/xiebiao/crosssell/internal/application/recommend"
	"github.com/xiebiao/crosssell/internal/interface/http/dto"
	apperrors "github.com/xiebiao/crosssell/pkg/errors"
	"github.com/xiebiao/crosssell/pkg/response"
)

// RecommendHandler 推荐HTTP处理器
type RecommendHandler struct {
	getRecommendationsUseCase *apprecommend.GetRecommendationsUseCase
}

// NewRecommendHandler 创建推荐处理器
func NewRecommendHandler(getRecommendationsUseCase *apprecommend.GetRecommendationsUseCase) *RecommendHandler {
	return &RecommendHandler{
		getRecommendationsUseCase: getRecommendationsUseCase,
	}
}

// GetRecommendations 查询共同购买推荐
// @Summary      查询推荐
// @Description  根据当前在看的商品集合,返回共同购买推荐列表
// @Tags         推荐
// @Produce      json
// @Param        product_ids query string true "商品ID列表(逗号分隔)" example(1,2,3)
// @Param        store_id query int false "店铺ID(0表示不限)"
// @Param        groups query string false "客户组ID列表(逗号分隔,空表示访客)"
// @Param        limit query int false "数量上限(1-50,省略用运行时设置)"
// @Success      200 {object} response.Response{data=dto.RecommendationsResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/recommendations [get]
func (h *RecommendHandler) GetRecommendations(c *gin.Context) {
	// 1. 参数绑定与验证
	var req dto.RecommendationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	productIDs, err := parseUintList(req.ProductIDs)
	if err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: product_ids必须是逗号分隔的正整数")
		return
	}
	groups, err := parseUintList(req.Groups)
	if err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: groups必须是逗号分隔的正整数")
		return
	}

	// 2. 调用应用层用例
	result, err := h.getRecommendationsUseCase.Execute(c.Request.Context(), apprecommend.GetRecommendationsRequest{
		ProductIDs: productIDs,
		StoreID:    req.StoreID,
		Groups:     groups,
		Limit:      req.Limit,
	})

	if err != nil {
		// 订单数据源不可用时降级为空推荐:推荐是页面的附属组件,
		// 它不可用不应该让整个页面报错
		if appErr := apperrors.GetAppError(err); appErr.Code == apperrors.ErrCodeDataUnavailable {
			response.Success(c, &dto.RecommendationsResponse{
				Products: []dto.RecommendedProduct{},
			})
			return
		}
		response.Error(c, err)
		return
	}

	// 3. 构建HTTP响应
	products := make([]dto.RecommendedProduct, len(result.Products))
	for i, p := range result.Products {
		products[i] = dto.RecommendedProduct{
			ID:        p.ID,
			Name:      p.Name,
			Reference: p.Reference,
			Price:     p.Price,
			PriceYuan: dto.FormatPriceYuan(p.Price),
		}
	}

	response.Success(c, &dto.RecommendationsResponse{
		Products:  products,
		ShowPrice: result.ShowPrice,
	})
}

// parseUintList 解析逗号分隔的ID列表("1,2,3" → [1 2 3])
// 空字符串返回空列表;任何一项不是正整数则报错
func parseUintList(s string) ([]uint, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []uint{}, nil
	}

	parts := strings.Split(s, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return nil, err
		}
		ids = append(ids, uint(n))
	}
	return ids, nil
}

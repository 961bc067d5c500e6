package handler

import (
	"github.com/gin-gonic/gin"

	apprecommend "github.com/xiebiao/crosssell/internal/application/recommend"
	"github.com/xiebiao/crosssell/internal/interface/http/dto"
	"github.com/xiebiao/crosssell/pkg/response"
)

// SettingsHandler 推荐设置HTTP处理器
type SettingsHandler struct {
	getSettingsUseCase    *apprecommend.GetSettingsUseCase
	updateSettingsUseCase *apprecommend.UpdateSettingsUseCase
}

// NewSettingsHandler 创建推荐设置处理器
func NewSettingsHandler(
	getSettingsUseCase *apprecommend.GetSettingsUseCase,
	updateSettingsUseCase *apprecommend.UpdateSettingsUseCase,
) *SettingsHandler {
	return &SettingsHandler{
		getSettingsUseCase:    getSettingsUseCase,
		updateSettingsUseCase: updateSettingsUseCase,
	}
}

// GetSettings 查询推荐设置
// @Summary      查询推荐设置
// @Tags         设置
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dto.SettingsResponse}
// @Router       /api/v1/settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	result, err := h.getSettingsUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.SettingsResponse{
		MaxRecommendations: result.MaxRecommendations,
		ShowPrice:          result.ShowPrice,
	})
}

// UpdateSettings 更新推荐设置
// @Summary      更新推荐设置
// @Description  修改数量上限和价格展示开关,成功后清空推荐结果缓存
// @Tags         设置
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.UpdateSettingsRequest true "推荐设置"
// @Success      200 {object} response.Response{data=dto.SettingsResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/settings [put]
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	// 1. 参数绑定与验证
	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	// 2. 调用应用层用例
	result, err := h.updateSettingsUseCase.Execute(c.Request.Context(), apprecommend.UpdateSettingsRequest{
		MaxRecommendations: req.MaxRecommendations,
		ShowPrice:          req.ShowPrice,
	})

	if err != nil {
		response.Error(c, err)
		return
	}

	// 3. 构建HTTP响应
	response.Success(c, &dto.SettingsResponse{
		MaxRecommendations: result.MaxRecommendations,
		ShowPrice:          result.ShowPrice,
	})
}

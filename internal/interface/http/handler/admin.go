package handler

import (
	"github.com/gin-gonic/gin"

	apprecommend "github.com/xiebiao/crosssell/internal/application/recommend"
	"github.com/xiebiao/crosssell/internal/interface/http/dto"
	"github.com/xiebiao/crosssell/pkg/response"
)

// AdminHandler 运维管理HTTP处理器(缓存清理、批量导入开关)
type AdminHandler struct {
	clearCacheUseCase  *apprecommend.ClearCacheUseCase
	beginImportUseCase *apprecommend.BeginImportUseCase
	endImportUseCase   *apprecommend.EndImportUseCase
	guard              apprecommend.ImportGuard
}

// NewAdminHandler 创建运维管理处理器
func NewAdminHandler(
	clearCacheUseCase *apprecommend.ClearCacheUseCase,
	beginImportUseCase *apprecommend.BeginImportUseCase,
	endImportUseCase *apprecommend.EndImportUseCase,
	guard apprecommend.ImportGuard,
) *AdminHandler {
	return &AdminHandler{
		clearCacheUseCase:  clearCacheUseCase,
		beginImportUseCase: beginImportUseCase,
		endImportUseCase:   endImportUseCase,
		guard:              guard,
	}
}

// ClearCache 手动清空推荐缓存
// @Summary      清空推荐缓存
// @Description  清空全部已缓存的推荐结果(排障用,正常失效靠事件驱动)
// @Tags         运维
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /api/v1/admin/cache/clear [post]
func (h *AdminHandler) ClearCache(c *gin.Context) {
	if err := h.clearCacheUseCase.Execute(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// BeginImport 开始批量导入
// @Summary      开始批量导入
// @Description  开启失效抑制:导入期间的目录变更事件不再逐条清缓存
// @Tags         运维
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dto.ImportStatusResponse}
// @Router       /api/v1/admin/import/begin [post]
func (h *AdminHandler) BeginImport(c *gin.Context) {
	h.beginImportUseCase.Execute(c.Request.Context())

	response.Success(c, &dto.ImportStatusResponse{
		Suppressed: h.guard.Suppressed(),
	})
}

// EndImport 结束批量导入
// @Summary      结束批量导入
// @Description  关闭失效抑制并收尾清空一次推荐缓存
// @Tags         运维
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dto.ImportStatusResponse}
// @Router       /api/v1/admin/import/end [post]
func (h *AdminHandler) EndImport(c *gin.Context) {
	if err := h.endImportUseCase.Execute(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.ImportStatusResponse{
		Suppressed: h.guard.Suppressed(),
	})
}

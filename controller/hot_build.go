package controller

import (
	"net/http"
	"strconv"

	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/build_service/models/vo"
	"github.com/Xushengqwer/build_service/service"
)

// HotBuildController 定义热门装机单控制器的结构体
type HotBuildController struct {
	hotBuildService service.HotBuildServiceInterface // 服务层接口
}

// NewHotBuildController 构造函数，注入服务层依赖
func NewHotBuildController(hotBuildService service.HotBuildServiceInterface) *HotBuildController {
	return &HotBuildController{
		hotBuildService: hotBuildService,
	}
}

// GetHotBuildsByCursor 处理获取热门装机单的 HTTP 请求
// @Summary      通过游标获取热门装机单 (公开)
// @Description  使用基于游标的分页方式，从预热的 Redis 快照检索热门装机单列表（按点赞热度排序）。使用查询参数来传递游标和数量限制。
// @Tags         hot-builds (热门装机单)
// @Accept       json
// @Produce      json
// @Param        last_build_id query uint64 false "上一页最后一个装机单的 ID，首页省略" Format(uint64)
// @Param        limit query int true "每页数量" Format(int) minimum(1)
// @Success      200 {object} vo.ListHotBuildsResponseWrapper "热门装机单检索成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的输入参数（例如，无效的 limit 或 last_build_id 格式）"
// @Failure      500 {object} vo.BaseResponseWrapper "检索热门装机单时发生内部服务器错误"
// @Router       /api/v1/rig/hot-builds [get]
func (ctrl *HotBuildController) GetHotBuildsByCursor(c *gin.Context) {
	// 1. 处理 last_build_id 参数（可选）
	var lastBuildID *uint64
	if lastBuildIDStr := c.Query("last_build_id"); lastBuildIDStr != "" {
		id, err := strconv.ParseUint(lastBuildIDStr, 10, 64)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的 last build ID 格式")
			return
		}
		lastBuildID = &id
	}

	// 2. 处理 limit 参数（必填）
	limitStr := c.Query("limit")
	if limitStr == "" {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "limit 是必需的")
		return
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的 limit，必须是正整数")
		return
	}

	// 3. 调用服务层获取热门装机单
	builds, nextCursor, err := ctrl.hotBuildService.GetHotBuildsByCursor(c.Request.Context(), lastBuildID, limit)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, response.ErrCodeServerInternal, "检索热门装机单失败: "+err.Error())
		return
	}

	// 4. 构造响应结构体
	responseData := vo.ListHotBuildsByCursorVO{
		Builds:     builds,
		NextCursor: nextCursor,
	}

	response.RespondSuccess(c, responseData, "热门装机单检索成功")
}

// RegisterRoutes 注册 HotBuildController 的路由
func (ctrl *HotBuildController) RegisterRoutes(group *gin.RouterGroup) {
	hotBuilds := group.Group("/hot-builds") // 基础路径 /hot-builds
	{
		hotBuilds.GET("", ctrl.GetHotBuildsByCursor) // GET /hot-builds
	}
}

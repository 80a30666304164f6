package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/build_service/models/dto"
	"github.com/Xushengqwer/build_service/service"
)

// BuildAdminController 定义装机单管理员控制器的结构体
type BuildAdminController struct {
	adminService service.BuildAdminService // 服务层接口
}

// NewBuildAdminController 构造函数，注入服务层依赖
func NewBuildAdminController(adminService service.BuildAdminService) *BuildAdminController {
	return &BuildAdminController{
		adminService: adminService,
	}
}

// SetAnchor 处理管理员设置/取消装机单锚定标记的 HTTP 请求
// @Summary      设置装机单锚定标记
// @Description  管理员将装机单设为锚定（运营推荐位）或取消锚定。锚定装机单不参与热度排序。
// @Tags         admin-builds (管理员-装机单)
// @Accept       json
// @Produce      json
// @Param        id path uint64 true "装机单 ID" Format(uint64)
// @Param        request body dto.SetAnchorRequest true "锚定标记请求体"
// @Success      200 {object} vo.BaseResponseWrapper "锚定标记设置成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求负载或装机单 ID 格式"
// @Failure      404 {object} vo.BaseResponseWrapper "装机单未找到"
// @Failure      500 {object} vo.BaseResponseWrapper "设置锚定标记时发生内部服务器错误"
// @Router       /api/v1/rig/admin/builds/{id}/anchor [put]
func (ctrl *BuildAdminController) SetAnchor(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的装机单 ID 格式")
		return
	}

	var req dto.SetAnchorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求负载: "+err.Error())
		return
	}

	if err := ctrl.adminService.SetAnchor(c.Request.Context(), id, req.IsAnchor); err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			response.RespondError(c, http.StatusNotFound, response.ErrCodeClientResourceNotFound, "装机单未找到")
		} else {
			response.RespondError(c, http.StatusInternalServerError, response.ErrCodeServerInternal, "设置锚定标记失败: "+err.Error())
		}
		return
	}

	response.RespondSuccess[any](c, nil, "锚定标记设置成功")
}

// ListAnchorBuilds 处理获取锚定装机单列表的 HTTP 请求
// @Summary      获取锚定装机单列表
// @Description  获取全部锚定（运营推荐）装机单，按点赞数倒序排列。
// @Tags         admin-builds (管理员-装机单)
// @Accept       json
// @Produce      json
// @Success      200 {object} vo.ListBuildsResponseWrapper "锚定装机单检索成功"
// @Failure      500 {object} vo.BaseResponseWrapper "检索锚定装机单时发生内部服务器错误"
// @Router       /api/v1/rig/admin/anchor-builds [get]
func (ctrl *BuildAdminController) ListAnchorBuilds(c *gin.Context) {
	listVO, err := ctrl.adminService.ListAnchorBuilds(c.Request.Context())
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, response.ErrCodeServerInternal, "检索锚定装机单失败: "+err.Error())
		return
	}

	response.RespondSuccess(c, listVO, "锚定装机单检索成功")
}

// RegisterRoutes 注册 BuildAdminController 的路由
func (ctrl *BuildAdminController) RegisterRoutes(group *gin.RouterGroup) {
	admin := group.Group("/admin") // 管理员接口基础路径
	{
		admin.PUT("/builds/:id/anchor", ctrl.SetAnchor)    // PUT /api/v1/rig/admin/builds/:id/anchor
		admin.GET("/anchor-builds", ctrl.ListAnchorBuilds) // GET /api/v1/rig/admin/anchor-builds
	}
}

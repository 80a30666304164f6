package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/constants"
	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/build_service/models/dto"
	"github.com/Xushengqwer/build_service/myErrors"
	"github.com/Xushengqwer/build_service/service"
)

// BuildController 定义装机单控制器的结构体
type BuildController struct {
	buildService service.BuildService // 服务层接口，通过依赖注入传入
}

// NewBuildController 构造函数，用于创建 BuildController 实例
func NewBuildController(buildService service.BuildService) *BuildController {
	return &BuildController{
		buildService: buildService,
	}
}

// respondResolveError 统一处理配件引用解析失败的响应。
// - 引用格式非法 → 400；引用的配件不存在 → 404。
// 返回 true 表示错误已被处理。
func respondResolveError(c *gin.Context, err error) bool {
	var invalidErr *myErrors.InvalidComponentIDError
	if errors.As(err, &invalidErr) {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "配件引用格式非法: "+invalidErr.Raw)
		return true
	}
	var notFoundErr *myErrors.ComponentNotFoundError
	if errors.As(err, &notFoundErr) {
		response.RespondError(c, http.StatusNotFound, response.ErrCodeClientResourceNotFound, notFoundErr.Error())
		return true
	}
	return false
}

// CreateBuild 处理创建装机单的 HTTP 请求
// @Summary      创建新装机单
// @Description  使用提供的名称与配件引用列表创建装机单。配件引用严格解析：任一引用非法或查无此件即拒绝；兼容性检测不通过时同样拒绝并返回全部违规。OwnerID 从请求上下文中获取。
// @Tags         builds (装机单)
// @Accept       json
// @Produce      json
// @Param        build body dto.CreateBuildRequest true "装机单数据"
// @Success      200 {object} vo.BuildResponseWrapper "装机单创建成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求负载或配件引用格式非法"
// @Failure      401 {object} vo.BaseResponseWrapper "用户未授权或认证失败"
// @Failure      404 {object} vo.BaseResponseWrapper "引用的配件不存在"
// @Failure      500 {object} vo.BaseResponseWrapper "创建装机单时发生内部服务器错误"
// @Router       /api/v1/rig/builds [post]
func (ctrl *BuildController) CreateBuild(c *gin.Context) {
	var req dto.CreateBuildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "绑定请求数据失败: "+err.Error())
		return
	}

	// 从 gin.Context 中取出从网关服务透传下来的 userID
	userIDValue, exists := c.Get(string(constants.UserIDKey))
	if !exists {
		response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, "无法获取用户信息 (Context Key Not Found)")
		return
	}
	userID, ok := userIDValue.(string)
	if !ok || userID == "" {
		response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, "无法获取有效的用户 ID (Invalid UserID in Context)")
		return
	}

	buildVO, err := ctrl.buildService.CreateBuild(c.Request.Context(), userID, &req)
	if err != nil {
		if respondResolveError(c, err) {
			return
		}
		var incErr *myErrors.IncompatibleBuildError
		if errors.As(err, &incErr) {
			response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "兼容性检测未通过: "+strings.Join(incErr.Issues, "; "))
			return
		}
		response.RespondError(c, http.StatusInternalServerError, response.ErrCodeServerInternal, "创建装机单失败: "+err.Error())
		return
	}

	response.RespondSuccess(c, buildVO, "装机单创建成功")
}

// GetBuildDetail 处理获取装机单详情的 HTTP 请求
// @Summary      获取指定ID的装机单详情 (公开)
// @Description  通过装机单的 ID 检索详情，配件按展示顺序展开，并附带按时间倒序的评论列表。
// @Tags         builds (装机单)
// @Accept       json
// @Produce      json
// @Param        id path uint64 true "装机单 ID" Format(uint64)
// @Success      200 {object} vo.BuildDetailResponseWrapper "装机单详情检索成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的装机单 ID 格式"
// @Failure      404 {object} vo.BaseResponseWrapper "装机单不存在"
// @Failure      500 {object} vo.BaseResponseWrapper "检索装机单详情时发生内部服务器错误"
// @Router       /api/v1/rig/builds/{id} [get]
func (ctrl *BuildController) GetBuildDetail(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的装机单 ID 格式")
		return
	}

	detailVO, err := ctrl.buildService.GetBuildDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			response.RespondError(c, http.StatusNotFound, response.ErrCodeClientResourceNotFound, "装机单不存在")
			return
		}
		response.RespondError(c, http.StatusInternalServerError, response.ErrCodeServerInternal, "检索装机单详情失败: "+err.Error())
		return
	}

	response.RespondSuccess(c, detailVO, "装机单详情检索成功")
}

// UpdateBuild 处理部分更新装机单的 HTTP 请求
// @Summary      更新指定ID的装机单
// @Description  部分更新装机单的元数据：缺省的字段保持不变，全部缺省时拒绝。配件清单在创建后不可变更。
// @Tags         builds (装机单)
// @Accept       json
// @Produce      json
// @Param        id path uint64 true "装机单 ID" Format(uint64)
// @Param        build body dto.UpdateBuildRequest true "要更新的字段 (name / description / is_anchor 至少一项)"
// @Success      200 {object} vo.BuildResponseWrapper "装机单更新成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求负载或未提供任何需要更新的字段"
// @Failure      404 {object} vo.BaseResponseWrapper "装机单不存在"
// @Failure      500 {object} vo.BaseResponseWrapper "更新装机单时发生内部服务器错误"
// @Router       /api/v1/rig/builds/{id} [patch]
func (ctrl *BuildController) UpdateBuild(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的装机单 ID 格式")
		return
	}

	var req dto.UpdateBuildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "绑定请求数据失败: "+err.Error())
		return
	}

	if req.Name == nil && req.Description == nil && req.IsAnchor == nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "没有提供任何需要更新的字段")
		return
	}

	buildVO, err := ctrl.buildService.UpdateBuild(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			response.RespondError(c, http.StatusNotFound, response.ErrCodeClientResourceNotFound, "装机单不存在")
			return
		}
		response.RespondError(c, http.StatusInternalServerError, response.ErrCodeServerInternal, "更新装机单失败: "+err.Error())
		return
	}

	response.RespondSuccess(c, buildVO, "装机单更新成功")
}

// ValidateBuild 处理独立兼容性校验的 HTTP 请求
// @Summary      校验配件组合的兼容性 (公开)
// @Description  对给定的配件引用列表执行兼容性规则判定并估算整机功耗，不落库。查无此件的引用静默跳过，格式非法的引用仍然拒绝。
// @Tags         builds (装机单)
// @Accept       json
// @Produce      json
// @Param        request body dto.ValidateBuildRequest true "配件引用列表"
// @Success      200 {object} vo.ValidateBuildResponseWrapper "校验完成，包含违规列表与估算功耗"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求负载或配件引用格式非法"
// @Failure      500 {object} vo.BaseResponseWrapper "校验时发生内部服务器错误"
// @Router       /api/v1/rig/builds/validate [post]
func (ctrl *BuildController) ValidateBuild(c *gin.Context) {
	var req dto.ValidateBuildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "绑定请求数据失败: "+err.Error())
		return
	}

	validateVO, err := ctrl.buildService.ValidateBuild(c.Request.Context(), &req)
	if err != nil {
		if respondResolveError(c, err) {
			return
		}
		response.RespondError(c, http.StatusInternalServerError, response.ErrCodeServerInternal, "兼容性校验失败: "+err.Error())
		return
	}

	response.RespondSuccess(c, validateVO, "兼容性校验完成")
}

// ListBuilds 处理装机单分页查询的 HTTP 请求
// @Summary      获取装机单列表 (公开, 分页)
// @Description  分页查询装机单列表，支持按创建者筛选，按创建时间倒序排列。top_loved=true 时忽略分页，按点赞数倒序返回前 3 条。
// @Tags         builds (装机单)
// @Accept       json
// @Produce      json
// @Param        owner_id query string false "按创建者 ID 筛选"
// @Param        top_loved query bool false "仅返回点赞数最高的 3 条"
// @Param        page query int false "页码 (从1开始)" format(int32) minimum(1) default(1)
// @Param        page_size query int false "每页数量" format(int32) minimum(1) maximum(100) default(20)
// @Success      200 {object} vo.ListBuildsResponseWrapper "成功响应，包含装机单列表和总记录数"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的查询参数"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/rig/builds [get]
func (ctrl *BuildController) ListBuilds(c *gin.Context) {
	var req dto.ListBuildsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的查询参数: "+err.Error())
		return
	}

	listVO, err := ctrl.buildService.ListBuilds(c.Request.Context(), &req)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, response.ErrCodeServerInternal, "获取装机单列表失败: "+err.Error())
		return
	}

	response.RespondSuccess(c, listVO, "装机单列表获取成功")
}

// DeleteBuild 处理删除装机单的 HTTP 请求
// @Summary      删除指定ID的装机单
// @Description  通过装机单的 ID 软删除装机单及其配件引用。
// @Tags         builds (装机单)
// @Accept       json
// @Produce      json
// @Param        id path uint64 true "装机单 ID" Format(uint64)
// @Success      200 {object} vo.BaseResponseWrapper "装机单删除成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的装机单 ID 格式"
// @Failure      404 {object} vo.BaseResponseWrapper "装机单不存在"
// @Failure      500 {object} vo.BaseResponseWrapper "删除装机单时发生内部服务器错误"
// @Router       /api/v1/rig/builds/{id} [delete]
func (ctrl *BuildController) DeleteBuild(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的装机单 ID 格式")
		return
	}

	if err := ctrl.buildService.DeleteBuild(c.Request.Context(), id); err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			response.RespondError(c, http.StatusNotFound, response.ErrCodeClientResourceNotFound, "装机单不存在")
			return
		}
		response.RespondError(c, http.StatusInternalServerError, response.ErrCodeServerInternal, "删除装机单失败: "+err.Error())
		return
	}

	response.RespondSuccess[any](c, nil, "装机单删除成功")
}

// RegisterRoutes 注册 BuildController 的路由
func (ctrl *BuildController) RegisterRoutes(group *gin.RouterGroup) {
	builds := group.Group("/builds")
	{
		builds.POST("", ctrl.CreateBuild)            // POST   /api/v1/rig/builds
		builds.GET("", ctrl.ListBuilds)              // GET    /api/v1/rig/builds
		builds.POST("/validate", ctrl.ValidateBuild) // POST   /api/v1/rig/builds/validate
		builds.GET("/:id", ctrl.GetBuildDetail)      // GET    /api/v1/rig/builds/:id
		builds.PATCH("/:id", ctrl.UpdateBuild)       // PATCH  /api/v1/rig/builds/:id
		builds.DELETE("/:id", ctrl.DeleteBuild)      // DELETE /api/v1/rig/builds/:id
	}
}

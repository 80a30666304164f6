package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/constants"
	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/build_service/models/dto"
	"github.com/Xushengqwer/build_service/myErrors"
	"github.com/Xushengqwer/build_service/service"
)

// SocialController 定义社交互动（点赞、评论）控制器的结构体
type SocialController struct {
	socialService service.SocialService // 服务层接口，通过依赖注入传入
}

// NewSocialController 构造函数，用于创建 SocialController 实例
func NewSocialController(socialService service.SocialService) *SocialController {
	return &SocialController{
		socialService: socialService,
	}
}

// userIDFromContext 取出从网关服务透传下来的 userID，未登录返回空字符串。
func userIDFromContext(c *gin.Context) string {
	userIDValue, exists := c.Get(string(constants.UserIDKey))
	if !exists {
		return ""
	}
	userID, ok := userIDValue.(string)
	if !ok {
		return ""
	}
	return userID
}

// LikeBuild 处理点赞装机单的 HTTP 请求
// @Summary      点赞装机单
// @Description  为指定装机单点赞。每个用户对每个装机单只能点赞一次，重复点赞返回 400。UserID 从请求上下文中获取。
// @Tags         social (互动)
// @Accept       json
// @Produce      json
// @Param        id path uint64 true "装机单 ID" Format(uint64)
// @Success      200 {object} vo.BaseResponseWrapper "点赞成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的装机单 ID 格式或重复点赞"
// @Failure      401 {object} vo.BaseResponseWrapper "用户未授权或认证失败"
// @Failure      404 {object} vo.BaseResponseWrapper "装机单不存在"
// @Failure      500 {object} vo.BaseResponseWrapper "点赞时发生内部服务器错误"
// @Router       /api/v1/rig/builds/{id}/like [post]
func (ctrl *SocialController) LikeBuild(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的装机单 ID 格式")
		return
	}

	userID := userIDFromContext(c)
	if userID == "" {
		response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, "无法获取有效的用户 ID (Invalid UserID in Context)")
		return
	}

	if err := ctrl.socialService.LikeBuild(c.Request.Context(), id, userID); err != nil {
		if errors.Is(err, myErrors.ErrAlreadyLiked) {
			response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "已经点过赞了")
			return
		}
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			response.RespondError(c, http.StatusNotFound, response.ErrCodeClientResourceNotFound, "装机单不存在")
			return
		}
		response.RespondError(c, http.StatusInternalServerError, response.ErrCodeServerInternal, "点赞失败: "+err.Error())
		return
	}

	response.RespondSuccess[any](c, nil, "点赞成功")
}

// CreateComment 处理发表评论的 HTTP 请求
// @Summary      发表评论
// @Description  对指定装机单发表评论。请求体中的 build_id 必须与路径参数一致。UserID 从请求上下文中获取。
// @Tags         social (互动)
// @Accept       json
// @Produce      json
// @Param        id path uint64 true "装机单 ID" Format(uint64)
// @Param        comment body dto.CreateCommentRequest true "评论内容"
// @Success      200 {object} vo.CommentResponseWrapper "评论发表成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求负载或路径与请求体中的装机单 ID 不一致"
// @Failure      401 {object} vo.BaseResponseWrapper "用户未授权或认证失败"
// @Failure      404 {object} vo.BaseResponseWrapper "装机单不存在"
// @Failure      500 {object} vo.BaseResponseWrapper "发表评论时发生内部服务器错误"
// @Router       /api/v1/rig/builds/{id}/comments [post]
func (ctrl *SocialController) CreateComment(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的装机单 ID 格式")
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "绑定请求数据失败: "+err.Error())
		return
	}

	// 路径参数与请求体中的装机单 ID 不一致时拒绝，防止客户端拼装错乱
	if req.BuildID != id {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "请求体中的 build_id 与路径参数不一致")
		return
	}

	userID := userIDFromContext(c)
	if userID == "" {
		response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, "无法获取有效的用户 ID (Invalid UserID in Context)")
		return
	}

	commentVO, err := ctrl.socialService.CreateComment(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			response.RespondError(c, http.StatusNotFound, response.ErrCodeClientResourceNotFound, "装机单不存在")
			return
		}
		response.RespondError(c, http.StatusInternalServerError, response.ErrCodeServerInternal, "发表评论失败: "+err.Error())
		return
	}

	response.RespondSuccess(c, commentVO, "评论发表成功")
}

// ListComments 处理获取装机单评论列表的 HTTP 请求
// @Summary      获取装机单的评论列表 (公开)
// @Description  按发表时间倒序返回指定装机单的全部评论。
// @Tags         social (互动)
// @Accept       json
// @Produce      json
// @Param        id path uint64 true "装机单 ID" Format(uint64)
// @Success      200 {object} vo.CommentListResponseWrapper "评论列表获取成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的装机单 ID 格式"
// @Failure      404 {object} vo.BaseResponseWrapper "装机单不存在"
// @Failure      500 {object} vo.BaseResponseWrapper "获取评论列表时发生内部服务器错误"
// @Router       /api/v1/rig/builds/{id}/comments [get]
func (ctrl *SocialController) ListComments(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的装机单 ID 格式")
		return
	}

	comments, err := ctrl.socialService.GetComments(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			response.RespondError(c, http.StatusNotFound, response.ErrCodeClientResourceNotFound, "装机单不存在")
			return
		}
		response.RespondError(c, http.StatusInternalServerError, response.ErrCodeServerInternal, "获取评论列表失败: "+err.Error())
		return
	}

	response.RespondSuccess(c, comments, "评论列表获取成功")
}

// RegisterRoutes 注册 SocialController 的路由
func (ctrl *SocialController) RegisterRoutes(group *gin.RouterGroup) {
	builds := group.Group("/builds")
	{
		builds.POST("/:id/like", ctrl.LikeBuild)         // POST /api/v1/rig/builds/:id/like
		builds.POST("/:id/comments", ctrl.CreateComment) // POST /api/v1/rig/builds/:id/comments
		builds.GET("/:id/comments", ctrl.ListComments)   // GET  /api/v1/rig/builds/:id/comments
	}
}

package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/build_service/models/dto"
	"github.com/Xushengqwer/build_service/myErrors"
	"github.com/Xushengqwer/build_service/service"
)

// ComponentController 定义配件控制器的结构体
type ComponentController struct {
	componentService service.ComponentService // 服务层接口，通过依赖注入传入
}

// NewComponentController 构造函数，用于创建 ComponentController 实例
func NewComponentController(componentService service.ComponentService) *ComponentController {
	return &ComponentController{
		componentService: componentService,
	}
}

// CreateComponent 处理录入单个配件的 HTTP 请求
// @Summary      录入新配件
// @Description  使用提供的配件数据（JSON）录入一条配件记录。兼容性属性均可选，缺失的属性在规则判定中视为放行。
// @Tags         components (配件)
// @Accept       json
// @Produce      json
// @Param        component body dto.ComponentPayload true "配件数据"
// @Success      200 {object} vo.ComponentResponseWrapper "配件录入成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求负载"
// @Failure      500 {object} vo.BaseResponseWrapper "录入配件时发生内部服务器错误"
// @Router       /api/v1/rig/components [post]
func (ctrl *ComponentController) CreateComponent(c *gin.Context) {
	var req dto.ComponentPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "绑定请求数据失败: "+err.Error())
		return
	}

	componentVO, err := ctrl.componentService.CreateComponent(c.Request.Context(), &req)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, response.ErrCodeServerInternal, "录入配件失败: "+err.Error())
		return
	}

	response.RespondSuccess(c, componentVO, "配件录入成功")
}

// ImportComponents 处理批量导入配件的 HTTP 请求
// @Summary      批量导入配件
// @Description  整批在一个事务内写入，任何一条数据非法则整批回滚，不产生部分写入。
// @Tags         components (配件)
// @Accept       json
// @Produce      json
// @Param        request body dto.ImportComponentsRequest true "配件列表"
// @Success      200 {object} vo.ImportComponentsResponseWrapper "批量导入成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求负载"
// @Failure      500 {object} vo.BaseResponseWrapper "导入配件时发生内部服务器错误"
// @Router       /api/v1/rig/components/import [post]
func (ctrl *ComponentController) ImportComponents(c *gin.Context) {
	var req dto.ImportComponentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "绑定请求数据失败: "+err.Error())
		return
	}

	importVO, err := ctrl.componentService.ImportComponents(c.Request.Context(), req.Components)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, response.ErrCodeServerInternal, "批量导入配件失败: "+err.Error())
		return
	}

	response.RespondSuccess(c, importVO, "配件批量导入成功")
}

// GetComponentByID 处理获取配件详情的 HTTP 请求
// @Summary      获取指定ID的配件详情
// @Description  通过配件的 ID 检索配件的完整属性。
// @Tags         components (配件)
// @Accept       json
// @Produce      json
// @Param        id path uint64 true "配件 ID" Format(uint64)
// @Success      200 {object} vo.ComponentResponseWrapper "配件详情检索成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的配件 ID 格式"
// @Failure      404 {object} vo.BaseResponseWrapper "配件不存在"
// @Failure      500 {object} vo.BaseResponseWrapper "检索配件详情时发生内部服务器错误"
// @Router       /api/v1/rig/components/{id} [get]
func (ctrl *ComponentController) GetComponentByID(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的配件 ID 格式")
		return
	}

	componentVO, err := ctrl.componentService.GetComponentByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			response.RespondError(c, http.StatusNotFound, response.ErrCodeClientResourceNotFound, "配件不存在")
			return
		}
		response.RespondError(c, http.StatusInternalServerError, response.ErrCodeServerInternal, "检索配件详情失败: "+err.Error())
		return
	}

	response.RespondSuccess(c, componentVO, "配件详情检索成功")
}

// ListComponents 处理配件目录分页查询的 HTTP 请求
// @Summary      获取配件目录列表 (分页)
// @Description  分页查询配件目录，支持按配件角色筛选和名称关键词模糊搜索。
// @Tags         components (配件)
// @Accept       json
// @Produce      json
// @Param        type query string false "配件角色" Enums(cpu,motherboard,ram,gpu,psu,case,cooler,storage)
// @Param        keyword query string false "名称模糊搜索关键词"
// @Param        page query int true "页码 (从1开始)" format(int32) minimum(1) default(1)
// @Param        page_size query int true "每页数量" format(int32) minimum(1) maximum(100) default(10)
// @Success      200 {object} vo.ListComponentsResponseWrapper "成功响应，包含配件列表和总记录数"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的查询参数"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/rig/components [get]
func (ctrl *ComponentController) ListComponents(c *gin.Context) {
	var req dto.ListComponentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的查询参数: "+err.Error())
		return
	}

	listVO, err := ctrl.componentService.ListComponents(c.Request.Context(), &req)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, response.ErrCodeServerInternal, "获取配件列表失败: "+err.Error())
		return
	}

	response.RespondSuccess(c, listVO, "配件列表获取成功")
}

// UploadComponentImage 处理上传配件商品图的 HTTP 请求
// @Summary      上传配件商品图
// @Description  上传配件的商品图片文件到对象存储，并回写图片 URL。请求体应为 multipart/form-data。
// @Tags         components (配件)
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path uint64 true "配件 ID" Format(uint64)
// @Param        image formData file true "配件图片文件"
// @Success      200 {object} vo.ComponentResponseWrapper "图片上传成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求负载或文件处理错误"
// @Failure      404 {object} vo.BaseResponseWrapper "配件不存在"
// @Failure      500 {object} vo.BaseResponseWrapper "上传图片时发生内部服务器错误"
// @Router       /api/v1/rig/components/{id}/image [post]
func (ctrl *ComponentController) UploadComponentImage(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的配件 ID 格式")
		return
	}

	// "image" 是前端 FormData.append("image", file) 时使用的字段名
	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "获取图片文件失败: "+err.Error())
		return
	}

	componentVO, err := ctrl.componentService.UploadComponentImage(c.Request.Context(), id, fileHeader)
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			response.RespondError(c, http.StatusNotFound, response.ErrCodeClientResourceNotFound, "配件不存在")
			return
		}
		response.RespondError(c, http.StatusInternalServerError, response.ErrCodeServerInternal, "上传配件图片失败: "+err.Error())
		return
	}

	response.RespondSuccess(c, componentVO, "配件图片上传成功")
}

// DeleteComponent 处理删除配件的 HTTP 请求
// @Summary      删除指定ID的配件
// @Description  通过配件的 ID 软删除一条配件记录。若配件仍被任何装机单引用，删除会被拒绝。
// @Tags         components (配件)
// @Accept       json
// @Produce      json
// @Param        id path uint64 true "配件 ID" Format(uint64)
// @Success      200 {object} vo.BaseResponseWrapper "配件删除成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的配件 ID 格式"
// @Failure      404 {object} vo.BaseResponseWrapper "配件不存在"
// @Failure      409 {object} vo.BaseResponseWrapper "配件仍被装机单引用"
// @Failure      500 {object} vo.BaseResponseWrapper "删除配件时发生内部服务器错误"
// @Router       /api/v1/rig/components/{id} [delete]
func (ctrl *ComponentController) DeleteComponent(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的配件 ID 格式")
		return
	}

	if err := ctrl.componentService.DeleteComponent(c.Request.Context(), id); err != nil {
		if errors.Is(err, myErrors.ErrComponentInUse) {
			response.RespondError(c, http.StatusConflict, response.ErrCodeClientInvalidInput, "配件仍被装机单引用，无法删除")
			return
		}
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			response.RespondError(c, http.StatusNotFound, response.ErrCodeClientResourceNotFound, "配件不存在")
			return
		}
		response.RespondError(c, http.StatusInternalServerError, response.ErrCodeServerInternal, "删除配件失败: "+err.Error())
		return
	}

	response.RespondSuccess[any](c, nil, "配件删除成功")
}

// RegisterRoutes 注册 ComponentController 的路由
func (ctrl *ComponentController) RegisterRoutes(group *gin.RouterGroup) {
	components := group.Group("/components")
	{
		components.POST("", ctrl.CreateComponent)                // POST   /api/v1/rig/components
		components.POST("/import", ctrl.ImportComponents)        // POST   /api/v1/rig/components/import
		components.GET("", ctrl.ListComponents)                  // GET    /api/v1/rig/components
		components.GET("/:id", ctrl.GetComponentByID)            // GET    /api/v1/rig/components/:id
		components.POST("/:id/image", ctrl.UploadComponentImage) // POST   /api/v1/rig/components/:id/image
		components.DELETE("/:id", ctrl.DeleteComponent)          // DELETE /api/v1/rig/components/:id
	}
}

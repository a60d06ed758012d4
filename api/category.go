package api

import (
	"walletbook/middleware"
	"walletbook/service"

	"github.com/gin-gonic/gin"
)

// CategoryHandler 类别处理器
type CategoryHandler struct {
	categories *service.CategoryService
}

// NewCategoryHandler 创建类别处理器
func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{categories: service.NewCategoryService()}
}

// CategoryCreateRequest 创建类别请求
type CategoryCreateRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=50" example:"Food"`
	Description string `json:"description" binding:"omitempty,max=255"`
}

// CategoryUpdateRequest 更新类别请求
type CategoryUpdateRequest struct {
	Name        string  `json:"name" binding:"omitempty,min=1,max=50"`
	Description *string `json:"description" binding:"omitempty,max=255"`
}

// Create 创建类别
// @Summary 创建类别
// @Description 创建归属当前用户的类别，名称在同一用户下唯一
// @Tags 类别
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CategoryCreateRequest true "类别信息"
// @Success 201 {object} models.Category "创建成功"
// @Failure 400 {object} MessageResponse "参数错误或名称已存在"
// @Failure 401 {object} MessageResponse "未授权"
// @Router /api/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CategoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	category, err := h.categories.Create(userID, req.Name, req.Description)
	if err != nil {
		ServiceError(c, err)
		return
	}

	Created(c, category)
}

// List 获取类别列表
// @Summary 获取类别列表
// @Description 列出当前用户的全部类别
// @Tags 类别
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Category "获取成功"
// @Failure 401 {object} MessageResponse "未授权"
// @Router /api/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	list, err := h.categories.List(userID)
	if err != nil {
		ServiceError(c, err)
		return
	}

	OK(c, list)
}

// Update 更新类别
// @Summary 更新类别
// @Description 更新指定类别的名称/描述，仅限类别归属用户操作
// @Tags 类别
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "类别ID"
// @Param request body CategoryUpdateRequest true "更新信息"
// @Success 200 {object} models.Category "更新成功"
// @Failure 400 {object} MessageResponse "参数错误或名称已存在"
// @Failure 401 {object} MessageResponse "无权操作"
// @Failure 404 {object} MessageResponse "类别不存在"
// @Router /api/categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req CategoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	category, err := h.categories.Update(id, userID, req.Name, req.Description)
	if err != nil {
		ServiceError(c, err)
		return
	}

	OK(c, category)
}

// Delete 删除类别
// @Summary 删除类别
// @Description 删除指定类别，仍被消费/收入/预算引用的类别不允许删除
// @Tags 类别
// @Produce json
// @Security BearerAuth
// @Param id path int true "类别ID"
// @Success 200 {object} MessageResponse "删除成功"
// @Failure 400 {object} MessageResponse "类别仍被引用"
// @Failure 401 {object} MessageResponse "无权操作"
// @Failure 404 {object} MessageResponse "类别不存在"
// @Router /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.categories.Delete(id, userID); err != nil {
		ServiceError(c, err)
		return
	}

	Message(c, 200, "删除成功")
}

package api

import (
	"time"

	"walletbook/middleware"
	"walletbook/service"

	"github.com/gin-gonic/gin"
)

// BudgetHandler 预算处理器
type BudgetHandler struct {
	budgets *service.BudgetService
}

// NewBudgetHandler 创建预算处理器
func NewBudgetHandler() *BudgetHandler {
	return &BudgetHandler{budgets: service.NewBudgetService()}
}

// CreateBudgetRequest 创建预算请求
type CreateBudgetRequest struct {
	Amount    float64 `json:"amount" binding:"required,gt=0" example:"1000"`
	Category  uint    `json:"category" binding:"required" example:"1"` // 类别ID
	StartDate string  `json:"start_date" example:"2024-01-01"`
	EndDate   string  `json:"end_date" example:"2024-01-31"`
}

// UpdateBudgetRequest 更新预算请求，缺省字段不修改
type UpdateBudgetRequest struct {
	Amount    *float64 `json:"amount" binding:"omitempty,gt=0"`
	Category  *uint    `json:"category"`
	StartDate *string  `json:"start_date"`
	EndDate   *string  `json:"end_date"`
}

// Create 创建预算
// @Summary 创建预算
// @Description 为某个类别创建预算，起止日期可选，引用的类别必须存在且归属当前用户
// @Tags 预算
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateBudgetRequest true "预算信息"
// @Success 201 {object} models.Budget "创建成功"
// @Failure 400 {object} MessageResponse "参数错误或类别无效"
// @Failure 401 {object} MessageResponse "未授权"
// @Router /api/budgets [post]
func (h *BudgetHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	var startDate, endDate *time.Time
	if req.StartDate != "" {
		t, ok := parseDate(req.StartDate)
		if !ok {
			BadRequest(c, "开始日期格式错误，应为: 2006-01-02")
			return
		}
		startDate = &t
	}
	if req.EndDate != "" {
		t, ok := parseDate(req.EndDate)
		if !ok {
			BadRequest(c, "结束日期格式错误，应为: 2006-01-02")
			return
		}
		endDate = &t
	}

	budget, err := h.budgets.Create(userID, req.Amount, req.Category, startDate, endDate)
	if err != nil {
		ServiceError(c, err)
		return
	}

	Created(c, budget)
}

// List 获取预算列表
// @Summary 获取预算列表
// @Description 列出当前用户的全部预算，类别已展开
// @Tags 预算
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Budget "获取成功"
// @Failure 401 {object} MessageResponse "未授权"
// @Router /api/budgets [get]
func (h *BudgetHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	list, err := h.budgets.List(userID)
	if err != nil {
		ServiceError(c, err)
		return
	}

	OK(c, list)
}

// Get 获取单条预算
// @Summary 获取单条预算
// @Description 按 ID 获取预算详情，仅限预算归属用户
// @Tags 预算
// @Produce json
// @Security BearerAuth
// @Param id path int true "预算ID"
// @Success 200 {object} models.Budget "获取成功"
// @Failure 401 {object} MessageResponse "无权访问"
// @Failure 404 {object} MessageResponse "预算不存在"
// @Router /api/budgets/{id} [get]
func (h *BudgetHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	budget, err := h.budgets.Get(id, userID)
	if err != nil {
		ServiceError(c, err)
		return
	}

	OK(c, budget)
}

// Update 更新预算
// @Summary 更新预算
// @Description 更新指定预算，仅限预算归属用户
// @Tags 预算
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "预算ID"
// @Param request body UpdateBudgetRequest true "更新信息"
// @Success 200 {object} models.Budget "更新成功"
// @Failure 400 {object} MessageResponse "参数错误"
// @Failure 401 {object} MessageResponse "无权操作"
// @Failure 404 {object} MessageResponse "预算不存在"
// @Router /api/budgets/{id} [put]
func (h *BudgetHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	upd := service.BudgetUpdates{
		Amount:     req.Amount,
		CategoryID: req.Category,
	}
	if req.StartDate != nil {
		t, ok := parseDate(*req.StartDate)
		if !ok {
			BadRequest(c, "开始日期格式错误，应为: 2006-01-02")
			return
		}
		upd.StartDate = &t
	}
	if req.EndDate != nil {
		t, ok := parseDate(*req.EndDate)
		if !ok {
			BadRequest(c, "结束日期格式错误，应为: 2006-01-02")
			return
		}
		upd.EndDate = &t
	}

	budget, err := h.budgets.Update(id, userID, upd)
	if err != nil {
		ServiceError(c, err)
		return
	}

	OK(c, budget)
}

// Delete 删除预算
// @Summary 删除预算
// @Description 删除指定预算，仅限预算归属用户
// @Tags 预算
// @Produce json
// @Security BearerAuth
// @Param id path int true "预算ID"
// @Success 200 {object} MessageResponse "删除成功"
// @Failure 401 {object} MessageResponse "无权操作"
// @Failure 404 {object} MessageResponse "预算不存在"
// @Router /api/budgets/{id} [delete]
func (h *BudgetHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.budgets.Delete(id, userID); err != nil {
		ServiceError(c, err)
		return
	}

	Message(c, 200, "删除成功")
}

package api

import (
	"walletbook/middleware"
	"walletbook/service"

	"github.com/gin-gonic/gin"
)

// IncomeHandler 收入记录处理器
type IncomeHandler struct {
	incomes *service.IncomeService
}

// NewIncomeHandler 创建收入记录处理器
func NewIncomeHandler() *IncomeHandler {
	return &IncomeHandler{incomes: service.NewIncomeService()}
}

// CreateIncomeRequest 创建收入记录请求
type CreateIncomeRequest struct {
	Amount   float64 `json:"amount" binding:"required,gt=0" example:"5000"`
	Source   string  `json:"source" binding:"required,max=100" example:"工资"`
	Category uint    `json:"category" binding:"required" example:"2"` // 类别ID
	Date     string  `json:"date" binding:"required" example:"2024-01-01"`
}

// UpdateIncomeRequest 更新收入记录请求，缺省字段不修改
type UpdateIncomeRequest struct {
	Amount   *float64 `json:"amount" binding:"omitempty,gt=0"`
	Source   *string  `json:"source" binding:"omitempty,max=100"`
	Category *uint    `json:"category"`
	Date     *string  `json:"date"`
}

// Create 创建收入记录
// @Summary 创建收入记录
// @Description 创建一条收入记录，引用的类别必须存在且归属当前用户
// @Tags 收入记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateIncomeRequest true "收入记录信息"
// @Success 201 {object} models.Income "创建成功"
// @Failure 400 {object} MessageResponse "参数错误或类别无效"
// @Failure 401 {object} MessageResponse "未授权"
// @Router /api/incomes [post]
func (h *IncomeHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	date, ok := parseDate(req.Date)
	if !ok {
		BadRequest(c, "日期格式错误，应为: 2006-01-02")
		return
	}

	income, err := h.incomes.Create(userID, req.Amount, req.Source, req.Category, date)
	if err != nil {
		ServiceError(c, err)
		return
	}

	Created(c, income)
}

// List 获取收入记录列表
// @Summary 获取收入记录列表
// @Description 列出当前用户的全部收入记录，类别已展开
// @Tags 收入记录
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Income "获取成功"
// @Failure 401 {object} MessageResponse "未授权"
// @Router /api/incomes [get]
func (h *IncomeHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	list, err := h.incomes.List(userID)
	if err != nil {
		ServiceError(c, err)
		return
	}

	OK(c, list)
}

// Get 获取单条收入记录
// @Summary 获取单条收入记录
// @Description 按 ID 获取收入记录详情，仅限记录归属用户
// @Tags 收入记录
// @Produce json
// @Security BearerAuth
// @Param id path int true "收入记录ID"
// @Success 200 {object} models.Income "获取成功"
// @Failure 401 {object} MessageResponse "无权访问"
// @Failure 404 {object} MessageResponse "记录不存在"
// @Router /api/incomes/{id} [get]
func (h *IncomeHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	income, err := h.incomes.Get(id, userID)
	if err != nil {
		ServiceError(c, err)
		return
	}

	OK(c, income)
}

// Update 更新收入记录
// @Summary 更新收入记录
// @Description 更新指定收入记录，仅限记录归属用户
// @Tags 收入记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "收入记录ID"
// @Param request body UpdateIncomeRequest true "更新信息"
// @Success 200 {object} models.Income "更新成功"
// @Failure 400 {object} MessageResponse "参数错误"
// @Failure 401 {object} MessageResponse "无权操作"
// @Failure 404 {object} MessageResponse "记录不存在"
// @Router /api/incomes/{id} [put]
func (h *IncomeHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	upd := service.IncomeUpdates{
		Amount:     req.Amount,
		Source:     req.Source,
		CategoryID: req.Category,
	}
	if req.Date != nil {
		date, ok := parseDate(*req.Date)
		if !ok {
			BadRequest(c, "日期格式错误，应为: 2006-01-02")
			return
		}
		upd.Date = &date
	}

	income, err := h.incomes.Update(id, userID, upd)
	if err != nil {
		ServiceError(c, err)
		return
	}

	OK(c, income)
}

// Delete 删除收入记录
// @Summary 删除收入记录
// @Description 删除指定收入记录，仅限记录归属用户
// @Tags 收入记录
// @Produce json
// @Security BearerAuth
// @Param id path int true "收入记录ID"
// @Success 200 {object} MessageResponse "删除成功"
// @Failure 401 {object} MessageResponse "无权操作"
// @Failure 404 {object} MessageResponse "记录不存在"
// @Router /api/incomes/{id} [delete]
func (h *IncomeHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.incomes.Delete(id, userID); err != nil {
		ServiceError(c, err)
		return
	}

	Message(c, 200, "删除成功")
}

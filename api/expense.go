package api

import (
	"walletbook/database"
	"walletbook/middleware"
	"walletbook/models"
	"walletbook/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ExpenseHandler 消费记录处理器
type ExpenseHandler struct {
	expenses *service.ExpenseService
}

// NewExpenseHandler 创建消费记录处理器
func NewExpenseHandler() *ExpenseHandler {
	return &ExpenseHandler{expenses: service.NewExpenseService()}
}

// CreateExpenseRequest 创建消费记录请求
type CreateExpenseRequest struct {
	Amount   float64 `json:"amount" binding:"required,gt=0" example:"50"`
	Category uint    `json:"category" binding:"required" example:"1"` // 类别ID
	Date     string  `json:"date" binding:"required" example:"2024-01-01"`
}

// UpdateExpenseRequest 更新消费记录请求，缺省字段不修改
type UpdateExpenseRequest struct {
	Amount   *float64 `json:"amount" binding:"omitempty,gt=0"`
	Category *uint    `json:"category"`
	Date     *string  `json:"date"`
}

// Create 创建消费记录
// @Summary 创建消费记录
// @Description 创建一条消费记录，引用的类别必须存在且归属当前用户
// @Tags 消费记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateExpenseRequest true "消费记录信息"
// @Success 201 {object} models.Expense "创建成功"
// @Failure 400 {object} MessageResponse "参数错误或类别无效"
// @Failure 401 {object} MessageResponse "未授权"
// @Router /api/expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	date, ok := parseDate(req.Date)
	if !ok {
		BadRequest(c, "日期格式错误，应为: 2006-01-02")
		return
	}

	expense, err := h.expenses.Create(userID, req.Amount, req.Category, date)
	if err != nil {
		ServiceError(c, err)
		return
	}

	Created(c, expense)
}

// List 获取消费记录列表
// @Summary 获取消费记录列表
// @Description 列出当前用户的全部消费记录，类别已展开
// @Tags 消费记录
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Expense "获取成功"
// @Failure 401 {object} MessageResponse "未授权"
// @Router /api/expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	list, err := h.expenses.List(userID)
	if err != nil {
		ServiceError(c, err)
		return
	}

	OK(c, list)
}

// Get 获取单条消费记录
// @Summary 获取单条消费记录
// @Description 按 ID 获取消费记录详情，仅限记录归属用户
// @Tags 消费记录
// @Produce json
// @Security BearerAuth
// @Param id path int true "消费记录ID"
// @Success 200 {object} models.Expense "获取成功"
// @Failure 401 {object} MessageResponse "无权访问"
// @Failure 404 {object} MessageResponse "记录不存在"
// @Router /api/expenses/{id} [get]
func (h *ExpenseHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	expense, err := h.expenses.Get(id, userID)
	if err != nil {
		ServiceError(c, err)
		return
	}

	OK(c, expense)
}

// Update 更新消费记录
// @Summary 更新消费记录
// @Description 更新指定消费记录的金额/类别/日期，仅限记录归属用户
// @Tags 消费记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "消费记录ID"
// @Param request body UpdateExpenseRequest true "更新信息"
// @Success 200 {object} models.Expense "更新成功"
// @Failure 400 {object} MessageResponse "参数错误"
// @Failure 401 {object} MessageResponse "无权操作"
// @Failure 404 {object} MessageResponse "记录不存在"
// @Router /api/expenses/{id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	upd := service.ExpenseUpdates{
		Amount:     req.Amount,
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

	expense, err := h.expenses.Update(id, userID, upd)
	if err != nil {
		ServiceError(c, err)
		return
	}

	OK(c, expense)
}

// Delete 删除消费记录
// @Summary 删除消费记录
// @Description 删除指定消费记录，仅限记录归属用户
// @Tags 消费记录
// @Produce json
// @Security BearerAuth
// @Param id path int true "消费记录ID"
// @Success 200 {object} MessageResponse "删除成功"
// @Failure 401 {object} MessageResponse "无权操作"
// @Failure 404 {object} MessageResponse "记录不存在"
// @Router /api/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.expenses.Delete(id, userID); err != nil {
		ServiceError(c, err)
		return
	}

	Message(c, 200, "删除成功")
}

// GetStatistics 获取消费统计
// @Summary 获取消费统计
// @Description 按类别统计当前用户的消费总额与笔数，按总额倒序
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Param start_time query string false "开始日期 (2024-01-01)"
// @Param end_time query string false "结束日期 (2024-12-31)"
// @Success 200 {object} map[string]interface{} "获取成功"
// @Failure 401 {object} MessageResponse "未授权"
// @Router /api/expenses/statistics [get]
func (h *ExpenseHandler) GetStatistics(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	applyRange := func(q *gorm.DB) *gorm.DB {
		if s := c.Query("start_time"); s != "" {
			if t, ok := parseDate(s); ok {
				q = q.Where("expenses.date >= ?", t)
			}
		}
		if s := c.Query("end_time"); s != "" {
			if t, ok := parseDate(s); ok {
				q = q.Where("expenses.date < ?", t.AddDate(0, 0, 1))
			}
		}
		return q
	}

	// 总金额
	var totalAmount float64
	applyRange(database.DB.Model(&models.Expense{}).Where("expenses.user_id = ?", userID)).
		Select("COALESCE(SUM(expenses.amount), 0)").Scan(&totalAmount)

	// 按类别统计
	type CategoryStat struct {
		Category string  `json:"category"`
		Total    float64 `json:"total"`
		Count    int64   `json:"count"`
	}
	var categoryStats []CategoryStat

	applyRange(database.DB.Model(&models.Expense{}).Where("expenses.user_id = ?", userID)).
		Select("categories.name AS category, SUM(expenses.amount) AS total, COUNT(*) AS count").
		Joins("JOIN categories ON categories.id = expenses.category_id").
		Group("categories.name").
		Order("total DESC").
		Scan(&categoryStats)

	OK(c, gin.H{
		"total_amount":   totalAmount,
		"category_stats": categoryStats,
	})
}

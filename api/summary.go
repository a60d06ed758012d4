package api

import (
	"walletbook/database"
	"walletbook/middleware"
	"walletbook/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SummaryHandler 统计处理器
type SummaryHandler struct{}

// NewSummaryHandler 创建统计处理器
func NewSummaryHandler() *SummaryHandler {
	return &SummaryHandler{}
}

// IncomeExpenseSummaryResponse 支出/收入汇总返回
type IncomeExpenseSummaryResponse struct {
	TotalExpense float64 `json:"total_expense" example:"123.45"` // 支出总和
	TotalIncome  float64 `json:"total_income" example:"5000.00"` // 收入总和
}

// GetIncomeExpenseSummary 获取支出和收入汇总
// @Summary 获取支出/收入汇总
// @Description 按日期范围统计当前用户的支出总和与收入总和，不传 start_time/end_time 则统计全部时间
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Param start_time query string false "开始日期 (2024-01-01)"
// @Param end_time query string false "结束日期 (2024-12-31)"
// @Success 200 {object} IncomeExpenseSummaryResponse "获取成功"
// @Failure 401 {object} MessageResponse "未授权"
// @Router /api/statistics/summary [get]
func (h *SummaryHandler) GetIncomeExpenseSummary(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	applyRange := func(q *gorm.DB) *gorm.DB {
		if s := c.Query("start_time"); s != "" {
			if t, ok := parseDate(s); ok {
				q = q.Where("date >= ?", t)
			}
		}
		if s := c.Query("end_time"); s != "" {
			if t, ok := parseDate(s); ok {
				q = q.Where("date < ?", t.AddDate(0, 0, 1))
			}
		}
		return q
	}

	var totalExpense float64
	var totalIncome float64
	applyRange(database.DB.Model(&models.Expense{}).Where("user_id = ?", userID)).
		Select("COALESCE(SUM(amount), 0)").Scan(&totalExpense)
	applyRange(database.DB.Model(&models.Income{}).Where("user_id = ?", userID)).
		Select("COALESCE(SUM(amount), 0)").Scan(&totalIncome)

	OK(c, IncomeExpenseSummaryResponse{
		TotalExpense: totalExpense,
		TotalIncome:  totalIncome,
	})
}

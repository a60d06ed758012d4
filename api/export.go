package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"walletbook/database"
	"walletbook/middleware"
	"walletbook/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler 导出处理器
type ExportHandler struct{}

// NewExportHandler 创建导出处理器
func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

// queryExpensesForExport 按日期范围查询当前用户的消费记录，类别已展开
func (h *ExportHandler) queryExpensesForExport(c *gin.Context) ([]models.Expense, string, string, bool) {
	userID := middleware.GetCurrentUserID(c)

	startStr := c.Query("start_time")
	endStr := c.Query("end_time")

	if startStr == "" || endStr == "" {
		BadRequest(c, "请提供开始时间和结束时间")
		return nil, "", "", false
	}

	start, ok := parseDate(startStr)
	if !ok {
		BadRequest(c, "开始时间格式错误，应为: 2006-01-02")
		return nil, "", "", false
	}
	end, ok := parseDate(endStr)
	if !ok {
		BadRequest(c, "结束时间格式错误，应为: 2006-01-02")
		return nil, "", "", false
	}
	end = end.Add(24*time.Hour - time.Second)

	var expenses []models.Expense
	if err := database.DB.Preload("Category").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Order("date DESC").
		Find(&expenses).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询数据失败"))
		return nil, "", "", false
	}
	return expenses, startStr, endStr, true
}

func categoryName(e models.Expense) string {
	if e.Category != nil {
		return e.Category.Name
	}
	return ""
}

// ExportCSV 导出消费记录为 CSV
// @Summary 导出消费记录为CSV
// @Description 根据日期范围导出当前用户的消费记录为 CSV 文件
// @Tags 导出
// @Produce text/csv
// @Security BearerAuth
// @Param start_time query string true "开始时间 (2024-01-01)"
// @Param end_time query string true "结束时间 (2024-12-31)"
// @Success 200 {file} file "CSV 文件"
// @Failure 400 {object} MessageResponse "请求参数错误"
// @Failure 401 {object} MessageResponse "未授权"
// @Router /api/export/csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	expenses, startStr, endStr, ok := h.queryExpensesForExport(c)
	if !ok {
		return
	}

	buf := new(bytes.Buffer)
	// 添加 BOM 以支持 Excel 中文显示
	buf.WriteString("\xEF\xBB\xBF")

	writer := csv.NewWriter(buf)

	// 写入表头
	headers := []string{"ID", "金额", "类别", "日期", "创建时间"}
	if err := writer.Write(headers); err != nil {
		InternalError(c, "生成 CSV 失败")
		return
	}

	// 写入数据
	for _, expense := range expenses {
		row := []string{
			fmt.Sprintf("%d", expense.ID),
			fmt.Sprintf("%.2f", expense.Amount),
			categoryName(expense),
			expense.Date.Format("2006-01-02"),
			expense.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(row); err != nil {
			InternalError(c, "生成 CSV 失败")
			return
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		InternalError(c, "生成 CSV 失败")
		return
	}

	// 设置响应头
	filename := fmt.Sprintf("expenses_%s_%s.csv", startStr, endStr)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Length", fmt.Sprintf("%d", buf.Len()))

	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportJSON 导出消费记录为 JSON
// @Summary 导出消费记录为JSON
// @Description 根据日期范围导出当前用户的消费记录及汇总信息
// @Tags 导出
// @Produce json
// @Security BearerAuth
// @Param start_time query string true "开始时间 (2024-01-01)"
// @Param end_time query string true "结束时间 (2024-12-31)"
// @Success 200 {object} map[string]interface{} "导出成功"
// @Failure 400 {object} MessageResponse "请求参数错误"
// @Failure 401 {object} MessageResponse "未授权"
// @Router /api/export/json [get]
func (h *ExportHandler) ExportJSON(c *gin.Context) {
	expenses, startStr, endStr, ok := h.queryExpensesForExport(c)
	if !ok {
		return
	}

	// 计算汇总信息
	var totalAmount float64
	for _, expense := range expenses {
		totalAmount += expense.Amount
	}

	OK(c, gin.H{
		"start_time":   startStr,
		"end_time":     endStr,
		"total_count":  len(expenses),
		"total_amount": totalAmount,
		"expenses":     expenses,
	})
}

// ExportExcel 导出消费记录为 Excel
// @Summary 导出消费记录为Excel
// @Description 根据日期范围导出当前用户的消费记录为 xlsx 文件，末尾附汇总行
// @Tags 导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param start_time query string true "开始时间 (2024-01-01)"
// @Param end_time query string true "结束时间 (2024-12-31)"
// @Success 200 {file} file "Excel 文件"
// @Failure 400 {object} MessageResponse "请求参数错误"
// @Failure 401 {object} MessageResponse "未授权"
// @Router /api/export/excel [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	expenses, startStr, endStr, ok := h.queryExpensesForExport(c)
	if !ok {
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "消费记录"
	f.SetSheetName("Sheet1", sheetName)

	// 表头样式
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	dataStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetColWidth(sheetName, "A", "A", 10)
	f.SetColWidth(sheetName, "B", "B", 12)
	f.SetColWidth(sheetName, "C", "C", 15)
	f.SetColWidth(sheetName, "D", "D", 15)
	f.SetColWidth(sheetName, "E", "E", 20)

	// 写入表头
	headers := []string{"ID", "金额", "类别", "日期", "创建时间"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	// 写入数据
	var totalAmount float64
	for i, expense := range expenses {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), expense.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), expense.Amount)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), categoryName(expense))
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), expense.Date.Format("2006-01-02"))
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), expense.CreatedAt.Format("2006-01-02 15:04:05"))
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("E%d", row), dataStyle)
		totalAmount += expense.Amount
	}

	// 汇总行
	summaryRow := len(expenses) + 2
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow), "合计")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryRow), totalAmount)
	f.SetCellValue(sheetName, fmt.Sprintf("C%d", summaryRow), fmt.Sprintf("共 %d 条记录", len(expenses)))

	// 设置响应头
	filename := fmt.Sprintf("expenses_%s_%s.xlsx", startStr, endStr)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", filename))

	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "生成 Excel 失败")
		return
	}
}

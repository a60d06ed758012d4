package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// parseIDParam 解析路径中的 :id，非法时直接响应 400
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		BadRequest(c, "无效的ID")
		return 0, false
	}
	return uint(id), true
}

// parseDate 解析日期字符串，接受 2006-01-02 或 2006-01-02 15:04:05
func parseDate(s string) (time.Time, bool) {
	if t, err := time.ParseInLocation("2006-01-02 15:04:05", s, time.Local); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, true
	}
	return time.Time{}, false
}

package api

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"walletbook/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expectExportQuery(mock sqlmock.Sqlmock) {
	mock.ExpectQuery("SELECT .* FROM `expenses`").
		WithArgs(uint(1), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(expenseColumns()).
			AddRow(10, 1, 3, 50.0, time.Date(2024, 1, 5, 0, 0, 0, 0, time.Local), time.Now(), time.Now(), nil).
			AddRow(11, 1, 3, 30.5, time.Date(2024, 1, 3, 0, 0, 0, 0, time.Local), time.Now(), time.Now(), nil))
	mock.ExpectQuery("SELECT .* FROM `categories`").
		WillReturnRows(sqlmock.NewRows(categoryColumns()).
			AddRow(3, 1, "餐饮", "", time.Now(), time.Now(), nil))
}

func TestExportHandler_ExportCSV(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	cfg := testConfig()
	config.GlobalConfig = cfg
	defer func() { config.GlobalConfig = nil }()

	expectExportQuery(mock)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewExportHandler()
	router.GET("/export/csv", withUser(1), h.ExportCSV)

	req := httptest.NewRequest("GET", "/export/csv?start_time=2024-01-01&end_time=2024-01-31", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	body := w.Body.String()
	// BOM 前缀，保证 Excel 打开中文不乱码
	assert.True(t, strings.HasPrefix(body, "\xEF\xBB\xBF"))
	assert.Contains(t, body, "金额")
	assert.Contains(t, body, "餐饮")
	assert.Contains(t, body, "50.00")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportHandler_ExportCSV_MissingRange(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	cfg := testConfig()
	config.GlobalConfig = cfg
	defer func() { config.GlobalConfig = nil }()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewExportHandler()
	router.GET("/export/csv", withUser(1), h.ExportCSV)

	req := httptest.NewRequest("GET", "/export/csv", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "开始时间")
}

func TestExportHandler_ExportJSON(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	cfg := testConfig()
	config.GlobalConfig = cfg
	defer func() { config.GlobalConfig = nil }()

	expectExportQuery(mock)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewExportHandler()
	router.GET("/export/json", withUser(1), h.ExportJSON)

	req := httptest.NewRequest("GET", "/export/json?start_time=2024-01-01&end_time=2024-01-31", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(2), resp["total_count"])
	assert.InDelta(t, 80.5, resp["total_amount"], 0.001)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportHandler_ExportExcel(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	cfg := testConfig()
	config.GlobalConfig = cfg
	defer func() { config.GlobalConfig = nil }()

	expectExportQuery(mock)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewExportHandler()
	router.GET("/export/excel", withUser(1), h.ExportExcel)

	req := httptest.NewRequest("GET", "/export/excel?start_time=2024-01-01&end_time=2024-01-31", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	// xlsx 是 zip 容器，以 PK 开头
	assert.True(t, strings.HasPrefix(w.Body.String(), "PK"))
	require.NoError(t, mock.ExpectationsWereMet())
}

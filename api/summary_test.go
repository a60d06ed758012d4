package api

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"walletbook/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryHandler_GetIncomeExpenseSummary(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	cfg := testConfig()
	config.GlobalConfig = cfg
	defer func() { config.GlobalConfig = nil }()

	mock.ExpectQuery("SELECT COALESCE.* FROM `expenses`").
		WithArgs(uint(1)).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(321.5))
	mock.ExpectQuery("SELECT COALESCE.* FROM `incomes`").
		WithArgs(uint(1)).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(5000.0))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewSummaryHandler()
	router.GET("/statistics/summary", withUser(1), h.GetIncomeExpenseSummary)

	req := httptest.NewRequest("GET", "/statistics/summary", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 321.5, resp["total_expense"], 0.001)
	assert.InDelta(t, 5000.0, resp["total_income"], 0.001)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSummaryHandler_WithDateRange(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	cfg := testConfig()
	config.GlobalConfig = cfg
	defer func() { config.GlobalConfig = nil }()

	mock.ExpectQuery("SELECT COALESCE.* FROM `expenses`").
		WithArgs(uint(1), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(100.0))
	mock.ExpectQuery("SELECT COALESCE.* FROM `incomes`").
		WithArgs(uint(1), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(200.0))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewSummaryHandler()
	router.GET("/statistics/summary", withUser(1), h.GetIncomeExpenseSummary)

	req := httptest.NewRequest("GET", "/statistics/summary?start_time=2024-01-01&end_time=2024-01-31", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 100.0, resp["total_expense"], 0.001)
	assert.InDelta(t, 200.0, resp["total_income"], 0.001)
	require.NoError(t, mock.ExpectationsWereMet())
}

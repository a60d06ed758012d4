package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"walletbook/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func categoryColumns() []string {
	return []string{"id", "user_id", "name", "description", "created_at", "updated_at", "deleted_at"}
}

// withUser 在请求上下文中注入已登录用户 ID
func withUser(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
	}
}

func TestCategoryHandler_Create(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	cfg := testConfig()
	config.GlobalConfig = cfg
	defer func() { config.GlobalConfig = nil }()

	// 同名检查无记录
	mock.ExpectQuery("SELECT .* FROM `categories`").
		WithArgs(uint(1), "餐饮").
		WillReturnRows(sqlmock.NewRows(categoryColumns()))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `categories`").
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectCommit()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewCategoryHandler()
	router.POST("/categories", withUser(1), h.Create)

	body := `{"name":"餐饮","description":"一日三餐"}`
	req := httptest.NewRequest("POST", "/categories", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 201, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "餐饮", resp["name"])
	assert.Equal(t, float64(1), resp["user_id"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryHandler_Create_DuplicateName(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	cfg := testConfig()
	config.GlobalConfig = cfg
	defer func() { config.GlobalConfig = nil }()

	mock.ExpectQuery("SELECT .* FROM `categories`").
		WithArgs(uint(1), "餐饮").
		WillReturnRows(sqlmock.NewRows(categoryColumns()).
			AddRow(3, 1, "餐饮", "", time.Now(), time.Now(), nil))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewCategoryHandler()
	router.POST("/categories", withUser(1), h.Create)

	body := `{"name":"餐饮"}`
	req := httptest.NewRequest("POST", "/categories", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "类别名称已存在")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryHandler_List_OwnerScoped(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	cfg := testConfig()
	config.GlobalConfig = cfg
	defer func() { config.GlobalConfig = nil }()

	mock.ExpectQuery("SELECT .* FROM `categories`").
		WithArgs(uint(2)).
		WillReturnRows(sqlmock.NewRows(categoryColumns()).
			AddRow(5, 2, "交通", "", time.Now(), time.Now(), nil).
			AddRow(6, 2, "餐饮", "", time.Now(), time.Now(), nil))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewCategoryHandler()
	router.GET("/categories", withUser(2), h.List)

	req := httptest.NewRequest("GET", "/categories", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "交通", resp[0]["name"])
	require.NoError(t, mock.ExpectationsWereMet())
}

// 他人的类别：记录存在但归属用户 1，用户 2 操作返回 401
func TestCategoryHandler_Delete_NotOwner(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	cfg := testConfig()
	config.GlobalConfig = cfg
	defer func() { config.GlobalConfig = nil }()

	mock.ExpectQuery("SELECT .* FROM `categories`").
		WithArgs(uint(5)).
		WillReturnRows(sqlmock.NewRows(categoryColumns()).
			AddRow(5, 1, "餐饮", "", time.Now(), time.Now(), nil))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewCategoryHandler()
	router.DELETE("/categories/:id", withUser(2), h.Delete)

	req := httptest.NewRequest("DELETE", "/categories/5", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 401, w.Code)
	assert.Contains(t, w.Body.String(), "无权操作")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryHandler_Delete_Referenced(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	cfg := testConfig()
	config.GlobalConfig = cfg
	defer func() { config.GlobalConfig = nil }()

	mock.ExpectQuery("SELECT .* FROM `categories`").
		WithArgs(uint(5)).
		WillReturnRows(sqlmock.NewRows(categoryColumns()).
			AddRow(5, 1, "餐饮", "", time.Now(), time.Now(), nil))

	// 仍被消费记录引用
	mock.ExpectQuery("SELECT count.* FROM `expenses`").
		WithArgs(uint(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewCategoryHandler()
	router.DELETE("/categories/:id", withUser(1), h.Delete)

	req := httptest.NewRequest("DELETE", "/categories/5", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "无法删除")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryHandler_Update_NotFound(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	cfg := testConfig()
	config.GlobalConfig = cfg
	defer func() { config.GlobalConfig = nil }()

	mock.ExpectQuery("SELECT .* FROM `categories`").
		WithArgs(uint(99)).
		WillReturnRows(sqlmock.NewRows(categoryColumns()))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewCategoryHandler()
	router.PUT("/categories/:id", withUser(1), h.Update)

	body := `{"name":"新名字"}`
	req := httptest.NewRequest("PUT", "/categories/99", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 404, w.Code)
	assert.Contains(t, w.Body.String(), "类别不存在")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryHandler_BadIDParam(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	cfg := testConfig()
	config.GlobalConfig = cfg
	defer func() { config.GlobalConfig = nil }()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewCategoryHandler()
	router.DELETE("/categories/:id", withUser(1), h.Delete)

	req := httptest.NewRequest("DELETE", "/categories/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "无效的ID")
}

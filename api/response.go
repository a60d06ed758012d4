package api

import (
	"net/http"

	"walletbook/service"

	"github.com/gin-gonic/gin"
)

// MessageResponse 纯消息响应体
type MessageResponse struct {
	Message string `json:"message"`
}

// OK 200 成功响应，直接返回实体
func OK(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

// Created 201 创建成功响应
func Created(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusCreated, payload)
}

// Message 带状态码的消息响应
func Message(c *gin.Context, code int, message string) {
	c.JSON(code, MessageResponse{Message: message})
}

// BadRequest 400 错误响应
func BadRequest(c *gin.Context, message string) {
	Message(c, http.StatusBadRequest, message)
}

// Unauthorized 401 错误响应
func Unauthorized(c *gin.Context, message string) {
	Message(c, http.StatusUnauthorized, message)
}

// NotFound 404 错误响应
func NotFound(c *gin.Context, message string) {
	Message(c, http.StatusNotFound, message)
}

// InternalError 500 错误响应
func InternalError(c *gin.Context, message string) {
	Message(c, http.StatusInternalServerError, message)
}

// ServiceError 业务错误到 HTTP 状态码的统一映射
// 这是唯一的映射点，处理器不各自判断错误类别
func ServiceError(c *gin.Context, err error) {
	msg := service.MessageOf(err, "操作失败")
	switch service.KindOf(err) {
	case service.KindNotFound:
		NotFound(c, msg)
	case service.KindNotOwner:
		Unauthorized(c, msg)
	case service.KindDuplicate, service.KindValidation:
		BadRequest(c, msg)
	default:
		InternalError(c, SafeErrorMessage(err, msg))
	}
}

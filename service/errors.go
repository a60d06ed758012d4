package service

import "errors"

// Kind 业务错误类别
// 处理器只根据 Kind 映射 HTTP 状态码，不检查持久层错误文本
type Kind int

const (
	// KindNotFound 记录不存在
	KindNotFound Kind = iota + 1
	// KindNotOwner 记录存在但不属于当前用户
	KindNotOwner
	// KindDuplicate 唯一键冲突（用户名、邮箱、类别名）
	KindDuplicate
	// KindValidation 参数或引用校验失败
	KindValidation
	// KindInternal 持久层或其他内部错误
	KindInternal
)

// Error 带类别的业务错误
type Error struct {
	Kind    Kind
	Message string
	Err     error // 底层错误，仅内部记录，不直接返回给客户端
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrNotFound 构造记录不存在错误
func ErrNotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// ErrNotOwner 构造越权访问错误
func ErrNotOwner(message string) *Error {
	return &Error{Kind: KindNotOwner, Message: message}
}

// ErrDuplicate 构造唯一键冲突错误
func ErrDuplicate(message string) *Error {
	return &Error{Kind: KindDuplicate, Message: message}
}

// ErrValidation 构造校验失败错误
func ErrValidation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// ErrInternal 构造内部错误，附带底层原因
func ErrInternal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf 提取错误类别，非业务错误视为内部错误
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}

// MessageOf 提取面向客户端的错误文本
func MessageOf(err error, fallback string) string {
	var se *Error
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return fallback
}

package apperr

import (
	"errors"
	"fmt"
)

// 错误分类：目录/购物车服务只对外抛这几类，底层存储或 HTTP 的原始错误
// 一律包装后再返回，列表管线本身不产生错误。
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrFormat     = errors.New("bad format")
	ErrStorage    = errors.New("storage failure")
	ErrNetwork    = errors.New("network failure")
)

// NotFound 包装未命中的实体 ID
func NotFound(kind string, id int64) error {
	return fmt.Errorf("%s %d: %w", kind, id, ErrNotFound)
}

// Validation 包装字段校验失败
func Validation(field, reason string) error {
	return fmt.Errorf("field %q %s: %w", field, reason, ErrValidation)
}

// Format 包装不合法的交换格式
func Format(reason string, cause error) error {
	if cause != nil {
		return fmt.Errorf("%s: %v: %w", reason, cause, ErrFormat)
	}
	return fmt.Errorf("%s: %w", reason, ErrFormat)
}

// Storage 包装底层键值存储错误
func Storage(op string, cause error) error {
	return fmt.Errorf("%s: %v: %w", op, cause, ErrStorage)
}

// Network 包装种子/远端集合的请求错误
func Network(op string, cause error) error {
	return fmt.Errorf("%s: %v: %w", op, cause, ErrNetwork)
}

// HTTPStatus 将错误分类映射为 HTTP 状态码，路由层统一使用
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return 404
	case errors.Is(err, ErrValidation), errors.Is(err, ErrFormat):
		return 400
	case errors.Is(err, ErrNetwork):
		return 502
	default:
		return 500
	}
}

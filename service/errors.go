package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound 指定的索引、學生或計畫不存在
	ErrNotFound = errors.New("資料不存在")
	// ErrInsufficientFunds 金庫餘額不足以報銷
	ErrInsufficientFunds = errors.New("金庫餘額不足")
	// ErrValidation 輸入不合法，任何寫入前即拒絕
	ErrValidation = errors.New("輸入資料不合法")
)

// ValidationError 帶欄位名稱的驗證錯誤，errors.Is(err, ErrValidation) 為 true
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func notFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

package api

import (
	"labbudget/config"
)

// SafeErrorMessage release 模式下不把內部錯誤細節回傳給用戶端
func SafeErrorMessage(err error, fallback string) string {
	return config.SafeErrorMessage(err, fallback)
}

package api

import (
	"net/http"
	"time"

	"labbudget/config"
	"labbudget/middleware"

	"github.com/gin-gonic/gin"
)

// getCookieOptions 依執行模式決定 cookie 安全選項
// release 模式只走 HTTPS；SameSite=Lax 擋跨站 POST
func getCookieOptions() (secure bool, sameSite http.SameSite) {
	cfg := config.GetConfig()
	if cfg != nil && cfg.Server.Mode == "release" {
		secure = true
	}
	sameSite = http.SameSiteLaxMode
	return
}

func setSessionCookie(c *gin.Context, token string, ttl time.Duration) {
	secure, sameSite := getCookieOptions()
	c.SetSameSite(sameSite)
	c.SetCookie(middleware.SessionCookieName, token, int(ttl.Seconds()), "/", "", secure, true)
}

func clearSessionCookie(c *gin.Context) {
	secure, sameSite := getCookieOptions()
	c.SetSameSite(sameSite)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", secure, true)
}

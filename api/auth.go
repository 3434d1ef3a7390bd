package api

import (
	"fmt"
	"strings"

	"labbudget/config"
	"labbudget/middleware"
	"labbudget/models"
	"labbudget/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler 共用密碼登入
type AuthHandler struct {
	cfg          *config.Config
	ledger       *service.Ledger
	passwordHash []byte
}

// NewAuthHandler 建立登入處理器
// 密碼不分大小寫：比對前一律轉小寫，設定檔給的 password_hash 也應是小寫密碼的雜湊
func NewAuthHandler(cfg *config.Config, ledger *service.Ledger) (*AuthHandler, error) {
	h := &AuthHandler{cfg: cfg, ledger: ledger}
	if cfg.Auth.PasswordHash != "" {
		h.passwordHash = []byte(cfg.Auth.PasswordHash)
		return h, nil
	}
	if cfg.Auth.Password == "" {
		return nil, fmt.Errorf("未設定登入密碼 (auth.password)")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(strings.ToLower(cfg.Auth.Password)), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("密碼雜湊失敗: %w", err)
	}
	h.passwordHash = hash
	return h, nil
}

// LoginRequest 登入請求
type LoginRequest struct {
	Username string `json:"username" example:"admin"`
	Password string `json:"password" binding:"required" example:"changeme"`
}

// LoginResponse 登入回應
type LoginResponse struct {
	Token     string                `json:"token"`
	Username  string                `json:"username"`
	LastLogin *models.LoginLogEntry `json:"last_login,omitempty"`
}

// SessionResponse 目前登入狀態
type SessionResponse struct {
	Username  string                `json:"username"`
	LastLogin *models.LoginLogEntry `json:"last_login,omitempty"`
}

// Login 登入
// @Summary 登入
// @Description 以共用密碼登入，成功後回傳 JWT 並寫入 HttpOnly cookie
// @Tags 認證
// @Accept json
// @Produce json
// @Param request body LoginRequest true "登入資訊"
// @Success 200 {object} Response{data=LoginResponse} "登入成功"
// @Failure 400 {object} Response "請求參數錯誤"
// @Failure 401 {object} Response "密碼錯誤"
// @Failure 429 {object} Response "嘗試過於頻繁"
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := bcrypt.CompareHashAndPassword(h.passwordHash, []byte(strings.ToLower(req.Password))); err != nil {
		zap.S().Warnf("登入失敗: ip=%s", c.ClientIP())
		Unauthorized(c, "密碼錯誤")
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		username = h.cfg.Auth.Username
	}

	// 先取上一次登入，再記錄這一次
	last, hasLast, err := h.ledger.LastLogin(0)
	if err != nil {
		respondError(c, err, "讀取登入紀錄失敗")
		return
	}
	if _, err := h.ledger.RecordLogin(username); err != nil {
		respondError(c, err, "寫入登入紀錄失敗")
		return
	}

	token, err := middleware.GenerateToken(username, h.cfg.JWT.ExpireTime)
	if err != nil {
		InternalError(c, "產生憑證失敗")
		return
	}
	setSessionCookie(c, token, h.cfg.JWT.ExpireTime)

	resp := LoginResponse{Token: token, Username: username}
	if hasLast {
		resp.LastLogin = &last
	}
	SuccessWithMessage(c, "登入成功", resp)
}

// Logout 登出
// @Summary 登出
// @Description 清除 session cookie
// @Tags 認證
// @Produce json
// @Success 200 {object} Response "登出成功"
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	clearSessionCookie(c)
	SuccessWithMessage(c, "已登出", nil)
}

// Session 目前登入者與上次登入時間
// @Summary 登入狀態
// @Tags 認證
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=SessionResponse} "取得成功"
// @Failure 401 {object} Response "未登入"
// @Router /api/v1/session [get]
func (h *AuthHandler) Session(c *gin.Context) {
	resp := SessionResponse{Username: middleware.GetCurrentUsername(c)}
	last, ok, err := h.ledger.LastLogin(1)
	if err != nil {
		respondError(c, err, "讀取登入紀錄失敗")
		return
	}
	if ok {
		resp.LastLogin = &last
	}
	Success(c, resp)
}

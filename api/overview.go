package api

import (
	"errors"
	"net/http"

	"labbudget/service"

	"github.com/gin-gonic/gin"
)

// OverviewHandler 預算總覽與到期提醒
type OverviewHandler struct {
	ledger *service.Ledger
	email  *service.EmailService
}

// NewOverviewHandler 建立總覽處理器
func NewOverviewHandler(ledger *service.Ledger, email *service.EmailService) *OverviewHandler {
	return &OverviewHandler{ledger: ledger, email: email}
}

// DigestRequest 到期提醒收件人，留空使用設定檔
type DigestRequest struct {
	Recipients []string `json:"recipients" binding:"omitempty,dive,email"`
}

// DigestResponse 寄送結果
type DigestResponse struct {
	Sent     bool `json:"sent"`
	Expiring int  `json:"expiring"`
}

// Get 總覽
// @Summary 預算總覽
// @Description 金庫餘額、各計畫執行情況（依結束日期）、待執行規劃、廠商寄放總額
// @Tags 總覽
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=service.Overview} "取得成功"
// @Router /api/v1/overview [get]
func (h *OverviewHandler) Get(c *gin.Context) {
	overview, err := h.ledger.Overview()
	if err != nil {
		respondError(c, err, "讀取總覽失敗")
		return
	}
	Success(c, overview)
}

// SendExpiryDigest 寄送即將到期計畫提醒
// @Summary 寄送到期提醒
// @Description 結束日期在三個月內的計畫以郵件通知；沒有即將到期的計畫時不寄送
// @Tags 總覽
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body DigestRequest false "收件人"
// @Success 200 {object} Response{data=DigestResponse} "處理完成"
// @Failure 400 {object} Response "沒有收件人"
// @Failure 503 {object} Response "郵件服務未啟用"
// @Router /api/v1/overview/expiry-digest [post]
func (h *OverviewHandler) SendExpiryDigest(c *gin.Context) {
	var req DigestRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	overview, err := h.ledger.Overview()
	if err != nil {
		respondError(c, err, "讀取總覽失敗")
		return
	}

	sent, err := h.email.SendExpiryDigest(req.Recipients, overview)
	if errors.Is(err, service.ErrEmailDisabled) {
		Error(c, http.StatusServiceUnavailable, err.Error())
		return
	}
	if err != nil {
		respondError(c, err, "寄送提醒失敗")
		return
	}

	resp := DigestResponse{Sent: sent, Expiring: len(overview.ExpiringProjects())}
	if !sent {
		SuccessWithMessage(c, "沒有即將到期的計畫", resp)
		return
	}
	SuccessWithMessage(c, "已寄送", resp)
}

package api

import (
	"labbudget/models"
	"labbudget/service"

	"github.com/gin-gonic/gin"
)

// VendorHandler 廠商與寄放金額
type VendorHandler struct {
	ledger *service.Ledger
}

// NewVendorHandler 建立廠商處理器
func NewVendorHandler(ledger *service.Ledger) *VendorHandler {
	return &VendorHandler{ledger: ledger}
}

// DepositRequest 寄放金額
type DepositRequest struct {
	Deposit *float64 `json:"deposit" binding:"required" example:"5000"`
}

// List 廠商列表
// @Summary 廠商列表
// @Tags 廠商
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=service.VendorList} "取得成功"
// @Router /api/v1/vendors [get]
func (h *VendorHandler) List(c *gin.Context) {
	list, err := h.ledger.ListVendors()
	if err != nil {
		respondError(c, err, "讀取廠商失敗")
		return
	}
	Success(c, list)
}

// Create 新增廠商
// @Summary 新增廠商
// @Tags 廠商
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.Vendor true "廠商資料"
// @Success 200 {object} Response{data=models.Vendor} "新增成功"
// @Failure 400 {object} Response "請求參數錯誤"
// @Router /api/v1/vendors [post]
func (h *VendorHandler) Create(c *gin.Context) {
	var req models.Vendor
	if !bindJSON(c, &req) {
		return
	}
	vendor, err := h.ledger.AddVendor(req)
	if err != nil {
		respondError(c, err, "新增廠商失敗")
		return
	}
	SuccessWithMessage(c, "新增成功", vendor)
}

// UpdateDeposit 覆寫寄放金額
// @Summary 修改寄放金額
// @Description 直接覆寫，不影響金庫
// @Tags 廠商
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param index path int true "廠商位置"
// @Param request body DepositRequest true "寄放金額"
// @Success 200 {object} Response{data=models.Vendor} "修改成功"
// @Failure 404 {object} Response "廠商不存在"
// @Router /api/v1/vendors/{index}/deposit [put]
func (h *VendorHandler) UpdateDeposit(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}
	var req DepositRequest
	if !bindJSON(c, &req) {
		return
	}
	vendor, err := h.ledger.UpdateDeposit(index, *req.Deposit)
	if err != nil {
		respondError(c, err, "修改寄放金額失敗")
		return
	}
	SuccessWithMessage(c, "修改成功", vendor)
}

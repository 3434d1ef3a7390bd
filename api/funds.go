package api

import (
	"labbudget/service"

	"github.com/gin-gonic/gin"
)

// FundsHandler 金庫、學生帳戶與異動紀錄
type FundsHandler struct {
	ledger *service.Ledger
}

// NewFundsHandler 建立資金處理器
func NewFundsHandler(ledger *service.Ledger) *FundsHandler {
	return &FundsHandler{ledger: ledger}
}

// StudentRequest 新增或修改學生
type StudentRequest struct {
	Name    string  `json:"name" binding:"required" example:"王小明"`
	Balance float64 `json:"balance" example:"0"`
}

// LabCash 金庫餘額與流水
// @Summary 金庫
// @Tags 資金
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=service.LabCashSummary} "取得成功"
// @Router /api/v1/lab-cash [get]
func (h *FundsHandler) LabCash(c *gin.Context) {
	summary, err := h.ledger.ListLabCash()
	if err != nil {
		respondError(c, err, "讀取金庫失敗")
		return
	}
	Success(c, summary)
}

// AdjustLabCash 手動調整金庫
// @Summary 金庫調整
// @Description 流入或流出，同時在異動紀錄留下 Adjustment
// @Tags 資金
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CashAdjustmentInput true "調整內容"
// @Success 200 {object} Response{data=models.LabCashEntry} "調整成功"
// @Failure 400 {object} Response "請求參數錯誤"
// @Router /api/v1/lab-cash/adjust [post]
func (h *FundsHandler) AdjustLabCash(c *gin.Context) {
	var req service.CashAdjustmentInput
	if !bindJSON(c, &req) {
		return
	}
	entry, err := h.ledger.AdjustLabCash(req)
	if err != nil {
		respondError(c, err, "金庫調整失敗")
		return
	}
	SuccessWithMessage(c, "調整成功", entry)
}

// Students 學生帳戶列表
// @Summary 學生列表
// @Tags 資金
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=service.StudentList} "取得成功"
// @Router /api/v1/students [get]
func (h *FundsHandler) Students(c *gin.Context) {
	list, err := h.ledger.ListStudents()
	if err != nil {
		respondError(c, err, "讀取學生失敗")
		return
	}
	Success(c, list)
}

// AddStudent 新增學生
// @Summary 新增學生
// @Tags 資金
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body StudentRequest true "學生資料"
// @Success 200 {object} Response{data=models.Student} "新增成功"
// @Failure 400 {object} Response "請求參數錯誤"
// @Router /api/v1/students [post]
func (h *FundsHandler) AddStudent(c *gin.Context) {
	var req StudentRequest
	if !bindJSON(c, &req) {
		return
	}
	student, err := h.ledger.AddStudent(req.Name, req.Balance)
	if err != nil {
		respondError(c, err, "新增學生失敗")
		return
	}
	SuccessWithMessage(c, "新增成功", student)
}

// UpdateStudent 直接修改學生姓名與餘額
// @Summary 修改學生
// @Description 不留異動紀錄
// @Tags 資金
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param index path int true "學生位置"
// @Param request body StudentRequest true "學生資料"
// @Success 200 {object} Response{data=models.Student} "修改成功"
// @Failure 404 {object} Response "學生不存在"
// @Router /api/v1/students/{index} [put]
func (h *FundsHandler) UpdateStudent(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}
	var req StudentRequest
	if !bindJSON(c, &req) {
		return
	}
	student, err := h.ledger.UpdateStudent(index, req.Name, req.Balance)
	if err != nil {
		respondError(c, err, "修改學生失敗")
		return
	}
	SuccessWithMessage(c, "修改成功", student)
}

// StudentAction 對學生執行代墊、報銷、發獎金或手動調整
// @Summary 學生資金異動
// @Tags 資金
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param name path string true "學生姓名"
// @Param request body service.StudentActionInput true "異動內容"
// @Success 200 {object} Response{data=service.StudentActionResult} "異動成功"
// @Failure 400 {object} Response "請求參數錯誤"
// @Failure 404 {object} Response "學生不存在"
// @Failure 409 {object} Response "金庫餘額不足"
// @Router /api/v1/students/{name}/actions [post]
func (h *FundsHandler) StudentAction(c *gin.Context) {
	var req service.StudentActionInput
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.ledger.ApplyStudentAction(c.Param("name"), req)
	if err != nil {
		respondError(c, err, "資金異動失敗")
		return
	}
	SuccessWithMessage(c, "異動成功", result)
}

// CashLog 異動紀錄
// @Summary 異動紀錄
// @Description 最新在前；index 為儲存位置
// @Tags 資金
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]service.CashLogRow} "取得成功"
// @Router /api/v1/cash-log [get]
func (h *FundsHandler) CashLog(c *gin.Context) {
	rows, err := h.ledger.ListCashLog()
	if err != nil {
		respondError(c, err, "讀取異動紀錄失敗")
		return
	}
	Success(c, rows)
}

// DeleteCashLog 只刪紀錄
// @Summary 刪除異動紀錄
// @Description 不回復學生餘額與金庫
// @Tags 資金
// @Produce json
// @Security BearerAuth
// @Param index path int true "紀錄位置"
// @Success 200 {object} Response{data=models.StudentCashLogEntry} "刪除成功"
// @Failure 404 {object} Response "紀錄不存在"
// @Router /api/v1/cash-log/{index} [delete]
func (h *FundsHandler) DeleteCashLog(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}
	entry, err := h.ledger.DeleteCashLog(index)
	if err != nil {
		respondError(c, err, "刪除異動紀錄失敗")
		return
	}
	SuccessWithMessage(c, "刪除成功", entry)
}

// ReverseCashLog 沖銷異動並刪除紀錄
// @Summary 沖銷異動紀錄
// @Description 回復學生餘額與金庫後刪除紀錄；手動調整無法沖銷
// @Tags 資金
// @Produce json
// @Security BearerAuth
// @Param index path int true "紀錄位置"
// @Success 200 {object} Response{data=models.StudentCashLogEntry} "沖銷成功"
// @Failure 400 {object} Response "無法沖銷"
// @Failure 404 {object} Response "紀錄不存在"
// @Router /api/v1/cash-log/{index}/reverse [post]
func (h *FundsHandler) ReverseCashLog(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}
	entry, err := h.ledger.ReverseCashLog(index)
	if err != nil {
		respondError(c, err, "沖銷失敗")
		return
	}
	SuccessWithMessage(c, "沖銷成功", entry)
}

package api

import (
	"labbudget/service"

	"github.com/gin-gonic/gin"
)

// JournalHandler 支出與規劃
type JournalHandler struct {
	ledger *service.Ledger
}

// NewJournalHandler 建立支出與規劃處理器
func NewJournalHandler(ledger *service.Ledger) *JournalHandler {
	return &JournalHandler{ledger: ledger}
}

func journalFilter(c *gin.Context) service.JournalFilter {
	return service.JournalFilter{
		Project:  c.Query("project"),
		Category: c.Query("category"),
	}
}

// ListExpenses 支出列表
// @Summary 支出列表
// @Description 新的在前，可依計畫與類別篩選；index 為儲存位置
// @Tags 支出
// @Produce json
// @Security BearerAuth
// @Param project query string false "計畫名稱"
// @Param category query string false "類別"
// @Success 200 {object} Response{data=[]service.JournalRow} "取得成功"
// @Router /api/v1/expenses [get]
func (h *JournalHandler) ListExpenses(c *gin.Context) {
	rows, err := h.ledger.ListExpenses(journalFilter(c))
	if err != nil {
		respondError(c, err, "讀取支出失敗")
		return
	}
	Success(c, rows)
}

// AddExpense 新增支出
// @Summary 新增支出
// @Tags 支出
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.EntryInput true "支出內容"
// @Success 200 {object} Response{data=models.Expense} "新增成功"
// @Failure 400 {object} Response "請求參數錯誤"
// @Router /api/v1/expenses [post]
func (h *JournalHandler) AddExpense(c *gin.Context) {
	var req service.EntryInput
	if !bindJSON(c, &req) {
		return
	}
	entry, err := h.ledger.AddExpense(req)
	if err != nil {
		respondError(c, err, "新增支出失敗")
		return
	}
	SuccessWithMessage(c, "新增成功", entry)
}

// EditExpense 修改支出金額、備註與日期
// @Summary 修改支出
// @Tags 支出
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param index path int true "支出位置"
// @Param request body service.EntryEdit true "修改內容"
// @Success 200 {object} Response{data=models.Expense} "修改成功"
// @Failure 404 {object} Response "紀錄不存在"
// @Router /api/v1/expenses/{index} [put]
func (h *JournalHandler) EditExpense(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}
	var req service.EntryEdit
	if !bindJSON(c, &req) {
		return
	}
	entry, err := h.ledger.EditExpense(index, req)
	if err != nil {
		respondError(c, err, "修改支出失敗")
		return
	}
	SuccessWithMessage(c, "修改成功", entry)
}

// DeleteExpense 刪除支出
// @Summary 刪除支出
// @Tags 支出
// @Produce json
// @Security BearerAuth
// @Param index path int true "支出位置"
// @Success 200 {object} Response{data=models.Expense} "刪除成功"
// @Failure 404 {object} Response "紀錄不存在"
// @Router /api/v1/expenses/{index} [delete]
func (h *JournalHandler) DeleteExpense(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}
	entry, err := h.ledger.DeleteExpense(index)
	if err != nil {
		respondError(c, err, "刪除支出失敗")
		return
	}
	SuccessWithMessage(c, "刪除成功", entry)
}

// ListPlans 規劃列表
// @Summary 規劃列表
// @Tags 規劃
// @Produce json
// @Security BearerAuth
// @Param project query string false "計畫名稱"
// @Param category query string false "類別"
// @Success 200 {object} Response{data=[]service.JournalRow} "取得成功"
// @Router /api/v1/plans [get]
func (h *JournalHandler) ListPlans(c *gin.Context) {
	rows, err := h.ledger.ListPlans(journalFilter(c))
	if err != nil {
		respondError(c, err, "讀取規劃失敗")
		return
	}
	Success(c, rows)
}

// AddPlan 新增規劃
// @Summary 新增規劃
// @Tags 規劃
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.EntryInput true "規劃內容"
// @Success 200 {object} Response{data=models.Expense} "新增成功"
// @Failure 400 {object} Response "請求參數錯誤"
// @Router /api/v1/plans [post]
func (h *JournalHandler) AddPlan(c *gin.Context) {
	var req service.EntryInput
	if !bindJSON(c, &req) {
		return
	}
	plan, err := h.ledger.AddPlan(req)
	if err != nil {
		respondError(c, err, "新增規劃失敗")
		return
	}
	SuccessWithMessage(c, "新增成功", plan)
}

// EditPlan 修改規劃
// @Summary 修改規劃
// @Tags 規劃
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param index path int true "規劃位置"
// @Param request body service.EntryEdit true "修改內容"
// @Success 200 {object} Response{data=models.Expense} "修改成功"
// @Failure 404 {object} Response "紀錄不存在"
// @Router /api/v1/plans/{index} [put]
func (h *JournalHandler) EditPlan(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}
	var req service.EntryEdit
	if !bindJSON(c, &req) {
		return
	}
	plan, err := h.ledger.EditPlan(index, req)
	if err != nil {
		respondError(c, err, "修改規劃失敗")
		return
	}
	SuccessWithMessage(c, "修改成功", plan)
}

// DeletePlan 刪除規劃
// @Summary 刪除規劃
// @Tags 規劃
// @Produce json
// @Security BearerAuth
// @Param index path int true "規劃位置"
// @Success 200 {object} Response{data=models.Expense} "刪除成功"
// @Failure 404 {object} Response "紀錄不存在"
// @Router /api/v1/plans/{index} [delete]
func (h *JournalHandler) DeletePlan(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}
	plan, err := h.ledger.DeletePlan(index)
	if err != nil {
		respondError(c, err, "刪除規劃失敗")
		return
	}
	SuccessWithMessage(c, "刪除成功", plan)
}

// PromotePlan 規劃轉為實際支出
// @Summary 規劃轉支出
// @Description 規劃原樣移到支出
// @Tags 規劃
// @Produce json
// @Security BearerAuth
// @Param index path int true "規劃位置"
// @Success 200 {object} Response{data=models.Expense} "已轉為支出"
// @Failure 404 {object} Response "紀錄不存在"
// @Router /api/v1/plans/{index}/promote [post]
func (h *JournalHandler) PromotePlan(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}
	entry, err := h.ledger.PromotePlan(index)
	if err != nil {
		respondError(c, err, "規劃轉支出失敗")
		return
	}
	SuccessWithMessage(c, "已轉為支出", entry)
}

package api

import (
	"labbudget/service"

	"github.com/gin-gonic/gin"
)

// NoteHandler 經費規劃筆記
type NoteHandler struct {
	ledger *service.Ledger
}

// NewNoteHandler 建立筆記處理器
func NewNoteHandler(ledger *service.Ledger) *NoteHandler {
	return &NoteHandler{ledger: ledger}
}

// List 筆記列表
// @Summary 筆記列表
// @Tags 筆記
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]service.NoteRow} "取得成功"
// @Router /api/v1/notes [get]
func (h *NoteHandler) List(c *gin.Context) {
	notes, err := h.ledger.ListNotes()
	if err != nil {
		respondError(c, err, "讀取筆記失敗")
		return
	}
	Success(c, notes)
}

// Create 新增筆記
// @Summary 新增筆記
// @Tags 筆記
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.NoteInput true "筆記內容"
// @Success 200 {object} Response{data=models.Note} "新增成功"
// @Failure 400 {object} Response "內容為空"
// @Router /api/v1/notes [post]
func (h *NoteHandler) Create(c *gin.Context) {
	var req service.NoteInput
	if !bindJSON(c, &req) {
		return
	}
	note, err := h.ledger.AddNote(req)
	if err != nil {
		respondError(c, err, "新增筆記失敗")
		return
	}
	SuccessWithMessage(c, "新增成功", note)
}

// Update 修改筆記
// @Summary 修改筆記
// @Tags 筆記
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param index path int true "筆記位置"
// @Param request body service.NoteInput true "筆記內容"
// @Success 200 {object} Response{data=models.Note} "修改成功"
// @Failure 404 {object} Response "筆記不存在"
// @Router /api/v1/notes/{index} [put]
func (h *NoteHandler) Update(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}
	var req service.NoteInput
	if !bindJSON(c, &req) {
		return
	}
	note, err := h.ledger.EditNote(index, req)
	if err != nil {
		respondError(c, err, "修改筆記失敗")
		return
	}
	SuccessWithMessage(c, "修改成功", note)
}

// Delete 刪除筆記
// @Summary 刪除筆記
// @Tags 筆記
// @Produce json
// @Security BearerAuth
// @Param index path int true "筆記位置"
// @Success 200 {object} Response{data=models.Note} "刪除成功"
// @Failure 404 {object} Response "筆記不存在"
// @Router /api/v1/notes/{index} [delete]
func (h *NoteHandler) Delete(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}
	note, err := h.ledger.DeleteNote(index)
	if err != nil {
		respondError(c, err, "刪除筆記失敗")
		return
	}
	SuccessWithMessage(c, "刪除成功", note)
}

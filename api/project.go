package api

import (
	"labbudget/service"

	"github.com/gin-gonic/gin"
)

// ProjectHandler 計畫管理
type ProjectHandler struct {
	ledger *service.Ledger
}

// NewProjectHandler 建立計畫處理器
func NewProjectHandler(ledger *service.Ledger) *ProjectHandler {
	return &ProjectHandler{ledger: ledger}
}

// List 計畫列表
// @Summary 計畫列表
// @Description 依結束日期排序，附執行率與到期提醒；index 為儲存位置
// @Tags 計畫
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]service.ProjectSummary} "取得成功"
// @Router /api/v1/projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.ledger.ListProjects()
	if err != nil {
		respondError(c, err, "讀取計畫失敗")
		return
	}
	Success(c, projects)
}

// Get 單一計畫
// @Summary 計畫詳情
// @Tags 計畫
// @Produce json
// @Security BearerAuth
// @Param index path int true "計畫位置"
// @Success 200 {object} Response{data=service.ProjectSummary} "取得成功"
// @Failure 404 {object} Response "計畫不存在"
// @Router /api/v1/projects/{index} [get]
func (h *ProjectHandler) Get(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}
	project, err := h.ledger.GetProject(index)
	if err != nil {
		respondError(c, err, "讀取計畫失敗")
		return
	}
	Success(c, project)
}

// Create 新增計畫
// @Summary 新增計畫
// @Tags 計畫
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.ProjectInput true "計畫內容"
// @Success 200 {object} Response{data=models.Project} "新增成功"
// @Failure 400 {object} Response "請求參數錯誤"
// @Router /api/v1/projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var req service.ProjectInput
	if !bindJSON(c, &req) {
		return
	}
	project, err := h.ledger.CreateProject(req)
	if err != nil {
		respondError(c, err, "新增計畫失敗")
		return
	}
	SuccessWithMessage(c, "新增成功", project)
}

// Update 修改計畫
// @Summary 修改計畫
// @Description 整筆取代，id 不變
// @Tags 計畫
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param index path int true "計畫位置"
// @Param request body service.ProjectInput true "計畫內容"
// @Success 200 {object} Response{data=models.Project} "修改成功"
// @Failure 400 {object} Response "請求參數錯誤"
// @Failure 404 {object} Response "計畫不存在"
// @Router /api/v1/projects/{index} [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}
	var req service.ProjectInput
	if !bindJSON(c, &req) {
		return
	}
	project, err := h.ledger.UpdateProject(index, req)
	if err != nil {
		respondError(c, err, "修改計畫失敗")
		return
	}
	SuccessWithMessage(c, "修改成功", project)
}

// Delete 刪除計畫
// @Summary 刪除計畫
// @Description 只刪計畫本身，相關支出與規劃保留
// @Tags 計畫
// @Produce json
// @Security BearerAuth
// @Param index path int true "計畫位置"
// @Success 200 {object} Response{data=models.Project} "刪除成功"
// @Failure 404 {object} Response "計畫不存在"
// @Router /api/v1/projects/{index} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}
	project, err := h.ledger.DeleteProject(index)
	if err != nil {
		respondError(c, err, "刪除計畫失敗")
		return
	}
	SuccessWithMessage(c, "刪除成功", project)
}

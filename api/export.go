package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"labbudget/service"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 匯出
type ExportHandler struct {
	ledger *service.Ledger
}

// NewExportHandler 建立匯出處理器
func NewExportHandler(ledger *service.Ledger) *ExportHandler {
	return &ExportHandler{ledger: ledger}
}

// ExportCSV 匯出支出紀錄為 CSV
// @Summary 匯出支出
// @Description 支出紀錄匯出為 CSV，新的在前，可依計畫與類別篩選
// @Tags 匯出
// @Produce text/csv
// @Security BearerAuth
// @Param project query string false "計畫名稱"
// @Param category query string false "類別"
// @Success 200 {file} file "CSV 檔案"
// @Failure 401 {object} Response "未授權"
// @Router /api/v1/export/expenses.csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	rows, err := h.ledger.ListExpenses(journalFilter(c))
	if err != nil {
		respondError(c, err, "讀取支出失敗")
		return
	}

	buf := new(bytes.Buffer)
	// BOM 讓 Excel 正確顯示中文
	buf.WriteString("\xEF\xBB\xBF")

	writer := csv.NewWriter(buf)
	headers := []string{"計畫", "類別", "金額", "備註", "日期"}
	if err := writer.Write(headers); err != nil {
		InternalError(c, "產生 CSV 失敗")
		return
	}
	for _, row := range rows {
		record := []string{
			row.Project,
			row.Category,
			strconv.FormatFloat(row.Amount, 'f', -1, 64),
			row.Note,
			row.Date,
		}
		if err := writer.Write(record); err != nil {
			InternalError(c, "產生 CSV 失敗")
			return
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		InternalError(c, "產生 CSV 失敗")
		return
	}

	filename := fmt.Sprintf("expenses_%s.csv", h.ledger.Today().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportExcel 匯出全部資料
// @Summary 匯出 Excel
// @Description 每個集合一個工作表
// @Tags 匯出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} file "Excel 檔案"
// @Failure 500 {object} Response "匯出失敗"
// @Router /api/v1/export/excel [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	buf := new(bytes.Buffer)
	if err := h.ledger.ExportWorkbook(buf); err != nil {
		respondError(c, err, "匯出 Excel 失敗")
		return
	}

	filename := fmt.Sprintf("labbudget_%s.xlsx", h.ledger.Today().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

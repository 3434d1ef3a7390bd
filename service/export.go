package service

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"labbudget/database"
	"labbudget/models"

	"github.com/xuri/excelize/v2"
)

// 各集合的欄位順序，與資料檔欄位名稱一致
var exportColumns = map[string][]string{
	models.CollectionExpenses:       {"project", "category", "amount", "note", "date"},
	models.CollectionPlans:          {"project", "category", "amount", "note", "date"},
	models.CollectionStudents:       {"name", "balance"},
	models.CollectionLabCash:        {"amount", "type", "note", "date"},
	models.CollectionStudentCashLog: {"name", "action", "amount", "note", "date"},
	models.CollectionVendors:        {"name", "vat", "address", "phone", "email", "website", "representative", "note", "deposit"},
	models.CollectionNotes:          {"date", "content", "created_at"},
	models.CollectionLoginLog:       {"username", "login_time"},
}

func budgetColumns() []string {
	cols := []string{"id", "name", "start_date", "end_date"}
	for _, c := range models.GetCategories() {
		cols = append(cols, "categories."+c)
	}
	return cols
}

// ExportWorkbook 把每個集合匯出成一張工作表
func (l *Ledger) ExportWorkbook(w io.Writer) error {
	unlock := l.locks.lock(models.AllCollections()...)
	defer unlock()

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("建立表頭樣式失敗: %w", err)
	}

	for i, name := range models.AllCollections() {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return err
		}

		data, err := l.store.Read(name)
		if err != nil {
			return err
		}
		rows, err := flattenRecords(data)
		if err != nil {
			return &database.IOError{Op: "解析", Collection: name, Err: err}
		}
		if err := writeSheet(f, name, columnsFor(name, rows), rows, headerStyle); err != nil {
			return fmt.Errorf("寫入工作表 %s 失敗: %w", name, err)
		}
	}

	f.SetActiveSheet(0)
	return f.Write(w)
}

func writeSheet(f *excelize.File, sheet string, columns []string, rows []map[string]any, headerStyle int) error {
	for c, header := range columns {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}
	if len(columns) == 0 {
		return nil
	}

	last, err := excelize.ColumnNumberToName(len(columns))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last+"1", headerStyle); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", last, 16); err != nil {
		return err
	}

	for r, row := range rows {
		for c, header := range columns {
			v, ok := row[header]
			if !ok || v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// flattenRecords 解析 JSON 陣列，巢狀物件攤平成 parent.child 欄位
func flattenRecords(data []byte) ([]map[string]any, error) {
	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	rows := make([]map[string]any, len(raw))
	for i, rec := range raw {
		row := make(map[string]any, len(rec))
		flatten("", rec, row)
		rows[i] = row
	}
	return rows, nil
}

func flatten(prefix string, in map[string]any, out map[string]any) {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok {
			flatten(key, nested, out)
			continue
		}
		out[key] = v
	}
}

// columnsFor 固定欄位在前，資料中多出的欄位依字典序接在後面
func columnsFor(name string, rows []map[string]any) []string {
	var columns []string
	if name == models.CollectionBudgets {
		columns = budgetColumns()
	} else {
		columns = append(columns, exportColumns[name]...)
	}

	known := make(map[string]bool, len(columns))
	for _, c := range columns {
		known[c] = true
	}
	var extra []string
	for _, row := range rows {
		for k := range row {
			if !known[k] {
				known[k] = true
				extra = append(extra, k)
			}
		}
	}
	sort.Strings(extra)
	return append(columns, extra...)
}

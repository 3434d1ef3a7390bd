package models

// DateLayout 資料檔中的日期格式
const DateLayout = "2006-01-02"

// TimestampLayout 建立時間、登入時間的格式
const TimestampLayout = "2006-01-02 15:04:05"

// Project 計畫（預算）
// name 可修改且不保證唯一；ID 為建立時產生的穩定識別碼
type Project struct {
	Name       string         `json:"name"`
	StartDate  string         `json:"start_date"`
	EndDate    string         `json:"end_date"`
	Categories CategoryBudget `json:"categories"`
	ID         string         `json:"id,omitempty"`
}

// TotalBudget 預算總額
func (p Project) TotalBudget() float64 {
	return p.Categories.Total()
}

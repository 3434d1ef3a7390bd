package models

// Expense 實際支出紀錄
// project 以名稱關聯計畫，不檢查是否存在
type Expense struct {
	Project  string  `json:"project"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Note     string  `json:"note"`
	Date     string  `json:"date"`
}

// Plan 經費規劃（尚未執行），欄位與 Expense 相同
type Plan = Expense

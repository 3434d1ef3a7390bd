package models

// 金庫流向
const (
	CashInflow  = "inflow"
	CashOutflow = "outflow"
)

// LabCashEntry 實驗室金庫流水
// 金庫餘額不落地，一律由全部流水重新計算
type LabCashEntry struct {
	Amount float64 `json:"amount"`
	Type   string  `json:"type"`
	Note   string  `json:"note"`
	Date   string  `json:"date"`
	// 舊版金庫頁面把備註寫在 source
	Source string `json:"source,omitempty"`
}

// Signed 流入為正、其餘視為流出
func (e LabCashEntry) Signed() float64 {
	if e.Type == CashInflow {
		return e.Amount
	}
	return -e.Amount
}

// Normalize 舊資料相容
func (e *LabCashEntry) Normalize() {
	if e.Note == "" && e.Source != "" {
		e.Note = e.Source
	}
}

// LabTotal 金庫餘額
func LabTotal(entries []LabCashEntry) float64 {
	var total float64
	for _, e := range entries {
		total += e.Signed()
	}
	return total
}

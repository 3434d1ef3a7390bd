package models

// 學生資金異動動作（資料檔中的字面值）
const (
	ActionAdvance   = "代墊"
	ActionReimburse = "報銷"
	ActionBonus     = "發獎金"
	ActionManualSet = "手動調整"
	// ActionAdjustment 金庫手動調整的鏡像紀錄
	ActionAdjustment = "Adjustment"
	// ActionLegacyBonus 舊版學生頁面寫入的獎金動作
	ActionLegacyBonus = "獎金"
)

// LabCashLogName 金庫調整紀錄使用的名稱
const LabCashLogName = "Lab Cash"

// StudentActions 可對學生執行的四種動作
func StudentActions() []string {
	return []string{ActionAdvance, ActionReimburse, ActionBonus, ActionManualSet}
}

// IsStudentAction 判斷是否為學生動作
func IsStudentAction(action string) bool {
	for _, a := range StudentActions() {
		if a == action {
			return true
		}
	}
	return false
}

// Student 學生帳戶，balance 直接儲存（可為負）
type Student struct {
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
}

// StudentCashLogEntry 資金異動紀錄
type StudentCashLogEntry struct {
	Name   string  `json:"name"`
	Action string  `json:"action"`
	Amount float64 `json:"amount"`
	Note   string  `json:"note"`
	Date   string  `json:"date"`
	// 舊版學生頁面使用 student / type 欄位
	LegacyStudent string `json:"student,omitempty"`
	LegacyType    string `json:"type,omitempty"`
}

// Normalize 舊資料相容
func (e *StudentCashLogEntry) Normalize() {
	if e.Name == "" && e.LegacyStudent != "" {
		e.Name = e.LegacyStudent
	}
	if e.Action == "" && e.LegacyType != "" {
		e.Action = e.LegacyType
	}
}

package models

import "time"

// 集合名稱（對應 data/<name>.json，屬於外部介面）
const (
	CollectionBudgets        = "budgets"
	CollectionExpenses       = "expenses"
	CollectionPlans          = "plans"
	CollectionStudents       = "students"
	CollectionLabCash        = "lab_cash"
	CollectionStudentCashLog = "student_cash_log"
	CollectionVendors        = "vendors"
	CollectionNotes          = "notes"
	CollectionLoginLog       = "login_log"
)

// AllCollections 所有集合，順序即匯出時的工作表順序
func AllCollections() []string {
	return []string{
		CollectionBudgets,
		CollectionExpenses,
		CollectionPlans,
		CollectionStudents,
		CollectionLabCash,
		CollectionStudentCashLog,
		CollectionVendors,
		CollectionNotes,
		CollectionLoginLog,
	}
}

// Document 資料庫後端下的一個集合，content 為整份 JSON 陣列
type Document struct {
	Name      string    `json:"name" gorm:"primaryKey;size:64"`
	Content   string    `json:"content" gorm:"type:longtext;not null"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 設定表名
func (Document) TableName() string {
	return "documents"
}

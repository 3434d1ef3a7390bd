package service

import (
	"strings"

	"labbudget/database"
	"labbudget/models"

	"go.uber.org/zap"
)

// EntryInput 新增支出或規劃
type EntryInput struct {
	Project  string  `json:"project"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Note     string  `json:"note"`
	Date     string  `json:"date"`
}

// EntryEdit 編輯時只能改金額、備註與日期；日期空白沿用原值，計畫與類別要刪除後重建
type EntryEdit struct {
	Amount float64 `json:"amount"`
	Note   string  `json:"note"`
	Date   string  `json:"date"`
}

// JournalFilter 列表篩選，空字串表示不篩選
type JournalFilter struct {
	Project  string
	Category string
}

func (f JournalFilter) match(e models.Expense) bool {
	if f.Project != "" && e.Project != f.Project {
		return false
	}
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	return true
}

// JournalRow 列表中的一筆，Index 為儲存位置
type JournalRow struct {
	Index int `json:"index"`
	models.Expense
}

// keptDate 編輯用：空白表示沿用原日期，回傳空字串
func keptDate(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	if _, err := parseOptionalDate(field, value); err != nil {
		return "", err
	}
	return value, nil
}

// entryDate 新增用：空白時填入今天
func (l *Ledger) entryDate(field, value string) (string, error) {
	date, err := keptDate(field, value)
	if err != nil || date != "" {
		return date, err
	}
	return l.today(), nil
}

func (l *Ledger) validateEntry(in EntryInput) (models.Expense, error) {
	project := strings.TrimSpace(in.Project)
	if project == "" {
		return models.Expense{}, invalid("project", "請選擇計畫")
	}
	if !models.IsValidCategory(in.Category) {
		return models.Expense{}, invalid("category", "未知的經費類別 %q", in.Category)
	}
	if in.Amount < 0 {
		return models.Expense{}, invalid("amount", "金額不可為負數")
	}
	date, err := l.entryDate("date", in.Date)
	if err != nil {
		return models.Expense{}, err
	}
	return models.Expense{
		Project:  project,
		Category: in.Category,
		Amount:   in.Amount,
		Note:     strings.TrimSpace(in.Note),
		Date:     date,
	}, nil
}

func journalName(collection string) string {
	if collection == models.CollectionPlans {
		return "規劃"
	}
	return "支出"
}

func (l *Ledger) addEntry(collection string, in EntryInput) (models.Expense, error) {
	entry, err := l.validateEntry(in)
	if err != nil {
		return models.Expense{}, err
	}

	unlock := l.locks.lock(collection)
	defer unlock()

	entries, err := database.Load[models.Expense](l.store, collection)
	if err != nil {
		return models.Expense{}, err
	}
	entries = append(entries, entry)
	if err := database.Save(l.store, collection, entries); err != nil {
		return models.Expense{}, err
	}
	return entry, nil
}

func (l *Ledger) editEntry(collection string, index int, edit EntryEdit) (models.Expense, error) {
	if edit.Amount < 0 {
		return models.Expense{}, invalid("amount", "金額不可為負數")
	}
	date, err := keptDate("date", edit.Date)
	if err != nil {
		return models.Expense{}, err
	}

	unlock := l.locks.lock(collection)
	defer unlock()

	entries, err := database.Load[models.Expense](l.store, collection)
	if err != nil {
		return models.Expense{}, err
	}
	if err := checkIndex(index, len(entries), journalName(collection)); err != nil {
		return models.Expense{}, err
	}

	entries[index].Amount = edit.Amount
	entries[index].Note = strings.TrimSpace(edit.Note)
	if date != "" {
		entries[index].Date = date
	}
	if err := database.Save(l.store, collection, entries); err != nil {
		return models.Expense{}, err
	}
	return entries[index], nil
}

func (l *Ledger) deleteEntry(collection string, index int) (models.Expense, error) {
	unlock := l.locks.lock(collection)
	defer unlock()

	entries, err := database.Load[models.Expense](l.store, collection)
	if err != nil {
		return models.Expense{}, err
	}
	if err := checkIndex(index, len(entries), journalName(collection)); err != nil {
		return models.Expense{}, err
	}

	removed := entries[index]
	if err := database.Save(l.store, collection, removeAt(entries, index)); err != nil {
		return models.Expense{}, err
	}
	return removed, nil
}

func (l *Ledger) listEntries(collection string, filter JournalFilter) ([]JournalRow, error) {
	unlock := l.locks.lock(collection)
	defer unlock()

	entries, err := database.Load[models.Expense](l.store, collection)
	if err != nil {
		return nil, err
	}
	return newestFirst(entries, filter), nil
}

func newestFirst(entries []models.Expense, filter JournalFilter) []JournalRow {
	rows := make([]JournalRow, 0, len(entries))
	for display := range entries {
		index := StorageIndex(len(entries), display)
		if filter.match(entries[index]) {
			rows = append(rows, JournalRow{Index: index, Expense: entries[index]})
		}
	}
	return rows
}

// AddExpense 新增實際支出
func (l *Ledger) AddExpense(in EntryInput) (e models.Expense, err error) {
	defer func() { record("add_expense", err) }()
	return l.addEntry(models.CollectionExpenses, in)
}

// AddPlan 新增經費規劃
func (l *Ledger) AddPlan(in EntryInput) (p models.Plan, err error) {
	defer func() { record("add_plan", err) }()
	return l.addEntry(models.CollectionPlans, in)
}

// EditExpense 修改支出的金額、備註、日期
func (l *Ledger) EditExpense(index int, edit EntryEdit) (e models.Expense, err error) {
	defer func() { record("edit_expense", err) }()
	return l.editEntry(models.CollectionExpenses, index, edit)
}

// EditPlan 修改規劃的金額、備註、日期
func (l *Ledger) EditPlan(index int, edit EntryEdit) (p models.Plan, err error) {
	defer func() { record("edit_plan", err) }()
	return l.editEntry(models.CollectionPlans, index, edit)
}

// DeleteExpense 刪除支出
func (l *Ledger) DeleteExpense(index int) (e models.Expense, err error) {
	defer func() { record("delete_expense", err) }()
	return l.deleteEntry(models.CollectionExpenses, index)
}

// DeletePlan 刪除規劃
func (l *Ledger) DeletePlan(index int) (p models.Plan, err error) {
	defer func() { record("delete_plan", err) }()
	return l.deleteEntry(models.CollectionPlans, index)
}

// ListExpenses 最新的支出在前
func (l *Ledger) ListExpenses(filter JournalFilter) ([]JournalRow, error) {
	return l.listEntries(models.CollectionExpenses, filter)
}

// ListPlans 最新的規劃在前
func (l *Ledger) ListPlans(filter JournalFilter) ([]JournalRow, error) {
	return l.listEntries(models.CollectionPlans, filter)
}

// PromotePlan 把規劃轉為實際支出
// 無法同時寫入兩個集合，因此先寫支出再刪規劃：中途失敗只會重複，不會遺失
func (l *Ledger) PromotePlan(index int) (e models.Expense, err error) {
	defer func() { record("promote_plan", err) }()

	unlock := l.locks.lock(models.CollectionExpenses, models.CollectionPlans)
	defer unlock()

	plans, err := database.Load[models.Plan](l.store, models.CollectionPlans)
	if err != nil {
		return models.Expense{}, err
	}
	if err := checkIndex(index, len(plans), "規劃"); err != nil {
		return models.Expense{}, err
	}
	expenses, err := database.Load[models.Expense](l.store, models.CollectionExpenses)
	if err != nil {
		return models.Expense{}, err
	}

	plan := plans[index]
	if err := database.Save(l.store, models.CollectionExpenses, append(expenses, plan)); err != nil {
		return models.Expense{}, err
	}
	if err := database.Save(l.store, models.CollectionPlans, removeAt(plans, index)); err != nil {
		zap.S().Errorf("規劃已寫入支出但未能從規劃移除，請手動刪除重複紀錄: %v", err)
		return models.Expense{}, err
	}
	zap.S().Infof("規劃轉為支出: %s %s %.0f", plan.Project, plan.Category, plan.Amount)
	return plan, nil
}

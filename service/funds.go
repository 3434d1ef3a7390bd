package service

import (
	"fmt"
	"math"
	"strings"

	"labbudget/database"
	"labbudget/models"

	"go.uber.org/zap"
)

// StudentActionInput 學生資金異動
type StudentActionInput struct {
	Action string  `json:"action"`
	Amount float64 `json:"amount"`
	Note   string  `json:"note"`
	Date   string  `json:"date"`
}

// StudentActionResult 異動後的學生、紀錄與金庫餘額
type StudentActionResult struct {
	Student  models.Student             `json:"student"`
	Log      models.StudentCashLogEntry `json:"log"`
	LabTotal float64                    `json:"lab_total"`
}

// CashAdjustmentInput 手動調整金庫
type CashAdjustmentInput struct {
	Amount float64 `json:"amount"`
	Type   string  `json:"type"`
	Note   string  `json:"note"`
	Date   string  `json:"date"`
}

// CashLogRow 異動紀錄列表中的一筆
type CashLogRow struct {
	Index int `json:"index"`
	models.StudentCashLogEntry
}

// LabCashRow 金庫流水列表中的一筆
type LabCashRow struct {
	Index int `json:"index"`
	models.LabCashEntry
}

// LabCashSummary 金庫餘額與流水（最新在前）
type LabCashSummary struct {
	Total   float64      `json:"total"`
	Entries []LabCashRow `json:"entries"`
}

// StudentList 學生帳戶列表
type StudentList struct {
	Students []StudentRow `json:"students"`
	LabTotal float64      `json:"lab_total"`
}

// StudentRow 學生與其儲存位置
type StudentRow struct {
	Index int `json:"index"`
	models.Student
}

func (l *Ledger) loadLabCash() ([]models.LabCashEntry, error) {
	entries, err := database.Load[models.LabCashEntry](l.store, models.CollectionLabCash)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Normalize()
	}
	return entries, nil
}

func (l *Ledger) loadCashLog() ([]models.StudentCashLogEntry, error) {
	entries, err := database.Load[models.StudentCashLogEntry](l.store, models.CollectionStudentCashLog)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Normalize()
	}
	return entries, nil
}

// findStudent 以名稱找第一個符合的學生
func findStudent(students []models.Student, name string) int {
	for i, s := range students {
		if s.Name == name {
			return i
		}
	}
	return -1
}

// fundsState 一次動作需要的三個集合
type fundsState struct {
	students []models.Student
	cash     []models.LabCashEntry
	log      []models.StudentCashLogEntry
}

func (l *Ledger) loadFunds() (*fundsState, error) {
	students, err := database.Load[models.Student](l.store, models.CollectionStudents)
	if err != nil {
		return nil, err
	}
	cash, err := l.loadLabCash()
	if err != nil {
		return nil, err
	}
	log, err := l.loadCashLog()
	if err != nil {
		return nil, err
	}
	return &fundsState{students: students, cash: cash, log: log}, nil
}

// saveFunds 只寫入有變動的集合，全部成功或全部不生效
func (l *Ledger) saveFunds(st *fundsState, students, cash, log bool) error {
	var writes []database.Write
	add := func(w database.Write, err error) error {
		if err != nil {
			return err
		}
		writes = append(writes, w)
		return nil
	}
	if students {
		if err := add(database.NewWrite(models.CollectionStudents, st.students)); err != nil {
			return err
		}
	}
	if cash {
		if err := add(database.NewWrite(models.CollectionLabCash, st.cash)); err != nil {
			return err
		}
	}
	if log {
		if err := add(database.NewWrite(models.CollectionStudentCashLog, st.log)); err != nil {
			return err
		}
	}
	return l.store.WriteAll(writes...)
}

func (l *Ledger) lockFunds() func() {
	return l.locks.lock(models.CollectionStudents, models.CollectionLabCash, models.CollectionStudentCashLog)
}

// ApplyStudentAction 對學生執行 代墊 / 報銷 / 發獎金 / 手動調整
//
//	代墊     balance -= amount，紀錄 -amount
//	報銷     金庫需 >= amount，balance += amount，金庫流出 amount，紀錄 +amount
//	發獎金   balance += amount，金庫流出 amount，紀錄 +amount
//	手動調整 balance = amount，紀錄 amount
func (l *Ledger) ApplyStudentAction(name string, in StudentActionInput) (res StudentActionResult, err error) {
	defer func() { record("student_action", err) }()

	if !models.IsStudentAction(in.Action) {
		return StudentActionResult{}, invalid("action", "未知的動作 %q", in.Action)
	}
	if in.Amount < 0 {
		return StudentActionResult{}, invalid("amount", "金額不可為負數")
	}
	date, err := l.entryDate("date", in.Date)
	if err != nil {
		return StudentActionResult{}, err
	}

	unlock := l.lockFunds()
	defer unlock()

	st, err := l.loadFunds()
	if err != nil {
		return StudentActionResult{}, err
	}
	idx := findStudent(st.students, name)
	if idx < 0 {
		return StudentActionResult{}, notFound("找不到學生 %q", name)
	}
	labTotal := models.LabTotal(st.cash)
	student := &st.students[idx]

	entry := models.StudentCashLogEntry{
		Name:   name,
		Action: in.Action,
		Note:   strings.TrimSpace(in.Note),
		Date:   date,
	}
	touchesCash := false

	switch in.Action {
	case models.ActionAdvance:
		student.Balance -= in.Amount
		entry.Amount = -in.Amount
	case models.ActionReimburse:
		if labTotal < in.Amount {
			return StudentActionResult{}, fmt.Errorf("%w: 餘額 %.0f，欲報銷 %.0f", ErrInsufficientFunds, labTotal, in.Amount)
		}
		student.Balance += in.Amount
		entry.Amount = in.Amount
		st.cash = append(st.cash, models.LabCashEntry{
			Amount: in.Amount,
			Type:   models.CashOutflow,
			Note:   "報銷給 " + name,
			Date:   date,
		})
		touchesCash = true
	case models.ActionBonus:
		student.Balance += in.Amount
		entry.Amount = in.Amount
		st.cash = append(st.cash, models.LabCashEntry{
			Amount: in.Amount,
			Type:   models.CashOutflow,
			Note:   "發獎金給 " + name,
			Date:   date,
		})
		touchesCash = true
	case models.ActionManualSet:
		student.Balance = in.Amount
		entry.Amount = in.Amount
	}
	st.log = append(st.log, entry)

	if err := l.saveFunds(st, true, touchesCash, true); err != nil {
		return StudentActionResult{}, err
	}
	zap.S().Infof("學生資金異動: %s %s %.0f", name, in.Action, in.Amount)
	return StudentActionResult{
		Student:  *student,
		Log:      entry,
		LabTotal: models.LabTotal(st.cash),
	}, nil
}

// AdjustLabCash 直接調整金庫，並在異動紀錄留下 Lab Cash / Adjustment
func (l *Ledger) AdjustLabCash(in CashAdjustmentInput) (e models.LabCashEntry, err error) {
	defer func() { record("adjust_lab_cash", err) }()

	note := strings.TrimSpace(in.Note)
	if note == "" {
		return models.LabCashEntry{}, invalid("note", "備註欄位不能為空")
	}
	if in.Type != models.CashInflow && in.Type != models.CashOutflow {
		return models.LabCashEntry{}, invalid("type", "類型必須是 inflow 或 outflow")
	}
	if in.Amount < 0 {
		return models.LabCashEntry{}, invalid("amount", "金額不可為負數")
	}
	date, err := l.entryDate("date", in.Date)
	if err != nil {
		return models.LabCashEntry{}, err
	}

	unlock := l.lockFunds()
	defer unlock()

	st, err := l.loadFunds()
	if err != nil {
		return models.LabCashEntry{}, err
	}

	e = models.LabCashEntry{Amount: in.Amount, Type: in.Type, Note: note, Date: date}
	st.cash = append(st.cash, e)
	st.log = append(st.log, models.StudentCashLogEntry{
		Name:   models.LabCashLogName,
		Action: models.ActionAdjustment,
		Amount: e.Signed(),
		Note:   note,
		Date:   date,
	})

	if err := l.saveFunds(st, false, true, true); err != nil {
		return models.LabCashEntry{}, err
	}
	return e, nil
}

// DeleteCashLog 只從紀錄中移除，不回復學生餘額與金庫
func (l *Ledger) DeleteCashLog(index int) (e models.StudentCashLogEntry, err error) {
	defer func() { record("delete_cash_log", err) }()

	unlock := l.locks.lock(models.CollectionStudentCashLog)
	defer unlock()

	log, err := l.loadCashLog()
	if err != nil {
		return models.StudentCashLogEntry{}, err
	}
	if err := checkIndex(index, len(log), "異動紀錄"); err != nil {
		return models.StudentCashLogEntry{}, err
	}

	e = log[index]
	if err := database.Save(l.store, models.CollectionStudentCashLog, removeAt(log, index)); err != nil {
		return models.StudentCashLogEntry{}, err
	}
	return e, nil
}

// ReverseCashLog 沖銷並刪除一筆紀錄
// 舊版頁面寫入的紀錄（student/type 欄位）當初沒有動到金庫，沖銷時也只回復學生餘額
// 手動調整無法得知先前餘額，不能沖銷
func (l *Ledger) ReverseCashLog(index int) (e models.StudentCashLogEntry, err error) {
	defer func() { record("reverse_cash_log", err) }()

	unlock := l.lockFunds()
	defer unlock()

	st, err := l.loadFunds()
	if err != nil {
		return models.StudentCashLogEntry{}, err
	}
	if err := checkIndex(index, len(st.log), "異動紀錄"); err != nil {
		return models.StudentCashLogEntry{}, err
	}
	e = st.log[index]
	legacy := e.LegacyType != ""
	date := l.today()

	touchesStudents, touchesCash := false, false
	switch e.Action {
	case models.ActionAdvance, models.ActionReimburse, models.ActionBonus, models.ActionLegacyBonus:
		idx := findStudent(st.students, e.Name)
		if idx < 0 {
			return models.StudentCashLogEntry{}, notFound("找不到學生 %q", e.Name)
		}
		st.students[idx].Balance -= e.Amount
		touchesStudents = true

		if !legacy && (e.Action == models.ActionReimburse || e.Action == models.ActionBonus) {
			st.cash = append(st.cash, models.LabCashEntry{
				Amount: e.Amount,
				Type:   models.CashInflow,
				Note:   fmt.Sprintf("沖銷%s %s", e.Action, e.Name),
				Date:   date,
			})
			touchesCash = true
		}
	case models.ActionAdjustment:
		reversal := models.LabCashEntry{
			Amount: math.Abs(e.Amount),
			Type:   models.CashOutflow,
			Note:   "沖銷調整: " + e.Note,
			Date:   date,
		}
		if e.Amount < 0 {
			reversal.Type = models.CashInflow
		}
		st.cash = append(st.cash, reversal)
		touchesCash = true
	case models.ActionManualSet:
		return models.StudentCashLogEntry{}, invalid("action", "手動調整無法沖銷，請直接再調整一次")
	default:
		return models.StudentCashLogEntry{}, invalid("action", "無法沖銷的動作 %q", e.Action)
	}

	st.log = removeAt(st.log, index)
	if err := l.saveFunds(st, touchesStudents, touchesCash, true); err != nil {
		return models.StudentCashLogEntry{}, err
	}
	zap.S().Infof("沖銷異動紀錄: %s %s %.0f", e.Name, e.Action, e.Amount)
	return e, nil
}

// AddStudent 新增學生帳戶
func (l *Ledger) AddStudent(name string, balance float64) (s models.Student, err error) {
	defer func() { record("add_student", err) }()

	name = strings.TrimSpace(name)
	if name == "" {
		return models.Student{}, invalid("name", "學生姓名不可為空")
	}

	unlock := l.locks.lock(models.CollectionStudents)
	defer unlock()

	students, err := database.Load[models.Student](l.store, models.CollectionStudents)
	if err != nil {
		return models.Student{}, err
	}
	if findStudent(students, name) >= 0 {
		zap.S().Warnf("學生 %q 已存在，異動只會套用到第一筆", name)
	}

	s = models.Student{Name: name, Balance: balance}
	if err := database.Save(l.store, models.CollectionStudents, append(students, s)); err != nil {
		return models.Student{}, err
	}
	return s, nil
}

// UpdateStudent 直接修改學生姓名與餘額（不留異動紀錄）
func (l *Ledger) UpdateStudent(index int, name string, balance float64) (s models.Student, err error) {
	defer func() { record("update_student", err) }()

	name = strings.TrimSpace(name)
	if name == "" {
		return models.Student{}, invalid("name", "學生姓名不可為空")
	}

	unlock := l.locks.lock(models.CollectionStudents)
	defer unlock()

	students, err := database.Load[models.Student](l.store, models.CollectionStudents)
	if err != nil {
		return models.Student{}, err
	}
	if err := checkIndex(index, len(students), "學生"); err != nil {
		return models.Student{}, err
	}

	students[index] = models.Student{Name: name, Balance: balance}
	if err := database.Save(l.store, models.CollectionStudents, students); err != nil {
		return models.Student{}, err
	}
	return students[index], nil
}

// ListStudents 學生帳戶與金庫餘額
func (l *Ledger) ListStudents() (StudentList, error) {
	unlock := l.locks.lock(models.CollectionStudents, models.CollectionLabCash)
	defer unlock()

	students, err := database.Load[models.Student](l.store, models.CollectionStudents)
	if err != nil {
		return StudentList{}, err
	}
	cash, err := l.loadLabCash()
	if err != nil {
		return StudentList{}, err
	}

	rows := make([]StudentRow, len(students))
	for i, s := range students {
		rows[i] = StudentRow{Index: i, Student: s}
	}
	return StudentList{Students: rows, LabTotal: models.LabTotal(cash)}, nil
}

// ListCashLog 異動紀錄，最新在前
func (l *Ledger) ListCashLog() ([]CashLogRow, error) {
	unlock := l.locks.lock(models.CollectionStudentCashLog)
	defer unlock()

	log, err := l.loadCashLog()
	if err != nil {
		return nil, err
	}
	rows := make([]CashLogRow, len(log))
	for display := range log {
		index := StorageIndex(len(log), display)
		rows[display] = CashLogRow{Index: index, StudentCashLogEntry: log[index]}
	}
	return rows, nil
}

// ListLabCash 金庫餘額與流水
func (l *Ledger) ListLabCash() (LabCashSummary, error) {
	unlock := l.locks.lock(models.CollectionLabCash)
	defer unlock()

	cash, err := l.loadLabCash()
	if err != nil {
		return LabCashSummary{}, err
	}
	rows := make([]LabCashRow, len(cash))
	for display := range cash {
		index := StorageIndex(len(cash), display)
		rows[display] = LabCashRow{Index: index, LabCashEntry: cash[index]}
	}
	return LabCashSummary{Total: models.LabTotal(cash), Entries: rows}, nil
}

// LabTotal 目前金庫餘額
func (l *Ledger) LabTotal() (float64, error) {
	summary, err := l.ListLabCash()
	if err != nil {
		return 0, err
	}
	return summary.Total, nil
}

package service

import (
	"sort"
	"strings"
	"time"

	"labbudget/database"
	"labbudget/models"

	"go.uber.org/zap"
)

// WarningMarker 到期警示符號
const WarningMarker = "⚠️"

// ProjectInput 建立或修改計畫的欄位
type ProjectInput struct {
	Name       string                `json:"name"`
	StartDate  string                `json:"start_date"`
	EndDate    string                `json:"end_date"`
	Categories models.CategoryBudget `json:"categories"`
}

func (in ProjectInput) toProject() (models.Project, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Project{}, invalid("name", "計畫名稱不可為空")
	}

	start, err := parseOptionalDate("start_date", in.StartDate)
	if err != nil {
		return models.Project{}, err
	}
	end, err := parseOptionalDate("end_date", in.EndDate)
	if err != nil {
		return models.Project{}, err
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return models.Project{}, invalid("end_date", "結束日期早於開始日期")
	}

	categories := models.NewCategoryBudget()
	for cat, amount := range in.Categories {
		if !models.IsValidCategory(cat) {
			return models.Project{}, invalid("categories", "未知的經費類別 %q", cat)
		}
		if amount < 0 {
			return models.Project{}, invalid("categories", "%s 預算不可為負數", cat)
		}
		categories[cat] = amount
	}

	return models.Project{
		Name:       name,
		StartDate:  strings.TrimSpace(in.StartDate),
		EndDate:    strings.TrimSpace(in.EndDate),
		Categories: categories,
	}, nil
}

func parseOptionalDate(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(models.DateLayout, value)
	if err != nil {
		return time.Time{}, invalid(field, "日期格式錯誤，應為 YYYY-MM-DD")
	}
	return t, nil
}

// Execution 計畫執行情況
type Execution struct {
	Total          float64 `json:"total"`
	Spent          float64 `json:"spent"`
	Planned        float64 `json:"planned"`
	Remaining      float64 `json:"remaining"`
	PercentSpent   float64 `json:"percent_spent"`
	PercentPlanned float64 `json:"percent_planned"`
	PercentTotal   float64 `json:"percent_total"`
}

// ComputeExecution 依計畫名稱彙總支出與規劃
// 實際支出優先：兩者合計超過 1 時，規劃比例縮為 1 - 實際比例；剩餘金額不做截斷
func ComputeExecution(p models.Project, expenses []models.Expense, plans []models.Plan) Execution {
	ex := Execution{Total: p.TotalBudget()}
	for _, e := range expenses {
		if e.Project == p.Name {
			ex.Spent += e.Amount
		}
	}
	for _, pl := range plans {
		if pl.Project == p.Name {
			ex.Planned += pl.Amount
		}
	}
	ex.Remaining = ex.Total - ex.Spent - ex.Planned

	if ex.Total > 0 {
		ex.PercentSpent = ex.Spent / ex.Total
		ex.PercentPlanned = ex.Planned / ex.Total
	}
	ex.PercentTotal = ex.PercentSpent + ex.PercentPlanned
	if ex.PercentTotal > 1 {
		ex.PercentPlanned = 1 - ex.PercentSpent
		ex.PercentTotal = 1
	}
	return ex
}

// MonthsLeft 結束日期與今天相差的月數（只看年月），日期無法解析時 ok 為 false
func MonthsLeft(endDate string, today time.Time) (months int, ok bool) {
	end, err := time.Parse(models.DateLayout, strings.TrimSpace(endDate))
	if err != nil {
		return 0, false
	}
	return (end.Year()-today.Year())*12 + int(end.Month()) - int(today.Month()), true
}

// ExpiryWarning 剩 0~2 個月時回傳 3-月數 個警示符號，其餘回傳空字串
func ExpiryWarning(endDate string, today time.Time) string {
	months, ok := MonthsLeft(endDate, today)
	if !ok || months < 0 || months > 2 {
		return ""
	}
	return strings.Repeat(WarningMarker, 3-months)
}

// SortProjectsByEndDate 依結束日期由近到遠穩定排序，無法解析的排最後
func SortProjectsByEndDate(projects []models.Project) {
	sort.SliceStable(projects, func(i, j int) bool {
		return endDateLess(projects[i].EndDate, projects[j].EndDate)
	})
}

func endDateLess(a, b string) bool {
	ta, errA := time.Parse(models.DateLayout, a)
	tb, errB := time.Parse(models.DateLayout, b)
	switch {
	case errA != nil:
		return false
	case errB != nil:
		return true
	default:
		return ta.Before(tb)
	}
}

// ProjectSummary 計畫連同儲存位置、執行情況與到期警示
type ProjectSummary struct {
	Index int `json:"index"`
	models.Project
	TotalBudget   float64   `json:"total_budget"`
	Execution     Execution `json:"execution"`
	MonthsLeft    *int      `json:"months_left,omitempty"`
	ExpiryWarning string    `json:"expiry_warning,omitempty"`
}

func summarize(index int, p models.Project, expenses []models.Expense, plans []models.Plan, today time.Time) ProjectSummary {
	s := ProjectSummary{
		Index:         index,
		Project:       p,
		TotalBudget:   p.TotalBudget(),
		Execution:     ComputeExecution(p, expenses, plans),
		ExpiryWarning: ExpiryWarning(p.EndDate, today),
	}
	if months, ok := MonthsLeft(p.EndDate, today); ok {
		s.MonthsLeft = &months
	}
	return s
}

func (l *Ledger) loadProjects() ([]models.Project, error) {
	projects, err := database.Load[models.Project](l.store, models.CollectionBudgets)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		projects[i].Categories = projects[i].Categories.Fill()
	}
	return projects, nil
}

// saveProjects 寫回前補上舊資料缺少的 id
func (l *Ledger) saveProjects(projects []models.Project) error {
	for i := range projects {
		if projects[i].ID == "" {
			projects[i].ID = l.newID()
		}
	}
	return database.Save(l.store, models.CollectionBudgets, projects)
}

// CreateProject 新增計畫，名稱允許重複
func (l *Ledger) CreateProject(in ProjectInput) (p models.Project, err error) {
	defer func() { record("create_project", err) }()

	p, err = in.toProject()
	if err != nil {
		return models.Project{}, err
	}

	unlock := l.locks.lock(models.CollectionBudgets)
	defer unlock()

	projects, err := l.loadProjects()
	if err != nil {
		return models.Project{}, err
	}
	for _, existing := range projects {
		if existing.Name == p.Name {
			zap.S().Warnf("計畫名稱 %q 重複，彙總時會合併計算", p.Name)
			break
		}
	}

	p.ID = l.newID()
	projects = append(projects, p)
	if err := l.saveProjects(projects); err != nil {
		return models.Project{}, err
	}
	zap.S().Infof("新增計畫 %s (%s)", p.Name, p.ID)
	return p, nil
}

// UpdateProject 以新欄位整筆取代指定位置的計畫，保留 id
func (l *Ledger) UpdateProject(index int, in ProjectInput) (p models.Project, err error) {
	defer func() { record("update_project", err) }()

	p, err = in.toProject()
	if err != nil {
		return models.Project{}, err
	}

	unlock := l.locks.lock(models.CollectionBudgets)
	defer unlock()

	projects, err := l.loadProjects()
	if err != nil {
		return models.Project{}, err
	}
	if err := checkIndex(index, len(projects), "計畫"); err != nil {
		return models.Project{}, err
	}

	p.ID = projects[index].ID
	projects[index] = p
	if err := l.saveProjects(projects); err != nil {
		return models.Project{}, err
	}
	return projects[index], nil
}

// DeleteProject 刪除計畫，相關支出與規劃保留
func (l *Ledger) DeleteProject(index int) (p models.Project, err error) {
	defer func() { record("delete_project", err) }()

	unlock := l.locks.lock(models.CollectionBudgets)
	defer unlock()

	projects, err := l.loadProjects()
	if err != nil {
		return models.Project{}, err
	}
	if err := checkIndex(index, len(projects), "計畫"); err != nil {
		return models.Project{}, err
	}

	p = projects[index]
	if err := l.saveProjects(removeAt(projects, index)); err != nil {
		return models.Project{}, err
	}
	zap.S().Infof("刪除計畫 %s", p.Name)
	return p, nil
}

// GetProject 取得單一計畫與其執行情況
func (l *Ledger) GetProject(index int) (ProjectSummary, error) {
	unlock := l.locks.lock(models.CollectionBudgets, models.CollectionExpenses, models.CollectionPlans)
	defer unlock()

	projects, expenses, plans, err := l.loadProjectInputs()
	if err != nil {
		return ProjectSummary{}, err
	}
	if err := checkIndex(index, len(projects), "計畫"); err != nil {
		return ProjectSummary{}, err
	}
	return summarize(index, projects[index], expenses, plans, l.now()), nil
}

// ListProjects 依結束日期排序列出所有計畫
func (l *Ledger) ListProjects() ([]ProjectSummary, error) {
	unlock := l.locks.lock(models.CollectionBudgets, models.CollectionExpenses, models.CollectionPlans)
	defer unlock()

	projects, expenses, plans, err := l.loadProjectInputs()
	if err != nil {
		return nil, err
	}
	return summarizeAll(projects, expenses, plans, l.now()), nil
}

func (l *Ledger) loadProjectInputs() ([]models.Project, []models.Expense, []models.Plan, error) {
	projects, err := l.loadProjects()
	if err != nil {
		return nil, nil, nil, err
	}
	expenses, err := database.Load[models.Expense](l.store, models.CollectionExpenses)
	if err != nil {
		return nil, nil, nil, err
	}
	plans, err := database.Load[models.Plan](l.store, models.CollectionPlans)
	if err != nil {
		return nil, nil, nil, err
	}
	return projects, expenses, plans, nil
}

func summarizeAll(projects []models.Project, expenses []models.Expense, plans []models.Plan, today time.Time) []ProjectSummary {
	summaries := make([]ProjectSummary, len(projects))
	for i, p := range projects {
		summaries[i] = summarize(i, p, expenses, plans, today)
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return endDateLess(summaries[i].EndDate, summaries[j].EndDate)
	})
	return summaries
}

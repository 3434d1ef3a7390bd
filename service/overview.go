package service

import (
	"labbudget/database"
	"labbudget/models"
)

// Overview 預算總覽
type Overview struct {
	Date          string           `json:"date"`
	LabCashTotal  float64          `json:"lab_cash_total"`
	Projects      []ProjectSummary `json:"projects"`
	PendingPlans  []JournalRow     `json:"pending_plans"`
	TotalDeposits float64          `json:"total_deposits"`
}

// ExpiringProjects 有到期警示的計畫
func (o Overview) ExpiringProjects() []ProjectSummary {
	var out []ProjectSummary
	for _, p := range o.Projects {
		if p.ExpiryWarning != "" {
			out = append(out, p)
		}
	}
	return out
}

// Overview 金庫、各計畫執行情況、待執行規劃與廠商寄放總額
func (l *Ledger) Overview() (Overview, error) {
	unlock := l.locks.lock(
		models.CollectionBudgets,
		models.CollectionExpenses,
		models.CollectionPlans,
		models.CollectionLabCash,
		models.CollectionVendors,
	)
	defer unlock()

	projects, expenses, plans, err := l.loadProjectInputs()
	if err != nil {
		return Overview{}, err
	}
	cash, err := l.loadLabCash()
	if err != nil {
		return Overview{}, err
	}
	vendors, err := database.Load[models.Vendor](l.store, models.CollectionVendors)
	if err != nil {
		return Overview{}, err
	}

	today := l.now()
	return Overview{
		Date:          today.Format(models.DateLayout),
		LabCashTotal:  models.LabTotal(cash),
		Projects:      summarizeAll(projects, expenses, plans, today),
		PendingPlans:  newestFirst(plans, JournalFilter{}),
		TotalDeposits: models.TotalDeposits(vendors),
	}, nil
}

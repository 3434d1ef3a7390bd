package service

import (
	"strings"

	"labbudget/database"
	"labbudget/models"
)

// VendorRow 廠商與其儲存位置
type VendorRow struct {
	Index int `json:"index"`
	models.Vendor
}

// VendorList 廠商列表與總寄放金額
type VendorList struct {
	Vendors       []VendorRow `json:"vendors"`
	TotalDeposits float64     `json:"total_deposits"`
}

// AddVendor 新增廠商
func (l *Ledger) AddVendor(v models.Vendor) (_ models.Vendor, err error) {
	defer func() { record("add_vendor", err) }()

	v.Name = strings.TrimSpace(v.Name)
	if v.Name == "" {
		return models.Vendor{}, invalid("name", "廠商名稱不可為空")
	}
	if v.Deposit < 0 {
		return models.Vendor{}, invalid("deposit", "寄放金額不可為負數")
	}

	unlock := l.locks.lock(models.CollectionVendors)
	defer unlock()

	vendors, err := database.Load[models.Vendor](l.store, models.CollectionVendors)
	if err != nil {
		return models.Vendor{}, err
	}
	if err := database.Save(l.store, models.CollectionVendors, append(vendors, v)); err != nil {
		return models.Vendor{}, err
	}
	return v, nil
}

// UpdateDeposit 覆寫寄放金額，不影響金庫
func (l *Ledger) UpdateDeposit(index int, deposit float64) (_ models.Vendor, err error) {
	defer func() { record("update_deposit", err) }()

	if deposit < 0 {
		return models.Vendor{}, invalid("deposit", "寄放金額不可為負數")
	}

	unlock := l.locks.lock(models.CollectionVendors)
	defer unlock()

	vendors, err := database.Load[models.Vendor](l.store, models.CollectionVendors)
	if err != nil {
		return models.Vendor{}, err
	}
	if err := checkIndex(index, len(vendors), "廠商"); err != nil {
		return models.Vendor{}, err
	}

	vendors[index].Deposit = deposit
	if err := database.Save(l.store, models.CollectionVendors, vendors); err != nil {
		return models.Vendor{}, err
	}
	return vendors[index], nil
}

// ListVendors 依新增順序列出廠商
func (l *Ledger) ListVendors() (VendorList, error) {
	unlock := l.locks.lock(models.CollectionVendors)
	defer unlock()

	vendors, err := database.Load[models.Vendor](l.store, models.CollectionVendors)
	if err != nil {
		return VendorList{}, err
	}
	rows := make([]VendorRow, len(vendors))
	for i, v := range vendors {
		rows[i] = VendorRow{Index: i, Vendor: v}
	}
	return VendorList{Vendors: rows, TotalDeposits: models.TotalDeposits(vendors)}, nil
}

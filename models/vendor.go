package models

// Vendor 廠商資料與寄放金額
// deposit 直接覆寫，與實驗室金庫無關
type Vendor struct {
	Name           string  `json:"name"`
	VAT            string  `json:"vat"`
	Address        string  `json:"address"`
	Phone          string  `json:"phone"`
	Email          string  `json:"email"`
	Website        string  `json:"website"`
	Representative string  `json:"representative"`
	Note           string  `json:"note"`
	Deposit        float64 `json:"deposit"`
}

// TotalDeposits 總寄放金額
func TotalDeposits(vendors []Vendor) float64 {
	var total float64
	for _, v := range vendors {
		total += v.Deposit
	}
	return total
}

package models

// Note 經費規劃筆記
type Note struct {
	Date      string `json:"date"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// LoginLogEntry 登入紀錄，只用來顯示最近登入時間
type LoginLogEntry struct {
	Username  string `json:"username"`
	LoginTime string `json:"login_time"`
}

package service

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"labbudget/config"

	"gopkg.in/gomail.v2"
)

// ErrEmailDisabled 未啟用郵件服務
var ErrEmailDisabled = errors.New("郵件服務未啟用，請設定 email.enabled=true")

// EmailService 郵件服務
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService 建立郵件服務
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// Enabled 是否已啟用
func (s *EmailService) Enabled() bool {
	return s.cfg != nil && s.cfg.Enabled
}

// SendExpiryDigest 寄送即將到期計畫的提醒
// recipients 為空時使用設定中的收件人；沒有即將到期的計畫時不寄送，回傳 false
func (s *EmailService) SendExpiryDigest(recipients []string, overview Overview) (bool, error) {
	if !s.Enabled() {
		return false, ErrEmailDisabled
	}
	if len(recipients) == 0 {
		recipients = s.cfg.Recipients
	}
	if len(recipients) == 0 {
		return false, invalid("recipients", "沒有收件人")
	}

	expiring := overview.ExpiringProjects()
	if len(expiring) == 0 {
		return false, nil
	}

	subject := fmt.Sprintf("【實驗室經費】%d 個計畫即將到期", len(expiring))
	body := s.generateExpiryDigestBody(overview.Date, expiring)
	if err := s.sendEmail(recipients, subject, body); err != nil {
		return false, err
	}
	return true, nil
}

// generateExpiryDigestBody 產生到期提醒內容
func (s *EmailService) generateExpiryDigestBody(date string, projects []ProjectSummary) string {
	var rows strings.Builder
	for _, p := range projects {
		months := 0
		if p.MonthsLeft != nil {
			months = *p.MonthsLeft
		}
		fmt.Fprintf(&rows, `
            <tr>
                <td>%s %s</td>
                <td>%s</td>
                <td>%d</td>
                <td>$%.0f</td>
                <td>%.1f%%</td>
            </tr>`,
			html.EscapeString(p.Name), p.ExpiryWarning,
			html.EscapeString(p.EndDate),
			months,
			p.Execution.Remaining,
			p.Execution.PercentTotal*100,
		)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: 'Microsoft JhengHei', Arial, sans-serif; background: #f5f5f5; margin: 0; padding: 20px; }
        .container { max-width: 640px; margin: 0 auto; background: #fff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 20px rgba(0,0,0,0.1); }
        .header { background: linear-gradient(135deg, #f59e0b, #d97706); color: white; padding: 30px; text-align: center; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { padding: 30px; }
        .content p { color: #333; line-height: 1.8; margin: 0 0 20px; }
        table { width: 100%%; border-collapse: collapse; }
        th, td { border-bottom: 1px solid #e5e7eb; padding: 10px; text-align: left; font-size: 14px; }
        th { background: #f8f9fa; }
        .footer { background: #f8f9fa; padding: 20px 30px; text-align: center; color: #6c757d; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>📊 經費到期提醒</h1>
        </div>
        <div class="content">
            <p>截至 <strong>%s</strong>，以下計畫將在兩個月內結束，請確認剩餘經費的執行規劃：</p>
            <table>
                <tr><th>計畫</th><th>結束日期</th><th>剩餘月數</th><th>剩餘金額</th><th>總執行率</th></tr>%s
            </table>
        </div>
        <div class="footer">
            <p>此郵件由系統自動發送，請勿回覆</p>
        </div>
    </div>
</body>
</html>
`, html.EscapeString(date), rows.String())
}

// sendEmail 寄送郵件
func (s *EmailService) sendEmail(to []string, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Username, s.cfg.From))
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("寄送郵件失敗: %w", err)
	}

	return nil
}

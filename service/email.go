package service

import (
	"errors"
	"fmt"
	"html"
	"io"
	"strings"

	"hostel/config"

	"gopkg.in/gomail.v2"
)

// ErrEmailDisabled 邮件服务未启用或未配置收件人
var ErrEmailDisabled = errors.New("email service is disabled")

// StatementMailer 月度结算单发送接口
type StatementMailer interface {
	SendStatement(st *Statement) error
}

// EmailService 邮件服务
type EmailService struct {
	cfg    *config.EmailConfig
	dialer interface {
		DialAndSend(m ...*gomail.Message) error
	}
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

// Enabled 是否启用且配置了收件人
func (s *EmailService) Enabled() bool {
	return s.cfg.Enabled && len(s.cfg.ReportTo) > 0
}

// SendStatement 重置账期前发送结算单，附带 Excel
func (s *EmailService) SendStatement(st *Statement) error {
	if !s.Enabled() {
		return ErrEmailDisabled
	}
	attachment, err := st.XLSXBytes()
	if err != nil {
		return fmt.Errorf("生成结算单失败: %w", err)
	}

	m := s.newMessage(fmt.Sprintf("[Hostel] %s statement %s", st.Room.Name, st.GeneratedAt.Format(dateLayout)))
	m.SetBody("text/html", s.generateStatementBody(st))
	m.Attach(st.Filename("xlsx"), gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(attachment)
		return err
	}))
	return s.send(m)
}

func (s *EmailService) newMessage(subject string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.From, "Hostel Ledger"))
	m.SetHeader("To", s.cfg.ReportTo...)
	m.SetHeader("Subject", subject)
	return m
}

// send 发送邮件
func (s *EmailService) send(m *gomail.Message) error {
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}
	return nil
}

// generateStatementBody 生成结算单邮件内容
func (s *EmailService) generateStatementBody(st *Statement) string {
	var rows strings.Builder
	for _, p := range st.Summary.Positions {
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%s</td><td>%s</td></tr>",
			html.EscapeString(p.Name), p.Paid.StringFixed(0), positionStatus(p))
	}
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; background: #f5f5f5; margin: 0; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background: #fff; border-radius: 12px; overflow: hidden; }
        .header { background: linear-gradient(135deg, #2563eb, #1d4ed8); color: white; padding: 24px; text-align: center; }
        .content { padding: 24px 30px; color: #333; }
        table { width: 100%%; border-collapse: collapse; }
        td, th { border-bottom: 1px solid #e5e7eb; padding: 8px; text-align: left; }
        .footer { background: #f8f9fa; padding: 16px 30px; text-align: center; color: #6c757d; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header"><h2>%s (%s)</h2></div>
        <div class="content">
            <p>Shared spending this period: <strong>%s</strong>, fair share per member: <strong>%s</strong>.</p>
            <table>
                <tr><th>Member</th><th>Paid</th><th>Status</th></tr>
                %s
            </table>
            <p>The full statement is attached. Expenses have been archived and a new period has started.</p>
        </div>
        <div class="footer"><p>This email was sent automatically, please do not reply.</p></div>
    </div>
</body>
</html>
`, html.EscapeString(st.Room.Name), st.Room.Code,
		st.Summary.TotalShared.StringFixed(0), st.Summary.FairShare.StringFixed(0), rows.String())
}

package service

import (
	"fmt"
	"log"
	"strings"

	"github.com/user/hdfilm/internal/config"
	"gopkg.in/gomail.v2"
)

// Mailer 激活邮件发送服务
type Mailer struct {
	cfg *config.Config
}

// NewMailer 创建邮件服务
func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{cfg: cfg}
}

// SendActivationCode 发送激活邮件
func (m *Mailer) SendActivationCode(email, code string) error {
	activationURL := fmt.Sprintf("%s/v1/api/accounts/activate/%s",
		strings.TrimRight(m.cfg.SiteUrl, "/"), code)

	body := fmt.Sprintf(`感谢注册 %s。

请点击以下链接激活您的账号：
%s
`, m.cfg.SiteName, activationURL)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.MailFrom)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "激活您的账号")
	msg.SetBody("text/plain", body)

	dialer := gomail.NewDialer(m.cfg.SMTPHost, m.cfg.SMTPPort, m.cfg.SMTPUser, m.cfg.SMTPPass)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("发送激活邮件失败: %w", err)
	}
	return nil
}

// SendActivationCodeAsync 异步发送激活邮件
// 发送失败只记日志，不影响注册流程，也不重试
func (m *Mailer) SendActivationCodeAsync(email, code string) {
	go func() {
		if err := m.SendActivationCode(email, code); err != nil {
			log.Printf("[Mailer] %v", err)
		}
	}()
}

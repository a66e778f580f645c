package email

import (
	"gopkg.in/gomail.v2"

	"github.com/caremate/caremate-api/internal/config"
	"github.com/caremate/caremate-api/internal/model"
)

// Sender delivers one rendered message over SMTP. Used only by the
// outbox dispatch worker.
type Sender interface {
	Send(msg *model.EmailMessage) error
}

type smtpSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(cfg config.SMTPConfig) Sender {
	return &smtpSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpSender) Send(msg *model.EmailMessage) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.Recipient)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.Body)
	return s.dialer.DialAndSend(m)
}

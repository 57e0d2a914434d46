// internal/app/system/mailer/mailer.go
// Package mailer sends transactional email over SMTP. Locally this points
// at Mailpit; in production at the provider's SMTP endpoint.
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Email is a single outbound message.
type Email struct {
	To       string
	Subject  string
	TextBody string
}

// Sender delivers email over SMTP.
type Sender struct {
	host     string
	port     int
	user     string
	pass     string
	from     string
	fromName string
}

// Config holds SMTP connection settings.
type Config struct {
	Host     string
	Port     int
	User     string
	Pass     string
	From     string
	FromName string
}

// NewSender builds an SMTP sender.
func NewSender(cfg Config) *Sender {
	return &Sender{
		host:     cfg.Host,
		port:     cfg.Port,
		user:     cfg.User,
		pass:     cfg.Pass,
		from:     cfg.From,
		fromName: cfg.FromName,
	}
}

// Send delivers the email. Auth is skipped when no username is configured
// (Mailpit and other dev relays).
func (s *Sender) Send(e Email) error {
	addr := fmt.Sprintf("%s:%d", s.host, s.port)

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", s.fromName, s.from)
	fmt.Fprintf(&msg, "To: %s\r\n", e.To)
	fmt.Fprintf(&msg, "Subject: %s\r\n", e.Subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(e.TextBody)

	var auth smtp.Auth
	if s.user != "" {
		auth = smtp.PlainAuth("", s.user, s.pass, s.host)
	}
	return smtp.SendMail(addr, auth, s.from, []string{e.To}, []byte(msg.String()))
}

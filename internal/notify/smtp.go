package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

const defaultFrom = `"SuperMart" <no-reply@supermart.com>`

// SMTPMailer sends mail directly through an SMTP relay.
type SMTPMailer struct {
	addr string
	auth smtp.Auth
	from string
}

// NewSMTPMailer builds a mailer for host:port. Auth is skipped when username
// is empty (local relays).
func NewSMTPMailer(host, port, username, password string) *SMTPMailer {
	m := &SMTPMailer{
		addr: host + ":" + port,
		from: defaultFrom,
	}
	if username != "" {
		m.auth = smtp.PlainAuth("", username, password, host)
	}
	return m
}

func (m *SMTPMailer) Send(_ context.Context, msg Message) error {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)

	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{msg.To}, []byte(b.String())); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

var _ Notifier = (*SMTPMailer)(nil)

package email

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"

	"github.com/yoockh/folio/config"
	"gopkg.in/gomail.v2"
)

//go:embed templates/*.html
var templateFS embed.FS

var contactTmpl = template.Must(template.ParseFS(templateFS, "templates/contact.html"))

var ErrNotConfigured = errors.New("email sender is not configured")

// ContactMessage is a visitor's message to a portfolio owner.
type ContactMessage struct {
	To          string
	SiteName    string
	SenderName  string
	SenderEmail string
	Subject     string
	Body        string
}

type Sender interface {
	SendContact(ctx context.Context, msg ContactMessage) error
}

type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

func (s *SMTPSender) SendContact(ctx context.Context, msg ContactMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m, err := buildContact(s.from, msg)
	if err != nil {
		return err
	}
	return s.dialer.DialAndSend(m)
}

func buildContact(from string, msg ContactMessage) (*gomail.Message, error) {
	var html bytes.Buffer
	if err := contactTmpl.Execute(&html, msg); err != nil {
		return nil, err
	}

	subject := msg.Subject
	if subject == "" {
		subject = fmt.Sprintf("New message from %s", msg.SenderName)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", msg.To)
	m.SetAddressHeader("Reply-To", msg.SenderEmail, msg.SenderName)
	m.SetHeader("Subject", "["+msg.SiteName+"] "+subject)
	m.SetBody("text/plain", fmt.Sprintf("From: %s <%s>\n\n%s", msg.SenderName, msg.SenderEmail, msg.Body))
	m.AddAlternative("text/html", html.String())
	return m, nil
}

// Disabled rejects every message.
type Disabled struct{}

func (Disabled) SendContact(context.Context, ContactMessage) error { return ErrNotConfigured }

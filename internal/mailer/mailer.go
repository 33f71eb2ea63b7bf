// Package mailer sends application notification emails over SMTP.
package mailer

import (
	"bytes"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"github.com/HarishP23/OneStop/internal/config"
	"github.com/HarishP23/OneStop/internal/model"
)

// Notifier delivers a single email
type Notifier interface {
	Enabled() bool
	Send(to, subject, htmlBody string) error
}

// New returns an SMTP notifier, or Nop when no SMTP host is configured
func New(cfg config.SMTPSettings) Notifier {
	if cfg.Host == "" {
		return Nop{}
	}
	return &SMTPNotifier{
		from:   cfg.From,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

// SMTPNotifier dials the SMTP server for every message
type SMTPNotifier struct {
	from   string
	dialer *gomail.Dialer
}

func (s *SMTPNotifier) Enabled() bool { return true }

func (s *SMTPNotifier) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	return s.dialer.DialAndSend(m)
}

// Nop drops every message
type Nop struct{}

func (Nop) Enabled() bool             { return false }
func (Nop) Send(_, _, _ string) error { return nil }

var (
	submittedTmpl = template.Must(template.New("submitted").Parse(
		`<p>Hi {{.Name}},</p>
<p>Your application for <strong>{{.JobTitle}}</strong> was received and is now <em>{{.Status}}</em>.</p>
<p>OneStop</p>`))

	statusTmpl = template.Must(template.New("status").Parse(
		`<p>Hi {{.Name}},</p>
<p>The status of your application for <strong>{{.JobTitle}}</strong> changed to <em>{{.Status}}</em>.</p>
<p>OneStop</p>`))
)

// ApplicationSubmitted renders the confirmation sent after a submission
func ApplicationSubmitted(app model.Application) (string, string, error) {
	body, err := render(submittedTmpl, app)
	if err != nil {
		return "", "", err
	}
	return fmt.Sprintf("Application received: %s", app.JobTitle), body, nil
}

// ApplicationStatusChanged renders the notice sent after a status update
func ApplicationStatusChanged(app model.Application) (string, string, error) {
	body, err := render(statusTmpl, app)
	if err != nil {
		return "", "", err
	}
	return fmt.Sprintf("Application %s: %s", app.Status, app.JobTitle), body, nil
}

func render(t *template.Template, app model.Application) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, app); err != nil {
		return "", err
	}
	return buf.String(), nil
}

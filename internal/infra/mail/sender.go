package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"
)

//go:embed templates/*.html
var templateFS embed.FS

var alertTemplate = template.Must(template.ParseFS(templateFS, "templates/owner_alert.html"))

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

// SendOwnerAlert e-mails a trial alert to the owner.
func (s *EmailSender) SendOwnerAlert(to string, data AlertEmailData) error {
	m, err := s.buildAlert(to, data)
	if err != nil {
		return err
	}

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send SMTP email: %w", err)
	}
	return nil
}

func (s *EmailSender) buildAlert(to string, data AlertEmailData) (*gomail.Message, error) {
	var body bytes.Buffer
	if err := alertTemplate.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("failed to render email template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("%s: %s", data.Title, data.Name))
	m.SetBody("text/html", body.String())
	return m, nil
}

package mail

import (
	"bytes"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"
)

var welcomeTemplate = template.Must(template.New("welcome").Parse(`<p>Hi {{.BusinessName}},</p>
<p>Your CallFlex AI trial on the <strong>{{.Plan}}</strong> plan is live. We are already lining up
prospects for you.</p>
<p>When you are ready to keep going, finish checkout and your account switches to active automatically.</p>
<p>The CallFlex team</p>
`))

type welcomeData struct {
	BusinessName string
	Plan         string
}

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailSender struct {
	From   string
	dialer dialer
}

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		From:   from,
		dialer: gomail.NewDialer(host, port, user, password),
	}
}

func (s *EmailSender) SendWelcome(to, businessName string) error {
	m, err := s.welcomeMessage(to, businessName)
	if err != nil {
		return err
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}

func (s *EmailSender) welcomeMessage(to, businessName string) (*gomail.Message, error) {
	var body bytes.Buffer
	if err := welcomeTemplate.Execute(&body, welcomeData{BusinessName: businessName, Plan: "Pro"}); err != nil {
		return nil, fmt.Errorf("failed to render welcome email: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Welcome to CallFlex AI, %s", businessName))
	m.SetBody("text/html", body.String())
	return m, nil
}

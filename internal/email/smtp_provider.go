package email

import (
	"fmt"

	"github.com/adam-ctrlc/gotrabahu/internal/config"
	"github.com/adam-ctrlc/gotrabahu/internal/models"
	"gopkg.in/gomail.v2"
)

// SMTPProvider delivers mail through the configured SMTP relay.
type SMTPProvider struct {
	dialer    *gomail.Dialer
	fromEmail string
	fromName  string
}

func NewSMTPProvider(cfg config.EmailConfig) *SMTPProvider {
	return &SMTPProvider{
		dialer:    gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
	}
}

func (p *SMTPProvider) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.fromEmail, p.fromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)
	return p.dialer.DialAndSend(m)
}

func (p *SMTPProvider) SendWelcome(user *models.User) error {
	if user.Username == "" {
		return nil
	}
	body := fmt.Sprintf(welcomeTemplate, user.FirstName)
	return p.send(user.Username, "Welcome to GoTrabahu", body)
}

func (p *SMTPProvider) SendApplicationStatusChanged(user *models.User, job *models.Job, status models.ApplicationStatus) error {
	body := fmt.Sprintf(statusChangedTemplate, user.FirstName, job.Title, job.Company, status)
	return p.send(user.Username, "Your application was updated", body)
}

func (p *SMTPProvider) SendSubscriptionApproved(user *models.User, plan *models.Subscription) error {
	body := fmt.Sprintf(subscriptionApprovedTemplate, user.FirstName, plan.Plan)
	return p.send(user.Username, "Your subscription is active", body)
}

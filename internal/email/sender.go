// Package email sends notification mail over SMTP.
package email

import (
	"fmt"
	"net/smtp"

	"financial-hub/internal/config"
	"financial-hub/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendBillReminder sends one email listing a user's upcoming bills
func (s *Sender) SendBillReminder(to, username string, bills []models.Bill) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	if len(bills) == 1 {
		e.Subject = "Upcoming Bill Reminder"
	} else {
		e.Subject = fmt.Sprintf("Upcoming Bills Reminder (%d)", len(bills))
	}

	body := fmt.Sprintf("Dear %s,\n\n", username)
	if len(bills) == 1 {
		body += "The following bill is due soon:\n\n"
	} else {
		body += "The following bills are due soon:\n\n"
	}

	var total float64
	for _, b := range bills {
		body += fmt.Sprintf("- %s: %.2f USD due on day %d of the month (%s)\n",
			b.Name, b.Amount, b.DueDate, b.Frequency)
		total += b.Amount
	}
	body += fmt.Sprintf("\nTotal due: %.2f USD\n", total)
	body += "Please ensure sufficient funds are available in your account.\n"
	body += "\nBest regards,\nFinancial Hub"
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}

package notify

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Dan9191/finance-tracker/internal/config"
	"github.com/Dan9191/finance-tracker/internal/models"
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

// titles follow the tier bounds in forecast's urgency rules
var urgencyOrder = []struct {
	urgency models.Urgency
	title   string
}{
	{models.UrgencyUrgent, "Due within 2 days"},
	{models.UrgencyNear, "Due within 5 days"},
	{models.UrgencyScheduled, "Scheduled"},
}

// SendAlertDigest mails the upcoming payments to a single recipient
func (s *Sender) SendAlertDigest(to string, alerts []models.Alert) error {
	if len(alerts) == 0 {
		return nil
	}
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = digestSubject(alerts)
	e.Text = []byte(digestBody(alerts))

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send alert digest to %s: %v", to, err)
		return fmt.Errorf("failed to send alert digest: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}

func digestSubject(alerts []models.Alert) string {
	urgent := 0
	for _, a := range alerts {
		if a.Urgency == models.UrgencyUrgent {
			urgent++
		}
	}
	if urgent > 0 {
		return fmt.Sprintf("%d upcoming payments (%d urgent)", len(alerts), urgent)
	}
	return fmt.Sprintf("%d upcoming payments", len(alerts))
}

// digestBody lists alerts grouped by urgency, keeping the input order
// inside each group.
func digestBody(alerts []models.Alert) string {
	var b strings.Builder
	b.WriteString("Upcoming payments:\n")
	for _, group := range urgencyOrder {
		var lines []string
		for _, a := range alerts {
			if a.Urgency != group.urgency {
				continue
			}
			line := fmt.Sprintf("  - %s: %.2f due %s (%s)", a.Name, a.Amount, a.DueDate, daysText(a.DaysRemaining))
			if a.Notes != "" {
				line += " " + a.Notes
			}
			lines = append(lines, line)
		}
		if len(lines) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s:\n%s\n", group.title, strings.Join(lines, "\n"))
	}
	b.WriteString("\nFinance Tracker")
	return b.String()
}

func daysText(days int) string {
	switch days {
	case 0:
		return "today"
	case 1:
		return "tomorrow"
	default:
		return fmt.Sprintf("in %d days", days)
	}
}

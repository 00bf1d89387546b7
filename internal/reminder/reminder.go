// Package reminder periodically mails a digest of upcoming payments.
package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/Dan9191/finance-tracker/internal/forecast"
	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// AlertSource produces the alerts for the current day
type AlertSource interface {
	Alerts(ctx context.Context, opts forecast.AlertOptions) ([]models.Alert, error)
}

// Notifier delivers a digest of alerts
type Notifier interface {
	SendAlertDigest(to string, alerts []models.Alert) error
}

type Scheduler struct {
	source    AlertSource
	notifier  Notifier
	recipient string
	log       *logrus.Logger
	cron      *cron.Cron
	timeout   time.Duration
}

func NewScheduler(source AlertSource, notifier Notifier, recipient string, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		source:    source,
		notifier:  notifier,
		recipient: recipient,
		log:       log,
		cron:      cron.New(),
		timeout:   30 * time.Second,
	}
}

// Start schedules the digest with a standard five-field cron expression
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		if err := s.Run(ctx); err != nil {
			s.log.Errorf("Reminder run failed: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", spec, err)
	}
	s.cron.Start()
	s.log.Infof("Reminders scheduled (%s) for %s", spec, s.recipient)
	return nil
}

// Stop halts scheduling and waits for a running digest to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// Run sends one digest using each commitment's own lead time. Nothing is
// sent when no payment is coming up.
func (s *Scheduler) Run(ctx context.Context) error {
	alerts, err := s.source.Alerts(ctx, forecast.AlertOptions{UseRecordLeadTime: true})
	if err != nil {
		return fmt.Errorf("failed to scan alerts: %w", err)
	}
	if len(alerts) == 0 {
		s.log.Debug("No upcoming payments, reminder skipped")
		return nil
	}
	return s.notifier.SendAlertDigest(s.recipient, alerts)
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Dan9191/finance-tracker/internal/config"
	"github.com/Dan9191/finance-tracker/internal/forecast"
	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Service handles business logic
type Service struct {
	store   Store
	engine  *forecast.Engine
	log     *logrus.Logger
	config  *config.Config
	payDays forecast.PayDays
	now     func() time.Time
}

// NewService initializes a new service
func NewService(store Store, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{
		store:   store,
		engine:  forecast.NewEngine(forecast.FixedThresholds{High: cfg.HealthHighThreshold, Low: cfg.HealthLowThreshold}),
		log:     log,
		config:  cfg,
		payDays: forecast.PayDays{First: cfg.PayDayFirst, Second: cfg.PayDaySecond},
		now:     time.Now,
	}
}

// WithClock replaces the service clock
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) snapshot(ctx context.Context) (forecast.Snapshot, error) {
	snap, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return forecast.Snapshot{}, fmt.Errorf("failed to load records: %w", err)
	}
	return forecast.NewSnapshot(*snap, s.now()), nil
}

// CurrentBalance returns the starting balance plus realized movements
func (s *Service) CurrentBalance(ctx context.Context) (*models.BalanceSummary, error) {
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	movements, err := s.store.ListMovements(ctx)
	if err != nil {
		return nil, err
	}
	income, expense := forecast.RealizedTotals(movements)
	return &models.BalanceSummary{
		StartingBalance: settings.StartingBalance,
		RealizedIncome:  income,
		RealizedExpense: expense,
		CurrentBalance:  settings.StartingBalance + forecast.RealizedNet(movements),
	}, nil
}

// Projection projects the balance months ahead. Semi-monthly projections
// cover the same months with two periods each. A horizon of zero or less
// yields no periods.
func (s *Service) Projection(ctx context.Context, months int, granularity models.Granularity) ([]models.PeriodProjection, error) {
	if months > s.config.ProjectionMaxMonths {
		return nil, models.Invalid("months", "must be at most %d, got %d", s.config.ProjectionMaxMonths, months)
	}
	count := months
	switch granularity {
	case models.Monthly:
	case models.SemiMonthly:
		count = months * 2
	default:
		return nil, models.Invalid("granularity", "must be %q or %q", models.Monthly, models.SemiMonthly)
	}

	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := s.engine.Project(snap, forecast.Periods(s.now(), count, granularity, s.payDays))
	s.log.WithFields(logrus.Fields{
		"periods":     len(out),
		"granularity": granularity,
		"initial":     snap.InitialBalance(),
	}).Debug("Projection computed")
	return out, nil
}

// Alerts scans recurring payments, installment purchases and card statements
// for upcoming due dates
func (s *Service) Alerts(ctx context.Context, opts forecast.AlertOptions) ([]models.Alert, error) {
	if !opts.UseRecordLeadTime && opts.LookaheadDays < 0 {
		return nil, models.Invalid("lookahead", "must not be negative, got %d", opts.LookaheadDays)
	}
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return forecast.Alerts(snap, s.now(), opts), nil
}

// DefaultAlertOptions returns the configured alert window
func (s *Service) DefaultAlertOptions() forecast.AlertOptions {
	return forecast.AlertOptions{
		UseRecordLeadTime: s.config.AlertUseRecordLeadTime,
		LookaheadDays:     s.config.AlertLookaheadDays,
	}
}

// Simulate runs a what-if installment purchase against the current projection
func (s *Service) Simulate(ctx context.Context, price float64, installments int) (*models.SimulationResult, error) {
	if err := validateAmount("price", price); err != nil {
		return nil, err
	}
	if installments < 1 {
		return nil, models.Invalid("installments", "must be at least 1, got %d", installments)
	}

	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	res, err := s.engine.Simulate(price, installments, snap, s.now())
	if err != nil {
		return nil, err
	}
	res.ID = uuid.NewString()
	res.CreatedAt = s.now()

	if err := s.store.SaveSimulation(ctx, &res); err != nil {
		s.log.Errorf("Failed to record simulation %s: %v", res.ID, err)
	}
	s.log.Infof("Simulated purchase of %.2f in %d installments: %s", price, installments, res.Verdict)
	return &res, nil
}

// SetStartingBalance updates the starting balance
func (s *Service) SetStartingBalance(ctx context.Context, balance float64) error {
	if err := s.store.SetStartingBalance(ctx, balance); err != nil {
		return err
	}
	s.log.Infof("Starting balance set to %.2f", balance)
	return nil
}

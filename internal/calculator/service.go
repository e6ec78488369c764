// ============================================================================
// TaxWise NG - Progressive Income Tax Calculator
// ============================================================================
//
// Package:     calculator
// Description: Orchestrates input parsing, tax computation and reporting
// Author:      TaxWise NG Team
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package calculator

import (
	"context"
	"time"

	"github.com/msto63/taxwise/internal/income"
	"github.com/msto63/taxwise/internal/insight"
	"github.com/msto63/taxwise/internal/money"
	"github.com/msto63/taxwise/internal/report"
	"github.com/msto63/taxwise/internal/tax"
	"github.com/msto63/taxwise/pkg/core/apperror"
	"github.com/msto63/taxwise/pkg/core/config"
	"github.com/msto63/taxwise/pkg/core/logging"
	"github.com/shopspring/decimal"
)

// Config holds everything a Service needs
type Config struct {
	Table          tax.Table
	PeriodsPerYear int
	Currency       money.Currency
	// Rules overrides the insight decision table derived from Table
	Rules  []insight.Rule
	Logger *logging.Logger
	// Now is the clock used for report timestamps
	Now func() time.Time
}

// DefaultConfig returns the built-in NG-2026 monthly setup
func DefaultConfig() Config {
	return Config{
		Table:          tax.DefaultTable(),
		PeriodsPerYear: tax.MonthsPerYear,
		Currency:       money.NGN,
	}
}

// Service computes tax reports. It is safe for concurrent use.
type Service struct {
	table   tax.Table
	periods int
	cur     money.Currency
	rules   []insight.Rule
	logger  *logging.Logger
	now     func() time.Time
}

// New validates the table and returns a ready service
func New(cfg Config) (*Service, error) {
	if err := cfg.Table.Validate(); err != nil {
		return nil, err
	}
	if cfg.PeriodsPerYear <= 0 {
		cfg.PeriodsPerYear = tax.MonthsPerYear
	}
	if cfg.Currency.Code == "" {
		cfg.Currency = money.NGN
	}
	if cfg.Rules == nil {
		cfg.Rules = insight.Rules(insight.DefaultThresholds(cfg.Table))
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.New("calculator")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	cfg.Logger.Debug("calculator ready",
		"table", cfg.Table.Name,
		"brackets", len(cfg.Table.Brackets),
		"periods_per_year", cfg.PeriodsPerYear,
		"currency", cfg.Currency.Code,
	)

	return &Service{
		table:   cfg.Table,
		periods: cfg.PeriodsPerYear,
		cur:     cfg.Currency,
		rules:   cfg.Rules,
		logger:  cfg.Logger,
		now:     cfg.Now,
	}, nil
}

// NewFromConfig builds a service from application configuration
func NewFromConfig(c *config.Config, logger *logging.Logger) (*Service, error) {
	table, err := c.ResolveTable()
	if err != nil {
		return nil, err
	}
	cur, ok := money.Lookup(c.Tax.Currency)
	if !ok {
		return nil, apperror.New(apperror.CodeConfigInvariant, "unsupported currency").
			WithDetail("currency", c.Tax.Currency)
	}
	return New(Config{
		Table:          table,
		PeriodsPerYear: c.Tax.PeriodsPerYear,
		Currency:       cur,
		Logger:         logger,
	})
}

// Calculate parses raw user input and produces a report
func (s *Service) Calculate(ctx context.Context, raw string) (*report.Report, error) {
	amount, err := income.Parse(raw)
	if err != nil {
		s.logger.Debug("rejected input", "input", raw, "error", err)
		return nil, err
	}
	return s.CalculateAmount(ctx, amount)
}

// CalculateAmount produces a report for an already parsed amount
func (s *Service) CalculateAmount(ctx context.Context, amount decimal.Decimal) (*report.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := income.Validate(amount); err != nil {
		return nil, err
	}

	result := s.table.Compute(amount, s.periods)
	text := insight.Generate(result, s.rules)
	r := report.New(result, text, s.table, s.cur, s.now())

	s.logger.Debug("calculated",
		"report_id", r.ID.String(),
		"period_income", amount.String(),
		"annual_tax", result.TotalTax.String(),
		"effective_rate", result.EffectiveRatePercent.StringFixed(2),
		"top_bracket", result.TopBracketLabel,
	)
	return r, nil
}

// Table returns the active bracket table
func (s *Service) Table() tax.Table {
	return s.table
}

// Currency returns the display currency
func (s *Service) Currency() money.Currency {
	return s.cur
}

// PeriodsPerYear returns the number of income periods per year
func (s *Service) PeriodsPerYear() int {
	return s.periods
}

// Package converter turns rate tables into conversions and keeps the
// popup's per-user state: the selected pair, the last amount and history.
package converter

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mrlokans/smartrate/internal/entities"
	"github.com/mrlokans/smartrate/internal/rates"
)

// RateSource supplies rate tables.
type RateSource interface {
	FetchLatestRates(ctx context.Context, base string) rates.RatesResult
}

// SettingStore reads and writes scalar settings.
type SettingStore interface {
	LoadSetting(ctx context.Context, key, def string) string
	SaveSetting(ctx context.Context, key, value string) error
}

// HistoryStore records completed conversions.
type HistoryStore interface {
	Add(ctx context.Context, entry entities.HistoryEntry) error
}

// Conversion is the outcome of Convert. Amount and Result are nil when no
// usable amount was given; Err carries rate fetch failures.
type Conversion struct {
	From      string           `json:"from" yaml:"from"`
	To        string           `json:"to" yaml:"to"`
	Amount    *decimal.Decimal `json:"amount,omitempty" yaml:"amount,omitempty"`
	Rate      *decimal.Decimal `json:"rate,omitempty" yaml:"rate,omitempty"`
	Result    *decimal.Decimal `json:"result,omitempty" yaml:"result,omitempty"`
	Display   string           `json:"display,omitempty" yaml:"display,omitempty"`
	Timestamp int64            `json:"timestamp" yaml:"timestamp"`
	FromCache bool             `json:"isOffline" yaml:"isOffline"`
	Stale     bool             `json:"stale" yaml:"stale"`
	Err       error            `json:"-" yaml:"-"`
}

// Service performs conversions.
type Service struct {
	rates    RateSource
	settings SettingStore
	history  HistoryStore
	now      func() time.Time
}

// NewService creates a conversion service.
func NewService(rateSource RateSource, settings SettingStore, history HistoryStore) *Service {
	return &Service{
		rates:    rateSource,
		settings: settings,
		history:  history,
		now:      time.Now,
	}
}

// Amounts are limited to the range formatting can render without
// expanding an arbitrary exponent.
const (
	maxAmountIntegerDigits = 15
	maxAmountScale         = 20
)

var maxAmount = decimal.New(1, maxAmountIntegerDigits)

// ParseAmount parses user input. Empty input yields nil; a number that is
// not positive also yields nil so the caller shows the unit rate.
func ParseAmount(raw string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", raw, rates.ErrInvalidAmount)
	}
	// The exponent is checked before comparing so that Cmp never rescales
	// an unbounded value.
	exp := amount.Exponent()
	if exp < -maxAmountScale || exp > maxAmountIntegerDigits || amount.Abs().Cmp(maxAmount) >= 0 {
		return nil, fmt.Errorf("amount %q out of range: %w", raw, rates.ErrInvalidAmount)
	}
	if !amount.IsPositive() {
		return nil, nil
	}
	return &amount, nil
}

// Convert converts rawAmount from one currency to another. Invalid codes or
// a non-numeric amount are returned as errors; fetch problems are reported
// in Conversion.Err.
func (s *Service) Convert(ctx context.Context, from, to, rawAmount string) (*Conversion, error) {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))
	if !entities.IsValidCurrencyCode(from) {
		return nil, fmt.Errorf("%w: source currency %q", rates.ErrInvalidInput, from)
	}
	if !entities.IsValidCurrencyCode(to) {
		return nil, fmt.Errorf("%w: target currency %q", rates.ErrInvalidInput, to)
	}

	amount, err := ParseAmount(rawAmount)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(rawAmount) == "" {
		s.saveSetting(ctx, entities.SettingKeyLastAmount, "")
	}

	conv := &Conversion{From: from, To: to, Amount: amount}

	if from == to {
		one := decimal.NewFromInt(1)
		conv.Rate = &one
		conv.Timestamp = s.now().UnixMilli()
		if amount != nil {
			result := *amount
			conv.Result = &result
			conv.Display = s.Format(ctx, result, to)
		}
		return conv, nil
	}

	fetched := s.rates.FetchLatestRates(ctx, from)
	conv.Timestamp = fetched.Timestamp
	conv.FromCache = fetched.FromCache
	conv.Stale = fetched.Stale
	conv.Err = fetched.Err
	if fetched.Rates == nil {
		return conv, nil
	}

	raw, ok := fetched.Rates[to]
	if !ok {
		conv.Err = fmt.Errorf("%w: %s has no rate for %s", rates.ErrRateUnavailable, from, to)
		return conv, nil
	}
	rate := decimal.NewFromFloat(raw)
	conv.Rate = &rate

	if amount == nil {
		return conv, nil
	}

	result := amount.Mul(rate)
	conv.Result = &result
	conv.Display = s.Format(ctx, result, to)

	entry := entities.HistoryEntry{
		From:      from,
		To:        to,
		Amount:    amount.InexactFloat64(),
		Result:    result.InexactFloat64(),
		Timestamp: s.now().UnixMilli(),
	}
	if err := s.history.Add(ctx, entry); err != nil {
		log.Printf("[CONVERT] Failed to record history for %s→%s: %v", from, to, err)
	}
	s.saveSetting(ctx, entities.SettingKeyLastAmount, amount.String())

	return conv, nil
}

// LastAmount returns the amount of the previous conversion, or "".
func (s *Service) LastAmount(ctx context.Context) string {
	return s.settings.LoadSetting(ctx, entities.SettingKeyLastAmount, "")
}

func (s *Service) saveSetting(ctx context.Context, key, value string) {
	if err := s.settings.SaveSetting(ctx, key, value); err != nil {
		log.Printf("[CONVERT] Failed to save %s: %v", key, err)
	}
}

package converter

import (
	"context"
	"fmt"
	"strings"

	"github.com/mrlokans/smartrate/internal/entities"
	"github.com/mrlokans/smartrate/internal/rates"
)

var euroLanguages = []string{"de", "fr", "es", "it", "pt", "nl", "eur"}

// LanguageSourceCurrency picks a default source currency for a UI language.
func LanguageSourceCurrency(language string) string {
	language = strings.ToLower(language)
	switch {
	case strings.HasPrefix(language, "zh"):
		return "CNY"
	case strings.HasPrefix(language, "ja"):
		return "JPY"
	}
	for _, prefix := range euroLanguages {
		if strings.HasPrefix(language, prefix) {
			return "EUR"
		}
	}
	return "USD"
}

// DefaultTargetFor picks the default target for a source currency.
func DefaultTargetFor(source string) string {
	if source == "USD" {
		return "EUR"
	}
	return "USD"
}

// DefaultPair returns the stored currency pair, deriving missing sides from
// the userLanguage setting.
func (s *Service) DefaultPair(ctx context.Context) entities.FavoritePair {
	source := strings.ToUpper(s.settings.LoadSetting(ctx, entities.SettingKeyDefaultSourceCurrency, ""))
	target := strings.ToUpper(s.settings.LoadSetting(ctx, entities.SettingKeyDefaultTargetCurrency, ""))
	if source == "" {
		source = LanguageSourceCurrency(s.settings.LoadSetting(ctx, entities.SettingKeyUserLanguage, ""))
	}
	if target == "" {
		target = DefaultTargetFor(source)
	}
	return entities.FavoritePair{From: source, To: target}
}

// SetPair persists pair as the default. Selecting a favorite or a history
// entry goes through here.
func (s *Service) SetPair(ctx context.Context, pair entities.FavoritePair) error {
	pair.From = strings.ToUpper(strings.TrimSpace(pair.From))
	pair.To = strings.ToUpper(strings.TrimSpace(pair.To))
	if !entities.IsValidCurrencyCode(pair.From) || !entities.IsValidCurrencyCode(pair.To) {
		return fmt.Errorf("%w: pair %s", rates.ErrInvalidInput, pair)
	}
	if err := s.settings.SaveSetting(ctx, entities.SettingKeyDefaultSourceCurrency, pair.From); err != nil {
		return fmt.Errorf("save source currency: %w", err)
	}
	if err := s.settings.SaveSetting(ctx, entities.SettingKeyDefaultTargetCurrency, pair.To); err != nil {
		return fmt.Errorf("save target currency: %w", err)
	}
	return nil
}

// Swap exchanges source and target of the default pair and persists it.
func (s *Service) Swap(ctx context.Context) (entities.FavoritePair, error) {
	pair := s.DefaultPair(ctx).Swapped()
	if err := s.SetPair(ctx, pair); err != nil {
		return entities.FavoritePair{}, err
	}
	return pair, nil
}

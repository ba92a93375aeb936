package converter

import (
	"context"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mrlokans/smartrate/internal/entities"
)

// MaxDecimalPlaces bounds the explicit decimalPlaces preference.
const MaxDecimalPlaces = 8

// ParseDecimalPlaces validates a decimalPlaces preference value.
func ParseDecimalPlaces(value string) (places int, auto bool, ok bool) {
	if value == "" || value == entities.DecimalPlacesAuto {
		return 0, true, true
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 || n > MaxDecimalPlaces {
		return 0, false, false
	}
	return n, false, true
}

// AutoDecimalPlaces returns the automatic precision for code in language.
func AutoDecimalPlaces(code, language string) int32 {
	if entities.IsZeroDecimalCurrency(code) {
		return 0
	}
	if strings.HasPrefix(strings.ToLower(language), "zh") {
		return 4
	}
	return 2
}

// DecimalPlaces returns the number of fractional digits used to display an
// amount of code.
func (s *Service) DecimalPlaces(ctx context.Context, code string) int32 {
	pref := s.settings.LoadSetting(ctx, entities.SettingKeyDecimalPlaces, entities.DecimalPlacesAuto)
	places, auto, ok := ParseDecimalPlaces(pref)
	if ok && !auto {
		return int32(places)
	}
	language := s.settings.LoadSetting(ctx, entities.SettingKeyUserLanguage, "")
	return AutoDecimalPlaces(code, language)
}

// Format renders amount of code with the preferred precision, e.g. "EUR 90.00".
func (s *Service) Format(ctx context.Context, amount decimal.Decimal, code string) string {
	return code + " " + amount.StringFixed(s.DecimalPlaces(ctx, code))
}

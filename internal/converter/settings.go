package converter

import (
	"fmt"
	"strings"

	"github.com/mrlokans/smartrate/internal/entities"
)

var settingDefaults = map[string]string{
	entities.SettingKeyDecimalPlaces: entities.DecimalPlacesAuto,
}

// SettingDefault returns the value reported for key when it is unset.
func SettingDefault(key string) string {
	return settingDefaults[key]
}

// NormaliseSetting validates value for key and returns the form to store.
// Currency codes are upper-cased and an empty decimalPlaces becomes "auto".
func NormaliseSetting(key, value string) (string, error) {
	value = strings.TrimSpace(value)
	switch key {
	case entities.SettingKeyDecimalPlaces:
		if _, _, ok := ParseDecimalPlaces(value); !ok {
			return "", fmt.Errorf("decimalPlaces must be %q or 0-%d", entities.DecimalPlacesAuto, MaxDecimalPlaces)
		}
		if value == "" {
			value = entities.DecimalPlacesAuto
		}
	case entities.SettingKeyDefaultSourceCurrency, entities.SettingKeyDefaultTargetCurrency:
		value = strings.ToUpper(value)
		if value != "" && !entities.IsValidCurrencyCode(value) {
			return "", fmt.Errorf("invalid currency code %q", value)
		}
	case entities.SettingKeyLastAmount:
		if _, err := ParseAmount(value); err != nil {
			return "", err
		}
	}
	return value, nil
}

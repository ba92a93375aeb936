package entities

import (
	"regexp"
	"sort"
)

// Currency is one entry of the supported currency list.
type Currency struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// SupportedCurrencyListEntry is the durable snapshot of the supported
// currency list. Timestamp is epoch milliseconds.
type SupportedCurrencyListEntry struct {
	List      []Currency `json:"list"`
	Timestamp int64      `json:"timestamp"`
}

var currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// IsValidCurrencyCode reports whether code is three upper-case ASCII letters.
func IsValidCurrencyCode(code string) bool {
	return currencyCodePattern.MatchString(code)
}

var currencyNames = map[string]string{
	"AED": "UAE Dirham",
	"ARS": "Argentine Peso",
	"AUD": "Australian Dollar",
	"BRL": "Brazilian Real",
	"CAD": "Canadian Dollar",
	"CHF": "Swiss Franc",
	"CNY": "Chinese Yuan",
	"CZK": "Czech Koruna",
	"DKK": "Danish Krone",
	"EUR": "Euro",
	"GBP": "British Pound",
	"HKD": "Hong Kong Dollar",
	"HUF": "Hungarian Forint",
	"IDR": "Indonesian Rupiah",
	"ILS": "Israeli New Shekel",
	"INR": "Indian Rupee",
	"JPY": "Japanese Yen",
	"KRW": "South Korean Won",
	"MXN": "Mexican Peso",
	"MYR": "Malaysian Ringgit",
	"NOK": "Norwegian Krone",
	"NZD": "New Zealand Dollar",
	"PHP": "Philippine Peso",
	"PLN": "Polish Zloty",
	"RUB": "Russian Ruble",
	"SAR": "Saudi Riyal",
	"SEK": "Swedish Krona",
	"SGD": "Singapore Dollar",
	"THB": "Thai Baht",
	"TRY": "Turkish Lira",
	"TWD": "New Taiwan Dollar",
	"UAH": "Ukrainian Hryvnia",
	"USD": "US Dollar",
	"VND": "Vietnamese Dong",
	"ZAR": "South African Rand",
}

// CurrencyName returns the display name for code, or code itself when the
// name is unknown.
func CurrencyName(code string) string {
	if name, ok := currencyNames[code]; ok {
		return name
	}
	return code
}

// zeroDecimalCurrencies are displayed without fractional digits.
var zeroDecimalCurrencies = map[string]bool{
	"JPY": true,
	"KRW": true,
	"VND": true,
}

// IsZeroDecimalCurrency reports whether amounts in code have no minor unit.
func IsZeroDecimalCurrency(code string) bool {
	return zeroDecimalCurrencies[code]
}

var fallbackCurrencyCodes = []string{"USD", "EUR", "JPY", "GBP", "CNY", "AUD", "CAD"}

// FallbackCurrencies returns the minimal currency list used when no real
// list can be obtained, sorted by code. Each call returns a fresh slice.
func FallbackCurrencies() []Currency {
	list := make([]Currency, 0, len(fallbackCurrencyCodes))
	for _, code := range fallbackCurrencyCodes {
		list = append(list, Currency{Code: code, Name: CurrencyName(code)})
	}
	SortCurrencies(list)
	return list
}

// SortCurrencies orders list by code.
func SortCurrencies(list []Currency) {
	sort.Slice(list, func(i, j int) bool {
		return list[i].Code < list[j].Code
	})
}

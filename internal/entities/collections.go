package entities

import "fmt"

// FavoritePair is a directed currency pair. (USD, EUR) and (EUR, USD) are
// different pairs.
type FavoritePair struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

func (p FavoritePair) String() string {
	return fmt.Sprintf("%s→%s", p.From, p.To)
}

// Validate checks that both sides are currency codes and differ.
func (p FavoritePair) Validate() error {
	if !IsValidCurrencyCode(p.From) {
		return fmt.Errorf("invalid source currency %q", p.From)
	}
	if !IsValidCurrencyCode(p.To) {
		return fmt.Errorf("invalid target currency %q", p.To)
	}
	if p.From == p.To {
		return fmt.Errorf("pair %s converts a currency to itself", p)
	}
	return nil
}

// Swapped returns the pair with source and target exchanged.
func (p FavoritePair) Swapped() FavoritePair {
	return FavoritePair{From: p.To, To: p.From}
}

// HistoryEntry records one completed conversion. Timestamp is epoch
// milliseconds.
type HistoryEntry struct {
	From      string  `json:"from" yaml:"from"`
	To        string  `json:"to" yaml:"to"`
	Amount    float64 `json:"amount" yaml:"amount"`
	Result    float64 `json:"result" yaml:"result"`
	Timestamp int64   `json:"timestamp" yaml:"timestamp"`
}

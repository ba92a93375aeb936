package entities

import (
	"time"
)

// KVEntry is one row of the durable key/value store. Value holds the JSON
// encoding of whatever the caller stored under Key.
type KVEntry struct {
	Key       string    `gorm:"primaryKey;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (KVEntry) TableName() string {
	return "kv_entries"
}

// Known setting keys
const (
	SettingKeyUserAPIKey            = "userApiKey"
	SettingKeyDecimalPlaces         = "decimalPlaces"
	SettingKeyUserLanguage          = "userLanguage"
	SettingKeyLastAmount            = "lastAmount"
	SettingKeyDefaultSourceCurrency = "defaultSourceCurrency"
	SettingKeyDefaultTargetCurrency = "defaultTargetCurrency"
)

// KnownSettingKeys lists every scalar setting the application reads.
var KnownSettingKeys = []string{
	SettingKeyUserAPIKey,
	SettingKeyDecimalPlaces,
	SettingKeyUserLanguage,
	SettingKeyLastAmount,
	SettingKeyDefaultSourceCurrency,
	SettingKeyDefaultTargetCurrency,
}

// IsKnownSettingKey reports whether key is one of KnownSettingKeys.
func IsKnownSettingKey(key string) bool {
	for _, k := range KnownSettingKeys {
		if k == key {
			return true
		}
	}
	return false
}

// DecimalPlacesAuto is the default decimalPlaces preference.
const DecimalPlacesAuto = "auto"

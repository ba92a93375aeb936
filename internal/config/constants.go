package config

// Defaults shared by the server and the CLI
const (
	// DefaultDatabasePath is the default path for the key/value database
	DefaultDatabasePath = "./smartrate.db"

	// DefaultProviderBaseURL is the exchangerate-api.com v6 root
	DefaultProviderBaseURL = "https://v6.exchangerate-api.com/v6/"

	// DefaultWarmupSchedule refreshes favorite rates every 6 hours
	DefaultWarmupSchedule = "0 */6 * * *"
)

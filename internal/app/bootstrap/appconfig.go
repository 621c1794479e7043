// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles
// framework-level settings (ports, TLS, logging); AppConfig is everything
// specific to SalesPulse: the local MongoDB, the gamification provider's
// API, sessions, auditing, and login throttling.
type AppConfig struct {
	// MongoDB connection configuration (goal configs, upload history, audit)
	MongoURI      string
	MongoDatabase string

	// Session management configuration
	SessionKey    string        // secret for signing session cookies
	SessionName   string        // cookie name (default: salespulse-session)
	SessionDomain string        // cookie domain (blank means current host)
	SessionMaxAge time.Duration // how long a session cookie lives

	// Gamification provider API
	ProviderBaseURL      string
	ProviderAPIKey       string
	ProviderClientID     string
	ProviderClientSecret string
	ProviderTimeout      time.Duration

	// Provider collection that stores performance report records
	ReportsCollection string

	// Local bootstrap admin: lets the console be administered before any
	// provider account has the admin team, and while the provider is down.
	BootstrapAdminLogin        string
	BootstrapAdminPasswordHash string // bcrypt

	// Audit logging: "all" (db+log), "db", "log", or "off" per category
	AuditLogAuth  string
	AuditLogAdmin string

	// Login rate limiting
	LoginRateIPLimit    int
	LoginRateIPWindow   time.Duration
	LoginRateUserLimit  int
	LoginRateUserWindow time.Duration
}

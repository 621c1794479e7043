// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// appConfigKeys defines the configuration keys for SalesPulse.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, provider_base_url, etc.
//   - Environment variables: SALESPULSE_MONGO_URI, SALESPULSE_PROVIDER_BASE_URL, etc.
//   - Command-line flags: --mongo_uri, --provider_base_url, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "salespulse", Desc: "MongoDB database name"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "salespulse-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "12h", Desc: "Session cookie lifetime (e.g., 12h, 30m)"},

	// Gamification provider
	{Name: "provider_base_url", Default: "", Desc: "Base URL of the gamification provider API"},
	{Name: "provider_api_key", Default: "", Desc: "Provider X-Api-Key value"},
	{Name: "provider_client_id", Default: "", Desc: "OAuth client id for the provider's password grant"},
	{Name: "provider_client_secret", Default: "", Desc: "OAuth client secret for the provider's password grant"},
	{Name: "provider_timeout", Default: "15s", Desc: "Provider HTTP timeout"},
	{Name: "reports_collection", Default: "performance_reports", Desc: "Provider collection for report records"},

	// Bootstrap admin
	{Name: "bootstrap_admin_login", Default: "", Desc: "Login id of the local bootstrap admin (blank disables it)"},
	{Name: "bootstrap_admin_password_hash", Default: "", Desc: "bcrypt hash of the bootstrap admin password"},

	// Audit logging settings
	{Name: "audit_log_auth", Default: "all", Desc: "Auth event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_admin", Default: "all", Desc: "Admin event logging: 'all' (db+log), 'db', 'log', or 'off'"},

	// Login rate limiting
	{Name: "login_rate_ip_limit", Default: 10, Desc: "Login attempts allowed per IP per window"},
	{Name: "login_rate_ip_window", Default: "1m", Desc: "Per-IP login rate window"},
	{Name: "login_rate_user_limit", Default: 5, Desc: "Login attempts allowed per username per window"},
	{Name: "login_rate_user_window", Default: "5m", Desc: "Per-username login rate window"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, SALESPULSE_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "SALESPULSE", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:      appValues.String("mongo_uri"),
		MongoDatabase: appValues.String("mongo_database"),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 12*time.Hour),

		ProviderBaseURL:      appValues.String("provider_base_url"),
		ProviderAPIKey:       appValues.String("provider_api_key"),
		ProviderClientID:     appValues.String("provider_client_id"),
		ProviderClientSecret: appValues.String("provider_client_secret"),
		ProviderTimeout:      appValues.Duration("provider_timeout", 15*time.Second),
		ReportsCollection:    appValues.String("reports_collection"),

		BootstrapAdminLogin:        appValues.String("bootstrap_admin_login"),
		BootstrapAdminPasswordHash: appValues.String("bootstrap_admin_password_hash"),

		AuditLogAuth:  appValues.String("audit_log_auth"),
		AuditLogAdmin: appValues.String("audit_log_admin"),

		LoginRateIPLimit:    appValues.Int("login_rate_ip_limit"),
		LoginRateIPWindow:   appValues.Duration("login_rate_ip_window", time.Minute),
		LoginRateUserLimit:  appValues.Int("login_rate_user_limit"),
		LoginRateUserWindow: appValues.Duration("login_rate_user_window", 5*time.Minute),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation. It runs before any
// backend connects, so malformed settings abort startup instead of surfacing
// as confusing runtime failures.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.ProviderBaseURL == "" {
		return fmt.Errorf("provider_base_url is required")
	}

	// A bootstrap admin needs both halves; half-configured is almost
	// certainly a deployment mistake.
	if (appCfg.BootstrapAdminLogin == "") != (appCfg.BootstrapAdminPasswordHash == "") {
		return fmt.Errorf("bootstrap_admin_login and bootstrap_admin_password_hash must be set together")
	}
	if appCfg.BootstrapAdminPasswordHash != "" {
		if _, err := bcrypt.Cost([]byte(appCfg.BootstrapAdminPasswordHash)); err != nil {
			return fmt.Errorf("bootstrap_admin_password_hash is not a bcrypt hash: %w", err)
		}
	}

	return nil
}

// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	dashboardfeature "github.com/salespulse/salespulse/internal/app/features/dashboard"
	goalconfigfeature "github.com/salespulse/salespulse/internal/app/features/goalconfig"
	healthfeature "github.com/salespulse/salespulse/internal/app/features/health"
	loginfeature "github.com/salespulse/salespulse/internal/app/features/login"
	provideradminfeature "github.com/salespulse/salespulse/internal/app/features/provideradmin"
	reportsfeature "github.com/salespulse/salespulse/internal/app/features/reports"
	uploadreportsfeature "github.com/salespulse/salespulse/internal/app/features/uploadreports"
	auditstore "github.com/salespulse/salespulse/internal/app/store/audit"
	goalconfigstore "github.com/salespulse/salespulse/internal/app/store/goalconfig"
	reportstore "github.com/salespulse/salespulse/internal/app/store/reports"
	uploadstore "github.com/salespulse/salespulse/internal/app/store/uploads"
	"github.com/salespulse/salespulse/internal/app/system/auditlog"
	"github.com/salespulse/salespulse/internal/app/system/auth"
	"github.com/salespulse/salespulse/internal/app/system/metrics"
	"github.com/salespulse/salespulse/internal/app/system/ratelimit"
	"github.com/salespulse/salespulse/internal/provider"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. SalesPulse builds the provider client,
// session manager, stores, audit logger, and metrics manager once here and
// hands them to the feature routers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	prov := provider.New(provider.Config{
		BaseURL:      appCfg.ProviderBaseURL,
		APIKey:       appCfg.ProviderAPIKey,
		ClientID:     appCfg.ProviderClientID,
		ClientSecret: appCfg.ProviderClientSecret,
		Timeout:      appCfg.ProviderTimeout,
	}, logger)

	goalConfigs := goalconfigstore.New(deps.MongoDatabase)
	uploads := uploadstore.New(deps.MongoDatabase)
	reports := reportstore.New(prov, appCfg.ReportsCollection)
	auditLog := auditlog.New(auditstore.New(deps.MongoDatabase), logger, auditlog.Config{
		Auth:  appCfg.AuditLogAuth,
		Admin: appCfg.AuditLogAdmin,
	})
	m := metrics.NewManager()
	loginLimiter := ratelimit.NewLoginLimiter(
		appCfg.LoginRateIPLimit, appCfg.LoginRateIPWindow,
		appCfg.LoginRateUserLimit, appCfg.LoginRateUserWindow,
	)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if signed in,
	// making the current user available via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, appCfg.ProviderBaseURL, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Prometheus metrics
	r.Handle("/metrics", m.Handler())

	// Authentication
	loginHandler := loginfeature.NewHandler(sessionMgr, prov, auditLog, m, loginLimiter,
		appCfg.BootstrapAdminLogin, appCfg.BootstrapAdminPasswordHash, logger)
	r.Mount("/auth", loginfeature.Routes(loginHandler))

	// Dashboards
	dashboardHandler := dashboardfeature.NewHandler(sessionMgr, prov, goalConfigs, reports, m, logger)
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, sessionMgr))

	// Report history (self or admin)
	reportsHandler := reportsfeature.NewHandler(sessionMgr, reports, m, logger)
	r.Mount("/reports", reportsfeature.Routes(reportsHandler, sessionMgr))

	// Admin: report CSV ingestion and upload history
	uploadHandler := uploadreportsfeature.NewHandler(sessionMgr, prov, reports, uploads, auditLog, m, logger)
	r.Mount("/admin/reports", uploadreportsfeature.Routes(uploadHandler, sessionMgr))

	// Admin: per-team goal configuration
	goalConfigHandler := goalconfigfeature.NewHandler(goalConfigs, auditLog, logger)
	r.Mount("/admin/goal-configs", goalconfigfeature.Routes(goalConfigHandler, sessionMgr))

	// Admin: provider entity CRUD (players, teams, catalog)
	providerAdminHandler := provideradminfeature.NewHandler(sessionMgr, prov, auditLog, m, logger)
	r.Mount("/admin/provider", provideradminfeature.Routes(providerAdminHandler, sessionMgr))

	return r, nil
}

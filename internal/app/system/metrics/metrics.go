// Package metrics exposes Prometheus counters for the dashboard service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns the service's Prometheus metrics and their registry.
type Manager struct {
	registry *prometheus.Registry

	logins           *prometheus.CounterVec
	dashboardRenders prometheus.Counter
	providerErrors   prometheus.Counter
	csvRowsImported  prometheus.Counter
	csvRowsSkipped   prometheus.Counter
	csvRowsRejected  prometheus.Counter
}

// NewManager creates a Manager with its own registry, so tests can build
// managers freely without duplicate-registration panics.
func NewManager() *Manager {
	reg := prometheus.NewRegistry()
	auto := promauto.With(reg)

	m := &Manager{registry: reg}

	m.logins = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "salespulse",
		Name:      "logins_total",
		Help:      "Login attempts by outcome (success, failed, rate_limited).",
	}, []string{"outcome"})

	m.dashboardRenders = auto.NewCounter(prometheus.CounterOpts{
		Namespace: "salespulse",
		Name:      "dashboard_renders_total",
		Help:      "Dashboard views computed and served.",
	})

	m.providerErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: "salespulse",
		Name:      "provider_errors_total",
		Help:      "Failed calls to the gamification platform API.",
	})

	m.csvRowsImported = auto.NewCounter(prometheus.CounterOpts{
		Namespace: "salespulse",
		Subsystem: "reports",
		Name:      "csv_rows_imported_total",
		Help:      "Report CSV rows accepted and stored.",
	})

	m.csvRowsSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: "salespulse",
		Subsystem: "reports",
		Name:      "csv_rows_skipped_total",
		Help:      "Report CSV rows skipped as identical to the stored record.",
	})

	m.csvRowsRejected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: "salespulse",
		Subsystem: "reports",
		Name:      "csv_rows_rejected_total",
		Help:      "Report CSV rows rejected by row validation.",
	})

	return m
}

// Handler serves the /metrics endpoint for this manager's registry.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// LoginSuccess counts a successful login.
func (m *Manager) LoginSuccess() { m.logins.WithLabelValues("success").Inc() }

// LoginFailed counts a rejected login.
func (m *Manager) LoginFailed() { m.logins.WithLabelValues("failed").Inc() }

// LoginRateLimited counts a throttled login attempt.
func (m *Manager) LoginRateLimited() { m.logins.WithLabelValues("rate_limited").Inc() }

// DashboardRender counts one computed dashboard view.
func (m *Manager) DashboardRender() { m.dashboardRenders.Inc() }

// ProviderError counts one failed provider API call.
func (m *Manager) ProviderError() { m.providerErrors.Inc() }

// CSVRows adds one upload's row counts.
func (m *Manager) CSVRows(imported, skipped, rejected int) {
	m.csvRowsImported.Add(float64(imported))
	m.csvRowsSkipped.Add(float64(skipped))
	m.csvRowsRejected.Add(float64(rejected))
}

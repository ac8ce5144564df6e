package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

const (
	namespace = "teamup_board"
)

// Metrics holds all application metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Database metrics
	DBConnectionsOpen        prometheus.Gauge
	DBConnectionsInUse       prometheus.Gauge
	DBConnectionsIdle        prometheus.Gauge
	DBConnectionsMax         prometheus.Gauge
	DBConnectionWaitTotal    prometheus.Counter
	DBConnectionWaitDuration prometheus.Counter
	DBQueryDuration          *prometheus.HistogramVec
	DBQueryErrors            *prometheus.CounterVec

	// External API metrics (email provider, object storage)
	ExternalAPIRequestDuration *prometheus.HistogramVec
	ExternalAPIRequestsTotal   *prometheus.CounterVec
	ExternalAPIErrors          *prometheus.CounterVec

	// Business gauges, refreshed by BusinessMetricsCollector
	CompaniesTotal          prometheus.Gauge
	BoardsTotal             prometheus.Gauge
	ItemsTotal              prometheus.Gauge
	PendingInvitationsTotal prometheus.Gauge

	// Business counters
	CompanyCreatedTotal     prometheus.Counter
	BoardCreatedTotal       prometheus.Counter
	ItemCreatedTotal        prometheus.Counter
	CellCommitsTotal        *prometheus.CounterVec
	InvitationsIssuedTotal  *prometheus.CounterVec
	RedemptionsTotal        *prometheus.CounterVec
	RealtimeEventsPublished *prometheus.CounterVec
	WebsocketClients        prometheus.Gauge

	// Logger for error reporting
	logger *zap.Logger
}

// New creates and registers all metrics with the default registry
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, nil)
}

// NewWithLogger creates and registers all metrics with the default registry and a logger
func NewWithLogger(logger *zap.Logger) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, logger)
}

// NewWithRegistry creates and registers all metrics with a custom registry
func NewWithRegistry(registerer prometheus.Registerer, logger *zap.Logger) *Metrics {
	factory := promauto.With(registerer)

	if logger == nil {
		logger = zap.NewNop()
	}

	gauge := func(name, help string) prometheus.Gauge {
		return factory.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help})
	}
	counter := func(name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help})
	}
	counterVec := func(name, help string, labels ...string) *prometheus.CounterVec {
		return factory.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help}, labels)
	}
	histogramVec := func(name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
		return factory.NewHistogramVec(prometheus.HistogramOpts{Namespace: namespace, Name: name, Help: help, Buckets: buckets}, labels)
	}

	return &Metrics{
		HTTPRequestsTotal: counterVec("http_requests_total",
			"Total number of HTTP requests", "method", "endpoint", "status"),
		HTTPRequestDuration: histogramVec("http_request_duration_seconds",
			"HTTP request duration in seconds",
			[]float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}, "method", "endpoint"),
		HTTPRequestsInFlight: gauge("http_requests_in_flight",
			"Current number of HTTP requests being served"),

		DBConnectionsOpen:  gauge("db_connections_open", "Current number of open database connections"),
		DBConnectionsInUse: gauge("db_connections_in_use", "Current number of in-use database connections"),
		DBConnectionsIdle:  gauge("db_connections_idle", "Current number of idle database connections"),
		DBConnectionsMax:   gauge("db_connections_max", "Maximum number of open database connections configured"),
		DBConnectionWaitTotal: counter("db_connection_wait_total",
			"Total number of times waited for a database connection"),
		DBConnectionWaitDuration: counter("db_connection_wait_duration_seconds_total",
			"Total duration waited for database connections in seconds"),
		DBQueryDuration: histogramVec("db_query_duration_seconds",
			"Database query duration in seconds",
			[]float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5}, "operation", "table"),
		DBQueryErrors: counterVec("db_query_errors_total",
			"Total number of database query errors", "operation", "table"),

		ExternalAPIRequestDuration: histogramVec("external_api_request_duration_seconds",
			"External API request duration in seconds",
			[]float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}, "endpoint", "status"),
		ExternalAPIRequestsTotal: counterVec("external_api_requests_total",
			"Total number of external API requests", "endpoint", "method", "status"),
		ExternalAPIErrors: counterVec("external_api_errors_total",
			"Total number of external API errors", "endpoint", "error_type"),

		CompaniesTotal:          gauge("companies_total", "Total number of companies"),
		BoardsTotal:             gauge("boards_total", "Total number of boards"),
		ItemsTotal:              gauge("items_total", "Total number of board items"),
		PendingInvitationsTotal: gauge("pending_invitations_total", "Total number of pending invitations and access codes"),

		CompanyCreatedTotal: counter("company_created_total", "Total number of company creation events"),
		BoardCreatedTotal:   counter("board_created_total", "Total number of board creation events"),
		ItemCreatedTotal:    counter("item_created_total", "Total number of item creation events"),
		CellCommitsTotal: counterVec("cell_commits_total",
			"Total number of cell edits committed", "column_type", "result"),
		InvitationsIssuedTotal: counterVec("invitations_issued_total",
			"Total number of invitations issued", "kind"),
		RedemptionsTotal: counterVec("invitation_redemptions_total",
			"Total number of invitation redemption attempts", "kind", "outcome"),
		RealtimeEventsPublished: counterVec("realtime_events_published_total",
			"Total number of row change events published", "event"),
		WebsocketClients: gauge("websocket_clients", "Current number of connected board subscribers"),

		logger: logger,
	}
}

// safeExecute wraps metric operations with panic recovery. A nil receiver is a no-op.
func (m *Metrics) safeExecute(operation string, fn func()) {
	if m == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			if m.logger != nil {
				m.logger.Error("Panic in metrics operation",
					zap.String("operation", operation),
					zap.Any("panic", r),
				)
			}
		}
	}()
	fn()
}

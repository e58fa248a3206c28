package prometheus

import (
	"fmt"
	"time"
)

// AppMetrics holds all application metrics.
type AppMetrics struct {
	// HTTP Layer
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPRequestSize     HistogramVec
	HTTPResponseSize    HistogramVec
	HTTPActiveRequests  GaugeVec

	// Ingestion Layer
	EmailsReceivedTotal  CounterVec
	EmailsProcessedTotal CounterVec
	EmailParseDuration   HistogramVec
	MovementsInterpreted CounterVec
	ProcessosReconciled  CounterVec
	IngestionEventsTotal CounterVec

	// Alerting Layer
	AlertasCreatedTotal      CounterVec
	AlertasDeduplicatedTotal CounterVec
	SweepRunsTotal           CounterVec
	SweepDuration            HistogramVec
	SweepAlertsPerRun        HistogramVec
	SweepLockContention      CounterVec

	// Consultas Layer
	DataJudRequestsTotal CounterVec
	DataJudDuration      HistogramVec
	ConsultaCacheHits    CounterVec
	ConsultaCacheMisses  CounterVec

	// Infrastructure Layer
	DBConnectionPoolSize   GaugeVec
	DBConnectionPoolActive GaugeVec
	DBQueryDuration        HistogramVec
	CacheHitsTotal         CounterVec
	CacheMissesTotal       CounterVec
	MessageQueueDepth      GaugeVec
	MessageProcessDuration HistogramVec

	// System Health
	ServiceUptime     GaugeVec
	HealthCheckStatus GaugeVec
	ErrorsTotal       CounterVec
}

// Default Buckets
var (
	DefaultHTTPDurationBuckets  = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	DefaultSweepDurationBuckets = []float64{.1, .5, 1, 5, 10, 30, 60, 120, 300}
	DefaultSizeBuckets          = []float64{100, 1000, 10000, 100000, 1000000, 10000000}
	DefaultDBDurationBuckets    = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 5}
)

// NewAppMetrics registers all metrics and returns AppMetrics struct.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	m := &AppMetrics{}

	// HTTP
	m.HTTPRequestsTotal = collector.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "path", "status_code")
	m.HTTPRequestDuration = collector.RegisterHistogram("http_request_duration_seconds", "HTTP request duration", DefaultHTTPDurationBuckets, "method", "path")
	m.HTTPRequestSize = collector.RegisterHistogram("http_request_size_bytes", "HTTP request size", DefaultSizeBuckets, "method", "path")
	m.HTTPResponseSize = collector.RegisterHistogram("http_response_size_bytes", "HTTP response size", DefaultSizeBuckets, "method", "path")
	m.HTTPActiveRequests = collector.RegisterGauge("http_active_requests", "Active HTTP requests", "method", "path")

	// Ingestion
	m.EmailsReceivedTotal = collector.RegisterCounter("emails_received_total", "Tribunal notification emails received", "source")
	m.EmailsProcessedTotal = collector.RegisterCounter("emails_processed_total", "Notification emails processed", "outcome")
	m.EmailParseDuration = collector.RegisterHistogram("email_parse_duration_seconds", "Notification parse duration", DefaultHTTPDurationBuckets, "tribunal")
	m.MovementsInterpreted = collector.RegisterCounter("movements_interpreted_total", "Movements classified by the interpreter", "tipo")
	m.ProcessosReconciled = collector.RegisterCounter("processos_reconciled_total", "Case records reconciled from notifications", "action")
	m.IngestionEventsTotal = collector.RegisterCounter("ingestion_events_total", "Ingestion events recorded", "tribunal")

	// Alerting
	m.AlertasCreatedTotal = collector.RegisterCounter("alertas_created_total", "Alerts created", "tipo", "prioridade")
	m.AlertasDeduplicatedTotal = collector.RegisterCounter("alertas_deduplicated_total", "Alert inserts suppressed as duplicates", "tipo")
	m.SweepRunsTotal = collector.RegisterCounter("sweep_runs_total", "Deadline sweep runs", "kind", "status")
	m.SweepDuration = collector.RegisterHistogram("sweep_duration_seconds", "Deadline sweep duration", DefaultSweepDurationBuckets, "kind")
	m.SweepAlertsPerRun = collector.RegisterHistogram("sweep_alerts_per_run", "Alerts created per sweep run", []float64{0, 1, 5, 10, 25, 50, 100, 500}, "kind")
	m.SweepLockContention = collector.RegisterCounter("sweep_lock_contention_total", "Sweep runs skipped because another instance held the lock", "kind")

	// Consultas
	m.DataJudRequestsTotal = collector.RegisterCounter("datajud_requests_total", "DataJud API requests", "tribunal", "status")
	m.DataJudDuration = collector.RegisterHistogram("datajud_request_duration_seconds", "DataJud API request duration", DefaultHTTPDurationBuckets, "tribunal")
	m.ConsultaCacheHits = collector.RegisterCounter("consulta_cache_hits_total", "Public case lookups served from cache")
	m.ConsultaCacheMisses = collector.RegisterCounter("consulta_cache_misses_total", "Public case lookups that reached DataJud")

	// Infrastructure
	m.DBConnectionPoolSize = collector.RegisterGauge("db_pool_size", "Database connection pool size", "db")
	m.DBConnectionPoolActive = collector.RegisterGauge("db_pool_active", "Database active connections", "db")
	m.DBQueryDuration = collector.RegisterHistogram("db_query_duration_seconds", "Database query duration", DefaultDBDurationBuckets, "db", "operation")
	m.CacheHitsTotal = collector.RegisterCounter("cache_hits_total", "Cache hits", "cache")
	m.CacheMissesTotal = collector.RegisterCounter("cache_misses_total", "Cache misses", "cache")
	m.MessageQueueDepth = collector.RegisterGauge("mq_depth", "Message queue consumer lag", "queue")
	m.MessageProcessDuration = collector.RegisterHistogram("mq_process_duration_seconds", "Message processing duration", DefaultHTTPDurationBuckets, "queue", "message_type")

	// System Health
	m.ServiceUptime = collector.RegisterGauge("service_uptime_seconds", "Service uptime", "service")
	m.HealthCheckStatus = collector.RegisterGauge("health_check_status", "Health check status (1=up, 0=down)", "component")
	m.ErrorsTotal = collector.RegisterCounter("errors_total", "Total errors", "component", "error_type", "severity")

	return m
}

// RegisterAppMetrics is an alias for NewAppMetrics.
func RegisterAppMetrics(collector MetricsCollector) *AppMetrics {
	return NewAppMetrics(collector)
}

// Helpers

func RecordHTTPRequest(metrics *AppMetrics, method, path string, statusCode int, duration time.Duration, reqSize, respSize int64) {
	status := fmt.Sprintf("%d", statusCode)
	metrics.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	metrics.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	metrics.HTTPRequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	metrics.HTTPResponseSize.WithLabelValues(method, path).Observe(float64(respSize))
}

// RecordEmailProcessed counts one notification through the pipeline.
// Outcome is one of: processed, not_notification, unparseable, owner_not_found, failed.
func RecordEmailProcessed(metrics *AppMetrics, outcome string, parseDuration time.Duration, tribunal string) {
	metrics.EmailsProcessedTotal.WithLabelValues(outcome).Inc()
	if tribunal != "" {
		metrics.EmailParseDuration.WithLabelValues(tribunal).Observe(parseDuration.Seconds())
	}
}

// RecordReconciliation counts a reconciler decision: updated or auto_created.
func RecordReconciliation(metrics *AppMetrics, action string) {
	metrics.ProcessosReconciled.WithLabelValues(action).Inc()
}

// RecordAlerta counts one alert decision from CreateIfAbsent.
func RecordAlerta(metrics *AppMetrics, tipo, prioridade string, created bool) {
	if created {
		metrics.AlertasCreatedTotal.WithLabelValues(tipo, prioridade).Inc()
	} else {
		metrics.AlertasDeduplicatedTotal.WithLabelValues(tipo).Inc()
	}
}

// RecordSweep records one sweep run. kind is hourly or daily.
func RecordSweep(metrics *AppMetrics, kind string, duration time.Duration, alertsCreated int, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	metrics.SweepRunsTotal.WithLabelValues(kind, status).Inc()
	metrics.SweepDuration.WithLabelValues(kind).Observe(duration.Seconds())
	metrics.SweepAlertsPerRun.WithLabelValues(kind).Observe(float64(alertsCreated))
}

func RecordDataJudRequest(metrics *AppMetrics, tribunal string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	metrics.DataJudRequestsTotal.WithLabelValues(tribunal, status).Inc()
	metrics.DataJudDuration.WithLabelValues(tribunal).Observe(duration.Seconds())
}

func RecordDBQuery(metrics *AppMetrics, db, operation string, duration time.Duration, err error) {
	metrics.DBQueryDuration.WithLabelValues(db, operation).Observe(duration.Seconds())
	if err != nil {
		metrics.ErrorsTotal.WithLabelValues(db, "query_error", "error").Inc()
	}
}

func RecordCacheAccess(metrics *AppMetrics, cache string, hit bool) {
	if hit {
		metrics.CacheHitsTotal.WithLabelValues(cache).Inc()
	} else {
		metrics.CacheMissesTotal.WithLabelValues(cache).Inc()
	}
}

func RecordError(metrics *AppMetrics, component, errorType, severity string) {
	metrics.ErrorsTotal.WithLabelValues(component, errorType, severity).Inc()
}

//Personal.AI order the ending

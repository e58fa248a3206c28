package prometheus

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAppMetrics(t *testing.T) (*AppMetrics, MetricsCollector) {
	c := newTestCollector(t)
	m := NewAppMetrics(c)
	return m, c
}

func TestNewAppMetrics_AllMetricsRegistered(t *testing.T) {
	m, _ := newTestAppMetrics(t)
	require.NotNil(t, m)

	assert.NotNil(t, m.HTTPRequestsTotal)
	assert.NotNil(t, m.HTTPRequestDuration)
	assert.NotNil(t, m.EmailsProcessedTotal)
	assert.NotNil(t, m.MovementsInterpreted)
	assert.NotNil(t, m.ProcessosReconciled)
	assert.NotNil(t, m.AlertasCreatedTotal)
	assert.NotNil(t, m.AlertasDeduplicatedTotal)
	assert.NotNil(t, m.SweepRunsTotal)
	assert.NotNil(t, m.SweepDuration)
	assert.NotNil(t, m.DataJudRequestsTotal)
}

func TestRecordHTTPRequest_AllMetricsUpdated(t *testing.T) {
	m, c := newTestAppMetrics(t)

	RecordHTTPRequest(m, "GET", "/api/v1/processos", 200, 100*time.Millisecond, 1024, 2048)

	output := scrapeMetrics(t, c)
	assert.Contains(t, output, `test_unit_http_requests_total{method="GET",path="/api/v1/processos",status_code="200"} 1`)
	assert.Contains(t, output, `test_unit_http_request_size_bytes_sum{method="GET",path="/api/v1/processos"} 1024`)
	assert.Contains(t, output, `test_unit_http_response_size_bytes_sum{method="GET",path="/api/v1/processos"} 2048`)
	assert.Contains(t, output, `test_unit_http_request_duration_seconds_count{method="GET",path="/api/v1/processos"} 1`)
}

func TestRecordEmailProcessed(t *testing.T) {
	m, c := newTestAppMetrics(t)

	RecordEmailProcessed(m, "processed", 5*time.Millisecond, "TRF1")
	RecordEmailProcessed(m, "not_notification", 0, "")

	output := scrapeMetrics(t, c)
	assert.Contains(t, output, `test_unit_emails_processed_total{outcome="processed"} 1`)
	assert.Contains(t, output, `test_unit_emails_processed_total{outcome="not_notification"} 1`)
	assert.Contains(t, output, `test_unit_email_parse_duration_seconds_count{tribunal="TRF1"} 1`)
}

func TestRecordReconciliation(t *testing.T) {
	m, c := newTestAppMetrics(t)

	RecordReconciliation(m, "updated")
	RecordReconciliation(m, "auto_created")
	RecordReconciliation(m, "auto_created")

	output := scrapeMetrics(t, c)
	assert.Contains(t, output, `test_unit_processos_reconciled_total{action="updated"} 1`)
	assert.Contains(t, output, `test_unit_processos_reconciled_total{action="auto_created"} 2`)
}

func TestRecordAlerta(t *testing.T) {
	m, c := newTestAppMetrics(t)

	RecordAlerta(m, "hearing", "urgent", true)
	RecordAlerta(m, "hearing", "urgent", false)

	output := scrapeMetrics(t, c)
	assert.Contains(t, output, `test_unit_alertas_created_total{prioridade="urgent",tipo="hearing"} 1`)
	assert.Contains(t, output, `test_unit_alertas_deduplicated_total{tipo="hearing"} 1`)
}

func TestRecordSweep(t *testing.T) {
	m, c := newTestAppMetrics(t)

	RecordSweep(m, "hourly", 2*time.Second, 3, nil)
	RecordSweep(m, "daily", 10*time.Second, 0, errors.New("db down"))

	output := scrapeMetrics(t, c)
	assert.Contains(t, output, `test_unit_sweep_runs_total{kind="hourly",status="success"} 1`)
	assert.Contains(t, output, `test_unit_sweep_runs_total{kind="daily",status="failure"} 1`)
	assert.Contains(t, output, `test_unit_sweep_duration_seconds_count{kind="hourly"} 1`)
	assert.Contains(t, output, `test_unit_sweep_alerts_per_run_sum{kind="hourly"} 3`)
}

func TestRecordDataJudRequest(t *testing.T) {
	m, c := newTestAppMetrics(t)

	RecordDataJudRequest(m, "trf1", 300*time.Millisecond, nil)
	RecordDataJudRequest(m, "trf1", time.Second, errors.New("timeout"))

	output := scrapeMetrics(t, c)
	assert.Contains(t, output, `test_unit_datajud_requests_total{status="success",tribunal="trf1"} 1`)
	assert.Contains(t, output, `test_unit_datajud_requests_total{status="failure",tribunal="trf1"} 1`)
	assert.Contains(t, output, `test_unit_datajud_request_duration_seconds_count{tribunal="trf1"} 2`)
}

func TestRecordDBQuery_Success(t *testing.T) {
	m, c := newTestAppMetrics(t)

	RecordDBQuery(m, "postgres", "select", 10*time.Millisecond, nil)

	output := scrapeMetrics(t, c)
	assert.Contains(t, output, `test_unit_db_query_duration_seconds_count{db="postgres",operation="select"} 1`)
}

func TestRecordDBQuery_Error(t *testing.T) {
	m, c := newTestAppMetrics(t)

	RecordDBQuery(m, "postgres", "insert", 5*time.Millisecond, errors.New("db error"))

	output := scrapeMetrics(t, c)
	assert.Contains(t, output, `test_unit_db_query_duration_seconds_count{db="postgres",operation="insert"} 1`)
	assert.Contains(t, output, `test_unit_errors_total{component="postgres",error_type="query_error",severity="error"} 1`)
}

func TestRecordCacheAccess(t *testing.T) {
	m, c := newTestAppMetrics(t)

	RecordCacheAccess(m, "redis", true)
	RecordCacheAccess(m, "redis", false)

	output := scrapeMetrics(t, c)
	assert.Contains(t, output, `test_unit_cache_hits_total{cache="redis"} 1`)
	assert.Contains(t, output, `test_unit_cache_misses_total{cache="redis"} 1`)
}

func TestDefaultBuckets(t *testing.T) {
	assert.NotNil(t, DefaultHTTPDurationBuckets)
	assert.NotNil(t, DefaultSweepDurationBuckets)
	assert.NotNil(t, DefaultDBDurationBuckets)
}

func TestConcurrentMetricRecording(t *testing.T) {
	m, _ := newTestAppMetrics(t)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				RecordHTTPRequest(m, "GET", "/path", 200, time.Millisecond, 10, 10)
			}
			done <- true
		}()
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}

//Personal.AI order the ending

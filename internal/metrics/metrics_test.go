package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getTestMetrics() *Metrics {
	return NewWithRegistry(prometheus.NewRegistry(), nil)
}

func getCounterValue(t *testing.T, c prometheus.Metric) float64 {
	t.Helper()
	metric := &dto.Metric{}
	require.NoError(t, c.Write(metric))
	return metric.Counter.GetValue()
}

func getGaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	metric := &dto.Metric{}
	require.NoError(t, g.Write(metric))
	return metric.Gauge.GetValue()
}

func TestMetricsInitialization(t *testing.T) {
	m := getTestMetrics()

	assert.NotNil(t, m.HTTPRequestsTotal)
	assert.NotNil(t, m.HTTPRequestDuration)
	assert.NotNil(t, m.HTTPRequestsInFlight)
	assert.NotNil(t, m.DBConnectionsOpen)
	assert.NotNil(t, m.DBQueryDuration)
	assert.NotNil(t, m.ExternalAPIRequestsTotal)
	assert.NotNil(t, m.CompaniesTotal)
	assert.NotNil(t, m.PendingInvitationsTotal)
	assert.NotNil(t, m.CellCommitsTotal)
	assert.NotNil(t, m.RedemptionsTotal)
	assert.NotNil(t, m.WebsocketClients)
}

func TestAllMetricsHaveHelpAndNamespace(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewWithRegistry(registry, nil)

	// Vec metrics only appear in Gather once a label set exists
	m.RecordHTTPRequest("GET", "/x", 200, 0)
	m.RecordDBQuery("select", "boards", 0, nil)
	m.RecordExternalAPICall("resend/emails", "POST", 500, 0, nil)
	m.RecordCellCommit("number", true)
	m.IncrementInvitationIssued("email")
	m.RecordRedemption("token", "accepted")
	m.IncrementRealtimeEvent("UPDATE")
	m.DBQueryErrors.WithLabelValues("select", "boards").Inc()

	families, err := registry.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)

	for _, mf := range families {
		assert.NotEmpty(t, mf.GetHelp(), mf.GetName())
		assert.Contains(t, mf.GetName(), namespace+"_")
	}
}

func TestCategorizeStatus(t *testing.T) {
	assert.Equal(t, "2xx", categorizeStatus(204))
	assert.Equal(t, "3xx", categorizeStatus(302))
	assert.Equal(t, "4xx", categorizeStatus(409))
	assert.Equal(t, "5xx", categorizeStatus(503))
	assert.Equal(t, "unknown", categorizeStatus(0))
}

func TestShouldSkipEndpoint(t *testing.T) {
	assert.True(t, ShouldSkipEndpoint("/metrics"))
	assert.True(t, ShouldSkipEndpoint("/health"))
	assert.True(t, ShouldSkipEndpoint("/api/v1/boards/:boardId/ws"))
	assert.False(t, ShouldSkipEndpoint("/api/v1/boards/:boardId"))
}

func TestTrackInFlight(t *testing.T) {
	m := getTestMetrics()

	done := m.TrackInFlight()
	assert.Equal(t, 1.0, getGaugeValue(t, m.HTTPRequestsInFlight))
	done()
	assert.Equal(t, 0.0, getGaugeValue(t, m.HTTPRequestsInFlight))
}

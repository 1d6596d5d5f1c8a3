package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	require.NoError(t, err)

	m.Download(true)
	m.Download(true)
	m.Download(false)
	m.Fallback(ReasonUnsupported)
	m.Size(2048)
	m.SetPending(3)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.downloads.WithLabelValues(ResultSuccess)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.downloads.WithLabelValues(ResultFailure)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.fallbacks.WithLabelValues(ReasonUnsupported)))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.pending))
	count, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)
	_, err = New(reg)
	assert.Error(t, err)
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Download(true)
		m.Fallback(ReasonSecurity)
		m.Size(1)
		m.SetPending(0)
	})
}

package observability

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"code.cloudfoundry.org/lager/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/health-check/internal/persistence"
	"github.com/jonathan/health-check/internal/types"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics("test", reg)
	require.NoError(t, err)

	m.ObserveAssessment(sampleAssessment())
	m.ObserveAssessment(sampleAssessment())
	m.ObserveProfile(&types.ProfileResult{Profile: types.Profile{Name: "active_body"}})
	m.ObservePersist(persistence.Outcome{Success: true, Target: persistence.TargetLocal})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.assessments.WithLabelValues("two_axis")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.assessments.WithLabelValues("four_axis")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.profiles.WithLabelValues("active_body")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.persistOutcomes.WithLabelValues("local")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.gapsPerResult))
}

func TestMetrics_SecondRegistrationSharesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewMetrics("", reg)
	require.NoError(t, err)
	second, err := NewMetrics("", reg)
	require.NoError(t, err)

	second.ObserveAssessment(sampleAssessment())
	second.ObservePersist(persistence.Outcome{Target: persistence.TargetRemote})
	first.ObserveAssessment(sampleAssessment())

	count, err := testutil.GatherAndCount(reg, "health_check_assessments_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, 2.0, testutil.ToFloat64(first.assessments.WithLabelValues("two_axis")))
	assert.Equal(t, 1.0, testutil.ToFloat64(first.persistOutcomes.WithLabelValues(string(persistence.TargetRemote))))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveAssessment(sampleAssessment())
		m.ObserveProfile(&types.ProfileResult{})
		m.ObservePersist(persistence.Outcome{})
	})
}

func TestMetrics_RegisterTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewMetrics("dup", reg)
	require.NoError(t, err)
	_, err = NewMetrics("dup", reg)
	assert.NoError(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger("health-check", &buf, "info")
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("shown", lager.Data{"port": 8080})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "health-check.shown", entry["message"])
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	_, err := NewLogger("x", &bytes.Buffer{}, "loud")
	assert.Error(t, err)
}

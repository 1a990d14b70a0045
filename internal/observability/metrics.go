package observability

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jonathan/health-check/internal/persistence"
	"github.com/jonathan/health-check/internal/types"
)

// Metrics exports assessment and persistence counters to Prometheus.
type Metrics struct {
	assessments     *prometheus.CounterVec
	gapsPerResult   prometheus.Histogram
	profiles        *prometheus.CounterVec
	persistOutcomes *prometheus.CounterVec
}

// NewMetrics registers the health-check collectors on reg (the default registerer when nil).
func NewMetrics(namespace string, reg prometheus.Registerer) (*Metrics, error) {
	if namespace == "" {
		namespace = "health_check"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		assessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assessments_total",
			Help:      "Assessments evaluated, by catalog kind.",
		}, []string{"kind"}),
		gapsPerResult: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "gaps_per_assessment",
			Help:      "Number of gaps found per two-axis assessment.",
			Buckets:   prometheus.LinearBuckets(0, 2, 11),
		}),
		profiles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "profiles_matched_total",
			Help:      "Profiles selected by the four-axis matcher.",
		}, []string{"profile"}),
		persistOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persist_outcomes_total",
			Help:      "Persistence attempts by terminal target.",
		}, []string{"target"}),
	}

	var err error
	if m.assessments, err = register(reg, m.assessments); err != nil {
		return nil, err
	}
	if m.gapsPerResult, err = register(reg, m.gapsPerResult); err != nil {
		return nil, err
	}
	if m.profiles, err = register(reg, m.profiles); err != nil {
		return nil, err
	}
	if m.persistOutcomes, err = register(reg, m.persistOutcomes); err != nil {
		return nil, err
	}
	return m, nil
}

// register adds c to reg. When an equal collector is already registered the
// existing one is returned, so observations land in what reg exports.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing, nil
		}
	}
	return c, fmt.Errorf("register health-check metric: %w", err)
}

// ObserveAssessment counts a two-axis result.
func (m *Metrics) ObserveAssessment(result *types.AssessmentResult) {
	if m == nil || result == nil {
		return
	}
	m.assessments.WithLabelValues("two_axis").Inc()
	m.gapsPerResult.Observe(float64(len(result.Gaps)))
}

// ObserveProfile counts a four-axis result.
func (m *Metrics) ObserveProfile(result *types.ProfileResult) {
	if m == nil || result == nil {
		return
	}
	m.assessments.WithLabelValues("four_axis").Inc()
	m.profiles.WithLabelValues(result.Profile.Name).Inc()
}

// ObservePersist counts a persistence outcome. It matches persistence.Fallback.OnOutcome.
func (m *Metrics) ObservePersist(outcome persistence.Outcome) {
	if m == nil {
		return
	}
	m.persistOutcomes.WithLabelValues(string(outcome.Target)).Inc()
}

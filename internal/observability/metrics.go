// Copyright 2024 Alexander Getmansky <alex@getsky.tech>
// Licensed under the Apache License, Version 2.0

package observability

import (
	"github.com/GetSky/SunlightWatch/internal/application"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for sunlight evaluations.
type Metrics struct {
	Evaluations       *prometheus.CounterVec // labels: event={sunrise,sunset}
	LocationFallbacks prometheus.Counter
	Transitions       *prometheus.CounterVec // labels: state={day,night}
	Daylight          prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sunlight",
			Name:      "evaluations_total",
			Help:      "Sun event comparisons by event.",
		}, []string{"event"}),
		LocationFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sunlight",
			Name:      "location_fallbacks_total",
			Help:      "Evaluations that used a default coordinate.",
		}),
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sunlight",
			Name:      "transitions_total",
			Help:      "Day/night transitions by the state entered.",
		}, []string{"state"}),
		Daylight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sunlight",
			Name:      "daylight",
			Help:      "1 during daylight, 0 otherwise.",
		}),
	}

	reg.MustRegister(
		m.Evaluations,
		m.LocationFallbacks,
		m.Transitions,
		m.Daylight,
	)

	return m
}

// NewMetricsForTesting creates Metrics on a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}

func (m *Metrics) Evaluated(event application.Event) {
	m.Evaluations.WithLabelValues(string(event)).Inc()
}

func (m *Metrics) LocationFallback() {
	m.LocationFallbacks.Inc()
}

func (m *Metrics) Transition(daylight bool) {
	m.SetDaylight(daylight)
	if daylight {
		m.Transitions.WithLabelValues("day").Inc()
		return
	}
	m.Transitions.WithLabelValues("night").Inc()
}

func (m *Metrics) SetDaylight(daylight bool) {
	if daylight {
		m.Daylight.Set(1)
		return
	}
	m.Daylight.Set(0)
}

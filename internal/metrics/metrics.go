// Package metrics registers Prometheus collectors for configuration loading
// and compensation evaluation. The hosting service owns metric exposition;
// this package only updates collectors.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	configLoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hexapod_config_loads_total",
			Help: "Total compensation configuration load attempts by outcome.",
		},
		[]string{"outcome"},
	)

	computesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hexapod_compensation_computes_total",
			Help: "Total compensation evaluations by hexapod instance.",
		},
		[]string{"instance"},
	)

	configAgeSeconds = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "hexapod_config_age_seconds",
			Help: "Age of the active compensation configuration in seconds.",
		},
	)
)

func init() {
	prometheus.MustRegister(configLoadsTotal)
	prometheus.MustRegister(computesTotal)
	prometheus.MustRegister(configAgeSeconds)
}

// ConfigLoadSucceeded records a successful configuration load.
func ConfigLoadSucceeded() {
	configLoadsTotal.WithLabelValues("ok").Inc()
}

// ConfigLoadFailed records a rejected or unreadable configuration document.
func ConfigLoadFailed() {
	configLoadsTotal.WithLabelValues("error").Inc()
}

// CompensationComputed records one compensation evaluation for the named
// hexapod instance ("camera" or "m2").
func CompensationComputed(instance string) {
	computesTotal.WithLabelValues(instance).Inc()
}

// SetConfigAge updates the active-configuration age gauge.
func SetConfigAge(seconds float64) {
	configAgeSeconds.Set(seconds)
}

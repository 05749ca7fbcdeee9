// Package metrics contains definitions of the prometheus metrics that the
// engine exports.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// constants with the namespace and the subsystem names that we use in our
// prometheus metrics.
const (
	namespace = "webshield"

	subsystemApplication = "app"
	subsystemEngine      = "engine"
)

// SetUpGauge signals that the application has been started.
func SetUpGauge(version, goversion string) {
	upGauge := promauto.NewGauge(
		prometheus.GaugeOpts{
			Name:      "up",
			Namespace: namespace,
			Subsystem: subsystemApplication,
			Help: `A metric with a constant '1' value labeled by ` +
				`version and goversion from which the program was built.`,
			ConstLabels: prometheus.Labels{
				"version":   version,
				"goversion": goversion,
			},
		},
	)

	upGauge.Set(1)
}

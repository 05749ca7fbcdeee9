package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/webshield/webshield"
)

// BlockedRequestsTotal is the total count of requests blocked by the engine.
var BlockedRequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name:      "blocked_requests_total",
	Namespace: namespace,
	Subsystem: subsystemEngine,
	Help:      "The total number of blocked network requests.",
})

// BlockedElementsTotal is the total count of page elements hidden by
// cosmetic filters.
var BlockedElementsTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name:      "blocked_elements_total",
	Namespace: namespace,
	Subsystem: subsystemEngine,
	Help:      "The total number of hidden page elements.",
})

// FilterRulesTotal is a gauge with the number of rules loaded per filter
// list.
var FilterRulesTotal = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name:      "filter_rules_total",
	Namespace: namespace,
	Subsystem: subsystemEngine,
	Help:      "The number of rules loaded per filter list.",
}, []string{"filter"})

// Engine reports engine events to the prometheus metrics above.
type Engine struct{}

// type check
var _ webshield.Metrics = Engine{}

// OnBlockedRequest implements the [webshield.Metrics] interface for Engine.
func (Engine) OnBlockedRequest() {
	BlockedRequestsTotal.Inc()
}

// OnBlockedElement implements the [webshield.Metrics] interface for Engine.
func (Engine) OnBlockedElement() {
	BlockedElementsTotal.Inc()
}

// OnFilterListLoad implements the [webshield.Metrics] interface for Engine.
func (Engine) OnFilterListLoad(name string, rulesCount int) {
	FilterRulesTotal.WithLabelValues(name).Set(float64(rulesCount))
}

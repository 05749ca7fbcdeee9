package webshield

// Metrics is an interface for collecting engine statistics.
type Metrics interface {
	// OnBlockedRequest is called once for every blocked request.
	OnBlockedRequest()

	// OnBlockedElement is called once for every hidden page element.
	OnBlockedElement()

	// OnFilterListLoad is called after a filter list has been merged into
	// the engine.  rulesCount is the number of rules parsed from the list.
	OnFilterListLoad(name string, rulesCount int)
}

// EmptyMetrics is a [Metrics] implementation that does nothing.
type EmptyMetrics struct{}

// type check
var _ Metrics = EmptyMetrics{}

// OnBlockedRequest implements the [Metrics] interface for EmptyMetrics.
func (EmptyMetrics) OnBlockedRequest() {}

// OnBlockedElement implements the [Metrics] interface for EmptyMetrics.
func (EmptyMetrics) OnBlockedElement() {}

// OnFilterListLoad implements the [Metrics] interface for EmptyMetrics.
func (EmptyMetrics) OnFilterListLoad(_ string, _ int) {}

package webshield

// BlockedRequestsCount returns the number of requests blocked since the last
// statistics reset.
func (e *Engine) BlockedRequestsCount() (n uint64) {
	return e.blockedRequests.Load()
}

// BlockedElementsCount returns the number of page elements hidden since the
// last statistics reset.
func (e *Engine) BlockedElementsCount() (n uint64) {
	return e.blockedElements.Load()
}

// IncrementBlockedRequestCount records one blocked request.
func (e *Engine) IncrementBlockedRequestCount() {
	e.blockedRequests.Add(1)
	e.metrics.OnBlockedRequest()
}

// IncrementBlockedElementCount records one hidden page element.  The DOM
// layer calls this once per element it hides.
func (e *Engine) IncrementBlockedElementCount() {
	e.blockedElements.Add(1)
	e.metrics.OnBlockedElement()
}

// ResetStatistics zeroes both block counters.
func (e *Engine) ResetStatistics() {
	e.blockedRequests.Store(0)
	e.blockedElements.Store(0)
}

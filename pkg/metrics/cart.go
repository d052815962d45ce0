package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "daypass"

// Cart operation labels.
const (
	CartOpAdd          = "add"
	CartOpReplace      = "replace"
	CartOpRemove       = "remove"
	CartOpClear        = "clear"
	CartOpEscapeDate   = "escape_date"
	CartResultOK       = "ok"
	CartResultRejected = "rejected"
	CartResultError    = "error"
)

// CartMetrics tracks cart mutations and session lifecycle.
type CartMetrics struct {
	operations *prometheus.CounterVec
	itemsAdded *prometheus.CounterVec
	sessions   *prometheus.CounterVec
	active     prometheus.Gauge
}

// NewCartMetrics registers the cart collectors on reg.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_operations_total",
		Help:      "Cart mutations by operation and result.",
	}, []string{"op", "result"})
	itemsAdded := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_items_added_total",
		Help:      "Units added to carts by product kind.",
	}, []string{"kind"})
	sessions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_total",
		Help:      "Browsing sessions by lifecycle event.",
	}, []string{"event"})
	active := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions_active",
		Help:      "Sessions currently held by the session store.",
	})
	reg.MustRegister(operations, itemsAdded, sessions, active)
	return &CartMetrics{
		operations: operations,
		itemsAdded: itemsAdded,
		sessions:   sessions,
		active:     active,
	}
}

// Operation counts one cart mutation.
func (c *CartMetrics) Operation(op, result string) {
	if c == nil || c.operations == nil {
		return
	}
	c.operations.WithLabelValues(normalizeLabel(op), normalizeLabel(result)).Inc()
}

// ItemsAdded counts units added for a product kind.
func (c *CartMetrics) ItemsAdded(kind string, units int) {
	if c == nil || c.itemsAdded == nil || units <= 0 {
		return
	}
	c.itemsAdded.WithLabelValues(normalizeLabel(kind)).Add(float64(units))
}

// SessionEvent counts a session lifecycle event (created, ended, expired).
func (c *CartMetrics) SessionEvent(event string, n int) {
	if c == nil || c.sessions == nil || n <= 0 {
		return
	}
	c.sessions.WithLabelValues(normalizeLabel(event)).Add(float64(n))
}

// SetActiveSessions records the current session count.
func (c *CartMetrics) SetActiveSessions(n int) {
	if c == nil || c.active == nil {
		return
	}
	c.active.Set(float64(n))
}

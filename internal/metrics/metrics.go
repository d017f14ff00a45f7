// Package metrics defines the Prometheus metrics for the embedded store.
// It is the single source of truth for metric names, labels, and help
// strings. Metrics register on the default registry; the embedding
// application decides whether and how to expose them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sunucargo_store"

// OperationsTotal counts terminal store operations.
// Labels:
//   - collection: the named collection touched
//   - operation: read, insert, update, delete
var OperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "operations_total",
		Help:      "Total number of store operations executed.",
	},
	[]string{"collection", "operation"},
)

// SeededTotal counts collections seeded with fixture data on first access.
var SeededTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "seeded_total",
		Help:      "Total number of collections seeded with default fixtures.",
	},
)

// AuthEventsTotal counts published auth state changes.
// Label:
//   - event: SIGNED_IN or SIGNED_OUT
var AuthEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_events_total",
		Help:      "Total number of auth state change events published.",
	},
	[]string{"event"},
)

// Package metrics defines the custom Prometheus metrics for the familydash
// API. It is the single source of truth for metric names, labels, and help
// strings; metrics register with the default registry at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "familydash"

// UpstreamFailuresTotal counts transport or API failures against the
// external tabular store. The adapter deliberately collapses these to
// absent/false results at its boundary; this counter keeps real outages from
// vanishing behind "not found".
// Labels:
//   - table: the external table name (e.g. "Companies")
//   - op: the adapter operation ("get", "list", "create", "update", "delete")
var UpstreamFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_failures_total",
		Help:      "Total number of failed calls to the external tabular store.",
	},
	[]string{"table", "op"},
)

// RecordsSkippedTotal counts rows that failed to decode during a listing and
// were skipped rather than failing the whole list.
// Label:
//   - table: the external table name
var RecordsSkippedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_skipped_total",
		Help:      "Total number of malformed rows skipped while listing a table.",
	},
	[]string{"table"},
)

// LoginsThrottledTotal counts token requests rejected by the per-client
// login throttle.
var LoginsThrottledTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_throttled_total",
		Help:      "Total number of login attempts rejected by the rate limiter.",
	},
)

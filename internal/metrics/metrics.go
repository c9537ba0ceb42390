package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// PassesTotal counts day passes by ticker and outcome ("ok"/"failed").
	PassesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "response_passes_total", Help: "Day passes processed"},
		[]string{"ticker", "status"},
	)

	// PassDuration observes wall time of one (ticker, day) pass.
	PassDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "response_pass_duration_seconds",
			Help:    "Duration of one day pass",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		},
	)

	// StoreRowsTotal counts rows written to the result cache by table.
	StoreRowsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "response_store_rows_total", Help: "Rows written to the result cache"},
		[]string{"table"},
	)

	// StoreErrorsTotal counts failed batch flushes.
	StoreErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "response_store_errors_total", Help: "Failed result cache flushes"},
	)
)

func init() {
	prometheus.MustRegister(PassesTotal, PassDuration, StoreRowsTotal, StoreErrorsTotal)
}

// Serve exposes the metrics endpoint on addr and returns the server so the
// caller can shut it down.
func Serve(addr, path string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(path, promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}

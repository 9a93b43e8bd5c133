package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry is the dedicated Prometheus registry for the service.
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, path, and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// OperationDuration records timed operations (algorithm runs, matrix
	// fetches, cache reads) by name and outcome.
	OperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "operation_duration_seconds", Help: "Duration of timed operations in seconds.", Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 2, 5, 10, 30}},
		[]string{"op", "outcome"},
	)

	// OrdersAssigned and OrdersUnassigned count routing outcomes per algorithm.
	OrdersAssigned = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "orders_assigned_total", Help: "Orders placed on a route."},
		[]string{"algorithm"},
	)
	OrdersUnassigned = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "orders_unassigned_total", Help: "Orders no vehicle could take."},
		[]string{"algorithm"},
	)

	// MatrixFetches counts road matrix table requests by outcome.
	MatrixFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "matrix_fetches_total", Help: "Road matrix table requests."},
		[]string{"outcome"},
	)
)

var regOnce sync.Once

// RegisterDefault registers all collectors on Registry. Safe to call more than once.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(OperationDuration)
		Registry.MustRegister(OrdersAssigned)
		Registry.MustRegister(OrdersUnassigned)
		Registry.MustRegister(MatrixFetches)
		// Go/process collectors on our registry
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

// Handler exposes Registry in the Prometheus text format.
func Handler() http.Handler {
	RegisterDefault()
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

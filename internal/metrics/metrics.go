// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CertificatesIssued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "academic_cert_certificates_issued_total",
			Help: "Certificates persisted by issuance batches",
		},
		[]string{"certificate_type", "outcome"},
	)

	RowErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "academic_cert_row_errors_total",
			Help: "Spreadsheet rows that failed during issuance",
		},
		[]string{"certificate_type"},
	)

	BatchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "academic_cert_batch_duration_seconds",
			Help:    "Wall time of one issuance batch",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"certificate_type"},
	)

	Verifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "academic_cert_verifications_total",
			Help: "Verification attempts by match status",
		},
		[]string{"match_status"},
	)

	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "academic_cert_http_requests_total",
			Help: "HTTP requests served",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "academic_cert_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// Middleware records request counts and latency. The route pattern is used as
// the path label so certificate ids do not blow up cardinality.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		path := c.Route().Path
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		httpRequestsTotal.WithLabelValues(c.Method(), path, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(c.Method(), path).Observe(time.Since(start).Seconds())
		return err
	}
}

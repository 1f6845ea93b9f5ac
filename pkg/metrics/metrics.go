package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the dedicated registry exposed at /api/metrics. Using our own
// registry keeps default-registry noise from third-party libs out of the
// exposition.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	// Custom histogram buckets optimized for response times ranging from
	// milliseconds to 30+ second LLM completions
	// Note: no 60s bucket to avoid histogram_quantile interpolation issues with low sample counts
	CustomAPIBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13, 21, 34, 55}

	// HTTP Metrics
	HTTPRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	HTTPRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_request_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	// Route is not known until after routing, so active requests are
	// tracked by method only.
	ActiveRequests = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_server_active_requests",
			Help: "Number of active HTTP requests",
		},
		[]string{"http_request_method"},
	)

	// LLM Client Metrics (Gemini)
	LLMRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_client_operation_duration_seconds",
			Help:    "LLM client operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"operation", "status"},
	)

	LLMRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_client_operation_total",
			Help: "Total number of LLM client operations",
		},
		[]string{"operation", "status"},
	)

	// Database Client Metrics (Postgres)
	DBOperationDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_client_operation_duration_seconds",
			Help:    "Database client operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"operation", "status"},
	)

	DBOperationTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_client_operation_total",
			Help: "Total number of database client operations",
		},
		[]string{"operation", "status"},
	)

	// Cache Metrics
	CacheHits = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_name"},
	)

	CacheMisses = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_name"},
	)

	CacheSize = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Number of entries in cache",
		},
		[]string{"cache_name"},
	)

	// Business Metrics
	Signups = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lessonforge_signups_total",
			Help: "Total signup attempts",
		},
		[]string{"status"},
	)

	Logins = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lessonforge_logins_total",
			Help: "Total login attempts",
		},
		[]string{"status"},
	)

	APIKeyValidations = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lessonforge_api_key_validations_total",
			Help: "Total API key validation attempts",
		},
		[]string{"status"},
	)

	PDFUploads = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lessonforge_pdf_uploads_total",
			Help: "Total curriculum PDF upload attempts",
		},
		[]string{"status"},
	)

	LessonPlansGenerated = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lessonforge_lesson_plans_generated_total",
			Help: "Total lesson plan generation attempts",
		},
		[]string{"status"},
	)

	LessonPlanDownloads = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lessonforge_lesson_plan_downloads_total",
			Help: "Total lesson plan PDF downloads",
		},
		[]string{"status"},
	)

	// Infrastructure Metrics
	GoRoutines = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_goroutines",
			Help: "Number of goroutines",
		},
	)

	HeapAlloc = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_mem_heap_alloc_bytes",
			Help: "Heap allocated bytes",
		},
	)
)

// RecordInfrastructureMetrics collects infrastructure metrics periodically
func RecordInfrastructureMetrics() {
	ticker := time.NewTicker(15 * time.Second)
	go func() {
		for range ticker.C {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)

			GoRoutines.Set(float64(runtime.NumGoroutine()))
			HeapAlloc.Set(float64(m.HeapAlloc))
		}
	}()
}

// MeasureDuration measures the duration of an operation
func MeasureDuration(start time.Time) float64 {
	return time.Since(start).Seconds()
}

package telemetry

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Register регистрирует коллектор в reg. Если коллектор с тем же
// описанием уже зарегистрирован, возвращается существующий, так что
// повторный вызов конструктора метрик разделяет одни и те же серии.
// Прочие ошибки регистрации приводят к панике, как в MustRegister.
func Register[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

// HTTPMetrics — метрики входящих запросов консоли.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewHTTPMetrics регистрирует метрики в reg (nil — DefaultRegisterer).
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	return &HTTPMetrics{
		requests: Register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scriptdeck_console_http_requests_total",
			Help: "Total HTTP requests served by scriptdeck console",
		}, []string{"handler", "method", "status"})),
		duration: Register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "scriptdeck_console_http_request_duration_seconds",
			Help:    "Console HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"handler"})),
	}
}

// Observe учитывает один обработанный запрос.
func (m *HTTPMetrics) Observe(handler, method string, status int, d time.Duration) {
	m.requests.WithLabelValues(handler, method, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(handler).Observe(d.Seconds())
}

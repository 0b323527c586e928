package client

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/shaiso/scriptdeck/internal/telemetry"
)

// Metrics — Prometheus-метрики запросов к API.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics регистрирует метрики в reg. При reg == nil используется
// prometheus.DefaultRegisterer. Повторный вызов с тем же reg возвращает
// Metrics поверх уже зарегистрированных серий.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	return &Metrics{
		requests: telemetry.Register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scriptdeck_client_requests_total",
			Help: "Total API requests issued by scriptdeck client",
		}, []string{"operation", "method", "status"})),
		duration: telemetry.Register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "scriptdeck_client_request_duration_seconds",
			Help:    "API request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"})),
	}
}

// Wrap оборачивает транспорт учётом запросов. Ответ и ошибка
// возвращаются без изменений.
func (m *Metrics) Wrap(next Transport) Transport {
	return TransportFunc(func(ctx context.Context, req *Request) (*Response, error) {
		start := time.Now()
		resp, err := next.Do(ctx, req)

		m.duration.WithLabelValues(req.Operation).Observe(time.Since(start).Seconds())
		m.requests.WithLabelValues(req.Operation, req.Method, statusLabel(resp, err)).Inc()

		return resp, err
	})
}

func statusLabel(resp *Response, err error) string {
	var se *StatusError
	switch {
	case errors.As(err, &se):
		return strconv.Itoa(se.StatusCode())
	case err != nil:
		return "error"
	case resp != nil:
		return strconv.Itoa(resp.StatusCode)
	default:
		return "unknown"
	}
}

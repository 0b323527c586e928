// Package telemetry обеспечивает наблюдаемость CLI и консоли.
//
// Включает:
//   - logging.go — structured logging через slog
//   - metrics.go — Prometheus метрики HTTP-сервера консоли
//
// Уровень и формат логов задаются конфигурацией (log_level, log_format).
// Консоль экспортирует метрики на /metrics.
package telemetry

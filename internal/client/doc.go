// Package client — типизированный клиент HTTP API консоли скриптов.
//
// # Обзор
//
// Каждая операция описана в таблице эндпоинтов (endpoint.go): метод,
// шаблон пути и вид тела. Методы Client строят Request по таблице и
// выполняют ровно один вызов Transport, не повторяя и не кешируя.
//
//	api := client.New(client.Config{BaseURL: "http://localhost:5000/api"})
//	resp, err := api.GetScripts(ctx, client.Query{}.Page(1, 20))
//
// # Ответы
//
// Backend оборачивает данные в конверт {code, message, data}. Response
// хранит тело как есть; Decode разбирает поле data. Ответ со статусом
// вне 2xx возвращается как *StatusError с кодом и сообщением backend.
//
// # Транспорт
//
// HTTPTransport работает поверх net/http, добавляет заголовки из Config
// и X-Request-ID. Metrics.Wrap оборачивает любой Transport
// Prometheus-метриками. Для тестов транспорт подменяется через
// WithTransport.
//
// # URL без запроса
//
// DownloadFileURL, ExecutionFileURL, ExecutionLogStreamURL и
// WorkflowExecutionStreamURL возвращают абсолютные URL для прямой
// навигации браузера или SSE.
package client

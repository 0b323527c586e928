// Package console содержит веб-консоль scriptdeck.
//
// Структура:
//   - table.go      — таблица маршрутов с ленивым созданием страниц
//   - server.go     — маршруты по умолчанию и сборка HTTP-сервера
//   - middleware.go — middleware (request id, logging, recovery)
//   - proxy.go      — обратный прокси /api на backend
//
// Страницы находятся в подпакете pages. Каждая страница создаётся
// при первом переходе по её маршруту и затем переиспользуется.
// Корень "/" перенаправляет на /scripts.
package console

package client

import (
	"errors"
	"fmt"
)

// Ошибки построения запроса.
var (
	// ErrUnknownOperation — операции нет в таблице эндпоинтов.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrMissingParam — число аргументов не совпадает с плейсхолдерами пути.
	ErrMissingParam = errors.New("path params mismatch")

	// ErrInvalidBody — тело не подходит виду тела эндпоинта.
	ErrInvalidBody = errors.New("invalid request body")
)

// StatusError — ответ backend с не-2xx статусом.
//
// Клиент не интерпретирует ошибку: StatusError возвращается транспортом
// и доходит до вызывающего без изменений.
type StatusError struct {
	Operation string
	Response  *Response
	Message   string // message из конверта ответа, если удалось разобрать
}

// Error реализует интерфейс error.
func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: HTTP %d: %s", e.Operation, e.Response.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: HTTP %d", e.Operation, e.Response.StatusCode)
}

// StatusCode возвращает HTTP-статус ответа.
func (e *StatusError) StatusCode() int {
	return e.Response.StatusCode
}

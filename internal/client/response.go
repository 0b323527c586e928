package client

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Response — ответ транспорта. Тело хранится целиком, операции его не разбирают.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Envelope — конверт ответа backend: {"code": 0, "message": "...", "data": ...}.
// code == 0 означает успех.
type Envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Envelope разбирает тело ответа как конверт.
func (r *Response) Envelope() (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(r.Body, &env); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &env, nil
}

// Decode распаковывает поле data конверта в v.
// Если data отсутствует, v не изменяется.
func (r *Response) Decode(v any) error {
	env, err := r.Envelope()
	if err != nil {
		return err
	}
	if len(env.Data) == 0 || v == nil {
		return nil
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return fmt.Errorf("failed to decode data: %w", err)
	}
	return nil
}

// Message возвращает поле message конверта или пустую строку.
func (r *Response) Message() string {
	env, err := r.Envelope()
	if err != nil {
		return ""
	}
	return env.Message
}

// ContentType возвращает заголовок Content-Type ответа.
func (r *Response) ContentType() string {
	return r.Header.Get("Content-Type")
}

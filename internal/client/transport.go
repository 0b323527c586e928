package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// HeaderRequestID — заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

// Transport выполняет запрос. Реализация отвечает за сеть, таймауты
// и заголовки; клиент лишь строит Request.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// TransportFunc — адаптер функции к Transport.
type TransportFunc func(ctx context.Context, req *Request) (*Response, error)

// Do вызывает f(ctx, req).
func (f TransportFunc) Do(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}

// HTTPTransport — Transport поверх net/http.
type HTTPTransport struct {
	baseURL    string
	headers    http.Header
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPTransport создаёт транспорт для базового URL API.
func NewHTTPTransport(cfg Config, logger *slog.Logger) *HTTPTransport {
	if logger == nil {
		logger = slog.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	headers := make(http.Header, len(cfg.Headers))
	for k, v := range cfg.Headers {
		headers.Set(k, v)
	}

	return &HTTPTransport{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		headers: headers,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Do выполняет запрос. Не-2xx ответ возвращается как *StatusError.
func (t *HTTPTransport) Do(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := t.build(ctx, req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	t.logger.Debug("api request",
		"operation", req.Operation,
		"method", req.Method,
		"path", req.Path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"request_id", httpReq.Header.Get(HeaderRequestID),
	)

	out := &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			Operation: req.Operation,
			Response:  out,
			Message:   out.Message(),
		}
	}
	return out, nil
}

func (t *HTTPTransport) build(ctx context.Context, req *Request) (*http.Request, error) {
	var bodyReader io.Reader
	contentType := ""

	switch {
	case req.Form != nil:
		buf, ct, err := req.Form.Encode()
		if err != nil {
			return nil, fmt.Errorf("failed to encode form: %w", err)
		}
		bodyReader = buf
		contentType = ct
	case req.Body != nil:
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
		contentType = "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, t.baseURL+req.URL(), bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for k, vs := range t.headers {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	for k, vs := range req.Header {
		httpReq.Header.Del(k)
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}

	// Для multipart boundary известен только после кодирования формы.
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	if httpReq.Header.Get(HeaderRequestID) == "" {
		httpReq.Header.Set(HeaderRequestID, uuid.NewString())
	}

	return httpReq, nil
}

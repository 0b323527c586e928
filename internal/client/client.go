package client

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeout — таймаут HTTP-транспорта по умолчанию.
const DefaultTimeout = 30 * time.Second

// Config — конфигурация клиента.
type Config struct {
	// BaseURL — базовый URL API, например http://localhost:8000/api.
	BaseURL string

	// Headers — заголовки, добавляемые к каждому запросу.
	Headers map[string]string

	// Timeout — общий таймаут запроса HTTP-транспорта.
	Timeout time.Duration
}

// Option настраивает Client.
type Option func(*Client)

// WithTransport подменяет транспорт (по умолчанию HTTPTransport).
func WithTransport(t Transport) Option {
	return func(c *Client) {
		c.transport = t
	}
}

// WithLogger задаёт логгер транспорта по умолчанию.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithMetrics оборачивает транспорт метриками.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// Client — клиент API консоли скриптов.
//
// Каждый метод соответствует ровно одному эндпоинту: строит Request,
// выполняет один вызов транспорта и возвращает его результат без изменений.
// Клиент не хранит изменяемого состояния и безопасен для конкурентного
// использования.
type Client struct {
	baseURL   string
	transport Transport
	logger    *slog.Logger
	metrics   *Metrics
}

// New создаёт клиент.
func New(cfg Config, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.transport == nil {
		c.transport = NewHTTPTransport(cfg, c.logger)
	}
	if c.metrics != nil {
		c.transport = c.metrics.Wrap(c.transport)
	}
	return c
}

// BaseURL возвращает базовый URL API.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// NewRequest строит Request для операции без его выполнения.
func (c *Client) NewRequest(op string, query Query, body any, args ...string) (*Request, error) {
	ep, err := Lookup(op)
	if err != nil {
		return nil, err
	}

	path, err := ep.Expand(args...)
	if err != nil {
		return nil, err
	}

	req := &Request{
		Operation: ep.Name,
		Method:    ep.Method,
		Path:      path,
		Query:     query,
		Header:    http.Header{},
	}

	switch ep.Body {
	case BodyMultipart:
		form, ok := body.(*Form)
		if !ok || form == nil {
			return nil, fmt.Errorf("%w: %s expects non-nil *Form, got %T", ErrInvalidBody, ep.Name, body)
		}
		req.Form = form
		req.Header.Set("Content-Type", ContentTypeMultipart)
	case BodyJSON:
		req.Body = body
	}

	return req, nil
}

// call выполняет операцию: один Request, один вызов транспорта.
func (c *Client) call(ctx context.Context, op string, query Query, body any, args ...string) (*Response, error) {
	req, err := c.NewRequest(op, query, body, args...)
	if err != nil {
		return nil, err
	}
	return c.transport.Do(ctx, req)
}

// url строит абсолютный URL операции без выполнения запроса.
// Используется для прямой навигации браузера (скачивание, SSE).
func (c *Client) url(op string, query Query, args ...string) string {
	req, err := c.NewRequest(op, query, nil, args...)
	if err != nil {
		// Набор аргументов фиксирован вызывающими методами.
		panic(err)
	}
	return c.baseURL + req.URL()
}

func itoa(id int) string {
	return strconv.Itoa(id)
}

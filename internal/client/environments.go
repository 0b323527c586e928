package client

import "context"

// --- Environments ---

// GetEnvironments возвращает окружения выполнения.
func (c *Client) GetEnvironments(ctx context.Context) (*Response, error) {
	return c.call(ctx, OpGetEnvironments, nil, nil)
}

// GetEnvironment возвращает окружение по ID.
func (c *Client) GetEnvironment(ctx context.Context, id int) (*Response, error) {
	return c.call(ctx, OpGetEnvironment, nil, nil, itoa(id))
}

// CreateEnvironment создаёт окружение.
func (c *Client) CreateEnvironment(ctx context.Context, data any) (*Response, error) {
	return c.call(ctx, OpCreateEnvironment, nil, data)
}

// UpdateEnvironment обновляет окружение.
func (c *Client) UpdateEnvironment(ctx context.Context, id int, data any) (*Response, error) {
	return c.call(ctx, OpUpdateEnvironment, nil, data, itoa(id))
}

// DeleteEnvironment удаляет окружение.
func (c *Client) DeleteEnvironment(ctx context.Context, id int) (*Response, error) {
	return c.call(ctx, OpDeleteEnvironment, nil, nil, itoa(id))
}

// SetDefaultEnvironment делает окружение окружением по умолчанию.
func (c *Client) SetDefaultEnvironment(ctx context.Context, id int) (*Response, error) {
	return c.call(ctx, OpSetDefaultEnvironment, nil, nil, itoa(id))
}

// DetectEnvironment просит backend определить версию интерпретатора.
// Тело: {"type": ..., "executable_path": ...}.
func (c *Client) DetectEnvironment(ctx context.Context, data any) (*Response, error) {
	return c.call(ctx, OpDetectEnvironment, nil, data)
}

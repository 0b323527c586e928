package client

import "context"

// --- Executions ---

// GetExecutions возвращает историю выполнений.
// Распознаваемые ключи: page, per_page, script_id, status.
func (c *Client) GetExecutions(ctx context.Context, query Query) (*Response, error) {
	return c.call(ctx, OpGetExecutions, query, nil)
}

// GetExecution возвращает выполнение по ID.
func (c *Client) GetExecution(ctx context.Context, id int) (*Response, error) {
	return c.call(ctx, OpGetExecution, nil, nil, itoa(id))
}

// DeleteExecution удаляет запись о выполнении.
func (c *Client) DeleteExecution(ctx context.Context, id int) (*Response, error) {
	return c.call(ctx, OpDeleteExecution, nil, nil, itoa(id))
}

// GetExecutionLogs возвращает логи выполнения.
func (c *Client) GetExecutionLogs(ctx context.Context, id int) (*Response, error) {
	return c.call(ctx, OpGetExecutionLogs, nil, nil, itoa(id))
}

// ExecutionLogStreamURL возвращает URL потока логов (SSE). Запрос не выполняется.
func (c *Client) ExecutionLogStreamURL(id int) string {
	return c.url(OpExecutionLogStreamURL, nil, itoa(id))
}

// CancelExecution отменяет выполнение на стороне backend. Запрос без тела.
func (c *Client) CancelExecution(ctx context.Context, id int) (*Response, error) {
	return c.call(ctx, OpCancelExecution, nil, nil, itoa(id))
}

// GetExecutionFiles возвращает список файлов, созданных выполнением.
func (c *Client) GetExecutionFiles(ctx context.Context, id int) (*Response, error) {
	return c.call(ctx, OpGetExecutionFiles, nil, nil, itoa(id))
}

// ExecutionFileURL возвращает URL скачивания файла выполнения.
// Запрос не выполняется.
func (c *Client) ExecutionFileURL(id int, path string) string {
	return c.url(OpExecutionFileURL, Query{KeyDownload: "true"}, itoa(id), path)
}

// PreviewExecutionFile загружает содержимое файла выполнения.
func (c *Client) PreviewExecutionFile(ctx context.Context, id int, path string) (*Response, error) {
	return c.call(ctx, OpPreviewExecutionFile, nil, nil, itoa(id), path)
}

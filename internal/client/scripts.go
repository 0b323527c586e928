package client

import "context"

// --- Scripts ---

// GetScripts возвращает список скриптов. query передаётся как есть.
func (c *Client) GetScripts(ctx context.Context, query Query) (*Response, error) {
	return c.call(ctx, OpGetScripts, query, nil)
}

// GetScript возвращает скрипт по ID.
func (c *Client) GetScript(ctx context.Context, id int) (*Response, error) {
	return c.call(ctx, OpGetScript, nil, nil, itoa(id))
}

// CreateScript создаёт скрипт.
func (c *Client) CreateScript(ctx context.Context, data any) (*Response, error) {
	return c.call(ctx, OpCreateScript, nil, data)
}

// UpdateScript обновляет скрипт.
func (c *Client) UpdateScript(ctx context.Context, id int, data any) (*Response, error) {
	return c.call(ctx, OpUpdateScript, nil, data, itoa(id))
}

// DeleteScript удаляет скрипт.
func (c *Client) DeleteScript(ctx context.Context, id int) (*Response, error) {
	return c.call(ctx, OpDeleteScript, nil, nil, itoa(id))
}

// GetScriptVersions возвращает историю версий скрипта.
func (c *Client) GetScriptVersions(ctx context.Context, id int) (*Response, error) {
	return c.call(ctx, OpGetScriptVersions, nil, nil, itoa(id))
}

// GetScriptVersion возвращает конкретную версию скрипта.
func (c *Client) GetScriptVersion(ctx context.Context, id, version int) (*Response, error) {
	return c.call(ctx, OpGetScriptVersion, nil, nil, itoa(id), itoa(version))
}

// RollbackScript откатывает скрипт к версии. Запрос без тела.
func (c *Client) RollbackScript(ctx context.Context, id, version int) (*Response, error) {
	return c.call(ctx, OpRollbackScript, nil, nil, itoa(id), itoa(version))
}

// ExecuteScript запускает скрипт с параметрами: тело {"params": params}.
func (c *Client) ExecuteScript(ctx context.Context, id int, params map[string]any) (*Response, error) {
	return c.call(ctx, OpExecuteScript, nil, ExecuteRequest{Params: params}, itoa(id))
}

// ExecuteScriptWithFiles запускает скрипт с файловыми входами.
// Форма передаётся транспорту без изменений.
func (c *Client) ExecuteScriptWithFiles(ctx context.Context, id int, form *Form) (*Response, error) {
	return c.call(ctx, OpExecuteScriptWithFiles, nil, form, itoa(id))
}

// ToggleScriptFavorite переключает флаг избранного. Запрос без тела.
func (c *Client) ToggleScriptFavorite(ctx context.Context, id int) (*Response, error) {
	return c.call(ctx, OpToggleScriptFavorite, nil, nil, itoa(id))
}

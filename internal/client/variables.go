package client

import (
	"context"
	"strconv"
)

// --- Global variables ---

// GetGlobalVariables возвращает глобальные переменные.
// showEncrypted запрашивает расшифрованные значения.
func (c *Client) GetGlobalVariables(ctx context.Context, showEncrypted bool) (*Response, error) {
	return c.call(ctx, OpGetGlobalVariables, encryptedQuery(showEncrypted), nil)
}

// GetGlobalVariable возвращает переменную по ID.
func (c *Client) GetGlobalVariable(ctx context.Context, id int, showEncrypted bool) (*Response, error) {
	return c.call(ctx, OpGetGlobalVariable, encryptedQuery(showEncrypted), nil, itoa(id))
}

// CreateGlobalVariable создаёт переменную.
func (c *Client) CreateGlobalVariable(ctx context.Context, data any) (*Response, error) {
	return c.call(ctx, OpCreateGlobalVariable, nil, data)
}

// UpdateGlobalVariable обновляет переменную.
func (c *Client) UpdateGlobalVariable(ctx context.Context, id int, data any) (*Response, error) {
	return c.call(ctx, OpUpdateGlobalVariable, nil, data, itoa(id))
}

// DeleteGlobalVariable удаляет переменную.
func (c *Client) DeleteGlobalVariable(ctx context.Context, id int) (*Response, error) {
	return c.call(ctx, OpDeleteGlobalVariable, nil, nil, itoa(id))
}

// GetGlobalVariablesDict возвращает переменные как словарь key → value.
func (c *Client) GetGlobalVariablesDict(ctx context.Context) (*Response, error) {
	return c.call(ctx, OpGetGlobalVariablesDict, nil, nil)
}

func encryptedQuery(show bool) Query {
	return Query{KeyShowEncrypted: strconv.FormatBool(show)}
}

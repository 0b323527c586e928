package client

import "context"

// --- Workflow templates ---

// GetWorkflowTemplates возвращает шаблоны. Распознаваемые ключи: category, search.
func (c *Client) GetWorkflowTemplates(ctx context.Context, query Query) (*Response, error) {
	return c.call(ctx, OpGetWorkflowTemplates, query, nil)
}

// GetWorkflowTemplate возвращает шаблон по ID.
func (c *Client) GetWorkflowTemplate(ctx context.Context, id int) (*Response, error) {
	return c.call(ctx, OpGetWorkflowTemplate, nil, nil, itoa(id))
}

// CreateWorkflowTemplate создаёт шаблон.
func (c *Client) CreateWorkflowTemplate(ctx context.Context, data any) (*Response, error) {
	return c.call(ctx, OpCreateWorkflowTemplate, nil, data)
}

// UpdateWorkflowTemplate обновляет шаблон.
func (c *Client) UpdateWorkflowTemplate(ctx context.Context, id int, data any) (*Response, error) {
	return c.call(ctx, OpUpdateWorkflowTemplate, nil, data, itoa(id))
}

// DeleteWorkflowTemplate удаляет шаблон.
func (c *Client) DeleteWorkflowTemplate(ctx context.Context, id int) (*Response, error) {
	return c.call(ctx, OpDeleteWorkflowTemplate, nil, nil, itoa(id))
}

// UseWorkflowTemplate создаёт workflow из шаблона.
func (c *Client) UseWorkflowTemplate(ctx context.Context, id int, data any) (*Response, error) {
	return c.call(ctx, OpUseWorkflowTemplate, nil, data, itoa(id))
}

// GetTemplateCategories возвращает категории шаблонов.
func (c *Client) GetTemplateCategories(ctx context.Context) (*Response, error) {
	return c.call(ctx, OpGetTemplateCategories, nil, nil)
}

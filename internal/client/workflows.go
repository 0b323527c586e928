package client

import "context"

// --- Workflows ---

// GetWorkflows возвращает все workflows.
func (c *Client) GetWorkflows(ctx context.Context) (*Response, error) {
	return c.call(ctx, OpGetWorkflows, nil, nil)
}

// GetWorkflow возвращает workflow вместе с узлами и рёбрами.
func (c *Client) GetWorkflow(ctx context.Context, id int) (*Response, error) {
	return c.call(ctx, OpGetWorkflow, nil, nil, itoa(id))
}

// CreateWorkflow создаёт workflow.
func (c *Client) CreateWorkflow(ctx context.Context, data any) (*Response, error) {
	return c.call(ctx, OpCreateWorkflow, nil, data)
}

// UpdateWorkflow обновляет workflow.
func (c *Client) UpdateWorkflow(ctx context.Context, id int, data any) (*Response, error) {
	return c.call(ctx, OpUpdateWorkflow, nil, data, itoa(id))
}

// DeleteWorkflow удаляет workflow.
func (c *Client) DeleteWorkflow(ctx context.Context, id int) (*Response, error) {
	return c.call(ctx, OpDeleteWorkflow, nil, nil, itoa(id))
}

// ExecuteWorkflow запускает workflow: тело {"params": params}.
func (c *Client) ExecuteWorkflow(ctx context.Context, id int, params map[string]any) (*Response, error) {
	return c.call(ctx, OpExecuteWorkflow, nil, ExecuteRequest{Params: params}, itoa(id))
}

// ToggleWorkflow включает или выключает workflow. Запрос без тела.
func (c *Client) ToggleWorkflow(ctx context.Context, id int) (*Response, error) {
	return c.call(ctx, OpToggleWorkflow, nil, nil, itoa(id))
}

// --- Workflow executions ---

// GetWorkflowExecutions возвращает историю выполнений workflows.
// Распознаваемые ключи: page, per_page, workflow_id, status.
func (c *Client) GetWorkflowExecutions(ctx context.Context, query Query) (*Response, error) {
	return c.call(ctx, OpGetWorkflowExecutions, query, nil)
}

// GetWorkflowExecution возвращает выполнение workflow по ID.
func (c *Client) GetWorkflowExecution(ctx context.Context, id int) (*Response, error) {
	return c.call(ctx, OpGetWorkflowExecution, nil, nil, itoa(id))
}

// CancelWorkflowExecution отменяет выполнение workflow. Запрос без тела.
func (c *Client) CancelWorkflowExecution(ctx context.Context, id int) (*Response, error) {
	return c.call(ctx, OpCancelWorkflowExecution, nil, nil, itoa(id))
}

// WorkflowExecutionStreamURL возвращает URL потока статусов (SSE).
func (c *Client) WorkflowExecutionStreamURL(id int) string {
	return c.url(OpWorkflowExecutionStreamURL, nil, itoa(id))
}

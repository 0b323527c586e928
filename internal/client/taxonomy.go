package client

import "context"

// --- Categories ---

func (c *Client) GetCategories(ctx context.Context) (*Response, error) {
	return c.call(ctx, OpGetCategories, nil, nil)
}

func (c *Client) CreateCategory(ctx context.Context, data any) (*Response, error) {
	return c.call(ctx, OpCreateCategory, nil, data)
}

func (c *Client) UpdateCategory(ctx context.Context, id int, data any) (*Response, error) {
	return c.call(ctx, OpUpdateCategory, nil, data, itoa(id))
}

func (c *Client) DeleteCategory(ctx context.Context, id int) (*Response, error) {
	return c.call(ctx, OpDeleteCategory, nil, nil, itoa(id))
}

// --- Tags ---

func (c *Client) GetTags(ctx context.Context) (*Response, error) {
	return c.call(ctx, OpGetTags, nil, nil)
}

func (c *Client) CreateTag(ctx context.Context, data any) (*Response, error) {
	return c.call(ctx, OpCreateTag, nil, data)
}

func (c *Client) UpdateTag(ctx context.Context, id int, data any) (*Response, error) {
	return c.call(ctx, OpUpdateTag, nil, data, itoa(id))
}

func (c *Client) DeleteTag(ctx context.Context, id int) (*Response, error) {
	return c.call(ctx, OpDeleteTag, nil, nil, itoa(id))
}

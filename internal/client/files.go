package client

import "context"

// --- Files ---

// GetFiles возвращает содержимое каталога. path передаётся в query.
func (c *Client) GetFiles(ctx context.Context, path string) (*Response, error) {
	return c.call(ctx, OpGetFiles, Query{KeyPath: path}, nil)
}

// UploadFile загружает файл. Форма обычно содержит поля file и path.
func (c *Client) UploadFile(ctx context.Context, form *Form) (*Response, error) {
	return c.call(ctx, OpUploadFile, nil, form)
}

// DownloadFileURL возвращает URL скачивания файла. Запрос не выполняется.
func (c *Client) DownloadFileURL(path string) string {
	return c.url(OpDownloadFileURL, Query{KeyPath: path})
}

// PreviewFile загружает содержимое файла для просмотра.
func (c *Client) PreviewFile(ctx context.Context, path string) (*Response, error) {
	return c.call(ctx, OpPreviewFile, Query{KeyPath: path}, nil)
}

// DeleteFile удаляет файл или каталог.
func (c *Client) DeleteFile(ctx context.Context, path string) (*Response, error) {
	return c.call(ctx, OpDeleteFile, Query{KeyPath: path}, nil)
}

// CreateFolder создаёт каталог. Тело: {"path": ..., "name": ...}.
func (c *Client) CreateFolder(ctx context.Context, data any) (*Response, error) {
	return c.call(ctx, OpCreateFolder, nil, data)
}

// UpdateFile сохраняет содержимое файла.
func (c *Client) UpdateFile(ctx context.Context, data any) (*Response, error) {
	return c.call(ctx, OpUpdateFile, nil, data)
}

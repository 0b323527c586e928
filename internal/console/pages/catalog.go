package pages

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/shaiso/scriptdeck/internal/client"
)

// API — операции клиента, которые используют страницы.
type API interface {
	GetScripts(ctx context.Context, query client.Query) (*client.Response, error)
	GetExecutions(ctx context.Context, query client.Query) (*client.Response, error)
	GetSchedules(ctx context.Context) (*client.Response, error)
	GetFiles(ctx context.Context, path string) (*client.Response, error)
	GetEnvironments(ctx context.Context) (*client.Response, error)
	GetCategories(ctx context.Context) (*client.Response, error)
	GetTags(ctx context.Context) (*client.Response, error)
	GetWorkflows(ctx context.Context) (*client.Response, error)
}

// Catalog строит страницы консоли поверх одного API.
type Catalog struct {
	API    API
	Nav    []NavItem
	Logger *slog.Logger
}

func (c *Catalog) page(path, title string, cols []Column, fetch Fetcher) http.Handler {
	return &ListPage{
		Title:   title,
		Path:    path,
		Columns: cols,
		Fetch:   fetch,
		Nav:     c.Nav,
		Logger:  c.Logger,
	}
}

// Scripts — список скриптов; page, per_page, search, category передаются в API.
func (c *Catalog) Scripts() http.Handler {
	return c.page("/scripts", "Scripts", []Column{
		{"ID", "id"}, {"Name", "name"}, {"Type", "type"},
		{"Category", "category.name"}, {"Tags", "tags"},
		{"Favorite", "is_favorite"}, {"Updated", "updated_at"},
	}, c.API.GetScripts)
}

func (c *Catalog) Executions() http.Handler {
	return c.page("/executions", "Executions", []Column{
		{"ID", "id"}, {"Script", "script_name"}, {"Status", "status"},
		{"Progress", "progress"}, {"Started", "start_time"}, {"Finished", "end_time"},
	}, c.API.GetExecutions)
}

func (c *Catalog) Schedules() http.Handler {
	return c.page("/schedules", "Schedules", []Column{
		{"ID", "id"}, {"Name", "name"}, {"Script", "script_name"}, {"Cron", "cron"},
		{"Enabled", "enabled"}, {"Last run", "last_run"}, {"Next run", "next_run"},
	}, ignoreQuery(c.API.GetSchedules))
}

// Files — содержимое каталога из query-параметра path.
func (c *Catalog) Files() http.Handler {
	return c.page("/files", "Files", []Column{
		{"Name", "name"}, {"Path", "path"}, {"Directory", "is_dir"}, {"Size", "size"},
	}, func(ctx context.Context, q client.Query) (*client.Response, error) {
		return c.API.GetFiles(ctx, q[client.KeyPath])
	})
}

func (c *Catalog) Environments() http.Handler {
	return c.page("/environments", "Environments", []Column{
		{"ID", "id"}, {"Name", "name"}, {"Type", "type"},
		{"Executable", "executable_path"}, {"Default", "is_default"},
	}, ignoreQuery(c.API.GetEnvironments))
}

func (c *Catalog) Categories() http.Handler {
	return c.page("/categories", "Categories", []Column{
		{"ID", "id"}, {"Name", "name"}, {"Description", "description"}, {"Color", "color"},
	}, ignoreQuery(c.API.GetCategories))
}

func (c *Catalog) Tags() http.Handler {
	return c.page("/tags", "Tags", []Column{
		{"ID", "id"}, {"Name", "name"}, {"Color", "color"},
	}, ignoreQuery(c.API.GetTags))
}

func (c *Catalog) Workflows() http.Handler {
	return c.page("/workflows", "Workflows", []Column{
		{"ID", "id"}, {"Name", "name"}, {"Nodes", "nodes_count"},
		{"Enabled", "enabled"}, {"Updated", "updated_at"},
	}, ignoreQuery(c.API.GetWorkflows))
}

func ignoreQuery(fn func(ctx context.Context) (*client.Response, error)) Fetcher {
	return func(ctx context.Context, _ client.Query) (*client.Response, error) {
		return fn(ctx)
	}
}

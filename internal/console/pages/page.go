// Package pages содержит страницы консоли.
//
// Каждая страница — http.Handler, получающий данные через API-клиент
// и рендерящий их встроенным html/template. Query запроса страницы
// передаётся в операцию списка как есть.
package pages

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/shaiso/scriptdeck/internal/client"
)

//go:embed templates/*.html
var templateFS embed.FS

var listTemplate = template.Must(template.ParseFS(templateFS, "templates/list.html"))

// Fetcher выполняет операцию списка.
type Fetcher func(ctx context.Context, query client.Query) (*client.Response, error)

// Column — колонка таблицы: заголовок и поле объекта из ответа API.
// Поле вида "category.name" читает вложенный объект.
type Column struct {
	Header string
	Field  string
}

// NavItem — пункт навигации.
type NavItem struct {
	Path  string
	Title string
}

// ListPage — страница со списком ресурсов.
type ListPage struct {
	Title   string
	Path    string
	Columns []Column
	Fetch   Fetcher
	Nav     []NavItem
	Logger  *slog.Logger
}

type navView struct {
	Path   string
	Title  string
	Active bool
}

type listView struct {
	Title   string
	Nav     []navView
	Columns []Column
	Rows    [][]string
	Error   string
	Page    int
	Pages   int
	Total   int
}

// ServeHTTP загружает список и рендерит страницу.
// Ошибка API отображается на странице со статусом 502.
func (p *ListPage) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	view := listView{
		Title:   p.Title,
		Columns: p.Columns,
	}
	for _, item := range p.Nav {
		view.Nav = append(view.Nav, navView{Path: item.Path, Title: item.Title, Active: item.Path == p.Path})
	}

	status := http.StatusOK
	query := client.QueryFromValues(r.URL.Query())

	resp, err := p.Fetch(r.Context(), query)
	if err == nil {
		err = p.fill(&view, resp)
	}
	if err != nil {
		p.logger().Error("page fetch failed", "page", p.Title, "error", err)
		status = http.StatusBadGateway
		view.Error = errorMessage(err)
	}

	var buf bytes.Buffer
	if err := listTemplate.Execute(&buf, view); err != nil {
		p.logger().Error("render page", "page", p.Title, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func (p *ListPage) fill(view *listView, resp *client.Response) error {
	var data json.RawMessage
	if err := resp.Decode(&data); err != nil {
		return err
	}

	items, page, err := decodeItems(data)
	if err != nil {
		return err
	}

	for _, item := range items {
		row := make([]string, len(p.Columns))
		for i, col := range p.Columns {
			row[i] = formatCell(lookup(item, col.Field))
		}
		view.Rows = append(view.Rows, row)
	}

	if page != nil {
		view.Total = page.Total
		view.Pages = page.Pages
		view.Page = page.CurrentPage
		if view.Page == 0 && page.Pages > 0 {
			view.Page = 1
		}
	}
	return nil
}

func (p *ListPage) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

// decodeItems принимает либо массив, либо страницу {items,total,pages}.
func decodeItems(data json.RawMessage) ([]map[string]any, *client.Page[map[string]any], error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil, nil
	}

	if data[0] == '[' {
		var items []map[string]any
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, nil, fmt.Errorf("decode list: %w", err)
		}
		return items, nil, nil
	}

	var page client.Page[map[string]any]
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, nil, fmt.Errorf("decode page: %w", err)
	}
	return page.Items, &page, nil
}

func lookup(item map[string]any, field string) any {
	var cur any = item
	start := 0
	for i := 0; i <= len(field); i++ {
		if i < len(field) && field[i] != '.' {
			continue
		}
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[field[start:i]]
		start = i + 1
	}
	return cur
}

func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "yes"
		}
		return "no"
	case float64:
		if val == math.Trunc(val) && math.Abs(val) < 1e15 {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', 2, 64)
	case []any:
		var b bytes.Buffer
		for i, el := range val {
			if i > 0 {
				b.WriteString(", ")
			}
			if m, ok := el.(map[string]any); ok {
				b.WriteString(formatCell(m["name"]))
				continue
			}
			b.WriteString(formatCell(el))
		}
		return b.String()
	case map[string]any:
		if name, ok := val["name"]; ok {
			return formatCell(name)
		}
	}
	data, _ := json.Marshal(v)
	return string(data)
}

func errorMessage(err error) string {
	var se *client.StatusError
	if errors.As(err, &se) {
		if se.Message != "" {
			return fmt.Sprintf("backend responded %d: %s", se.StatusCode(), se.Message)
		}
		return fmt.Sprintf("backend responded %d", se.StatusCode())
	}
	return err.Error()
}

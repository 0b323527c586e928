package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shaiso/scriptdeck/internal/client"
)

// listFlags — флаги пагинации и фильтров списков.
// Фильтры регистрирует каждая команда сама; --query передаёт любые ключи как есть.
type listFlags struct {
	page       int
	perPage    int
	search     string
	category   string
	status     string
	scriptID   int
	workflowID int
	extra      []string
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.page, "page", 0, "Page number")
	cmd.Flags().IntVar(&f.perPage, "per-page", 0, "Items per page")
	cmd.Flags().StringArrayVar(&f.extra, "query", nil, "Extra query parameter as KEY=VALUE (repeatable)")
}

func (f *listFlags) query() (client.Query, error) {
	var q client.Query
	if f.page > 0 {
		q = q.Page(f.page, f.perPage)
	} else if f.perPage > 0 {
		q = q.Set(client.KeyPerPage, strconv.Itoa(f.perPage))
	}
	if f.search != "" {
		q = q.Set(client.KeySearch, f.search)
	}
	if f.category != "" {
		q = q.Set(client.KeyCategory, f.category)
	}
	if f.status != "" {
		q = q.Set(client.KeyStatus, f.status)
	}
	if f.scriptID > 0 {
		q = q.Set(client.KeyScriptID, strconv.Itoa(f.scriptID))
	}
	if f.workflowID > 0 {
		q = q.Set(client.KeyWorkflowID, strconv.Itoa(f.workflowID))
	}
	for _, kv := range f.extra {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			return nil, fmt.Errorf("invalid query format %q, expected KEY=VALUE", kv)
		}
		q = q.Set(parts[0], parts[1])
	}
	return q, nil
}

// decodeList разбирает data ответа: массив или страницу {items,total,pages}.
func decodeList[T any](resp *client.Response) ([]T, *client.Page[T], error) {
	var data json.RawMessage
	if err := resp.Decode(&data); err != nil {
		return nil, nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil, nil
	}

	if data[0] == '[' {
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, nil, fmt.Errorf("failed to decode list: %w", err)
		}
		return items, nil, nil
	}

	var page client.Page[T]
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, nil, fmt.Errorf("failed to decode page: %w", err)
	}
	return page.Items, &page, nil
}

// printList выводит список: таблицу со строками row(item) или data ответа в JSON.
func printList[T any](out *Output, resp *client.Response, headers []string, row func(T) []string) error {
	if out.jsonMode {
		return printData(out, resp)
	}

	items, page, err := decodeList[T](resp)
	if err != nil {
		return err
	}

	rows := make([][]string, len(items))
	for i, item := range items {
		rows[i] = row(item)
	}
	out.Table(headers, rows)

	if page != nil && page.Pages > 1 {
		current := page.CurrentPage
		if current == 0 {
			current = 1
		}
		out.Success(fmt.Sprintf("Page %d of %d (%d total)", current, page.Pages, page.Total))
	}
	return nil
}

// printOne выводит один объект из data ответа.
func printOne[T any](out *Output, resp *client.Response, headers []string, row func(T) []string) error {
	if out.jsonMode {
		return printData(out, resp)
	}

	var item T
	if err := resp.Decode(&item); err != nil {
		return err
	}
	out.Table(headers, [][]string{row(item)})
	return nil
}

// printData выводит поле data ответа как есть.
func printData(out *Output, resp *client.Response) error {
	var data json.RawMessage
	if err := resp.Decode(&data); err != nil {
		return err
	}
	if len(data) == 0 {
		data = json.RawMessage("null")
	}
	out.JSON(data)
	return nil
}

// printMessage выводит сообщение backend или fallback в stderr.
func printMessage(out *Output, resp *client.Response, fallback string) {
	if msg := resp.Message(); msg != "" {
		out.Success(msg)
		return
	}
	out.Success(fallback)
}

// parseID разбирает числовой идентификатор аргумента.
func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: expected positive integer", s)
	}
	return id, nil
}

// parseParams разбирает KEY=VALUE. Значение, являющееся валидным JSON
// (число, bool, объект), передаётся как JSON, иначе как строка.
func parseParams(kvs []string) (map[string]any, error) {
	if len(kvs) == 0 {
		return nil, nil
	}
	params := make(map[string]any, len(kvs))
	for _, kv := range kvs {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			return nil, fmt.Errorf("invalid param format %q, expected KEY=VALUE", kv)
		}
		var v any
		if err := json.Unmarshal([]byte(parts[1]), &v); err != nil {
			v = parts[1]
		}
		params[parts[0]] = v
	}
	return params, nil
}

// readBody читает JSON-тело из строки или файла (@path).
func readBody(value string, readFile func(string) ([]byte, error)) (json.RawMessage, error) {
	data := []byte(value)
	if strings.HasPrefix(value, "@") {
		b, err := readFile(strings.TrimPrefix(value, "@"))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", value, err)
		}
		data = b
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("invalid JSON in %q", truncate(value, 40))
	}
	return json.RawMessage(data), nil
}

func jsonString(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal: %w", err)
	}
	return string(data), nil
}

func fileBase(path string) string {
	return filepath.Base(path)
}

func boolPtr(b bool) *bool {
	return &b
}

func intPtr(i int) *int {
	return &i
}

func itoa(i int) string {
	return strconv.Itoa(i)
}

func formatBool(b bool) string {
	return strconv.FormatBool(b)
}

func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func optional(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

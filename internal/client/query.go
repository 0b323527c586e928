package client

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Распознаваемые ключи query. Backend принимает и другие ключи —
// Query передаёт их без изменений.
const (
	KeyPage          = "page"
	KeyPerPage       = "per_page"
	KeySearch        = "search"
	KeySort          = "sort"
	KeyStatus        = "status"
	KeyScriptID      = "script_id"
	KeyWorkflowID    = "workflow_id"
	KeyCategory      = "category"
	KeyPath          = "path"
	KeyDownload      = "download"
	KeyShowEncrypted = "show_encrypted"
)

// Query — необязательные параметры запроса (ключ → значение).
// nil и пустой Query не добавляют "?" к URL.
type Query map[string]string

// Set устанавливает значение и возвращает Query для цепочки вызовов.
// На nil Query создаёт новый.
func (q Query) Set(key, value string) Query {
	if q == nil {
		q = Query{}
	}
	q[key] = value
	return q
}

// Page устанавливает пагинацию.
func (q Query) Page(page, perPage int) Query {
	q = q.Set(KeyPage, strconv.Itoa(page))
	if perPage > 0 {
		q[KeyPerPage] = strconv.Itoa(perPage)
	}
	return q
}

// Encode кодирует Query в строку с сортировкой по ключу.
// Экранирование как у encodeURIComponent: пробел → %20, "/" → %2F.
func (q Query) Encode() string {
	if len(q) == 0 {
		return ""
	}

	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(escapeComponent(k))
		b.WriteByte('=')
		b.WriteString(escapeComponent(q[k]))
	}
	return b.String()
}

// Clone возвращает копию Query.
func (q Query) Clone() Query {
	if q == nil {
		return nil
	}
	out := make(Query, len(q))
	for k, v := range q {
		out[k] = v
	}
	return out
}

// QueryFromValues собирает Query из url.Values (первое значение каждого ключа).
func QueryFromValues(values url.Values) Query {
	if len(values) == 0 {
		return nil
	}
	q := make(Query, len(values))
	for k := range values {
		q[k] = values.Get(k)
	}
	return q
}

// escapeComponent экранирует значение для query.
// url.QueryEscape кодирует пробел как "+", а literal "+" как %2B,
// поэтому замена однозначна.
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

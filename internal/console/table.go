package console

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
)

// Ошибки таблицы маршрутов.
var (
	ErrDuplicatePath = errors.New("duplicate route path")
	ErrDuplicateName = errors.New("duplicate route name")
	ErrInvalidRoute  = errors.New("invalid route")
	ErrNotFound      = errors.New("route not found")
)

// Route — описание маршрута консоли.
//
// Ровно одно из Redirect/Component должно быть задано. Component —
// фабрика страницы, вызывается при первом переходе по маршруту.
type Route struct {
	Path      string
	Name      string
	Redirect  string
	Component func() http.Handler
}

// entry — маршрут с лениво созданным обработчиком.
type entry struct {
	route Route

	once    sync.Once
	handler http.Handler
	loaded  bool
	mu      sync.RWMutex
}

func (e *entry) resolve() http.Handler {
	e.once.Do(func() {
		h := e.route.Component()
		e.mu.Lock()
		e.handler = h
		e.loaded = true
		e.mu.Unlock()
	})
	return e.handler
}

func (e *entry) isLoaded() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.loaded
}

// Table — неизменяемая таблица маршрутов.
// Единственное изменяемое состояние — ленивое создание страниц.
type Table struct {
	entries []*entry
	byPath  map[string]*entry
}

// NewTable проверяет маршруты и строит таблицу.
func NewTable(routes []Route) (*Table, error) {
	t := &Table{
		byPath: make(map[string]*entry, len(routes)),
	}
	names := make(map[string]bool, len(routes))

	for _, r := range routes {
		if !strings.HasPrefix(r.Path, "/") {
			return nil, fmt.Errorf("%w: path %q must start with /", ErrInvalidRoute, r.Path)
		}
		if (r.Redirect == "") == (r.Component == nil) {
			return nil, fmt.Errorf("%w: %s needs exactly one of redirect or component", ErrInvalidRoute, r.Path)
		}
		if _, ok := t.byPath[r.Path]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePath, r.Path)
		}
		if r.Name != "" {
			if names[r.Name] {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateName, r.Name)
			}
			names[r.Name] = true
		}

		e := &entry{route: r}
		t.entries = append(t.entries, e)
		t.byPath[r.Path] = e
	}

	for _, e := range t.entries {
		if target := e.route.Redirect; target != "" {
			dst, ok := t.byPath[target]
			if !ok {
				return nil, fmt.Errorf("%w: %s redirects to unknown %s", ErrInvalidRoute, e.route.Path, target)
			}
			if dst.route.Redirect != "" {
				return nil, fmt.Errorf("%w: %s redirects to redirect %s", ErrInvalidRoute, e.route.Path, target)
			}
		}
	}

	return t, nil
}

// Routes возвращает маршруты в порядке объявления.
func (t *Table) Routes() []Route {
	out := make([]Route, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.route
	}
	return out
}

// Resolve находит маршрут по пути, следуя редиректу один раз.
func (t *Table) Resolve(path string) (Route, error) {
	e, ok := t.lookup(path)
	if !ok {
		return Route{}, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if e.route.Redirect != "" {
		e = t.byPath[e.route.Redirect]
	}
	return e.route, nil
}

// Loaded сообщает, была ли уже создана страница маршрута.
func (t *Table) Loaded(path string) bool {
	e, ok := t.lookup(path)
	if !ok {
		return false
	}
	return e.isLoaded()
}

// ServeHTTP отдаёт 302 для редиректов, 404 для неизвестных путей,
// иначе передаёт запрос странице, создавая её при первом обращении.
func (t *Table) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	e, ok := t.lookup(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if target := e.route.Redirect; target != "" {
		http.Redirect(w, r, target, http.StatusFound)
		return
	}

	e.resolve().ServeHTTP(w, r)
}

// lookup сопоставляет путь точно; завершающий "/" игнорируется.
func (t *Table) lookup(path string) (*entry, bool) {
	if e, ok := t.byPath[path]; ok {
		return e, true
	}
	if len(path) > 1 && strings.HasSuffix(path, "/") {
		e, ok := t.byPath[strings.TrimSuffix(path, "/")]
		return e, ok
	}
	return nil, false
}

package console

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shaiso/scriptdeck/internal/console/pages"
	"github.com/shaiso/scriptdeck/internal/telemetry"
)

// DefaultRoutes — маршруты консоли: "/" ведёт на список скриптов,
// остальные страницы создаются при первом переходе.
func DefaultRoutes(catalog *pages.Catalog) []Route {
	return []Route{
		{Path: "/", Redirect: "/scripts"},
		{Path: "/scripts", Name: "Scripts", Component: catalog.Scripts},
		{Path: "/executions", Name: "Executions", Component: catalog.Executions},
		{Path: "/schedules", Name: "Schedules", Component: catalog.Schedules},
		{Path: "/files", Name: "Files", Component: catalog.Files},
		{Path: "/environments", Name: "Environments", Component: catalog.Environments},
		{Path: "/categories", Name: "Categories", Component: catalog.Categories},
		{Path: "/tags", Name: "Tags", Component: catalog.Tags},
		{Path: "/workflows", Name: "Workflows", Component: catalog.Workflows},
	}
}

// Navigation строит пункты меню из маршрутов со страницами.
func Navigation(routes []Route) []pages.NavItem {
	var nav []pages.NavItem
	for _, r := range routes {
		if r.Component != nil && r.Name != "" {
			nav = append(nav, pages.NavItem{Path: r.Path, Title: r.Name})
		}
	}
	return nav
}

// ServerConfig — зависимости HTTP-сервера консоли.
type ServerConfig struct {
	API        pages.API
	BackendURL string
	Logger     *slog.Logger
	Registry   *prometheus.Registry // nil — глобальный реестр
}

// Server — HTTP-сервер консоли.
type Server struct {
	mux       *http.ServeMux
	table     *Table
	startTime time.Time
}

// NewServer собирает mux консоли:
//   - /api/     — прокси на backend
//   - /healthz  — проверка живости
//   - /metrics  — Prometheus
//   - /         — таблица маршрутов
func NewServer(cfg ServerConfig) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var reg prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if cfg.Registry != nil {
		reg, gatherer = cfg.Registry, cfg.Registry
	}
	metrics := telemetry.NewHTTPMetrics(reg)

	catalog := &pages.Catalog{API: cfg.API, Logger: logger}
	routes := DefaultRoutes(catalog)
	catalog.Nav = Navigation(routes)

	table, err := NewTable(routes)
	if err != nil {
		return nil, fmt.Errorf("build route table: %w", err)
	}

	proxy, err := NewAPIProxy(cfg.BackendURL)
	if err != nil {
		return nil, err
	}

	s := &Server{
		mux:       http.NewServeMux(),
		table:     table,
		startTime: time.Now(),
	}

	chain := func(name string) Middleware {
		return Chain(RequestID(logger), Recovery(), Logging(name, metrics))
	}

	s.mux.Handle("/api/", chain("api")(proxy))
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "ok %s", time.Since(s.startTime).Round(time.Second))
	})
	s.mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	s.mux.Handle("/", chain("page")(table))

	return s, nil
}

// Table возвращает таблицу маршрутов сервера.
func (s *Server) Table() *Table {
	return s.table
}

// ServeHTTP реализует http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

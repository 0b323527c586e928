package console

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/shaiso/scriptdeck/internal/telemetry"
)

// NewAPIProxy проксирует запросы /api/... на backend без изменения пути.
// При недоступности backend отвечает 502 в формате конверта API.
func NewAPIProxy(backendURL string) (http.Handler, error) {
	target, err := url.Parse(backendURL)
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("backend url must be absolute: %q", backendURL)
	}

	proxy := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
		},
		// SSE-потоки логов должны доходить без буферизации.
		FlushInterval: -1,
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logger := telemetry.FromContext(r.Context())
			logger.Error("backend unavailable", "path", r.URL.Path, "error", err, slog.String("backend", target.Host))

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadGateway)
			fmt.Fprintf(w, `{"code":1,"message":%q}`, "backend unavailable")
		},
	}
	return proxy, nil
}

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shaiso/scriptdeck/internal/client"
	"github.com/shaiso/scriptdeck/internal/config"
	"github.com/shaiso/scriptdeck/internal/workflow"
)

// captured — запрос, дошедший до тестового backend.
type captured struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   []byte
}

// fakeBackend — httptest-сервер, отвечающий фиксированным телом и
// запоминающий запросы.
type fakeBackend struct {
	*httptest.Server

	mu     sync.Mutex
	reqs   []captured
	status int
	body   string
	onReq  func(r *http.Request)
}

func newFakeBackend(t *testing.T, status int, body string) *fakeBackend {
	t.Helper()

	b := &fakeBackend{status: status, body: body}
	b.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if b.onReq != nil {
			b.onReq(r)
		}
		data, _ := io.ReadAll(r.Body)

		b.mu.Lock()
		b.reqs = append(b.reqs, captured{
			Method: r.Method,
			Path:   r.URL.EscapedPath(),
			Query:  r.URL.RawQuery,
			Header: r.Header.Clone(),
			Body:   data,
		})
		b.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(b.status)
		io.WriteString(w, b.body)
	}))
	t.Cleanup(b.Close)
	return b
}

func (b *fakeBackend) requests() []captured {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]captured(nil), b.reqs...)
}

func (b *fakeBackend) last(t *testing.T) captured {
	t.Helper()
	reqs := b.requests()
	if len(reqs) == 0 {
		t.Fatal("backend received no requests")
	}
	return reqs[len(reqs)-1]
}

// cleanEnv убирает SCRIPTDECK_* из окружения на время теста.
func cleanEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		config.EnvConfigPath,
		config.EnvPrefix + "API_URL",
		config.EnvPrefix + "BACKEND_URL",
		config.EnvPrefix + "LISTEN_ADDR",
		config.EnvPrefix + "TIMEOUT",
		config.EnvPrefix + "LOG_LEVEL",
		config.EnvPrefix + "LOG_FORMAT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

// runCLI выполняет scriptdeck с --api-url на backend и возвращает stdout и stderr.
func runCLI(t *testing.T, apiURL string, args ...string) (string, string, error) {
	t.Helper()
	cleanEnv(t)

	cmd := NewRootCmd("test")
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--api-url", apiURL}, args...))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := cmd.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

func TestScriptList_Table(t *testing.T) {
	backend := newFakeBackend(t, http.StatusOK, `{"code":0,"data":{
		"items":[{"id":1,"name":"backup-db","type":"python","version":2,"is_favorite":true,
		          "category":{"id":3,"name":"ops"},"tags":[{"id":1,"name":"nightly"}]}],
		"total":1,"pages":1}}`)

	stdout, _, err := runCLI(t, backend.URL+"/api", "script", "list", "--page", "1", "--per-page", "20")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"NAME", "backup-db", "python", "ops", "nightly"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}

	req := backend.last(t)
	if req.Method != http.MethodGet || req.Path != "/api/scripts" {
		t.Errorf("expected GET /api/scripts, got %s %s", req.Method, req.Path)
	}
	if !strings.Contains(req.Query, "page=1") || !strings.Contains(req.Query, "per_page=20") {
		t.Errorf("expected pagination query, got %q", req.Query)
	}
}

func TestScriptList_JSON(t *testing.T) {
	backend := newFakeBackend(t, http.StatusOK, `{"code":0,"data":[{"id":1,"name":"backup-db","type":"python"}]}`)

	stdout, _, err := runCLI(t, backend.URL+"/api", "script", "list", "--json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var items []client.Script
	if err := json.Unmarshal([]byte(stdout), &items); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, stdout)
	}
	if len(items) != 1 || items[0].Name != "backup-db" {
		t.Errorf("unexpected items: %+v", items)
	}
}

func TestScriptRun_Params(t *testing.T) {
	backend := newFakeBackend(t, http.StatusOK,
		`{"code":0,"message":"Script started","data":{"id":11,"script_id":7,"status":"running"}}`)

	stdout, stderr, err := runCLI(t, backend.URL+"/api",
		"script", "run", "7", "--param", "n=3", "--param", "name=report")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := backend.last(t)
	if req.Method != http.MethodPost || req.Path != "/api/scripts/7/execute" {
		t.Errorf("expected POST /api/scripts/7/execute, got %s %s", req.Method, req.Path)
	}

	var body struct {
		Params map[string]any `json:"params"`
	}
	if err := json.Unmarshal(req.Body, &body); err != nil {
		t.Fatalf("request body is not JSON: %v", err)
	}
	if body.Params["n"] != float64(3) || body.Params["name"] != "report" {
		t.Errorf("unexpected params: %v", body.Params)
	}

	if !strings.Contains(stderr, "Script started") {
		t.Errorf("expected backend message in stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "running") {
		t.Errorf("expected execution status in stdout, got %q", stdout)
	}
}

func TestScriptShow_InvalidID(t *testing.T) {
	backend := newFakeBackend(t, http.StatusOK, `{"code":0,"data":{}}`)

	_, _, err := runCLI(t, backend.URL+"/api", "script", "show", "abc")
	if err == nil {
		t.Fatal("expected error for non-numeric id")
	}
	if n := len(backend.requests()); n != 0 {
		t.Errorf("expected no requests, got %d", n)
	}
}

func TestStatusErrorPropagates(t *testing.T) {
	backend := newFakeBackend(t, http.StatusNotFound, `{"code":1,"message":"Script not found"}`)

	_, _, err := runCLI(t, backend.URL+"/api", "script", "show", "42")
	if err == nil {
		t.Fatal("expected error")
	}

	var se *client.StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected *client.StatusError, got %T: %v", err, err)
	}
	if se.StatusCode() != http.StatusNotFound {
		t.Errorf("expected 404, got %d", se.StatusCode())
	}
	if !strings.Contains(err.Error(), "Script not found") {
		t.Errorf("expected backend message in error, got %q", err.Error())
	}
}

func TestScheduleCreate_InvalidCron(t *testing.T) {
	backend := newFakeBackend(t, http.StatusOK, `{"code":0,"data":{}}`)

	_, _, err := runCLI(t, backend.URL+"/api",
		"schedule", "create", "--script-id", "1", "--name", "nightly", "--cron", "not a cron")
	if err == nil {
		t.Fatal("expected error for invalid cron")
	}
	if !strings.Contains(err.Error(), "invalid cron expression") {
		t.Errorf("unexpected error: %v", err)
	}
	if n := len(backend.requests()); n != 0 {
		t.Errorf("expected no requests, got %d", n)
	}
}

func TestScheduleCreate_Body(t *testing.T) {
	backend := newFakeBackend(t, http.StatusOK,
		`{"code":0,"data":{"id":5,"script_id":1,"name":"nightly","cron":"0 3 * * *","enabled":false}}`)

	_, stderr, err := runCLI(t, backend.URL+"/api",
		"schedule", "create", "--script-id", "1", "--name", "nightly", "--cron", "0 3 * * *", "--disabled")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var body map[string]any
	if err := json.Unmarshal(backend.last(t).Body, &body); err != nil {
		t.Fatalf("request body is not JSON: %v", err)
	}
	if body["cron"] != "0 3 * * *" || body["script_id"] != float64(1) || body["enabled"] != false {
		t.Errorf("unexpected body: %v", body)
	}
	if !strings.Contains(stderr, "Next run:") {
		t.Errorf("expected next run preview in stderr, got %q", stderr)
	}
}

func TestScheduleNext_JSON(t *testing.T) {
	stdout, _, err := runCLI(t, "http://localhost:5000/api", "schedule", "next", "*/15 * * * *", "--count", "3", "--json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var runs []time.Time
	if err := json.Unmarshal([]byte(stdout), &runs); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, stdout)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	if d := runs[1].Sub(runs[0]); d != 15*time.Minute {
		t.Errorf("expected 15m between runs, got %s", d)
	}
}

func TestFileUpload_Multipart(t *testing.T) {
	backend := newFakeBackend(t, http.StatusOK, `{"code":0,"message":"File uploaded"}`)

	var (
		gotPath     string
		gotFilename string
		gotContent  string
	)
	backend.onReq = func(r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			return
		}
		gotPath = r.FormValue("path")
		f, hdr, err := r.FormFile("file")
		if err != nil {
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		gotFilename, gotContent = hdr.Filename, string(data)
	}

	local := filepath.Join(t.TempDir(), "report.csv")
	if err := os.WriteFile(local, []byte("a,b\n1,2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, stderr, err := runCLI(t, backend.URL+"/api", "file", "upload", local, "--path", "reports")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := backend.last(t)
	if req.Method != http.MethodPost || req.Path != "/api/files/upload" {
		t.Errorf("expected POST /api/files/upload, got %s %s", req.Method, req.Path)
	}
	if !strings.HasPrefix(req.Header.Get("Content-Type"), "multipart/form-data; boundary=") {
		t.Errorf("unexpected Content-Type %q", req.Header.Get("Content-Type"))
	}
	if gotPath != "reports" || gotFilename != "report.csv" || gotContent != "a,b\n1,2\n" {
		t.Errorf("unexpected form: path=%q filename=%q content=%q", gotPath, gotFilename, gotContent)
	}
	if !strings.Contains(stderr, "File uploaded") {
		t.Errorf("expected backend message in stderr, got %q", stderr)
	}
}

func TestHeaderFlag(t *testing.T) {
	backend := newFakeBackend(t, http.StatusOK, `{"code":0,"data":[]}`)

	_, _, err := runCLI(t, backend.URL+"/api", "--header", "X-Token=secret", "env", "list")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := backend.last(t).Header.Get("X-Token"); got != "secret" {
		t.Errorf("expected X-Token=secret, got %q", got)
	}
}

func TestHeaderFlag_Invalid(t *testing.T) {
	backend := newFakeBackend(t, http.StatusOK, `{"code":0,"data":[]}`)

	_, _, err := runCLI(t, backend.URL+"/api", "--header", "broken", "env", "list")
	if err == nil {
		t.Fatal("expected error for malformed header")
	}
	if n := len(backend.requests()); n != 0 {
		t.Errorf("expected no requests, got %d", n)
	}
}

func TestInvalidAPIURL(t *testing.T) {
	_, _, err := runCLI(t, "not-a-url", "script", "list")
	if !errors.Is(err, config.ErrInvalid) {
		t.Errorf("expected config.ErrInvalid, got %v", err)
	}
}

func TestVariableDict_SortedTable(t *testing.T) {
	backend := newFakeBackend(t, http.StatusOK, `{"code":0,"data":{"ZETA":"z","ALPHA":"a"}}`)

	stdout, _, err := runCLI(t, backend.URL+"/api", "variable", "dict")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if backend.last(t).Path != "/api/global-variables/dict" {
		t.Errorf("unexpected path %q", backend.last(t).Path)
	}

	alpha, zeta := strings.Index(stdout, "ALPHA"), strings.Index(stdout, "ZETA")
	if alpha < 0 || zeta < 0 || alpha > zeta {
		t.Errorf("expected sorted keys in output:\n%s", stdout)
	}
}

func TestWorkflowCreate_RequiresName(t *testing.T) {
	backend := newFakeBackend(t, http.StatusOK, `{"code":0,"data":{}}`)

	_, _, err := runCLI(t, backend.URL+"/api", "workflow", "create", "--data", `{"nodes":[],"edges":[]}`)
	if err == nil {
		t.Fatal("expected error without workflow name")
	}
	if n := len(backend.requests()); n != 0 {
		t.Errorf("expected no requests, got %d", n)
	}
}

func TestWorkflowCreate_MergesFlags(t *testing.T) {
	backend := newFakeBackend(t, http.StatusOK, `{"code":0,"data":{"id":9,"name":"etl","enabled":true}}`)

	_, _, err := runCLI(t, backend.URL+"/api",
		"workflow", "create", "--data", `{"name":"draft","nodes":[{"node_id":"n1","node_type":"delay"}],"edges":[]}`, "--name", "etl")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var body map[string]any
	if err := json.Unmarshal(backend.last(t).Body, &body); err != nil {
		t.Fatalf("request body is not JSON: %v", err)
	}
	if body["name"] != "etl" {
		t.Errorf("expected --name to override data, got %v", body["name"])
	}
	if nodes, _ := body["nodes"].([]any); len(nodes) != 1 {
		t.Errorf("expected nodes from --data, got %v", body["nodes"])
	}
}

func TestTemplateUse_PrintsDefinition(t *testing.T) {
	backend := newFakeBackend(t, http.StatusOK,
		`{"code":0,"data":{"name":"copy","description":"","nodes":[],"edges":[]}}`)

	stdout, _, err := runCLI(t, backend.URL+"/api", "template", "use", "4", "--name", "copy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := backend.last(t)
	if req.Method != http.MethodPost || req.Path != "/api/workflow-templates/4/use" {
		t.Errorf("expected POST /api/workflow-templates/4/use, got %s %s", req.Method, req.Path)
	}

	var def map[string]any
	if err := json.Unmarshal([]byte(stdout), &def); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, stdout)
	}
	if def["name"] != "copy" {
		t.Errorf("unexpected definition: %v", def)
	}
}

func TestWorkflowCreate_RejectsCycle(t *testing.T) {
	backend := newFakeBackend(t, http.StatusOK, `{"code":0,"data":{}}`)

	def := `{"name":"loop","nodes":[{"node_id":"a","node_type":"delay"},{"node_id":"b","node_type":"delay"}],
		"edges":[{"edge_id":"e1","source":"a","target":"b"},{"edge_id":"e2","source":"b","target":"a"}]}`

	_, _, err := runCLI(t, backend.URL+"/api", "workflow", "create", "--data", def)
	if !errors.Is(err, workflow.ErrCyclicDependency) {
		t.Fatalf("expected cyclic dependency error, got %v", err)
	}
	if n := len(backend.requests()); n != 0 {
		t.Errorf("expected no requests, got %d", n)
	}

	// --no-validate отправляет определение как есть.
	if _, _, err := runCLI(t, backend.URL+"/api", "workflow", "create", "--data", def, "--no-validate"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := len(backend.requests()); n != 1 {
		t.Errorf("expected 1 request, got %d", n)
	}
}

func TestWorkflowValidate_PrintsOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wf.json")
	def := `{"nodes":[
		{"node_id":"report","node_type":"script","script_id":2},
		{"node_id":"fetch","node_type":"script","script_id":1}],
		"edges":[{"edge_id":"e1","source":"fetch","target":"report"}]}`
	if err := os.WriteFile(path, []byte(def), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, stderr, err := runCLI(t, "http://localhost:5000/api", "workflow", "validate", path, "--json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var order []string
	if err := json.Unmarshal([]byte(stdout), &order); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, stdout)
	}
	if strings.Join(order, ",") != "fetch,report" {
		t.Errorf("unexpected order %v", order)
	}
	if !strings.Contains(stderr, "Workflow is valid: 2 nodes") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestScheduleNext_NegativeCount(t *testing.T) {
	_, _, err := runCLI(t, "http://localhost:5000/api", "schedule", "next", "* * * * *", "--count", "-1")
	if err == nil || !strings.Contains(err.Error(), "count must be positive") {
		t.Errorf("expected count error, got %v", err)
	}
}

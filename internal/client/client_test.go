package client

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

// recorder — транспорт, запоминающий запросы вместо отправки.
type recorder struct {
	reqs []*Request
}

func (r *recorder) Do(_ context.Context, req *Request) (*Response, error) {
	r.reqs = append(r.reqs, req)
	return &Response{StatusCode: 200, Body: []byte(`{"code":0,"data":null}`)}, nil
}

func (r *recorder) last(t *testing.T) *Request {
	t.Helper()
	if len(r.reqs) == 0 {
		t.Fatal("no request recorded")
	}
	return r.reqs[len(r.reqs)-1]
}

func newRecordingClient() (*Client, *recorder) {
	rec := &recorder{}
	return New(Config{BaseURL: "http://backend/api"}, WithTransport(rec)), rec
}

func TestOperations_MethodAndURL(t *testing.T) {
	c, rec := newRecordingClient()
	ctx := context.Background()
	data := map[string]any{"name": "x"}

	tests := []struct {
		name       string
		call       func() (*Response, error)
		wantMethod string
		wantURL    string
		wantBody   string // JSON; пусто — тела нет
	}{
		// Scripts
		{"GetScripts", func() (*Response, error) { return c.GetScripts(ctx, nil) }, "GET", "/scripts", ""},
		{"GetScript", func() (*Response, error) { return c.GetScript(ctx, 7) }, "GET", "/scripts/7", ""},
		{"CreateScript", func() (*Response, error) { return c.CreateScript(ctx, data) }, "POST", "/scripts", `{"name":"x"}`},
		{"UpdateScript", func() (*Response, error) { return c.UpdateScript(ctx, 7, data) }, "PUT", "/scripts/7", `{"name":"x"}`},
		{"DeleteScript", func() (*Response, error) { return c.DeleteScript(ctx, 7) }, "DELETE", "/scripts/7", ""},
		{"GetScriptVersions", func() (*Response, error) { return c.GetScriptVersions(ctx, 7) }, "GET", "/scripts/7/versions", ""},
		{"GetScriptVersion", func() (*Response, error) { return c.GetScriptVersion(ctx, 7, 2) }, "GET", "/scripts/7/versions/2", ""},
		{"RollbackScript", func() (*Response, error) { return c.RollbackScript(ctx, 42, 3) }, "POST", "/scripts/42/rollback/3", ""},
		{"ExecuteScript", func() (*Response, error) { return c.ExecuteScript(ctx, 7, map[string]any{"n": 1}) }, "POST", "/scripts/7/execute", `{"params":{"n":1}}`},
		{"ToggleScriptFavorite", func() (*Response, error) { return c.ToggleScriptFavorite(ctx, 7) }, "POST", "/scripts/7/favorite", ""},

		// Executions
		{"GetExecutions", func() (*Response, error) { return c.GetExecutions(ctx, nil) }, "GET", "/executions", ""},
		{"GetExecution", func() (*Response, error) { return c.GetExecution(ctx, 5) }, "GET", "/executions/5", ""},
		{"DeleteExecution", func() (*Response, error) { return c.DeleteExecution(ctx, 5) }, "DELETE", "/executions/5", ""},
		{"GetExecutionLogs", func() (*Response, error) { return c.GetExecutionLogs(ctx, 5) }, "GET", "/executions/5/logs", ""},
		{"CancelExecution", func() (*Response, error) { return c.CancelExecution(ctx, 5) }, "POST", "/executions/5/cancel", ""},
		{"GetExecutionFiles", func() (*Response, error) { return c.GetExecutionFiles(ctx, 5) }, "GET", "/executions/5/files", ""},
		{"PreviewExecutionFile", func() (*Response, error) { return c.PreviewExecutionFile(ctx, 5, "out/report 1.txt") }, "GET", "/executions/5/files/out%2Freport%201.txt", ""},

		// Schedules
		{"GetSchedules", func() (*Response, error) { return c.GetSchedules(ctx) }, "GET", "/schedules", ""},
		{"GetSchedule", func() (*Response, error) { return c.GetSchedule(ctx, 3) }, "GET", "/schedules/3", ""},
		{"CreateSchedule", func() (*Response, error) { return c.CreateSchedule(ctx, data) }, "POST", "/schedules", `{"name":"x"}`},
		{"UpdateSchedule", func() (*Response, error) { return c.UpdateSchedule(ctx, 3, data) }, "PUT", "/schedules/3", `{"name":"x"}`},
		{"DeleteSchedule", func() (*Response, error) { return c.DeleteSchedule(ctx, 3) }, "DELETE", "/schedules/3", ""},
		{"ToggleSchedule", func() (*Response, error) { return c.ToggleSchedule(ctx, 3) }, "POST", "/schedules/3/toggle", ""},
		{"RunScheduleNow", func() (*Response, error) { return c.RunScheduleNow(ctx, 3) }, "POST", "/schedules/3/run", ""},

		// Files
		{"GetFiles", func() (*Response, error) { return c.GetFiles(ctx, "/a b/c") }, "GET", "/files?path=%2Fa%20b%2Fc", ""},
		{"PreviewFile", func() (*Response, error) { return c.PreviewFile(ctx, "a.txt") }, "GET", "/files/preview?path=a.txt", ""},
		{"DeleteFile", func() (*Response, error) { return c.DeleteFile(ctx, "dir/a&b.txt") }, "DELETE", "/files/delete?path=dir%2Fa%26b.txt", ""},
		{"CreateFolder", func() (*Response, error) {
			return c.CreateFolder(ctx, FolderRequest{Path: "in", Name: "new"})
		}, "POST", "/files/create-folder", `{"path":"in","name":"new"}`},
		{"UpdateFile", func() (*Response, error) {
			return c.UpdateFile(ctx, FileUpdateRequest{Path: "a.txt", Content: "hi"})
		}, "PUT", "/files/update", `{"path":"a.txt","content":"hi"}`},

		// Environments
		{"GetEnvironments", func() (*Response, error) { return c.GetEnvironments(ctx) }, "GET", "/environments", ""},
		{"GetEnvironment", func() (*Response, error) { return c.GetEnvironment(ctx, 2) }, "GET", "/environments/2", ""},
		{"CreateEnvironment", func() (*Response, error) { return c.CreateEnvironment(ctx, data) }, "POST", "/environments", `{"name":"x"}`},
		{"UpdateEnvironment", func() (*Response, error) { return c.UpdateEnvironment(ctx, 2, data) }, "PUT", "/environments/2", `{"name":"x"}`},
		{"DeleteEnvironment", func() (*Response, error) { return c.DeleteEnvironment(ctx, 2) }, "DELETE", "/environments/2", ""},
		{"SetDefaultEnvironment", func() (*Response, error) { return c.SetDefaultEnvironment(ctx, 2) }, "POST", "/environments/2/set-default", ""},
		{"DetectEnvironment", func() (*Response, error) {
			return c.DetectEnvironment(ctx, EnvironmentRequest{Type: "python", ExecutablePath: "/usr/bin/python3"})
		}, "POST", "/environments/detect", `{"type":"python","executable_path":"/usr/bin/python3"}`},

		// Categories / Tags
		{"GetCategories", func() (*Response, error) { return c.GetCategories(ctx) }, "GET", "/categories", ""},
		{"CreateCategory", func() (*Response, error) { return c.CreateCategory(ctx, data) }, "POST", "/categories", `{"name":"x"}`},
		{"UpdateCategory", func() (*Response, error) { return c.UpdateCategory(ctx, 4, data) }, "PUT", "/categories/4", `{"name":"x"}`},
		{"DeleteCategory", func() (*Response, error) { return c.DeleteCategory(ctx, 4) }, "DELETE", "/categories/4", ""},
		{"GetTags", func() (*Response, error) { return c.GetTags(ctx) }, "GET", "/tags", ""},
		{"CreateTag", func() (*Response, error) { return c.CreateTag(ctx, data) }, "POST", "/tags", `{"name":"x"}`},
		{"UpdateTag", func() (*Response, error) { return c.UpdateTag(ctx, 4, data) }, "PUT", "/tags/4", `{"name":"x"}`},
		{"DeleteTag", func() (*Response, error) { return c.DeleteTag(ctx, 4) }, "DELETE", "/tags/4", ""},

		// Workflows
		{"GetWorkflows", func() (*Response, error) { return c.GetWorkflows(ctx) }, "GET", "/workflows", ""},
		{"GetWorkflow", func() (*Response, error) { return c.GetWorkflow(ctx, 9) }, "GET", "/workflows/9", ""},
		{"CreateWorkflow", func() (*Response, error) { return c.CreateWorkflow(ctx, data) }, "POST", "/workflows", `{"name":"x"}`},
		{"UpdateWorkflow", func() (*Response, error) { return c.UpdateWorkflow(ctx, 9, data) }, "PUT", "/workflows/9", `{"name":"x"}`},
		{"DeleteWorkflow", func() (*Response, error) { return c.DeleteWorkflow(ctx, 9) }, "DELETE", "/workflows/9", ""},
		{"ExecuteWorkflow", func() (*Response, error) { return c.ExecuteWorkflow(ctx, 9, map[string]any{"k": "v"}) }, "POST", "/workflows/9/execute", `{"params":{"k":"v"}}`},
		{"ToggleWorkflow", func() (*Response, error) { return c.ToggleWorkflow(ctx, 9) }, "POST", "/workflows/9/toggle", ""},

		// Workflow executions
		{"GetWorkflowExecutions", func() (*Response, error) { return c.GetWorkflowExecutions(ctx, nil) }, "GET", "/workflow-executions", ""},
		{"GetWorkflowExecution", func() (*Response, error) { return c.GetWorkflowExecution(ctx, 11) }, "GET", "/workflow-executions/11", ""},
		{"CancelWorkflowExecution", func() (*Response, error) { return c.CancelWorkflowExecution(ctx, 11) }, "POST", "/workflow-executions/11/cancel", ""},

		// Workflow templates
		{"GetWorkflowTemplates", func() (*Response, error) { return c.GetWorkflowTemplates(ctx, nil) }, "GET", "/workflow-templates", ""},
		{"GetWorkflowTemplate", func() (*Response, error) { return c.GetWorkflowTemplate(ctx, 8) }, "GET", "/workflow-templates/8", ""},
		{"CreateWorkflowTemplate", func() (*Response, error) { return c.CreateWorkflowTemplate(ctx, data) }, "POST", "/workflow-templates", `{"name":"x"}`},
		{"UpdateWorkflowTemplate", func() (*Response, error) { return c.UpdateWorkflowTemplate(ctx, 8, data) }, "PUT", "/workflow-templates/8", `{"name":"x"}`},
		{"DeleteWorkflowTemplate", func() (*Response, error) { return c.DeleteWorkflowTemplate(ctx, 8) }, "DELETE", "/workflow-templates/8", ""},
		{"UseWorkflowTemplate", func() (*Response, error) { return c.UseWorkflowTemplate(ctx, 8, data) }, "POST", "/workflow-templates/8/use", `{"name":"x"}`},
		{"GetTemplateCategories", func() (*Response, error) { return c.GetTemplateCategories(ctx) }, "GET", "/workflow-templates/categories", ""},

		// Global variables
		{"GetGlobalVariables", func() (*Response, error) { return c.GetGlobalVariables(ctx, false) }, "GET", "/global-variables?show_encrypted=false", ""},
		{"GetGlobalVariable", func() (*Response, error) { return c.GetGlobalVariable(ctx, 6, true) }, "GET", "/global-variables/6?show_encrypted=true", ""},
		{"CreateGlobalVariable", func() (*Response, error) { return c.CreateGlobalVariable(ctx, data) }, "POST", "/global-variables", `{"name":"x"}`},
		{"UpdateGlobalVariable", func() (*Response, error) { return c.UpdateGlobalVariable(ctx, 6, data) }, "PUT", "/global-variables/6", `{"name":"x"}`},
		{"DeleteGlobalVariable", func() (*Response, error) { return c.DeleteGlobalVariable(ctx, 6) }, "DELETE", "/global-variables/6", ""},
		{"GetGlobalVariablesDict", func() (*Response, error) { return c.GetGlobalVariablesDict(ctx) }, "GET", "/global-variables/dict", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := len(rec.reqs)
			if _, err := tt.call(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := len(rec.reqs) - before; got != 1 {
				t.Fatalf("expected exactly 1 transport call, got %d", got)
			}

			req := rec.last(t)
			if req.Operation != tt.name {
				t.Errorf("expected operation %s, got %s", tt.name, req.Operation)
			}
			if req.Method != tt.wantMethod {
				t.Errorf("expected method %s, got %s", tt.wantMethod, req.Method)
			}
			if req.URL() != tt.wantURL {
				t.Errorf("expected URL %s, got %s", tt.wantURL, req.URL())
			}

			if tt.wantBody == "" {
				if req.HasBody() {
					t.Errorf("expected no body, got %#v", req.Body)
				}
				return
			}
			got, err := json.Marshal(req.Body)
			if err != nil {
				t.Fatalf("marshal body: %v", err)
			}
			if string(got) != tt.wantBody {
				t.Errorf("expected body %s, got %s", tt.wantBody, got)
			}
		})
	}
}

func TestExecuteScriptWithFiles_PassesFormThrough(t *testing.T) {
	c, rec := newRecordingClient()

	form := NewForm().
		SetField("params", `{"a":1}`).
		AddFile("input", "data.csv", strings.NewReader("x,y\n"))

	if _, err := c.ExecuteScriptWithFiles(context.Background(), 12, form); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := rec.last(t)
	if req.Method != "POST" || req.URL() != "/scripts/12/execute" {
		t.Errorf("unexpected request %s %s", req.Method, req.URL())
	}
	if req.Form != form {
		t.Error("form should be passed to transport unmodified")
	}
	if req.Body != nil {
		t.Errorf("multipart request must not carry JSON body, got %#v", req.Body)
	}
	if ct := req.Header.Get("Content-Type"); ct != ContentTypeMultipart {
		t.Errorf("expected Content-Type %s, got %s", ContentTypeMultipart, ct)
	}
}

func TestUploadFile_PassesFormThrough(t *testing.T) {
	c, rec := newRecordingClient()

	form := NewForm().
		SetField("path", "incoming").
		AddFile("file", "a.txt", strings.NewReader("hello"))

	if _, err := c.UploadFile(context.Background(), form); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := rec.last(t)
	if req.Method != "POST" || req.URL() != "/files/upload" {
		t.Errorf("unexpected request %s %s", req.Method, req.URL())
	}
	if req.Form != form {
		t.Error("form should be passed to transport unmodified")
	}
	if ct := req.Header.Get("Content-Type"); ct != ContentTypeMultipart {
		t.Errorf("expected Content-Type %s, got %s", ContentTypeMultipart, ct)
	}
}

func TestMultipartOperations_RequireForm(t *testing.T) {
	c, rec := newRecordingClient()
	ctx := context.Background()

	if _, err := c.UploadFile(ctx, nil); !errors.Is(err, ErrInvalidBody) {
		t.Errorf("UploadFile(nil): expected ErrInvalidBody, got %v", err)
	}
	if _, err := c.ExecuteScriptWithFiles(ctx, 3, nil); !errors.Is(err, ErrInvalidBody) {
		t.Errorf("ExecuteScriptWithFiles(nil): expected ErrInvalidBody, got %v", err)
	}
	if _, err := c.NewRequest(OpUploadFile, nil, map[string]any{"path": "x"}); !errors.Is(err, ErrInvalidBody) {
		t.Errorf("NewRequest with JSON body: expected ErrInvalidBody, got %v", err)
	}
	if len(rec.reqs) != 0 {
		t.Errorf("expected no transport calls, got %d", len(rec.reqs))
	}
}

func TestURLOperations_NoNetworkCall(t *testing.T) {
	failing := TransportFunc(func(context.Context, *Request) (*Response, error) {
		t.Fatal("URL builders must not call the transport")
		return nil, nil
	})
	c := New(Config{BaseURL: "http://backend/api/"}, WithTransport(failing))

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"DownloadFileURL", c.DownloadFileURL("/a b/c.txt"), "http://backend/api/files/download?path=%2Fa%20b%2Fc.txt"},
		{"DownloadFileURL plus", c.DownloadFileURL("a+b.txt"), "http://backend/api/files/download?path=a%2Bb.txt"},
		{"ExecutionFileURL", c.ExecutionFileURL(5, "out/r 1.csv"), "http://backend/api/executions/5/files/out%2Fr%201.csv?download=true"},
		{"ExecutionFileURL reserved", c.ExecutionFileURL(1, "a+b;c=d@e.txt"), "http://backend/api/executions/1/files/a%2Bb%3Bc%3Dd%40e.txt?download=true"},
		{"ExecutionLogStreamURL", c.ExecutionLogStreamURL(5), "http://backend/api/executions/5/logs/stream"},
		{"WorkflowExecutionStreamURL", c.WorkflowExecutionStreamURL(3), "http://backend/api/workflow-executions/3/stream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, tt.got)
			}
		})
	}
}

func TestListOperations_ForwardQueryVerbatim(t *testing.T) {
	c, rec := newRecordingClient()
	ctx := context.Background()

	query := Query{"page": "2", "per_page": "50", "script_id": "7", "custom": "a b"}

	lists := []struct {
		name string
		call func(Query)
		path string
	}{
		{"GetScripts", func(q Query) { c.GetScripts(ctx, q) }, "/scripts"},
		{"GetExecutions", func(q Query) { c.GetExecutions(ctx, q) }, "/executions"},
		{"GetWorkflowExecutions", func(q Query) { c.GetWorkflowExecutions(ctx, q) }, "/workflow-executions"},
		{"GetWorkflowTemplates", func(q Query) { c.GetWorkflowTemplates(ctx, q) }, "/workflow-templates"},
	}

	for _, l := range lists {
		t.Run(l.name, func(t *testing.T) {
			l.call(query)
			req := rec.last(t)
			if len(req.Query) != len(query) {
				t.Fatalf("expected %d query keys, got %d", len(query), len(req.Query))
			}
			for k, v := range query {
				if req.Query[k] != v {
					t.Errorf("query %s: expected %q, got %q", k, v, req.Query[k])
				}
			}
			want := l.path + "?custom=a%20b&page=2&per_page=50&script_id=7"
			if req.URL() != want {
				t.Errorf("expected URL %s, got %s", want, req.URL())
			}

			l.call(nil)
			if got := rec.last(t).URL(); got != l.path {
				t.Errorf("nil query: expected %s, got %s", l.path, got)
			}

			l.call(Query{})
			if got := rec.last(t).URL(); got != l.path {
				t.Errorf("empty query: expected %s, got %s", l.path, got)
			}
		})
	}
}

func TestClient_ReturnsTransportResultUnchanged(t *testing.T) {
	want := &Response{StatusCode: 201, Body: []byte(`{"code":0}`)}
	wantErr := &StatusError{Operation: OpCancelExecution, Response: &Response{StatusCode: 409}}

	var calls int
	c := New(Config{}, WithTransport(TransportFunc(func(_ context.Context, req *Request) (*Response, error) {
		calls++
		if req.Operation == OpCancelExecution {
			return nil, wantErr
		}
		return want, nil
	})))

	got, err := c.GetSchedule(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Error("response should be returned unchanged")
	}

	_, err = c.CancelExecution(context.Background(), 1)
	if err != wantErr {
		t.Errorf("error should be returned unchanged, got %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 transport calls, got %d", calls)
	}
}

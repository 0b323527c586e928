package client

import (
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestEndpoints_WellFormed(t *testing.T) {
	methods := map[string]bool{
		http.MethodGet: true, http.MethodPost: true,
		http.MethodPut: true, http.MethodDelete: true,
	}

	eps := Endpoints()
	if len(eps) != len(endpoints) {
		t.Fatalf("expected %d endpoints, got %d", len(endpoints), len(eps))
	}

	for i, ep := range eps {
		if i > 0 && eps[i-1].Name >= ep.Name {
			t.Errorf("endpoints not sorted: %s before %s", eps[i-1].Name, ep.Name)
		}
		if !methods[ep.Method] {
			t.Errorf("%s: unexpected method %q", ep.Name, ep.Method)
		}
		if !strings.HasPrefix(ep.Path, "/") {
			t.Errorf("%s: path %q must start with /", ep.Name, ep.Path)
		}
		if ep.Body != BodyNone && ep.Method != http.MethodPost && ep.Method != http.MethodPut {
			t.Errorf("%s: body on %s request", ep.Name, ep.Method)
		}
		if ep.URLOnly && ep.Method != http.MethodGet {
			t.Errorf("%s: URL-only endpoint must be GET", ep.Name)
		}
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup("getEverything")
	if !errors.Is(err, ErrUnknownOperation) {
		t.Errorf("expected ErrUnknownOperation, got %v", err)
	}
}

func TestEndpoint_Params(t *testing.T) {
	ep, err := Lookup(OpRollbackScript)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}

	params := ep.Params()
	if len(params) != 2 || params[0] != "id" || params[1] != "version" {
		t.Errorf("unexpected params %v", params)
	}
}

func TestEndpoint_Expand(t *testing.T) {
	ep, _ := Lookup(OpPreviewExecutionFile)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"plain", []string{"1", "a.txt"}, "/executions/1/files/a.txt"},
		{"nested", []string{"1", "out/a.txt"}, "/executions/1/files/out%2Fa.txt"},
		{"spaces", []string{"1", "my file.txt"}, "/executions/1/files/my%20file.txt"},
		{"question mark", []string{"1", "what?.txt"}, "/executions/1/files/what%3F.txt"},
		{"reserved", []string{"1", "a+b;c=d@e$,f:&.txt"}, "/executions/1/files/a%2Bb%3Bc%3Dd%40e%24%2Cf%3A%26.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ep.Expand(tt.args...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestEndpoint_ExpandMismatch(t *testing.T) {
	ep, _ := Lookup(OpRollbackScript)

	if _, err := ep.Expand("42"); !errors.Is(err, ErrMissingParam) {
		t.Errorf("expected ErrMissingParam, got %v", err)
	}
}

package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
)

func TestOutput_TableNotStyledForBuffer(t *testing.T) {
	var stdout, stderr bytes.Buffer
	out := NewOutputTo(&stdout, &stderr, false)

	out.Table([]string{"id", "name"}, [][]string{{"1", "alpha"}, {"2"}})

	got := stdout.String()
	if strings.ContainsAny(got, "╭╰│") {
		t.Errorf("expected plain table for non-terminal writer:\n%s", got)
	}
	for _, want := range []string{"ID", "NAME", "alpha"} {
		if !strings.Contains(got, want) {
			t.Errorf("table missing %q:\n%s", want, got)
		}
	}
	if stderr.Len() != 0 {
		t.Errorf("expected nothing in stderr, got %q", stderr.String())
	}
}

func TestOutput_JSONIndentsRaw(t *testing.T) {
	var stdout bytes.Buffer
	out := NewOutputTo(&stdout, &bytes.Buffer{}, true)

	out.JSON(json.RawMessage(`{"a":[1,2]}`))

	want := "{\n  \"a\": [\n    1,\n    2\n  ]\n}\n"
	if stdout.String() != want {
		t.Errorf("unexpected JSON:\n%q\nwant\n%q", stdout.String(), want)
	}
}

func TestOutput_MessagesGoToStderr(t *testing.T) {
	var stdout, stderr bytes.Buffer
	out := NewOutputTo(&stdout, &stderr, false)

	out.Success("done")
	out.Error("boom")
	out.Raw("log line")

	if stderr.String() != "done\nError: boom\n" {
		t.Errorf("unexpected stderr %q", stderr.String())
	}
	if stdout.String() != "log line\n" {
		t.Errorf("unexpected stdout %q", stdout.String())
	}
}

func TestParseParams(t *testing.T) {
	params, err := parseParams([]string{"n=3", "flag=true", "name=report", "obj={\"a\":1}", "eq=a=b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if params["n"] != float64(3) || params["flag"] != true || params["name"] != "report" || params["eq"] != "a=b" {
		t.Errorf("unexpected params: %v", params)
	}
	if obj, ok := params["obj"].(map[string]any); !ok || obj["a"] != float64(1) {
		t.Errorf("expected object param, got %v", params["obj"])
	}

	if _, err := parseParams([]string{"novalue"}); err == nil {
		t.Error("expected error for missing '='")
	}
}

func TestReadBody(t *testing.T) {
	readFile := func(path string) ([]byte, error) {
		if path == "wf.json" {
			return []byte(`{"name":"etl"}`), nil
		}
		return nil, os.ErrNotExist
	}

	body, err := readBody("@wf.json", readFile)
	if err != nil || string(body) != `{"name":"etl"}` {
		t.Errorf("readBody(@wf.json) = %s, %v", body, err)
	}

	if _, err := readBody("{broken", readFile); err == nil {
		t.Error("expected error for invalid JSON")
	}
	if _, err := readBody("@missing.json", readFile); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFormatSize(t *testing.T) {
	tests := map[int64]string{
		0:       "0 B",
		1023:    "1023 B",
		1024:    "1.0 KiB",
		1536:    "1.5 KiB",
		5 << 20: "5.0 MiB",
	}
	for n, want := range tests {
		if got := formatSize(n); got != want {
			t.Errorf("formatSize(%d) = %q, want %q", n, got, want)
		}
	}
}

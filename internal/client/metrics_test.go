package client

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_CountsByStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	next := TransportFunc(func(_ context.Context, req *Request) (*Response, error) {
		switch req.Operation {
		case OpDeleteScript:
			return nil, &StatusError{Operation: req.Operation, Response: &Response{StatusCode: 404}}
		case OpGetTags:
			return nil, errors.New("connection refused")
		default:
			return &Response{StatusCode: 200}, nil
		}
	})

	c := New(Config{}, WithTransport(next), WithMetrics(m))
	ctx := context.Background()

	c.GetScripts(ctx, nil)
	c.GetScripts(ctx, nil)
	c.DeleteScript(ctx, 1)
	c.GetTags(ctx)

	tests := []struct {
		op, method, status string
		want               float64
	}{
		{OpGetScripts, "GET", "200", 2},
		{OpDeleteScript, "DELETE", "404", 1},
		{OpGetTags, "GET", "error", 1},
	}

	for _, tt := range tests {
		got := testutil.ToFloat64(m.requests.WithLabelValues(tt.op, tt.method, tt.status))
		if got != tt.want {
			t.Errorf("%s %s: expected %v, got %v", tt.op, tt.status, tt.want, got)
		}
	}

	if n := testutil.CollectAndCount(m.duration); n != 3 {
		t.Errorf("expected 3 duration series, got %d", n)
	}
}

func TestNewMetrics_SharesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := NewMetrics(reg)
	second := NewMetrics(reg)

	second.requests.WithLabelValues(OpGetScripts, "GET", "200").Inc()

	if got := testutil.ToFloat64(first.requests.WithLabelValues(OpGetScripts, "GET", "200")); got != 1 {
		t.Errorf("expected shared counter value 1, got %v", got)
	}
}

func TestMetrics_PassThrough(t *testing.T) {
	want := &Response{StatusCode: 204}
	m := NewMetrics(prometheus.NewRegistry())

	wrapped := m.Wrap(TransportFunc(func(context.Context, *Request) (*Response, error) {
		return want, nil
	}))

	got, err := wrapped.Do(context.Background(), &Request{Operation: OpToggleWorkflow, Method: "POST"})
	if err != nil || got != want {
		t.Errorf("metrics wrapper must not alter result: %v %v", got, err)
	}
}

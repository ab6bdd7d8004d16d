package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/agbru/fibhost/internal/host"
)

func TestMetricsObserve(t *testing.T) {
	t.Parallel()
	m := NewMetrics()

	m.Observe(host.Event{Op: host.OpFib, Index: 2, Value: 1, Duration: time.Microsecond})
	m.Observe(host.Event{Op: host.OpPrintFib, Index: 23, Duration: time.Millisecond})
	m.Observe(host.Event{Op: host.OpPrintFib, Index: 24, Err: errors.New("flush")})

	if got := testutil.ToFloat64(m.calls.WithLabelValues("printfib")); got != 2 {
		t.Errorf("printfib calls = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.callErrors.WithLabelValues("printfib")); got != 1 {
		t.Errorf("printfib errors = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.lastIndex.WithLabelValues("fib")); got != 2 {
		t.Errorf("last fib index = %v, want 2", got)
	}
	if got := testutil.CollectAndCount(m.callDuration); got != 2 {
		t.Errorf("duration series = %d, want 2", got)
	}
}

func TestMetricsWritePrometheus(t *testing.T) {
	t.Parallel()
	m := NewMetrics()
	m.SetLibraryVersion(2)
	m.IncrementActiveRequests()
	defer m.DecrementActiveRequests()
	m.CountRequest("/metrics")

	req := httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody)
	rec := httptest.NewRecorder()
	m.WritePrometheus(rec, req)

	body := rec.Body.String()
	for _, want := range []string{
		"fibhost_library_version 2",
		"fibhost_active_requests 1",
		`fibhost_requests_total{path="/metrics"} 1`,
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output should contain %q", want)
		}
	}
}

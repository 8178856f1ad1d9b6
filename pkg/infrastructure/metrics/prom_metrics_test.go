package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestSizingMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSizingMetrics(reg)

	m.ObserveSized(0.45, 1, 2*time.Millisecond)
	m.ObserveSized(0.9, 0, time.Millisecond)
	m.ObserveInsufficient(3, time.Millisecond)
	m.ObserveRejected()
	m.ObserveUndefined(0, time.Millisecond)

	if got := testutil.ToFloat64(m.requests.WithLabelValues(OutcomeSized)); got != 2 {
		t.Fatalf("expected 2 sized requests, got %f", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues(OutcomeInsufficient)); got != 1 {
		t.Fatalf("expected 1 insufficient request, got %f", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues(OutcomeRejected)); got != 1 {
		t.Fatalf("expected 1 rejected request, got %f", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues(OutcomeUndefined)); got != 1 {
		t.Fatalf("expected 1 undefined geometry request, got %f", got)
	}
	if got := testutil.ToFloat64(m.excluded); got != 4 {
		t.Fatalf("expected 4 excluded streams, got %f", got)
	}
	// Only finite diameters reach the histogram
	if samples := testutil.CollectAndCount(m.throatDiameter); samples != 1 {
		t.Fatalf("expected throat histogram to export 1 series, got %d", samples)
	}
	if count, err := testutil.GatherAndCount(reg, "ejector_sizing_duration_seconds"); err != nil || count != 1 {
		t.Fatalf("expected duration histogram to be registered, got %d (%v)", count, err)
	}
}

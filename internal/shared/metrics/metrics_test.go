package metrics

import (
	"strings"
	"testing"
)

func TestHistogramCumulativeBuckets(t *testing.T) {
	h := newHistogram([]float64{10, 100})
	h.Observe(5)
	h.Observe(50)
	h.Observe(500)

	snap := h.Snapshot()
	if snap.count != 3 || snap.sum != 555 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if snap.counts[0] != 1 || snap.counts[1] != 1 {
		t.Fatalf("unexpected bucket counts: %v", snap.counts)
	}
}

func TestRenderIncludesStageFailures(t *testing.T) {
	IncSubmitted()
	IncFailed("generation")
	IncFailed("generation")
	IncRateLimited("SUBMIT")
	IncPanics()

	out := Render()
	for _, want := range []string{
		"# TYPE report_submissions_total counter",
		`report_failed_total{stage="generation"}`,
		`report_duration_ms_bucket{le="+Inf"}`,
		`http_rate_limited_total{group="SUBMIT"}`,
		"# TYPE http_panics_total counter",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in metrics output:\n%s", want, out)
		}
	}
}

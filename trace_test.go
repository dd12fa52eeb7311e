package nexus

import "testing"

func TestSubmissionTraceRetainsBoundedHistory(t *testing.T) {
	mgr := NewManager(WithTraceCapacity(2))
	h := NewHook(mgr, NewBoxed(0))

	for i := 1; i <= 3; i++ {
		if err := h.Submit(NewBoxed(i)); err != nil {
			t.Fatalf("submit %d failed: %v", i, err)
		}
	}

	records := mgr.Trace().Records()
	if len(records) != 2 {
		t.Fatalf("expected trace to retain exactly 2 records, got %d", len(records))
	}
	// The oldest retained record must be the second submission (seq 2),
	// since capacity 2 evicts the first (seq 1).
	if records[0].Seq != 2 || records[1].Seq != 3 {
		t.Errorf("expected seqs [2,3], got [%d,%d]", records[0].Seq, records[1].Seq)
	}
}

func TestSubmissionTraceRecordsOutcome(t *testing.T) {
	mgr := NewManager()
	mustBePositive := func(candidate Value) (bool, string) {
		if candidate.(Boxed[int]).Get() <= 0 {
			return false, "must be positive"
		}
		return true, ""
	}
	h := NewHook(mgr, NewBoxed(1), WithValidator(mustBePositive))

	if err := h.Submit(NewBoxed(-1)); err == nil {
		t.Fatalf("expected rejection")
	}

	records := mgr.Trace().Records()
	last := records[len(records)-1]
	if last.Err == nil {
		t.Errorf("expected the trace to record the submission's error")
	}
}

func TestPoolMetricsTrackReuse(t *testing.T) {
	mgr := NewManager()
	h := NewHook(mgr, NewBoxed(0))

	for i := 0; i < 5; i++ {
		_ = h.Submit(NewBoxed(i))
	}

	hits, misses := mgr.PoolMetrics()
	if hits+misses == 0 {
		t.Errorf("expected pool metrics to reflect at least one checkout")
	}
}

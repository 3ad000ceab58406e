package metrics

import (
	"testing"
	"time"
)

func TestCollector_RecordTiming(t *testing.T) {
	c := NewCollector()

	c.RecordTiming(OpFacetLookup, 10*time.Millisecond)
	c.RecordTiming(OpFacetLookup, 30*time.Millisecond)

	snap := c.Snapshot()
	if snap.FacetLookup == nil {
		t.Fatal("FacetLookup snapshot is nil")
	}
	if snap.FacetLookup.Count != 2 {
		t.Errorf("count = %d, want 2", snap.FacetLookup.Count)
	}
	if snap.FacetLookup.MinTimeMs != 10 || snap.FacetLookup.MaxTimeMs != 30 {
		t.Errorf("min/max = %d/%d, want 10/30", snap.FacetLookup.MinTimeMs, snap.FacetLookup.MaxTimeMs)
	}
	if snap.FacetLookup.AvgTimeMs != 20 {
		t.Errorf("avg = %v, want 20", snap.FacetLookup.AvgTimeMs)
	}
}

func TestCollector_EmptyOpsAreNil(t *testing.T) {
	snap := NewCollector().Snapshot()
	if snap.Intent != nil || snap.Similarity != nil {
		t.Error("unrecorded operations should snapshot as nil")
	}
}

func TestCollector_ConcurrentAccess(t *testing.T) {
	c := NewCollector()
	done := make(chan struct{})

	for i := 0; i < 8; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				c.RecordTiming(OpIntent, time.Millisecond)
			}
			done <- struct{}{}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	if got := c.Snapshot().Intent.Count; got != 800 {
		t.Errorf("count = %d, want 800", got)
	}
}

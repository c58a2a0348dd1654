package history

import (
	"fmt"
	"testing"
)

func TestRingBuffer_AddAndAll(t *testing.T) {
	rb := NewRingBuffer(3)

	for i := 0; i < 2; i++ {
		rb.Add(&AnalysisEvent{ID: fmt.Sprintf("evt-%d", i)})
	}

	all := rb.All()
	if len(all) != 2 {
		t.Fatalf("expected 2 events, got %d", len(all))
	}
	if all[0].ID != "evt-0" || all[1].ID != "evt-1" {
		t.Errorf("expected chronological order, got %v, %v", all[0].ID, all[1].ID)
	}
}

func TestRingBuffer_OverwritesOldest(t *testing.T) {
	rb := NewRingBuffer(3)

	for i := 0; i < 5; i++ {
		rb.Add(&AnalysisEvent{ID: fmt.Sprintf("evt-%d", i)})
	}

	if rb.Len() != 3 {
		t.Fatalf("expected len 3, got %d", rb.Len())
	}
	all := rb.All()
	if all[0].ID != "evt-2" || all[2].ID != "evt-4" {
		t.Errorf("expected oldest entries evicted, got %v..%v", all[0].ID, all[2].ID)
	}
}

func TestRingBuffer_DefaultCapacity(t *testing.T) {
	rb := NewRingBuffer(0)
	if rb.cap != defaultBufferSize {
		t.Errorf("expected default capacity %d, got %d", defaultBufferSize, rb.cap)
	}
}

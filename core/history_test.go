package core

import (
	"fmt"
	"testing"
)

func TestHistoryAppendAndLast(t *testing.T) {
	h := &History{}
	for i := 1; i <= 5; i++ {
		h.Append(fmt.Sprintf("line %d", i))
	}
	if h.Len() != 5 {
		t.Fatalf("len = %d, want 5", h.Len())
	}

	got := h.Last(3)
	want := []string{"line 3", "line 4", "line 5"}
	if len(got) != len(want) {
		t.Fatalf("Last(3) = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Last(3)[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestHistoryLastMoreThanStored(t *testing.T) {
	h := &History{}
	h.Append("only")
	got := h.Last(10)
	if len(got) != 1 || got[0] != "only" {
		t.Fatalf("Last(10) = %v", got)
	}
}

func TestHistoryLastEmpty(t *testing.T) {
	h := &History{}
	if got := h.Last(5); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

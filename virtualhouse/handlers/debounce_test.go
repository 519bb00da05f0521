package handlers

import (
	"testing"
	"time"
)

func TestDebouncerBlocksRapidRepeats(t *testing.T) {
	d := NewDebouncer(16, 100*time.Millisecond)

	if !d.Allow("123") {
		t.Fatal("first interaction must pass")
	}
	if d.Allow("123") {
		t.Fatal("immediate repeat must be dropped")
	}
	if !d.Allow("456") {
		t.Fatal("other users must not be affected")
	}

	time.Sleep(120 * time.Millisecond)
	if !d.Allow("123") {
		t.Fatal("interaction after the window must pass")
	}
}

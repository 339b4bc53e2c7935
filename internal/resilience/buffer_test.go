package resilience

import (
	"sync"
	"testing"
)

func TestBufferNewestFirst(t *testing.T) {
	b := NewBuffer[int](10)
	b.Record(1)
	b.Record(2)
	b.Record(3)
	got := b.Items()
	want := []int{3, 2, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Items() = %v, want %v", got, want)
		}
	}
}

func TestBufferEvictsOldestAtCapacity(t *testing.T) {
	b := NewBuffer[int](3)
	for i := 1; i <= 5; i++ {
		b.Record(i)
	}
	if b.Len() != 3 {
		t.Fatalf("Len() = %d, want capacity 3", b.Len())
	}
	got := b.Items()
	want := []int{5, 4, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Items() = %v, want %v", got, want)
		}
	}
}

func TestBufferReset(t *testing.T) {
	b := NewBuffer[string](0) // zero falls back to the default capacity
	b.Record("a")
	b.Record("b")
	b.Reset()
	if b.Len() != 0 {
		t.Fatalf("Len() after Reset = %d, want 0", b.Len())
	}
	if len(b.Items()) != 0 {
		t.Fatal("Items() after Reset should be empty")
	}
}

func TestBufferConcurrentRecords(t *testing.T) {
	b := NewBuffer[int](50)
	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			b.Record(n)
		}(i)
	}
	wg.Wait()
	if b.Len() != 50 {
		t.Fatalf("Len() = %d, want 50 after concurrent writes past capacity", b.Len())
	}
}

func TestBuffersResetAll(t *testing.T) {
	bs := NewBuffers(5)
	bs.Claims.Record(claimFixture())
	bs.Quotes.Record(quoteFixture())
	if bs.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", bs.Len())
	}
	bs.ResetAll()
	if bs.Len() != 0 {
		t.Fatalf("Len() after ResetAll = %d, want 0", bs.Len())
	}
}

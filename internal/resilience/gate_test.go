package resilience

import (
	"sync"
	"testing"
)

func TestGateCommitInOrder(t *testing.T) {
	var g VersionGate
	a := g.Begin()
	b := g.Begin()
	if !g.Commit(a) {
		t.Fatal("first commit of the oldest sequence should apply")
	}
	if !g.Commit(b) {
		t.Fatal("newer sequence should still apply after an older one")
	}
	if g.Applied() != b {
		t.Fatalf("Applied() = %d, want %d", g.Applied(), b)
	}
}

func TestGateRejectsStaleCommit(t *testing.T) {
	var g VersionGate
	slow := g.Begin()
	fast := g.Begin()
	if !g.Commit(fast) {
		t.Fatal("fast fetch should apply")
	}
	if g.Commit(slow) {
		t.Fatal("a fetch started before an applied one must not overwrite it")
	}
	if g.Applied() != fast {
		t.Fatalf("Applied() = %d, want %d", g.Applied(), fast)
	}
}

func TestGateDoubleCommitRejected(t *testing.T) {
	var g VersionGate
	seq := g.Begin()
	if !g.Commit(seq) {
		t.Fatal("first commit should apply")
	}
	if g.Commit(seq) {
		t.Fatal("re-committing the same sequence must be rejected")
	}
}

func TestGateConcurrent(t *testing.T) {
	var g VersionGate
	var wg sync.WaitGroup
	applied := make(chan uint64, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seq := g.Begin()
			if g.Commit(seq) {
				applied <- seq
			}
		}()
	}
	wg.Wait()
	close(applied)

	last := uint64(0)
	for seq := range applied {
		if seq > last {
			last = seq
		}
	}
	if g.Applied() != last {
		t.Fatalf("Applied() = %d, want the largest committed sequence %d", g.Applied(), last)
	}
}

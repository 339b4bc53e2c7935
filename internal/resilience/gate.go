package resilience

import "sync"

// VersionGate orders concurrent refreshes of the same view-state. Poll- and
// push-triggered fetches both take a sequence number before fetching and only
// apply their result if nothing newer has been applied since, so a slow poll
// response can no longer overwrite data from a newer push-triggered refresh.
type VersionGate struct {
	mu      sync.Mutex
	next    uint64
	applied uint64
}

// Begin reserves the next sequence number for a fetch about to start.
func (g *VersionGate) Begin() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return g.next
}

// Commit reports whether the fetch that reserved seq may apply its result.
// A fetch loses when a later-started fetch already committed.
func (g *VersionGate) Commit(seq uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if seq <= g.applied {
		return false
	}
	g.applied = seq
	return true
}

// Applied returns the last committed sequence number.
func (g *VersionGate) Applied() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.applied
}

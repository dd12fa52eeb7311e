package nexus

import (
	"sync"
	"sync/atomic"
)

// nexusID is an opaque, comparable identity two hooks can check for
// equality to answer Hook.IsLinkedTo without exposing the Nexus itself.
type nexusID uint64

var nexusIDCounter atomic.Uint64

func nextNexusID() nexusID {
	return nexusID(nexusIDCounter.Add(1))
}

// nexus is the shared storage cell. It never takes the manager's write
// lock itself and never calls an owner directly; it is pure storage plus
// membership bookkeeping, mutated only by code already holding the manager
// lock (hook.go, manager.go).
type nexus struct {
	id       nexusID
	current  atomic.Pointer[Value]
	previous atomic.Pointer[Value]

	mu        sync.Mutex // guards members/validators/reactions bookkeeping
	members   map[*Hook]struct{}
	validated map[*Hook]struct{} // subset of members contributing an isolated validator
	reacting  map[*Hook]struct{} // subset of members contributing a reaction
}

func newNexus(v Value) *nexus {
	n := &nexus{
		id:        nextNexusID(),
		members:   make(map[*Hook]struct{}),
		validated: make(map[*Hook]struct{}),
		reacting:  make(map[*Hook]struct{}),
	}
	n.current.Store(&v)
	n.previous.Store(&v)
	return n
}

// currentValue returns the committed Value. Lock-free: safe to call from any
// goroutine at any time, including from within a phase-6 callback of the
// submission that just replaced it.
func (n *nexus) currentValue() Value {
	p := n.current.Load()
	if p == nil {
		return nil
	}
	return *p
}

func (n *nexus) previousValue() Value {
	p := n.previous.Load()
	if p == nil {
		return nil
	}
	return *p
}

// snapshotValue returns an independent clone of the current value.
func (n *nexus) snapshotValue() Value {
	v := n.currentValue()
	if v == nil {
		return nil
	}
	return v.Clone()
}

// replaceValue installs newVal as current, moving the prior current into
// previous. Only called by the manager during Phase 5 (or by fusion/
// isolation under the same lock).
func (n *nexus) replaceValue(newVal Value) {
	old := n.current.Load()
	if old != nil {
		n.previous.Store(old)
	}
	n.current.Store(&newVal)
}

// addMember records hook as pointing at n. Must be called only while the
// manager lock is held.
func (n *nexus) addMember(h *Hook) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.members[h] = struct{}{}
	if h.hasValidator() {
		n.validated[h] = struct{}{}
	}
	if h.hasReaction() {
		n.reacting[h] = struct{}{}
	}
}

// removeMember withdraws hook's membership and its validator/reaction
// contributions. Must be called only while the manager lock is held.
func (n *nexus) removeMember(h *Hook) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.members, h)
	delete(n.validated, h)
	delete(n.reacting, h)
}

func (n *nexus) memberCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.members)
}

// memberList returns a stable snapshot slice of current members. Must be
// called only while the manager lock is held (or accepts a benign race with
// concurrent membership changes, since callers under the lock are the only
// ones that mutate membership).
func (n *nexus) memberList() []*Hook {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]*Hook, 0, len(n.members))
	for h := range n.members {
		out = append(out, h)
	}
	return out
}

func (n *nexus) validatorList() []*Hook {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]*Hook, 0, len(n.validated))
	for h := range n.validated {
		out = append(out, h)
	}
	return out
}

func (n *nexus) reactorList() []*Hook {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]*Hook, 0, len(n.reacting))
	for h := range n.reacting {
		out = append(out, h)
	}
	return out
}

// absorb merges doomed's membership and aggregates into n (the keeper),
// called by manager.go's commitFusion under the manager lock. doomed's own
// bookkeeping is not cleared; it is never used again afterward.
func (n *nexus) absorb(doomed *nexus) {
	doomed.mu.Lock()
	members := make([]*Hook, 0, len(doomed.members))
	for h := range doomed.members {
		members = append(members, h)
	}
	doomed.mu.Unlock()

	n.mu.Lock()
	defer n.mu.Unlock()
	for _, h := range members {
		n.members[h] = struct{}{}
		if h.hasValidator() {
			n.validated[h] = struct{}{}
		}
		if h.hasReaction() {
			n.reacting[h] = struct{}{}
		}
	}
}

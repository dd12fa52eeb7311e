package nexus

import (
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
)

// goroutineID extracts the calling goroutine's numeric id by parsing the
// leading "goroutine N [running]:" line of a runtime.Stack dump. This is a
// narrow, well-known trick for exactly one purpose here: telling apart "the
// same goroutine is trying to re-enter Submit" (forbidden, spec §4.4's
// nested-submission rule) from "a different goroutine is contending for the
// lock" (ordinary serialization). It is never used for scheduling or
// debugging elsewhere.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := buf[:n]

	// b looks like "goroutine 123 [running]:\n..."
	i := 0
	for i < len(b) && b[i] != ' ' {
		i++
	}
	i++ // skip the space after "goroutine"
	start := i
	for i < len(b) && b[i] != ' ' {
		i++
	}
	id, err := strconv.ParseUint(string(b[start:i]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// reentryGuard implements the "reentrant for reads, forbidden for nested
// Submit" rule (spec §4.4, §5) without a true recursive mutex: Submit tries
// a non-blocking acquire first; on contention it compares the calling
// goroutine's id against the id recorded by whoever currently holds the
// lock. Equal ids mean the same call stack is trying to re-enter Submit
// (e.g. from inside a Reaction or Listener) and is rejected immediately
// rather than deadlocking; different ids mean ordinary cross-goroutine
// contention and fall back to a blocking acquire.
type reentryGuard struct {
	mu     sync.Mutex
	holder atomic.Uint64
}

// enter acquires the guard, returning ErrNestedSubmission instead of
// blocking if the current goroutine already holds it.
func (g *reentryGuard) enter() error {
	if g.mu.TryLock() {
		g.holder.Store(goroutineID())
		return nil
	}
	if g.holder.Load() == goroutineID() {
		return ErrNestedSubmission
	}
	g.mu.Lock()
	g.holder.Store(goroutineID())
	return nil
}

func (g *reentryGuard) exit() {
	g.holder.Store(0)
	g.mu.Unlock()
}

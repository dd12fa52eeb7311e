// Package nexus implements a reactive value-synchronization core: a set of
// shared storage cells ("nexuses") that named handles ("hooks") point into.
// Any number of hooks can be fused into one synchronization domain so that a
// write through any of them is observed by all of them, validated
// collectively before it commits.
//
// # Overview
//
// Three concepts compose the core:
//
//  1. Nexus: a cell holding one Value plus the set of hooks pointing at it.
//  2. Hook: a stable handle through which reads, writes, and topology
//     operations (link, isolate) occur.
//  3. Manager: the coordinator that serializes writes through a six-phase
//     submission pipeline (equality short-circuit, owner completion,
//     affected-set collection, validation, commit, notification).
//
// # Basic usage
//
//	mgr := nexus.NewManager()
//
//	a := nexus.NewHook(mgr, nexus.NewBoxed(1))
//	b := nexus.NewHook(mgr, nexus.NewBoxed(2))
//
//	if err := a.Link(b, nexus.UseSelf); err != nil {
//	    log.Fatal(err)
//	}
//
//	_ = a.Submit(nexus.NewBoxed(10))
//	v := b.Read() // v == Boxed(10)
//
// # Owners
//
// Higher-level objects that group several related hooks implement the Owner
// interface to contribute cross-hook validation, derive values for sibling
// hooks during a submission (completion), and react once per submission that
// touches any of their hooks. The core ships no concrete observable types
// (single value, list, set, selection, function); those are external
// collaborators built against Owner and Hook.
//
// # Concurrency
//
// A Manager holds one coarse-grained write lock serializing submission,
// fusion, and isolation. Reads (Hook.Read, Hook.Snapshot) never take that
// lock — they observe the current Value through a lock-free pointer load, so
// they are always safe to call, including from inside a phase-6 callback of
// the very submission that is committing. Re-entering Submit from within a
// phase-6 listener is rejected with ErrNestedSubmission rather than
// deadlocking.
package nexus

package nexus

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// IsolatedValidator runs against a single candidate Value before any
// cross-nexus validation (spec §4.2, §4.4 Phase 4 step 1).
type IsolatedValidator func(candidate Value) (ok bool, message string)

// Reaction is invoked after commit when h's nexus value changed (spec §4.4
// Phase 6 step 2). It runs under the manager lock: it must be fast and must
// not submit (that would be rejected as a nested submission only if it
// actually re-enters Submit from this same call stack, which reactions are
// free to trigger asynchronously via a Publisher instead).
type Reaction func(h *Hook)

// LinkMode selects which of two pre-fusion current values survives a link
// as the fused shared value (spec §4.3 step 3, §6).
type LinkMode int

const (
	// UseSelf: the candidate is the caller's (self's) current value.
	UseSelf LinkMode = iota
	// UseOther: the candidate is the target's (other's) current value.
	UseOther
)

// Hook is a stable, named handle through which reads, writes, and topology
// operations occur (spec §4.2). Construct one with NewHook or one of its
// variants; a Hook is always alive and always points at exactly one nexus.
type Hook struct {
	metaMap

	id  string
	mgr *Manager

	n atomic.Pointer[nexus] // current nexus; mutated only under mgr.guard

	validator IsolatedValidator
	reaction  Reaction

	owner *ownerRef

	listeners listenerList
}

// HookOption configures a Hook at construction.
type HookOption func(*Hook)

// WithValidator attaches an isolated validator.
func WithValidator(v IsolatedValidator) HookOption {
	return func(h *Hook) { h.validator = v }
}

// WithReaction attaches a post-commit reaction.
func WithReaction(r Reaction) HookOption {
	return func(h *Hook) { h.reaction = r }
}

// WithOwner attaches an owner and the stable key under which the owner
// exposes this hook, used by multi-value submissions keyed by (owner, key).
func WithOwner(owner Owner, key Key) HookOption {
	return func(h *Hook) { h.owner.rehome(owner, key) }
}

// NewHook constructs a hook holding value, joining a fresh nexus, registered
// against mgr.
func NewHook(mgr *Manager, value Value, opts ...HookOption) *Hook {
	h := &Hook{
		id:    uuid.NewString(),
		mgr:   mgr,
		owner: newOwnerRef(nil, ""),
	}
	for _, opt := range opts {
		opt(h)
	}
	n := newNexus(value)
	h.n.Store(n)
	n.addMember(h)
	return h
}

func (h *Hook) hasValidator() bool { return h.validator != nil }
func (h *Hook) hasReaction() bool  { return h.reaction != nil }

// ID returns the hook's stable identity, independent of which nexus it
// currently points at.
func (h *Hook) ID() string { return h.id }

// Key returns the stable key this hook is exposed under by its owner, if
// any.
func (h *Hook) Key() (Key, bool) { return h.owner.getKey() }

// Owner returns the hook's owner if one is attached and still alive.
func (h *Hook) Owner() (Owner, bool) { return h.owner.get() }

// DetachOwner clears the hook's owner back-reference. After this call the
// hook behaves as ownerless: it contributes no completion, validation, or
// reaction through an owner in any future submission.
func (h *Hook) DetachOwner() { h.owner.detach() }

// Rehome moves h's ownership bookkeeping to newOwner under newKey, leaving
// its nexus, current value, and listeners untouched. Grounded on the
// original's transfer pattern (examples_transfer_observable.py): moving a
// hook between owners is a bookkeeping change independent of the value it
// carries, so unlike Link/Isolate this never touches a nexus and needs no
// manager involvement — the swap is a single atomic store on h's own
// owner back-reference.
func (h *Hook) Rehome(newOwner Owner, newKey Key) { h.owner.rehome(newOwner, newKey) }

func (h *Hook) nexus() *nexus { return h.n.Load() }

// NexusID returns an opaque, comparable token identifying the hook's
// current nexus: two hooks share a nexus iff their NexusIDs are equal.
func (h *Hook) NexusID() any { return h.nexus().id }

// IsLinkedTo reports whether h and other currently share a nexus.
func (h *Hook) IsLinkedTo(other *Hook) bool {
	return h.nexus().id == other.nexus().id
}

// Read returns the current committed value.
func (h *Hook) Read() Value { return h.nexus().currentValue() }

// Snapshot returns an independent clone of the current value.
func (h *Hook) Snapshot() Value { return h.nexus().snapshotValue() }

// Previous returns the value displaced by the most recent commit.
func (h *Hook) Previous() Value { return h.nexus().previousValue() }

// Submit is the entry point for a single-hook write: it calls into the
// manager with a singleton {h: value} submission.
func (h *Hook) Submit(value Value, opts ...SubmitOption) error {
	return h.mgr.Submit(map[*Hook]Value{h: value}, opts...)
}

// SubmitMany atomically submits pairs (which should include h, though it is
// not required to) through h's manager.
func (h *Hook) SubmitMany(pairs map[*Hook]Value, opts ...SubmitOption) error {
	return h.mgr.Submit(pairs, opts...)
}

// AddListener registers fn, invoked synchronously on commit of a submission
// that affects h's nexus.
func (h *Hook) AddListener(fn Listener) ListenerHandle {
	return h.listeners.Add(fn)
}

// RemoveListener drops a previously registered listener.
func (h *Hook) RemoveListener(handle ListenerHandle) {
	h.listeners.Remove(handle)
}

// ClearListeners removes every listener registered on h.
func (h *Hook) ClearListeners() {
	h.listeners.Clear()
}

// Link fuses h's nexus with other's nexus under the manager lock (spec
// §4.3). A hook already sharing other's nexus is a no-op returning success.
func (h *Hook) Link(other *Hook, mode LinkMode) error {
	if h.mgr != other.mgr {
		return newError(KindFusionRejected, "hooks belong to different managers")
	}
	return h.mgr.link(h, other, mode)
}

// LinkMany atomically fuses h with every hook in targets, using mode for
// each pairing. Either every fusion succeeds or none does.
func (h *Hook) LinkMany(targets []*Hook, mode LinkMode) error {
	return h.mgr.linkMany(h, targets, mode)
}

// Isolate detaches h into a fresh nexus carrying a clone of its current
// value; the remaining members of its old nexus stay fused. See DESIGN.md
// for the chosen singleton-membership policy (no-op).
func (h *Hook) Isolate() error {
	return h.mgr.isolate(h)
}

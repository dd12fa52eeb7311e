package nexus

import "sync/atomic"

// Key identifies a hook within its owner's ordered hook set, and is the
// unit multi-value submissions are keyed by: (owner, key).
type Key string

// Owner is implemented by higher-level objects that group related hooks
// (the concrete observable types — single value, list, set, selection,
// function — are deliberately outside this module's scope; Owner is the
// contract they build against).
type Owner interface {
	// Hooks returns this owner's participating hooks, in a stable,
	// identity-meaningful order.
	Hooks() []OwnerHook

	// Complete may extend a submitted subset with derived values for the
	// owner's other hooks (e.g. a function observable computing outputs
	// from inputs). A trivial owner returns an empty map and a nil error.
	Complete(submitted map[Key]Value) (map[Key]Value, error)

	// Validate checks cross-hook invariants against a tentative full
	// snapshot (candidate values where this owner's hook was affected,
	// current values otherwise).
	Validate(fullSnapshot map[Key]Value) (ok bool, message string)

	// ReactToChange is called at most once per submission, only if one of
	// this owner's hooks was affected. It runs under the manager lock: it
	// must be fast and must not submit.
	ReactToChange(affected []Key)

	// AddListener, RemoveListener, ClearListeners, and Listeners give the
	// owner the same listener surface a Hook carries (spec §4.6, §6):
	// invoked synchronously in Phase 6 step 4 whenever one of the owner's
	// hooks was affected. Embed OwnerListeners to implement these with no
	// extra bookkeeping.
	AddListener(fn Listener) ListenerHandle
	RemoveListener(handle ListenerHandle)
	ClearListeners()
	Listeners() []Listener
}

// OwnerHook pairs a Key with the Hook it names, as returned by Owner.Hooks.
type OwnerHook struct {
	Key  Key
	Hook *Hook
}

// ownerBinding pairs an Owner with the stable Key it exposes a hook under.
// The two always change together: a hook rehomed to a new owner without
// also getting that owner's key would let a reader observe an owner/key
// pair that never existed, so they're stored and swapped as one unit.
type ownerBinding struct {
	owner Owner
	key   Key
}

// ownerRef is the back-reference from a Hook to its Owner. Spec §9 calls
// this relation "weak": the owner outlives or dies independently of any
// hook it created, and the core must tolerate the owner being gone. Go's
// generic weak.Pointer[T] (stdlib, 1.24+) cannot express this for an
// arbitrary Owner interface value without reflection tricks to recover a
// concrete *T at runtime, so instead of leaning on GC this follows the
// teacher's own preference for explicit lifecycle over implicit magic
// (controller.go's explicit Release/Reload rather than finalizers): owners
// are detached explicitly via Hook.DetachOwner, and an owner the caller
// never detaches is presumed alive. ownerRef is read from phases 2/4/6,
// which may run concurrently with DetachOwner or Hook.Rehome from another
// goroutine, so the binding is stored behind an atomic.Pointer rather than
// plain fields; every Hook gets one at construction (even ownerless hooks,
// holding a nil binding) so the *ownerRef itself never needs to be swapped
// after the fact.
type ownerRef struct {
	p atomic.Pointer[ownerBinding]
}

func newOwnerRef(o Owner, key Key) *ownerRef {
	r := &ownerRef{}
	if o != nil {
		r.p.Store(&ownerBinding{owner: o, key: key})
	}
	return r
}

// get returns the owner if one is currently attached, or (nil, false) if it
// was never set or has been explicitly detached.
func (r *ownerRef) get() (Owner, bool) {
	if r == nil {
		return nil, false
	}
	b := r.p.Load()
	if b == nil {
		return nil, false
	}
	return b.owner, true
}

// getKey returns the key the currently attached owner exposes this hook
// under, or ("", false) if no owner is attached.
func (r *ownerRef) getKey() (Key, bool) {
	if r == nil {
		return "", false
	}
	b := r.p.Load()
	if b == nil {
		return "", false
	}
	return b.key, true
}

func (r *ownerRef) detach() {
	r.p.Store(nil)
}

// rehome atomically replaces whatever owner/key binding is currently
// stored, attaching to a new owner under a new key in one step.
func (r *ownerRef) rehome(o Owner, key Key) {
	r.p.Store(&ownerBinding{owner: o, key: key})
}

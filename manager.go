package nexus

import (
	"fmt"
	"log/slog"
)

// Manager is the coordination point every Submit, Link, and Isolate passes
// through (spec §4.4). It owns the one write lock the whole module
// contends on; reads never touch it (nexus.go's atomic pointers). Grounded
// on the teacher's Scope (scope.go): a single struct owning the write path,
// configured via functional options, wrapped by extensions.
type Manager struct {
	metaMap

	guard reentryGuard
	pool  *scratchPool
	trace *SubmissionTrace

	extensions []ManagerExtension
	publisher  Publisher
	logger     *slog.Logger

	onReactionPanic func(recovered any)
	onListenerPanic func(recovered any)
}

// ManagerOption configures a Manager at construction, mirroring the
// teacher's ScopeOption (scope.go).
type ManagerOption func(*Manager)

// WithPublisher registers the sink Phase 6 enqueues PublicationEvents to.
// Without one, events are simply dropped.
func WithPublisher(p Publisher) ManagerOption {
	return func(m *Manager) { m.publisher = p }
}

// WithExtension appends an extension observing the submission/fusion/
// isolation lifecycle.
func WithExtension(ext ManagerExtension) ManagerOption {
	return func(m *Manager) { m.extensions = append(m.extensions, ext) }
}

// WithTraceCapacity sizes the manager's retained submission history.
// Default capacity is 256.
func WithTraceCapacity(n int) ManagerOption {
	return func(m *Manager) { m.trace = NewSubmissionTrace(n) }
}

// WithLogger attaches a structured logger, used only to report panics
// recovered from reactions/listeners (the submission pipeline itself is
// silent on the happy path).
func WithLogger(l *slog.Logger) ManagerOption {
	return func(m *Manager) { m.logger = l }
}

// NewManager constructs a ready-to-use Manager.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		pool:   newScratchPool(),
		trace:  NewSubmissionTrace(256),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.onReactionPanic = func(r any) {
		m.logger.Error("nexus: reaction panicked", slog.Any("recovered", r))
	}
	m.onListenerPanic = func(r any) {
		m.logger.Error("nexus: listener panicked", slog.Any("recovered", r))
	}
	return m
}

// Trace returns the manager's bounded submission history.
func (m *Manager) Trace() *SubmissionTrace { return m.trace }

// PoolMetrics reports scratch-buffer reuse counts.
func (m *Manager) PoolMetrics() (hits, misses uint64) { return m.pool.Metrics() }

type submitConfig struct {
	skipListeners bool
}

// SubmitOption configures a single Submit call.
type SubmitOption func(*submitConfig)

// WithSkipListeners suppresses Phase 6 listener notification for this
// submission only (the Hook/Owner reactions and publisher enqueue still
// run). Mainly useful in tests asserting on commit behavior in isolation.
func WithSkipListeners() SubmitOption {
	return func(c *submitConfig) { c.skipListeners = true }
}

// Submit runs the six-phase pipeline (spec §4.4) against candidates: for
// each (hook, value) pair, equality short-circuit, then owner completion,
// affected-set collection with conflict detection, validation (isolated
// then cross-hook), commit, and notification. Either every affected nexus
// commits or none does.
func (m *Manager) Submit(candidates map[*Hook]Value, opts ...SubmitOption) (err error) {
	if lockErr := m.guard.enter(); lockErr != nil {
		return lockErr
	}
	defer m.guard.exit()

	cfg := &submitConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	scratch := m.pool.get()
	defer m.pool.put(scratch)

	op := &SubmitOp{Hooks: candidates}
	for _, ext := range m.extensions {
		ext.BeforeSubmit(op)
	}

	var record SubmissionRecord
	record.HookCount = len(candidates)
	defer func() {
		if r := recover(); r != nil {
			record.PanicValue = r
			err = newError(KindCompletionFailure, fmt.Sprintf("submission panicked: %v", r))
		}
		record.Err = err
		op.Err = err
		for _, ext := range m.extensions {
			ext.AfterSubmit(op)
		}
		m.trace.record(record)
	}()

	// Phase 1: equality short-circuit.
	pending := scratch.candidates
	for h, v := range candidates {
		if !m.valuesEqual(h.Read(), v) {
			pending[h] = v
		}
	}
	if len(pending) == 0 {
		return nil
	}

	// Phase 2: owner completion.
	ownerHooksOf := make(map[Owner]map[Key]*Hook)
	touchedOwners := make(map[Owner]bool)
	for h := range pending {
		o, ok := h.Owner()
		if !ok {
			continue
		}
		touchedOwners[o] = true
	}
	for o := range touchedOwners {
		hooksByKey := make(map[Key]*Hook)
		for _, oh := range o.Hooks() {
			hooksByKey[oh.Key] = oh.Hook
		}
		ownerHooksOf[o] = hooksByKey

		submitted := make(map[Key]Value)
		for h, v := range pending {
			if hh, ok := h.Owner(); ok && hh == o {
				if key, ok := h.Key(); ok {
					submitted[key] = v
				}
			}
		}
		derived, cerr := o.Complete(submitted)
		if cerr != nil {
			return wrapError(KindCompletionFailure, "owner completion failed", cerr)
		}
		for key, v := range derived {
			hook, ok := hooksByKey[key]
			if !ok {
				continue
			}
			pending[hook] = v
		}
	}

	// Phase 3: affected-set collection with conflict detection.
	nexusCandidate := make(map[nexusID]Value, len(pending))
	nexusByID := make(map[nexusID]*nexus, len(pending))
	for h, v := range pending {
		n := h.nexus()
		if existing, ok := nexusCandidate[n.id]; ok {
			if !m.valuesEqual(existing, v) {
				return newKeyedError(KindValueConflict, fmt.Sprintf("nexus#%d", n.id), v,
					"conflicting candidate values submitted for hooks sharing a nexus")
			}
			continue
		}
		nexusCandidate[n.id] = v
		nexusByID[n.id] = n
	}

	// Phase 4a: isolated validators.
	for id, n := range nexusByID {
		candidate := nexusCandidate[id]
		for _, h := range n.validatorList() {
			if ok, msg := h.validator(candidate); !ok {
				return newKeyedError(KindIsolatedValidation, fmt.Sprintf("nexus#%d", id), candidate, msg)
			}
		}
	}

	// Phase 4b: owner cross-hook validation.
	for o, hooksByKey := range ownerHooksOf {
		full := make(map[Key]Value, len(hooksByKey))
		for key, h := range hooksByKey {
			if v, ok := nexusCandidate[h.nexus().id]; ok {
				full[key] = v
			} else {
				full[key] = h.Read()
			}
		}
		if ok, msg := o.Validate(full); !ok {
			return newError(KindOwnerValidation, msg)
		}
	}

	// Phase 5: commit.
	for id, n := range nexusByID {
		n.replaceValue(nexusCandidate[id])
	}

	// Phase 6: notification, shared with the fusion commit path below so
	// that both run the spec's fixed order identically (spec §4.3 step 5,
	// §4.4 phase 6).
	nexusList := make([]*nexus, 0, len(nexusByID))
	for _, n := range nexusByID {
		nexusList = append(nexusList, n)
	}
	affectedHooks := m.notifyCommit(nexusList, cfg.skipListeners)
	record.Affected = len(nexusByID)
	op.Affected = affectedHooks

	return nil
}

// notifyCommit runs Phase 6 (spec §4.4) for every nexus in nexuses, in the
// spec's fixed order: owner invalidation (ReactToChange), hook reactions,
// publisher enqueue, then listeners on every affected hook and every
// affected owner (spec §4.6, §6). It is shared by Submit's per-candidate
// commit and by link/linkMany's fusion commit, which spec §4.3 step 5
// requires run "the usual post-commit notifications... exactly as for a
// normal submission." Returns the hooks notified, for SubmitOp.Affected.
func (m *Manager) notifyCommit(nexuses []*nexus, skipListeners bool) []*Hook {
	ownerKeys := make(map[Owner][]Key)
	seenKey := make(map[Owner]map[Key]bool)
	var affectedHooks []*Hook

	for _, n := range nexuses {
		members := n.memberList()
		affectedHooks = append(affectedHooks, members...)
		for _, h := range members {
			o, ok := h.Owner()
			if !ok {
				continue
			}
			key, ok := h.Key()
			if !ok {
				continue
			}
			if seenKey[o] == nil {
				seenKey[o] = make(map[Key]bool)
			}
			if seenKey[o][key] {
				continue
			}
			seenKey[o][key] = true
			ownerKeys[o] = append(ownerKeys[o], key)
		}
	}

	for o, keys := range ownerKeys {
		m.runOwnerReaction(o, keys)
	}

	for _, n := range nexuses {
		for _, h := range n.reactorList() {
			m.runReaction(h)
		}
	}

	for o, keys := range ownerKeys {
		if m.publisher != nil {
			m.publisher.Enqueue(PublicationEvent{OwnerKeys: keys, Owner: o})
		}
	}
	for _, h := range affectedHooks {
		if _, owned := h.Owner(); owned {
			continue
		}
		if m.publisher != nil {
			m.publisher.Enqueue(PublicationEvent{Hook: h})
		}
	}

	if !skipListeners {
		for _, h := range affectedHooks {
			h.listeners.fire(m.onListenerPanic)
		}
		for o := range ownerKeys {
			for _, fn := range o.Listeners() {
				callListener(fn, m.onListenerPanic)
			}
		}
	}

	return affectedHooks
}

// valuesEqual is equalValues sped up when both sides implement Hashable:
// differing hashes are conclusive, matching hashes still fall back to Equal
// to guard against collisions.
func (m *Manager) valuesEqual(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if ha, ok := a.(Hashable); ok {
		if hb, ok := b.(Hashable); ok && ha.Hash() != hb.Hash() {
			return false
		}
	}
	return equalValues(a, b)
}

func (m *Manager) runReaction(h *Hook) {
	defer func() {
		if r := recover(); r != nil {
			m.onReactionPanic(r)
		}
	}()
	h.reaction(h)
}

func (m *Manager) runOwnerReaction(o Owner, keys []Key) {
	defer func() {
		if r := recover(); r != nil {
			m.onReactionPanic(r)
		}
	}()
	o.ReactToChange(keys)
}

// link fuses a's and b's nexuses (spec §4.3). A no-op if they already share
// one. The fused value is a's current value under UseSelf or b's under
// UseOther; isolated validators of every member on both sides must accept
// it, or the fusion is rejected and neither nexus is touched.
func (m *Manager) link(a, b *Hook, mode LinkMode) error {
	if err := m.guard.enter(); err != nil {
		return err
	}
	defer m.guard.exit()

	for _, ext := range m.extensions {
		ext.BeforeFusion(a, b)
	}

	var fuseErr error
	defer func() {
		for _, ext := range m.extensions {
			ext.AfterFusion(a, b, fuseErr)
		}
	}()

	keeper := a.nexus()
	doomed := b.nexus()
	if keeper.id == doomed.id {
		return nil
	}

	var candidate Value
	if mode == UseSelf {
		candidate = a.Read()
	} else {
		candidate = b.Read()
	}

	if fuseErr = validateFusionCandidate(candidate, keeper, doomed); fuseErr != nil {
		return fuseErr
	}
	if fuseErr = validateFusionOwners(candidate, keeper, doomed); fuseErr != nil {
		return fuseErr
	}

	commitFusion(keeper, doomed, candidate)
	affected := m.notifyCommit([]*nexus{keeper}, false)
	m.trace.record(SubmissionRecord{Fused: true, Affected: len(affected)})
	return nil
}

// linkMany atomically fuses a with every hook in targets, applying mode
// uniformly. UseOther requires every target to currently agree on a value;
// disagreement is rejected without touching any nexus.
func (m *Manager) linkMany(a *Hook, targets []*Hook, mode LinkMode) error {
	if len(targets) == 0 {
		return nil
	}
	if err := m.guard.enter(); err != nil {
		return err
	}
	defer m.guard.exit()

	var candidate Value
	if mode == UseSelf {
		candidate = a.Read()
	} else {
		candidate = targets[0].Read()
		for _, t := range targets[1:] {
			if !equalValues(candidate, t.Read()) {
				return newError(KindFusionRejected, "link_many with UseOther requires all targets to agree on a value")
			}
		}
	}

	keeper := a.nexus()
	doomed := make(map[nexusID]*nexus)
	for _, t := range targets {
		n := t.nexus()
		if n.id != keeper.id {
			doomed[n.id] = n
		}
	}
	if len(doomed) == 0 {
		return nil
	}

	for _, n := range doomed {
		if err := validateFusionCandidate(candidate, keeper, n); err != nil {
			return err
		}
		if err := validateFusionOwners(candidate, keeper, n); err != nil {
			return err
		}
	}

	for _, n := range doomed {
		commitFusion(keeper, n, candidate)
	}
	affected := m.notifyCommit([]*nexus{keeper}, false)
	m.trace.record(SubmissionRecord{Fused: true, Affected: len(affected)})
	return nil
}

func validateFusionCandidate(candidate Value, nexuses ...*nexus) error {
	for _, n := range nexuses {
		for _, h := range n.validatorList() {
			if ok, msg := h.validator(candidate); !ok {
				return newError(KindFusionRejected, msg)
			}
		}
	}
	return nil
}

// validateFusionOwners consults the cross-hook Validate of every owner with
// a member hook among nexuses, under the hypothesis that candidate becomes
// every such member's value post-fusion. A selectionOwner-style owner with
// no per-hook IsolatedValidator at all relies entirely on this check to
// reject a fusion (spec §8 scenario 3).
func validateFusionOwners(candidate Value, nexuses ...*nexus) error {
	fusing := make(map[nexusID]bool, len(nexuses))
	for _, n := range nexuses {
		fusing[n.id] = true
	}

	owners := make(map[Owner]map[Key]*Hook)
	for _, n := range nexuses {
		for _, h := range n.memberList() {
			o, ok := h.Owner()
			if !ok {
				continue
			}
			if _, seen := owners[o]; seen {
				continue
			}
			hooksByKey := make(map[Key]*Hook)
			for _, oh := range o.Hooks() {
				hooksByKey[oh.Key] = oh.Hook
			}
			owners[o] = hooksByKey
		}
	}

	for o, hooksByKey := range owners {
		full := make(map[Key]Value, len(hooksByKey))
		for key, h := range hooksByKey {
			if fusing[h.nexus().id] {
				full[key] = candidate
			} else {
				full[key] = h.Read()
			}
		}
		if ok, msg := o.Validate(full); !ok {
			return newError(KindFusionRejected, msg)
		}
	}
	return nil
}

// commitFusion absorbs doomed into keeper and repoints every hook that used
// to belong to doomed, then installs candidate as keeper's value.
func commitFusion(keeper, doomed *nexus, candidate Value) {
	moved := doomed.memberList()
	keeper.absorb(doomed)
	for _, h := range moved {
		h.n.Store(keeper)
	}
	keeper.replaceValue(candidate)
}

// isolate detaches h into a fresh nexus holding a clone of its current
// value, per the resolved no-op-on-singleton policy (DESIGN.md).
func (m *Manager) isolate(h *Hook) error {
	if err := m.guard.enter(); err != nil {
		return err
	}
	defer m.guard.exit()

	for _, ext := range m.extensions {
		ext.BeforeIsolate(h)
	}

	n := h.nexus()
	if n.memberCount() <= 1 {
		m.trace.record(SubmissionRecord{Isolated: true})
		for _, ext := range m.extensions {
			ext.AfterIsolate(h, nil)
		}
		return nil
	}

	clone := n.snapshotValue()
	fresh := newNexus(clone)
	n.removeMember(h)
	fresh.addMember(h)
	h.n.Store(fresh)
	m.trace.record(SubmissionRecord{Isolated: true, Affected: 1})

	for _, ext := range m.extensions {
		ext.AfterIsolate(h, nil)
	}
	return nil
}

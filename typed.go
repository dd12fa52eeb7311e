package nexus

// Typed wraps a *Hook with a statically-typed accessor surface, grounded on
// the teacher's Controller[T] (controller.go): Get/Peek/Set read like
// Controller's own, re-targeted from "accessor over an executor's resolved
// value" to "accessor over a nexus-held value." It assumes every value ever
// stored in the wrapped hook is a Boxed[T]; submitting a differently-typed
// Value through the hook directly (bypassing Typed) will make Get panic on
// the next call, the same contract Controller[T] has with raw Scope access.
type Typed[T any] struct {
	hook *Hook
}

// NewTyped constructs a hook holding an initial Boxed[T] value and wraps it.
func NewTyped[T any](mgr *Manager, initial T, opts ...HookOption) Typed[T] {
	h := NewHook(mgr, NewBoxed(initial), opts...)
	return Typed[T]{hook: h}
}

// WrapTyped wraps an existing hook known to hold Boxed[T] values.
func WrapTyped[T any](h *Hook) Typed[T] {
	return Typed[T]{hook: h}
}

// Hook returns the underlying untyped hook, e.g. to Link or Isolate it.
func (t Typed[T]) Hook() *Hook { return t.hook }

// Get returns the current committed value.
func (t Typed[T]) Get() T {
	return t.hook.Read().(Boxed[T]).Get()
}

// Peek returns a cloned snapshot of the current value. The clone is as deep
// as the stored Boxed[T]'s clone strategy: values created by NewTyped or Set
// carry no WithClone, so for T holding slices, maps, or pointers the result
// shares them with the hook's value.
func (t Typed[T]) Peek() T {
	return t.hook.Snapshot().(Boxed[T]).Get()
}

// Previous returns the value displaced by the most recent commit.
func (t Typed[T]) Previous() T {
	return t.hook.Previous().(Boxed[T]).Get()
}

// Set submits a new value through the hook's manager.
func (t Typed[T]) Set(v T, opts ...SubmitOption) error {
	return t.hook.Submit(NewBoxed(v), opts...)
}

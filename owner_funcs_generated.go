// FuncOwnerN family, hand-expanded and checked in the way the teacher checks
// in executor_generated.go alongside its generator. tools/codegen/main.go
// prints only the struct declarations; the constructors and Owner methods
// below are maintained by hand in this file.

package nexus

// FuncOwner2 derives a single output from two inputs whenever either input
// changes (spec §4.5's "function observable"). Grounded on the teacher's
// arity-generated Derive1..DeriveN (executor_generated.go).
type FuncOwner2[A, B, R any] struct {
	OwnerListeners

	in0, in1, out *Hook
	compute       func(A, B) R
}

const (
	keyIn0 Key = "in0"
	keyIn1 Key = "in1"
	keyIn2 Key = "in2"
	keyIn3 Key = "in3"
	keyOut Key = "out"
)

// NewFuncOwner2 builds three hooks — two inputs and one derived output —
// registers them against mgr under a shared FuncOwner2, and returns typed
// wrappers for all three.
func NewFuncOwner2[A, B, R any](mgr *Manager, a A, b B, compute func(A, B) R) (*FuncOwner2[A, B, R], Typed[A], Typed[B], Typed[R]) {
	o := &FuncOwner2[A, B, R]{compute: compute}
	o.in0 = NewHook(mgr, NewBoxed(a), WithOwner(o, keyIn0))
	o.in1 = NewHook(mgr, NewBoxed(b), WithOwner(o, keyIn1))
	o.out = NewHook(mgr, NewBoxed(compute(a, b)), WithOwner(o, keyOut))
	return o, WrapTyped[A](o.in0), WrapTyped[B](o.in1), WrapTyped[R](o.out)
}

func (o *FuncOwner2[A, B, R]) Hooks() []OwnerHook {
	return []OwnerHook{{Key: keyIn0, Hook: o.in0}, {Key: keyIn1, Hook: o.in1}, {Key: keyOut, Hook: o.out}}
}

func (o *FuncOwner2[A, B, R]) Complete(submitted map[Key]Value) (map[Key]Value, error) {
	if _, ok := submitted[keyOut]; ok {
		return nil, newError(KindCompletionFailure, "out is derived and cannot be submitted directly")
	}
	a := valueOrCurrent(submitted, keyIn0, o.in0).(Boxed[A]).Get()
	b := valueOrCurrent(submitted, keyIn1, o.in1).(Boxed[B]).Get()
	return map[Key]Value{keyOut: NewBoxed(o.compute(a, b))}, nil
}

func (o *FuncOwner2[A, B, R]) Validate(map[Key]Value) (bool, string) { return true, "" }
func (o *FuncOwner2[A, B, R]) ReactToChange([]Key)                   {}

// FuncOwner3 derives a single output from three inputs. Grounded on the
// same Derive-arity pattern as FuncOwner2.
type FuncOwner3[A, B, C, R any] struct {
	OwnerListeners

	in0, in1, in2, out *Hook
	compute            func(A, B, C) R
}

func NewFuncOwner3[A, B, C, R any](mgr *Manager, a A, b B, c C, compute func(A, B, C) R) (*FuncOwner3[A, B, C, R], Typed[A], Typed[B], Typed[C], Typed[R]) {
	o := &FuncOwner3[A, B, C, R]{compute: compute}
	o.in0 = NewHook(mgr, NewBoxed(a), WithOwner(o, keyIn0))
	o.in1 = NewHook(mgr, NewBoxed(b), WithOwner(o, keyIn1))
	o.in2 = NewHook(mgr, NewBoxed(c), WithOwner(o, keyIn2))
	o.out = NewHook(mgr, NewBoxed(compute(a, b, c)), WithOwner(o, keyOut))
	return o, WrapTyped[A](o.in0), WrapTyped[B](o.in1), WrapTyped[C](o.in2), WrapTyped[R](o.out)
}

func (o *FuncOwner3[A, B, C, R]) Hooks() []OwnerHook {
	return []OwnerHook{
		{Key: keyIn0, Hook: o.in0}, {Key: keyIn1, Hook: o.in1},
		{Key: keyIn2, Hook: o.in2}, {Key: keyOut, Hook: o.out},
	}
}

func (o *FuncOwner3[A, B, C, R]) Complete(submitted map[Key]Value) (map[Key]Value, error) {
	if _, ok := submitted[keyOut]; ok {
		return nil, newError(KindCompletionFailure, "out is derived and cannot be submitted directly")
	}
	a := valueOrCurrent(submitted, keyIn0, o.in0).(Boxed[A]).Get()
	b := valueOrCurrent(submitted, keyIn1, o.in1).(Boxed[B]).Get()
	c := valueOrCurrent(submitted, keyIn2, o.in2).(Boxed[C]).Get()
	return map[Key]Value{keyOut: NewBoxed(o.compute(a, b, c))}, nil
}

func (o *FuncOwner3[A, B, C, R]) Validate(map[Key]Value) (bool, string) { return true, "" }
func (o *FuncOwner3[A, B, C, R]) ReactToChange([]Key)                   {}

// FuncOwner4 derives a single output from four inputs. Grounded on the same
// Derive-arity pattern as FuncOwner2/FuncOwner3.
type FuncOwner4[A, B, C, D, R any] struct {
	OwnerListeners

	in0, in1, in2, in3, out *Hook
	compute                 func(A, B, C, D) R
}

func NewFuncOwner4[A, B, C, D, R any](mgr *Manager, a A, b B, c C, d D, compute func(A, B, C, D) R) (*FuncOwner4[A, B, C, D, R], Typed[A], Typed[B], Typed[C], Typed[D], Typed[R]) {
	o := &FuncOwner4[A, B, C, D, R]{compute: compute}
	o.in0 = NewHook(mgr, NewBoxed(a), WithOwner(o, keyIn0))
	o.in1 = NewHook(mgr, NewBoxed(b), WithOwner(o, keyIn1))
	o.in2 = NewHook(mgr, NewBoxed(c), WithOwner(o, keyIn2))
	o.in3 = NewHook(mgr, NewBoxed(d), WithOwner(o, keyIn3))
	o.out = NewHook(mgr, NewBoxed(compute(a, b, c, d)), WithOwner(o, keyOut))
	return o, WrapTyped[A](o.in0), WrapTyped[B](o.in1), WrapTyped[C](o.in2), WrapTyped[D](o.in3), WrapTyped[R](o.out)
}

func (o *FuncOwner4[A, B, C, D, R]) Hooks() []OwnerHook {
	return []OwnerHook{
		{Key: keyIn0, Hook: o.in0}, {Key: keyIn1, Hook: o.in1},
		{Key: keyIn2, Hook: o.in2}, {Key: keyIn3, Hook: o.in3}, {Key: keyOut, Hook: o.out},
	}
}

func (o *FuncOwner4[A, B, C, D, R]) Complete(submitted map[Key]Value) (map[Key]Value, error) {
	if _, ok := submitted[keyOut]; ok {
		return nil, newError(KindCompletionFailure, "out is derived and cannot be submitted directly")
	}
	a := valueOrCurrent(submitted, keyIn0, o.in0).(Boxed[A]).Get()
	b := valueOrCurrent(submitted, keyIn1, o.in1).(Boxed[B]).Get()
	c := valueOrCurrent(submitted, keyIn2, o.in2).(Boxed[C]).Get()
	d := valueOrCurrent(submitted, keyIn3, o.in3).(Boxed[D]).Get()
	return map[Key]Value{keyOut: NewBoxed(o.compute(a, b, c, d))}, nil
}

func (o *FuncOwner4[A, B, C, D, R]) Validate(map[Key]Value) (bool, string) { return true, "" }
func (o *FuncOwner4[A, B, C, D, R]) ReactToChange([]Key)                   {}

// valueOrCurrent returns the submitted candidate for key if present,
// otherwise h's current committed value.
func valueOrCurrent(submitted map[Key]Value, key Key, h *Hook) Value {
	if v, ok := submitted[key]; ok {
		return v
	}
	return h.Read()
}

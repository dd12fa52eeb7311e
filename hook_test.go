package nexus

import "testing"

func TestSubmitEqualityShortCircuit(t *testing.T) {
	mgr := NewManager()
	h := NewHook(mgr, NewBoxed(5))

	fired := false
	h.AddListener(func() { fired = true })

	if err := h.Submit(NewBoxed(5)); err != nil {
		t.Fatalf("submit of an equal value should succeed: %v", err)
	}
	if fired {
		t.Errorf("equality short-circuit must not fire listeners")
	}
}

func TestSubmitCommitsAndFiresListener(t *testing.T) {
	mgr := NewManager()
	h := NewHook(mgr, NewBoxed(5))

	var seen int
	h.AddListener(func() { seen++ })

	if err := h.Submit(NewBoxed(9)); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if h.Read().(Boxed[int]).Get() != 9 {
		t.Errorf("expected committed value 9, got %v", h.Read())
	}
	if seen != 1 {
		t.Errorf("expected listener to fire exactly once, fired %d times", seen)
	}
}

func TestIsolatedValidatorRejectsCandidate(t *testing.T) {
	mgr := NewManager()
	positive := func(candidate Value) (bool, string) {
		if candidate.(Boxed[int]).Get() <= 0 {
			return false, "must be positive"
		}
		return true, ""
	}
	h := NewHook(mgr, NewBoxed(1), WithValidator(positive))

	err := h.Submit(NewBoxed(-1))
	if err == nil {
		t.Fatalf("expected validation error")
	}
	var ce *CoreError
	if !castCoreError(err, &ce) || ce.Kind != KindIsolatedValidation {
		t.Errorf("expected KindIsolatedValidation, got %v", err)
	}
	if h.Read().(Boxed[int]).Get() != 1 {
		t.Errorf("rejected submit must not change the hook's value")
	}
}

func TestPreviousTracksDisplacedValue(t *testing.T) {
	mgr := NewManager()
	h := NewHook(mgr, NewBoxed(1))

	if err := h.Submit(NewBoxed(2)); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if h.Previous().(Boxed[int]).Get() != 1 {
		t.Errorf("expected previous value 1, got %v", h.Previous())
	}
}

func TestDetachOwnerStopsCompletion(t *testing.T) {
	mgr := NewManager()
	o, xTyped, yTyped := newTestSumOwner(mgr, 1, 2)

	o.x.DetachOwner()
	if err := xTyped.Set(10); err != nil {
		t.Fatalf("submit after detach failed: %v", err)
	}
	if yTyped.Get() != 2 {
		t.Errorf("expected y untouched after owner detached, got %d", yTyped.Get())
	}
}

func TestRehomeSwapsOwnerWithoutTouchingValue(t *testing.T) {
	mgr := NewManager()
	o1, _, _ := newTestSumOwner(mgr, 1, 2)
	o2, _, _ := newTestSumOwner(mgr, 10, 20)
	nexusBefore := o1.x.NexusID()

	o1.x.Rehome(o2, testKeyX)

	owner, ok := o1.x.Owner()
	if !ok || owner != Owner(o2) {
		t.Fatalf("expected o1.x to be owned by o2 after Rehome, got %v, %v", owner, ok)
	}
	key, ok := o1.x.Key()
	if !ok || key != testKeyX {
		t.Errorf("expected o1.x's key to remain %q after Rehome, got %q", testKeyX, key)
	}
	if o1.x.Read().(Boxed[int]).Get() != 1 {
		t.Errorf("Rehome must not touch the hook's value, got %v", o1.x.Read())
	}
	if o1.x.NexusID() != nexusBefore {
		t.Errorf("Rehome must not touch the hook's nexus")
	}

	// o1 no longer considers x one of its own hooks for completion purposes:
	// submitting x alone must not derive a value for o1.y.
	if err := o1.x.Submit(NewBoxed(99)); err != nil {
		t.Fatalf("submit after rehome failed: %v", err)
	}
	if o1.y.Read().(Boxed[int]).Get() != 2 {
		t.Errorf("expected o1.y untouched since x no longer belongs to o1, got %v", o1.y.Read())
	}
}

func castCoreError(err error, out **CoreError) bool {
	ce, ok := err.(*CoreError)
	if !ok {
		return false
	}
	*out = ce
	return true
}

// testSumOwner is a minimal x+y=100 completion owner for the root package's
// internal test suite: submitting x alone derives y = 100 - x.
type testSumOwner struct {
	OwnerListeners

	x, y *Hook
}

const (
	testKeyX Key = "x"
	testKeyY Key = "y"
)

func newTestSumOwner(mgr *Manager, x, y int) (*testSumOwner, Typed[int], Typed[int]) {
	o := &testSumOwner{}
	o.x = NewHook(mgr, NewBoxed(x), WithOwner(o, testKeyX))
	o.y = NewHook(mgr, NewBoxed(y), WithOwner(o, testKeyY))
	return o, WrapTyped[int](o.x), WrapTyped[int](o.y)
}

func (o *testSumOwner) Hooks() []OwnerHook {
	return []OwnerHook{{Key: testKeyX, Hook: o.x}, {Key: testKeyY, Hook: o.y}}
}

func (o *testSumOwner) Complete(submitted map[Key]Value) (map[Key]Value, error) {
	if v, ok := submitted[testKeyX]; ok {
		if _, yOk := submitted[testKeyY]; !yOk {
			x := v.(Boxed[int]).Get()
			return map[Key]Value{testKeyY: NewBoxed(100 - x)}, nil
		}
	}
	return nil, nil
}

func (o *testSumOwner) Validate(map[Key]Value) (bool, string) { return true, "" }
func (o *testSumOwner) ReactToChange([]Key)                   {}

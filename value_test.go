package nexus

import "testing"

func TestBoxedEqualDefault(t *testing.T) {
	a := NewBoxed(5)
	b := NewBoxed(5)
	c := NewBoxed(6)

	if !a.Equal(b) {
		t.Errorf("expected Boxed(5) == Boxed(5)")
	}
	if a.Equal(c) {
		t.Errorf("expected Boxed(5) != Boxed(6)")
	}
}

func TestBoxedEqualCustom(t *testing.T) {
	caseInsensitive := func(a, b string) bool {
		return len(a) == len(b) // deliberately loose, just to prove override wins
	}
	a := NewBoxed("ab", WithEqual(caseInsensitive))
	b := NewBoxed("xy", WithEqual(caseInsensitive))

	if !a.Equal(b) {
		t.Errorf("expected custom equality to accept same-length strings")
	}
}

func TestBoxedCloneIndependence(t *testing.T) {
	cloneSlice := func(s []int) []int {
		out := make([]int, len(s))
		copy(out, s)
		return out
	}
	original := []int{1, 2, 3}
	boxed := NewBoxed(original, WithClone(cloneSlice))

	cloned := boxed.Clone().(Boxed[[]int])
	cloned.Get()[0] = 99

	if boxed.Get()[0] == 99 {
		t.Errorf("mutating the clone's slice mutated the original")
	}
}

func TestBoxedHashDefaultConsistentWithEqual(t *testing.T) {
	a := NewBoxed(5)
	b := NewBoxed(5)
	c := NewBoxed(6)

	if a.Hash() != b.Hash() {
		t.Errorf("expected equal Boxed values to hash equal")
	}
	if a.Hash() == c.Hash() {
		t.Errorf("expected Boxed(5) and Boxed(6) to hash differently (not guaranteed, but true for the default strategy)")
	}
	var _ Hashable = a
}

func TestBoxedHashCustom(t *testing.T) {
	lengthHash := func(s string) uint64 { return uint64(len(s)) }
	a := NewBoxed("ab", WithHash(lengthHash))
	b := NewBoxed("xy", WithHash(lengthHash))

	if a.Hash() != b.Hash() {
		t.Errorf("expected custom hash strategy to be used")
	}
}

func TestManagerValuesEqualUsesHashFastPath(t *testing.T) {
	mgr := NewManager()
	a := NewBoxed(5)
	b := NewBoxed(6)
	if mgr.valuesEqual(a, b) {
		t.Errorf("expected differing Boxed values to compare unequal")
	}
	if !mgr.valuesEqual(a, NewBoxed(5)) {
		t.Errorf("expected equal Boxed values to compare equal")
	}
}

func TestEqualValuesNilHandling(t *testing.T) {
	if !equalValues(nil, nil) {
		t.Errorf("nil == nil should hold")
	}
	if equalValues(nil, NewBoxed(1)) {
		t.Errorf("nil != non-nil should hold")
	}
	if equalValues(NewBoxed(1), nil) {
		t.Errorf("non-nil != nil should hold")
	}
}

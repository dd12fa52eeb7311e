package nexus

import "testing"

func TestSnapshotGroupsFusedHooks(t *testing.T) {
	mgr := NewManager()
	a := NewHook(mgr, NewBoxed(1))
	b := NewHook(mgr, NewBoxed(2))
	c := NewHook(mgr, NewBoxed(3))

	if err := a.Link(b, UseSelf); err != nil {
		t.Fatalf("link failed: %v", err)
	}

	topo := Snapshot([]*Hook{a, b, c})
	if len(topo.Groups) != 2 {
		t.Fatalf("expected 2 groups (a+b, c), got %d", len(topo.Groups))
	}

	sizes := map[int]int{}
	for _, g := range topo.Groups {
		sizes[len(g)]++
	}
	if sizes[2] != 1 || sizes[1] != 1 {
		t.Errorf("expected one group of size 2 and one of size 1, got sizes %v", sizes)
	}
}

func TestSnapshotDedupsSharedRoot(t *testing.T) {
	mgr := NewManager()
	a := NewHook(mgr, NewBoxed(1))
	b := NewHook(mgr, NewBoxed(2))
	if err := a.Link(b, UseSelf); err != nil {
		t.Fatalf("link failed: %v", err)
	}

	topo := Snapshot([]*Hook{a, b})
	if len(topo.Groups) != 1 {
		t.Errorf("expected a and b to collapse into a single group, got %d", len(topo.Groups))
	}
}

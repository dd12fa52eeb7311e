package schema

import (
	"testing"

	"github.com/nexusfabric/nexus"
)

func TestRangeAcceptsWithinBoundsRejectsOutside(t *testing.T) {
	v := Range(1, 10)

	if ok, _ := v(nexus.NewBoxed(5)); !ok {
		t.Errorf("expected 5 to be within [1,10]")
	}
	if ok, _ := v(nexus.NewBoxed(0)); ok {
		t.Errorf("expected 0 to be rejected, below minimum")
	}
	if ok, _ := v(nexus.NewBoxed(11)); ok {
		t.Errorf("expected 11 to be rejected, above maximum")
	}
}

func TestRangeRejectsWrongType(t *testing.T) {
	v := Range(1, 10)
	if ok, msg := v(nexus.NewBoxed("oops")); ok || msg == "" {
		t.Errorf("expected a type-mismatched candidate to be rejected with a message")
	}
}

func TestOneOfMembership(t *testing.T) {
	v := OneOf("red", "green", "blue")

	if ok, _ := v(nexus.NewBoxed("green")); !ok {
		t.Errorf("expected green to be accepted")
	}
	if ok, _ := v(nexus.NewBoxed("yellow")); ok {
		t.Errorf("expected yellow to be rejected, not a member")
	}
}

func TestStringLengthBounds(t *testing.T) {
	v := StringLength(2, 5)

	if ok, _ := v(nexus.NewBoxed("ab")); !ok {
		t.Errorf("expected length 2 to be accepted at the minimum")
	}
	if ok, _ := v(nexus.NewBoxed("a")); ok {
		t.Errorf("expected length 1 to be rejected, below minimum")
	}
	if ok, _ := v(nexus.NewBoxed("toolongstring")); ok {
		t.Errorf("expected an over-length string to be rejected")
	}
}

func TestStringLengthUnboundedMax(t *testing.T) {
	v := StringLength(1, 0)
	if ok, _ := v(nexus.NewBoxed("arbitrarily long but still fine")); !ok {
		t.Errorf("expected max<=0 to mean unbounded")
	}
}

func TestSchemaValidatorsWireIntoHookSubmission(t *testing.T) {
	mgr := nexus.NewManager()
	h := nexus.NewHook(mgr, nexus.NewBoxed(5), nexus.WithValidator(Range(0, 10)))

	if err := h.Submit(nexus.NewBoxed(7)); err != nil {
		t.Fatalf("expected 7 to be accepted: %v", err)
	}
	if err := h.Submit(nexus.NewBoxed(100)); err == nil {
		t.Fatalf("expected 100 to be rejected by the schema.Range validator")
	}
}

// Package schema builds IsolatedValidator closures for common numeric,
// string, and enum constraints, so callers don't hand-write the same
// range/membership checks on every hook. Grounded on the teacher's
// pkg/schema (Schema interface, StringSchema/NumberSchema.Validate),
// re-targeted from "validate a decoded value" to "validate a candidate
// before it is accepted into a nexus."
package schema

import (
	"fmt"

	"github.com/nexusfabric/nexus"
)

// Range builds a validator rejecting any Boxed[T] candidate outside
// [min, max], inclusive.
func Range[T int | int64 | float64](min, max T) nexus.IsolatedValidator {
	return func(candidate nexus.Value) (bool, string) {
		b, ok := candidate.(nexus.Boxed[T])
		if !ok {
			return false, fmt.Sprintf("schema: candidate is not a %T", min)
		}
		v := b.Get()
		if v < min || v > max {
			return false, fmt.Sprintf("schema: value %v outside range [%v, %v]", v, min, max)
		}
		return true, ""
	}
}

// OneOf builds a validator accepting only candidates equal to one of
// allowed.
func OneOf[T comparable](allowed ...T) nexus.IsolatedValidator {
	set := make(map[T]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	return func(candidate nexus.Value) (bool, string) {
		b, ok := candidate.(nexus.Boxed[T])
		if !ok {
			return false, fmt.Sprintf("schema: candidate is not a %T", *new(T))
		}
		if _, ok := set[b.Get()]; !ok {
			return false, fmt.Sprintf("schema: value %v not one of %v", b.Get(), allowed)
		}
		return true, ""
	}
}

// StringLength builds a validator rejecting any Boxed[string] candidate
// whose length falls outside [min, max]. max <= 0 means unbounded.
func StringLength(min, max int) nexus.IsolatedValidator {
	return func(candidate nexus.Value) (bool, string) {
		b, ok := candidate.(nexus.Boxed[string])
		if !ok {
			return false, "schema: candidate is not a string"
		}
		n := len(b.Get())
		if n < min {
			return false, fmt.Sprintf("schema: string length %d below minimum %d", n, min)
		}
		if max > 0 && n > max {
			return false, fmt.Sprintf("schema: string length %d above maximum %d", n, max)
		}
		return true, ""
	}
}

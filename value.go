package nexus

import (
	"fmt"
	"hash/fnv"
	"reflect"
)

// Value is the opaque, equality-comparable, deep-clonable payload stored in
// a nexus. Implementations must make Equal a pure structural comparison and
// Clone a semantically independent copy: mutating the result of Clone must
// never be observable through the original.
type Value interface {
	// Equal reports whether v and other carry the same logical content.
	Equal(other Value) bool
	// Clone returns an independent copy.
	Clone() Value
}

// Hashable is an optional capability a Value may implement so that
// containers (caches, dedup sets) can key on it cheaply instead of falling
// back to Equal for every comparison.
type Hashable interface {
	Hash() uint64
}

// CloneFunc deep-copies a T. Supply one via WithClone when T contains
// pointers, slices, or maps that must not alias the original after Clone.
type CloneFunc[T any] func(T) T

// EqualFunc compares two T for structural equality. Supply one via WithEqual
// to override the default (reflect.DeepEqual).
type EqualFunc[T any] func(a, b T) bool

// HashFunc computes a fingerprint for a T, consistent with some EqualFunc:
// equal values must hash equal. Supply one via WithHash when the default
// (FNV-1a over fmt.Sprintf("%#v", v)) is too slow, or collides too often, for
// T.
type HashFunc[T any] func(T) uint64

// Boxed adapts a plain Go value of type T into a Value, for payloads that
// don't want to hand-write Equal/Clone themselves. It is the default
// concrete Value used by Typed[T] and by the examples/tests in this module.
type Boxed[T any] struct {
	v     T
	clone CloneFunc[T]
	eq    EqualFunc[T]
	hash  HashFunc[T]
}

// BoxOption configures a Boxed[T] at construction.
type BoxOption[T any] func(*Boxed[T])

// WithClone overrides the default clone strategy.
func WithClone[T any](fn CloneFunc[T]) BoxOption[T] {
	return func(b *Boxed[T]) { b.clone = fn }
}

// WithEqual overrides the default equality strategy.
func WithEqual[T any](fn EqualFunc[T]) BoxOption[T] {
	return func(b *Boxed[T]) { b.eq = fn }
}

// WithHash overrides the default hash strategy. fn must be consistent with
// whatever equality Boxed[T] ends up using: a and b equal implies fn(a) ==
// fn(b).
func WithHash[T any](fn HashFunc[T]) BoxOption[T] {
	return func(b *Boxed[T]) { b.hash = fn }
}

// NewBoxed wraps v as a Value. By default, equality is reflect.DeepEqual and
// clone is a shallow Go copy, which is exact for any T with no reference
// fields (ints, strings, arrays of such, plain structs of such). Payloads
// holding slices/maps/pointers should supply WithClone.
func NewBoxed[T any](v T, opts ...BoxOption[T]) Boxed[T] {
	b := Boxed[T]{v: v}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// Get returns the wrapped payload.
func (b Boxed[T]) Get() T {
	return b.v
}

func (b Boxed[T]) Equal(other Value) bool {
	o, ok := other.(Boxed[T])
	if !ok {
		return false
	}
	if b.eq != nil {
		return b.eq(b.v, o.v)
	}
	return reflect.DeepEqual(b.v, o.v)
}

func (b Boxed[T]) Clone() Value {
	if b.clone != nil {
		return Boxed[T]{v: b.clone(b.v), clone: b.clone, eq: b.eq, hash: b.hash}
	}
	return b
}

// Hash implements Hashable. The default strategy formats v with "%#v" and
// runs it through FNV-1a; it is consistent with the default Equal
// (reflect.DeepEqual) but is a poor fit for T whose "%#v" rendering doesn't
// reflect logical identity (e.g. a pointer-containing struct) — supply
// WithHash in that case.
func (b Boxed[T]) Hash() uint64 {
	if b.hash != nil {
		return b.hash(b.v)
	}
	h := fnv.New64a()
	fmt.Fprintf(h, "%#v", b.v)
	return h.Sum64()
}

// equalValues is the structural-equality check the submission pipeline uses
// in Phase 1 and in conflict detection: both nil is equal, exactly one nil
// is not, otherwise delegate to Value.Equal.
func equalValues(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

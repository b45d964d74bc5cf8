// Package flagset stores a combination of named single-bit flags in one
// fixed-width unsigned integer.
//
// A flag type is declared the usual way:
//
//	type Property uint16
//
//	const (
//		Assoc Property = 1 << iota
//		Comm
//		Idem
//	)
//
// and combined into a Set[Property]. Sets are values: every operation returns
// a new Set and leaves its receiver untouched. Compound flags are kept as Set
// variables, not as constants of the flag type, so a switch over the flag type
// only has to cover the single-bit variants.
package flagset

import (
	"golang.org/x/exp/constraints"
	"unsafe"
)

// Set is a combination of flags of type F. The zero value is the empty set.
// Sets are comparable with ==.
type Set[F constraints.Unsigned] struct {
	bits F
}

// Of returns the set containing exactly the given flags.
func Of[F constraints.Unsigned](flags ...F) Set[F] {
	var s Set[F]
	for _, flag := range flags {
		s.bits = SetBits(s.bits, flag)
	}
	return s
}

// FromBits wraps a raw value. Every bit pattern is a valid set.
func FromBits[F constraints.Unsigned](bits F) Set[F] {
	return Set[F]{bits: bits}
}

// Union returns the union of all given sets.
func Union[F constraints.Unsigned](sets ...Set[F]) Set[F] {
	var s Set[F]
	for _, o := range sets {
		s.bits |= o.bits
	}
	return s
}

// Bits returns the underlying value.
func (s Set[F]) Bits() F { return s.bits }

// Union returns the set of flags present in s or o.
func (s Set[F]) Union(o Set[F]) Set[F] { return Set[F]{bits: s.bits | o.bits} }

// With returns s with the given flags added.
func (s Set[F]) With(flags ...F) Set[F] { return s.Union(Of(flags...)) }

// Without returns s with the given flags removed.
func (s Set[F]) Without(flags ...F) Set[F] {
	return Set[F]{bits: ClearBits(s.bits, Of(flags...).bits)}
}

// Toggle returns s with the given flags flipped.
func (s Set[F]) Toggle(flags ...F) Set[F] {
	return Set[F]{bits: ToggleBits(s.bits, Of(flags...).bits)}
}

// Intersect returns the set of flags present in both s and o.
func (s Set[F]) Intersect(o Set[F]) Set[F] { return Set[F]{bits: s.bits & o.bits} }

// Difference returns the flags of s that are not in o.
func (s Set[F]) Difference(o Set[F]) Set[F] { return Set[F]{bits: ClearBits(s.bits, o.bits)} }

// IsSet reports whether flag is present in s. For a value with several bits
// it is true if any of them is present; use ContainsAll for the strict test.
func (s Set[F]) IsSet(flag F) bool { return HasAny(s.bits, flag) }

// ContainsAny reports whether at least one flag of o is also in s.
// It is false for an empty o.
func (s Set[F]) ContainsAny(o Set[F]) bool { return HasAny(s.bits, o.bits) }

// ContainsAll reports whether every flag of o is also in s.
// It is true for an empty o.
func (s Set[F]) ContainsAll(o Set[F]) bool { return HasAll(s.bits, o.bits) }

// IsEmpty reports whether no flag is set.
func (s Set[F]) IsEmpty() bool { return s.bits == 0 }

// Len returns the number of set bits.
func (s Set[F]) Len() int { return onesCount(s.bits) }

// Flags returns the single-bit values present in s, lowest bit first.
func (s Set[F]) Flags() []F {
	flags := make([]F, 0, s.Len())
	for rest := s.bits; rest != 0; rest &= rest - 1 {
		flags = append(flags, rest&-rest)
	}
	return flags
}

// width returns the size of F in bytes.
func width[F constraints.Unsigned]() int {
	var zero F
	return int(unsafe.Sizeof(zero))
}

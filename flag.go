package flagset

import (
	"golang.org/x/exp/constraints"
	"math/bits"
)

// SetBits returns b with the bits of flag set.
func SetBits[T constraints.Unsigned](b, flag T) T { return b | flag }

// ClearBits returns b with the bits of flag cleared.
func ClearBits[T constraints.Unsigned](b, flag T) T { return b &^ flag }

// ToggleBits returns b with the bits of flag flipped.
func ToggleBits[T constraints.Unsigned](b, flag T) T { return b ^ flag }

// HasAny reports whether at least one bit of flag is set in b.
func HasAny[T constraints.Unsigned](b, flag T) bool { return b&flag != 0 }

// HasAll reports whether every bit of flag is set in b. It is true for flag == 0.
func HasAll[T constraints.Unsigned](b, flag T) bool { return b&flag == flag }

// IsSingleBit reports whether v is a power of two.
func IsSingleBit[T constraints.Unsigned](v T) bool { return v != 0 && v&(v-1) == 0 }

func onesCount[T constraints.Unsigned](v T) int { return bits.OnesCount64(uint64(v)) }

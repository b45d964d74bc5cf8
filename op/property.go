// Package op declares the algebraic properties of binary operators and the
// passes a printer runs over an operator expression, as flag sets.
package op

import "flagset"

type Property uint16

const (
	// associative: (a op b) op c == a op (b op c)
	Assoc Property = 1 << iota
	// commutative: a op b == b op a
	Comm
	// has a left identity e: e op a == a
	LeftID
	// has a right identity e: a op e == a
	RightID
	// idempotent: a op a == a
	Idem
)

// Properties is a set of Property flags.
type Properties = flagset.Set[Property]

var (
	// Axioms holds every property; an operator with all of them is a
	// semilattice with identity.
	Axioms = flagset.Of(Assoc, Comm, LeftID, RightID, Idem)

	// Monoid is the set required for an operator to form a monoid.
	Monoid = flagset.Of(Assoc, LeftID, RightID)
)

var PropertyNames = flagset.MustEnum(
	flagset.Name[Property]{Flag: Assoc, Label: "assoc"},
	flagset.Name[Property]{Flag: Comm, Label: "comm"},
	flagset.Name[Property]{Flag: LeftID, Label: "left-id"},
	flagset.Name[Property]{Flag: RightID, Label: "right-id"},
	flagset.Name[Property]{Flag: Idem, Label: "idem"},
)

func (p Property) String() string {
	switch p {
	case Assoc:
		return "Assoc"
	case Comm:
		return "Comm"
	case LeftID:
		return "LeftID"
	case RightID:
		return "RightID"
	case Idem:
		return "Idem"
	}
	return "Property(" + PropertyNames.Label(p) + ")"
}

// IsMonoid reports whether props make an operator a monoid.
func IsMonoid(props Properties) bool {
	return props.ContainsAll(Monoid)
}

// Reorderable reports whether operands may be regrouped or swapped, which
// needs at least one of Assoc and Comm.
func Reorderable(props Properties) bool {
	return props.ContainsAny(flagset.Of(Assoc, Comm))
}

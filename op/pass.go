package op

import "flagset"

type Pass uint8

const (
	Prec   Pass = 1 << iota // resolve precedence
	Gather                  // gather operands of associative chains
	Format                  // lay out text
)

// Passes is a set of Pass flags.
type Passes = flagset.Set[Pass]

// AllPasses runs every pass in order.
var AllPasses = flagset.Of(Prec, Gather, Format)

var PassNames = flagset.MustEnum(
	flagset.Name[Pass]{Flag: Prec, Label: "prec"},
	flagset.Name[Pass]{Flag: Gather, Label: "gather"},
	flagset.Name[Pass]{Flag: Format, Label: "format"},
)

func (p Pass) String() string {
	switch p {
	case Prec:
		return "Prec"
	case Gather:
		return "Gather"
	case Format:
		return "Format"
	}
	return "Pass(" + PassNames.Label(p) + ")"
}

// Needs returns the passes that must run before p.
func (p Pass) Needs() Passes {
	switch p {
	case Gather:
		return flagset.Of(Prec)
	case Format:
		return flagset.Of(Prec, Gather)
	}
	return Passes{}
}

// Ready reports whether every pass p needs is in done.
func (p Pass) Ready(done Passes) bool {
	return done.ContainsAll(p.Needs())
}

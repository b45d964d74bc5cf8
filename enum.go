package flagset

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
	"strconv"
	"strings"
)

// separators split the labels of a formatted set.
const separators = "|, \t\r\n"

var (
	ErrEmptyEnum     = errors.New("enum has no flags")
	ErrEmptyName     = errors.New("flag name is empty")
	ErrBadName       = errors.New("flag name is not parseable")
	ErrNotSingleBit  = errors.New("flag is not a single bit")
	ErrDuplicateBit  = errors.New("flag bit already named")
	ErrDuplicateName = errors.New("flag name already used")
	ErrUnknownFlag   = errors.New("unknown flag")
)

// Name binds a label to a single-bit flag.
type Name[F constraints.Unsigned] struct {
	Flag  F
	Label string
}

// Enum is the validated, closed list of flags of one type. It is read-only
// after construction.
type Enum[F constraints.Unsigned] struct {
	names  []Name[F]
	labels map[F]string
	flags  map[string]F
	all    F
}

// NewEnum checks that every flag is a distinct power of two with a distinct,
// non-empty label. Labels match case-insensitively when parsing; they may not
// contain separators, be "0" or start with "0x".
func NewEnum[F constraints.Unsigned](names ...Name[F]) (*Enum[F], error) {
	if len(names) == 0 {
		return nil, ErrEmptyEnum
	}
	e := &Enum[F]{
		names:  make([]Name[F], 0, len(names)),
		labels: make(map[F]string, len(names)),
		flags:  make(map[string]F, len(names)),
	}
	for _, n := range names {
		key := strings.ToLower(strings.TrimSpace(n.Label))
		switch {
		case key == "":
			return nil, errors.Wrapf(ErrEmptyName, "flag %#x", uint64(n.Flag))
		case strings.ContainsAny(n.Label, separators), key == "0", strings.HasPrefix(key, "0x"):
			return nil, errors.Wrapf(ErrBadName, "%q", n.Label)
		case !IsSingleBit(n.Flag):
			return nil, errors.Wrapf(ErrNotSingleBit, "%s = %#x", n.Label, uint64(n.Flag))
		case HasAny(e.all, n.Flag):
			return nil, errors.Wrapf(ErrDuplicateBit, "%s = %#x, named %s", n.Label, uint64(n.Flag), e.labels[n.Flag])
		}
		if _, ok := e.flags[key]; ok {
			return nil, errors.Wrap(ErrDuplicateName, n.Label)
		}
		e.all = SetBits(e.all, n.Flag)
		e.labels[n.Flag] = n.Label
		e.flags[key] = n.Flag
		e.names = append(e.names, n)
	}
	return e, nil
}

// MustEnum is like NewEnum but panics on error. It is meant for package-level
// variables.
func MustEnum[F constraints.Unsigned](names ...Name[F]) *Enum[F] {
	e, err := NewEnum(names...)
	if err != nil {
		panic(err)
	}
	return e
}

// Flags returns the flags in declaration order.
func (e *Enum[F]) Flags() []F {
	flags := make([]F, len(e.names))
	for i, n := range e.names {
		flags[i] = n.Flag
	}
	return flags
}

// All returns the set of every declared flag.
func (e *Enum[F]) All() Set[F] { return FromBits(e.all) }

// Label returns the label of flag, or its hex value if flag is not declared.
func (e *Enum[F]) Label(flag F) string {
	if l, ok := e.labels[flag]; ok {
		return l
	}
	return "0x" + strconv.FormatUint(uint64(flag), 16)
}

// Format renders s as labels joined by '|', in declaration order. Bits that
// are not declared are appended as one hex value. The empty set is "0".
func (e *Enum[F]) Format(s Set[F]) string {
	if s.IsEmpty() {
		return "0"
	}
	var sb strings.Builder
	for _, n := range e.names {
		if !s.IsSet(n.Flag) {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('|')
		}
		sb.WriteString(n.Label)
	}
	if rest := ClearBits(s.Bits(), e.all); rest != 0 {
		if sb.Len() > 0 {
			sb.WriteByte('|')
		}
		sb.WriteString("0x" + strconv.FormatUint(uint64(rest), 16))
	}
	return sb.String()
}

// Parse reads a set written as labels separated by '|', ',' or white space.
// "" and "0" are the empty set. Hex values ("0x3") are accepted when they only
// contain declared bits.
func (e *Enum[F]) Parse(text string) (Set[F], error) {
	var s Set[F]
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return strings.ContainsRune(separators, r)
	})
	for _, field := range fields {
		key := strings.ToLower(field)
		if flag, ok := e.flags[key]; ok {
			s = s.With(flag)
			continue
		}
		if key == "0" {
			continue
		}
		if strings.HasPrefix(key, "0x") {
			v, err := strconv.ParseUint(key[2:], 16, width[F]()*8)
			if err != nil {
				return Set[F]{}, errors.Wrapf(ErrUnknownFlag, "%q", field)
			}
			if !HasAll(e.all, F(v)) {
				return Set[F]{}, errors.Wrapf(ErrUnknownFlag, "%q has undeclared bits %#x", field, uint64(ClearBits(F(v), e.all)))
			}
			s = s.Union(FromBits(F(v)))
			continue
		}
		return Set[F]{}, errors.Wrapf(ErrUnknownFlag, "%q", field)
	}
	return s, nil
}

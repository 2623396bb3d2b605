package pickle

import (
	"math/big"
	"strings"
)

// None is an explicit stand-in for Python's None. A bare Go nil
// (nil pointer, nil interface) already encodes as None; None{} is
// useful when a non-nil Go value must still encode as None.
type None struct{}

// Tuple marks a slice as an explicit Python tuple rather than a list.
// Unlike a plain []any, a Tuple of length 0-3 is encoded with the
// dedicated EMPTY_TUPLE/TUPLE1/TUPLE2/TUPLE3 opcodes.
type Tuple []any

// Set marks a slice as an explicit Python set. Order is irrelevant on
// the Python side; the encoder preserves Go's slice order in the
// underlying list literal passed to set(...).
type Set []any

// Char represents a single Python character, encoded as a one
// character Python str rather than a numeric codepoint.
type Char rune

// Text marks a rune slice as an explicit Python str rather than a
// numeric array. Go has no type distinct from []int32 for "array of
// characters", so this wrapper is the nominal marker that stands in
// for a host char[] field.
type Text []rune

// EnumLabeler is implemented by host types that should be encoded as
// a named enumeration value: a plain Python string carrying the
// label, with no further namespacing by the enum's Go type. The label
// is used only for types whose underlying kind is not bool, an
// integer, a float, a string, a slice, an array or a map: a value of
// one of those kinds is encoded by its kind even when its type
// implements EnumLabeler.
type EnumLabeler interface {
	PickleEnumLabel() string
}

// ContractFielder lets a type opt out of field-reflection entirely,
// supplying its own field map and class name. Implementing it gives a
// type the highest-precedence record-like encoding strategy.
type ContractFielder interface {
	// PickleFields returns the field-name -> value map to encode.
	PickleFields() map[string]any
	// PickleClassName returns the "__class__" value to use, or ""
	// to omit the key entirely (e.g. for synthetic/anonymous types).
	PickleClassName() string
}

// Ref represents a Python persistent reference: a pickle.PERSID or
// pickle.BINPERSID payload that a custom unpickler resolves outside
// of the pickle stream itself (e.g. to a row in a database).
type Ref struct {
	Pid any
}

// Decimal is a fixed-point decimal value, encoded as Python's
// decimal.Decimal. It is immutable; construct one with NewDecimal.
type Decimal struct {
	unscaled *big.Int
	scale    int32 // number of digits right of the decimal point
}

// NewDecimal builds a Decimal equal to unscaled * 10^-scale.
func NewDecimal(unscaled *big.Int, scale int32) Decimal {
	if unscaled == nil {
		unscaled = new(big.Int)
	}
	return Decimal{unscaled: new(big.Int).Set(unscaled), scale: scale}
}

// String renders the decimal in the invariant, culture-free textual
// form that Python's decimal.Decimal(str) constructor expects.
func (d Decimal) String() string {
	if d.unscaled == nil {
		return "0"
	}
	neg := d.unscaled.Sign() < 0
	digits := new(big.Int).Abs(d.unscaled).String()

	if d.scale <= 0 {
		s := digits + strings.Repeat("0", int(-d.scale))
		if neg {
			s = "-" + s
		}
		return s
	}

	for int32(len(digits)) <= d.scale {
		digits = "0" + digits
	}
	intPart := digits[:int32(len(digits))-d.scale]
	fracPart := digits[int32(len(digits))-d.scale:]
	s := intPart + "." + fracPart
	if neg {
		s = "-" + s
	}
	return s
}

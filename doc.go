// Package pickle encodes Go values as Python pickle protocol 2 byte
// streams, suitable for a standard CPython (>= 2.3) pickle.loads.
//
// Use Dump or Dumps to serialize a value:
//
//	err := pickle.Dump(v, w)
//	b, err := pickle.Dumps(v)
//
// The following table summarizes the mapping from Go values to the
// Python types a conformant pickle.loads reconstructs:
//
//	Go                         Python
//	--                         ------
//	nil, pickle.None{}         None
//	bool                       bool
//	intX, uintX                int (or long, for uint64 from 1<<63 up)
//	*big.Int                   long
//	float32, float64           float
//	string                     unicode
//	pickle.Char                unicode of length 1
//	[]byte, [N]byte            bytearray
//	[]int8, [N]int8 etc.       array.array
//	pickle.Tuple               tuple
//	[]bool, [N]bool            tuple
//	[]T (slice, not Tuple)     list
//	map[K]V                    dict
//	pickle.Set                 set
//	time.Time                  datetime.datetime
//	time.Duration              datetime.timedelta
//	pickle.Decimal             decimal.Decimal
//	struct, *struct            dict (or a user-registered encoding)
//
// Decoding is out of scope for this package: it only ever writes a
// pickle stream, never reads one back.
//
// # Memoization
//
// Every encoded value that supports hashing is recorded in a memo
// table keyed by the value's identity; seeing the same identity again
// emits a memo reference instead of a full re-encoding. This mirrors
// CPython's own pickler and is what lets pickle streams represent
// shared and (for mutable containers) cyclic structure. See MemoTable
// and WithMemo.
//
// # Struct field selection
//
// A Go struct value (or pointer to one) is encoded as a Python dict,
// built by one of three strategies, tried in order:
//
//  1. If the type implements ContractFielder, its PickleFields method
//     supplies the field map directly and PickleClassName supplies the
//     "__class__" value.
//  2. Else if any field carries a `pickle:"..."` struct tag, every
//     exported field is used, keyed by its Go name, except that a
//     field tagged `pickle:"-"` is dropped and a field with any other
//     tag value is renamed to it.
//  3. Else every exported field is used, keyed by its Go name.
//
// # Custom encoders
//
// Register(typ, handler) installs a handler for a Go type that
// overrides everything except the built-in bool/integer/float/char/
// array encodings, which are never user-overridable. See
// CustomPicklerRegistry.
package pickle

package pickle

import (
	"bytes"
	"io"
	"math/big"
	"reflect"
)

// Session is a single, non-reentrant encode call: it owns the output
// sink, the recursion counter, the memo table, and a reference to the
// custom-encoder registry it was built with. A Session is single-use:
// a second Run returns an InvariantViolationError.
type Session struct {
	e         *emitter
	memo      *MemoTable
	registry  *CustomPicklerRegistry
	depth     int
	persRef   func(v any) (Ref, bool)
	closed    bool
}

// Option configures a Session created by NewSession.
type Option func(*Session)

// WithMemo toggles memoization. It defaults to enabled, matching
// spec.md §6 ("A constructor flag toggles memoization; default is
// enabled").
func WithMemo(enabled bool) Option {
	return func(s *Session) {
		s.memo = newMemoTable(enabled)
	}
}

// WithRegistry overrides the process-wide default custom-encoder
// registry for this session.
func WithRegistry(r *CustomPicklerRegistry) Option {
	return func(s *Session) {
		s.registry = r
	}
}

// WithPersistentRef installs a hook consulted for every pointer-typed
// value, before the pointer-keyed memo check and before
// classification. If it returns ok == true, the value is encoded as a
// persistent reference (BINPERSID) instead of being traversed further.
func WithPersistentRef(fn func(v any) (Ref, bool)) Option {
	return func(s *Session) {
		s.persRef = fn
	}
}

// NewSession creates a Session writing to w.
func NewSession(w io.Writer, opts ...Option) *Session {
	s := &Session{
		e:        newEmitter(w),
		memo:     newMemoTable(true),
		registry: defaultRegistry,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dump writes v's pickle protocol 2 encoding to w.
func Dump(v any, w io.Writer, opts ...Option) error {
	s := NewSession(w, opts...)
	return s.Run(v)
}

// Dumps returns v's pickle protocol 2 encoding.
func Dumps(v any, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := Dump(v, &buf, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Run writes the PROTO header, the encoding of v, and STOP. It is the
// only entry point that manages the protocol header/trailer; Save
// (used by custom handlers to recurse into child values) does not.
func (s *Session) Run(v any) error {
	if s.closed {
		return &InvariantViolationError{Detail: "session reused after Run"}
	}
	defer func() { s.closed = true }()

	if err := s.e.opRaw(opProto, []byte{protocol2}); err != nil {
		return err
	}
	if err := s.Save(v); err != nil {
		return err
	}
	if s.depth != 0 {
		return &InvariantViolationError{Detail: "recursion counter non-zero at session end"}
	}
	return s.e.op(opStop)
}

// Save appends a self-contained protocol-2 fragment encoding v.
// Custom Handler implementations call this to recurse into child
// values; it does not write the PROTO header or STOP trailer.
func (s *Session) Save(v any) error {
	return s.save(reflectValueOf(v))
}

func (s *Session) save(rv reflect.Value) error {
	s.depth++
	if s.depth > recursionCap {
		return &RecursionTooDeepError{Limit: recursionCap}
	}
	defer func() { s.depth-- }()

	// absent/null host value
	if !rv.IsValid() {
		return s.e.op(opNone)
	}

	// unwrap interface boxes transparently; they carry no identity of
	// their own in Go.
	for rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return s.e.op(opNone)
		}
		rv = rv.Elem()
	}

	// *big.Int has Kind() == Ptr like any other pointer, but it must
	// never be treated as a generic pointer-to-struct: it carries no
	// exported fields for public-properties reflection to find, and
	// it is never memoized (spec §9, "not memoized" numeric categories).
	if b, ok := rv.Interface().(*big.Int); ok {
		return s.encodeIntBig(b)
	}

	if rv.Kind() == reflect.Ptr {
		return s.savePointer(rv)
	}

	if _, ok := rv.Interface().(None); ok {
		return s.e.op(opNone)
	}

	cls, err := classify(s.registry, rv)
	if err != nil {
		return err
	}

	key, hashable := memoKeyFor(rv, cls.cat)
	if hashable {
		if hit, err := s.memo.TryGet(s.e, key); err != nil {
			return err
		} else if hit {
			return nil
		}
	}

	return s.dispatch(rv, cls, key, hashable)
}

// savePointer handles the pointer-identity-bearing path: nil check,
// the PersistentRef hook, a pointer-keyed memo lookup, and a
// registry lookup keyed on the pointer type itself (so a handler can
// be registered for *T directly), before finally dereferencing.
func (s *Session) savePointer(rv reflect.Value) error {
	if rv.IsNil() {
		return s.e.op(opNone)
	}

	if s.persRef != nil {
		if ref, ok := s.persRef(rv.Interface()); ok {
			return s.encodeRef(ref)
		}
	}

	ptrKey := memoKey{kind: memoByPointer, cat: catRecordLike, ptr: rv.Pointer(), typ: rv.Type()}
	if hit, err := s.memo.TryGet(s.e, ptrKey); err != nil {
		return err
	} else if hit {
		return nil
	}

	if h, ok := s.registry.lookup(rv.Type()); ok {
		if err := h(s, rv.Interface()); err != nil {
			return err
		}
		return s.memo.Insert(s.e, ptrKey)
	}

	elem := rv.Elem()
	if !elem.IsValid() {
		return s.e.op(opNone)
	}
	if _, ok := elem.Interface().(None); ok {
		return s.e.op(opNone)
	}

	cls, err := classify(s.registry, elem)
	if err != nil {
		return err
	}
	// A pointer to a record-like value keeps the pointer's own
	// identity for the memo, rather than the (unaddressable, by
	// value) identity memoKeyFor would derive from elem.
	if cls.cat == catRecordLike || cls.cat == catCustomOverride {
		return s.dispatch(elem, cls, ptrKey, true)
	}

	key, hashable := memoKeyFor(elem, cls.cat)
	if hashable {
		if hit, err := s.memo.TryGet(s.e, key); err != nil {
			return err
		} else if hit {
			return nil
		}
	}
	return s.dispatch(elem, cls, key, hashable)
}

// dispatch invokes the encoder matching cls and, for categories that
// memoize after emission, records key once the encoder returns.
func (s *Session) dispatch(rv reflect.Value, cls classification, key memoKey, hashable bool) error {
	switch cls.cat {
	case catNone:
		return s.e.op(opNone)
	case catBool:
		return s.encodeBool(rv.Bool())
	case catIntSmall:
		return s.encodeIntSmall(rv)
	case catIntBig:
		return s.encodeIntBig(bigFromUint(rv.Uint()))
	case catFloat:
		return s.encodeFloat(rv.Float())
	case catChar:
		return s.encodeCharAndMemo(rv, key, hashable)
	case catString:
		return s.encodeStringAndMemo(stringOf(rv), key, hashable)
	case catBytes:
		return s.encodeBytesAndMemo(rv, key, hashable)
	case catPrimitiveArray:
		return s.encodePrimitiveArrayAndMemo(rv, cls.typecode, key, hashable)
	case catObjectTuple:
		return s.encodeObjectTuple(rv, key, hashable)
	case catList:
		return s.encodeList(rv, key, hashable)
	case catDict:
		return s.encodeDict(rv, key, hashable)
	case catPyDict:
		return s.encodePyDict(rv.Interface().(Dict), key, hashable)
	case catSet:
		return s.encodeSet(rv, key, hashable)
	case catDateTime:
		return s.encodeDateTimeAndMemo(rv, key, hashable)
	case catTimeDelta:
		return s.encodeTimeDeltaAndMemo(rv, key, hashable)
	case catDecimal:
		return s.encodeDecimalAndMemo(rv, key, hashable)
	case catEnumLabel:
		label := rv.Interface().(EnumLabeler).PickleEnumLabel()
		return s.encodeStringAndMemo(label, key, hashable)
	case catRecordLike:
		return s.encodeRecordAndMemo(rv, cls.strategy, key, hashable)
	case catCustomOverride:
		if err := cls.handler(s, rv.Interface()); err != nil {
			return err
		}
		if hashable {
			return s.memo.Insert(s.e, key)
		}
		return nil
	}
	return &UnpicklableError{Type: rv.Type().String()}
}

func reflectValueOf(v any) reflect.Value {
	if rv, ok := v.(reflect.Value); ok {
		return rv
	}
	return reflect.ValueOf(v)
}

func stringOf(rv reflect.Value) string {
	if rv.Type() == textType {
		return string([]rune(rv.Interface().(Text)))
	}
	return rv.String()
}

func bigFromUint(u uint64) *big.Int {
	return new(big.Int).SetUint64(u)
}

// memoKeyFor derives a memoKey for categories that do not need
// pointer-identity special-casing (that case is handled directly in
// savePointer/encodeRecordAndMemo). Returns hashable == false for
// values with no stable identity to share (a record-like value
// encoded by value rather than by pointer).
func memoKeyFor(rv reflect.Value, cat category) (memoKey, bool) {
	switch cat {
	case catString:
		return memoKey{kind: memoByValue, cat: catString, str: stringOf(rv)}, true
	case catChar:
		return memoKey{kind: memoByValue, cat: catString, str: string(rune(rv.Int()))}, true
	case catEnumLabel:
		label := rv.Interface().(EnumLabeler).PickleEnumLabel()
		return memoKey{kind: memoByValue, cat: catString, str: label}, true
	case catDecimal:
		return memoKey{kind: memoByValue, cat: cat, str: rv.Interface().(Decimal).String()}, true
	case catDateTime, catTimeDelta:
		return memoKey{kind: memoByValue, cat: cat, str: structuralString(rv)}, true
	case catPyDict:
		m := reflect.ValueOf(rv.Interface().(Dict)).Field(0)
		if m.IsNil() {
			return memoKey{}, false
		}
		return memoKey{kind: memoByPointer, cat: cat, ptr: m.Pointer(), typ: rv.Type()}, true
	case catBytes, catPrimitiveArray, catObjectTuple, catList, catDict, catSet, catCustomOverride:
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Map {
			if rv.IsNil() {
				return memoKey{}, false
			}
			return memoKey{kind: memoByPointer, cat: cat, ptr: rv.Pointer(), typ: rv.Type()}, true
		}
		return memoKey{}, false
	default:
		return memoKey{}, false
	}
}

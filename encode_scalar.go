package pickle

import (
	"math"
	"math/big"
	"reflect"
	"strconv"
)

// encodeBool writes NEWTRUE or NEWFALSE. Never memoized: two equal
// booleans always share Python's singleton True/False, so there is
// nothing for a memo slot to deduplicate.
func (s *Session) encodeBool(b bool) error {
	if b {
		return s.e.op(opNewtrue)
	}
	return s.e.op(opNewfalse)
}

// encodeIntSmall dispatches a signed or unsigned Go integer of width
// <= 64 bits to putLong. Never memoized, matching CPython's own
// pickler.
func (s *Session) encodeIntSmall(rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return s.putLong(int64(rv.Uint()))
	default:
		return s.putLong(rv.Int())
	}
}

// putLong picks the narrowest protocol-2 opcode for v, per spec §4.3's
// table: BININT1 for [0,255], BININT2 for [0,65535], BININT for values
// that fit a signed 32-bit word, else the ASCII INT fallback.
func (s *Session) putLong(v int64) error {
	switch {
	case 0 <= v && v <= 0xFF:
		return s.e.opRaw(opBinint1, []byte{byte(v)})
	case 0 <= v && v <= 0xFFFF:
		return s.e.opRaw(opBinint2, []byte{byte(v), byte(v >> 8)})
	case math.MinInt32 <= v && v <= math.MaxInt32:
		return s.e.opRaw(opBinint, putUint32LE(nil, uint32(int32(v))))
	}
	return s.putLongText(strconv.FormatInt(v, 10))
}

func (s *Session) putLongText(decimal string) error {
	if err := s.e.op(opInt); err != nil {
		return err
	}
	return s.e.raw([]byte(decimal + "\n"))
}

// encodeIntBig emits b via the ASCII INT fallback. Pickle's INT opcode
// parser accepts arbitrarily large decimal magnitudes; this is how
// unsigned 64-bit values above the signed-64 range and arbitrary
// *big.Int inputs are represented (spec §4.3 and §9's open question on
// the lenient INT parser).
func (s *Session) encodeIntBig(b *big.Int) error {
	return s.putLongText(b.String())
}

// encodeFloat writes BINFLOAT, an 8-byte big-endian IEEE-754 double.
// Never memoized.
func (s *Session) encodeFloat(f float64) error {
	return s.e.opRaw(opBinfloat, putFloat64BE(nil, f))
}

// encodeStringRaw writes BINUNICODE with no memo bookkeeping; used
// both for the top-level String category and for the many places
// record/global encoders need to push a plain str argument.
func (s *Session) encodeStringRaw(str string) error {
	b := []byte(str)
	if err := s.e.opRaw(opBinunicode, putUint32LE(nil, uint32(len(b)))); err != nil {
		return err
	}
	return s.e.raw(b)
}

// encodeStringAndMemo writes BINUNICODE and memoizes under the
// string's own textual identity. Spec's memo deliberately shares a
// slot between equal strings rather than keying on physical identity.
func (s *Session) encodeStringAndMemo(str string, key memoKey, hashable bool) error {
	if err := s.encodeStringRaw(str); err != nil {
		return err
	}
	if hashable {
		return s.memo.Insert(s.e, key)
	}
	return nil
}

// encodeCharAndMemo treats a Char as a 1-codepoint string (spec §4.3).
func (s *Session) encodeCharAndMemo(rv reflect.Value, key memoKey, hashable bool) error {
	return s.encodeStringAndMemo(string(rune(rv.Int())), key, hashable)
}

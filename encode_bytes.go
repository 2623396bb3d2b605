package pickle

import "reflect"

// encodeBytesAndMemo emits bytearray(<raw string>, "latin-1") via
// __builtin__.bytearray, the protocol-2 encoding spec §4.3 prescribes
// for a host byte array. BINUNICODE carries UTF-8 text, not raw
// bytes, so the raw bytes are first widened byte-for-byte into a
// string of matching codepoints: Python's latin-1 codec is exactly
// the inverse, a 1:1 byte<->codepoint mapping, so re-encoding that
// string as latin-1 on the Python side reproduces the original bytes.
func (s *Session) encodeBytesAndMemo(rv reflect.Value, key memoKey, hashable bool) error {
	var raw []byte
	if rv.Kind() == reflect.Array {
		// rv.Bytes() only accepts an addressable array; copy instead.
		raw = make([]byte, rv.Len())
		for i := range raw {
			raw[i] = byte(rv.Index(i).Uint())
		}
	} else {
		raw = rv.Bytes()
	}
	if err := s.writeGlobal("__builtin__", "bytearray"); err != nil {
		return err
	}
	if err := s.encodeStringRaw(latin1Widen(raw)); err != nil {
		return err
	}
	if err := s.encodeStringRaw("latin-1"); err != nil {
		return err
	}
	if err := s.closeArgTuple(2); err != nil {
		return err
	}
	if err := s.e.op(opReduce); err != nil {
		return err
	}
	if hashable {
		return s.memo.Insert(s.e, key)
	}
	return nil
}

func latin1Widen(raw []byte) string {
	r := make([]rune, len(raw))
	for i, b := range raw {
		r[i] = rune(b)
	}
	return string(r)
}

// encodePrimitiveArrayAndMemo emits array.array(typecode, [items...])
// via the array module, per spec §4.3's typecode table (already
// resolved by classify into cls.typecode).
func (s *Session) encodePrimitiveArrayAndMemo(rv reflect.Value, typecode byte, key memoKey, hashable bool) error {
	if err := s.writeGlobal("array", "array"); err != nil {
		return err
	}
	if err := s.e.opRaw(opShortBinstring, []byte{1, typecode}); err != nil {
		return err
	}
	if err := s.e.op(opEmptyList); err != nil {
		return err
	}
	if err := s.e.op(opMark); err != nil {
		return err
	}
	n := rv.Len()
	for i := 0; i < n; i++ {
		if err := s.save(rv.Index(i)); err != nil {
			return err
		}
	}
	if err := s.e.op(opAppends); err != nil {
		return err
	}
	if err := s.closeArgTuple(2); err != nil {
		return err
	}
	if err := s.e.op(opReduce); err != nil {
		return err
	}
	if hashable {
		return s.memo.Insert(s.e, key)
	}
	return nil
}

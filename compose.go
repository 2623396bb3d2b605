package pickle

// writeGlobal emits the GLOBAL opcode with a module\nname\n payload,
// the byte-exact form spec.md §6 requires for every constructor
// reference this package produces.
func (s *Session) writeGlobal(module, name string) error {
	if err := s.e.op(opGlobal); err != nil {
		return err
	}
	return s.e.raw([]byte(module + "\n" + name + "\n"))
}

// closeArgTuple builds a tuple out of the n items already pushed onto
// the stack, picking the dedicated opcode for n <= 3 the way every
// REDUCE-based encoder in this package does. Callers needing n >= 4
// must emit MARK before pushing the items; closeArgTuple(n) for n > 3
// then only emits the closing TUPLE.
func (s *Session) closeArgTuple(n int) error {
	switch n {
	case 0:
		return s.e.op(opEmptyTuple)
	case 1:
		return s.e.op(opTuple1)
	case 2:
		return s.e.op(opTuple2)
	case 3:
		return s.e.op(opTuple3)
	}
	return s.e.op(opTuple)
}

// encodeRef emits a BINPERSID fragment for a persistent reference: the
// persistent id is saved like any other value, then BINPERSID tells
// the unpickler to resolve it via its own persistent-load hook rather
// than reconstructing it from the stream.
func (s *Session) encodeRef(ref Ref) error {
	if err := s.save(reflectValueOf(ref.Pid)); err != nil {
		return err
	}
	return s.e.op(opBinpersid)
}

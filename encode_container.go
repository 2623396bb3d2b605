package pickle

import "reflect"

// encodeObjectTuple implements the length-dispatched tuple encoding
// from spec §4.3. A direct self-reference is rejected before each
// element is saved, since tuples memoize only after they are fully
// built and so have no other way to break a cycle.
func (s *Session) encodeObjectTuple(rv reflect.Value, key memoKey, hashable bool) error {
	n := rv.Len()
	switch {
	case n == 0:
		if err := s.e.op(opEmptyTuple); err != nil {
			return err
		}
	case n >= 4:
		if err := s.e.op(opMark); err != nil {
			return err
		}
		if err := s.saveTupleElems(rv); err != nil {
			return err
		}
		if err := s.e.op(opTuple); err != nil {
			return err
		}
	default:
		if err := s.saveTupleElems(rv); err != nil {
			return err
		}
		if err := s.closeArgTuple(n); err != nil {
			return err
		}
	}
	if hashable {
		return s.memo.Insert(s.e, key)
	}
	return nil
}

func (s *Session) saveTupleElems(rv reflect.Value) error {
	n := rv.Len()
	for i := 0; i < n; i++ {
		elem := rv.Index(i)
		if tupleContainsItself(elem, rv) {
			return &RecursiveArrayError{Type: rv.Type().String()}
		}
		if err := s.save(elem); err != nil {
			return err
		}
	}
	return nil
}

// tupleContainsItself reports whether elem is, after unwrapping any
// interface box, the very same backing array as container — i.e. the
// array directly contains itself as one of its own elements.
func tupleContainsItself(elem, container reflect.Value) bool {
	for elem.Kind() == reflect.Interface {
		if elem.IsNil() {
			return false
		}
		elem = elem.Elem()
	}
	if elem.Kind() != reflect.Slice || container.Kind() != reflect.Slice {
		return false
	}
	return elem.Pointer() == container.Pointer()
}

// encodeList implements spec's pre-memoization list encoding: the
// EMPTY_LIST is pushed and memoized before any element is saved, so a
// list that (directly or indirectly) contains itself terminates via a
// memo hit on the inner reference instead of recursing forever.
func (s *Session) encodeList(rv reflect.Value, key memoKey, hashable bool) error {
	if err := s.e.op(opEmptyList); err != nil {
		return err
	}
	if hashable {
		if err := s.memo.Insert(s.e, key); err != nil {
			return err
		}
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
	return s.e.op(opAppends)
}

// encodeDict mirrors encodeList's pre-memoization shape for maps.
func (s *Session) encodeDict(rv reflect.Value, key memoKey, hashable bool) error {
	if err := s.e.op(opEmptyDict); err != nil {
		return err
	}
	if hashable {
		if err := s.memo.Insert(s.e, key); err != nil {
			return err
		}
	}
	if err := s.e.op(opMark); err != nil {
		return err
	}
	iter := rv.MapRange()
	for iter.Next() {
		if err := s.save(iter.Key()); err != nil {
			return err
		}
		if err := s.save(iter.Value()); err != nil {
			return err
		}
	}
	return s.e.op(opSetitems)
}

// encodePyDict mirrors encodeDict's pre-memoization shape for the
// Python-equality Dict type, iterating it instead of a reflect.Value
// map.
func (s *Session) encodePyDict(d Dict, key memoKey, hashable bool) error {
	if err := s.e.op(opEmptyDict); err != nil {
		return err
	}
	if hashable {
		if err := s.memo.Insert(s.e, key); err != nil {
			return err
		}
	}
	if err := s.e.op(opMark); err != nil {
		return err
	}
	var saveErr error
	d.Iter()(func(k, v any) bool {
		if err := s.save(reflectValueOf(k)); err != nil {
			saveErr = err
			return false
		}
		if err := s.save(reflectValueOf(v)); err != nil {
			saveErr = err
			return false
		}
		return true
	})
	if saveErr != nil {
		return saveErr
	}
	return s.e.op(opSetitems)
}

// encodeSet emits set([items...]) via __builtin__.set. Memoized after
// emission: a Python set's elements must be hashable, so a set can
// never directly contain itself.
func (s *Session) encodeSet(rv reflect.Value, key memoKey, hashable bool) error {
	if err := s.writeGlobal("__builtin__", "set"); err != nil {
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
	if err := s.closeArgTuple(1); err != nil {
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

package pickle

import (
	"reflect"
	"sort"
)

// recordFieldSet is the field-name -> value map an encodeRecordAndMemo
// strategy builds, plus the iteration order to emit them in.
type recordFieldSet struct {
	order  []string
	values map[string]any
}

// encodeRecordAndMemo builds the {field-name -> value} mapping spec
// §4.3 describes for all three record strategies, then emits it with
// exactly the Dict encoder's shape (EMPTY_DICT, memo, MARK, pairs,
// SETITEMS) since a record-like value is, on the wire, just a dict.
func (s *Session) encodeRecordAndMemo(rv reflect.Value, strategy recordStrategy, key memoKey, hashable bool) error {
	fields, className, err := recordFields(rv, strategy)
	if err != nil {
		return err
	}

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
	if className != "" {
		if err := s.save(reflect.ValueOf("__class__")); err != nil {
			return err
		}
		if err := s.save(reflect.ValueOf(className)); err != nil {
			return err
		}
	}
	for _, name := range fields.order {
		if err := s.save(reflect.ValueOf(name)); err != nil {
			return err
		}
		if err := s.save(reflectValueOf(fields.values[name])); err != nil {
			return err
		}
	}
	return s.e.op(opSetitems)
}

func recordFields(rv reflect.Value, strategy recordStrategy) (recordFieldSet, string, error) {
	t := rv.Type()
	switch strategy {
	case strategyContract:
		cf, ok := rv.Interface().(ContractFielder)
		if !ok {
			return recordFieldSet{}, "", &FieldReadFailureError{
				Type: t.String(), Field: "PickleFields",
				Err: &UnpicklableError{Type: t.String()},
			}
		}
		m := cf.PickleFields()
		names := make([]string, 0, len(m))
		for k := range m {
			names = append(names, k)
		}
		sort.Strings(names)
		return recordFieldSet{order: names, values: m}, cf.PickleClassName(), nil
	case strategySerializable:
		return structFields(rv, true), classNameOf(t), nil
	default: // strategyPublicProperties
		return structFields(rv, false), classNameOf(t), nil
	}
}

// structFields walks t's exported fields in declaration order. When
// honorTags is true (the serializable strategy), a `pickle:"-"` tag
// drops the field and any other tag value renames it; Go has no
// separate "non-serialized" annotation, so the tag is the sole
// exclusion mechanism. When honorTags is false (public-properties),
// every exported field is used as-is: Go has no property concept
// distinct from a field, so an exported field stands in for a
// "readable public property".
func structFields(rv reflect.Value, honorTags bool) recordFieldSet {
	t := rv.Type()
	out := recordFieldSet{values: map[string]any{}}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue
		}
		name := f.Name
		if honorTags {
			if tag, ok := f.Tag.Lookup("pickle"); ok {
				if tag == "-" {
					continue
				}
				name = tag
			}
		}
		out.order = append(out.order, name)
		out.values[name] = rv.Field(i).Interface()
	}
	return out
}

// classNameOf returns the __class__ value for t, or "" to omit the
// key entirely for an anonymous struct type (spec §4.3's
// synthetic/anonymous marker has no Go equivalent; an anonymous
// struct's empty Name() is the closest analogue).
func classNameOf(t reflect.Type) string {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Name() == "" {
		return ""
	}
	if t.PkgPath() == "" {
		return t.Name()
	}
	return t.PkgPath() + "." + t.Name()
}

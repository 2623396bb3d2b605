package pickle

import "github.com/aristanetworks/gomap"

// Dict is a Python-equality map: int(1), float64(1.0) and big.Int(1)
// are the same key, matching how CPython's dict compares keys rather
// than how Go's == operator would. Use it when a caller's input mixes
// numeric key types that should collapse onto one pickle dict entry;
// a plain Go map encodes as the same Dict opcode sequence but keeps
// Go's own, stricter key equality.
//
// Dict is pointer-like, as the builtin map is: its zero value is an
// empty, unusable dictionary, and Set panics on it. Use NewDict.
type Dict struct {
	m *gomap.Map[any, any]
}

// NewDict returns a new, empty dictionary.
func NewDict() Dict {
	return NewDictWithSizeHint(0)
}

// NewDictWithSizeHint returns a new, empty dictionary preallocated for
// size entries.
func NewDictWithSizeHint(size int) Dict {
	return Dict{m: gomap.NewHint[any, any](size, pyequal, pyhash)}
}

// NewDictWithData returns a new dictionary preset with kv, which must
// be key1, value1, key2, value2, ...
func NewDictWithData(kv ...any) Dict {
	if len(kv)%2 != 0 {
		panic("pickle: NewDictWithData: odd number of arguments")
	}
	n := len(kv) / 2
	d := NewDictWithSizeHint(n)
	for i := 0; i < n; i++ {
		d.Set(kv[2*i], kv[2*i+1])
	}
	return d
}

// Get returns the value associated with a key equal to key, or nil if
// there is none.
func (d Dict) Get(key any) any {
	v, _ := d.Get_(key)
	return v
}

// Get_ is the comma-ok form of Get.
func (d Dict) Get_(key any) (value any, ok bool) {
	return d.m.Get(key)
}

// Set associates value with key, replacing any existing key equal to
// it.
func (d Dict) Set(key, value any) {
	d.m.Set(key, value)
}

// Del removes the entry with a key equal to key, if any.
func (d Dict) Del(key any) {
	d.m.Delete(key)
}

// Len returns the number of entries in the dictionary.
func (d Dict) Len() int {
	return d.m.Len()
}

// Iter returns an iterator over all entries, in arbitrary order.
func (d Dict) Iter() func(yield func(key, value any) bool) {
	it := d.m.Iter()
	return func(yield func(key, value any) bool) {
		for it.Next() {
			if !yield(it.Key(), it.Elem()) {
				return
			}
		}
	}
}

package pickle

import (
	"hash/maphash"
	"reflect"

	"github.com/aristanetworks/gomap"
)

// memoIdentityKind distinguishes the two ways a memoKey pins down
// "the same object": by value (strings and the boxed temporal/decimal
// primitives, matching CPython's own pickler, which shares memo slots
// between equal strings) or by the address of the backing array/map a
// slice, map, or pointer points at (everything else, since Go gives
// us no stable structural hash for mutable aggregates).
type memoIdentityKind uint8

const (
	memoByValue memoIdentityKind = iota
	memoByPointer
)

// memoKey is the memo table's key: category keeps values of different
// categories that happen to format identically (e.g. the string "1"
// and a Decimal of 1) from colliding.
type memoKey struct {
	kind memoIdentityKind
	cat  category
	str  string  // valid when kind == memoByValue
	ptr  uintptr // valid when kind == memoByPointer
	typ  reflect.Type
}

func memoKeyEqual(a, b memoKey) bool {
	return a.kind == b.kind && a.cat == b.cat && a.str == b.str && a.ptr == b.ptr && a.typ == b.typ
}

func memoKeyHash(seed maphash.Seed, k memoKey) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	h.Write([]byte{byte(k.kind), byte(k.cat)})
	h.WriteString(k.str)
	var b [8]byte
	for i := range b {
		b[i] = byte(k.ptr >> (8 * i))
	}
	h.Write(b[:])
	if k.typ != nil {
		h.WriteString(k.typ.String())
	}
	return h.Sum64()
}

// MemoTable is the encoder's identity-keyed slot table. It emits
// BINPUT/LONG_BINPUT on Insert and BINGET/LONG_BINGET on a TryGet hit,
// and is a no-op in both directions once disabled.
type MemoTable struct {
	enabled bool
	seed    maphash.Seed
	slots   *gomap.Map[memoKey, int]
	next    int
}

// newMemoTable returns a fresh, empty memo table. When enabled is
// false, TryGet always misses and Insert never records anything.
func newMemoTable(enabled bool) *MemoTable {
	return &MemoTable{
		enabled: enabled,
		seed:    maphash.MakeSeed(),
		slots:   gomap.NewHint[memoKey, int](0, memoKeyEqual, memoKeyHash),
	}
}

// TryGet emits the fetch opcode and returns true if key was
// previously inserted.
func (m *MemoTable) TryGet(e *emitter, key memoKey) (bool, error) {
	if !m.enabled {
		return false, nil
	}
	slot, ok := m.slots.Get(key)
	if !ok {
		return false, nil
	}
	return true, emitGet(e, slot)
}

// Insert assigns the next dense slot index to key and emits the store
// opcode. It is a no-op when memoization is disabled.
func (m *MemoTable) Insert(e *emitter, key memoKey) error {
	if !m.enabled {
		return nil
	}
	slot := m.next
	m.next++
	m.slots.Set(key, slot)
	return emitPut(e, slot)
}

func emitGet(e *emitter, slot int) error {
	if slot <= 0xFF {
		return e.opRaw(opBinget, []byte{byte(slot)})
	}
	return e.opRaw(opLongBinget, putUint32LE(nil, uint32(slot)))
}

func emitPut(e *emitter, slot int) error {
	if slot <= 0xFF {
		return e.opRaw(opBinput, []byte{byte(slot)})
	}
	return e.opRaw(opLongBinput, putUint32LE(nil, uint32(slot)))
}

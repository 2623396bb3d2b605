package pickle

import (
	"hash/maphash"
	"math"
	"math/big"
	"reflect"
)

// pykind classifies a Dict key's Go value into the coarse category
// pyequal's comparison matrix is built around.
type pykind uint8

const (
	pkBool pykind = iota
	pkInt
	pkUint
	pkFloat
	pkBigInt
	pkSlice
	pkMap
	pkStruct
	pkOther
)

func pykindOf(x any) pykind {
	r := reflect.ValueOf(x)
	switch r.Kind() {
	case reflect.Bool:
		return pkBool
	case reflect.Int, reflect.Int64, reflect.Int32, reflect.Int16, reflect.Int8:
		return pkInt
	case reflect.Uint, reflect.Uint64, reflect.Uint32, reflect.Uint16, reflect.Uint8:
		return pkUint
	case reflect.Float64, reflect.Float32:
		return pkFloat
	case reflect.Slice, reflect.Array:
		return pkSlice
	case reflect.Map:
		return pkMap
	case reflect.Struct:
		return pkStruct
	}
	if _, ok := x.(*big.Int); ok {
		return pkBigInt
	}
	return pkOther
}

// pyequal implements the equality Python's dict uses to compare keys:
// numeric values compare across type (bool, int, uint, float,
// *big.Int all cross-compare), and Tuple/Dict/struct/slice/map values
// compare structurally.
func pyequal(xa, xb any) bool {
	if s, ok := xa.(string); ok {
		sb, ok := xb.(string)
		return ok && s == sb
	}

	a := reflect.ValueOf(xa)
	b := reflect.ValueOf(xb)
	ak, bk := pykindOf(xa), pykindOf(xb)
	if ak > bk {
		a, b = b, a
		ak, bk = bk, ak
		xa, xb = xb, xa
	}

	switch ak {
	case pkBool:
		abool := pybint(a.Bool())
		switch bk {
		case pkBool:
			return abool == pybint(b.Bool())
		case pkInt:
			return abool == b.Int()
		case pkUint:
			return b.Uint() <= math.MaxInt64 && abool == int64(b.Uint())
		case pkFloat:
			return float64(abool) == b.Float()
		case pkBigInt:
			return eqIntBigInt(abool, xb.(*big.Int))
		}
	case pkInt:
		aint := a.Int()
		switch bk {
		case pkInt:
			return aint == b.Int()
		case pkUint:
			return aint >= 0 && uint64(aint) == b.Uint()
		case pkFloat:
			return float64(aint) == b.Float()
		case pkBigInt:
			return eqIntBigInt(aint, xb.(*big.Int))
		}
	case pkUint:
		auint := a.Uint()
		switch bk {
		case pkUint:
			return auint == b.Uint()
		case pkFloat:
			return float64(auint) == b.Float()
		case pkBigInt:
			return eqUintBigInt(auint, xb.(*big.Int))
		}
	case pkFloat:
		afloat := a.Float()
		switch bk {
		case pkFloat:
			return afloat == b.Float()
		case pkBigInt:
			bf, acc := bigIntToFloat64(xb.(*big.Int))
			return acc == big.Exact && afloat == bf
		}
	case pkBigInt:
		if bk == pkBigInt {
			return xa.(*big.Int).Cmp(xb.(*big.Int)) == 0
		}
	case pkSlice:
		if bk == pkSlice {
			return eqSlice(a, b)
		}
	case pkMap:
		if bk == pkMap {
			return eqMap(a, b)
		}
	case pkStruct:
		if d, ok := xa.(Dict); ok {
			if e, ok := xb.(Dict); ok {
				return eqDict(d, e)
			}
		}
		if bk == pkStruct && a.Type() == b.Type() {
			return eqStruct(a, b)
		}
	}

	return xa == xb
}

func eqIntBigInt(a int64, b *big.Int) bool  { return b.IsInt64() && a == b.Int64() }
func eqUintBigInt(a uint64, b *big.Int) bool { return b.IsUint64() && a == b.Uint64() }

// bigIntToFloat64 converts b to the nearest float64, reporting whether
// the conversion was exact. Replaces a call the teacher's source made
// to a helper of the same shape that was never actually defined.
func bigIntToFloat64(b *big.Int) (float64, big.Accuracy) {
	return new(big.Float).SetInt(b).Float64()
}

func eqSlice(a, b reflect.Value) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		if !pyequal(a.Index(i).Interface(), b.Index(i).Interface()) {
			return false
		}
	}
	return true
}

func eqStruct(a, b reflect.Value) bool {
	for i := 0; i < a.Type().NumField(); i++ {
		if a.Type().Field(i).PkgPath != "" {
			continue // unexported; Go gives us no portable way to read it back
		}
		if !pyequal(a.Field(i).Interface(), b.Field(i).Interface()) {
			return false
		}
	}
	return true
}

func eqMap(a, b reflect.Value) bool {
	if a.Len() != b.Len() {
		return false
	}
	it := a.MapRange()
	for it.Next() {
		bv := b.MapIndex(it.Key())
		if !bv.IsValid() || !pyequal(it.Value().Interface(), bv.Interface()) {
			return false
		}
	}
	return true
}

func eqDict(a, b Dict) bool {
	if a.Len() != b.Len() {
		return false
	}
	eq := true
	a.Iter()(func(k, va any) bool {
		vb, ok := b.Get_(k)
		if !ok || !pyequal(va, vb) {
			eq = false
			return false
		}
		return true
	})
	return eq
}

// pyhash hashes x consistently with pyequal: pyequal(a,b) implies
// pyhash(a) == pyhash(b). Panics for key types Python could not hash
// either (slices, maps, other Dicts).
func pyhash(seed maphash.Seed, x any) uint64 {
	if s, ok := x.(string); ok {
		return maphash.String(seed, s)
	}

	var h maphash.Hash
	h.SetSeed(seed)
	writeUint := func(u uint64) {
		var b [8]byte
		for i := 0; i < 8; i++ {
			b[i] = byte(u >> (56 - 8*i))
		}
		h.Write(b[:])
	}
	writeFloat := func(f float64) {
		if i := int64(f); float64(i) == f {
			writeUint(uint64(i))
			return
		}
		writeUint(math.Float64bits(f))
	}

	switch pykindOf(x) {
	case pkBool:
		writeUint(uint64(pybint(x.(bool))))
	case pkInt:
		writeUint(uint64(reflect.ValueOf(x).Int()))
	case pkUint:
		writeUint(reflect.ValueOf(x).Uint())
	case pkFloat:
		writeFloat(reflect.ValueOf(x).Float())
	case pkBigInt:
		b := x.(*big.Int)
		switch {
		case b.IsInt64():
			writeUint(uint64(b.Int64()))
		case b.IsUint64():
			writeUint(b.Uint64())
		default:
			f, acc := bigIntToFloat64(b)
			if acc == big.Exact {
				writeFloat(f)
			} else {
				h.WriteString("bigint")
				h.Write(b.Bytes())
			}
		}
	case pkStruct:
		if d, ok := x.(Dict); ok {
			_ = d
			panic("pickle: unhashable type: Dict")
		}
		r := reflect.ValueOf(x)
		h.WriteString(r.Type().Name())
		for i := 0; i < r.Type().NumField(); i++ {
			if r.Type().Field(i).PkgPath != "" {
				continue
			}
			writeUint(pyhash(seed, r.Field(i).Interface()))
		}
	default:
		panic("pickle: unhashable type")
	}
	return h.Sum64()
}

func pybint(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

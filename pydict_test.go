package pickle

import (
	"bytes"
	"math/big"
	"testing"
)

func TestDictCrossTypeNumericEquality(t *testing.T) {
	d := NewDict()
	d.Set(1, "int-one")

	if got := d.Get(1.0); got != "int-one" {
		t.Fatalf("Dict.Get(1.0) = %v, want the entry set under int(1)", got)
	}
	if got := d.Get(big.NewInt(1)); got != "int-one" {
		t.Fatalf("Dict.Get(big.NewInt(1)) = %v, want the entry set under int(1)", got)
	}
	if got := d.Get(true); got != "int-one" {
		t.Fatalf("Dict.Get(true) = %v, want the entry set under int(1) (bool compares as 1/0)", got)
	}
	if _, ok := d.Get_(2); ok {
		t.Fatalf("Dict.Get_(2) should miss")
	}
}

func TestDictSetReplacesEqualKey(t *testing.T) {
	d := NewDict()
	d.Set(1, "first")
	d.Set(1.0, "second")
	if d.Len() != 1 {
		t.Fatalf("Dict.Len() = %d, want 1 after setting two equal keys", d.Len())
	}
	if got := d.Get(1); got != "second" {
		t.Fatalf("Dict.Get(1) = %v, want the latest value set under an equal key", got)
	}
}

func TestDictWithDataAndDel(t *testing.T) {
	d := NewDictWithData("a", 1, "b", 2)
	if d.Len() != 2 {
		t.Fatalf("Dict.Len() = %d, want 2", d.Len())
	}
	d.Del("a")
	if d.Len() != 1 {
		t.Fatalf("Dict.Len() = %d, want 1 after Del", d.Len())
	}
	if _, ok := d.Get_("a"); ok {
		t.Fatalf("Dict.Get_(%q) should miss after Del", "a")
	}
}

func TestDictWithDataOddArgsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected NewDictWithData to panic on an odd argument count")
		}
	}()
	NewDictWithData("a", 1, "b")
}

func TestDumpsDictEncodesAsPickleDict(t *testing.T) {
	d := NewDictWithData("x", 1)
	got, err := Dumps(d)
	if err != nil {
		t.Fatalf("Dumps(Dict): %v", err)
	}
	if !bytes.Contains(got, []byte{opEmptyDict}) || !bytes.Contains(got, []byte{opSetitems}) {
		t.Fatalf("Dumps(Dict) missing EMPTY_DICT/SETITEMS: % X", got)
	}
	if !bytes.Contains(got, []byte("x")) {
		t.Fatalf("Dumps(Dict) missing key: % X", got)
	}
}

func TestPyhashUnhashableDictPanics(t *testing.T) {
	inner := NewDict()
	outer := NewDictWithSizeHint(1)
	defer func() {
		if recover() == nil {
			t.Fatal("expected Set with a Dict key to panic as unhashable")
		}
	}()
	outer.Set(inner, "x")
}

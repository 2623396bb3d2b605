package pickle

import (
	"bytes"
	"math"
	"math/big"
	"testing"
)

func TestPutLongNarrowestOpcode(t *testing.T) {
	cases := []struct {
		v    int64
		want byte
	}{
		{0, opBinint1},
		{255, opBinint1},
		{256, opBinint2},
		{65535, opBinint2},
		{65536, opBinint},
		{math.MaxInt32, opBinint},
		{math.MaxInt32 + 1, opInt},
	}
	for _, c := range cases {
		var buf bytes.Buffer
		s := NewSession(&buf)
		if err := s.putLong(c.v); err != nil {
			t.Fatalf("putLong(%d): %v", c.v, err)
		}
		got := buf.Bytes()[0]
		if got != c.want {
			t.Errorf("putLong(%d) opcode = %q, want %q", c.v, got, c.want)
		}
	}
}

func TestPutLongNegativeFitsBinint(t *testing.T) {
	var buf bytes.Buffer
	s := NewSession(&buf)
	if err := s.putLong(-1); err != nil {
		t.Fatal(err)
	}
	// -1 is within signed 32-bit range; spec's BININT rule covers it via
	// sign-extension, not just the positive 255/65535 fast paths.
	if buf.Bytes()[0] != opBinint {
		t.Fatalf("putLong(-1) opcode = %q, want BININT", buf.Bytes()[0])
	}
}

func TestEncodeIntBigUsesDecimalINT(t *testing.T) {
	b := new(big.Int).Lsh(big.NewInt(1), 100) // far beyond int64 range
	got, err := Dumps(b)
	if err != nil {
		t.Fatalf("Dumps(bigint): %v", err)
	}
	want := append([]byte{0x80, 0x02, opInt}, append([]byte(b.String()+"\n"), opStop)...)
	if !bytes.Equal(got, want) {
		t.Fatalf("Dumps(bigint) = % X, want % X", got, want)
	}
}

func TestEncodeUint64AboveMaxInt64EscalatesToIntBig(t *testing.T) {
	var u uint64 = math.MaxInt64 + 1
	got, err := Dumps(u)
	if err != nil {
		t.Fatalf("Dumps(uint64): %v", err)
	}
	if got[2] != opInt {
		t.Fatalf("Dumps(uint64 > MaxInt64) should fall back to INT, opcode = %q", got[2])
	}
}

func TestEncodeFloat(t *testing.T) {
	got, err := Dumps(1.5)
	if err != nil {
		t.Fatalf("Dumps(1.5): %v", err)
	}
	want := append([]byte{0x80, 0x02, opBinfloat}, append(putFloat64BE(nil, 1.5), opStop)...)
	if !bytes.Equal(got, want) {
		t.Fatalf("Dumps(1.5) = % X, want % X", got, want)
	}
}

func TestEncodeCharAsOneCodepointString(t *testing.T) {
	got, err := Dumps(Char('z'))
	if err != nil {
		t.Fatalf("Dumps(Char): %v", err)
	}
	if got[2] != opBinunicode {
		t.Fatalf("Dumps(Char) should encode as BINUNICODE, opcode = %q", got[2])
	}
}

package pickle

import (
	"reflect"
	"testing"
	"time"
)

func TestClassifyPrecedenceRegistryBeatsString(t *testing.T) {
	reg := NewCustomPicklerRegistry()
	reg.Register(reflect.TypeOf(""), func(s *Session, v any) error { return s.Save(None{}) })

	cls, err := classify(reg, reflect.ValueOf("hello"))
	if err != nil {
		t.Fatal(err)
	}
	if cls.cat != catCustomOverride {
		t.Fatalf("classify(registered string type) = %v, want catCustomOverride", cls.cat)
	}
}

func TestClassifyTupleMarkerBeatsEverything(t *testing.T) {
	cls, err := classify(defaultRegistry, reflect.ValueOf(Tuple{1, 2}))
	if err != nil {
		t.Fatal(err)
	}
	if cls.cat != catObjectTuple {
		t.Fatalf("classify(Tuple) = %v, want catObjectTuple", cls.cat)
	}
}

func TestClassifyUint64AboveMaxInt64IsIntBig(t *testing.T) {
	var u uint64 = 1 << 63
	cls, err := classify(defaultRegistry, reflect.ValueOf(u))
	if err != nil {
		t.Fatal(err)
	}
	if cls.cat != catIntBig {
		t.Fatalf("classify(huge uint64) = %v, want catIntBig", cls.cat)
	}
}

func TestClassifyTimeDurationIsTimeDeltaNotInt(t *testing.T) {
	cls, err := classify(defaultRegistry, reflect.ValueOf(5*time.Second))
	if err != nil {
		t.Fatal(err)
	}
	if cls.cat != catTimeDelta {
		t.Fatalf("classify(time.Duration) = %v, want catTimeDelta, not catIntSmall", cls.cat)
	}
}

func TestClassifyByteSliceIsBytesNotPrimitiveArray(t *testing.T) {
	cls, err := classify(defaultRegistry, reflect.ValueOf([]byte{1, 2}))
	if err != nil {
		t.Fatal(err)
	}
	if cls.cat != catBytes {
		t.Fatalf("classify([]byte) = %v, want catBytes", cls.cat)
	}
}

func TestClassifyPlainStructIsRecordLikePublicProperties(t *testing.T) {
	type point struct{ X, Y int }
	cls, err := classify(defaultRegistry, reflect.ValueOf(point{1, 2}))
	if err != nil {
		t.Fatal(err)
	}
	if cls.cat != catRecordLike || cls.strategy != strategyPublicProperties {
		t.Fatalf("classify(plain struct) = %+v, want RecordLike/public-properties", cls)
	}
}

func TestClassifyUnsupportedTypeIsUnpicklable(t *testing.T) {
	_, err := classify(defaultRegistry, reflect.ValueOf(make(chan int)))
	if err == nil {
		t.Fatal("expected an error for a channel value")
	}
	if _, ok := err.(*UnpicklableError); !ok {
		t.Fatalf("expected *UnpicklableError, got %T", err)
	}
}

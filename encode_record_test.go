package pickle

import (
	"bytes"
	"reflect"
	"testing"
)

type plainRecord struct {
	Name string
	Age  int
}

type taggedRecord struct {
	Name     string `pickle:"name"`
	Age      int    `pickle:"-"`
	internal string
}

type contractRecord struct {
	name string
	age  int
}

func (c contractRecord) PickleFields() map[string]any {
	return map[string]any{"name": c.name, "age": c.age}
}

func (c contractRecord) PickleClassName() string { return "custom.Person" }

func TestRecordPublicPropertiesStrategy(t *testing.T) {
	got, err := Dumps(plainRecord{Name: "Ada", Age: 30})
	if err != nil {
		t.Fatalf("Dumps: %v", err)
	}
	if !bytes.Contains(got, []byte("Name")) || !bytes.Contains(got, []byte("Ada")) {
		t.Fatalf("Dumps(plainRecord) missing exported field data: % X", got)
	}
	if !bytes.Contains(got, []byte("__class__")) {
		t.Fatalf("Dumps(plainRecord) should carry __class__: % X", got)
	}
}

func TestRecordSerializableStrategyHonorsTags(t *testing.T) {
	got, err := Dumps(taggedRecord{Name: "Ada", Age: 30, internal: "hidden"})
	if err != nil {
		t.Fatalf("Dumps: %v", err)
	}
	if !bytes.Contains(got, []byte("name")) {
		t.Fatalf("Dumps(taggedRecord) missing renamed field: % X", got)
	}
	if bytes.Contains(got, []byte("Age")) || bytes.Contains(got, []byte("\x04Age")) {
		t.Fatalf("Dumps(taggedRecord) should drop pickle:\"-\" field: % X", got)
	}
	if bytes.Contains(got, []byte("hidden")) {
		t.Fatalf("Dumps(taggedRecord) should never read unexported fields: % X", got)
	}
}

func TestRecordContractStrategyTakesPrecedence(t *testing.T) {
	got, err := Dumps(contractRecord{name: "Ada", age: 30})
	if err != nil {
		t.Fatalf("Dumps: %v", err)
	}
	if !bytes.Contains(got, []byte("custom.Person")) {
		t.Fatalf("Dumps(contractRecord) should use the contract class name: % X", got)
	}
	if !bytes.Contains(got, []byte("age")) {
		t.Fatalf("Dumps(contractRecord) missing contract field: % X", got)
	}
}

func TestRegisteredHandlerTakesPrecedenceOverRecordStrategies(t *testing.T) {
	reg := NewCustomPicklerRegistry()
	reg.Register(reflect.TypeOf(plainRecord{}), func(s *Session, v any) error {
		return s.Save("overridden")
	})

	got, err := Dumps(plainRecord{Name: "Ada", Age: 30}, WithRegistry(reg))
	if err != nil {
		t.Fatalf("Dumps: %v", err)
	}
	if !bytes.Contains(got, []byte("overridden")) {
		t.Fatalf("Dumps with custom registry override = % X, expected \"overridden\"", got)
	}
	if bytes.Contains(got, []byte("Ada")) {
		t.Fatalf("custom override should have bypassed record reflection entirely: % X", got)
	}
}

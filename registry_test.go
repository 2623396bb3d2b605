package pickle

import (
	"bytes"
	"reflect"
	"testing"
)

type widget struct{ ID int }

type widgetLike interface{ WidgetID() int }

func (w widget) WidgetID() int { return w.ID }

func runHandler(t *testing.T, h Handler, v any) []byte {
	t.Helper()
	var buf bytes.Buffer
	s := NewSession(&buf)
	if err := h(s, v); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if err := s.e.op(opStop); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestRegistryExactMatchBeatsInterfaceMatch(t *testing.T) {
	reg := NewCustomPicklerRegistry()
	reg.Register(reflect.TypeOf((*widgetLike)(nil)).Elem(), func(s *Session, v any) error {
		return s.Save("via-interface")
	})
	reg.Register(reflect.TypeOf(widget{}), func(s *Session, v any) error {
		return s.Save("via-exact")
	})

	h, ok := reg.lookup(reflect.TypeOf(widget{}))
	if !ok {
		t.Fatal("expected a handler for widget")
	}
	got := runHandler(t, h, widget{ID: 1})
	if !bytes.Contains(got, []byte("via-exact")) {
		t.Fatalf("expected the exact-match handler to win, got % X", got)
	}
}

func TestRegistryInterfaceWalkOnMiss(t *testing.T) {
	reg := NewCustomPicklerRegistry()
	reg.Register(reflect.TypeOf((*widgetLike)(nil)).Elem(), func(s *Session, v any) error {
		return s.Save("via-interface")
	})

	type other struct{ widget }
	h, ok := reg.lookup(reflect.TypeOf(other{}))
	if !ok {
		t.Fatal("expected other (embeds widget, implements widgetLike) to match via interface walk")
	}
	got := runHandler(t, h, other{})
	if !bytes.Contains(got, []byte("via-interface")) {
		t.Fatalf("expected interface-walk handler output, got % X", got)
	}
}

func TestRegisterReplacesInPlaceWithoutReorderingWalk(t *testing.T) {
	reg := NewCustomPicklerRegistry()
	iface := reflect.TypeOf((*widgetLike)(nil)).Elem()
	// a second interface widget also implements, registered in between:
	// if re-registering iface moved it behind this one, the walk would
	// pick "later" instead of "v2".
	later := reflect.TypeOf((*interface{ WidgetID() int })(nil)).Elem()
	reg.Register(iface, func(s *Session, v any) error { return s.Save("v1") })
	reg.Register(later, func(s *Session, v any) error { return s.Save("later") })
	reg.Register(iface, func(s *Session, v any) error { return s.Save("v2") })

	h, ok := reg.lookup(reflect.TypeOf(widget{}))
	if !ok {
		t.Fatal("expected a match")
	}
	got := runHandler(t, h, widget{})
	if bytes.Contains(got, []byte("v1")) {
		t.Fatal("expected the second Register call to replace the first in place")
	}
	if !bytes.Contains(got, []byte("v2")) {
		t.Fatal("expected the latest registered handler to run")
	}
}

package variables

import (
	"testing"

	"github.com/ekkehard/priamosbasic/internal/value"
)

func TestAddFindRemoveClear(t *testing.T) {
	s := New()
	if !s.Add("A", value.NewInt(5)) {
		t.Fatal("expected first Add to succeed")
	}
	if s.Add("A", value.NewInt(6)) {
		t.Fatal("expected second Add of same name to fail")
	}
	got := s.Find("A")
	if got == nil || got.GetInt() != 5 {
		t.Fatalf("Find = %v", got)
	}
	if !s.Remove("A") {
		t.Fatal("expected Remove to succeed")
	}
	if s.Find("A") != nil {
		t.Fatal("expected nil after Remove")
	}

	s.Add("B", value.NewInt(1))
	s.Add("C", value.NewInt(2))
	s.Clear()
	if s.Find("B") != nil || s.Find("C") != nil {
		t.Fatal("expected Clear to remove all bindings")
	}
}

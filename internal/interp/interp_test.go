package interp

import (
	"bytes"
	goerrors "errors"
	"strings"
	"testing"

	"github.com/ekkehard/priamosbasic/internal/errors"
)

func run(t *testing.T, in *Interpreter, lines ...string) {
	t.Helper()
	for _, l := range lines {
		if err := in.InterpretLine(l); err != nil {
			t.Fatalf("InterpretLine(%q): %v", l, err)
		}
	}
}

func TestListRoundTripsExactBytes(t *testing.T) {
	var out bytes.Buffer
	in := New(&out)
	run(t, in, "10 LET X% = 5 + 3")

	out.Reset()
	run(t, in, "LIST")

	got := strings.TrimRight(out.String(), "\n")
	want := "10 LET X% = 5 + 3"
	if got != want {
		t.Fatalf("LIST output = %q, want %q", got, want)
	}
}

func TestBareLineNumberDeletesLine(t *testing.T) {
	var out bytes.Buffer
	in := New(&out)
	run(t, in, `10 PRINT "A"`)
	run(t, in, "10")

	out.Reset()
	run(t, in, "LIST")
	if out.Len() != 0 {
		t.Fatalf("LIST output = %q, want empty after deletion", out.String())
	}
}

func TestUndeclaredArraySubscriptAssignmentErrors(t *testing.T) {
	var out bytes.Buffer
	in := New(&out)
	err := in.InterpretLine("A%(5) = 42")
	if err == nil {
		t.Fatal("expected error assigning into undimensioned array")
	}
	be, ok := err.(*errors.BasicError)
	if !ok {
		t.Fatalf("error type = %T, want *errors.BasicError", err)
	}
	if !goerrors.Is(be, errors.New(errors.ArrayNotDimension, "")) {
		t.Fatalf("category = %v, want %v", be, errors.ArrayNotDimension)
	}
	if in.vars.Find("A%(") != nil {
		t.Fatal("variable store should be unchanged on error")
	}
}

func TestStaticArrayDimAssignReadAndOutOfRange(t *testing.T) {
	var out bytes.Buffer
	in := New(&out)
	run(t, in, "DIM B(2,3,4)")
	run(t, in, "B(1,2,3) = 7")

	out.Reset()
	run(t, in, "? B(1,2,3)")
	if got := strings.TrimRight(out.String(), "\n"); got != "7" {
		t.Fatalf("B(1,2,3) = %q, want 7", got)
	}

	out.Reset()
	run(t, in, "? B(0,0,0)")
	if got := strings.TrimRight(out.String(), "\n"); got != "0" {
		t.Fatalf("B(0,0,0) = %q, want 0 (unfilled cell)", got)
	}

	err := in.InterpretLine("? B(2,0,0)")
	if err == nil {
		t.Fatal("expected out-of-range error")
	}
	be, ok := err.(*errors.BasicError)
	if !ok {
		t.Fatalf("error type = %T, want *errors.BasicError", err)
	}
	if !strings.Contains(be.Error(), "index #") || !strings.Contains(be.Error(), "out of range") {
		t.Fatalf("error = %q, want index #k out of range", be.Error())
	}
}

func TestAssocArrayAutoVivifiesOnRead(t *testing.T) {
	var out bytes.Buffer
	in := New(&out)
	run(t, in, `DIM H$() ASSOC`)
	run(t, in, `H$("key") = "v"`)

	out.Reset()
	run(t, in, `? H$("key")`)
	if got := strings.TrimRight(out.String(), "\n"); got != "v" {
		t.Fatalf(`H$("key") = %q, want "v"`, got)
	}

	out.Reset()
	run(t, in, `? H$("absent")`)
	if got := strings.TrimRight(out.String(), "\n"); got != "" {
		t.Fatalf(`H$("absent") = %q, want empty string`, got)
	}

	out.Reset()
	run(t, in, `? CELLS(H$())`)
	if got := strings.TrimRight(out.String(), "\n"); got != "2" {
		t.Fatalf("CELLS(H$()) = %q, want 2", got)
	}
}

func TestPairingMismatchOnAssignment(t *testing.T) {
	in := New(&bytes.Buffer{})
	err := in.InterpretLine("A, B = 1")
	if err == nil {
		t.Fatal("expected pairing-mismatch error")
	}
	be, ok := err.(*errors.BasicError)
	if !ok {
		t.Fatalf("error type = %T, want *errors.BasicError", err)
	}
	if !goerrors.Is(be, errors.New(errors.PairingMismatch, "")) {
		t.Fatalf("category = %v, want %v", be, errors.PairingMismatch)
	}
}

func TestDirectModeAssignmentWithoutLet(t *testing.T) {
	var out bytes.Buffer
	in := New(&out)
	run(t, in, "A = 5")
	run(t, in, "? A")
	if got := strings.TrimRight(out.String(), "\n"); got != "5" {
		t.Fatalf("A = %q, want 5", got)
	}
}

func TestPrintCommaSeparatorsConcatenateWithoutNewline(t *testing.T) {
	var out bytes.Buffer
	in := New(&out)
	run(t, in, `PRINT "A", "B";`)
	if got := out.String(); got != "AB" {
		t.Fatalf("PRINT output = %q, want %q", got, "AB")
	}
}

func TestBuiltinFunctionCall(t *testing.T) {
	var out bytes.Buffer
	in := New(&out)
	run(t, in, `? LEFT$("HELLO", 3)`)
	if got := strings.TrimRight(out.String(), "\n"); got != "HEL" {
		t.Fatalf("LEFT$ = %q, want HEL", got)
	}
}

func TestPowBindsLooserThanMult(t *testing.T) {
	var out bytes.Buffer
	in := New(&out)
	// 2 * 3 ** 2 parses as (2 * 3) ** 2 = 36, since ** binds looser
	// than * in this dialect's grammar.
	run(t, in, "? 2 * 3 ** 2")
	if got := strings.TrimRight(out.String(), "\n"); got != "36" {
		t.Fatalf("2 * 3 ** 2 = %q, want 36", got)
	}
}

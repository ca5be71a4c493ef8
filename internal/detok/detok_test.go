package detok

import (
	"testing"

	"github.com/ekkehard/priamosbasic/internal/keyword"
	"github.com/ekkehard/priamosbasic/internal/lexer"
)

func render(t *testing.T, src string) string {
	t.Helper()
	kw := keyword.New()
	tz := lexer.New(kw)
	buf, err := tz.Tokenize([]byte(src))
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", src, err)
	}
	out, err := New(kw).Render(buf.Bytes())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return out
}

func TestRenderLineWithLineNo(t *testing.T) {
	got := render(t, "10 LET A = 5")
	want := "10 LET A = 5"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderStringLiteral(t *testing.T) {
	got := render(t, `PRINT "HI"`)
	want := `? "HI"`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderLabel(t *testing.T) {
	got := render(t, "LOOP: GOTO LOOP")
	want := "LOOP: GOTO LOOP"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderTwoCharOperators(t *testing.T) {
	got := render(t, "A <= B")
	want := "A <= B"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderRemComment(t *testing.T) {
	// The apostrophe itself is not part of the stored comment text, so
	// the tail bytes are exactly what followed it in the source.
	got := render(t, "PRINT A 'note here")
	want := `? A REM note here`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

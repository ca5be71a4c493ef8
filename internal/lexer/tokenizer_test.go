package lexer

import (
	"testing"

	"github.com/ekkehard/priamosbasic/internal/keyword"
	"github.com/ekkehard/priamosbasic/internal/token"
)

func tokenize(t *testing.T, src string) []byte {
	t.Helper()
	tz := New(keyword.New())
	buf, err := tz.Tokenize([]byte(src))
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", src, err)
	}
	return buf.Bytes()
}

func TestLineNoPromotion(t *testing.T) {
	out := tokenize(t, "10 PRINT")
	if out[0] != byte(token.LINENO) {
		t.Fatalf("first token = %#x, want LINENO", out[0])
	}
	v := uint32(out[1])<<16 | uint32(out[2])<<8 | uint32(out[3])
	if v != 10 {
		t.Fatalf("lineno = %d, want 10", v)
	}
}

func TestSBIForSmallDecimal(t *testing.T) {
	out := tokenize(t, "LET A = 5")
	found := false
	for i := 0; i < len(out); i++ {
		if out[i] == byte(token.SBI) && i+1 < len(out) && int8(out[i+1]) == 5 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected SBI(5) in stream, got % x", out)
	}
}

func TestHexLiteralWidth(t *testing.T) {
	out := tokenize(t, "LET A = $FF")
	idx := -1
	for i := 0; i < len(out); i++ {
		if out[i] == byte(token.NUMLIT) {
			idx = i
			break
		}
	}
	if idx < 0 {
		t.Fatalf("no NUMLIT in %x", out)
	}
	base, width := token.SplitNumTypeByte(out[idx+1])
	if base != token.NumHex {
		t.Fatalf("base = %x, want hex", base)
	}
	if width != token.WidthI16 {
		t.Fatalf("width = %x, want i16 (255 doesn't fit signed i8)", width)
	}
	v := uint16(out[idx+2])<<8 | uint16(out[idx+3])
	if v != 255 {
		t.Fatalf("value = %d, want 255", v)
	}
}

func TestBinaryLiteralInExpressionContext(t *testing.T) {
	// SBI is reserved for decimal literals (§4.D); a binary literal
	// always uses the full NUMLIT envelope even when its value would
	// fit in SBI's range.
	out := tokenize(t, "LET A = %101")
	idx := -1
	for i := 0; i < len(out); i++ {
		if out[i] == byte(token.NUMLIT) {
			idx = i
			break
		}
	}
	if idx < 0 {
		t.Fatalf("expected NUMLIT token in %x", out)
	}
	base, width := token.SplitNumTypeByte(out[idx+1])
	if base != token.NumBin || width != token.WidthI8 {
		t.Fatalf("base/width = %x/%x", base, width)
	}
	if int8(out[idx+2]) != 5 {
		t.Fatalf("value = %d, want 5 (binary 101)", int8(out[idx+2]))
	}
}

func TestOctalLiteral(t *testing.T) {
	out := tokenize(t, "LET A = @17")
	idx := -1
	for i := 0; i < len(out); i++ {
		if out[i] == byte(token.NUMLIT) {
			idx = i
			break
		}
	}
	if idx < 0 {
		t.Fatalf("no NUMLIT in %x", out)
	}
	base, width := token.SplitNumTypeByte(out[idx+1])
	if base != token.NumOct || width != token.WidthI8 {
		t.Fatalf("base/width = %x/%x", base, width)
	}
	if int8(out[idx+2]) != 15 {
		t.Fatalf("value = %d, want 15 (octal 17)", int8(out[idx+2]))
	}
}

func TestStringLiteral(t *testing.T) {
	out := tokenize(t, `PRINT "HI"`)
	found := false
	for i := 0; i < len(out)-1; i++ {
		if out[i] == byte(token.STRLIT) && out[i+1] == 2 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected STRLIT len 2 in %x", out)
	}
}

func TestUnterminatedString(t *testing.T) {
	tz := New(keyword.New())
	_, err := tz.Tokenize([]byte(`PRINT "HI`))
	if err == nil {
		t.Fatal("expected error for unterminated string")
	}
	te, ok := err.(*Error)
	if !ok || te.Code != token.ErrStringTerm {
		t.Fatalf("err = %v, want ErrStringTerm", err)
	}
}

func TestIdentifierSigilsPartOfName(t *testing.T) {
	out := tokenize(t, "LET A$ = B%")
	count := 0
	for i := 0; i < len(out); i++ {
		if out[i] == byte(token.IDENT) {
			count++
		}
	}
	if count != 2 {
		t.Fatalf("expected 2 IDENT tokens, got %d in %x", count, out)
	}
}

func TestArraySigilFoldsParen(t *testing.T) {
	out := tokenize(t, "LET X(1) = 5")
	idx := -1
	for i := 0; i < len(out)-1; i++ {
		if out[i] == byte(token.IDENT) {
			idx = i
			break
		}
	}
	if idx < 0 {
		t.Fatal("no IDENT token found")
	}
	n := int(out[idx+1])
	name := string(out[idx+2 : idx+2+n])
	if name != "X(" {
		t.Fatalf("identifier name = %q, want \"X(\"", name)
	}
}

func TestLabelToken(t *testing.T) {
	out := tokenize(t, "LOOP: GOTO LOOP")
	if out[0] != byte(token.LABEL) {
		t.Fatalf("first token = %#x, want LABEL", out[0])
	}
	n := int(out[1])
	name := string(out[2 : 2+n])
	if name != "LOOP" {
		t.Fatalf("label text = %q, want LOOP", name)
	}
}

func TestRemComment(t *testing.T) {
	out := tokenize(t, "REM this is a comment")
	if out[0] != byte(token.REM) {
		t.Fatalf("first token = %#x, want REM", out[0])
	}
}

func TestApostropheComment(t *testing.T) {
	out := tokenize(t, "PRINT A ' trailing note")
	found := false
	for i := 0; i < len(out); i++ {
		if out[i] == byte(token.REM) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected REM token in %x", out)
	}
}

func TestKeywordFunctionNotMistakenForIdent(t *testing.T) {
	out := tokenize(t, "LET A = ASC(B$)")
	found := false
	for i := 0; i+1 < len(out); i++ {
		if token.Code(out[i])<<8|token.Code(out[i+1]) == token.KwAsc {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected ASC keyword code in %x", out)
	}
}

func TestTwoCharOperators(t *testing.T) {
	cases := []struct {
		src  string
		code token.Code
	}{
		{"A <= B", token.OpLE},
		{"A >= B", token.OpGE},
		{"A <> B", token.OpNE},
		{"A ** B", token.OpPow},
		{"A << B", token.OpShl},
		{"A >> B", token.OpShr},
	}
	for _, c := range cases {
		out := tokenize(t, c.src)
		found := false
		for i := 0; i+1 < len(out); i++ {
			if token.Code(out[i])<<8|token.Code(out[i+1]) == c.code {
				found = true
			}
		}
		if !found {
			t.Fatalf("%q: expected code %#x in %x", c.src, c.code, out)
		}
	}
}

func TestExponentRequiresDigits(t *testing.T) {
	tz := New(keyword.New())
	_, err := tz.Tokenize([]byte("LET A = 1E"))
	if err == nil {
		t.Fatal("expected error for bare exponent marker")
	}
	te, ok := err.(*Error)
	if !ok || te.Code != token.ErrNumberBad {
		t.Fatalf("err = %v, want ErrNumberBad", err)
	}
}

func TestFractionalDecimalFloat(t *testing.T) {
	out := tokenize(t, "LET A = 3.5")
	idx := -1
	for i := 0; i < len(out); i++ {
		if out[i] == byte(token.NUMLIT) {
			idx = i
			break
		}
	}
	if idx < 0 {
		t.Fatalf("no NUMLIT in %x", out)
	}
	_, width := token.SplitNumTypeByte(out[idx+1])
	if !width.IsFloat() {
		t.Fatalf("width = %x, want a float width", width)
	}
}

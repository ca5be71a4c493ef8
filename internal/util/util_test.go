package util

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewSessionIDIsUnique(t *testing.T) {
	a := NewSessionID()
	b := NewSessionID()
	if a == "" || b == "" {
		t.Fatal("expected non-empty session IDs")
	}
	if a == b {
		t.Fatal("expected distinct session IDs across calls")
	}
}

func TestHexDumpFormatsRowsAndGutter(t *testing.T) {
	var out bytes.Buffer
	HexDump(&out, []byte("HELLO"))
	got := out.String()
	if !strings.HasPrefix(got, "00000000  ") {
		t.Fatalf("HexDump = %q, want offset-prefixed row", got)
	}
	if !strings.Contains(got, "|HELLO") {
		t.Fatalf("HexDump = %q, want ASCII gutter", got)
	}
}

func TestByteSizeHumanizes(t *testing.T) {
	if got := ByteSize(1024); got == "1024" {
		t.Fatalf("ByteSize(1024) = %q, want a humanized unit", got)
	}
}

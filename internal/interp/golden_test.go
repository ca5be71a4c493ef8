package interp

import (
	"bytes"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestListOutputSnapshots pins the detokenizer's rendering of a handful
// of representative stored lines, the same go-snaps idiom the teacher
// uses for its fixture output comparisons.
func TestListOutputSnapshots(t *testing.T) {
	cases := []struct {
		name  string
		lines []string
	}{
		{"arithmetic", []string{`10 LET X% = 5 + 3 * 2`}},
		{"string_concat_pow", []string{`20 ? "N=" + STR$(2 ** 10)`}},
		{"dim_static_array", []string{`30 DIM B(2,3,4)`}},
		{"dim_assoc_array", []string{`40 DIM H$() ASSOC`}},
		{"hex_and_binary_literals", []string{`50 LET Y% = $FF + %101`}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			in := New(&out)
			for _, line := range tc.lines {
				if err := in.InterpretLine(line); err != nil {
					t.Fatalf("InterpretLine(%q): %v", line, err)
				}
			}
			out.Reset()
			if err := in.List(&out, 0, 0xFFFFFF); err != nil {
				t.Fatalf("List: %v", err)
			}
			snaps.MatchSnapshot(t, out.String())
		})
	}
}

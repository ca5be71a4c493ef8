// Package util implements the Utilities component (§4.L), expanded by
// SPEC_FULL.md §4.P: small formatting and timing helpers shared by the
// CLI host and the external collaborators, grounded on the ambient
// helper style of the example pack (sentra-language-sentra's
// internal/database and internal/network packages format sizes,
// timestamps and connection IDs the same ad hoc way rather than
// through a shared stdlib-only helper).
package util

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// NewSessionID mints a session correlation ID for one Interpreter
// instance, the same role sentra's connection tables give each
// DBConnection/WebSocketConn: a short opaque string to tag --verbose
// output with.
func NewSessionID() string {
	return uuid.NewString()
}

// Elapsed renders a duration the way a human reads it, for CLI timing
// output (e.g. "run" reporting how long a program took).
func Elapsed(since time.Time) string {
	return humanize.RelTime(since, time.Now(), "ago", "from now")
}

// ByteSize renders a byte count in humanized units, so a reader sees
// "64 kB" instead of a bare integer. No error message calls it.
func ByteSize(n int) string {
	return humanize.Bytes(uint64(n))
}

// HexDump writes data as a classic 16-bytes-per-line hex dump with an
// ASCII gutter, for showing raw token-stream bytes. The --trace path
// prints a LIST of the program instead and does not call it.
func HexDump(w io.Writer, data []byte) {
	for off := 0; off < len(data); off += 16 {
		end := off + 16
		if end > len(data) {
			end = len(data)
		}
		row := data[off:end]

		fmt.Fprintf(w, "%08x  ", off)
		for i := 0; i < 16; i++ {
			if i < len(row) {
				fmt.Fprintf(w, "%02x ", row[i])
			} else {
				fmt.Fprint(w, "   ")
			}
			if i == 7 {
				fmt.Fprint(w, " ")
			}
		}
		fmt.Fprint(w, " |")
		for _, b := range row {
			if b >= 0x20 && b < 0x7f {
				fmt.Fprintf(w, "%c", b)
			} else {
				fmt.Fprint(w, ".")
			}
		}
		fmt.Fprintln(w, "|")
	}
}

// Sprintf is a thin wrapper kept for symmetry with the error package's
// own Format composition; it exists so call sites that build
// diagnostic strings read uniformly whether they go through
// errors.New or a plain utility string.
func Sprintf(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}

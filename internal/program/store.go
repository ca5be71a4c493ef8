// Package program implements the Line-Info Manager & Program Store
// (§4.F): the stored-program half of the interpreter, which owns a
// byte buffer of tokenized line bodies and a sorted index of which
// byte range belongs to which line number.
//
// The buffer-plus-compactor relationship is grounded on the teacher's
// bytecode.Chunk (a single append-only byte slice the VM walked by
// offset); this package adds the line-info index and the compaction
// strategy the teacher never needed, since DWScript had no notion of
// live vs. orphaned byte ranges within one buffer.
package program

import (
	"fmt"
	"sort"

	"github.com/ekkehard/priamosbasic/internal/buffer"
	"github.com/ekkehard/priamosbasic/internal/token"
	"github.com/ekkehard/priamosbasic/internal/tokenstream"
)

// LineInfo records where one line's tokenized bytes live in the
// buffer.
type LineInfo struct {
	LineNo uint32
	Offset int
	Length int
}

// Store owns the token byte buffer and the sorted line index. It
// implements buffer.Compactor so the buffer can reclaim orphaned bytes
// left behind by edited or deleted lines.
type Store struct {
	buf            *buffer.Buffer
	lines          []LineInfo
	lastLineNumber uint32
	haveLast       bool
	compacting     bool
}

// New returns an empty program store.
func New() *Store {
	s := &Store{buf: buffer.New()}
	s.buf.SetCompactor(s)
	return s
}

// Lines returns the line-info records in ascending line-number order.
// Callers must not mutate the returned slice.
func (s *Store) Lines() []LineInfo { return s.lines }

// Len returns the number of stored lines.
func (s *Store) Len() int { return len(s.lines) }

// Find returns the line-info record for lineNo, if present.
func (s *Store) Find(lineNo uint32) (LineInfo, bool) {
	i := sort.Search(len(s.lines), func(i int) bool { return s.lines[i].LineNo >= lineNo })
	if i < len(s.lines) && s.lines[i].LineNo == lineNo {
		return s.lines[i], true
	}
	return LineInfo{}, false
}

// Bytes returns the tokenized bytes for one stored line.
func (s *Store) Bytes(li LineInfo) []byte {
	return s.buf.Bytes()[li.Offset : li.Offset+li.Length]
}

// Scanner returns a token scanner positioned at the start of li's
// bytes, for LIST/RUN to detokenize or interpret.
func (s *Store) Scanner(li LineInfo) *tokenstream.Scanner {
	return tokenstream.New(s.Bytes(li))
}

// insertSort inserts or overwrites a line record, keeping s.lines
// sorted by LineNo. Per §4.F: appending past lastLineNumber is O(1);
// overwriting the tail is O(1); anything else binary-searches for the
// slot and shifts the records after it.
func (s *Store) insertSort(rec LineInfo) {
	if !s.haveLast || rec.LineNo > s.lastLineNumber {
		s.lines = append(s.lines, rec)
		s.lastLineNumber = rec.LineNo
		s.haveLast = true
		return
	}
	if rec.LineNo == s.lastLineNumber {
		s.lines[len(s.lines)-1] = rec
		return
	}
	i := sort.Search(len(s.lines), func(i int) bool { return s.lines[i].LineNo >= rec.LineNo })
	if i < len(s.lines) && s.lines[i].LineNo == rec.LineNo {
		s.lines[i] = rec
		return
	}
	s.lines = append(s.lines, LineInfo{})
	copy(s.lines[i+1:], s.lines[i:])
	s.lines[i] = rec
}

// DeleteLine removes the record for lineNo, if present, orphaning its
// bytes in the buffer. recomputes lastLineNumber if the deleted line
// held the tail.
func (s *Store) DeleteLine(lineNo uint32) {
	i := sort.Search(len(s.lines), func(i int) bool { return s.lines[i].LineNo >= lineNo })
	if i >= len(s.lines) || s.lines[i].LineNo != lineNo {
		return
	}
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
	if len(s.lines) == 0 {
		s.haveLast = false
		return
	}
	s.lastLineNumber = s.lines[len(s.lines)-1].LineNo
}

// EnterLine consumes a fully tokenized line (§4.F's three-step rule):
// a line whose first token isn't LINENO runs immediately and is not
// stored; a LINENO followed by bare EOL deletes that line; otherwise
// the bytes are appended and indexed.
func (s *Store) EnterLine(tokenized []byte) error {
	sc := tokenstream.New(tokenized)
	typ, err := sc.TokenType()
	if err != nil {
		return err
	}
	if typ != token.LINENO {
		return nil
	}
	lineNo, err := sc.GetLineNo()
	if err != nil {
		return err
	}
	if err := sc.SkipToken(); err != nil {
		return err
	}
	rest, err := sc.TokenType()
	if err != nil {
		return err
	}
	if rest == token.EOL {
		s.DeleteLine(lineNo)
		return nil
	}

	if s.buf.GetWritePos() != s.buf.Len() {
		s.buf.SetWritePos(s.buf.Len())
	}
	if err := s.buf.WriteBlock(tokenized); err != nil {
		return err
	}
	// WriteBlock may compact the buffer before growing it, which moves
	// the write position, so the offset is taken after the write.
	offset := s.buf.GetWritePos() - len(tokenized)
	s.insertSort(LineInfo{LineNo: lineNo, Offset: offset, Length: len(tokenized)})
	return nil
}

// Compact implements buffer.Compactor: it rebuilds b with exactly the
// live bytes of every stored line, in line-number order, rewriting
// each record's Offset to match. Re-entrant compaction (a compact
// triggering buffer growth that itself needs compaction) is refused.
func (s *Store) Compact(b *buffer.Buffer) error {
	if s.compacting {
		return fmt.Errorf("program: re-entrant compaction")
	}
	s.compacting = true
	defer func() { s.compacting = false }()

	total := 0
	for _, li := range s.lines {
		total += li.Length
	}
	tmp := buffer.NewCapacity(total)
	newLines := make([]LineInfo, len(s.lines))
	for i, li := range s.lines {
		newOffset := tmp.GetWritePos()
		if err := tmp.WriteBlock(b.Bytes()[li.Offset : li.Offset+li.Length]); err != nil {
			return err
		}
		newLines[i] = LineInfo{LineNo: li.LineNo, Offset: newOffset, Length: li.Length}
	}

	b.Reset()
	if err := b.WriteBlock(tmp.Bytes()); err != nil {
		return err
	}
	s.lines = newLines
	return nil
}

// Package tokenstream implements the Token Scanner (§4.E): a read-only
// forward cursor over a tokenized line, able to classify the token at
// the cursor, skip past it without decoding its payload, or decode a
// typed payload on demand.
//
// The cursor/peek-ahead shape is grounded on the teacher's
// internal/lexer reader conventions (a position plus saved/restored
// offsets for backtracking); the per-primary-byte skip-length table is
// new, since the teacher's token stream was never a binary envelope.
package tokenstream

import (
	"fmt"
	"math"

	"github.com/ekkehard/priamosbasic/internal/token"
)

// Scanner reads a binary token stream produced by the tokenizer.
type Scanner struct {
	data []byte
	pos  int
}

// New wraps data for scanning from offset 0.
func New(data []byte) *Scanner {
	return &Scanner{data: data}
}

// GetPos returns the current cursor offset.
func (s *Scanner) GetPos() int { return s.pos }

// SetPos repositions the cursor for lookahead/backtracking.
func (s *Scanner) SetPos(pos int) { s.pos = pos }

func (s *Scanner) byteAt(off int) (byte, error) {
	if s.pos+off >= len(s.data) {
		return 0, fmt.Errorf("tokenstream: read past end at %d", s.pos+off)
	}
	return s.data[s.pos+off], nil
}

// isTwoBytePrimary reports whether b0 is the high byte of a two-byte
// code: one of the keyword families or the 0xFF tokenizer-error
// family. Every other primary byte is a one-byte type code.
func isTwoBytePrimary(b0 byte) bool {
	switch b0 {
	case token.HighByte(token.FamilyStatement), token.HighByte(token.FamilyFunction),
		token.HighByte(token.FamilyModifier), token.HighByte(token.FamilyOperator), 0xFF:
		return true
	}
	return false
}

// TokenType returns the primary or two-byte code at the cursor without
// advancing it.
func (s *Scanner) TokenType() (token.Code, error) {
	b0, err := s.byteAt(0)
	if err != nil {
		return 0, err
	}
	if isTwoBytePrimary(b0) {
		b1, err := s.byteAt(1)
		if err != nil {
			return 0, err
		}
		return token.Code(b0)<<8 | token.Code(b1), nil
	}
	return token.Code(b0), nil
}

// SkipToken advances the cursor past exactly one token, per §4.E's
// skip-length table keyed off the primary byte.
func (s *Scanner) SkipToken() error {
	b0, err := s.byteAt(0)
	if err != nil {
		return err
	}
	switch {
	case token.Code(b0) == token.SBI:
		s.pos += 2
	case token.Code(b0) == token.LINENO:
		s.pos += 4
	case token.Code(b0) == token.IDENT || token.Code(b0) == token.STRLIT ||
		token.Code(b0) == token.LABEL || token.Code(b0) == token.REM:
		n, err := s.byteAt(1)
		if err != nil {
			return err
		}
		s.pos += 2 + int(n)
	case token.Code(b0) == token.NUMLIT:
		typeByte, err := s.byteAt(1)
		if err != nil {
			return err
		}
		_, width := token.SplitNumTypeByte(typeByte)
		s.pos += 2 + width.PayloadLen()
	case isTwoBytePrimary(b0):
		s.pos += 2
	default:
		s.pos++
	}
	if s.pos > len(s.data) {
		return fmt.Errorf("tokenstream: SkipToken overran buffer (pos %d, len %d)", s.pos, len(s.data))
	}
	return nil
}

// GetLineNo decodes a LINENO payload at the cursor (cursor must be
// positioned on the LINENO primary byte).
func (s *Scanner) GetLineNo() (uint32, error) {
	b0, err := s.byteAt(0)
	if err != nil {
		return 0, err
	}
	if token.Code(b0) != token.LINENO {
		return 0, fmt.Errorf("tokenstream: GetLineNo called on non-LINENO token %#x", b0)
	}
	hi, err := s.byteAt(1)
	if err != nil {
		return 0, err
	}
	mid, err := s.byteAt(2)
	if err != nil {
		return 0, err
	}
	lo, err := s.byteAt(3)
	if err != nil {
		return 0, err
	}
	return uint32(hi)<<16 | uint32(mid)<<8 | uint32(lo), nil
}

// GetText decodes a length-prefixed text payload (IDENT/STRLIT/LABEL/
// REM) at the cursor. The returned slice aliases the scanner's backing
// array.
func (s *Scanner) GetText() ([]byte, error) {
	n, err := s.byteAt(1)
	if err != nil {
		return nil, err
	}
	start := s.pos + 2
	end := start + int(n)
	if end > len(s.data) {
		return nil, fmt.Errorf("tokenstream: text payload overruns buffer")
	}
	return s.data[start:end], nil
}

// IsInt reports whether the NUMLIT/SBI token at the cursor holds an
// integer payload (as opposed to a float).
func (s *Scanner) IsInt() (bool, error) {
	b0, err := s.byteAt(0)
	if err != nil {
		return false, err
	}
	switch token.Code(b0) {
	case token.SBI:
		return true, nil
	case token.NUMLIT:
		typeByte, err := s.byteAt(1)
		if err != nil {
			return false, err
		}
		_, width := token.SplitNumTypeByte(typeByte)
		return !width.IsFloat(), nil
	default:
		return false, fmt.Errorf("tokenstream: IsInt called on non-numeric token %#x", b0)
	}
}

// GetInt decodes the numeric payload at the cursor as an int64. Floats
// are truncated toward zero.
func (s *Scanner) GetInt() (int64, error) {
	b0, err := s.byteAt(0)
	if err != nil {
		return 0, err
	}
	if token.Code(b0) == token.SBI {
		v, err := s.byteAt(1)
		if err != nil {
			return 0, err
		}
		return int64(int8(v)), nil
	}
	if token.Code(b0) != token.NUMLIT {
		return 0, fmt.Errorf("tokenstream: GetInt called on non-numeric token %#x", b0)
	}
	typeByte, err := s.byteAt(1)
	if err != nil {
		return 0, err
	}
	_, width := token.SplitNumTypeByte(typeByte)
	payload, err := s.payload(2, width.PayloadLen())
	if err != nil {
		return 0, err
	}
	switch width {
	case token.WidthI8:
		return int64(int8(payload[0])), nil
	case token.WidthI16:
		return int64(int16(be16(payload))), nil
	case token.WidthI32:
		return int64(int32(be32(payload))), nil
	case token.WidthI64:
		return int64(be64(payload)), nil
	case token.WidthF32:
		return int64(math.Float32frombits(be32(payload))), nil
	case token.WidthF64:
		return int64(math.Float64frombits(be64(payload))), nil
	}
	return 0, fmt.Errorf("tokenstream: unknown width %v", width)
}

// GetNumber decodes the numeric payload at the cursor as a float64.
func (s *Scanner) GetNumber() (float64, error) {
	b0, err := s.byteAt(0)
	if err != nil {
		return 0, err
	}
	if token.Code(b0) == token.SBI {
		v, err := s.byteAt(1)
		if err != nil {
			return 0, err
		}
		return float64(int8(v)), nil
	}
	if token.Code(b0) != token.NUMLIT {
		return 0, fmt.Errorf("tokenstream: GetNumber called on non-numeric token %#x", b0)
	}
	typeByte, err := s.byteAt(1)
	if err != nil {
		return 0, err
	}
	_, width := token.SplitNumTypeByte(typeByte)
	payload, err := s.payload(2, width.PayloadLen())
	if err != nil {
		return 0, err
	}
	switch width {
	case token.WidthI8:
		return float64(int8(payload[0])), nil
	case token.WidthI16:
		return float64(int16(be16(payload))), nil
	case token.WidthI32:
		return float64(int32(be32(payload))), nil
	case token.WidthI64:
		return float64(int64(be64(payload))), nil
	case token.WidthF32:
		return float64(math.Float32frombits(be32(payload))), nil
	case token.WidthF64:
		return math.Float64frombits(be64(payload)), nil
	}
	return 0, fmt.Errorf("tokenstream: unknown width %v", width)
}

func (s *Scanner) payload(off, n int) ([]byte, error) {
	start := s.pos + off
	end := start + n
	if end > len(s.data) {
		return nil, fmt.Errorf("tokenstream: numeric payload overruns buffer")
	}
	return s.data[start:end], nil
}

func be16(p []byte) uint16 { return uint16(p[0])<<8 | uint16(p[1]) }
func be32(p []byte) uint32 {
	return uint32(p[0])<<24 | uint32(p[1])<<16 | uint32(p[2])<<8 | uint32(p[3])
}
func be64(p []byte) uint64 {
	var v uint64
	for _, b := range p {
		v = v<<8 | uint64(b)
	}
	return v
}

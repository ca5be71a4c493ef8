// Package detok implements the Detokenizer (§4.J): the reverse mapping
// from a binary token stream back to printable source text, used by
// the LIST command.
package detok

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ekkehard/priamosbasic/internal/errors"
	"github.com/ekkehard/priamosbasic/internal/keyword"
	"github.com/ekkehard/priamosbasic/internal/token"
	"github.com/ekkehard/priamosbasic/internal/tokenstream"
)

// Detokenizer renders a token stream as printable text, resolving
// keyword codes against a registry.
type Detokenizer struct {
	kw *keyword.Registry
}

// New returns a Detokenizer resolving keyword text against kw.
func New(kw *keyword.Registry) *Detokenizer {
	return &Detokenizer{kw: kw}
}

// Render walks data, which must be a complete tokenized line (ending
// in EOL), producing its printable text with a single space between
// successive tokens.
func (d *Detokenizer) Render(data []byte) (string, error) {
	sc := tokenstream.New(data)
	var b strings.Builder
	first := true

	for {
		typ, err := sc.TokenType()
		if err != nil {
			return "", err
		}
		if typ == token.EOL {
			break
		}
		if !first {
			b.WriteByte(' ')
		}
		first = false

		piece, err := d.renderOne(sc, typ)
		if err != nil {
			return "", err
		}
		b.WriteString(piece)

		if err := sc.SkipToken(); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func (d *Detokenizer) renderOne(sc *tokenstream.Scanner, typ token.Code) (string, error) {
	switch typ {
	case token.LINENO:
		v, err := sc.GetLineNo()
		if err != nil {
			return "", err
		}
		return strconv.FormatUint(uint64(v), 10), nil

	case token.IDENT:
		text, err := sc.GetText()
		if err != nil {
			return "", err
		}
		return string(text), nil

	case token.STRLIT:
		text, err := sc.GetText()
		if err != nil {
			return "", err
		}
		return `"` + string(text) + `"`, nil

	case token.LABEL:
		text, err := sc.GetText()
		if err != nil {
			return "", err
		}
		return string(text) + ":", nil

	case token.REM:
		text, err := sc.GetText()
		if err != nil {
			return "", err
		}
		return "REM " + string(text), nil

	case token.NUMLIT, token.SBI:
		v, err := sc.GetNumber()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%g", v), nil

	default:
		if typ < 0x0100 {
			// single-byte operator: the literal ASCII character.
			return string(byte(typ)), nil
		}
		if sym, ok := symbolOnlyOperators[typ]; ok {
			return sym, nil
		}
		text, ok := d.kw.LookupByCode(typ)
		if !ok {
			return "", errors.New(errors.Interpret, "detokenizer: no registry entry for code %#x", typ)
		}
		return text, nil
	}
}

// symbolOnlyOperators renders the handful of two-char operator codes
// that have no keyword-text spelling in the registry (§6.1's "<=, >=,
// <>" plus the additional POW/INC/DEC codes): they are always written
// as symbols, never as words.
var symbolOnlyOperators = map[token.Code]string{
	token.OpLE:  "<=",
	token.OpGE:  ">=",
	token.OpNE:  "<>",
	token.OpPow: "**",
	token.OpInc: "++",
	token.OpDec: "--",
}

// Package value implements PriamosBASIC's Value model (§4.G): the
// tagged runtime values (Int, Real, Str, the three array kinds, and
// Function) plus the cross-type coercion table and ALU operations the
// evaluator dispatches through.
//
// The Value interface shape (Type()/String(), one concrete struct per
// kind satisfying it) is grounded directly on the teacher's
// internal/interp/value.go (IntegerValue/FloatValue/StringValue/...);
// this package replaces the teacher's object/class value kinds with
// the three array kinds and the boxed Function handler this dialect's
// value model needs instead.
package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ekkehard/priamosbasic/internal/errors"
)

// Value is satisfied by every runtime value kind.
type Value interface {
	Type() string
	String() string

	GetInt() int64
	GetReal() float64
	GetStr(owned bool) string
	SetInt(v int64)
	SetReal(v float64)
	SetStr(s string)
}

// base implements the zero-valued default coercions (§4.G); concrete
// types embed it and override what differs.
type base struct{}

func (base) GetInt() int64          { return 0 }
func (base) GetReal() float64       { return 0 }
func (base) GetStr(bool) string     { return "" }
func (base) SetInt(int64)           {}
func (base) SetReal(float64)        {}
func (base) SetStr(string)          {}

// Int is a 64-bit signed integer value.
type Int struct {
	base
	V int64
}

func NewInt(v int64) *Int { return &Int{V: v} }

func (i *Int) Type() string      { return "Int" }
func (i *Int) String() string    { return strconv.FormatInt(i.V, 10) }
func (i *Int) GetInt() int64     { return i.V }
func (i *Int) GetReal() float64  { return float64(i.V) }
func (i *Int) GetStr(bool) string {
	return strconv.FormatInt(i.V, 10)
}
func (i *Int) SetInt(v int64)    { i.V = v }
func (i *Int) SetReal(v float64) { i.V = int64(v) }
func (i *Int) SetStr(s string)   { i.V = parseIntFromString(s) }

// Real is an IEEE-754 double value.
type Real struct {
	base
	V float64
}

func NewReal(v float64) *Real { return &Real{V: v} }

func (r *Real) Type() string       { return "Real" }
func (r *Real) String() string     { return strconv.FormatFloat(r.V, 'g', -1, 64) }
func (r *Real) GetInt() int64      { return int64(r.V) } // truncates toward zero
func (r *Real) GetReal() float64   { return r.V }
func (r *Real) GetStr(bool) string { return fmt.Sprintf("%g", r.V) }
func (r *Real) SetInt(v int64)     { r.V = float64(v) }
func (r *Real) SetReal(v float64)  { r.V = v }
func (r *Real) SetStr(s string)    { r.V = parseRealFromString(s) }

// Str is a variable-length byte string value. Owned reports whether
// this Str owns its storage (per §5's resource-discipline rule);
// borrowed Strs must be consumed or copied before their lender frees.
type Str struct {
	base
	V     string
	Owned bool
}

func NewStr(s string) *Str { return &Str{V: s, Owned: true} }

// Borrow returns a Str that does not own its storage: the evaluator
// must consume it within one ALU step or copy it on assignment.
func Borrow(s string) *Str { return &Str{V: s, Owned: false} }

func (s *Str) Type() string        { return "Str" }
func (s *Str) String() string      { return s.V }
func (s *Str) GetInt() int64       { return parseIntFromString(s.V) }
func (s *Str) GetReal() float64    { return parseRealFromString(s.V) }
func (s *Str) GetStr(owned bool) string {
	_ = owned
	return s.V
}
func (s *Str) SetStr(v string) { s.V = v; s.Owned = true }

// Copy returns an owned duplicate, used when an assignment target must
// not alias a borrowed source.
func (s *Str) Copy() *Str { return &Str{V: s.V, Owned: true} }

// parseIntFromString implements the Str->Int coercion: after trimming
// spaces it reads an optional sign and the run of decimal digits that
// follows, ignoring anything after that run; a string that does not
// start that way (including non-decimal literals such as "$FF")
// yields 0. It does not go through the tokenizer.
func parseIntFromString(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	sign := int64(1)
	i := 0
	if s[0] == '+' || s[0] == '-' {
		if s[0] == '-' {
			sign = -1
		}
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == start {
		return 0
	}
	v, err := strconv.ParseInt(s[start:i], 10, 64)
	if err != nil {
		return 0
	}
	return sign * v
}

func parseRealFromString(s string) float64 {
	s = strings.TrimSpace(s)
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	start := 0
	end := i
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || s[end] == '.') {
		end++
	}
	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		end++
		if end < len(s) && (s[end] == '+' || s[end] == '-') {
			end++
		}
		for end < len(s) && s[end] >= '0' && s[end] <= '9' {
			end++
		}
	}
	if end == i {
		return 0
	}
	v, err := strconv.ParseFloat(s[start:end], 64)
	if err != nil {
		return 0
	}
	return v
}

// AssignBaseType enforces §4.G's assignment compatibility rule: string
// assigns only to string; int/real assign to either int or real.
func AssignBaseType(dst, src Value) error {
	switch dst.(type) {
	case *Str:
		if _, ok := src.(*Str); !ok {
			return errors.New(errors.TypeMismatch, "cannot assign %s to Str", src.Type())
		}
	case *Int, *Real:
		switch src.(type) {
		case *Int, *Real:
		default:
			return errors.New(errors.TypeMismatch, "cannot assign %s to %s", src.Type(), dst.Type())
		}
	}
	return nil
}

// keyBytes encodes an index Value to its associative-array key bytes
// (§4.G): Int/Real as their raw little-endian 8-byte bit pattern, Str
// as its bytes.
func keyBytes(v Value) []byte {
	switch t := v.(type) {
	case *Int:
		b := make([]byte, 8)
		u := uint64(t.V)
		for i := 0; i < 8; i++ {
			b[i] = byte(u)
			u >>= 8
		}
		return b
	case *Real:
		bits := math.Float64bits(t.V)
		b := make([]byte, 8)
		for i := 0; i < 8; i++ {
			b[i] = byte(bits)
			bits >>= 8
		}
		return b
	case *Str:
		return []byte(t.V)
	default:
		return nil
	}
}

package lexer

import (
	"math"

	"github.com/ekkehard/priamosbasic/internal/token"
)

// numLiteral is the parsed-but-not-yet-encoded form of a numeric
// literal (§4.D).
type numLiteral struct {
	base        token.NumBase
	intDigits   string
	fracDigits  string
	hasExponent bool
	expSign     int
	expDigits   string
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return -1
	}
}

func isDigitForBase(c byte, base token.NumBase) bool {
	v := digitValue(c)
	if v < 0 {
		return false
	}
	switch base {
	case token.NumBin:
		return v < 2
	case token.NumOct:
		return v < 8
	case token.NumDec:
		return v < 10
	case token.NumHex:
		return v < 16
	}
	return false
}

func baseRadix(base token.NumBase) int {
	switch base {
	case token.NumBin:
		return 2
	case token.NumOct:
		return 8
	case token.NumDec:
		return 10
	case token.NumHex:
		return 16
	}
	return 10
}

// digitsToUint64 converts a validated digit run in the given base to an
// unsigned 64-bit value. ok is false on overflow.
func digitsToUint64(digits string, base token.NumBase) (v uint64, ok bool) {
	radix := uint64(baseRadix(base))
	for i := 0; i < len(digits); i++ {
		d := uint64(digitValue(digits[i]))
		next := v*radix + d
		if v != 0 && next/radix != v {
			return 0, false
		}
		if next < v {
			return 0, false
		}
		v = next
	}
	return v, true
}

// intDigitsToFloat converts an integer digit run in the given base to
// its magnitude contribution using direct arithmetic,
// mathematically equivalent to the spec's "transcribe to hex-float and
// delegate" strategy without needing a string intermediary.
func intDigitsToFloat(digits string, base token.NumBase) float64 {
	radix := float64(baseRadix(base))
	v := 0.0
	for i := 0; i < len(digits); i++ {
		v = v*radix + float64(digitValue(digits[i]))
	}
	return v
}

func fracDigitsToFloat(digits string, base token.NumBase) float64 {
	radix := float64(baseRadix(base))
	v := 0.0
	scale := 1.0
	for i := 0; i < len(digits); i++ {
		scale /= radix
		v += float64(digitValue(digits[i])) * scale
	}
	return v
}

// value computes the literal's magnitude as a float64.
func (n numLiteral) value() float64 {
	mantissa := intDigitsToFloat(n.intDigits, n.base) + fracDigitsToFloat(n.fracDigits, n.base)
	if !n.hasExponent {
		return mantissa
	}
	exp := 0
	for i := 0; i < len(n.expDigits); i++ {
		exp = exp*10 + digitValue(n.expDigits[i])
	}
	if n.expSign < 0 {
		exp = -exp
	}
	return mantissa * math.Pow(float64(baseRadix(n.base)), float64(exp))
}

func (n numLiteral) isFloat() bool {
	return n.fracDigits != "" || n.hasExponent
}

// widthForInt chooses the narrowest signed integer width containing v,
// and reports whether the compact SBI encoding applies (decimal, in
// [-128,127]).
func widthForInt(v int64, base token.NumBase) (token.NumWidth, bool) {
	useSBI := base == token.NumDec && v >= -128 && v <= 127
	switch {
	case v >= -128 && v <= 127:
		return token.WidthI8, useSBI
	case v >= -32768 && v <= 32767:
		return token.WidthI16, useSBI
	case v >= -2147483648 && v <= 2147483647:
		return token.WidthI32, useSBI
	default:
		return token.WidthI64, useSBI
	}
}

// f32Eligible implements §4.D's real-encoding rule: the attempt to
// store a literal as f32 succeeds for +/-0, subnormal, +/-Inf, NaN, or
// a finite value whose rebased binary64 exponent lies in [-126,127]
// with its lower 29 mantissa bits all zero.
func float32bits(v float32) uint32 { return math.Float32bits(v) }
func float64bits(v float64) uint64 { return math.Float64bits(v) }

func f32Eligible(v float64) bool {
	if v == 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return true
	}
	bits := math.Float64bits(v)
	rawExp := int((bits>>52)&0x7FF) - 1023
	mant := bits & ((1 << 52) - 1)
	if rawExp < -1022 { // float64 subnormal: always representable as f32 subnormal or zero
		return true
	}
	lower29 := mant & ((1 << 29) - 1)
	return rawExp >= -126 && rawExp <= 127 && lower29 == 0
}

// Package token defines PriamosBASIC's binary token code space: the
// primary type bytes, the two-byte operator/keyword codes, and the
// family classification rules the rest of the pipeline relies on.
//
// Readers recognize multibyte tokens by inspecting the high byte alone;
// one-byte tokens have a high byte below 0x03. Implementations may
// renumber inside a family but must never change which family a code
// belongs to, since the scanner and dispatcher key off the high byte.
package token

// Code is a token's primary identifying value: either a single-byte
// primary type/operator code (0x00-0xFF) or a two-byte code (keyword or
// keyword-operator) with its family in the high byte.
type Code uint16

// Primary single-byte token types.
const (
	EOL     Code = 0x00
	IDENT   Code = 0x05
	STRLIT  Code = 0x07
	LINENO  Code = 0x08
	NUMLIT  Code = 0x09
	LABEL   Code = 0x0C
	SBI     Code = 0x11
	REM     Code = 0x27
)

// Single-character operator tokens: the code equals the ASCII value of
// the character.
const (
	OpLParen  Code = '('
	OpRParen  Code = ')'
	OpStar    Code = '*'
	OpPlus    Code = '+'
	OpComma   Code = ','
	OpMinus   Code = '-'
	OpSlash   Code = '/'
	OpColon   Code = ':'
	OpSemi    Code = ';'
	OpLT      Code = '<'
	OpEQ      Code = '='
	OpGT      Code = '>'
	OpPrint   Code = '?'
	OpLBrack  Code = '['
	OpRBrack  Code = ']'
	OpLBrace  Code = '{'
	OpPipe    Code = '|'
	OpRBrace  Code = '}'
	OpPling   Code = '!'
)

// Two-character operator tokens. All share high byte 0x0F.
const (
	OpLE          Code = 0x0F00
	OpGE          Code = 0x0F01
	OpNE          Code = 0x0F02
	OpAnd         Code = 0x0F03
	OpOr          Code = 0x0F04
	OpXor         Code = 0x0F05
	OpNot         Code = 0x0F06
	OpNand        Code = 0x0F07
	OpNor         Code = 0x0F08
	OpXnor        Code = 0x0F09
	OpEqv         Code = 0x0F10
	OpNeqv        Code = 0x0F11
	OpShl         Code = 0x0F12
	OpShr         Code = 0x0F13

	// §4.D names POW (**, ^), INC (++) and DEC (--) but the token table
	// in §3/§6.1 has no codes for them. They fill the three reserved
	// 0x0F0A-0x0F0C slots in the operator-keyword family rather than
	// extending the family past 0x0F13, preserving "every code in 0x0F
	// is a two-char/keyword operator" as a clean invariant.
	OpPow Code = 0x0F0A
	OpInc Code = 0x0F0B
	OpDec Code = 0x0F0C
)

// Keyword family high bytes (§6.1).
const (
	FamilyStatement Code = 0x0300
	FamilyModifier  Code = 0x0B00
	FamilyOperator  Code = 0x0F00
	FamilyFunction  Code = 0x0600
)

// Tokenizer error codes (§7): dedicated codes in 0xFFxx so a failure
// survives the byte-oriented interface without allocation.
const (
	ErrSyntax       Code = 0xFFFF
	ErrUnimplem     Code = 0xFFFE
	ErrStringTerm   Code = 0xFFFD
	ErrStringLong   Code = 0xFFFC
	ErrNumberLong   Code = 0xFFFB
	ErrNumberBad    Code = 0xFFFA
	ErrMemory       Code = 0xFFF9
)

// IsError reports whether c is one of the dedicated 0xFFxx failure codes.
func IsError(c Code) bool {
	return c&0xFF00 == 0xFF00
}

// HighByte returns the classifying high byte of a two-byte code, or 0
// for single-byte codes below 0x03.
func HighByte(c Code) byte {
	return byte(c >> 8)
}

// IsTwoByte reports whether c is encoded as two bytes in the token
// stream: codes with a high byte of 0x03 or greater, plus the two-byte
// operator family at 0x0F.
func IsTwoByte(c Code) bool {
	return HighByte(c) >= 0x03
}

// IsFunctionKeyword reports whether c names a built-in function keyword
// (§4.B): true exactly when the high byte is the function family 0x06.
func IsFunctionKeyword(c Code) bool {
	return HighByte(c) == byte(FamilyFunction>>8)
}

// IsStatementKeyword reports whether c names a statement keyword (0x03
// family).
func IsStatementKeyword(c Code) bool {
	return HighByte(c) == byte(FamilyStatement>>8)
}

// IsModifierKeyword reports whether c names a modifier keyword (0x0B
// family).
func IsModifierKeyword(c Code) bool {
	return HighByte(c) == byte(FamilyModifier>>8)
}

// IsOperatorKeyword reports whether c names an operator/two-char token
// (0x0F family), which includes both the bare two-char operators
// (<=, >=, <>) and the keyword operators (AND, OR, ...).
func IsOperatorKeyword(c Code) bool {
	return HighByte(c) == byte(FamilyOperator>>8)
}

// NumBase identifies the source base a numeric literal was written in.
type NumBase byte

const (
	NumBin NumBase = 0x20
	NumDec NumBase = 0x40
	NumHex NumBase = 0x80
	NumOct NumBase = 0xF0
)

// NumWidth identifies the storage width chosen for a numeric literal's
// payload.
type NumWidth byte

const (
	WidthI8  NumWidth = 0x0
	WidthI16 NumWidth = 0x1
	WidthI32 NumWidth = 0x2
	WidthI64 NumWidth = 0x3
	WidthF32 NumWidth = 0xE
	WidthF64 NumWidth = 0xF
)

// NumTypeByte packs a base and width into the single NUMLIT type byte
// (§6.2): high nibble is the base, low nibble is the width.
func NumTypeByte(base NumBase, width NumWidth) byte {
	return byte(base) | byte(width)
}

// SplitNumTypeByte decomposes a NUMLIT type byte back into base and
// width.
func SplitNumTypeByte(b byte) (NumBase, NumWidth) {
	return NumBase(b & 0xF0), NumWidth(b & 0x0F)
}

// PayloadLen returns the number of value bytes that follow a NUMLIT type
// byte, by width.
func (w NumWidth) PayloadLen() int {
	switch w {
	case WidthI8:
		return 1
	case WidthI16:
		return 2
	case WidthI32, WidthF32:
		return 4
	case WidthI64, WidthF64:
		return 8
	default:
		return 0
	}
}

// IsFloat reports whether w names a floating-point width.
func (w NumWidth) IsFloat() bool {
	return w == WidthF32 || w == WidthF64
}

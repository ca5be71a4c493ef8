package interp

import (
	"math"
	"math/rand"
	"strconv"
	"time"

	"github.com/ekkehard/priamosbasic/internal/token"
	"github.com/ekkehard/priamosbasic/internal/value"
)

// newBuiltins registers the function-family keywords (§3's 0x06
// family) this implementation actually carries out. Built-ins with no
// entry here (POS/HPOS/VPOS, CVI/CVF/MKI$/MKF$, the socket/file
// keywords) raise "not implemented" through evalBuiltinCall's normal
// FunctionNotDeclare path rather than a stub; the socket/file ones are
// wired from internal/external instead (§4.Q), not this table.
func newBuiltins() map[token.Code]*value.Function {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	b := make(map[token.Code]*value.Function)

	unary := func(code token.Code, name string, fn func(float64) float64) {
		b[code] = value.NewFunction(value.FuncBuiltin, name, 1, 1, func(call *value.CallArgs) error {
			call.Results = append(call.Results, value.NewReal(fn(call.Args[0].GetReal())))
			return nil
		})
	}

	b[token.KwAsc] = value.NewFunction(value.FuncBuiltin, "ASC", 1, 1, func(call *value.CallArgs) error {
		s := call.Args[0].GetStr(false)
		if s == "" {
			call.Results = append(call.Results, value.NewInt(0))
			return nil
		}
		call.Results = append(call.Results, value.NewInt(int64(s[0])))
		return nil
	})

	b[token.KwVal] = value.NewFunction(value.FuncBuiltin, "VAL", 1, 1, func(call *value.CallArgs) error {
		call.Results = append(call.Results, value.NewReal(call.Args[0].GetReal()))
		return nil
	})

	b[token.KwStrS] = value.NewFunction(value.FuncBuiltin, "STR$", 1, 1, func(call *value.CallArgs) error {
		call.Results = append(call.Results, value.NewStr(call.Args[0].GetStr(true)))
		return nil
	})

	b[token.KwLeftS] = value.NewFunction(value.FuncBuiltin, "LEFT$", 2, 2, func(call *value.CallArgs) error {
		s := call.Args[0].GetStr(false)
		n := int(call.Args[1].GetInt())
		if n < 0 {
			n = 0
		}
		if n > len(s) {
			n = len(s)
		}
		call.Results = append(call.Results, value.NewStr(s[:n]))
		return nil
	})

	b[token.KwRightS] = value.NewFunction(value.FuncBuiltin, "RIGHT$", 2, 2, func(call *value.CallArgs) error {
		s := call.Args[0].GetStr(false)
		n := int(call.Args[1].GetInt())
		if n < 0 {
			n = 0
		}
		if n > len(s) {
			n = len(s)
		}
		call.Results = append(call.Results, value.NewStr(s[len(s)-n:]))
		return nil
	})

	b[token.KwMidS] = value.NewFunction(value.FuncBuiltin, "MID$", 2, 3, func(call *value.CallArgs) error {
		s := call.Args[0].GetStr(false)
		start := int(call.Args[1].GetInt()) - 1
		if start < 0 {
			start = 0
		}
		if start > len(s) {
			start = len(s)
		}
		length := len(s) - start
		if len(call.Args) == 3 {
			length = int(call.Args[2].GetInt())
		}
		if length < 0 {
			length = 0
		}
		end := start + length
		if end > len(s) {
			end = len(s)
		}
		call.Results = append(call.Results, value.NewStr(s[start:end]))
		return nil
	})

	unary(token.KwSin, "SIN", math.Sin)
	unary(token.KwCos, "COS", math.Cos)
	unary(token.KwTan, "TAN", math.Tan)
	unary(token.KwAtn, "ATN", math.Atan)
	unary(token.KwLn, "LN", math.Log)
	unary(token.KwLog, "LOG", math.Log10)
	unary(token.KwLog2, "LOG2", math.Log2)
	unary(token.KwCot, "COT", func(x float64) float64 { return 1 / math.Tan(x) })

	b[token.KwRnd] = value.NewFunction(value.FuncBuiltin, "RND", 0, 0, func(call *value.CallArgs) error {
		call.Results = append(call.Results, value.NewReal(r.Float64()))
		return nil
	})

	b[token.KwBinS] = baseFormatter("BIN$", 2)
	b[token.KwOctS] = baseFormatter("OCT$", 8)
	b[token.KwDecS] = baseFormatter("DEC$", 10)
	b[token.KwHexS] = baseFormatter("HEX$", 16)

	b[token.KwTrue] = value.NewFunction(value.FuncBuiltin, "TRUE", 0, 0, func(call *value.CallArgs) error {
		call.Results = append(call.Results, value.NewInt(-1))
		return nil
	})
	b[token.KwFalse] = value.NewFunction(value.FuncBuiltin, "FALSE", 0, 0, func(call *value.CallArgs) error {
		call.Results = append(call.Results, value.NewInt(0))
		return nil
	})
	b[token.KwNil] = value.NewFunction(value.FuncBuiltin, "NIL", 0, 0, func(call *value.CallArgs) error {
		call.Results = append(call.Results, value.NewInt(0))
		return nil
	})
	b[token.KwTi] = value.NewFunction(value.FuncBuiltin, "TI", 0, 0, func(call *value.CallArgs) error {
		call.Results = append(call.Results, value.NewInt(time.Now().UnixMilli()))
		return nil
	})
	b[token.KwTiS] = value.NewFunction(value.FuncBuiltin, "TI$", 0, 0, func(call *value.CallArgs) error {
		call.Results = append(call.Results, value.NewStr(time.Now().Format("15:04:05")))
		return nil
	})

	return b
}

func baseFormatter(name string, base int) *value.Function {
	return value.NewFunction(value.FuncBuiltin, name, 1, 1, func(call *value.CallArgs) error {
		call.Results = append(call.Results, value.NewStr(strconv.FormatInt(call.Args[0].GetInt(), base)))
		return nil
	})
}

package interp

import (
	"strings"

	"github.com/ekkehard/priamosbasic/internal/errors"
	"github.com/ekkehard/priamosbasic/internal/token"
	"github.com/ekkehard/priamosbasic/internal/tokenstream"
	"github.com/ekkehard/priamosbasic/internal/value"
)

// The evaluator implements §4.I's precedence grammar one production
// per method, loosest to tightest:
//
//	expr -> or -> and -> cmp -> shift -> add -> pow -> mult -> not -> signed -> primary
//
// The grammar's separate num-expr/str-expr chains are merged into one:
// Value's runtime type (not static grammar position) already decides
// which operators apply, via value.BinOp, so two parallel
// precedence-climbing ladders would only duplicate this code for
// dynamically-typed values that disambiguate themselves at the ALU
// layer regardless of which chain parsed them.

var opSymbol = map[token.Code]string{
	token.OpOr: "OR", token.OpXor: "XOR", token.OpNor: "NOR", token.OpXnor: "XNOR",
	token.OpAnd: "AND", token.OpNand: "NAND",
	token.OpEQ: "=", token.OpLT: "<", token.OpGT: ">",
	token.OpLE: "<=", token.OpGE: ">=", token.OpNE: "<>",
	token.OpShl: "SHL", token.OpShr: "SHR",
	token.OpPlus: "+", token.OpMinus: "-",
	token.OpPow: "**",
	token.OpStar: "*", token.OpSlash: "/",
}

func (in *Interpreter) evalExpr(sc *tokenstream.Scanner) (value.Value, error) {
	return in.evalOr(sc)
}

func (in *Interpreter) evalOr(sc *tokenstream.Scanner) (value.Value, error) {
	left, err := in.evalAnd(sc)
	if err != nil {
		return nil, err
	}
	for {
		typ, err := sc.TokenType()
		if err != nil {
			return nil, err
		}
		if typ != token.OpOr && typ != token.OpXor && typ != token.OpNor && typ != token.OpXnor {
			return left, nil
		}
		if err := sc.SkipToken(); err != nil {
			return nil, err
		}
		right, err := in.evalAnd(sc)
		if err != nil {
			return nil, err
		}
		left, err = value.BinOp(opSymbol[typ], left, right)
		if err != nil {
			return nil, err
		}
	}
}

func (in *Interpreter) evalAnd(sc *tokenstream.Scanner) (value.Value, error) {
	left, err := in.evalCmp(sc)
	if err != nil {
		return nil, err
	}
	for {
		typ, err := sc.TokenType()
		if err != nil {
			return nil, err
		}
		if typ != token.OpAnd && typ != token.OpNand {
			return left, nil
		}
		if err := sc.SkipToken(); err != nil {
			return nil, err
		}
		right, err := in.evalCmp(sc)
		if err != nil {
			return nil, err
		}
		left, err = value.BinOp(opSymbol[typ], left, right)
		if err != nil {
			return nil, err
		}
	}
}

func isCmpOp(typ token.Code) bool {
	switch typ {
	case token.OpEQ, token.OpLT, token.OpGT, token.OpLE, token.OpGE, token.OpNE:
		return true
	}
	return false
}

// evalCmp implements cmp-expr/str-cmp-expr: at most one comparison,
// never chained.
func (in *Interpreter) evalCmp(sc *tokenstream.Scanner) (value.Value, error) {
	left, err := in.evalShift(sc)
	if err != nil {
		return nil, err
	}
	typ, err := sc.TokenType()
	if err != nil {
		return nil, err
	}
	if !isCmpOp(typ) {
		return left, nil
	}
	if err := sc.SkipToken(); err != nil {
		return nil, err
	}
	right, err := in.evalShift(sc)
	if err != nil {
		return nil, err
	}
	return value.BinOp(opSymbol[typ], left, right)
}

// evalShift implements shift-expr: at most one SHL/SHR, never chained.
func (in *Interpreter) evalShift(sc *tokenstream.Scanner) (value.Value, error) {
	left, err := in.evalAdd(sc)
	if err != nil {
		return nil, err
	}
	typ, err := sc.TokenType()
	if err != nil {
		return nil, err
	}
	if typ != token.OpShl && typ != token.OpShr {
		return left, nil
	}
	if err := sc.SkipToken(); err != nil {
		return nil, err
	}
	right, err := in.evalAdd(sc)
	if err != nil {
		return nil, err
	}
	return value.BinOp(opSymbol[typ], left, right)
}

func (in *Interpreter) evalAdd(sc *tokenstream.Scanner) (value.Value, error) {
	left, err := in.evalPow(sc)
	if err != nil {
		return nil, err
	}
	for {
		typ, err := sc.TokenType()
		if err != nil {
			return nil, err
		}
		if typ != token.OpPlus && typ != token.OpMinus {
			return left, nil
		}
		if err := sc.SkipToken(); err != nil {
			return nil, err
		}
		right, err := in.evalPow(sc)
		if err != nil {
			return nil, err
		}
		left, err = value.BinOp(opSymbol[typ], left, right)
		if err != nil {
			return nil, err
		}
	}
}

func (in *Interpreter) evalPow(sc *tokenstream.Scanner) (value.Value, error) {
	left, err := in.evalMult(sc)
	if err != nil {
		return nil, err
	}
	for {
		typ, err := sc.TokenType()
		if err != nil {
			return nil, err
		}
		if typ != token.OpPow {
			return left, nil
		}
		if err := sc.SkipToken(); err != nil {
			return nil, err
		}
		right, err := in.evalMult(sc)
		if err != nil {
			return nil, err
		}
		left, err = value.BinOp("**", left, right)
		if err != nil {
			return nil, err
		}
	}
}

func (in *Interpreter) evalMult(sc *tokenstream.Scanner) (value.Value, error) {
	left, err := in.evalNot(sc)
	if err != nil {
		return nil, err
	}
	for {
		typ, err := sc.TokenType()
		if err != nil {
			return nil, err
		}
		if typ != token.OpStar && typ != token.OpSlash {
			return left, nil
		}
		if err := sc.SkipToken(); err != nil {
			return nil, err
		}
		right, err := in.evalNot(sc)
		if err != nil {
			return nil, err
		}
		left, err = value.BinOp(opSymbol[typ], left, right)
		if err != nil {
			return nil, err
		}
	}
}

func (in *Interpreter) evalNot(sc *tokenstream.Scanner) (value.Value, error) {
	typ, err := sc.TokenType()
	if err != nil {
		return nil, err
	}
	if typ != token.OpNot {
		return in.evalSigned(sc)
	}
	if err := sc.SkipToken(); err != nil {
		return nil, err
	}
	v, err := in.evalSigned(sc)
	if err != nil {
		return nil, err
	}
	return value.Not(v)
}

func (in *Interpreter) evalSigned(sc *tokenstream.Scanner) (value.Value, error) {
	typ, err := sc.TokenType()
	if err != nil {
		return nil, err
	}
	switch typ {
	case token.OpPlus:
		if err := sc.SkipToken(); err != nil {
			return nil, err
		}
		return in.evalPrimary(sc)
	case token.OpMinus:
		if err := sc.SkipToken(); err != nil {
			return nil, err
		}
		v, err := in.evalPrimary(sc)
		if err != nil {
			return nil, err
		}
		return value.Negate(v)
	default:
		return in.evalPrimary(sc)
	}
}

// evalPrimary implements num-base-expr/str-base-expr: parenthesized
// sub-expressions, literals, built-in function calls, and identifier
// expressions (scalar reads, array subscripts, user function calls).
func (in *Interpreter) evalPrimary(sc *tokenstream.Scanner) (value.Value, error) {
	typ, err := sc.TokenType()
	if err != nil {
		return nil, err
	}
	switch {
	case typ == token.OpLParen:
		if err := sc.SkipToken(); err != nil {
			return nil, err
		}
		v, err := in.evalExpr(sc)
		if err != nil {
			return nil, err
		}
		typ2, err := sc.TokenType()
		if err != nil {
			return nil, err
		}
		if typ2 != token.OpRParen {
			return nil, errors.New(errors.Syntax, "expected ) in expression")
		}
		if err := sc.SkipToken(); err != nil {
			return nil, err
		}
		return v, nil

	case typ == token.STRLIT:
		text, err := sc.GetText()
		if err != nil {
			return nil, err
		}
		s := string(text)
		if err := sc.SkipToken(); err != nil {
			return nil, err
		}
		return value.NewStr(s), nil

	case typ == token.NUMLIT || typ == token.SBI:
		isInt, err := sc.IsInt()
		if err != nil {
			return nil, err
		}
		var v value.Value
		if isInt {
			iv, err := sc.GetInt()
			if err != nil {
				return nil, err
			}
			v = value.NewInt(iv)
		} else {
			fv, err := sc.GetNumber()
			if err != nil {
				return nil, err
			}
			v = value.NewReal(fv)
		}
		if err := sc.SkipToken(); err != nil {
			return nil, err
		}
		return v, nil

	case typ == token.KwFn:
		if err := sc.SkipToken(); err != nil {
			return nil, err
		}
		return in.evalIdentExpr(sc, true)

	case typ == token.KwCells:
		return in.evalCells(sc)

	case token.IsFunctionKeyword(typ):
		return in.evalBuiltinCall(sc, typ)

	case typ == token.IDENT:
		return in.evalIdentExpr(sc, false)

	default:
		return nil, errors.New(errors.Syntax, "unexpected token %#04x in expression", uint16(typ))
	}
}

// evalExprList parses a comma-separated expr-list, stopping without
// consuming closer.
func (in *Interpreter) evalExprList(sc *tokenstream.Scanner, closer token.Code) ([]value.Value, error) {
	var out []value.Value
	typ, err := sc.TokenType()
	if err != nil {
		return nil, err
	}
	if typ == closer {
		return out, nil
	}
	for {
		v, err := in.evalExpr(sc)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		typ, err := sc.TokenType()
		if err != nil {
			return nil, err
		}
		if typ == token.OpComma {
			if err := sc.SkipToken(); err != nil {
				return nil, err
			}
			continue
		}
		return out, nil
	}
}

// evalIdentExpr resolves an IDENT token already at the cursor: a plain
// scalar read (auto-declaring on first reference), or an array
// subscript / function call when the name carries the folded '('
// sigil. forcedFunc is true when the FN modifier preceded the name.
func (in *Interpreter) evalIdentExpr(sc *tokenstream.Scanner, forcedFunc bool) (value.Value, error) {
	text, err := sc.GetText()
	if err != nil {
		return nil, err
	}
	name := string(text)
	if err := sc.SkipToken(); err != nil {
		return nil, err
	}

	if !strings.HasSuffix(name, "(") {
		v := in.vars.Find(name)
		if v == nil {
			v = defaultScalar(name)
			in.vars.Add(name, v)
		}
		return v, nil
	}

	// The tokenizer already folded the opening '(' into name's own
	// bytes, so the argument list starts right here.
	args, err := in.evalExprList(sc, token.OpRParen)
	if err != nil {
		return nil, err
	}
	typ, err = sc.TokenType()
	if err != nil {
		return nil, err
	}
	if typ != token.OpRParen {
		return nil, errors.New(errors.Syntax, "expected ) closing %s", name)
	}
	if err := sc.SkipToken(); err != nil {
		return nil, err
	}

	bound := in.vars.Find(name)
	if bound == nil {
		if forcedFunc {
			return nil, errors.New(errors.FunctionNotDeclare, "%s not declared", strings.TrimSuffix(name, "("))
		}
		return nil, errors.New(errors.ArrayNotDimension, "%s not dimensioned", strings.TrimSuffix(name, "("))
	}

	switch t := bound.(type) {
	case *value.Function:
		res, err := t.Call(args)
		if err != nil {
			return nil, err
		}
		if len(res) == 0 {
			return value.NewInt(0), nil
		}
		return res[0], nil
	case *value.StaticArray:
		return t.At(args)
	case *value.DynamicArray:
		if len(args) != 1 {
			return nil, errors.New(errors.DimensionCount, "%s takes exactly 1 subscript", name)
		}
		return t.At(int(args[0].GetInt()))
	case *value.AssocArray:
		if len(args) != 1 {
			return nil, errors.New(errors.DimensionCount, "%s takes exactly 1 subscript", name)
		}
		return t.At(args[0])
	default:
		return nil, errors.New(errors.TypeMismatch, "%s is not callable or subscriptable", name)
	}
}

func (in *Interpreter) evalBuiltinCall(sc *tokenstream.Scanner, typ token.Code) (value.Value, error) {
	if err := sc.SkipToken(); err != nil {
		return nil, err
	}
	var args []value.Value
	t2, err := sc.TokenType()
	if err != nil {
		return nil, err
	}
	if t2 == token.OpLParen {
		if err := sc.SkipToken(); err != nil {
			return nil, err
		}
		args, err = in.evalExprList(sc, token.OpRParen)
		if err != nil {
			return nil, err
		}
		t3, err := sc.TokenType()
		if err != nil {
			return nil, err
		}
		if t3 != token.OpRParen {
			return nil, errors.New(errors.Syntax, "expected ) closing built-in call")
		}
		if err := sc.SkipToken(); err != nil {
			return nil, err
		}
	}
	fn, ok := in.builtins[typ]
	if !ok {
		name, _ := in.kw.LookupByCode(typ)
		return nil, errors.New(errors.FunctionNotDeclare, "%s is not implemented", name)
	}
	res, err := fn.Call(args)
	if err != nil {
		return nil, err
	}
	if len(res) == 0 {
		return value.NewInt(0), nil
	}
	return res[0], nil
}

// evalCells implements CELLS(name(...)): it needs the raw array
// binding, not an evaluated Value, so it parses its single argument
// by hand instead of going through evalExprList.
func (in *Interpreter) evalCells(sc *tokenstream.Scanner) (value.Value, error) {
	if err := sc.SkipToken(); err != nil {
		return nil, err
	}
	typ, err := sc.TokenType()
	if err != nil {
		return nil, err
	}
	if typ != token.OpLParen {
		return nil, errors.New(errors.Syntax, "expected ( after CELLS")
	}
	if err := sc.SkipToken(); err != nil {
		return nil, err
	}
	typ, err = sc.TokenType()
	if err != nil {
		return nil, err
	}
	if typ != token.IDENT {
		return nil, errors.New(errors.Syntax, "CELLS expects an array name")
	}
	text, err := sc.GetText()
	if err != nil {
		return nil, err
	}
	name := string(text)
	if err := sc.SkipToken(); err != nil {
		return nil, err
	}
	// The tokenizer folded name's own opening '(' into its bytes, so
	// we're already one level deep in its subscript list (possibly
	// empty, for CELLS(H$())); consume tokens without evaluating them
	// until that implied paren closes, tracking any further nesting
	// from subscript sub-expressions.
	depth := 1
	for depth > 0 {
		typ, err = sc.TokenType()
		if err != nil {
			return nil, err
		}
		if typ == token.OpLParen {
			depth++
		} else if typ == token.OpRParen {
			depth--
		}
		if err := sc.SkipToken(); err != nil {
			return nil, err
		}
	}
	typ, err = sc.TokenType()
	if err != nil {
		return nil, err
	}
	if typ != token.OpRParen {
		return nil, errors.New(errors.Syntax, "expected ) closing CELLS")
	}
	if err := sc.SkipToken(); err != nil {
		return nil, err
	}

	bound := in.vars.Find(name)
	if bound == nil {
		return nil, errors.New(errors.ArrayNotDimension, "%s not dimensioned", strings.TrimSuffix(name, "("))
	}
	switch t := bound.(type) {
	case *value.DynamicArray:
		return value.NewInt(int64(t.Filled)), nil
	case *value.AssocArray:
		return value.NewInt(int64(t.Filled)), nil
	case *value.StaticArray:
		return value.NewInt(int64(len(t.Cells))), nil
	default:
		return nil, errors.New(errors.TypeMismatch, "%s is not an array", name)
	}
}

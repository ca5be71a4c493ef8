package interp

import (
	"strings"

	"github.com/ekkehard/priamosbasic/internal/errors"
	"github.com/ekkehard/priamosbasic/internal/token"
	"github.com/ekkehard/priamosbasic/internal/tokenstream"
	"github.com/ekkehard/priamosbasic/internal/value"
)

// lvalue is a resolved assignment target: a closure that type-checks
// and applies an rvalue. Subscripts are evaluated at parse time; the
// variable or array cell itself is looked up when assign runs (§4.I's
// "Assignment" paragraph).
type lvalue struct {
	assign func(v value.Value) error
}

// doAssignment implements the assignment grammar production:
//
//	assignment := [LET] lvalue-list '=' expr-list
//
// lvalue-list and rvalue-list must have equal counts.
func (in *Interpreter) doAssignment(sc *tokenstream.Scanner) error {
	typ, err := sc.TokenType()
	if err != nil {
		return err
	}
	if typ == token.KwLet {
		if err := sc.SkipToken(); err != nil {
			return err
		}
	}

	lvs, err := in.parseLvalueList(sc)
	if err != nil {
		return err
	}

	typ, err = sc.TokenType()
	if err != nil {
		return err
	}
	if typ != token.OpEQ {
		return errors.New(errors.Syntax, "expected = in assignment")
	}
	if err := sc.SkipToken(); err != nil {
		return err
	}

	rvs, err := in.evalExprListUntilStmtEnd(sc)
	if err != nil {
		return err
	}
	if len(lvs) != len(rvs) {
		return errors.New(errors.PairingMismatch, "%d lvalue(s), %d rvalue(s)", len(lvs), len(rvs))
	}
	for i, lv := range lvs {
		if err := lv.assign(rvs[i]); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) parseLvalueList(sc *tokenstream.Scanner) ([]*lvalue, error) {
	var out []*lvalue
	for {
		lv, err := in.parseLvalue(sc)
		if err != nil {
			return nil, err
		}
		out = append(out, lv)
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

func (in *Interpreter) parseLvalue(sc *tokenstream.Scanner) (*lvalue, error) {
	typ, err := sc.TokenType()
	if err != nil {
		return nil, err
	}
	if typ != token.IDENT {
		return nil, errors.New(errors.Syntax, "expected identifier in assignment")
	}
	text, err := sc.GetText()
	if err != nil {
		return nil, err
	}
	name := string(text)
	if err := sc.SkipToken(); err != nil {
		return nil, err
	}

	if !strings.HasSuffix(name, "(") {
		return &lvalue{assign: func(v value.Value) error {
			dst := in.vars.Find(name)
			if dst == nil {
				dst = defaultScalar(name)
				in.vars.Add(name, dst)
			}
			if err := value.AssignBaseType(dst, v); err != nil {
				return err
			}
			assignInto(dst, v)
			return nil
		}}, nil
	}

	// The tokenizer already folded the opening '(' into name's own
	// bytes, so the subscript list starts right here.
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

	return &lvalue{assign: func(v value.Value) error {
		bound := in.vars.Find(name)
		if bound == nil {
			return errors.New(errors.ArrayNotDimension, "%s not dimensioned", strings.TrimSuffix(name, "("))
		}
		var cell value.Value
		var err error
		switch t := bound.(type) {
		case *value.StaticArray:
			cell, err = t.At(args)
		case *value.DynamicArray:
			if len(args) != 1 {
				return errors.New(errors.DimensionCount, "%s takes exactly 1 subscript", name)
			}
			cell, err = t.At(int(args[0].GetInt()))
		case *value.AssocArray:
			if len(args) != 1 {
				return errors.New(errors.DimensionCount, "%s takes exactly 1 subscript", name)
			}
			cell, err = t.At(args[0])
		case *value.Function:
			// Reserved for LEFT$/MID$/RIGHT$ string-splicing lvalues
			// (§4.I); no built-in currently registers itself as one, so
			// any Function lvalue is an error.
			return errors.New(errors.TypeMismatch, "cannot assign to function %s", name)
		default:
			return errors.New(errors.TypeMismatch, "%s is not subscriptable", name)
		}
		if err != nil {
			return err
		}
		if err := value.AssignBaseType(cell, v); err != nil {
			return err
		}
		assignInto(cell, v)
		return nil
	}}, nil
}

// evalExprListUntilStmtEnd parses a comma-separated rvalue-list,
// stopping at EOL or a ':' statement separator without consuming it.
func (in *Interpreter) evalExprListUntilStmtEnd(sc *tokenstream.Scanner) ([]value.Value, error) {
	var out []value.Value
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

// assignInto copies src's value into dst in place, per dst's own
// scalar kind. value.AssignBaseType must have already validated
// compatibility.
func assignInto(dst, src value.Value) {
	switch dst.(type) {
	case *value.Int:
		dst.SetInt(src.GetInt())
	case *value.Real:
		dst.SetReal(src.GetReal())
	case *value.Str:
		dst.SetStr(src.GetStr(true))
	}
}

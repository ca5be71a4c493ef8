// Package interp implements the Expression Evaluator & Dispatcher
// (§4.I): a recursive-descent evaluator over the binary token stream,
// a per-Interpreter command dispatch table keyed by statement-keyword
// code, and the interpret_line entry point that ties the tokenizer,
// the program store and the evaluator together.
//
// The recursive-descent shape (one method per grammar production,
// each consuming from a cursor and producing a value) is grounded on
// the teacher's internal/parser.Parser; the command dispatch table is
// grounded on §4.I's own description, backed by the chained hash table
// (component C) the teacher's parser never needed since DWScript
// dispatched on AST node type rather than a flat keyword table.
package interp

import (
	"fmt"
	"io"
	"strings"

	"github.com/ekkehard/priamosbasic/internal/detok"
	"github.com/ekkehard/priamosbasic/internal/errors"
	"github.com/ekkehard/priamosbasic/internal/hashtable"
	"github.com/ekkehard/priamosbasic/internal/keyword"
	"github.com/ekkehard/priamosbasic/internal/lexer"
	"github.com/ekkehard/priamosbasic/internal/program"
	"github.com/ekkehard/priamosbasic/internal/token"
	"github.com/ekkehard/priamosbasic/internal/tokenstream"
	"github.com/ekkehard/priamosbasic/internal/util"
	"github.com/ekkehard/priamosbasic/internal/value"
	"github.com/ekkehard/priamosbasic/internal/variables"
)

// commandFunc is a statement handler; the cursor is positioned on the
// statement's own keyword token when called.
type commandFunc func(sc *tokenstream.Scanner) error

// Interpreter owns one BASIC session: its variable namespace, its
// stored program, and the keyword-coded command table.
type Interpreter struct {
	kw       *keyword.Registry
	tz       *lexer.Tokenizer
	vars     *variables.Store
	prog     *program.Store
	detok    *detok.Detokenizer
	dispatch *hashtable.Table
	builtins map[token.Code]*value.Function
	out      io.Writer

	// SessionID correlates one Interpreter's --verbose output lines
	// across a CLI run, the same way the pack's database/network
	// bindings tag each connection with a caller-supplied id.
	SessionID string
}

// New returns an Interpreter writing PRINT/LIST output to out.
func New(out io.Writer) *Interpreter {
	kw := keyword.New()
	in := &Interpreter{
		kw:        kw,
		tz:        lexer.New(kw),
		vars:      variables.New(),
		prog:      program.New(),
		detok:     detok.New(kw),
		dispatch:  hashtable.New(),
		builtins:  newBuiltins(),
		out:       out,
		SessionID: util.NewSessionID(),
	}
	in.registerCommands()
	return in
}

// Builtins exposes the function-keyword registry so a CLI host can
// register external collaborators (§4.Q) into it before the first
// InterpretLine call.
func (in *Interpreter) Builtins() map[token.Code]*value.Function {
	return in.builtins
}

func codeKey(c token.Code) []byte {
	return []byte{byte(c >> 8), byte(c)}
}

func (in *Interpreter) registerCommands() {
	reg := func(c token.Code, fn commandFunc) {
		in.dispatch.Insert(&hashtable.Entry{Key: codeKey(c), Payload: fn})
	}
	reg(token.KwLet, in.doAssignment)
	reg(token.KwDim, in.doDim)
	reg(token.KwList, in.doList)
}

// InterpretLine implements §4.I's entry point: tokenize text, and
// either hand a numbered line to the program store or execute it
// immediately.
func (in *Interpreter) InterpretLine(text string) error {
	buf, err := in.tz.Tokenize([]byte(text))
	if err != nil {
		return errors.Wrap(err, errors.Syntax, "%v", err)
	}
	data := buf.Bytes()

	sc := tokenstream.New(data)
	typ, err := sc.TokenType()
	if err != nil {
		return err
	}
	if typ == token.LINENO {
		return in.prog.EnterLine(data)
	}
	return in.interpret(sc)
}

// interpret drives one tokenized line through the dispatcher (§4.I):
// read the current token, stop at EOL, skip trivia, look up the
// command, and fall back to assignment parsing for lines that open
// directly with an lvalue.
func (in *Interpreter) interpret(sc *tokenstream.Scanner) error {
	for {
		typ, err := sc.TokenType()
		if err != nil {
			return err
		}
		switch typ {
		case token.EOL:
			return nil
		case token.LINENO, token.LABEL, token.OpColon:
			if err := sc.SkipToken(); err != nil {
				return err
			}
			continue
		case token.OpPrint:
			if err := in.doPrint(sc); err != nil {
				return err
			}
			continue
		}

		if token.IsStatementKeyword(typ) {
			if e := in.dispatch.Find(codeKey(typ)); e != nil {
				if err := e.Payload.(commandFunc)(sc); err != nil {
					return err
				}
				continue
			}
			name, _ := in.kw.LookupByCode(typ)
			return errors.New(errors.NotImplemented, "statement %s is not implemented", name)
		}

		if err := in.doAssignment(sc); err != nil {
			return err
		}
	}
}

// RunProgram executes every stored line once, in ascending line-number
// order. GOTO/GOSUB and the rest of the control-flow statement family
// are outside the core (§1), so this is the CLI host's own linear
// stand-in for RUN rather than a dispatched command.
func (in *Interpreter) RunProgram() error {
	for _, li := range in.prog.Lines() {
		sc := in.prog.Scanner(li)
		if err := in.interpret(sc); err != nil {
			return errors.Wrap(err, errors.Interpret, "%v", err).AtLine(li.LineNo)
		}
	}
	return nil
}

// List renders the stored program's source text (used by tests and by
// the LIST command itself).
func (in *Interpreter) List(w io.Writer, start, end uint32) error {
	for _, li := range in.prog.Lines() {
		if li.LineNo < start || li.LineNo > end {
			continue
		}
		text, err := in.detok.Render(in.prog.Bytes(li))
		if err != nil {
			return err
		}
		fmt.Fprintln(w, text)
	}
	return nil
}

func (in *Interpreter) doList(sc *tokenstream.Scanner) error {
	if err := sc.SkipToken(); err != nil {
		return err
	}
	start, end := uint32(0), uint32(0xFFFFFF)

	typ, err := sc.TokenType()
	if err != nil {
		return err
	}
	if typ == token.NUMLIT || typ == token.SBI {
		v, err := in.evalExpr(sc)
		if err != nil {
			return err
		}
		start = uint32(v.GetInt())
		end = start

		typ, err = sc.TokenType()
		if err != nil {
			return err
		}
		if typ == token.OpMinus {
			if err := sc.SkipToken(); err != nil {
				return err
			}
			typ2, err := sc.TokenType()
			if err != nil {
				return err
			}
			if typ2 == token.NUMLIT || typ2 == token.SBI {
				v2, err := in.evalExpr(sc)
				if err != nil {
					return err
				}
				end = uint32(v2.GetInt())
			} else {
				end = 0xFFFFFF
			}
		}
	}
	return in.List(in.out, start, end)
}

func (in *Interpreter) doDim(sc *tokenstream.Scanner) error {
	if err := sc.SkipToken(); err != nil {
		return err
	}
	for {
		typ, err := sc.TokenType()
		if err != nil {
			return err
		}
		if typ != token.IDENT {
			return errors.New(errors.Syntax, "expected identifier after DIM")
		}
		text, err := sc.GetText()
		if err != nil {
			return err
		}
		name := string(text)
		if err := sc.SkipToken(); err != nil {
			return err
		}
		if !strings.HasSuffix(name, "(") {
			return errors.New(errors.Syntax, "DIM target %q is not an array", name)
		}

		// The tokenizer folds an adjacent '(' into the identifier's own
		// bytes (§3's sigil rule), so no separate open-paren token
		// follows: the dimension list (possibly empty, for DIM H$()
		// ASSOC) starts right here and runs to the matching ')'.
		var dims []int
		typ, err = sc.TokenType()
		if err != nil {
			return err
		}
		if typ != token.OpRParen {
			for {
				v, err := in.evalExpr(sc)
				if err != nil {
					return err
				}
				dims = append(dims, int(v.GetInt()))
				typ, err = sc.TokenType()
				if err != nil {
					return err
				}
				if typ == token.OpComma {
					if err := sc.SkipToken(); err != nil {
						return err
					}
					continue
				}
				break
			}
		}
		typ, err = sc.TokenType()
		if err != nil {
			return err
		}
		if typ != token.OpRParen {
			return errors.New(errors.Syntax, "expected ) closing DIM dimensions")
		}
		if err := sc.SkipToken(); err != nil {
			return err
		}

		kind := elemKindForName(name)
		typ, err = sc.TokenType()
		if err != nil {
			return err
		}
		var arr value.Value
		switch typ {
		case token.KwDynamic:
			if err := sc.SkipToken(); err != nil {
				return err
			}
			cap := 0
			if len(dims) > 0 {
				cap = dims[0]
			}
			arr = value.NewDynamicArray(kind, cap)
		case token.KwAssoc:
			if err := sc.SkipToken(); err != nil {
				return err
			}
			arr = value.NewAssocArray(kind)
		default:
			a, err := value.NewStaticArray(kind, dims)
			if err != nil {
				return err
			}
			arr = a
		}
		in.setVar(name, arr)

		typ, err = sc.TokenType()
		if err != nil {
			return err
		}
		if typ == token.OpComma {
			if err := sc.SkipToken(); err != nil {
				return err
			}
			continue
		}
		break
	}
	return nil
}

// setVar (re)binds name, replacing any existing binding: DIM is
// allowed to redeclare since the core never implements a dedicated
// CLR/redimension-guard statement.
func (in *Interpreter) setVar(name string, v value.Value) {
	if !in.vars.Add(name, v) {
		in.vars.Remove(name)
		in.vars.Add(name, v)
	}
}

func elemKindForName(name string) value.ElemKind {
	if len(name) < 2 {
		return value.ElemReal
	}
	switch name[len(name)-2] {
	case '$':
		return value.ElemStr
	case '%':
		return value.ElemInt
	default:
		return value.ElemReal
	}
}

func defaultScalar(name string) value.Value {
	if len(name) == 0 {
		return value.NewReal(0)
	}
	switch name[len(name)-1] {
	case '$':
		return value.NewStr("")
	case '%':
		return value.NewInt(0)
	default:
		return value.NewReal(0)
	}
}

func (in *Interpreter) doPrint(sc *tokenstream.Scanner) error {
	if err := sc.SkipToken(); err != nil {
		return err
	}
	typ, err := sc.TokenType()
	if err != nil {
		return err
	}
	if typ == token.EOL || typ == token.OpColon {
		fmt.Fprintln(in.out)
		return nil
	}
	for {
		v, err := in.evalExpr(sc)
		if err != nil {
			return err
		}
		fmt.Fprint(in.out, formatPrintValue(v))

		typ, err = sc.TokenType()
		if err != nil {
			return err
		}
		if typ == token.OpComma || typ == token.OpSemi {
			if err := sc.SkipToken(); err != nil {
				return err
			}
			typ2, err := sc.TokenType()
			if err != nil {
				return err
			}
			if typ2 == token.EOL || typ2 == token.OpColon {
				return nil
			}
			continue
		}
		break
	}
	fmt.Fprintln(in.out)
	return nil
}

func formatPrintValue(v value.Value) string {
	if s, ok := v.(*value.Str); ok {
		return s.V
	}
	return v.String()
}

package value

import "github.com/ekkehard/priamosbasic/internal/errors"

// FuncKind distinguishes a built-in function from a user DEF FN
// function; both share the same boxed-handler call shape.
type FuncKind int

const (
	FuncBuiltin FuncKind = iota
	FuncUserDefined
)

// CallArgs bundles a function call's input values and its result
// collector, matching what a handler receives (§4.G). Results is
// appended to by the handler; the evaluator collects it afterward.
type CallArgs struct {
	Args    []Value
	Results []Value
}

// Handler is the boxed function body: the (handler-fn, handler-arg)
// pair §4.G describes, collapsed into a single closure capturing
// whatever state the concrete function needs. This shape is grounded
// on the teacher pack's NativeFunction.Function closures
// (internal/vm/database_bindings.go's RegisterDatabaseBindings), which
// register built-ins the same way: a name, an arity, and a closure.
type Handler func(call *CallArgs) error

// Function is a callable value: a name, an arity descriptor, and a
// boxed handler.
type Function struct {
	base
	Kind    FuncKind
	Name    string
	MinArgs int
	MaxArgs int // -1 means unbounded
	handler Handler
}

// NewFunction returns a Function wrapping handler with the given
// arity bounds.
func NewFunction(kind FuncKind, name string, minArgs, maxArgs int, handler Handler) *Function {
	return &Function{Kind: kind, Name: name, MinArgs: minArgs, MaxArgs: maxArgs, handler: handler}
}

func (f *Function) Type() string   { return "Function" }
func (f *Function) String() string { return "[function " + f.Name + "]" }

// Call marshals args through the handler after checking arity,
// returning the collected result values.
func (f *Function) Call(args []Value) ([]Value, error) {
	if len(args) < f.MinArgs || (f.MaxArgs >= 0 && len(args) > f.MaxArgs) {
		return nil, errors.New(errors.FunctionNotDeclare, "%s expects %d..%d arguments, got %d", f.Name, f.MinArgs, f.MaxArgs, len(args))
	}
	call := &CallArgs{Args: args}
	if err := f.handler(call); err != nil {
		return nil, err
	}
	return call.Results, nil
}

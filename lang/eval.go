package lang

import (
	"log/slog"
	"math"
	"strconv"
)

// MaxFactorial is the largest operand of the factorial operator. 171! is
// not representable as a finite float64.
const MaxFactorial = 170

// Eval evaluates stmt against c.
//
// An [ExprStmt] yields its value and records it as the previous answer. A
// [DefVar] evaluates its expression now, binds it, and yields the value. A
// [DefFun] stores the function unevaluated and yields 0.
//
// The first failure aborts the statement and is returned as an *[EvalError].
// A failed statement leaves c unchanged.
func Eval(stmt Stmt, c *Context) (float64, error) {
	ev := &evaluator{ctx: c}

	switch s := stmt.(type) {
	case ExprStmt:
		c.logger.Trace("evaluate expression", slog.Any("expr", lazyString{s.Body}))

		v, err := ev.eval(s.Body)
		if err != nil {
			return 0, err
		}

		c.SetPrevAnswer(v)

		return v, nil

	case DefVar:
		c.logger.Trace("define variable",
			slog.String("name", s.Name),
			slog.Any("expr", lazyString{s.Expr}),
		)

		if err := c.writable(s.Name); err != nil {
			return 0, err
		}

		v, err := ev.eval(s.Expr)
		if err != nil {
			return 0, err
		}

		if err := c.SetVariable(s.Name, v); err != nil {
			return 0, err
		}

		return v, nil

	case DefFun:
		c.logger.Trace("define function",
			slog.String("name", s.Name),
			slog.Int("params", len(s.Params)),
			slog.Any("body", lazyString{s.Body}),
		)

		if err := c.SetFunction(s.Name, s.Params, s.Body); err != nil {
			return 0, err
		}

		return 0, nil

	default:
		return 0, &EvalError{Kind: Undefined, Name: "statement"}
	}
}

// evaluator walks one expression tree. locals holds the parameters of the
// innermost user function call, if any.
type evaluator struct {
	ctx    *Context
	locals map[string]float64
	depth  int
}

func (ev *evaluator) eval(e Expr) (float64, error) {
	switch n := e.(type) {
	case Number:
		return n.Value, nil

	case Variable:
		if v, ok := ev.locals[n.Name]; ok {
			return v, nil
		}

		if v, ok := ev.ctx.Variable(n.Name); ok {
			return v.Value, nil
		}

		return 0, &EvalError{Kind: Undefined, Name: n.Name}

	case PrevAnswer:
		if v, ok := ev.ctx.PrevAnswer(); ok {
			return v, nil
		}

		return 0, &EvalError{Kind: Undefined, Name: PrevAnswer{}.String()}

	case PrefixOp:
		v, err := ev.eval(n.Arg)
		if err != nil {
			return 0, err
		}

		return -v, nil

	case PostfixOp:
		v, err := ev.eval(n.Arg)
		if err != nil {
			return 0, err
		}

		return factorial(v)

	case InfixOp:
		return ev.evalInfix(n)

	case FnCall:
		return ev.evalCall(n)

	default:
		return 0, &EvalError{Kind: Undefined, Name: "expression"}
	}
}

func (ev *evaluator) evalInfix(n InfixOp) (float64, error) {
	lhs, err := ev.eval(n.LHS)
	if err != nil {
		return 0, err
	}

	rhs, err := ev.eval(n.RHS)
	if err != nil {
		return 0, err
	}

	switch n.Op {
	case Add:
		return lhs + rhs, nil

	case Sub:
		return lhs - rhs, nil

	case Mul:
		return lhs * rhs, nil

	case Div:
		return lhs / rhs, nil

	case Rem:
		return euclideanRem(lhs, rhs), nil

	case Pow:
		return math.Pow(lhs, rhs), nil

	default:
		return 0, &EvalError{
			Kind:      DomainError,
			Operation: "operator",
			Detail:    "unknown operator " + n.Op.String(),
		}
	}
}

func (ev *evaluator) evalCall(n FnCall) (float64, error) {
	args := make([]float64, len(n.Args))

	for i, arg := range n.Args {
		v, err := ev.eval(arg)
		if err != nil {
			return 0, err
		}

		args[i] = v
	}

	if b, ok := ev.ctx.Builtin(n.Name); ok {
		if !b.Accepts(len(args)) {
			return 0, &EvalError{
				Kind:     ArityMismatch,
				Name:     n.Name,
				Expected: b.Arity,
				Got:      len(args),
			}
		}

		return b.Call(ev.ctx.angleUnit, args...), nil
	}

	fn, ok := ev.ctx.Function(n.Name)
	if !ok {
		return 0, &EvalError{Kind: Undefined, Name: n.Name}
	}

	if len(args) != len(fn.Params) {
		return 0, &EvalError{
			Kind:     ArityMismatch,
			Name:     n.Name,
			Expected: len(fn.Params),
			Got:      len(args),
		}
	}

	if ev.depth >= ev.ctx.maxDepth {
		return 0, &EvalError{
			Kind: DepthExceeded,
			Name: n.Name,
			Got:  ev.ctx.maxDepth,
		}
	}

	ev.ctx.logger.Trace("call function",
		slog.String("name", n.Name),
		slog.Int("depth", ev.depth+1),
	)

	locals := make(map[string]float64, len(args))
	for i, param := range fn.Params {
		locals[param] = args[i]
	}

	outer := ev.locals
	ev.locals = locals
	ev.depth++

	v, err := ev.eval(fn.Body)

	ev.depth--
	ev.locals = outer

	return v, err
}

// factorial computes v! for integral v in [0, MaxFactorial].
func factorial(v float64) (float64, error) {
	switch {
	case math.IsNaN(v) || v != math.Trunc(v):
		return 0, &EvalError{
			Kind:      DomainError,
			Operation: "factorial",
			Detail:    "operand must be an integer, got " + formatOperand(v),
		}

	case v < 0:
		return 0, &EvalError{
			Kind:      DomainError,
			Operation: "factorial",
			Detail:    "operand must not be negative, got " + formatOperand(v),
		}

	case v > MaxFactorial:
		return 0, &EvalError{
			Kind:      DomainError,
			Operation: "factorial",
			Detail: "operand must not exceed " + strconv.Itoa(MaxFactorial) +
				", got " + formatOperand(v),
		}
	}

	r := 1.0
	for i := 2.0; i <= v; i++ {
		r *= i
	}

	return r, nil
}

// euclideanRem returns the remainder of a/b in [0, |b|). A zero divisor
// yields NaN.
func euclideanRem(a, b float64) float64 {
	r := math.Mod(a, b)
	if r < 0 {
		r += math.Abs(b)
	}

	return r
}

// lazyString renders a node only when a log record is emitted.
type lazyString struct{ node interface{ String() string } }

func (s lazyString) LogValue() slog.Value {
	return slog.StringValue(s.node.String())
}

func formatOperand(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

package lang

import (
	"math"
	"strconv"
	"strings"
)

// Expr is a node of an expression tree.
//
// The set of implementations is closed: [Number], [Variable], [PrevAnswer],
// [FnCall], [PrefixOp], [PostfixOp], and [InfixOp]. Every node owns its
// children exclusively and is never modified after construction.
type Expr interface {
	String() string

	expr()
}

// Stmt is a top-level statement parsed from one input line.
//
// The set of implementations is closed: [ExprStmt], [DefVar], and [DefFun].
type Stmt interface {
	String() string

	stmt()
}

// Number is a numeric literal.
type Number struct {
	Value float64
}

// Variable is a reference to a bound name.
type Variable struct {
	Name string
}

// PrevAnswer refers to the result of the last evaluated expression statement.
type PrevAnswer struct{}

// FnCall calls a builtin or user-defined function.
type FnCall struct {
	Name string
	Args []Expr
}

// PrefixOp applies a prefix operator.
type PrefixOp struct {
	Op  PrefixOperator
	Arg Expr
}

// PostfixOp applies a postfix operator.
type PostfixOp struct {
	Op  PostfixOperator
	Arg Expr
}

// InfixOp applies a binary operator.
type InfixOp struct {
	Op  InfixOperator
	LHS Expr
	RHS Expr
}

func (Number) expr()     {}
func (Variable) expr()   {}
func (PrevAnswer) expr() {}
func (FnCall) expr()     {}
func (PrefixOp) expr()   {}
func (PostfixOp) expr()  {}
func (InfixOp) expr()    {}

// String renders the literal so that it parses back to the same value. An
// overflowing literal renders as the inf constant.
func (n Number) String() string {
	switch {
	case math.IsInf(n.Value, 1):
		return "inf"

	case math.IsInf(n.Value, -1):
		return "-inf"

	default:
		return strconv.FormatFloat(n.Value, 'g', -1, 64)
	}
}

func (v Variable) String() string { return v.Name }

func (PrevAnswer) String() string { return "_" }

func (f FnCall) String() string {
	return f.Name + "(" + joinExprs(f.Args) + ")"
}

func (p PrefixOp) String() string {
	return "(" + p.Op.String() + p.Arg.String() + ")"
}

func (p PostfixOp) String() string {
	return "(" + p.Arg.String() + p.Op.String() + ")"
}

func (i InfixOp) String() string {
	return "(" + i.LHS.String() + " " + i.Op.String() + " " + i.RHS.String() + ")"
}

// ExprStmt evaluates an expression and records it as the previous answer.
type ExprStmt struct {
	Body Expr
}

// DefVar binds the eagerly evaluated value of Expr to Name.
type DefVar struct {
	Name string
	Expr Expr
}

// DefFun binds a user function. Body is evaluated on each call with Params
// bound to the call arguments.
type DefFun struct {
	Name   string
	Params []string
	Body   Expr
}

func (ExprStmt) stmt() {}
func (DefVar) stmt()   {}
func (DefFun) stmt()   {}

func (s ExprStmt) String() string { return s.Body.String() }

func (s DefVar) String() string {
	return "let " + s.Name + " = " + s.Expr.String()
}

func (s DefFun) String() string {
	return "let " + s.Name + "(" + strings.Join(s.Params, ", ") + ") = " +
		s.Body.String()
}

// Walk traverses e depth-first in evaluation order, calling fn for each
// node. If fn returns false, the children of that node are skipped.
func Walk(e Expr, fn func(Expr) bool) {
	if e == nil || !fn(e) {
		return
	}

	switch n := e.(type) {
	case FnCall:
		for _, arg := range n.Args {
			Walk(arg, fn)
		}

	case PrefixOp:
		Walk(n.Arg, fn)

	case PostfixOp:
		Walk(n.Arg, fn)

	case InfixOp:
		Walk(n.LHS, fn)
		Walk(n.RHS, fn)
	}
}

func joinExprs(exprs []Expr) string {
	var sb strings.Builder

	for i, e := range exprs {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(e.String())
	}

	return sb.String()
}

package lang

//go:generate go tool stringer --linecomment --type AngleUnit --output context_string.go

import (
	"iter"
	"maps"
	"math"
	"slices"

	"github.com/enklht/seva/log"
)

// AngleUnit selects how trigonometric builtins interpret and return angles.
type AngleUnit int

const (
	Radian AngleUnit = iota // radian
	Degree                  // degree
)

// DefaultAngleUnit is the angle unit of a new [Context].
const DefaultAngleUnit = Radian

// ParseAngleUnit parses "radian" or "degree" (also "rad" and "deg").
// Any other string yields [DefaultAngleUnit].
func ParseAngleUnit(s string) AngleUnit {
	switch s {
	case "degree", "degrees", "deg":
		return Degree

	case "radian", "radians", "rad":
		return Radian

	default:
		return DefaultAngleUnit
	}
}

// DefaultMaxDepth is the default limit on nested user function calls.
const DefaultMaxDepth = 256

// Var is a variable binding. External variables are seeded constants and
// cannot be redefined.
type Var struct {
	Value    float64
	External bool
}

// Function is a user-defined function.
type Function struct {
	Params []string
	Body   Expr
}

// Context is the mutable evaluation environment of a session.
//
// A Context is not safe for concurrent use.
type Context struct {
	variables map[string]Var
	functions map[string]Function
	builtins  map[string]Builtin

	prev    float64
	hasPrev bool

	angleUnit AngleUnit
	maxDepth  int
	logger    log.Logger
}

// Option configures a [Context].
type Option func(*Context)

// WithAngleUnit sets the angle unit used by trigonometric builtins.
func WithAngleUnit(unit AngleUnit) Option {
	return func(c *Context) { c.angleUnit = unit }
}

// WithMaxDepth sets the limit on nested user function calls.
// Non-positive values select [DefaultMaxDepth].
func WithMaxDepth(depth int) Option {
	return func(c *Context) {
		if depth <= 0 {
			depth = DefaultMaxDepth
		}

		c.maxDepth = depth
	}
}

// WithLogger sets the logger receiving evaluation traces.
func WithLogger(logger log.Logger) Option {
	return func(c *Context) { c.logger = logger }
}

// WithBuiltins adds or replaces builtin functions.
func WithBuiltins(builtins map[string]Builtin) Option {
	return func(c *Context) { maps.Copy(c.builtins, builtins) }
}

// NewContext returns a Context seeded with the standard constants and
// builtin functions.
func NewContext(opts ...Option) *Context {
	c := &Context{
		variables: map[string]Var{
			"pi":  {Value: math.Pi, External: true},
			"e":   {Value: math.E, External: true},
			"tau": {Value: 2 * math.Pi, External: true},
			"phi": {Value: math.Phi, External: true},
			"inf": {Value: math.Inf(1), External: true},
			"nan": {Value: math.NaN(), External: true},
		},
		functions: make(map[string]Function),
		builtins:  StandardBuiltins(),
		angleUnit: DefaultAngleUnit,
		maxDepth:  DefaultMaxDepth,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Variable returns the binding of name.
func (c *Context) Variable(name string) (Var, bool) {
	v, ok := c.variables[name]

	return v, ok
}

// SetVariable binds name to value. It fails with [ReadOnly] if name is an
// external variable or a builtin function.
func (c *Context) SetVariable(name string, value float64) error {
	if err := c.writable(name); err != nil {
		return err
	}

	c.variables[name] = Var{Value: value}

	return nil
}

// Function returns the user function named name.
func (c *Context) Function(name string) (Function, bool) {
	f, ok := c.functions[name]

	return f, ok
}

// SetFunction binds a user function. It fails with [ReadOnly] if name is an
// external variable or a builtin function.
func (c *Context) SetFunction(name string, params []string, body Expr) error {
	if err := c.writable(name); err != nil {
		return err
	}

	c.functions[name] = Function{Params: slices.Clone(params), Body: body}

	return nil
}

// Builtin returns the builtin function named name.
func (c *Context) Builtin(name string) (Builtin, bool) {
	b, ok := c.builtins[name]

	return b, ok
}

// PrevAnswer returns the result of the last evaluated expression statement.
func (c *Context) PrevAnswer() (float64, bool) {
	return c.prev, c.hasPrev
}

// SetPrevAnswer records v as the previous answer.
func (c *Context) SetPrevAnswer(v float64) {
	c.prev, c.hasPrev = v, true
}

// AngleUnit returns the angle unit used by trigonometric builtins.
func (c *Context) AngleUnit() AngleUnit { return c.angleUnit }

// SetAngleUnit changes the angle unit used by trigonometric builtins.
func (c *Context) SetAngleUnit(unit AngleUnit) { c.angleUnit = unit }

// MaxDepth returns the limit on nested user function calls.
func (c *Context) MaxDepth() int { return c.maxDepth }

// Logger returns the logger receiving evaluation traces.
func (c *Context) Logger() log.Logger { return c.logger }

// Variables returns an iterator over variable names and bindings in name
// order.
func (c *Context) Variables() iter.Seq2[string, Var] {
	return sortedSeq(c.variables)
}

// Functions returns an iterator over user function names and definitions in
// name order.
func (c *Context) Functions() iter.Seq2[string, Function] {
	return sortedSeq(c.functions)
}

// Builtins returns an iterator over builtin names and definitions in name
// order.
func (c *Context) Builtins() iter.Seq2[string, Builtin] {
	return sortedSeq(c.builtins)
}

// Names returns every name bound in c, sorted and without duplicates.
func (c *Context) Names() []string {
	names := slices.Collect(maps.Keys(c.variables))
	names = slices.AppendSeq(names, maps.Keys(c.functions))
	names = slices.AppendSeq(names, maps.Keys(c.builtins))
	slices.Sort(names)

	return slices.Compact(names)
}

func (c *Context) writable(name string) error {
	if v, ok := c.variables[name]; ok && v.External {
		return &EvalError{Kind: ReadOnly, Name: name}
	}

	if _, ok := c.builtins[name]; ok {
		return &EvalError{Kind: ReadOnly, Name: name}
	}

	return nil
}

func sortedSeq[V any](m map[string]V) iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for _, k := range slices.Sorted(maps.Keys(m)) {
			if !yield(k, m[k]) {
				return
			}
		}
	}
}

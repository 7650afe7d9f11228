package lang

import (
	"math"
	"strings"
)

// Variadic is the arity of builtins accepting one or more arguments.
const Variadic = -1

// AngleUse describes how a builtin relates to the angle unit.
type AngleUse int

const (
	AngleNone   AngleUse = iota // arguments and result are plain numbers
	AngleInput                  // the argument is an angle
	AngleOutput                 // the result is an angle
)

// Builtin is a native function.
//
// Arity is the exact argument count, or negative for a variadic function of
// at least -Arity arguments. Builtins never fail; out-of-domain arguments
// produce NaN or infinities as IEEE 754 prescribes.
type Builtin struct {
	Arity  int
	Params []string
	Doc    string
	Angle  AngleUse
	Fn     func(args ...float64) float64
}

// Call applies b to args, converting angles from and to unit.
// The caller is responsible for checking the arity.
func (b Builtin) Call(unit AngleUnit, args ...float64) float64 {
	if b.Angle == AngleInput && unit == Degree {
		for i := range args {
			args[i] *= math.Pi / 180
		}
	}

	v := b.Fn(args...)

	if b.Angle == AngleOutput && unit == Degree {
		v *= 180 / math.Pi
	}

	return v
}

// Accepts reports whether b can be called with n arguments.
func (b Builtin) Accepts(n int) bool {
	if b.Arity < 0 {
		return n >= -b.Arity
	}

	return n == b.Arity
}

// Signature renders the call signature of b, such as "atan2(y, x)".
func (b Builtin) Signature(name string) string {
	params := strings.Join(b.Params, ", ")
	if b.Arity < 0 {
		params += ", ..."
	}

	return name + "(" + params + ")"
}

func unary(doc string, angle AngleUse, fn func(float64) float64) Builtin {
	return Builtin{
		Arity:  1,
		Params: []string{"x"},
		Doc:    doc,
		Angle:  angle,
		Fn:     func(args ...float64) float64 { return fn(args[0]) },
	}
}

func binary(doc string, p, q string, fn func(float64, float64) float64) Builtin {
	return Builtin{
		Arity:  2,
		Params: []string{p, q},
		Doc:    doc,
		Fn:     func(args ...float64) float64 { return fn(args[0], args[1]) },
	}
}

func fold(doc string, fn func(float64, float64) float64) Builtin {
	return Builtin{
		Arity:  Variadic,
		Params: []string{"x"},
		Doc:    doc,
		Fn: func(args ...float64) float64 {
			v := args[0]
			for _, a := range args[1:] {
				v = fn(v, a)
			}

			return v
		},
	}
}

// StandardBuiltins returns a fresh copy of the standard builtin functions.
func StandardBuiltins() map[string]Builtin {
	return map[string]Builtin{
		"sin":   unary("sine", AngleInput, math.Sin),
		"cos":   unary("cosine", AngleInput, math.Cos),
		"tan":   unary("tangent", AngleInput, math.Tan),
		"asin":  unary("inverse sine", AngleOutput, math.Asin),
		"acos":  unary("inverse cosine", AngleOutput, math.Acos),
		"atan":  unary("inverse tangent", AngleOutput, math.Atan),
		"sinh":  unary("hyperbolic sine", AngleNone, math.Sinh),
		"cosh":  unary("hyperbolic cosine", AngleNone, math.Cosh),
		"tanh":  unary("hyperbolic tangent", AngleNone, math.Tanh),
		"asinh": unary("inverse hyperbolic sine", AngleNone, math.Asinh),
		"acosh": unary("inverse hyperbolic cosine", AngleNone, math.Acosh),
		"atanh": unary("inverse hyperbolic tangent", AngleNone, math.Atanh),
		"exp":   unary("e raised to x", AngleNone, math.Exp),
		"ln":    unary("natural logarithm", AngleNone, math.Log),
		"log":   unary("base 10 logarithm", AngleNone, math.Log10),
		"log2":  unary("base 2 logarithm", AngleNone, math.Log2),
		"sqrt":  unary("square root", AngleNone, math.Sqrt),
		"cbrt":  unary("cube root", AngleNone, math.Cbrt),
		"abs":   unary("absolute value", AngleNone, math.Abs),
		"floor": unary("round toward negative infinity", AngleNone, math.Floor),
		"ceil":  unary("round toward positive infinity", AngleNone, math.Ceil),
		"round": unary("round half away from zero", AngleNone, math.Round),
		"trunc": unary("round toward zero", AngleNone, math.Trunc),
		"sign":  unary("sign of x as -1, 0 or 1", AngleNone, sign),

		"atan2": {
			Arity:  2,
			Params: []string{"y", "x"},
			Doc:    "angle of the point (x, y)",
			Angle:  AngleOutput,
			Fn:     func(args ...float64) float64 { return math.Atan2(args[0], args[1]) },
		},
		"hypot": binary("length of the hypotenuse", "x", "y", math.Hypot),
		"logb":  binary("logarithm of x in base b", "x", "b", logb),

		"max": fold("largest argument", math.Max),
		"min": fold("smallest argument", math.Min),
	}
}

func sign(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return x

	case x > 0:
		return 1

	case x < 0:
		return -1

	default:
		return 0
	}
}

func logb(x, b float64) float64 {
	return math.Log(x) / math.Log(b)
}

// Package lang implements the seva calculator language: a parser producing
// an expression tree, an evaluator over a mutable [Context], and result
// formatting.
//
// # Grammar
//
// One input line is one statement:
//
//	2 + 3 * 4          expression
//	let r = 2          variable definition, evaluated now
//	let area(r) = pi r^2
//	area(3)            function call
//	_ * 2              previous answer
//
// Operators, loosest binding first:
//
//	+ -                left-associative
//	* / %              left-associative, % is the Euclidean remainder
//	juxtaposition      implicit multiplication: 2x, 2 pi, (1+2)(3+4)
//	^ **               right-associative
//	-                  prefix negation
//	!                  postfix factorial
//
// Numeric literals are unsigned decimals with optional fraction and
// exponent. Identifiers are ASCII letters followed by letters or digits.
// The word "let" is reserved.
//
// # Evaluation
//
// Arithmetic follows IEEE 754: division by zero yields an infinity or NaN,
// as does a zero divisor of %. Function calls evaluate their arguments left
// to right and resolve builtins before user functions. A user function body
// sees its parameters and the global variables only.
//
// The constants pi, e, tau, phi, inf and nan are predefined and read-only.
//
// # Errors
//
// [Parse] returns a *[ParseError] and [Eval] returns an *[EvalError]; both
// implement [log/slog.LogValuer]. Sentinel values such as [ErrUndefined]
// match any error of their kind with [errors.Is].
package lang

package lang

import (
	"errors"
	"testing"
)

// FuzzParse tests the parser with random inputs to find edge cases.
func FuzzParse(f *testing.F) {
	// Seed corpus with known valid and invalid syntax
	f.Add("1 + 2 * 3")
	f.Add("2pi")
	f.Add("(1+2)(3+4)")
	f.Add("2^3^2")
	f.Add("-x!")
	f.Add("1.5e-3")
	f.Add("2e")
	f.Add("let x = 3")
	f.Add("let f(x, y) = x y")
	f.Add("let f(")
	f.Add("max(1, 2, 3,)")
	f.Add("_ * 2")
	f.Add("((((")
	f.Add("2 3")
	f.Add("")
	f.Add("2.5.3")
	f.Add("-_!")
	f.Add("é")
	f.Add("2**-3!")

	f.Fuzz(func(t *testing.T, input string) {
		stmt, err := Parse(input)
		if (stmt == nil) == (err == nil) {
			t.Fatalf("Parse(%q) = (%v, %v): expected exactly one result", input, stmt, err)
		}

		if err == nil {
			return
		}

		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("Parse(%q) returned %T, expected *ParseError", input, err)
		}

		if perr.Span.Start < 0 || perr.Span.Start > len(input) || perr.Span.End > len(input) {
			t.Errorf("Parse(%q) error span %+v outside input", input, perr.Span)
		}

		// Rendering must not panic for any span.
		_ = perr.Error()
		_ = perr.Snippet()
	})
}

// FuzzEval evaluates every statement that parses to check that evaluation
// fails with an error rather than a panic.
func FuzzEval(f *testing.F) {
	f.Add("let f(x) = f(x)")
	f.Add("171!")
	f.Add("0 % 0")
	f.Add("log(0, 0)")
	f.Add("atan2(1)")
	f.Add("y + 1")

	f.Fuzz(func(t *testing.T, input string) {
		stmt, err := Parse(input)
		if err != nil {
			return
		}

		c := NewContext(WithMaxDepth(32))

		if _, err := Eval(stmt, c); err != nil {
			var eerr *EvalError
			if !errors.As(err, &eerr) {
				t.Errorf("Eval(%q) returned %T, expected *EvalError", input, err)
			}
		}

		// A recursive definition only fails when called.
		if def, ok := stmt.(DefFun); ok {
			call, err := Parse(def.Name + "(1)")
			if err == nil {
				_, _ = Eval(call, c)
			}
		}
	})
}

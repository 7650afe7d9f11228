package lang

import (
	"slices"
	"testing"
)

func TestStmt_String(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2+3*4", "(2 + (3 * 4))"},
		{"2**3", "(2 ^ 3)"},
		{"8 % 3 - 1", "((8 % 3) - 1)"},
		{"-x!", "(-(x!))"},
		{"2x", "(2 * x)"},
		{"f(1, _)", "f(1, _)"},
		{"g()", "g()"},
		{"0.5", "0.5"},
		{"1e21", "1e+21"},
		{"1e400", "inf"},
		{"2 1e400", "(2 * inf)"},
		{"let x = 1/3", "let x = (1 / 3)"},
		{"let f(a, b) = a b", "let f(a, b) = (a * b)"},
		{"let f() = 1", "let f() = 1"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			stmt, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}

			if got := stmt.String(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestOperator_String(t *testing.T) {
	tests := []struct {
		op   interface{ String() string }
		want string
	}{
		{Neg, "-"},
		{Fac, "!"},
		{Add, "+"},
		{Sub, "-"},
		{Mul, "*"},
		{Div, "/"},
		{Rem, "%"},
		{Pow, "^"},
		{InfixOperator(99), "InfixOperator(99)"},
	}

	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("%#v: expected %q, got %q", tt.op, tt.want, got)
		}
	}
}

func TestWalk(t *testing.T) {
	stmt, err := Parse("f(x, 2) + -y! * _")
	if err != nil {
		t.Fatal(err)
	}

	var names []string

	Walk(stmt.(ExprStmt).Body, func(e Expr) bool {
		switch n := e.(type) {
		case Variable:
			names = append(names, n.Name)

		case FnCall:
			names = append(names, n.Name+"()")
		}

		return true
	})

	if want := []string{"f()", "x", "y"}; !slices.Equal(names, want) {
		t.Errorf("expected %q, got %q", want, names)
	}
}

func TestWalk_SkipChildren(t *testing.T) {
	stmt, err := Parse("f(x) + g(y)")
	if err != nil {
		t.Fatal(err)
	}

	var visited int

	Walk(stmt.(ExprStmt).Body, func(e Expr) bool {
		visited++

		_, isCall := e.(FnCall)

		return !isCall
	})

	// the sum and both calls, but neither argument
	if visited != 3 {
		t.Errorf("expected 3 visited nodes, got %d", visited)
	}
}

func TestStmt_String_Reparse(t *testing.T) {
	c := NewContext()

	for _, input := range []string{"1e400 - 1", "-1e999", "let y = 1e400 / 2", "1e-7 + 0.1"} {
		stmt, err := Parse(input)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", input, err)
		}

		again, err := Parse(stmt.String())
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", stmt.String(), err)
		}

		if again.String() != stmt.String() {
			t.Errorf("%q: reparsed as %q", stmt, again)
		}

		want, err := Eval(stmt, c)
		if err != nil {
			t.Fatal(err)
		}

		got, err := Eval(again, c)
		if err != nil {
			t.Fatal(err)
		}

		if got != want {
			t.Errorf("%q: %v after reparse, expected %v", input, got, want)
		}
	}
}

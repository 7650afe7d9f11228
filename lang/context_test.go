package lang

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func TestNewContext_Constants(t *testing.T) {
	c := NewContext()

	tests := []struct {
		name string
		want float64
	}{
		{"pi", math.Pi},
		{"e", math.E},
		{"tau", 2 * math.Pi},
		{"phi", math.Phi},
		{"inf", math.Inf(1)},
		{"nan", math.NaN()},
	}

	for _, tt := range tests {
		v, ok := c.Variable(tt.name)
		if !ok {
			t.Errorf("%s: not defined", tt.name)

			continue
		}

		if !v.External {
			t.Errorf("%s: expected external binding", tt.name)
		}

		if !approxEqual(v.Value, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, v.Value)
		}

		if err := c.SetVariable(tt.name, 1); !errors.Is(err, ErrReadOnly) {
			t.Errorf("%s: expected read-only error, got %v", tt.name, err)
		}
	}
}

func TestContext_Bindings(t *testing.T) {
	c := NewContext()

	if err := c.SetVariable("x", 2); err != nil {
		t.Fatal(err)
	}

	if err := c.SetVariable("x", 3); err != nil {
		t.Fatal(err)
	}

	if v, ok := c.Variable("x"); !ok || v.Value != 3 || v.External {
		t.Errorf("x: got %+v, %v", v, ok)
	}

	params := []string{"a"}
	if err := c.SetFunction("f", params, ident("a")); err != nil {
		t.Fatal(err)
	}

	params[0] = "changed"

	if f, ok := c.Function("f"); !ok || !slices.Equal(f.Params, []string{"a"}) {
		t.Errorf("f: got %+v, %v", f, ok)
	}

	if err := c.SetFunction("sqrt", nil, num(1)); !errors.Is(err, ErrReadOnly) {
		t.Errorf("sqrt: expected read-only error, got %v", err)
	}

	if _, ok := c.PrevAnswer(); ok {
		t.Error("previous answer set on new context")
	}

	c.SetPrevAnswer(7)

	if v, ok := c.PrevAnswer(); !ok || v != 7 {
		t.Errorf("previous answer: got %v, %v", v, ok)
	}
}

func TestContext_Iterators(t *testing.T) {
	c := NewContext()

	_ = c.SetVariable("zeta", 1)
	_ = c.SetVariable("alpha", 2)
	_ = c.SetFunction("g", nil, num(1))
	_ = c.SetFunction("b", nil, num(1))

	var vars []string
	for name := range c.Variables() {
		vars = append(vars, name)
	}

	if !slices.IsSorted(vars) || !slices.Contains(vars, "alpha") || !slices.Contains(vars, "pi") {
		t.Errorf("variables: got %q", vars)
	}

	var funcs []string
	for name := range c.Functions() {
		funcs = append(funcs, name)
	}

	if want := []string{"b", "g"}; !slices.Equal(funcs, want) {
		t.Errorf("functions: expected %q, got %q", want, funcs)
	}

	var builtins []string
	for name := range c.Builtins() {
		builtins = append(builtins, name)
		if name == "cos" {
			break
		}
	}

	if want := []string{"abs", "acos", "acosh", "asin", "asinh", "atan", "atan2", "atanh", "cbrt", "ceil", "cos"}; !slices.Equal(builtins, want) {
		t.Errorf("builtins: expected %q, got %q", want, builtins)
	}

	names := c.Names()
	if !slices.IsSorted(names) || len(slices.Compact(slices.Clone(names))) != len(names) {
		t.Errorf("names not sorted and unique: %q", names)
	}

	for _, want := range []string{"alpha", "b", "sin", "pi"} {
		if !slices.Contains(names, want) {
			t.Errorf("names: missing %q", want)
		}
	}
}

func TestContext_Options(t *testing.T) {
	c := NewContext(WithAngleUnit(Degree), WithMaxDepth(0))

	if c.AngleUnit() != Degree {
		t.Errorf("angle unit: expected degree, got %v", c.AngleUnit())
	}

	if c.MaxDepth() != DefaultMaxDepth {
		t.Errorf("max depth: expected %d, got %d", DefaultMaxDepth, c.MaxDepth())
	}

	c.SetAngleUnit(Radian)

	if c.AngleUnit() != Radian {
		t.Errorf("angle unit: expected radian, got %v", c.AngleUnit())
	}
}

func TestParseAngleUnit(t *testing.T) {
	tests := []struct {
		input string
		want  AngleUnit
	}{
		{"radian", Radian},
		{"rad", Radian},
		{"degree", Degree},
		{"deg", Degree},
		{"bogus", DefaultAngleUnit},
	}

	for _, tt := range tests {
		if got := ParseAngleUnit(tt.input); got != tt.want {
			t.Errorf("ParseAngleUnit(%q) = %v, expected %v", tt.input, got, tt.want)
		}
	}
}

func TestBuiltin_Signature(t *testing.T) {
	builtins := StandardBuiltins()

	tests := []struct {
		name string
		want string
	}{
		{"sin", "sin(x)"},
		{"atan2", "atan2(y, x)"},
		{"logb", "logb(x, b)"},
		{"max", "max(x, ...)"},
	}

	for _, tt := range tests {
		if got := builtins[tt.name].Signature(tt.name); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}

func TestBuiltin_IEEEResults(t *testing.T) {
	builtins := StandardBuiltins()

	tests := []struct {
		name string
		args []float64
		want float64
	}{
		{"sqrt", []float64{-1}, math.NaN()},
		{"ln", []float64{0}, math.Inf(-1)},
		{"log", []float64{1000}, 3},
		{"log2", []float64{8}, 3},
		{"acosh", []float64{0.5}, math.NaN()},
		{"round", []float64{-2.5}, -3},
		{"trunc", []float64{-2.5}, -2},
		{"sign", []float64{math.NaN()}, math.NaN()},
		{"cbrt", []float64{-27}, -3},
		{"min", []float64{3}, 3},
	}

	for _, tt := range tests {
		b := builtins[tt.name]

		if !b.Accepts(len(tt.args)) {
			t.Errorf("%s does not accept %d arguments", tt.name, len(tt.args))

			continue
		}

		if got := b.Call(Radian, tt.args...); !approxEqual(got, tt.want) {
			t.Errorf("%s(%v) = %v, expected %v", tt.name, tt.args, got, tt.want)
		}
	}
}

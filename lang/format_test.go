package lang

import (
	"math"
	"testing"
)

func TestFormatResult(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		fix   int
		base  int
		want  string
	}{
		{"integer", 2, 10, 10, "2"},
		{"trailing zeros trimmed", 100, 10, 10, "100"},
		{"fraction", 1.5, 10, 10, "1.5"},
		{"rounding noise removed", 0.1 + 0.2, 10, 10, "0.3"},
		{"fixed digits", 1.0 / 3, 4, 10, "0.3333"},
		{"rounded digits", 2.0 / 3, 2, 10, "0.67"},
		{"shortest", 1234.5, -1, 10, "1234.5"},
		{"negative zero", math.Copysign(0, -1), 10, 10, "0"},
		{"rounds to zero", -0.0001, 2, 10, "0"},
		{"negative", -2.25, 10, 10, "-2.25"},
		{"large magnitude", 1e21, 3, 10, "1e+21"},
		{"large mantissa", 1.25e300, 4, 10, "1.25e+300"},
		{"nan", math.NaN(), 10, 10, "NaN"},
		{"positive infinity", math.Inf(1), 10, 16, "inf"},
		{"negative infinity", math.Inf(-1), 10, 2, "-inf"},
		{"hexadecimal", 255, 10, 16, "0xff"},
		{"binary negative", -10, 10, 2, "-0b1010"},
		{"octal", 8, 0, 8, "0o10"},
		{"binary fraction", 0.5, 10, 2, "0b0.1"},
		{"binary fraction truncated", 0.1, 4, 2, "0b0.0001"},
		{"hexadecimal fraction", 31.5, 10, 16, "0x1f.8"},
		{"ternary", 12, 10, 3, "110_3"},
		{"base 36", 35, 10, 36, "z_36"},
		{"hexadecimal negative zero", math.Copysign(0, -1), 10, 16, "0x0"},
		{"base too small", 255, 10, 1, "255"},
		{"base too large", 255, 10, 37, "255"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatResult(tt.value, tt.fix, tt.base); got != tt.want {
				t.Errorf("FormatResult(%v, %d, %d) = %q, expected %q",
					tt.value, tt.fix, tt.base, got, tt.want)
			}
		})
	}
}

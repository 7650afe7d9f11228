package lang

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Result formatting defaults.
const (
	DefaultFix  = 10
	DefaultBase = 10
	MinBase     = 2
	MaxBase     = 36
)

// exponentThreshold is the magnitude from which decimal results switch to
// scientific notation.
const exponentThreshold = 1e21

// FormatResult renders v with at most fix fractional digits in the given
// radix. Trailing fractional zeros are trimmed.
//
// Radix 10 renders plain decimals, switching to scientific notation for
// magnitudes of 1e21 and above. Radixes 2, 8 and 16 render with a 0b, 0o or
// 0x prefix; any other radix in [MinBase, MaxBase] renders as digits_base.
// Non-decimal fractions are truncated rather than rounded. A base outside
// [MinBase, MaxBase] falls back to 10; a negative fix means as many digits as
// needed.
func FormatResult(v float64, fix, base int) string {
	switch {
	case math.IsNaN(v):
		return "NaN"

	case math.IsInf(v, 1):
		return "inf"

	case math.IsInf(v, -1):
		return "-inf"
	}

	if base < MinBase || base > MaxBase {
		base = DefaultBase
	}

	if base == DefaultBase {
		return formatDecimal(v, fix)
	}

	return formatRadix(v, fix, base)
}

func formatDecimal(v float64, fix int) string {
	if math.Abs(v) >= exponentThreshold {
		s := strconv.FormatFloat(v, 'e', fix, 64)
		mant, exp, _ := strings.Cut(s, "e")

		return trimFraction(mant) + "e" + exp
	}

	s := trimFraction(strconv.FormatFloat(v, 'f', fix, 64))
	if s == "-0" {
		return "0"
	}

	return s
}

func formatRadix(v float64, fix, base int) string {
	if fix < 0 {
		fix = DefaultFix
	}

	whole, frac := math.Modf(math.Abs(v))

	n, _ := big.NewFloat(whole).Int(nil)

	digits := make([]byte, 0, fix)

	for range fix {
		d, rest := math.Modf(frac * float64(base))
		digits = append(digits, strconv.FormatInt(int64(d), base)[0])
		frac = rest
	}

	fraction := strings.TrimRight(string(digits), "0")

	var sb strings.Builder

	if v < 0 && (n.Sign() != 0 || fraction != "") {
		sb.WriteByte('-')
	}

	switch base {
	case 2:
		sb.WriteString("0b")

	case 8:
		sb.WriteString("0o")

	case 16:
		sb.WriteString("0x")
	}

	sb.WriteString(n.Text(base))

	if fraction != "" {
		sb.WriteByte('.')
		sb.WriteString(fraction)
	}

	if base != 2 && base != 8 && base != 16 {
		sb.WriteByte('_')
		sb.WriteString(strconv.Itoa(base))
	}

	return sb.String()
}

// trimFraction removes trailing zeros of a fractional part and a dangling
// decimal point.
func trimFraction(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}

	return strings.TrimSuffix(strings.TrimRight(s, "0"), ".")
}

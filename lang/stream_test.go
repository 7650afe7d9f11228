package lang

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
)

func TestScript(t *testing.T) {
	src := strings.Join([]string{
		"# circle",
		"let r = 2",
		"",
		"let area(r) = pi r^2",
		"area(r) / pi",
		"undefined + 1",
		"_ * 2",
		"let x(",
	}, "\n")

	var lines []Line
	for line := range Script(strings.NewReader(src), NewContext()) {
		lines = append(lines, line)
	}

	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d", len(lines))
	}

	tests := []struct {
		number int
		value  float64
		err    error
	}{
		{2, 2, nil},
		{4, 0, nil},
		{5, 4, nil},
		{6, 0, ErrUndefined},
		{7, 8, nil},
		{8, 0, &ParseError{Kind: UnexpectedToken}},
	}

	for i, tt := range tests {
		got := lines[i]

		if got.Number != tt.number {
			t.Errorf("line %d: number %d", tt.number, got.Number)
		}

		if tt.err != nil {
			if !errors.Is(got.Err, tt.err) {
				t.Errorf("line %d: expected %v, got %v", tt.number, tt.err, got.Err)
			}

			continue
		}

		if got.Err != nil {
			t.Errorf("line %d: unexpected error %v", tt.number, got.Err)
		}

		if !approxEqual(got.Value, tt.value) {
			t.Errorf("line %d: expected %v, got %v", tt.number, tt.value, got.Value)
		}
	}
}

func TestScript_Break(t *testing.T) {
	count := 0

	for range Script(strings.NewReader("1\n2\n3\n"), NewContext()) {
		count++

		break
	}

	if count != 1 {
		t.Errorf("expected 1 iteration, got %d", count)
	}
}

func TestScript_ReadError(t *testing.T) {
	boom := errors.New("boom")

	var last Line
	for line := range Script(iotest.ErrReader(boom), NewContext()) {
		last = line
	}

	if !errors.Is(last.Err, boom) {
		t.Errorf("expected read error, got %v", last.Err)
	}
}

func TestScript_LongLine(t *testing.T) {
	const terms = 20000

	long := "1" + strings.Repeat(" + 1", terms-1)

	var lines []Line
	for line := range Script(strings.NewReader(long+"\n_ * 2"), NewContext()) {
		lines = append(lines, line)
	}

	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}

	if lines[0].Err != nil || lines[0].Value != terms {
		t.Errorf("long line = %v, %v", lines[0].Value, lines[0].Err)
	}

	if lines[1].Number != 2 || lines[1].Value != 2*terms {
		t.Errorf("line after long line = %+v", lines[1])
	}
}

func TestScript_PartialThenError(t *testing.T) {
	boom := errors.New("boom")
	r := io.MultiReader(strings.NewReader("1\n2"), iotest.ErrReader(boom))

	var lines []Line
	for line := range Script(r, NewContext()) {
		lines = append(lines, line)
	}

	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}

	if lines[1].Source != "2" || lines[1].Value != 2 {
		t.Errorf("unterminated line = %+v", lines[1])
	}

	if lines[2].Number != 3 || !errors.Is(lines[2].Err, boom) {
		t.Errorf("read error line = %+v", lines[2])
	}
}

func TestScript_LinesParsedIndependently(t *testing.T) {
	var errs []*ParseError

	for line := range Script(strings.NewReader("2 +\n2 +\n"), NewContext()) {
		var perr *ParseError
		if !errors.As(line.Err, &perr) {
			t.Fatalf("line %d: expected a parse error, got %v", line.Number, line.Err)
		}

		errs = append(errs, perr)
	}

	if len(errs) != 2 || errs[0] == errs[1] {
		t.Fatalf("identical lines share one error value")
	}

	errs[0].Labels = append(errs[0].Labels, "changed")

	if len(errs[1].Labels) != 0 {
		t.Errorf("changing one line's error affected another: %v", errs[1].Labels)
	}
}

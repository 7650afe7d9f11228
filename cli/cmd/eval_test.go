package cmd

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/enklht/seva/lang"
	"github.com/enklht/seva/log"
)

func optionsLogger() log.Logger { return log.Make(nil) }

// evalContext returns a context carrying opts and a kong application writing
// to the returned buffers.
func evalContext(t *testing.T, opts Options) (context.Context, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	var (
		cli         struct{}
		out, errOut bytes.Buffer
	)

	parser, err := kong.New(&cli, kong.Writers(&out, &errOut))
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse(nil)
	if err != nil {
		t.Fatal(err)
	}

	ctx := WithOptions(WithContext(t.Context(), ktx), opts)

	return ctx, &out, &errOut
}

func TestEvalRun_Arguments(t *testing.T) {
	plain := DefaultOptions()
	plain.Color = false

	tests := []struct {
		name    string
		opts    func(*Options)
		exprs   []string
		want    string
		wantErr bool
	}{
		{
			name:  "definitions",
			exprs: []string{"let x = 3", "let f(y) = y x", "f(2)", "x!"},
			want:  "3\n6\n6\n",
		},
		{
			name:  "previous answer",
			exprs: []string{"2^10", "_ / 4"},
			want:  "1024\n256\n",
		},
		{
			name:  "fixed digits",
			opts:  func(o *Options) { o.Fix = 2 },
			exprs: []string{"1/3", "2/3"},
			want:  "0.33\n0.67\n",
		},
		{
			name:  "binary",
			opts:  func(o *Options) { o.Base = 2 },
			exprs: []string{"10"},
			want:  "0b1010\n",
		},
		{
			name:  "degrees",
			opts:  func(o *Options) { o.AngleUnit = lang.Degree },
			exprs: []string{"sin(90)", "atan2(1, 1)"},
			want:  "1\n45\n",
		},
		{
			name:  "debug",
			opts:  func(o *Options) { o.Debug = true },
			exprs: []string{"2 3"},
			want:  "(2 * 3)\n6\n",
		},
		{
			name:    "errors continue",
			exprs:   []string{"1 +", "undefined", "2"},
			want:    "2\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := plain
			if tt.opts != nil {
				tt.opts(&opts)
			}

			ctx, out, _ := evalContext(t, opts)

			err := (&Eval{Exprs: tt.exprs}).Run(ctx)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Eval.Run() error = %v, wantErr %v", err, tt.wantErr)
			}

			if got := out.String(); got != tt.want {
				t.Errorf("output %q, expected %q", got, tt.want)
			}
		})
	}
}

func TestEvalRun_ErrorOutput(t *testing.T) {
	opts := DefaultOptions()
	opts.Color = false

	ctx, out, errOut := evalContext(t, opts)

	err := (&Eval{Exprs: []string{"4", "(1", "5"}, FailFast: true}).Run(ctx)
	if err == nil || err.Error() != ErrEvaluate.Error() {
		t.Fatalf("expected %v, got %v", ErrEvaluate, err)
	}

	if out.String() != "4\n" {
		t.Errorf("fail-fast output %q", out.String())
	}

	for _, want := range []string{"line 2:", "expected ')'", "  (1\n", "    ^"} {
		if !strings.Contains(errOut.String(), want) {
			t.Errorf("error output %q does not contain %q", errOut.String(), want)
		}
	}
}

func TestEvalRun_SourceFiles(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"defs.seva":   "# constants\nlet g = 9.8\nlet fall(t) = g t^2 / 2\n",
		"script.seva": "\nfall(2)\nfall(h)\n",
	})

	opts := DefaultOptions()
	opts.Color = false

	ctx, out, errOut := evalContext(t, opts)
	ctx = WithSourceFiles(ctx, []string{
		filepath.Join(dir, "defs.seva"),
		filepath.Join(dir, "script.seva"),
	})

	var target *Error

	err := (&Eval{}).Run(ctx)
	if !errors.As(err, &target) {
		t.Fatalf("expected *Error, got %v", err)
	}

	if got, want := out.String(), "9.8\n19.6\n"; got != want {
		t.Errorf("output %q, expected %q", got, want)
	}

	// Lines are numbered across the concatenated sources.
	if !strings.Contains(errOut.String(), "line 7:") {
		t.Errorf("error output %q", errOut.String())
	}
}

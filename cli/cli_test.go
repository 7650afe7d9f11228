package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/enklht/seva/lang"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "seva-cli")
	if err != nil {
		panic(err)
	}

	// configDir and cacheDir are resolved once per process.
	os.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	os.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))

	code := m.Run()

	os.RemoveAll(dir)
	os.Exit(code)
}

func TestCLI_Validate(t *testing.T) {
	tests := []struct {
		base    int
		wantErr bool
	}{
		{lang.MinBase, false},
		{10, false},
		{lang.MaxBase, false},
		{1, true},
		{37, true},
	}

	for _, tt := range tests {
		c := CLI{Base: tt.base}

		if err := c.Validate(); (err != nil) != tt.wantErr {
			t.Errorf("base %d: error = %v, expected error %v", tt.base, err, tt.wantErr)
		}
	}
}

func TestCLI_Options(t *testing.T) {
	c := CLI{Fix: 3, Base: 16, AngleUnit: "degree", Debug: true}

	opts := c.options()
	if opts.Fix != 3 || opts.Base != 16 || opts.AngleUnit != lang.Degree ||
		!opts.Debug || opts.Color {
		t.Errorf("unexpected options: %+v", opts)
	}

	if opts.CacheDir != cacheDir() {
		t.Errorf("cache dir %q, expected %q", opts.CacheDir, cacheDir())
	}
}

func TestPaths(t *testing.T) {
	if got := configPath(baseConfig); !strings.HasSuffix(got, filepath.Join("config", "seva", baseConfig)) {
		t.Errorf("config path %q", got)
	}

	if got := cacheDir(); !strings.HasSuffix(got, filepath.Join("cache", "seva")) {
		t.Errorf("cache dir %q", got)
	}
}

func TestRun(t *testing.T) {
	exit := func(code int) { t.Fatalf("unexpected exit(%d)", code) }

	if err := Run(t.Context(), exit, "--no-log-pretty", "eval", "1 + 1"); err != nil {
		t.Fatalf("eval: %v", err)
	}

	for _, dir := range []string{configDir(), cacheDir()} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Errorf("directory %q not created: %v", dir, err)
		}
	}

	if err := Run(t.Context(), exit, "eval", "1 +"); err == nil {
		t.Error("expected an evaluation error")
	}

	if err := Run(t.Context(), exit, "--base=40", "eval", "1"); err == nil {
		t.Error("expected a validation error for --base=40")
	}
}

func TestRun_Config(t *testing.T) {
	exit := func(code int) { t.Fatalf("unexpected exit(%d)", code) }

	if err := Run(t.Context(), exit, "--fix=4", "init", "--force"); err != nil {
		t.Fatalf("init: %v", err)
	}

	data, err := os.ReadFile(configPath(baseConfig))
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(string(data), "fix: 4") {
		t.Errorf("config does not record --fix:\n%s", data)
	}

	if err := Run(t.Context(), exit, "init"); err == nil {
		t.Error("expected init to refuse overwriting the config file")
	}

	if err := os.WriteFile(configPath(baseConfig), []byte("base: 99\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := Run(t.Context(), exit, "eval", "1"); err == nil {
		t.Error("expected the configured base to fail validation")
	}

	if err := os.Remove(configPath(baseConfig)); err != nil {
		t.Fatal(err)
	}
}

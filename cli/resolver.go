package cli

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/enklht/seva/cli/cmd"
)

// resolve is a [kong.ConfigurationLoader] that reads a YAML mapping of flag
// names to values.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve, "/path/to/config.yaml")
//
// Keys are flag names; hyphens may be written as underscores. Sequences
// are joined with commas for slice flags. Example:
//
//	fix: 4
//	angle-unit: degree
//	log_level: debug
//	log-pretty: false
//
// Command-line flags override config file values.
func resolve(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, cmd.ErrReadConfig.Wrap(err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return config{}, nil
	}

	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, cmd.ErrReadConfig.Wrap(err)
	}

	c := make(config, len(values))
	for key, value := range values {
		c[strings.ReplaceAll(key, "_", "-")] = normalize(value)
	}

	return c, nil
}

// config implements [kong.Resolver] for YAML configuration files.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error {
	return nil
}

// Resolve implements [kong.Resolver].
func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	if value, ok := c[flag.Name]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}

// normalize converts a decoded YAML value to the string form kong parses.
// Booleans are kept so negatable flags resolve.
func normalize(value any) any {
	switch v := value.(type) {
	case bool, string:
		return v

	case []any:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = fmt.Sprint(normalize(e))
		}

		return strings.Join(parts, ",")

	default:
		return fmt.Sprint(v)
	}
}

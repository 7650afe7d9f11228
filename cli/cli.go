package cli

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/enklht/seva/cli/cmd"
	"github.com/enklht/seva/lang"
	"github.com/enklht/seva/pkg"
)

// CLI is the top-level command-line interface for seva.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Fix       int      `default:"${fix}"       help:"Fractional digits to print (negative for shortest)"                short:"f"`
	Base      int      `default:"${base}"      help:"Radix of printed results (${minBase}-${maxBase})"                   short:"b"`
	AngleUnit string   `default:"${angleUnit}" help:"Unit of angles in trigonometric functions"  enum:"radian,degree" short:"a"`
	Debug     bool     `                       help:"Print each parsed statement before its result"                     short:"d"`
	Color     bool     `default:"true"         help:"Colorize output"                                                              negatable:""`
	Source    []string `                       help:"Evaluate statements from file(s) or '-' for stdin" type:"existingfile"  short:"s"`

	Version kong.VersionFlag `help:"Print version and exit"`

	Repl cmd.Repl `cmd:"" default:"1" help:"Start an interactive session"`
	Eval cmd.Eval `cmd:""             help:"Evaluate statements"`
	Init cmd.Init `cmd:""             help:"Initialize configuration file"`
}

// Validate implements the kong validation hook.
func (c *CLI) Validate() error {
	if c.Base < lang.MinBase || c.Base > lang.MaxBase {
		return fmt.Errorf("--base must be between %d and %d, got %d",
			lang.MinBase, lang.MaxBase, c.Base)
	}

	return nil
}

// options returns the settings shared by every command.
func (c *CLI) options() cmd.Options {
	return cmd.Options{
		Fix:       c.Fix,
		Base:      c.Base,
		AngleUnit: lang.ParseAngleUnit(c.AngleUnit),
		Debug:     c.Debug,
		Color:     c.Color,
		CacheDir:  cacheDir(),
	}
}

// Run executes the seva CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(baseConfig)

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  cacheDir(),
		"version":            pkg.Name + " " + pkg.Version,
		"fix":                fmt.Sprint(lang.DefaultFix),
		"base":               fmt.Sprint(lang.DefaultBase),
		"minBase":            fmt.Sprint(lang.MinBase),
		"maxBase":            fmt.Sprint(lang.MaxBase),
		"angleUnit":          lang.DefaultAngleUnit.String(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position. TextUnmarshaler on logFormat/logLevel handles those flags
	// during normal parsing, but this early scan also catches boolean flags
	// like --log-pretty.
	cli.Log.scan(args)

	// Parse command line
	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(resolve, configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	cli.Log.start(ctx, cli.Color)

	// Stuff additional context values for use by commands
	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithOptions(ctx, cli.options())
	ctx = cmd.WithSourceFiles(ctx, cli.Source)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	// Execute the selected command
	return ktx.Run(ctx, &cli)
}

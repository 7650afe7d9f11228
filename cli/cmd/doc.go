// Package cmd implements the seva subcommands: the interactive REPL, batch
// evaluation of expressions and scripts, and configuration file generation.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file.
	ConfigIdentifier = "config"
)

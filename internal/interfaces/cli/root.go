// Package cli implements the leadscout command-line interface: the API
// server, local one-shot runs, and schema migrations.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/turtacn/LeadScout/internal/config"
	"github.com/turtacn/LeadScout/internal/infrastructure/monitoring/logging"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// RootOptions holds the global CLI flags.
type RootOptions struct {
	ConfigPath string
	LogLevel   string
	Verbose    bool
}

// NewRootCommand creates the root command with global flags and subcommands.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:     "leadscout",
		Short:   "LeadScout — iterative molecular candidate optimization",
		Long:    "LeadScout runs multi-round generate-evaluate-rank optimization over\nmolecular candidates, filtering them through drug-likeness admission rules\nand reseeding each round from the previous elites.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),

		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: ./configs/config.yaml)")
	pf.StringVar(&opts.LogLevel, "log-level", "", "log level override (debug, info, warn, error)")
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		newServeCmd(opts),
		newRunCmd(opts),
		newMigrateCmd(opts),
		newVersionCmd(),
	)

	return cmd
}

// Execute runs the CLI.  It is the single entry point used by main.
func Execute() error {
	return NewRootCommand().Execute()
}

// loadConfig resolves configuration with priority: --config flag, then the
// default search paths, then environment variables over built-in defaults.
func loadConfig(opts *RootOptions) (*config.Config, error) {
	if opts.ConfigPath != "" {
		return config.Load(opts.ConfigPath)
	}

	for _, p := range []string{"configs/config.yaml", "config.yaml"} {
		if _, err := os.Stat(p); err == nil {
			return config.Load(p)
		}
	}

	return config.LoadFromEnv()
}

// newLogger builds the process logger from config, honoring CLI overrides.
func newLogger(cfg *config.Config, opts *RootOptions) (logging.Logger, error) {
	level := cfg.Log.Level
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	if opts.Verbose {
		level = "debug"
	}

	output := cfg.Log.Output
	if output == "" {
		output = "stdout"
	}

	return logging.NewLogger(logging.LogConfig{
		Level:            level,
		Format:           cfg.Log.Format,
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{"stderr"},
	})
}

//Personal.AI order the ending

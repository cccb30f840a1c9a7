package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/getmockd/contractd/pkg/cli/internal/flags"
	"github.com/getmockd/contractd/pkg/cli/internal/parse"
	"github.com/getmockd/contractd/pkg/config"
	"github.com/getmockd/contractd/pkg/logging"
	"github.com/getmockd/contractd/pkg/properties"
)

var (
	// Persistent flags available to all subcommands
	jsonOutput bool
	logLevel   string
	logFormat  string
	logFile    string
	seed       uint64
	envFile    string
	defines    flags.StringSlice

	// Resolved by setup before any command runs
	cfg     = config.NewDefault()
	logger  = logging.Nop()
	logSink *os.File

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "contractd",
	Short: "contractd checks HTTP and messaging contracts between consumers and producers",
	Long: `contractd loads consumer-driven contracts from YAML or JSON files and uses them
to validate contract files, render stub-side and test-side views, match requests
against stubs and verify producer responses and messages.

Configuration is layered: flags, then properties (-D, --env-file,
CONTRACTD_PROPERTIES_* and plain environment variables), then .contractdrc.yaml
in the working directory, then defaults.`,
	SilenceUsage:      true,
	SilenceErrors:     true, // We handle errors in Execute()
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) {
		if logSink != nil {
			_ = logSink.Close()
			logSink = nil
		}
	},
}

// Execute runs the root command and exits with status 1 on failure.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Main is Execute under the name testscript expects for registered commands.
func Main() { Execute() }

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default warn)")
	pf.StringVar(&logFormat, "log-format", "", "Log format: text or json (default text)")
	pf.StringVar(&logFile, "log-file", "", "Also write JSON logs to this file")
	pf.Uint64Var(&seed, "seed", 0, "Seed for generated example values (0 draws randomly)")
	pf.StringVar(&envFile, "env-file", "", "Load properties from a dotenv file")
	pf.VarP(&defines, "define", "D", "Set a system property (key=value, repeatable)")
}

// setup resolves the layered configuration and builds the logger.
func setup(cmd *cobra.Command, _ []string) error {
	c, err := config.LoadCLIConfig(".")
	if err != nil {
		return err
	}
	if envFile != "" {
		if err := c.LoadEnvFile(envFile); err != nil {
			return err
		}
	}

	defs, err := parse.Definitions(defines)
	if err != nil {
		return err
	}
	for k, v := range defs {
		properties.SetSystemProperty(k, v)
	}
	if err := c.ApplyProperties(); err != nil {
		return err
	}

	fl := cmd.Flags()
	if fl.Changed("log-level") {
		c.LogLevel = logLevel
		c.Sources["logLevel"] = config.SourceFlag
	}
	if fl.Changed("log-format") {
		c.LogFormat = logFormat
		c.Sources["logFormat"] = config.SourceFlag
	}
	if fl.Changed("seed") {
		c.Seed = seed
		c.Sources["seed"] = config.SourceFlag
	}
	if fl.Changed("json") {
		c.JSON = jsonOutput
		c.Sources["json"] = config.SourceFlag
	}
	jsonOutput = c.JSON

	l, err := newLogger(c, cmd)
	if err != nil {
		return err
	}
	cfg, logger = c, l
	logger.Debug("configuration resolved",
		"contracts", c.Contracts,
		"seed", c.Seed,
		"logLevel", c.LogLevel,
		"sources", c.Sources,
	)
	return nil
}

func newLogger(c *config.CLIConfig, cmd *cobra.Command) (*slog.Logger, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseFormat(c.LogFormat)
	if err != nil {
		return nil, err
	}
	lc := logging.Config{Level: level, Format: format, Output: cmd.ErrOrStderr()}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		logSink = f
		lc.Mirror = f
	}
	return logging.New(lc), nil
}

package terminal

import (
	"io"
	"os"

	"github.com/de-tools/pulse-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/pulse-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/pulse-atlas/pkg/services/config"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	env     *commands.Env
	logOut  io.Writer
	rootCmd *cobra.Command

	configPath string
	logLevel   string
}

// Options contain configuration for the CLI
type Options struct {
	Runner commands.Runner
	// Open overrides how dataset sources are resolved, mostly for tests.
	Open commands.OpenFunc
	Output io.Writer
	// LogOutput receives structured logs. Defaults to stderr.
	LogOutput io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stderr
	}

	cli := &CLI{
		env: &commands.Env{
			Runner:   opts.Runner,
			Reporter: export.NewReporter(opts.Output),
			Open:     opts.Open,
		},
		logOut: opts.LogOutput,
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "atlas",
		Short:             "Remote work and mental health survey explorer",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: cli.setup,
	}

	cmd.PersistentFlags().StringVarP(&cli.configPath, "config", "c", "", "Path to a YAML config file")
	cmd.PersistentFlags().StringVar(&cli.env.DatasetOverride, "dataset", "",
		"Dataset source: CSV path, s3://bucket/key or duckdb://path.db")
	cmd.PersistentFlags().StringVar(&cli.logLevel, "log-level", "", "Override log.level")

	cmd.AddCommand(commands.NewActsCmd(cli.env))
	cmd.AddCommand(commands.NewActCmd(cli.env))
	cmd.AddCommand(commands.NewPersonaCmd(cli.env))
	cmd.AddCommand(commands.NewImportCmd(cli.env))

	return cmd
}

// setup loads the configuration and attaches the root logger to the command context.
func (cli *CLI) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(cli.configPath)
	if err != nil {
		return err
	}
	if cli.logLevel != "" {
		cfg.Log.Level = cli.logLevel
	}
	cli.env.Config = cfg

	logger := cfg.Log.NewLogger(cli.logOut)
	cmd.SetContext(logger.WithContext(cmd.Context()))
	return nil
}

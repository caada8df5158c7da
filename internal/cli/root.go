package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/stroiman/dataaccess/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Config  string // explicit config file
	NoColor bool

	// ConfigLoader reads configuration. Tests swap in an in-memory one.
	ConfigLoader *config.Loader

	// Populated by the root command before any subcommand runs.
	Settings *config.Config
	Logger   *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the dataquery CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{ConfigLoader: &config.Loader{}})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataquery",
		Short: "dataquery - parameterized SQL from query definitions",
		Long: `Compile declarative query definitions (CUE or YAML) into parameterized
SQL and run them against a SQLite database.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if err := opts.setup(cmd.ErrOrStderr()); err != nil {
				return opts.formatter(cmd).Fail(err)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "config file (default .dataquery.yaml)")
	cmd.PersistentFlags().BoolVar(&opts.NoColor, "no-color", false, "disable colored output")

	cmd.AddCommand(NewCompileCommand(opts))
	cmd.AddCommand(NewExecCommand(opts))

	return cmd
}

// setup loads configuration and installs the logger.
func (o *RootOptions) setup(stderr io.Writer) error {
	loader := o.ConfigLoader
	if loader == nil {
		loader = &config.Loader{}
	}
	cfg, err := loader.Load(o.Config)
	if err != nil {
		return &configError{err: err}
	}
	o.Settings = cfg

	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return &configError{err: err}
	}
	if o.Verbose {
		level = slog.LevelDebug
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(stderr, handlerOpts)
	} else {
		handler = slog.NewTextHandler(stderr, handlerOpts)
	}
	o.Logger = slog.New(handler)
	slog.SetDefault(o.Logger)

	slog.Debug("config loaded", "database", cfg.Database.Path, "log_level", level.String())
	return nil
}

// formatter builds the output formatter for cmd.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
		Color:     !o.NoColor && !color.NoColor,
	}
}

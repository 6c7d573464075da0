// Package cmd implements the CLI command structure for taskcli.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/nibzard/taskcli/internal/config"
	"github.com/nibzard/taskcli/internal/logging"
	"github.com/nibzard/taskcli/internal/store"
	"github.com/nibzard/taskcli/internal/tasks"
)

// Version is set via ldflags at build time.
var Version = "dev"

// app carries per-invocation state shared by the subcommands. It is filled
// in by the root command's PersistentPreRunE once flags are parsed.
type app struct {
	stdout io.Writer
	stderr io.Writer

	cfg    *config.ConfigWithSources
	logger *log.Logger
	store  *store.Store
}

// Run executes the taskcli CLI.
func Run(ctx context.Context, args []string) error {
	return RunWithIO(ctx, args, os.Stdout, os.Stderr)
}

// RunWithIO executes the CLI writing results to stdout and diagnostics to
// stderr.
func RunWithIO(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	a := &app{stdout: stdout, stderr: stderr}
	root := newRootCommand(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "taskcli",
		Short: "taskcli - a personal task tracker",
		Long: `taskcli keeps a personal task list in a JSON file on local disk.

Tasks have a title, optional description, due date (YYYY-MM-DD) and tags,
a priority (alto, médio, baixo) and a status (aberto, feito).`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.SetVersionTemplate("taskcli version {{.Version}}\n")

	config.BindFlags(root.PersistentFlags())

	root.AddCommand(
		newInitCommand(a),
		newAddCommand(a),
		newListCommand(a),
		newDoneCommand(a),
		newRemoveCommand(a),
		newUpdateCommand(a),
		newDoctorCommand(a),
		newTUICommand(a),
		newConfigCommand(a),
		newVersionCommand(a),
	)
	return root
}

// setup loads configuration and builds the logger and store.
func (a *app) setup(cmd *cobra.Command) error {
	if cmd.Annotations[skipSetup] == "true" {
		return nil
	}

	cws, err := config.LoadWithSources(cmd.Flags())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config

	a.cfg = cws
	a.logger = logging.NewFromConfig(a.stderr, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)
	a.store = store.New(cfg.DataFile, store.WithLogger(a.logger))

	if cws.File != "" {
		a.logger.Debug("loaded config file", "path", cws.File)
	}
	for _, key := range cws.Undecoded {
		a.logger.Warn("unknown config key ignored", "key", key, "file", cws.File)
	}
	a.logger.Debug("using task file", "path", cfg.DataFile)
	return nil
}

// service returns a task service writing results to out.
func (a *app) service(out io.Writer) *tasks.Service {
	return tasks.NewService(a.store, tasks.WithOutput(out), tasks.WithLogger(a.logger))
}

// skipSetup marks commands that run without loading configuration.
const skipSetup = "taskcli/skip-setup"

func newVersionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Show version",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipSetup: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(a.stdout, "taskcli version %s\n", Version)
			return nil
		},
	}
}

// parseID parses a positional task id.
func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q: must be an integer", s)
	}
	return id, nil
}

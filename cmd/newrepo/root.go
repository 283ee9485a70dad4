package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/raphi011/newrepo/internal/config"
	"github.com/raphi011/newrepo/internal/forge"
	"github.com/raphi011/newrepo/internal/history"
	"github.com/raphi011/newrepo/internal/log"
	"github.com/raphi011/newrepo/internal/output"
	"github.com/raphi011/newrepo/internal/ui/styles"
)

// Command group IDs for organizing help output
const (
	GroupUtility = "utility"
	GroupConfig  = "config"
)

// app carries the process environment commands run against.
type app struct {
	stdout  io.Writer
	stderr  io.Writer
	environ []string

	// workDir is the directory newrepo was started in; empty means os.Getwd
	workDir string

	loadConfig  func() (config.Config, error)
	configPath  func() (string, error)
	historyPath func() (string, error)
	forge       func() (forge.Forge, error)
	isTerminal  func() bool
	now         func() time.Time

	verbose bool
	quiet   bool
}

func defaultApp() *app {
	return &app{
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		environ:     os.Environ(),
		loadConfig:  config.Load,
		configPath:  config.Path,
		historyPath: history.DefaultPath,
		forge:       func() (forge.Forge, error) { return forge.ByName("github") },
		isTerminal: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stderr.Fd())
		},
		now: time.Now,
	}
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	a := defaultApp()
	err := newRootCmd(a).ExecuteContext(ctx)
	cancel()
	if err != nil {
		styles.FprintError(a.stderr, a.environ, err.Error())
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	var f createFlags

	cmd := &cobra.Command{
		Use:   "newrepo [dir]",
		Short: "Create a GitHub repository from a template and push a local copy",
		Long: `newrepo creates a new GitHub repository from a template, copies the
template's content into a directory, fills in the project name and year,
and pushes the result as the initial commit.

The directory defaults to the current one. Its base name becomes the
repository name; the title is derived by replacing dashes with spaces and
capitalizing the first letter.`,
		Example: `  newrepo                       # Use the current directory
  newrepo ~/src/my-app          # Create ~/src/my-app from the template
  newrepo my-app --public       # Public repository
  newrepo my-app -t org/tpl     # Use another template
  newrepo my-app --dry-run      # Show what would happen`,
		Args:                       cobra.MaximumNArgs(1),
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCreate(cmd.Context(), f, args)
		},
	}

	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Show external commands being executed")
	cmd.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "Suppress all output except errors")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	f.register(cmd)

	cmd.Version = versionString()
	cmd.SetVersionTemplate("{{.Version}}\n")
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	cmd.AddGroup(
		&cobra.Group{ID: GroupUtility, Title: "Utility Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	cmd.AddCommand(newDoctorCmd(a))
	cmd.AddCommand(newVersionCmd(a))
	cmd.AddCommand(newHistoryCmd(a))
	cmd.AddCommand(newConfigCmd(a))

	return cmd
}

// lenientConfig lists commands that still run with an invalid config file.
var lenientConfig = map[string]bool{
	"config":     true,
	"init":       true,
	"path":       true,
	"doctor":     true,
	"version":    true,
	"history":    true,
	"help":       true,
	"completion": true,
	"__complete": true,
}

// setup attaches logger, printer, config and working directory to the
// command context.
func (a *app) setup(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger := log.New(a.stderr, a.verbose, a.quiet)
	ctx = log.WithLogger(ctx, logger)
	ctx = output.WithPrinter(ctx, output.NewStyled(a.stdout, a.environ))

	cfg, err := a.loadConfig()
	if err != nil {
		if !lenientConfig[cmd.Name()] {
			return fmt.Errorf("load config: %w", err)
		}
		logger.Warn("%v (using defaults)", err)
	}
	styles.Init(cfg.Theme)
	ctx = config.WithConfig(ctx, &cfg)

	workDir := a.workDir
	if workDir == "" {
		workDir, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
	}
	ctx = config.WithWorkDir(ctx, workDir)

	cmd.SetContext(ctx)
	return nil
}

var errAborted = errors.New("aborted")

// Package cli implements the resippy command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mesh-intelligence/resippy/internal/paths"
	"github.com/mesh-intelligence/resippy/internal/sqlite"
	"github.com/mesh-intelligence/resippy/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// app carries global flag values and the per-invocation state that
// PersistentPreRunE resolves for the subcommands.
type app struct {
	configDir string
	dataDir   string
	verbose   bool

	logger *zap.Logger
	now    func() time.Time

	resolvedConfigDir string
	config            types.Config
}

// Option configures the root command.
type Option func(*app)

// WithLogger uses l instead of building a logger from --verbose.
func WithLogger(l *zap.Logger) Option {
	return func(a *app) { a.logger = l }
}

// WithClock overrides the source of "today" for meal planning.
func WithClock(now func() time.Time) Option {
	return func(a *app) { a.now = now }
}

// NewRootCmd creates the top-level "resippy" command with global flags and
// all subcommands registered.
func NewRootCmd(opts ...Option) *cobra.Command {
	a := &app{now: time.Now}
	for _, opt := range opts {
		opt(a)
	}

	root := &cobra.Command{
		Use:   "resippy",
		Short: "Keep the household menu and plan the week's meals",
		Long: "resippy tracks the recipes your household cooks, how each person rates\n" +
			"them, and which recipe is planned for each day of the coming week.",
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configDir, "config-dir", "", "configuration directory (default: user config dir/resippy)")
	pf.StringVar(&a.dataDir, "data-dir", "", "data directory (default: $(CWD)/.resippy-db)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "log debug detail to stderr")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newAddCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
		newViewCmd(a),
		newPlanCmd(a),
		newIngredientsCmd(a),
		newInstructionsCmd(a),
		newExportCmd(a),
		newRestoreCmd(a),
	)
	return root
}

// Execute runs the root command and exits with the matching code.
func Execute() {
	root := NewRootCmd()
	err := root.Execute()
	if err != nil {
		printError(root.ErrOrStderr(), err)
	}
	os.Exit(exitCode(err))
}

// setup builds the logger and resolves configuration before any subcommand
// runs.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if a.logger == nil {
		logger, err := newLogger(a.verbose)
		if err != nil {
			return systemError(fmt.Errorf("initializing logger: %w", err))
		}
		a.logger = logger
	}
	if cmd.Name() == "version" || cmd.Name() == "help" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.configDir)
	if err != nil {
		return systemError(fmt.Errorf("resolving config dir: %w", err))
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return systemError(err)
	}
	dataDir, err := paths.ResolveDataDir(a.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return systemError(fmt.Errorf("resolving data dir: %w", err))
	}

	a.resolvedConfigDir = configDir
	a.config = types.Config{
		Backend: v.GetString(cfgKeyBackend),
		DataDir: dataDir,
		Raters:  v.GetStringSlice(cfgKeyRaters),
	}
	a.logger.Debug("configuration resolved",
		zap.String("config_dir", configDir),
		zap.String("data_dir", dataDir),
		zap.Strings("raters", a.config.EffectiveRaters()))
	return nil
}

// newLogger builds a production logger on stderr. Only warnings show unless
// verbose is set.
func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

// attach opens the store. The caller must defer Detach.
func (a *app) attach() (*sqlite.Backend, error) {
	b := sqlite.NewBackend(a.logger)
	if err := b.Attach(a.config); err != nil {
		return nil, fmt.Errorf("opening the menu: %w", err)
	}
	return b, nil
}

// exitError pins an error to an exit code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func systemError(err error) error {
	return &exitError{code: exitSysError, err: err}
}

// userMessage replaces an error's text with a sentence for the user while
// keeping the cause for errors.Is.
type userMessage struct {
	msg string
	err error
}

func (e *userMessage) Error() string { return e.msg }
func (e *userMessage) Unwrap() error { return e.err }

func explain(err error, format string, args ...any) error {
	return &userMessage{msg: fmt.Sprintf(format, args...), err: err}
}

// exitCode maps an error to the process exit status. Errors not marked as
// system failures are the user's to fix.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	if errors.Is(err, types.ErrStoreUnavailable) {
		return exitSysError
	}
	return exitUserError
}

var (
	errorLabel   = color.New(color.FgRed, color.Bold)
	successColor = color.New(color.FgGreen)
	noticeColor  = color.New(color.FgYellow)
)

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %s\n", errorLabel.Sprint("Error:"), err)
}

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, successColor.Sprintf(format, args...))
}

func printNotice(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, noticeColor.Sprintf(format, args...))
}

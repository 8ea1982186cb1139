// Package cli wires the fileutils library, configuration, logging, metrics,
// journal and safety guard into a cobra command tree.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"fileutils/internal/config"
	"fileutils/internal/exitcodes"
	"fileutils/internal/fsops"
	"fileutils/internal/journal"
	"fileutils/internal/logging"
	"fileutils/internal/metrics"
	"fileutils/internal/safety"
	"fileutils/pkg/fileutils"
)

// ConfigEnv names the configuration file when --config is not given.
const ConfigEnv = "FILEUTILS_CONFIG"

// Version is set by ldflags during build.
var Version = "dev"

var (
	errConfig      = errors.New("invalid configuration")
	errUsage       = errors.New("invalid usage")
	errNotUpToDate = errors.New("not up to date")
)

type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	verbose    bool
	noop       bool
	dryRun     bool
	trace      bool

	cfg      *config.Config
	logger   *log.Logger
	journal  *journal.DB
	recorder *fsops.RecordingFs
	utils    *fileutils.Utils
}

// Execute runs the command line args and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}
	cmd := a.rootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err != nil && !errors.Is(err, errNotUpToDate) {
		// Config and usage errors happen before the logger exists
		if a.logger != nil {
			a.logger.Printf("ERROR: %v", err)
		} else {
			fmt.Fprintf(stderr, "fileutils: %v\n", err)
		}
	}
	a.shutdown()
	return exitCode(err)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitcodes.Success
	case errors.Is(err, errNotUpToDate):
		return exitcodes.NotUpToDate
	case errors.Is(err, errConfig), errors.Is(err, errUsage):
		return exitcodes.InvalidConfig
	case errors.Is(err, fileutils.ErrProtected):
		return exitcodes.SafetyViolation
	default:
		return exitcodes.RuntimeError
	}
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fileutils",
		Short: "Shell-like file operations",
		Long: `fileutils runs mkdir -p, rm -rf, cp and friends through a safety guard,
recording every operation in an optional journal and metrics textfile.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Version:           Version,
		PersistentPreRunE: a.setup,
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", errUsage, err)
	})

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to configuration file (default $"+ConfigEnv+" or "+config.DefaultPath+")")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Print each operation as a shell command")
	flags.BoolVarP(&a.noop, "noop", "n", false, "Do not touch the filesystem")
	flags.BoolVar(&a.dryRun, "dry-run", false, "Same as --noop --verbose")
	flags.BoolVar(&a.trace, "trace", false, "Log every filesystem mutation")

	cmd.AddCommand(
		a.pwdCmd(),
		a.mkdirCmd(),
		a.rmdirCmd(),
		a.rmCmd(),
		a.cpCmd(),
		a.uptodateCmd(),
		a.historyCmd(),
	)
	return cmd
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	// A missing .env is normal
	_ = godotenv.Load()

	path, required := a.configPath, cmd.Flags().Changed("config")
	if !required {
		if env := os.Getenv(ConfigEnv); env != "" {
			path, required = env, true
		} else {
			path = config.DefaultPath
		}
	}

	cfg, err := config.LoadOrDefault(path, required)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", errConfig, path, err)
	}
	a.cfg = cfg
	a.logger = logging.NewWithConfig(cfg, a.stderr)

	metrics.Init()
	observers := []fileutils.Observer{metrics.Observer{}}

	if cfg.Journal.DatabasePath != "" {
		db, err := journal.Open(cfg.Journal.DatabasePath)
		if err != nil {
			return err
		}
		a.journal = db
		observers = append(observers, db)
	}

	var guard fileutils.Guard
	if cfg.SafetyEnabled() {
		guard = safety.NewValidator(cfg.Safety.AllowedRoots, cfg.Safety.ProtectedPaths)
	}

	var fs afero.Fs = afero.NewOsFs()
	if a.trace {
		a.recorder = fsops.NewRecordingFs(fs)
		fs = a.recorder
	}

	defaults := cfg.Options()
	if a.verbose || a.dryRun {
		defaults = append(defaults, fileutils.WithVerbose())
	}
	if a.noop || a.dryRun {
		defaults = append(defaults, fileutils.WithNoop())
	}

	a.utils = fileutils.New(fileutils.Config{
		FS:        fs,
		Stderr:    a.stderr,
		Guard:     guard,
		Observers: observers,
		Defaults:  defaults,
	})
	return nil
}

func (a *app) shutdown() {
	if a.logger == nil {
		return
	}

	if a.recorder != nil {
		for _, call := range a.recorder.Calls {
			a.logger.Printf("trace: %s", call)
		}
	}

	if path := a.cfg.Metrics.TextfilePath; path != "" {
		if err := metrics.WriteTextfile(path); err != nil {
			a.logger.Printf("ERROR: Failed to write metrics textfile %s: %v", path, err)
		}
	}

	if a.journal != nil {
		if err := a.journal.Close(); err != nil {
			a.logger.Printf("ERROR: Failed to close journal: %v", err)
		}
	}
}

// usageArgs marks positional argument failures as usage errors
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", errUsage, err)
		}
		return nil
	}
}

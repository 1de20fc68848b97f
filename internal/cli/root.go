// Package cli implements the phonebook command-line interface.
//
// Every invocation opens a fresh directory, loads the configured seed file,
// runs one command and closes the directory. The shell command keeps one
// directory open and runs many commands against it.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/phonebook/internal/logger"
	"github.com/mesh-intelligence/phonebook/internal/paths"
	"github.com/mesh-intelligence/phonebook/pkg/phonebook"
	"github.com/mesh-intelligence/phonebook/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	seedFile  string
	backend   string
	logLevel  string
	jsonMode  bool
}

// session is the state one command tree runs against. In shell mode the
// directory is shared by every line and owned by the shell.
type session struct {
	flags  rootFlags
	dir    types.Directory
	owned  bool // dir was opened by this tree and must be closed by it
	shared bool // dir belongs to an enclosing shell
	logger *slog.Logger
}

// cliError carries the process exit code for an error returned by a command.
type cliError struct {
	code   int
	err    error
	silent bool // the command already reported the failure on stderr
}

func (e *cliError) Error() string { return e.err.Error() }
func (e *cliError) Unwrap() error { return e.err }

func userError(format string, args ...any) error {
	return &cliError{code: exitUserError, err: fmt.Errorf(format, args...)}
}

func sysError(format string, args ...any) error {
	return &cliError{code: exitSysError, err: fmt.Errorf(format, args...)}
}

// exitCode maps an error returned by Execute to a process exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ce *cliError
	if errors.As(err, &ce) {
		return ce.code
	}
	// Cobra argument and flag errors.
	return exitUserError
}

// NewRootCmd creates the top-level "phonebook" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&session{})
}

func newRootCmd(s *session) *cobra.Command {
	root := &cobra.Command{
		Use:     "phonebook",
		Short:   "An in-memory contact directory",
		Long:    "Phonebook stores profiles (name, age, address, phone numbers, contact info)\nand looks them up by name, street, or a free-text term.",
		Version: phonebook.Version,
		// Errors are printed by Execute or by the shell loop.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipsDirectory(cmd) {
				return nil
			}
			if s.shared {
				return checkSessionFlags(cmd)
			}
			return s.open(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return s.close()
		},
	}

	root.PersistentFlags().StringVar(&s.flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/phonebook)")
	root.PersistentFlags().StringVar(&s.flags.seedFile, "seed", "", "YAML file of profiles to load at startup")
	root.PersistentFlags().StringVar(&s.flags.backend, "backend", "", "directory backend: memory or sqlite (default from config)")
	root.PersistentFlags().StringVar(&s.flags.logLevel, "log-level", "", "log level: debug, info, warn, error (default from config)")
	root.PersistentFlags().BoolVar(&s.flags.jsonMode, "json", s.flags.jsonMode, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(s))
	root.AddCommand(newListCmd(s))
	root.AddCommand(newGetCmd(s))
	root.AddCommand(newSearchCmd(s))
	root.AddCommand(newFindCmd(s))
	root.AddCommand(newAddCmd(s))
	root.AddCommand(newUpdateCmd(s))
	root.AddCommand(newDeleteCmd(s))
	root.AddCommand(newShellCmd(s))

	return root
}

// Execute runs the root command with os.Args and exits with the
// appropriate code.
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes one command tree with args, prints any error to stderr and
// returns the exit code. The directory is closed even when the command fails
// and cobra skips the post-run hook.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	s := &session{}
	root := newRootCmd(s)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if closeErr := s.close(); err == nil {
		err = closeErr
	}
	reportError(stderr, err)
	return exitCode(err)
}

// reportError prints err to w unless the command already reported it.
func reportError(w io.Writer, err error) {
	if err == nil {
		return
	}
	var ce *cliError
	if errors.As(err, &ce) && ce.silent {
		return
	}
	fmt.Fprintln(w, "phonebook:", err)
}

// skipsDirectory reports whether cmd, or the command it sits under, runs
// without opening a directory. Completion scripts live under "completion".
func skipsDirectory(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "version", "init", "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return true
		}
	}
	return false
}

// open loads configuration and opens the directory unless one is already
// attached to the session.
func (s *session) open(cmd *cobra.Command) error {
	if s.dir != nil {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(s.flags.configDir)
	if err != nil {
		return sysError("resolve config dir: %w", err)
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return sysError("%w", err)
	}

	level := v.GetString(cfgKeyLogLevel)
	if s.flags.logLevel != "" {
		level = s.flags.logLevel
	}
	s.logger = logger.New(cmd.ErrOrStderr(), level, v.GetString(cfgKeyLogFormat))

	seedFile, err := paths.ResolveSeedFile(s.flags.seedFile, v.GetString(cfgKeySeedFile))
	if err != nil {
		return sysError("resolve seed file: %w", err)
	}

	cfg := types.Config{
		Backend:  v.GetString(cfgKeyBackend),
		SeedFile: seedFile,
	}
	if s.flags.backend != "" {
		cfg.Backend = s.flags.backend
	}
	if err := cfg.Validate(); err != nil {
		return userError("backend %q: %w (valid: %s, %s)", cfg.Backend, err, types.BackendMemory, types.BackendSQLite)
	}

	dir, err := phonebook.Open(cfg, s.logger)
	if err != nil {
		return sysError("open directory: %w", err)
	}
	s.logger.Debug("directory opened", "backend", cfg.Backend, "seed_file", cfg.SeedFile)

	s.dir = dir
	s.owned = true
	return nil
}

// close releases the directory if this session opened it.
func (s *session) close() error {
	if s.dir == nil || !s.owned {
		return nil
	}
	err := s.dir.Close()
	s.dir = nil
	if err != nil {
		return sysError("close directory: %w", err)
	}
	return nil
}

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/shlex"
	"github.com/spf13/cobra"
)

// sessionFlags are the global flags that choose or configure the directory.
// They are fixed once the shell has opened it.
var sessionFlags = []string{"config-dir", "seed", "backend", "log-level"}

func newShellCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run commands from stdin against one directory",
		Long: `Shell reads one command per line from standard input and runs it
against a single directory, so profiles added or deleted stay that way until
the shell exits. Blank lines and lines starting with # are skipped; "exit"
or "quit" ends the session. Words are split like a POSIX shell: quotes and
backslash escapes are honored. --json given to shell applies to every line.

Example:
  printf 'add --first Ann --last Lee\nsearch last-name lee\n' | phonebook shell`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, s)
		},
	}
}

func runShell(cmd *cobra.Command, s *session) error {
	reader := bufio.NewReader(cmd.InOrStdin())
	lineNo := 0
	for {
		raw, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return sysError("read commands: %w", readErr)
		}
		if raw == "" && readErr != nil {
			return nil
		}
		lineNo++

		if !runShellLine(cmd, s, lineNo, strings.TrimSpace(raw)) {
			return nil
		}
		if readErr != nil {
			return nil
		}
	}
}

// runShellLine executes one line and reports whether the session goes on.
func runShellLine(cmd *cobra.Command, s *session, lineNo int, line string) bool {
	if line == "" || strings.HasPrefix(line, "#") {
		return true
	}
	if line == "exit" || line == "quit" {
		return false
	}

	args, err := shlex.Split(line)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "phonebook: line %d: %s\n", lineNo, err)
		return true
	}
	if len(args) == 0 {
		return true
	}
	if args[0] == "shell" {
		fmt.Fprintf(cmd.ErrOrStderr(), "phonebook: line %d: shell cannot be nested\n", lineNo)
		return true
	}

	// Each line gets a fresh command tree so flag values never leak
	// between lines. The directory stays owned by the shell session.
	child := newRootCmd(&session{
		flags:  rootFlags{jsonMode: s.flags.jsonMode},
		dir:    s.dir,
		shared: true,
		logger: s.logger,
	})
	child.SetArgs(args)
	child.SetIn(cmd.InOrStdin())
	child.SetOut(cmd.OutOrStdout())
	child.SetErr(cmd.ErrOrStderr())
	if err := child.Execute(); err != nil {
		reportError(cmd.ErrOrStderr(), err)
		if s.logger != nil {
			s.logger.Debug("shell command failed", "line", lineNo, "code", exitCode(err))
		}
	}
	return true
}

// checkSessionFlags rejects directory flags on a shell line.
func checkSessionFlags(cmd *cobra.Command) error {
	for _, name := range sessionFlags {
		if cmd.Flags().Changed(name) {
			return userError("--%s cannot be changed inside shell; pass it to shell instead", name)
		}
	}
	return nil
}

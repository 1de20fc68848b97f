package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/phonebook/pkg/types"
)

func newDeleteCmd(s *session) *cobra.Command {
	var admin bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a profile (requires --admin)",
		Long: `Delete removes the profile with the given ID. Without --admin nothing
is removed and a permission message is printed.

Example:
  phonebook delete 0192f3c4-... --admin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := s.dir.Delete(args[0], admin)
			if errors.Is(err, types.ErrPermissionDenied) {
				fmt.Fprintln(cmd.ErrOrStderr(), types.PermissionDeniedMessage)
				return &cliError{code: exitUserError, err: err, silent: true}
			}
			if err != nil {
				return directoryError("delete profile "+args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVar(&admin, "admin", false, "act as an administrator")
	return cmd
}

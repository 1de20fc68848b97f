package cli

import (
	"github.com/spf13/cobra"
)

func newListCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all profiles",
		Long: `List prints every profile in the order it was added.

Example:
  phonebook list
  phonebook list --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, err := s.dir.List()
			if err != nil {
				return directoryError("list profiles", err)
			}
			return writeProfiles(cmd.OutOrStdout(), profiles, s.flags.jsonMode)
		},
	}
}

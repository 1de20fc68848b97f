package cli

import (
	"github.com/spf13/cobra"
)

func newGetCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a profile by ID",
		Long: `Get prints every field of the profile with the given ID.

Example:
  phonebook get 0192f3c4-...
  phonebook get 0192f3c4-... --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := s.dir.Get(args[0])
			if err != nil {
				return directoryError("get profile "+args[0], err)
			}
			return writeProfile(cmd.OutOrStdout(), p, s.flags.jsonMode)
		},
	}
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/phonebook/pkg/types"
)

func newSearchCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search profiles by a single field",
		Long: `Search matches one field exactly, ignoring case.

Example:
  phonebook search last-name lee
  phonebook search first-name Ann
  phonebook search street "Main Street"`,
	}

	fields := []struct {
		use, short string
		search     func(types.Directory, string) ([]*types.Profile, error)
	}{
		{"last-name <value>", "Profiles whose last name matches", types.Directory.SearchByLastName},
		{"first-name <value>", "Profiles whose first name matches", types.Directory.SearchByFirstName},
		{"street <value>", "Profiles whose street name matches", types.Directory.SearchByAddress},
	}
	for _, f := range fields {
		cmd.AddCommand(&cobra.Command{
			Use:   f.use,
			Short: f.short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				profiles, err := f.search(s.dir, args[0])
				if err != nil {
					return directoryError("search profiles", err)
				}
				return writeProfiles(cmd.OutOrStdout(), profiles, s.flags.jsonMode)
			},
		})
	}
	return cmd
}

func newFindCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "find <term>",
		Short: "Free-text search across names, address and phone numbers",
		Long: `Find matches term against first name, last name, street, city and
postcode ignoring case, and against phone numbers exactly.

Example:
  phonebook find springfield
  phonebook find 555-1234`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, err := s.dir.FreeSearch(args[0])
			if err != nil {
				return directoryError("find profiles", err)
			}
			return writeProfiles(cmd.OutOrStdout(), profiles, s.flags.jsonMode)
		},
	}
}

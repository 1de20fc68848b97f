package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/phonebook/pkg/types"
)

func newUpdateCmd(s *session) *cobra.Command {
	var email, contactNumber string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a profile's contact info",
		Long: `Update replaces the email and contact phone of the profile with the
given ID. Both values are replaced; an omitted flag clears its field.

Example:
  phonebook update 0192f3c4-... --email ann@work.example --contact-phone 555-0100`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := s.dir.Get(args[0])
			if err != nil {
				return directoryError("update profile "+args[0], err)
			}
			if err := s.dir.Update(p, types.NewContactInfo(email, contactNumber)); err != nil {
				return directoryError("update profile "+args[0], err)
			}
			if s.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), p)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", p.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "contact email")
	cmd.Flags().StringVar(&contactNumber, "contact-phone", "", "contact phone number")
	return cmd
}

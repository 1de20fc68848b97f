package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/phonebook/pkg/types"
)

type addFlags struct {
	first, last          string
	age                  int
	city, postcode       string
	street               string
	gate                 int
	phones               []string
	email, contactNumber string
}

func newAddCmd(s *session) *cobra.Command {
	var f addFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a profile",
		Long: `Add creates a profile and prints its ID. Fields are stored as given;
nothing is validated.

Example:
  phonebook add --first Ann --last Lee --age 34 \
    --city Springfield --postcode SP-1001 --street "Main Street" --gate 12 \
    --phone 555-1234 --phone 555-9876 \
    --email ann@example.com --contact-phone 555-1234`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := types.NewProfile(
				f.first, f.last, f.age,
				types.NewAddress(f.city, f.postcode, f.street, f.gate),
				f.phones,
				types.NewContactInfo(f.email, f.contactNumber),
			)
			id, err := s.dir.Create(p)
			if err != nil {
				return directoryError("add profile", err)
			}
			if s.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), p)
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}

	cmd.Flags().StringVar(&f.first, "first", "", "first name")
	cmd.Flags().StringVar(&f.last, "last", "", "last name")
	cmd.Flags().IntVar(&f.age, "age", 0, "age")
	cmd.Flags().StringVar(&f.city, "city", "", "city")
	cmd.Flags().StringVar(&f.postcode, "postcode", "", "postcode")
	cmd.Flags().StringVar(&f.street, "street", "", "street name")
	cmd.Flags().IntVar(&f.gate, "gate", 0, "gate number")
	cmd.Flags().StringArrayVar(&f.phones, "phone", nil, "phone number (repeatable)")
	cmd.Flags().StringVar(&f.email, "email", "", "contact email")
	cmd.Flags().StringVar(&f.contactNumber, "contact-phone", "", "contact phone number")
	return cmd
}

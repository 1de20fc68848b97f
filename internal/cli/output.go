package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mesh-intelligence/phonebook/pkg/types"
)

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysError("marshal output: %w", err)
	}
	fmt.Fprintln(w, string(output))
	return nil
}

// writeProfiles prints profiles as JSON or as a table.
func writeProfiles(w io.Writer, profiles []*types.Profile, jsonMode bool) error {
	if jsonMode {
		return writeJSON(w, profiles)
	}
	printProfileTable(w, profiles)
	return nil
}

// writeProfile prints one profile as JSON or as labelled lines.
func writeProfile(w io.Writer, p *types.Profile, jsonMode bool) error {
	if jsonMode {
		return writeJSON(w, p)
	}
	printProfileDetails(w, p)
	return nil
}

// printProfileTable prints profiles in a human-readable table format.
func printProfileTable(w io.Writer, profiles []*types.Profile) {
	if len(profiles) == 0 {
		fmt.Fprintln(w, "No profiles found.")
		return
	}

	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "ID\tNAME\tAGE\tSTREET\tCITY\tPHONES")
	fmt.Fprintln(tw, "--\t----\t---\t------\t----\t------")
	for _, p := range profiles {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n",
			p.ID,
			fullName(p),
			p.Age,
			p.Address.StreetName,
			p.Address.City,
			strings.Join(p.PhoneNumbers, ", "),
		)
	}
	tw.Flush()

	// Trim trailing whitespace left by the last column.
	for _, line := range strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n") {
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}

	fmt.Fprintf(w, "Total: %d profile(s)\n", len(profiles))
}

// printProfileDetails prints every profile field.
func printProfileDetails(w io.Writer, p *types.Profile) {
	fmt.Fprintf(w, "ID:        %s\n", p.ID)
	fmt.Fprintf(w, "Name:      %s\n", fullName(p))
	fmt.Fprintf(w, "Age:       %d\n", p.Age)
	fmt.Fprintf(w, "Address:   %s %d, %s %s\n", p.Address.StreetName, p.Address.GateNumber, p.Address.Postcode, p.Address.City)
	if len(p.PhoneNumbers) > 0 {
		fmt.Fprintf(w, "Phones:\n")
		for _, number := range p.PhoneNumbers {
			fmt.Fprintf(w, "  %s\n", number)
		}
	}
	fmt.Fprintf(w, "Email:     %s\n", p.ContactInfo.Email)
	fmt.Fprintf(w, "Contact:   %s\n", p.ContactInfo.PhoneNumber)
}

func fullName(p *types.Profile) string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

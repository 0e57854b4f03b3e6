package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/greenlist/annexvii/internal/model"
)

// RefdataCmd returns the refdata command group.
func RefdataCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refdata LIST",
		Short: "Print a reference-data list",
		Long: `Print one of the reference lists the validator checks against.

LIST is one of: waste-codes, ewc-codes, countries, recovery-codes,
disposal-codes.`,
		Args: cobra.ExactArgs(1),
		RunE: runRefdata,
	}
	cmd.Flags().Bool("include-uk", false, "Include United Kingdom entries in the countries list")
	return cmd
}

func runRefdata(cmd *cobra.Command, args []string) error {
	env, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer env.close()

	switch strings.ToLower(args[0]) {
	case "waste-codes":
		for _, t := range model.WasteCodeTypes {
			if t == model.WasteCodeNotApplicable {
				continue
			}
			fmt.Printf("%s:\n", t)
			for _, entry := range env.ref.WasteCodes(t) {
				fmt.Printf("  %-18s %s\n", entry.Code, entry.Description.En)
			}
		}
	case "ewc-codes":
		for _, entry := range env.ref.EwcCodes() {
			fmt.Printf("%-10s %s\n", entry.Code, entry.Description.En)
		}
	case "countries":
		includeUK, _ := cmd.Flags().GetBool("include-uk")
		for _, c := range env.ref.Countries(includeUK) {
			fmt.Println(c.Name)
		}
	case "recovery-codes":
		for _, entry := range env.ref.RecoveryCodes() {
			marker := " "
			if entry.Interim {
				marker = "*"
			}
			fmt.Printf("%-4s %s %s\n", entry.Code, marker, entry.Description.En)
		}
		fmt.Println("\n* may be used for interim sites")
	case "disposal-codes":
		for _, entry := range env.ref.DisposalCodes() {
			fmt.Printf("%-4s %s\n", entry.Code, entry.Description.En)
		}
	default:
		return fmt.Errorf("unknown list %q", args[0])
	}
	return nil
}

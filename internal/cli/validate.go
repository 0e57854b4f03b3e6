package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/greenlist/annexvii/internal/bulk"
	"github.com/greenlist/annexvii/internal/logging"
)

// ValidateCmd returns the validate command.
func ValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Validate a bulk CSV file of Annex VII declarations",
		Long: `Validate every row of a CSV file against the Annex VII rules.

Each row is checked completely: all field-format problems and
cross-section conflicts are reported per row, not just the first one
found. With --create, a fully valid file is turned into submissions in
the configured store in a single write.`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
	cmd.Flags().Bool("create", false, "Create submissions from a fully valid file")
	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx := logging.WithOperationID(cmd.Context())
	env, err := setup(ctx)
	if err != nil {
		return err
	}
	defer env.close()

	file, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer file.Close()

	validator := bulk.NewValidator(env.ref, env.locale())
	svc := bulk.NewService(validator, env.store, env.account(), logging.FromContext(ctx))

	results, err := svc.ValidateCSV(ctx, file)
	if err != nil {
		return err
	}
	if len(results) > env.cfg.Bulk.MaxRows {
		return fmt.Errorf("file has %d rows, the limit is %d", len(results), env.cfg.Bulk.MaxRows)
	}

	good := color.New(color.FgGreen)
	bad := color.New(color.FgRed)
	dim := color.New(color.Faint)

	invalid := 0
	for _, res := range results {
		if res.Valid() {
			good.Printf("row %d: ok", res.Index)
			fmt.Printf("  %s\n", res.Submission.Reference)
			continue
		}
		invalid++
		bad.Printf("row %d: %d problem(s)\n", res.Index, len(res.FieldErrors)+len(res.CombinationErrors))
		for _, e := range res.FieldErrors {
			if e.Index > 0 {
				dim.Printf("    %s[%d]: ", e.Field, e.Index)
			} else {
				dim.Printf("    %s: ", e.Field)
			}
			fmt.Println(e.Message)
		}
		for _, e := range res.CombinationErrors {
			dim.Printf("    %v: ", e.Fields)
			fmt.Println(e.Message)
		}
	}

	fmt.Printf("\n%d row(s), %d valid, %d invalid\n", len(results), len(results)-invalid, invalid)

	create, _ := cmd.Flags().GetBool("create")
	if !create {
		return nil
	}
	if invalid > 0 {
		return fmt.Errorf("cannot create submissions: %d row(s) invalid", invalid)
	}
	subs, err := svc.CreateSubmissions(ctx, results)
	if err != nil {
		return err
	}
	for _, sub := range subs {
		fmt.Printf("created %s  %s\n", sub.SubmissionDeclaration.TransactionID, sub.Reference)
	}
	slog.InfoContext(ctx, "bulk file processed", "file", args[0], "created", len(subs))
	return nil
}

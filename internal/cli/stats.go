package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/greenlist/annexvii/internal/logging"
	"github.com/greenlist/annexvii/internal/service"
)

// StatsCmd returns the stats command.
func StatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show record counts for the configured store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env, err := setup(ctx)
			if err != nil {
				return err
			}
			defer env.close()

			subs := service.NewSubmissionService(env.store, env.account(), logging.FromContext(ctx))
			counts, err := subs.GetNumberOfSubmissions(ctx)
			if err != nil {
				return err
			}
			templates := service.NewTemplateService(env.store, env.account(), logging.FromContext(ctx))
			templateCount, err := templates.GetNumberOfTemplates(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("in progress:               %d\n", counts.Incomplete)
			fmt.Printf("submitted with estimates:  %d\n", counts.CompletedWithEstimates)
			fmt.Printf("submitted with actuals:    %d\n", counts.CompletedWithActuals)
			fmt.Printf("templates:                 %d\n", templateCount)
			return nil
		},
	}
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pvermeer/horae/internal/app"
	"github.com/pvermeer/horae/internal/cli/formatter"
	"github.com/pvermeer/horae/internal/domain"
)

func newOptimizeCmd(a *App) *cobra.Command {
	var (
		userID string
		from   string
		to     string
		commit bool
	)

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Schedule the unscheduled meeting backlog",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			fromAt, err := domain.ParseRequiredDate(from, "--from")
			if err != nil {
				return err
			}
			toAt, err := domain.ParseRequiredDate(to, "--to")
			if err != nil {
				return err
			}

			backlog, err := a.Meetings.ListUnscheduled(ctx, userID)
			if err != nil {
				return err
			}
			if len(backlog) == 0 {
				fmt.Println(formatter.Dim("Nothing to optimize: the backlog is empty."))
				return nil
			}

			meetings := make([]domain.Meeting, 0, len(backlog))
			for _, m := range backlog {
				meetings = append(meetings, *m)
			}

			result, err := a.Optimize.Optimize(ctx, app.OptimizeRequest{
				UserID:       userID,
				Meetings:     meetings,
				HorizonStart: fromAt,
				HorizonEnd:   toAt,
			})
			if err != nil {
				return err
			}

			fmt.Print(formatter.FormatOptimization(result))

			for _, w := range result.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "  WARNING: %s\n", w)
			}

			if commit && len(result.Scheduled) > 0 {
				if err := a.Meetings.CommitSchedule(ctx, result); err != nil {
					return fmt.Errorf("committing schedule: %w", err)
				}
				fmt.Printf("\nCommitted %d assignments.\n", len(result.Scheduled))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "Owner user id")
	cmd.Flags().StringVar(&from, "from", "", "Horizon start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Horizon end (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&commit, "commit", false, "Persist the resulting assignments")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

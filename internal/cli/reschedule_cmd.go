package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pvermeer/horae/internal/app"
	"github.com/pvermeer/horae/internal/cli/formatter"
	"github.com/pvermeer/horae/internal/domain"
)

func newRescheduleCmd(a *App) *cobra.Command {
	var (
		userID string
		from   string
		to     string
	)

	cmd := &cobra.Command{
		Use:   "reschedule <meeting-id>",
		Short: "Check whether a scheduled meeting has a better slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fromAt, err := domain.ParseRequiredDate(from, "--from")
			if err != nil {
				return err
			}
			toAt, err := domain.ParseRequiredDate(to, "--to")
			if err != nil {
				return err
			}

			proposal, err := a.Reschedule.Reschedule(context.Background(), app.RescheduleRequest{
				UserID:     userID,
				MeetingID:  args[0],
				RangeStart: fromAt,
				RangeEnd:   toAt,
			})
			if err != nil {
				return err
			}

			fmt.Print(formatter.FormatRescheduleProposal(proposal))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "Owner user id")
	cmd.Flags().StringVar(&from, "from", "", "Range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Range end (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

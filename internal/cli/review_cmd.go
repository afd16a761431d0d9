package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pvermeer/horae/internal/cli/formatter"
	"github.com/pvermeer/horae/internal/domain"
)

func newReviewCmd(app *App) *cobra.Command {
	var (
		userID string
		from   string
		days   int
	)

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review no-meeting and focus-time compliance",
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			if from != "" {
				parsed, err := domain.ParseRequiredDate(from, "--from")
				if err != nil {
					return err
				}
				start = parsed
			}

			report, err := app.Review.ReviewWindow(context.Background(), userID, start, days)
			if err != nil {
				return err
			}

			fmt.Print(formatter.FormatComplianceReport(report))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "Owner user id")
	cmd.Flags().StringVar(&from, "from", "", "Window start (YYYY-MM-DD), defaults to today")
	cmd.Flags().IntVar(&days, "days", 7, "Window length in days")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

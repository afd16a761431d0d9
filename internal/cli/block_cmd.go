package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pvermeer/horae/internal/cli/formatter"
	"github.com/pvermeer/horae/internal/domain"
)

func newBlockCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "block",
		Short: "Manage calendar blocks and no-meeting days",
	}

	cmd.AddCommand(
		newBlockAddCmd(app),
		newBlockListCmd(app),
		newBlockRmCmd(app),
		newNoMeetingDayCmd(app),
	)

	return cmd
}

func newBlockAddCmd(app *App) *cobra.Command {
	var (
		userID    string
		start     string
		end       string
		blockType string
		reason    string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a one-off calendar block",
		RunE: func(cmd *cobra.Command, args []string) error {
			startAt, err := domain.ParseRequiredDateTime(start, "--start")
			if err != nil {
				return err
			}
			endAt, err := domain.ParseRequiredDateTime(end, "--end")
			if err != nil {
				return err
			}

			b := &domain.CalendarBlock{
				UserID: userID,
				Start:  startAt,
				End:    endAt,
				Type:   domain.BlockType(blockType),
				Reason: reason,
			}
			if err := app.Blocks.AddBlock(context.Background(), b); err != nil {
				return err
			}

			fmt.Printf("Created block %s  %s\n", formatter.TruncID(b.ID), formatter.SlotRange(b.Start, b.End))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "Owner user id")
	cmd.Flags().StringVar(&start, "start", "", "Block start (YYYY-MM-DD HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "Block end (YYYY-MM-DD HH:MM)")
	cmd.Flags().StringVar(&blockType, "type", string(domain.BlockExistingBooking), "Block type (existing_booking|focus_time|personal_time|no_meeting_day)")
	cmd.Flags().StringVar(&reason, "reason", "", "Human-readable reason")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newBlockListCmd(app *App) *cobra.Command {
	var (
		userID string
		from   string
		to     string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List calendar blocks in a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			fromAt, err := domain.ParseRequiredDate(from, "--from")
			if err != nil {
				return err
			}
			toAt, err := domain.ParseRequiredDate(to, "--to")
			if err != nil {
				return err
			}

			blocks, err := app.Blocks.ListWindow(context.Background(), userID, domain.Window{Start: fromAt, End: toAt})
			if err != nil {
				return err
			}
			if len(blocks) == 0 {
				fmt.Println(formatter.Dim("No blocks in window."))
				return nil
			}

			fmt.Print(formatter.FormatBlockList(blocks))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "Owner user id")
	cmd.Flags().StringVar(&from, "from", "", "Window start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Window end (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newBlockRmCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <block-id>",
		Short: "Delete a calendar block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Blocks.DeleteBlock(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted block %s\n", args[0])
			return nil
		},
	}
	return cmd
}

func newNoMeetingDayCmd(app *App) *cobra.Command {
	var (
		userID string
		off    bool
	)

	cmd := &cobra.Command{
		Use:   "no-meeting-day <weekday>",
		Short: "Toggle a recurring no-meeting weekday",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			weekday, err := parseWeekday(args[0])
			if err != nil {
				return err
			}

			if err := app.Blocks.SetNoMeetingDay(context.Background(), userID, weekday, !off); err != nil {
				return err
			}

			state := "enabled"
			if off {
				state = "disabled"
			}
			fmt.Printf("No-meeting day %s %s\n", weekday, state)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "Owner user id")
	cmd.Flags().BoolVar(&off, "off", false, "Disable instead of enable")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func parseWeekday(s string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(s, d.String()) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q (expected Monday..Sunday)", s)
}

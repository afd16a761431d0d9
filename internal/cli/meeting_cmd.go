package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pvermeer/horae/internal/cli/formatter"
	"github.com/pvermeer/horae/internal/domain"
)

func newMeetingCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meeting",
		Short: "Manage meetings",
	}

	cmd.AddCommand(
		newMeetingAddCmd(app),
		newMeetingListCmd(app),
		newMeetingRmCmd(app),
	)

	return cmd
}

func newMeetingAddCmd(app *App) *cobra.Command {
	var (
		userID       string
		duration     int
		meetingType  string
		priority     int
		flexibility  string
		participants []string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a meeting to the backlog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := &domain.Meeting{
				UserID:       userID,
				Title:        args[0],
				DurationMin:  duration,
				Type:         domain.MeetingType(meetingType),
				Participants: participants,
				Priority:     priority,
				Flexibility:  domain.Flexibility(flexibility),
			}

			if err := app.Meetings.Create(context.Background(), m); err != nil {
				return err
			}

			fmt.Printf("Created meeting %s  %s\n", formatter.TruncID(m.ID), m.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "Owner user id")
	cmd.Flags().IntVar(&duration, "duration", 30, "Duration in minutes")
	cmd.Flags().StringVar(&meetingType, "type", string(domain.MeetingCollaborative), "Meeting type (collaborative|deep_work|routine|creative|administrative)")
	cmd.Flags().IntVar(&priority, "priority", 5, "Priority 1-10")
	cmd.Flags().StringVar(&flexibility, "flexibility", string(domain.FlexibilityMedium), "Flexibility (low|medium|high)")
	cmd.Flags().StringSliceVar(&participants, "participants", nil, "Participant names")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func newMeetingListCmd(app *App) *cobra.Command {
	var (
		userID      string
		unscheduled bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List meetings",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var (
				meetings []*domain.Meeting
				err      error
			)
			if unscheduled {
				meetings, err = app.Meetings.ListUnscheduled(ctx, userID)
			} else {
				meetings, err = app.Meetings.ListByUser(ctx, userID)
			}
			if err != nil {
				return err
			}

			if len(meetings) == 0 {
				fmt.Println(formatter.Dim("No meetings."))
				return nil
			}

			fmt.Print(formatter.FormatMeetingList(meetings))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "Owner user id")
	cmd.Flags().BoolVar(&unscheduled, "unscheduled", false, "Show only unscheduled meetings")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func newMeetingRmCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <meeting-id>",
		Short: "Delete a meeting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Meetings.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted meeting %s\n", args[0])
			return nil
		},
	}
	return cmd
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pvermeer/horae/internal/app"
	"github.com/pvermeer/horae/internal/cli/formatter"
	"github.com/pvermeer/horae/internal/domain"
)

func newSuggestCmd(a *App) *cobra.Command {
	var (
		userID       string
		duration     int
		meetingType  string
		priority     int
		flexibility  string
		participants []string
		from         string
		to           string
		topK         int
	)

	cmd := &cobra.Command{
		Use:   "suggest <title>",
		Short: "Suggest the best slots for one meeting",
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

			meeting := domain.Meeting{
				ID:          "suggest-candidate",
				UserID:      userID,
				Title:       args[0],
				DurationMin: duration,
				Type:        domain.MeetingType(meetingType),
				Priority:    priority,
				Flexibility: domain.Flexibility(flexibility),
			}

			slots, err := a.Suggest.Suggest(context.Background(), app.SuggestRequest{
				UserID:       userID,
				Meeting:      meeting,
				Participants: participants,
				RangeStart:   fromAt,
				RangeEnd:     toAt,
				TopK:         topK,
			})
			if err != nil {
				return err
			}

			if len(slots) == 0 {
				fmt.Println(formatter.Dim("No viable slots in the requested range."))
				return nil
			}

			fmt.Print(formatter.FormatSuggestions(meeting.Title, slots))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "Owner user id")
	cmd.Flags().IntVar(&duration, "duration", 30, "Duration in minutes")
	cmd.Flags().StringVar(&meetingType, "type", string(domain.MeetingCollaborative), "Meeting type")
	cmd.Flags().IntVar(&priority, "priority", 5, "Priority 1-10")
	cmd.Flags().StringVar(&flexibility, "flexibility", string(domain.FlexibilityMedium), "Flexibility (low|medium|high)")
	cmd.Flags().StringSliceVar(&participants, "participants", nil, "Participant names")
	cmd.Flags().StringVar(&from, "from", "", "Range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Range end (YYYY-MM-DD)")
	cmd.Flags().IntVar(&topK, "top", 0, "Number of suggestions (0 = default)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

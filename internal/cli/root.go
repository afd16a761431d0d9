package cli

import (
	"github.com/spf13/cobra"

	"github.com/pvermeer/horae/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Meetings   service.MeetingService
	Blocks     service.BlockService
	Energy     service.EnergyService
	Optimize   service.OptimizeService
	Suggest    service.SuggestService
	Reschedule service.RescheduleService
	Review     service.ReviewService
}

// NewRootCmd creates the top-level "horae" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "horae",
		Short: "Energy-aware meeting scheduler",
	}

	root.AddCommand(
		newMeetingCmd(app),
		newBlockCmd(app),
		newEnergyCmd(app),
		newOptimizeCmd(app),
		newSuggestCmd(app),
		newRescheduleCmd(app),
		newReviewCmd(app),
	)

	return root
}

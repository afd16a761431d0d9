package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pvermeer/horae/internal/cli/formatter"
	"github.com/pvermeer/horae/internal/domain"
)

func newEnergyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "energy",
		Short: "Log energy levels and inspect patterns",
	}

	cmd.AddCommand(
		newEnergyLogCmd(app),
		newEnergyReportCmd(app),
	)

	return cmd
}

func newEnergyLogCmd(app *App) *cobra.Command {
	var (
		userID string
		level  float64
		at     string
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log an energy observation",
		RunE: func(cmd *cobra.Command, args []string) error {
			recordedAt, err := domain.ParseOptionalDateTime(&at, "--at")
			if err != nil {
				return err
			}

			sample := &domain.EnergySample{
				UserID: userID,
				Level:  level,
			}
			if recordedAt != nil {
				sample.RecordedAt = *recordedAt
			}

			if err := app.Energy.LogSample(context.Background(), sample); err != nil {
				return err
			}

			fmt.Printf("Logged energy %.0f at %s\n", sample.Level, sample.RecordedAt.Format(domain.DateTimeLayout))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "Owner user id")
	cmd.Flags().Float64Var(&level, "level", 0, "Energy level 0-100")
	cmd.Flags().StringVar(&at, "at", "", "Observation time (YYYY-MM-DD HH:MM), defaults to now")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("level")

	return cmd
}

func newEnergyReportCmd(app *App) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the analyzed energy pattern",
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern, err := app.Energy.Report(context.Background(), userID)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatEnergyPattern(pattern))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "Owner user id")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

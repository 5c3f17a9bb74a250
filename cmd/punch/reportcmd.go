package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simmons/punch/internal/config"
	"github.com/simmons/punch/internal/models"
	"github.com/simmons/punch/internal/report"
	"github.com/simmons/punch/internal/store"
	"github.com/simmons/punch/internal/timeutil"
)

// newReportCmd prints the summary report for the first project to stdout.
func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Display a summary report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			db, err := store.NewPostgresStore(cfg.DBURL)
			if err != nil {
				return err
			}
			defer db.Close()

			project, err := db.FirstProject(cmd.Context())
			if err != nil {
				return err
			}

			builder := report.NewBuilder(db, cfg.Location)
			summary, err := builder.Summary(cmd.Context(), project.ID)
			if err != nil {
				return err
			}

			printSummary(summary)
			return nil
		},
	}
}

// printSummary renders a report as indented text.
func printSummary(s *models.SummaryReport) {
	fmt.Println("Summary report:")
	fmt.Printf("\tNext expected direction: %s\n", s.NextDirection)
	fmt.Println("\tDays:")
	for _, d := range s.Days {
		fmt.Printf("\t\t%s: %s %s\n", d.Date,
			timeutil.FormatElapsed(d.Work.Gross), timeutil.FormatElapsed(d.Work.Net))
	}
	fmt.Println("\tWeeks:")
	for _, w := range s.Weeks {
		fmt.Printf("\t\t%s: %s %s\n", w.Week,
			timeutil.FormatElapsed(w.Work.Gross), timeutil.FormatElapsed(w.Work.Net))
	}
	fmt.Println("\tRecent events:")
	for _, e := range s.RecentEvents {
		fmt.Printf("\t\t%s %s\n", e.Clock.Format("2006-01-02 15:04:05"), e.Type)
	}
}

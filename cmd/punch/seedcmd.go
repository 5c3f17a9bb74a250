package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/simmons/punch/internal/config"
	"github.com/simmons/punch/internal/models"
	"github.com/simmons/punch/internal/seed"
	"github.com/simmons/punch/internal/store"
)

// newSeedCmd initializes a database and fills it with generated punch
// history, for demos and manual testing.
func newSeedCmd() *cobra.Command {
	var overhead int
	var randSeed int64

	cmd := &cobra.Command{
		Use:   "seed <username>",
		Short: "Initialize a new punch instance populated with test data",
		Args:  cobra.ExactArgs(1),
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

			projectID, err := bootstrap(cmd.Context(), db, args[0], overhead)
			if err != nil {
				return err
			}

			today := models.DateOf(time.Now().In(cfg.Location))
			events, err := seed.Events(today, cfg.Location, randSeed)
			if err != nil {
				return err
			}
			if err := db.InsertEvents(cmd.Context(), projectID, events); err != nil {
				return err
			}

			fmt.Printf("seeded project %d with %d events\n", projectID, len(events))
			return nil
		},
	}

	cmd.Flags().IntVar(&overhead, "overhead", defaultOverheadMinutes,
		"per-session overhead deduction in minutes")
	cmd.Flags().Int64Var(&randSeed, "seed", seed.DefaultSeed,
		"random seed for generated history")
	return cmd
}

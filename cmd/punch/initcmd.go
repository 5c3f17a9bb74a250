package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simmons/punch/internal/config"
	"github.com/simmons/punch/internal/store"
)

// defaultOverheadMinutes is the ramp-up deduction applied to each work
// session unless configured otherwise.
const defaultOverheadMinutes = 15

// newInitCmd bootstraps a fresh database with one user and one project.
func newInitCmd() *cobra.Command {
	var overhead int

	cmd := &cobra.Command{
		Use:   "init <username>",
		Short: "Initialize a new punch instance",
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

			fmt.Printf("created user %q with project %d\n", args[0], projectID)
			return nil
		},
	}

	cmd.Flags().IntVar(&overhead, "overhead", defaultOverheadMinutes,
		"per-session overhead deduction in minutes")
	return cmd
}

// bootstrap applies the schema and creates the initial user and project.
func bootstrap(ctx context.Context, db *store.PostgresStore, username string, overhead int) (int64, error) {
	if err := db.EnsureSchema(); err != nil {
		return 0, err
	}

	// Refuse to double-initialize rather than silently piling up users.
	if _, err := db.FirstProject(ctx); err == nil {
		return 0, fmt.Errorf("database is already set up")
	}

	userID, err := db.CreateUser(ctx, username)
	if err != nil {
		return 0, err
	}
	return db.CreateProject(ctx, userID, "Project", overhead)
}

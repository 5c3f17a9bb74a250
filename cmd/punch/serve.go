package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/simmons/punch/internal/config"
	"github.com/simmons/punch/internal/httpserver"
	"github.com/simmons/punch/internal/store"
)

// newServeCmd boots the service: config → DB → schema → HTTP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load runtime config from environment (DB_URL, API_KEYS, ...).
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			// Connect to durable storage (Postgres) using a connection pool.
			db, err := store.NewPostgresStore(cfg.DBURL)
			if err != nil {
				return err
			}
			defer db.Close()

			// Ensure required tables/indexes exist so `docker compose up --build` is enough.
			if err := db.EnsureSchema(); err != nil {
				return err
			}

			// Build HTTP router (public health + authenticated APIs).
			router := httpserver.NewRouter(cfg, db)

			log.Printf("server started on %s", cfg.Bind)
			return router.Run(cfg.Bind)
		},
	}
}

package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"hotel_directory/internal/adapters/geocoder"
	"hotel_directory/internal/adapters/observability"
	"hotel_directory/internal/app"
	"hotel_directory/internal/shared"
	mysqlrepo "hotel_directory/internal/storage/mysql"
)

var (
	seedDir string
	workers int
)

func main() {
	cfg, err := shared.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log.Logger = observability.NewLogger(cfg.AppEnv)

	root := &cobra.Command{
		Use:           "seeder",
		Short:         "Load or wipe the hotel directory sample data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&seedDir, "dir", cfg.SeedDir, "directory holding users.json, hotels.json, rooms.json and reviews.json")
	root.PersistentFlags().IntVarP(&workers, "workers", "w", cfg.SeedWorkers, "concurrent inserts")

	root.AddCommand(&cobra.Command{
		Use:     "import",
		Aliases: []string{"i"},
		Short:   "Insert the seed files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			seeder, closeDB, err := newSeeder(cfg)
			if err != nil {
				return err
			}
			defer closeDB()

			log.Info().Str("dir", seedDir).Int("workers", workers).Msg("seeding")
			rep, err := seeder.Import(cmd.Context(), seedDir)
			if err != nil {
				return err
			}
			log.Info().
				Int("users", rep.Users).
				Int("hotels", rep.Hotels).
				Int("rooms", rep.Rooms).
				Int("reviews", rep.Reviews).
				Int("failed", rep.Failed).
				Msg("data imported")
			if rep.Failed > 0 {
				return fmt.Errorf("%d seed records failed", rep.Failed)
			}
			return nil
		},
	})
	root.AddCommand(&cobra.Command{
		Use:     "destroy",
		Aliases: []string{"d"},
		Short:   "Delete every user, hotel, room and review",
		RunE: func(cmd *cobra.Command, _ []string) error {
			seeder, closeDB, err := newSeeder(cfg)
			if err != nil {
				return err
			}
			defer closeDB()

			if err := seeder.Destroy(cmd.Context()); err != nil {
				return err
			}
			log.Info().Msg("data destroyed")
			return nil
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := root.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("seeder failed")
		stop()
		os.Exit(1)
	}
}

func newSeeder(cfg shared.Config) (*app.Seeder, func(), error) {
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("sql.Open: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("db.Ping: %w", err)
	}
	if err := mysqlrepo.Migrate(db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	geo, err := geocoder.New(cfg.GeocoderBase, cfg.GeocoderKey, cfg.GeocoderRPS)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	repo := mysqlrepo.New(db)
	hotels := app.NewHotelService(app.HotelDeps{Hotels: repo, Geocoder: geo})

	closeDB := func() {
		if err := db.Close(); err != nil {
			log.Warn().Err(err).Msg("db close failed")
		}
	}
	return app.NewSeeder(repo, hotels, repo, repo, repo, workers), closeDB, nil
}

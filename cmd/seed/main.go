package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/strnadel/strnadel-api/internal/config"
	"github.com/strnadel/strnadel-api/internal/database"
	"github.com/strnadel/strnadel-api/internal/repository"
	"github.com/strnadel/strnadel-api/internal/seed"
	"github.com/strnadel/strnadel-api/pkg/logger"
)

func newRootCommand() *cobra.Command {
	var file string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load case studies, job openings and team members into the document store.",
		Long: `seed reads a JSON file of the form
  {"case_studies": [...], "jobs": [...], "team": [...]}
validates every entry and inserts them in file order. Nothing is written
unless every entry is valid.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), file, dryRun)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "fixtures.json", "fixture file path")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate the fixtures without writing them")
	return cmd
}

func run(ctx context.Context, file string, dryRun bool) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)

	fx, err := seed.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read %s: %w", file, err)
	}

	var repo repository.Repository
	switch {
	case dryRun || cfg.Database.Driver == config.DriverMemory:
		repo = repository.NewMemoryRepo(cfg.Database.Name)
	case cfg.Database.URL == "":
		return fmt.Errorf("DATABASE_URL is not set")
	default:
		client, err := database.ConnectWithRetry(ctx, cfg.Database.URL, cfg.Database.Timeout, 3, time.Second)
		if err != nil {
			return fmt.Errorf("cannot connect to MongoDB: %w", err)
		}
		defer func() { _ = client.Disconnect(context.Background()) }()
		repo = repository.NewMongoRepo(client.Database(database.DatabaseName(cfg.Database.URL, cfg.Database.Name)))
	}

	res, err := seed.Load(ctx, repo, fx)
	for coll, n := range res {
		logger.Infof("seeded %d documents into %s", n, coll)
	}
	return err
}

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"catalog-backend/internal/config"
	"catalog-backend/pkg/container"
	"catalog-backend/pkg/logger"
)

var (
	fixturesPath string
	dryRun       bool
	seedTimeout  time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the catalog store with sample authors and books",
	Long: `seed creates sample authors and their books through the repositories
of the configured store driver (CATALOG_STORE_DRIVER).

Without --file the built-in fixture set is used. With the memory driver the
records only live for the duration of the command.`,
	SilenceUsage: true,
	RunE:         runSeed,
}

func init() {
	rootCmd.Flags().StringVarP(&fixturesPath, "file", "f", "", "YAML fixture file (default: built-in set)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Parse fixtures and log what would be created without writing")
	rootCmd.Flags().DurationVar(&seedTimeout, "timeout", 2*time.Minute, "Overall timeout for the seed run")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSeed(cmd *cobra.Command, _ []string) error {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Init(cfg.App.Environment, cfg.App.LogLevel)
	if envErr != nil {
		log.Debug().Msg("No .env file found, using system environment variables")
	}

	fixtures, err := loadFixtures(fixturesPath)
	if err != nil {
		return err
	}

	if dryRun {
		logPlan(fixtures)
		return nil
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), seedTimeout)
	defer cancel()

	c, err := container.NewContainer(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	defer c.Cleanup()

	if cfg.Store.Driver == config.DriverMemory {
		log.Warn().Msg("[SEED] Memory driver: seeded records are discarded when the command exits")
	}

	stats, err := seed(ctx, c.AuthorRepo, c.BookRepo, fixtures)
	if err != nil {
		return err
	}

	log.Info().
		Int("authors", stats.Authors).
		Int("books", stats.Books).
		Str("driver", cfg.Store.Driver).
		Msg("[SEED] Completed")
	return nil
}

func logPlan(f *fixtureFile) {
	for _, a := range f.Authors {
		log.Info().
			Str("family_name", a.FamilyName).
			Str("first_name", a.FirstName).
			Int("books", len(a.Books)).
			Msg("[SEED] Would create author")
	}
}

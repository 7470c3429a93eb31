package main

import (
	"fmt"
	"log"
	"os"

	"techsync/internal/database/seeder"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the topic, language and project catalog",
	Long:  "Upserts the embedded catalog (or --catalog FILE) into the database. Safe to run repeatedly.",
	RunE:  runSeed,
}

var (
	seedCatalog   string
	seedDemoUsers bool
)

func init() {
	seedCmd.Flags().StringVar(&seedCatalog, "catalog", "", "Path to a catalog YAML file (defaults to the embedded catalog)")
	seedCmd.Flags().BoolVar(&seedDemoUsers, "demo-users", false, "Also seed the demo user profiles")

	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cat, err := loadCatalog(seedCatalog)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	db, err := connectDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	r := seeder.Runner{Seeders: seeder.Defaults(cat, seedDemoUsers), Logger: log.Default()}
	return r.Run(ctx, db)
}

func loadCatalog(path string) (seeder.Catalog, error) {
	if path == "" {
		return seeder.DefaultCatalog()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return seeder.Catalog{}, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return seeder.ParseCatalog(b)
}

package main

import (
	"fmt"
	"log"
	"text/tabwriter"
	"time"

	"techsync/internal/database/migration"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE:  runMigrate,
}

var (
	migrateDir    string
	migrateStatus bool
)

func init() {
	migrateCmd.Flags().StringVar(&migrateDir, "dir", "", "Directory of V<n>__<name>.sql files (defaults to the embedded set)")
	migrateCmd.Flags().BoolVar(&migrateStatus, "status", false, "Only list migrations and whether they are applied")

	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	db, err := connectDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	r := migration.Runner{Dir: migrateDir, Logger: log.Default()}
	if !migrateStatus {
		return r.Run(ctx, db.SQLDB())
	}

	statuses, err := r.Status(ctx, db.SQLDB())
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "VERSION\tNAME\tAPPLIED AT")
	for _, s := range statuses {
		appliedAt := "pending"
		if s.Applied {
			appliedAt = s.AppliedAt.UTC().Format(time.RFC3339)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", s.Migration.Version, s.Migration.Name, appliedAt)
	}
	return w.Flush()
}

package seeder

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"techsync/internal/database"
)

var ErrSchemaMismatch = errors.New("schema mismatch")

// Columns maps a table name to the columns a seeder writes.
type Columns map[string][]string

// RequireColumns fails with ErrSchemaMismatch listing every expected column the
// public schema lacks, so a seeder never runs half way against an old schema.
func RequireColumns(ctx context.Context, q database.Querier, want Columns) error {
	if q == nil {
		return errors.New("nil db")
	}
	if len(want) == 0 {
		return nil
	}

	tables := make([]string, 0, len(want))
	for t := range want {
		tables = append(tables, t)
	}

	rows, err := q.Query(ctx,
		`SELECT table_name, column_name FROM information_schema.columns
		 WHERE table_schema = 'public' AND table_name = ANY($1)`,
		tables,
	)
	if err != nil {
		return fmt.Errorf("read columns: %w", err)
	}
	defer rows.Close()

	existing := map[string]map[string]struct{}{}
	for rows.Next() {
		var table, col string
		if err := rows.Scan(&table, &col); err != nil {
			return err
		}
		if existing[table] == nil {
			existing[table] = map[string]struct{}{}
		}
		existing[table][col] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if missing := missingColumns(existing, want); len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrSchemaMismatch, strings.Join(missing, ", "))
	}
	return nil
}

func missingColumns(existing map[string]map[string]struct{}, want Columns) []string {
	var out []string
	for table, cols := range want {
		for _, col := range cols {
			if _, ok := existing[table][col]; !ok {
				out = append(out, table+"."+col)
			}
		}
	}
	sort.Strings(out)
	return out
}

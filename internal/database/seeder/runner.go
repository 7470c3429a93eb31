package seeder

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"techsync/internal/database"
)

type Runner struct {
	Seeders []Seeder
	Logger  *log.Logger
}

// Run executes seeders in order and stops at the first failure. Every seeder
// is idempotent, so a rerun after a fix picks up where it left off.
func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return errors.New("nil db")
	}
	start := time.Now()
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		t := time.Now()
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		r.logf("[Seeder] done name=%s took=%s", s.Name(), time.Since(t).Round(time.Millisecond))
	}
	r.logf("[Seeder] finished seeders=%d took=%s", len(r.Seeders), time.Since(start).Round(time.Millisecond))
	return nil
}

func (r Runner) logf(format string, args ...any) {
	if r.Logger != nil {
		r.Logger.Printf(format, args...)
	}
}

package seeder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMissingColumns(t *testing.T) {
	existing := map[string]map[string]struct{}{
		"topics": {"id": {}, "name": {}},
		"users":  {"id": {}},
	}

	missing := missingColumns(existing, Columns{
		"topics":   {"id", "name"},
		"users":    {"id", "username", "years_experience"},
		"projects": {"id"},
	})

	assert.Equal(t, []string{"projects.id", "users.username", "users.years_experience"}, missing)
	assert.Empty(t, missingColumns(existing, Columns{"topics": {"name"}}))
}

func TestRequireColumns_NilDB(t *testing.T) {
	assert.Error(t, RequireColumns(context.Background(), nil, Columns{"topics": {"id"}}))
}

package matching

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func mustUser(t *testing.T, years float64, topics []UserTopic, langs []UserLanguage) UserProfile {
	t.Helper()
	u, err := NewUserProfile(uuid.New(), years, topics, langs)
	require.NoError(t, err)
	return u
}

func mustProject(t *testing.T, title string, lvl Level, topics []ProjectTopic, langs []ProjectLanguage) ProjectProfile {
	t.Helper()
	p, err := NewProjectProfile(uuid.New(), title, lvl, topics, langs)
	require.NoError(t, err)
	return p
}

func mustEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultSettings())
	require.NoError(t, err)
	return e
}

package usecase

import (
	"testing"

	"techsync/internal/domain/matching"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func fixtureUser(t *testing.T) matching.UserProfile {
	t.Helper()
	u, err := matching.NewUserProfile(uuid.New(), 4,
		[]matching.UserTopic{{Name: "web development", ExperienceLevel: 4}, {Name: "databases", ExperienceLevel: 2}},
		[]matching.UserLanguage{{Name: "go", Proficiency: matching.LevelAdvanced}, {Name: "python", Proficiency: matching.LevelBeginner}},
	)
	require.NoError(t, err)
	return u
}

func fixtureProjects(t *testing.T) []matching.ProjectProfile {
	t.Helper()
	mk := func(title string, lvl matching.Level, topics []matching.ProjectTopic, langs []matching.ProjectLanguage) matching.ProjectProfile {
		p, err := matching.NewProjectProfile(uuid.New(), title, lvl, topics, langs)
		require.NoError(t, err)
		return p
	}
	return []matching.ProjectProfile{
		mk("Go API", matching.LevelIntermediate,
			[]matching.ProjectTopic{{Name: "web development", IsPrimary: true}},
			[]matching.ProjectLanguage{{Name: "go", RequiredLevel: matching.LevelIntermediate, IsPrimary: true}}),
		mk("Go Storage", matching.LevelIntermediate,
			[]matching.ProjectTopic{{Name: "web development", IsPrimary: true}, {Name: "databases"}},
			[]matching.ProjectLanguage{{Name: "go", RequiredLevel: matching.LevelBeginner, IsPrimary: true}}),
		mk("Robot Arm", matching.LevelExpert,
			[]matching.ProjectTopic{{Name: "robotics", IsPrimary: true}},
			[]matching.ProjectLanguage{{Name: "c", RequiredLevel: matching.LevelExpert, IsPrimary: true}}),
	}
}

func fixtureEngine(t *testing.T) *matching.Engine {
	t.Helper()
	e, err := matching.NewEngine(matching.DefaultSettings())
	require.NoError(t, err)
	return e
}

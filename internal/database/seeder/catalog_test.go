package seeder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)
	assert.Contains(t, c.Topics, "web development")
	assert.Contains(t, c.Languages, "c++")
	require.NotEmpty(t, c.Projects)
	require.NotEmpty(t, c.Users)

	seeders := Defaults(c, false)
	require.Len(t, seeders, 2)
	assert.Equal(t, "taxonomy", seeders[0].Name())
	assert.Len(t, Defaults(c, true), 3)
}

func TestParseCatalog_CanonicalisesNames(t *testing.T) {
	c, err := ParseCatalog([]byte(`
topics: [Web Dev]
languages: [Golang]
projects:
  - title: API
    required_level: "3"
    topics: [{name: webdev, primary: true}]
    languages: [{name: GO, level: advanced}]
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"web development"}, c.Topics)
	assert.Equal(t, []string{"go"}, c.Languages)
	assert.Equal(t, "web development", c.Projects[0].Topics[0].Name)
	assert.Equal(t, "go", c.Projects[0].Languages[0].Name)
}

func TestParseCatalog_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{name: "bad yaml", doc: "topics: [", want: "parse catalog"},
		{name: "unknown topic", doc: "topics: [a]\nprojects: [{title: P, required_level: beginner, topics: [{name: b}]}]", want: `unknown topic "b"`},
		{name: "bad level", doc: "projects: [{title: P, required_level: guru}]", want: "invalid required_level"},
		{name: "no username", doc: "users: [{years_experience: 1}]", want: "no username"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.doc))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

package seeder

import (
	_ "embed"
	"fmt"
	"strings"

	"techsync/internal/domain/matching"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog is the reference data the seeders load: taxonomy, demo projects and demo users.
type Catalog struct {
	Topics    []string         `yaml:"topics"`
	Languages []string         `yaml:"languages"`
	Projects  []CatalogProject `yaml:"projects"`
	Users     []CatalogUser    `yaml:"users"`
}

type CatalogProject struct {
	Title         string                   `yaml:"title"`
	Description   string                   `yaml:"description"`
	RequiredLevel string                   `yaml:"required_level"`
	Topics        []CatalogProjectTopic    `yaml:"topics"`
	Languages     []CatalogProjectLanguage `yaml:"languages"`
}

type CatalogProjectTopic struct {
	Name    string `yaml:"name"`
	Primary bool   `yaml:"primary"`
}

type CatalogProjectLanguage struct {
	Name    string `yaml:"name"`
	Level   string `yaml:"level"`
	Primary bool   `yaml:"primary"`
}

type CatalogUser struct {
	Username        string                `yaml:"username"`
	YearsExperience float64               `yaml:"years_experience"`
	Topics          []CatalogUserTopic    `yaml:"topics"`
	Languages       []CatalogUserLanguage `yaml:"languages"`
}

type CatalogUserTopic struct {
	Name       string `yaml:"name"`
	Experience int    `yaml:"experience"`
	Interest   int    `yaml:"interest"`
}

type CatalogUserLanguage struct {
	Name        string  `yaml:"name"`
	Proficiency int     `yaml:"proficiency"`
	Years       float64 `yaml:"years"`
}

func DefaultCatalog() (Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

// ParseCatalog decodes and validates a catalog. Names are stored canonicalised.
func ParseCatalog(b []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.normalize(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

func (c *Catalog) normalize() error {
	topics := map[string]struct{}{}
	for i, t := range c.Topics {
		c.Topics[i] = matching.CanonicalName(t)
		topics[c.Topics[i]] = struct{}{}
	}
	langs := map[string]struct{}{}
	for i, l := range c.Languages {
		c.Languages[i] = matching.CanonicalName(l)
		langs[c.Languages[i]] = struct{}{}
	}

	known := func(set map[string]struct{}, kind, name string) (string, error) {
		n := matching.CanonicalName(name)
		if _, ok := set[n]; !ok {
			return "", fmt.Errorf("catalog: unknown %s %q", kind, name)
		}
		return n, nil
	}

	var err error
	for pi := range c.Projects {
		p := &c.Projects[pi]
		if strings.TrimSpace(p.Title) == "" {
			return fmt.Errorf("catalog: project %d has no title", pi)
		}
		if _, ok := matching.ParseLevel(p.RequiredLevel); !ok {
			return fmt.Errorf("catalog: project %q has invalid required_level %q", p.Title, p.RequiredLevel)
		}
		for i := range p.Topics {
			if p.Topics[i].Name, err = known(topics, "topic", p.Topics[i].Name); err != nil {
				return err
			}
		}
		for i := range p.Languages {
			if p.Languages[i].Name, err = known(langs, "language", p.Languages[i].Name); err != nil {
				return err
			}
			if _, ok := matching.ParseLevel(p.Languages[i].Level); !ok {
				return fmt.Errorf("catalog: project %q language %q has invalid level %q", p.Title, p.Languages[i].Name, p.Languages[i].Level)
			}
		}
	}

	for ui := range c.Users {
		u := &c.Users[ui]
		if strings.TrimSpace(u.Username) == "" {
			return fmt.Errorf("catalog: user %d has no username", ui)
		}
		for i := range u.Topics {
			if u.Topics[i].Name, err = known(topics, "topic", u.Topics[i].Name); err != nil {
				return err
			}
		}
		for i := range u.Languages {
			if u.Languages[i].Name, err = known(langs, "language", u.Languages[i].Name); err != nil {
				return err
			}
		}
	}
	return nil
}

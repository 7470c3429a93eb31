package matching

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var ErrInvalidProfile = errors.New("invalid profile")

var validate = validator.New()

// Level is an ordinal skill tier shared by language proficiency and project experience requirements.
type Level int

const (
	LevelNone Level = iota
	LevelBeginner
	LevelIntermediate
	LevelAdvanced
	LevelExpert
)

var levelNames = map[Level]string{
	LevelNone:         "none",
	LevelBeginner:     "beginner",
	LevelIntermediate: "intermediate",
	LevelAdvanced:     "advanced",
	LevelExpert:       "expert",
}

func (l Level) String() string {
	if s, ok := levelNames[l]; ok {
		return s
	}
	return "unknown"
}

func (l Level) Next() Level {
	if l >= LevelExpert {
		return LevelExpert
	}
	return l + 1
}

// ParseLevel accepts a tier name ("advanced") or a numeric 0-5 level ("4").
func ParseLevel(s string) (Level, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return LevelNone, false
	}
	for l, name := range levelNames {
		if name == s {
			return l, true
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 5 {
		return LevelNone, false
	}
	return LevelFromNumeric(n), true
}

// LevelFromNumeric folds a 0-5 proficiency rating onto the four named tiers.
func LevelFromNumeric(n int) Level {
	switch {
	case n <= 0:
		return LevelNone
	case n == 1:
		return LevelBeginner
	case n <= 3:
		return LevelIntermediate
	case n == 4:
		return LevelAdvanced
	default:
		return LevelExpert
	}
}

type UserTopic struct {
	Name            string `json:"name" validate:"required"`
	ExperienceLevel int    `json:"experience_level" validate:"min=0,max=5"`
	InterestLevel   int    `json:"interest_level" validate:"min=0,max=5"`
}

type UserLanguage struct {
	Name            string  `json:"name" validate:"required"`
	Proficiency     Level   `json:"proficiency" validate:"min=0,max=4"`
	YearsExperience float64 `json:"years_experience" validate:"gte=0"`
}

type UserProfile struct {
	ID              uuid.UUID      `json:"id" validate:"required"`
	YearsExperience float64        `json:"years_experience" validate:"gte=0"`
	Topics          []UserTopic    `json:"topics" validate:"dive"`
	Languages       []UserLanguage `json:"languages" validate:"dive"`
}

type ProjectTopic struct {
	Name      string `json:"name" validate:"required"`
	IsPrimary bool   `json:"is_primary"`
}

type ProjectLanguage struct {
	Name          string `json:"name" validate:"required"`
	RequiredLevel Level  `json:"required_level" validate:"min=1,max=4"`
	IsPrimary     bool   `json:"is_primary"`
}

type ProjectProfile struct {
	ID                      uuid.UUID         `json:"id" validate:"required"`
	Title                   string            `json:"title" validate:"required"`
	RequiredExperienceLevel Level             `json:"required_experience_level" validate:"min=1,max=4"`
	Topics                  []ProjectTopic    `json:"topics" validate:"dive"`
	Languages               []ProjectLanguage `json:"languages" validate:"dive"`
}

// NewUserProfile canonicalises names and validates the snapshot.
func NewUserProfile(id uuid.UUID, years float64, topics []UserTopic, languages []UserLanguage) (UserProfile, error) {
	p := UserProfile{
		ID:              id,
		YearsExperience: years,
		Topics:          make([]UserTopic, 0, len(topics)),
		Languages:       make([]UserLanguage, 0, len(languages)),
	}
	for _, t := range topics {
		t.Name = CanonicalName(t.Name)
		p.Topics = append(p.Topics, t)
	}
	for _, l := range languages {
		l.Name = CanonicalName(l.Name)
		p.Languages = append(p.Languages, l)
	}
	if err := p.Validate(); err != nil {
		return UserProfile{}, err
	}
	return p, nil
}

func (p UserProfile) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	seen := make(map[string]struct{}, len(p.Topics))
	for _, t := range p.Topics {
		key := CanonicalName(t.Name)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: duplicate topic %q", ErrInvalidProfile, t.Name)
		}
		seen[key] = struct{}{}
	}
	seen = make(map[string]struct{}, len(p.Languages))
	for _, l := range p.Languages {
		key := CanonicalName(l.Name)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: duplicate language %q", ErrInvalidProfile, l.Name)
		}
		seen[key] = struct{}{}
	}
	return nil
}

// NewProjectProfile canonicalises names, defaults missing levels to beginner and validates the snapshot.
func NewProjectProfile(id uuid.UUID, title string, required Level, topics []ProjectTopic, languages []ProjectLanguage) (ProjectProfile, error) {
	if required == LevelNone {
		required = LevelBeginner
	}
	p := ProjectProfile{
		ID:                      id,
		Title:                   strings.TrimSpace(title),
		RequiredExperienceLevel: required,
		Topics:                  make([]ProjectTopic, 0, len(topics)),
		Languages:               make([]ProjectLanguage, 0, len(languages)),
	}
	for _, t := range topics {
		t.Name = CanonicalName(t.Name)
		p.Topics = append(p.Topics, t)
	}
	for _, l := range languages {
		l.Name = CanonicalName(l.Name)
		if l.RequiredLevel == LevelNone {
			l.RequiredLevel = LevelBeginner
		}
		p.Languages = append(p.Languages, l)
	}
	if err := p.Validate(); err != nil {
		return ProjectProfile{}, err
	}
	return p, nil
}

func (p ProjectProfile) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	return nil
}

// Technologies returns the project's canonical technology tags, languages first.
func (p ProjectProfile) Technologies() []string {
	out := make([]string, 0, len(p.Languages)+len(p.Topics))
	seen := make(map[string]struct{}, cap(out))
	add := func(name string) {
		name = CanonicalName(name)
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	for _, l := range p.Languages {
		add(l.Name)
	}
	for _, t := range p.Topics {
		add(t.Name)
	}
	return out
}

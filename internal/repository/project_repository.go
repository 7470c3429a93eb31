package repository

import (
	"context"
	"fmt"
	"log"

	"techsync/internal/database"
	"techsync/internal/domain/matching"

	"github.com/google/uuid"
)

type ProjectRepository interface {
	FindByID(ctx context.Context, projectID uuid.UUID) (matching.ProjectProfile, error)
	ListRecruitingProjects(ctx context.Context) ([]matching.ProjectProfile, error)
}

type PostgresProjectRepository struct {
	db     database.DB
	logger *log.Logger
}

func NewPostgresProjectRepository(db database.DB, logger *log.Logger) *PostgresProjectRepository {
	return &PostgresProjectRepository{db: db, logger: logger}
}

type projectRow struct {
	id       uuid.UUID
	title    string
	required string
	topics   []matching.ProjectTopic
	langs    []matching.ProjectLanguage
}

func (p projectRow) profile() (matching.ProjectProfile, error) {
	lvl, ok := matching.ParseLevel(p.required)
	if !ok {
		return matching.ProjectProfile{}, fmt.Errorf("project %s: unknown required level %q", p.id, p.required)
	}
	return matching.NewProjectProfile(p.id, p.title, lvl, p.topics, p.langs)
}

func (r *PostgresProjectRepository) FindByID(ctx context.Context, projectID uuid.UUID) (matching.ProjectProfile, error) {
	rows, err := r.load(ctx, `p.id = $1`, projectID)
	if err != nil {
		return matching.ProjectProfile{}, err
	}
	if len(rows) == 0 {
		return matching.ProjectProfile{}, ErrProjectNotFound
	}
	return rows[0].profile()
}

// ListRecruitingProjects returns every project open for new members, ordered by creation time.
// Projects whose stored data fails validation are skipped.
func (r *PostgresProjectRepository) ListRecruitingProjects(ctx context.Context) ([]matching.ProjectProfile, error) {
	rows, err := r.load(ctx, `p.status = 'recruiting'`)
	if err != nil {
		return nil, err
	}
	out := make([]matching.ProjectProfile, 0, len(rows))
	for _, pr := range rows {
		p, err := pr.profile()
		if err != nil {
			if r.logger != nil {
				r.logger.Printf("[Projects] skipping invalid project project_id=%s err=%v", pr.id, err)
			}
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// load reads projects matching where plus their topics and languages in three queries.
func (r *PostgresProjectRepository) load(ctx context.Context, where string, args ...any) ([]*projectRow, error) {
	rows, err := r.db.Query(ctx,
		`SELECT p.id, p.title, p.required_experience_level
		 FROM projects p
		 WHERE `+where+`
		 ORDER BY p.created_at ASC, p.id ASC`,
		args...,
	)
	if err != nil {
		return nil, err
	}

	out := make([]*projectRow, 0)
	byID := map[uuid.UUID]*projectRow{}
	for rows.Next() {
		pr := &projectRow{}
		if err := rows.Scan(&pr.id, &pr.title, &pr.required); err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, pr)
		byID[pr.id] = pr
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	topicRows, err := r.db.Query(ctx,
		`SELECT p.id, t.name, pt.is_primary
		 FROM project_topics pt
		 JOIN projects p ON p.id = pt.project_id
		 JOIN topics t ON t.id = pt.topic_id
		 WHERE `+where+`
		 ORDER BY pt.is_primary DESC, t.name ASC`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	for topicRows.Next() {
		var (
			id uuid.UUID
			t  matching.ProjectTopic
		)
		if err := topicRows.Scan(&id, &t.Name, &t.IsPrimary); err != nil {
			topicRows.Close()
			return nil, err
		}
		if pr, ok := byID[id]; ok {
			pr.topics = append(pr.topics, t)
		}
	}
	topicRows.Close()
	if err := topicRows.Err(); err != nil {
		return nil, err
	}

	langRows, err := r.db.Query(ctx,
		`SELECT p.id, pl.name, pj.required_level, pj.is_primary
		 FROM project_languages pj
		 JOIN projects p ON p.id = pj.project_id
		 JOIN programming_languages pl ON pl.id = pj.language_id
		 WHERE `+where+`
		 ORDER BY pj.is_primary DESC, pl.name ASC`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer langRows.Close()
	for langRows.Next() {
		var (
			id       uuid.UUID
			required string
			l        matching.ProjectLanguage
		)
		if err := langRows.Scan(&id, &l.Name, &required, &l.IsPrimary); err != nil {
			return nil, err
		}
		// Unknown levels parse as none and NewProjectProfile treats them as beginner.
		l.RequiredLevel, _ = matching.ParseLevel(required)
		if pr, ok := byID[id]; ok {
			pr.langs = append(pr.langs, l)
		}
	}
	if err := langRows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

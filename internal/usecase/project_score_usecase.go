package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"techsync/internal/domain/matching"
	"techsync/internal/repository"

	"github.com/google/uuid"
)

type ProjectScore struct {
	matching.AggregateScoreResult
	Recommended bool `json:"recommended"`
}

type ProjectScoreUsecase interface {
	ScoreProject(ctx context.Context, userID, projectID uuid.UUID) (ProjectScore, error)
}

type ProjectScorer struct {
	engine   *matching.Engine
	profiles repository.ProfileRepository
	projects repository.ProjectRepository
	matches  repository.ProjectMatchRepository
	cache    Cache
	ttl      time.Duration
	logger   *log.Logger
}

func NewProjectScoreUsecase(engine *matching.Engine, profiles repository.ProfileRepository, projects repository.ProjectRepository, matches repository.ProjectMatchRepository, cache Cache, ttl time.Duration, logger *log.Logger) *ProjectScorer {
	return &ProjectScorer{engine: engine, profiles: profiles, projects: projects, matches: matches, cache: cache, ttl: ttl, logger: logger}
}

func (u *ProjectScorer) ScoreProject(ctx context.Context, userID, projectID uuid.UUID) (ProjectScore, error) {
	if userID == uuid.Nil || projectID == uuid.Nil {
		return ProjectScore{}, ErrInvalidInput
	}

	key := ProjectScoreCacheKey(userID, projectID)
	if u.cache != nil {
		var cached ProjectScore
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	profile, err := u.profiles.FindUserProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ProjectScore{}, ErrUserNotFound
		}
		return ProjectScore{}, ErrInternal
	}
	project, err := u.projects.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return ProjectScore{}, ErrProjectNotFound
		}
		return ProjectScore{}, ErrInternal
	}

	res := u.engine.ScoreProject(profile, project)
	out := ProjectScore{
		AggregateScoreResult: res,
		Recommended:          res.Score >= u.engine.Settings().RecommendationThreshold,
	}

	if u.matches != nil {
		err := u.matches.Upsert(ctx, repository.ProjectMatchUpsert{
			UserID:       userID,
			ProjectID:    projectID,
			Score:        res.Score,
			MatchFactors: res.MatchFactors,
		})
		if err != nil && u.logger != nil {
			u.logger.Printf("[Score] match upsert failed user_id=%s project_id=%s err=%v", userID, projectID, err)
		}
	}
	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, out, u.ttl); err != nil && u.logger != nil {
			u.logger.Printf("[Score] Cache SET error key=%s err=%v", key, err)
		}
	}
	return out, nil
}
